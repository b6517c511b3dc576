package scheduler

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Job is a named unit of periodic work
type Job struct {
	Name string
	Run  func() error
}

type entry struct {
	job      Job
	interval time.Duration
}

// Scheduler runs jobs on fixed intervals, one job at a time
type Scheduler struct {
	logger   *logrus.Logger
	entries  []entry
	stopChan chan struct{}
	wg       sync.WaitGroup
	jobMutex sync.Mutex // Ensures sequential job execution
	stopOnce sync.Once
}

func NewScheduler(logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}
	return &Scheduler{
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Every registers job to run each interval. Must be called before Start.
func (s *Scheduler) Every(interval time.Duration, job Job) {
	s.entries = append(s.entries, entry{job: job, interval: interval})
}

// Start runs every job once and then on its interval
func (s *Scheduler) Start() {
	for _, e := range s.entries {
		s.wg.Add(1)
		go s.loop(e)
	}
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
}

func (s *Scheduler) loop(e entry) {
	defer s.wg.Done()

	s.execute(e.job)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.execute(e.job)
		}
	}
}

func (s *Scheduler) execute(job Job) {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	start := time.Now()
	if err := job.Run(); err != nil {
		s.logger.WithError(err).WithField("job", job.Name).Error("Scheduled job failed")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"job":      job.Name,
		"duration": time.Since(start).String(),
	}).Debug("Scheduled job completed")
}
