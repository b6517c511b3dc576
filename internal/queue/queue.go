package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"residence/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// Handler processes one accepted booking
type Handler func(models.Booking) error

// LeadQueue hands accepted bookings to notification handlers in the background
type LeadQueue struct {
	items    chan models.Booking
	done     chan struct{}
	maxSize  int
	closed   bool
	started  bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []Handler
}

// NewLeadQueue creates a queue with the specified buffer size
func NewLeadQueue(bufferSize int, logger *logrus.Logger) *LeadQueue {
	if logger == nil {
		logger = logrus.New()
	}
	return &LeadQueue{
		items:    make(chan models.Booking, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]Handler, 0),
	}
}

// Push adds a booking to the queue without blocking
func (q *LeadQueue) Push(b models.Booking) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- b:
		q.logger.WithField("booking_id", b.ID).Debug("Queued lead notification")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler that will be called for each booking
func (q *LeadQueue) Subscribe(handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue
func (q *LeadQueue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true
	go q.process()
}

func (q *LeadQueue) process() {
	defer close(q.done)
	for b := range q.items {
		q.dispatch(b)
	}
}

// dispatch sends the booking to every handler; a failing handler does not stop the others
func (q *LeadQueue) dispatch(b models.Booking) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(b); err != nil {
			q.logger.WithError(err).WithField("booking_id", b.ID).Error("Lead notification failed")
		}
	}
}

// Close stops accepting bookings and waits until queued ones are handled
func (q *LeadQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	started := q.started
	close(q.items)
	q.mu.Unlock()

	if started {
		<-q.done
	}
	return nil
}

// Len returns the current number of queued bookings
func (q *LeadQueue) Len() int {
	return len(q.items)
}
