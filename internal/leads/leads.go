package leads

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"residence/server/internal/models"
	"residence/server/internal/queue"
)

var ErrValidation = errors.New("name and phone are required")

// Repository is the durable, append-only booking log
type Repository interface {
	Append(ctx context.Context, b models.Booking) error
	List(ctx context.Context) ([]models.Booking, error)
}

// Notifier receives accepted bookings for best-effort relay to staff
type Notifier interface {
	Push(b models.Booking) error
}

// Service accepts booking-interest leads
type Service struct {
	repo     Repository
	notifier Notifier
	logger   *logrus.Logger
	now      func() time.Time
}

// NewService creates a lead service. notifier may be nil, in which case
// bookings are only recorded.
func NewService(repo Repository, notifier Notifier, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit validates and records a lead, then queues the staff notification.
// Notification problems never fail the submission.
func (s *Service) Submit(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	name := strings.TrimSpace(req.Name.String())
	phone := strings.TrimSpace(req.Phone.String())
	if name == "" || phone == "" {
		return nil, ErrValidation
	}

	booking := models.Booking{
		ID:          models.NewID(),
		Name:        name,
		Phone:       phone,
		ProjectName: req.ProjectName,
		ApartmentID: req.ApartmentID,
		Rooms:       req.Rooms,
		Area:        req.Area,
		Floor:       req.Floor,
		Number:      req.Number,
		Price:       req.Price,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.Append(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to record booking: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"project":    booking.ProjectName.String(),
	}).Info("Booking recorded")

	if s.notifier == nil {
		return &booking, nil
	}
	if err := s.notifier.Push(booking); err != nil {
		level := logrus.ErrorLevel
		if errors.Is(err, queue.ErrQueueClosed) {
			level = logrus.WarnLevel
		}
		s.logger.WithError(err).WithField("booking_id", booking.ID).Log(level, "Lead notification not queued")
	}

	return &booking, nil
}

// List returns all bookings in submission order
func (s *Service) List(ctx context.Context) ([]models.Booking, error) {
	return s.repo.List(ctx)
}
