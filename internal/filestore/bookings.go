package filestore

import (
	"context"

	"residence/server/internal/models"
)

// BookingLog is an append-only JSON array of bookings
type BookingLog struct {
	doc *Document
}

func NewBookingLog(path string) *BookingLog {
	return &BookingLog{doc: NewDocument(path)}
}

func (l *BookingLog) Append(_ context.Context, b models.Booking) error {
	var bookings []models.Booking
	return l.doc.Update(&bookings, func() (bool, error) {
		bookings = append(bookings, b)
		return true, nil
	})
}

func (l *BookingLog) List(_ context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if _, err := l.doc.Load(&bookings); err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}
