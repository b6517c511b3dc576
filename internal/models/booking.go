package models

import "time"

// Booking is a lead left by a prospective buyer. Bookings are append-only.
// Apartment details are passed through from the form as sent.
type Booking struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" gorm:"not null"`
	Phone       string    `json:"phone" gorm:"not null"`
	ProjectName FreeText  `json:"projectName,omitempty"`
	ApartmentID FreeText  `json:"apartmentId,omitempty"`
	Rooms       FreeText  `json:"rooms,omitempty"`
	Area        FreeText  `json:"area,omitempty"`
	Floor       FreeText  `json:"floor,omitempty"`
	Number      FreeText  `json:"number,omitempty"`
	Price       FreeText  `json:"price,omitempty"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
}

// BookingRequest is the public form payload. Only name and phone are
// required; every field accepts any JSON scalar.
type BookingRequest struct {
	Name        FreeText `json:"name"`
	Phone       FreeText `json:"phone"`
	ProjectName FreeText `json:"projectName"`
	ApartmentID FreeText `json:"apartmentId"`
	Rooms       FreeText `json:"rooms"`
	Area        FreeText `json:"area"`
	Floor       FreeText `json:"floor"`
	Number      FreeText `json:"number"`
	Price       FreeText `json:"price"`
}
