// internal/domain/entity/booking.go
package entity

import (
	"time"
)

// Booking status values
const (
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusPending   = "PENDING"
	BookingStatusCancelled = "CANCELLED"
)

// Booking is the persistent record a high-confidence parse is promoted into
type Booking struct {
	ID              string    `bson:"_id,omitempty"`
	BookingKey      string    `bson:"bookingKey"` // {name}:{flight}:{date} - unique index
	PassengerName   string    `bson:"passengerName"`
	Company         string    `bson:"company,omitempty"`
	Phone           string    `bson:"phone,omitempty"`
	Email           string    `bson:"email,omitempty"`
	FlightNumber    string    `bson:"flightNumber"`
	Airline         string    `bson:"airline,omitempty"`
	Date            string    `bson:"date,omitempty"`
	Time            string    `bson:"time,omitempty"`
	Terminal        string    `bson:"terminal,omitempty"`
	PassengerCount  int       `bson:"passengerCount"`
	ServiceID       string    `bson:"serviceId,omitempty"`
	ServiceFee      float64   `bson:"serviceFee"`
	SpecialRequests string    `bson:"specialRequests,omitempty"`
	Status          string    `bson:"status"`
	Source          string    `bson:"source"` // channel the request came from
	SourceMessageID string    `bson:"sourceMessageId,omitempty"`
	Confidence      string    `bson:"confidence,omitempty"`
	CreatedAt       time.Time `bson:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt"`
}
