package repository

import (
	"context"

	"concierge-service/internal/domain/entity"
)

// BookingRepository defines the interface for booking record operations
type BookingRepository interface {
	FindByBookingKey(ctx context.Context, bookingKey string) (*entity.Booking, error)
	FindByStatus(ctx context.Context, status string, limit int) ([]*entity.Booking, error)
	Upsert(ctx context.Context, booking *entity.Booking) error
}
