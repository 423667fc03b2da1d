package repository

import (
	"context"

	"concierge-service/internal/domain/entity"
)

// NotifierRepository defines the interface for outbound WhatsApp delivery
type NotifierRepository interface {
	SendNotification(ctx context.Context, notification *entity.Notification) (string, error)
}
