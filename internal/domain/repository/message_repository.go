package repository

import (
	"context"
	"time"

	"concierge-service/internal/domain/entity"
)

// MessageRepository defines the interface for inbound message storage
type MessageRepository interface {
	Save(ctx context.Context, message *entity.Message) error
	FindByMessageID(ctx context.Context, messageID string) (*entity.Message, error)
	FindByMessageIDs(ctx context.Context, messageIDs []string) (map[string]*entity.Message, error)
	FindUnprocessed(ctx context.Context, limit int) ([]*entity.Message, error)
	FindByStatus(ctx context.Context, status string, limit int) ([]*entity.Message, error)
	GetLastMessage(ctx context.Context, channel string) (*entity.Message, error)
	UpdateStatusByMessageID(ctx context.Context, messageID string, status string, startedAt time.Time) error
	UpdateProcessStepsByMessageID(ctx context.Context, messageID string, steps entity.ProcessSteps) error
	MarkAsProcessedByMessageID(ctx context.Context, messageID, status, processorType, errorDetail string, extractedData map[string]interface{}) error
	ResetProcessingMessages(ctx context.Context) error
}
