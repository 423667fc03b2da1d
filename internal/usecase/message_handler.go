package usecase

import (
	"context"

	"concierge-service/internal/domain/entity"
)

// MessageHandler defines the interface for inbound message handlers
type MessageHandler interface {
	// CanHandle determines if this handler can process the given message
	CanHandle(message *entity.Message) bool

	// Process processes the message
	Process(ctx context.Context, message *entity.Message) error
}

// ChannelRouter routes messages to the appropriate handler
type ChannelRouter interface {
	// Register registers a handler
	Register(handler MessageHandler)

	// GetHandler returns the appropriate handler for a given message
	GetHandler(message *entity.Message) MessageHandler
}
