package usecase

import (
	"context"
	"fmt"
	"time"

	"concierge-service/internal/domain/entity"
	"concierge-service/internal/domain/repository"
	"concierge-service/pkg/logger"
)

// MessageOrchestrator dispatches freshly ingested messages to handlers
type MessageOrchestrator struct {
	messageRepo repository.MessageRepository
	router      ChannelRouter
	logger      logger.Logger
}

// NewMessageOrchestrator creates a new message orchestrator
func NewMessageOrchestrator(
	messageRepo repository.MessageRepository,
	router ChannelRouter,
	logger logger.Logger,
) *MessageOrchestrator {
	return &MessageOrchestrator{
		messageRepo: messageRepo,
		router:      router,
		logger:      logger,
	}
}

// ProcessMessage processes a single message immediately after ingestion
func (o *MessageOrchestrator) ProcessMessage(ctx context.Context, message *entity.Message) error {
	handler := o.router.GetHandler(message)
	if handler == nil {
		o.logger.Debug("No handler found for message",
			"channel", message.Channel,
			"messageId", message.MessageID)

		// Not an error, just nothing registered for this shape of message
		return o.messageRepo.MarkAsProcessedByMessageID(
			ctx,
			message.MessageID,
			entity.StatusSkipped,
			"none",
			"No matching handler found",
			map[string]interface{}{
				"channel": message.Channel,
				"reason":  "no_matching_handler",
			},
		)
	}

	handlerType := fmt.Sprintf("%T", handler)
	o.logger.Info("Processing message with handler",
		"messageId", message.MessageID,
		"handler", handlerType,
		"channel", message.Channel)

	if err := o.messageRepo.UpdateStatusByMessageID(ctx, message.MessageID, entity.StatusProcessing, time.Now()); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	if err := handler.Process(ctx, message); err != nil {
		o.logger.Error("Handler failed to process message",
			"messageId", message.MessageID,
			"handler", handlerType,
			"error", err)

		// Mark as failed but don't propagate - other messages continue
		o.messageRepo.MarkAsProcessedByMessageID(
			ctx,
			message.MessageID,
			entity.StatusFailed,
			handlerType,
			err.Error(),
			nil,
		)
		return nil
	}

	return nil
}
