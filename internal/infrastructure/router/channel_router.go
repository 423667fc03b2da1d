package router

import (
	"concierge-service/internal/domain/entity"
	"concierge-service/internal/usecase"
	"concierge-service/pkg/logger"
)

// ChannelRouter routes messages to registered handlers in registration order
type ChannelRouter struct {
	handlers []usecase.MessageHandler
	logger   logger.Logger
}

// NewChannelRouter creates a new channel router
func NewChannelRouter(logger logger.Logger) *ChannelRouter {
	return &ChannelRouter{
		handlers: make([]usecase.MessageHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler
func (r *ChannelRouter) Register(handler usecase.MessageHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered handler", "handler", handler)
}

// GetHandler returns the first handler that accepts the message
func (r *ChannelRouter) GetHandler(message *entity.Message) usecase.MessageHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(message) {
			return handler
		}
	}
	return nil
}
