package usecase

import (
	"context"
	"strings"

	"concierge-service/internal/domain/entity"
)

// BookingHandlerAdapter adapts the BookingProcessor to the MessageHandler
// interface. Channels carrying free-text requests are always accepted;
// email is accepted only when a subject pattern matches.
type BookingHandlerAdapter struct {
	processor interface {
		ProcessBookingMessage(ctx context.Context, message *entity.Message) error
	}
	name            string
	subjectPatterns []string
}

// NewBookingHandlerAdapter creates a new booking handler adapter
func NewBookingHandlerAdapter(processor interface {
	ProcessBookingMessage(ctx context.Context, message *entity.Message) error
}, name string, subjectPatterns []string) *BookingHandlerAdapter {
	return &BookingHandlerAdapter{
		processor:       processor,
		name:            name,
		subjectPatterns: subjectPatterns,
	}
}

// CanHandle checks if this handler can process the message
func (a *BookingHandlerAdapter) CanHandle(message *entity.Message) bool {
	switch message.Channel {
	case entity.ChannelWhatsApp, entity.ChannelSMS, entity.ChannelManual:
		return true
	case entity.ChannelEmail:
		for _, pattern := range a.subjectPatterns {
			if strings.Contains(strings.ToLower(message.Subject), strings.ToLower(pattern)) {
				return true
			}
		}
	}
	return false
}

// Process processes the message through the booking pipeline
func (a *BookingHandlerAdapter) Process(ctx context.Context, message *entity.Message) error {
	return a.processor.ProcessBookingMessage(ctx, message)
}
