package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concierge-service/internal/domain/entity"
	"concierge-service/pkg/logger"
)

type stubHandler struct {
	accepts bool
	err     error
	seen    []*entity.Message
}

func (h *stubHandler) CanHandle(message *entity.Message) bool { return h.accepts }

func (h *stubHandler) Process(ctx context.Context, message *entity.Message) error {
	h.seen = append(h.seen, message)
	return h.err
}

type stubRouter struct {
	handler MessageHandler
}

func (r *stubRouter) Register(handler MessageHandler) { r.handler = handler }

func (r *stubRouter) GetHandler(message *entity.Message) MessageHandler {
	if r.handler != nil && r.handler.CanHandle(message) {
		return r.handler
	}
	return nil
}

func TestProcessMessage_DispatchesToHandler(t *testing.T) {
	messageRepo := newFakeMessageRepo()
	handler := &stubHandler{accepts: true}
	orchestrator := NewMessageOrchestrator(messageRepo, &stubRouter{handler: handler}, logger.NewNopLogger())

	message := &entity.Message{MessageID: "msg-10", Channel: entity.ChannelWhatsApp}
	err := orchestrator.ProcessMessage(context.Background(), message)

	require.NoError(t, err)
	require.Len(t, handler.seen, 1)
	assert.Equal(t, "msg-10", handler.seen[0].MessageID)
}

func TestProcessMessage_NoHandlerSkips(t *testing.T) {
	messageRepo := newFakeMessageRepo()
	orchestrator := NewMessageOrchestrator(messageRepo, &stubRouter{}, logger.NewNopLogger())

	message := &entity.Message{MessageID: "msg-11", Channel: entity.ChannelEmail}
	err := orchestrator.ProcessMessage(context.Background(), message)

	require.NoError(t, err)
	assert.Equal(t, entity.StatusSkipped, messageRepo.statuses["msg-11"])
}

func TestProcessMessage_HandlerErrorMarksFailedWithoutPropagating(t *testing.T) {
	messageRepo := newFakeMessageRepo()
	handler := &stubHandler{accepts: true, err: errors.New("boom")}
	orchestrator := NewMessageOrchestrator(messageRepo, &stubRouter{handler: handler}, logger.NewNopLogger())

	message := &entity.Message{MessageID: "msg-12", Channel: entity.ChannelWhatsApp}
	err := orchestrator.ProcessMessage(context.Background(), message)

	require.NoError(t, err)
	assert.Equal(t, entity.StatusFailed, messageRepo.statuses["msg-12"])
	assert.Equal(t, "boom", messageRepo.errorDetail["msg-12"])
}

func TestBookingHandlerAdapter_CanHandle(t *testing.T) {
	adapter := NewBookingHandlerAdapter(nil, "booking", []string{"booking", "concierge"})

	assert.True(t, adapter.CanHandle(&entity.Message{Channel: entity.ChannelWhatsApp}))
	assert.True(t, adapter.CanHandle(&entity.Message{Channel: entity.ChannelSMS}))
	assert.True(t, adapter.CanHandle(&entity.Message{Channel: entity.ChannelManual}))
	assert.True(t, adapter.CanHandle(&entity.Message{Channel: entity.ChannelEmail, Subject: "Booking Request - UA 457"}))
	assert.True(t, adapter.CanHandle(&entity.Message{Channel: entity.ChannelEmail, Subject: "VIP Concierge needed"}))
	assert.False(t, adapter.CanHandle(&entity.Message{Channel: entity.ChannelEmail, Subject: "Weekly newsletter"}))
}
