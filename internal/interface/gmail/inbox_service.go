package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"concierge-service/internal/domain/entity"
	"concierge-service/internal/domain/repository"
	"concierge-service/internal/usecase"
	"concierge-service/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// InboxService polls Gmail for booking-request emails and feeds them into
// the message pipeline
type InboxService struct {
	gmailService *gmail.Service
	messageRepo  repository.MessageRepository
	orchestrator *usecase.MessageOrchestrator
	logger       logger.Logger
	pollInterval time.Duration
}

// NewInboxService creates a new Gmail inbox service
func NewInboxService(
	ctx context.Context,
	tokenSource oauth2.TokenSource,
	messageRepo repository.MessageRepository,
	orchestrator *usecase.MessageOrchestrator,
	logger logger.Logger,
	pollInterval time.Duration,
) (*InboxService, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &InboxService{
		gmailService: service,
		messageRepo:  messageRepo,
		orchestrator: orchestrator,
		logger:       logger,
		pollInterval: pollInterval,
	}, nil
}

// FetchMessages fetches new emails from Gmail, stores them and dispatches
// them for immediate processing
func (s *InboxService) FetchMessages(ctx context.Context) error {
	fetchFrom, hasLastMessage := s.fetchWindow(ctx)

	queryDate := fetchFrom
	if hasLastMessage {
		// Go back 3 days to catch anything we might have missed
		queryDate = fetchFrom.AddDate(0, 0, -3)
	}

	query := fmt.Sprintf("after:%s", queryDate.Format("2006/01/02"))
	s.logger.Info("Querying Gmail", "query", query)

	resp, err := s.gmailService.Users.Messages.List("me").Q(query).Do()
	if err != nil {
		s.logger.Error("Failed to list messages", "error", err)
		return err
	}

	if len(resp.Messages) == 0 {
		s.logger.Info("No new messages found")
		return nil
	}

	messageIDs := make([]string, len(resp.Messages))
	for i, msg := range resp.Messages {
		messageIDs[i] = msg.Id
	}

	existing, err := s.messageRepo.FindByMessageIDs(ctx, messageIDs)
	if err != nil {
		s.logger.Error("Failed to batch check existing messages", "error", err)
		existing = make(map[string]*entity.Message)
	}

	newCount := 0
	skippedOldCount := 0
	skippedExistingCount := 0

	for _, msg := range resp.Messages {
		if _, exists := existing[msg.Id]; exists {
			skippedExistingCount++
			continue
		}

		fullMsg, err := s.gmailService.Users.Messages.Get("me", msg.Id).Do()
		if err != nil {
			s.logger.Error("Failed to get message", "messageId", msg.Id, "error", err)
			continue
		}

		messageTime := time.Unix(0, fullMsg.InternalDate*int64(time.Millisecond))

		if hasLastMessage && !messageTime.After(fetchFrom) {
			skippedOldCount++
			continue
		}

		message, err := s.convertToMessage(fullMsg)
		if err != nil {
			s.logger.Error("Failed to convert message", "messageId", msg.Id, "error", err)
			continue
		}

		if !s.FilterSubject(message.Subject) {
			s.logger.Debug("Message doesn't match subject filter", "subject", message.Subject)
			continue
		}

		s.logger.Info("Ingesting new message",
			"subject", message.Subject,
			"messageId", message.MessageID,
			"receivedAt", message.ReceivedAt.Format("2006-01-02 15:04:05 UTC"))

		if err := s.messageRepo.Save(ctx, message); err != nil {
			s.logger.Error("Failed to save message", "messageId", msg.Id, "error", err)
			continue
		}

		// Dispatch immediately; the sweep ticker picks up anything missed
		if err := s.orchestrator.ProcessMessage(ctx, message); err != nil {
			s.logger.Error("Failed to dispatch message", "messageId", msg.Id, "error", err)
		}

		newCount++
	}

	s.logger.Info("Message fetch completed",
		"totalFromGmail", len(resp.Messages),
		"alreadyInDB", skippedExistingCount,
		"skippedOld", skippedOldCount,
		"newMessages", newCount)

	return nil
}

// fetchWindow returns the watermark to fetch from and whether it came from a
// stored message. A store error is logged and falls back to the default
// window so one outage does not stall ingestion.
func (s *InboxService) fetchWindow(ctx context.Context) (time.Time, bool) {
	lastMessage, err := s.messageRepo.GetLastMessage(ctx, entity.ChannelEmail)
	if err != nil {
		s.logger.Error("Failed to load last message watermark", "error", err)
	}

	if lastMessage != nil && !lastMessage.ReceivedAt.IsZero() {
		s.logger.Info("Using last received message time",
			"lastReceivedAt", lastMessage.ReceivedAt.Format("2006-01-02 15:04:05 UTC"))
		return lastMessage.ReceivedAt, true
	}

	// Default starting point when the store is empty
	fetchFrom := time.Now().AddDate(0, 0, -7)
	s.logger.Info("No previous messages, using default start date",
		"startDate", fetchFrom.Format("2006-01-02 15:04:05 UTC"))
	return fetchFrom, false
}

// StartPolling starts polling Gmail for new messages
func (s *InboxService) StartPolling(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Gmail polling stopped")
			return
		case <-ticker.C:
			s.logger.Info("Polling Gmail for new messages")
			if err := s.FetchMessages(ctx); err != nil {
				s.logger.Error("Error polling Gmail", "error", err)
			}
		}
	}
}

// FilterSubject keeps only subjects that look like concierge requests
func (s *InboxService) FilterSubject(subject string) bool {
	lower := strings.ToLower(subject)
	for _, keyword := range []string{"booking", "concierge", "assistance", "meet", "vip"} {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// convertToMessage converts a Gmail message to our domain entity
func (s *InboxService) convertToMessage(msg *gmail.Message) (*entity.Message, error) {
	message := &entity.Message{
		MessageID: msg.Id,
		Channel:   entity.ChannelEmail,
		Labels:    msg.LabelIds,
	}

	// Extract header information
	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "From":
			message.From = header.Value
		case "To":
			message.To = header.Value
		case "Subject":
			message.Subject = header.Value
		}
	}

	// Extract message body
	if msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
		data, err := base64.URLEncoding.DecodeString(msg.Payload.Body.Data)
		if err != nil {
			return nil, err
		}
		message.Body = string(data)
	}

	// Handle multipart messages; attachments are ignored, booking requests
	// are plain text
	for _, part := range msg.Payload.Parts {
		if part.Body == nil || part.Body.Data == "" {
			continue
		}
		data, err := base64.URLEncoding.DecodeString(part.Body.Data)
		if err != nil {
			continue
		}
		switch part.MimeType {
		case "text/plain":
			message.Body = string(data)
		case "text/html":
			message.HTMLBody = string(data)
		}
	}

	message.ReceivedAt = time.Unix(0, msg.InternalDate*int64(time.Millisecond))

	return message, nil
}
