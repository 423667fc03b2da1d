package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"concierge-service/internal/domain/entity"
	"concierge-service/internal/domain/repository"
	"concierge-service/pkg/logger"
)

// WhatsappNotifier sends booking notifications through the WhatsApp gateway
type WhatsappNotifier struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	companyID   string
	agentID     string
}

// NewWhatsappNotifier creates a new WhatsApp notifier
func NewWhatsappNotifier(logger logger.Logger) repository.NotifierRepository {
	baseURL := os.Getenv("WHATSAPP_SERVICE_URL")
	if baseURL == "" {
		baseURL = "https://whatsapp-gateway.example.com"
	}

	return &WhatsappNotifier{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: os.Getenv("TOKEN"),
		companyID:   os.Getenv("COMPANY_ID"),
		agentID:     os.Getenv("AGENT_ID"),
	}
}

type whatsappImageMessage struct {
	URL string `json:"url"`
}

// SendNotification posts a notification to the WhatsApp gateway and returns
// the created task ID
func (r *WhatsappNotifier) SendNotification(ctx context.Context, notification *entity.Notification) (string, error) {
	scheduleAtUTC := notification.ScheduleAt.UTC().Format(time.RFC3339)

	var msg entity.SendConciergeMessage

	if notification.Image != nil && notification.Image.URL != "" {
		msg = entity.SendConciergeMessage{
			CompanyID:   r.companyID,
			AgentID:     r.agentID,
			PhoneNumber: notification.Phone,
			Message: entity.OutboundMessage{
				Image:   whatsappImageMessage{URL: notification.Image.URL},
				Caption: notification.Text,
			},
			ScheduleAt: scheduleAtUTC,
			Type:       "image",
		}
	} else {
		msg = entity.SendConciergeMessage{
			CompanyID:   r.companyID,
			AgentID:     r.agentID,
			PhoneNumber: notification.Phone,
			Message: entity.OutboundMessage{
				Text: notification.Text,
			},
			ScheduleAt: scheduleAtUTC,
			Type:       "text",
		}
	}

	if err := msg.Message.Validate(); err != nil {
		return "", fmt.Errorf("invalid message: %w", err)
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal notification: %w", err)
	}

	r.logger.Info("Sending notification to WhatsApp gateway",
		"phone", notification.Phone,
		"type", notification.Type,
		"scheduleAtUTC", scheduleAtUTC)

	url := fmt.Sprintf("%s/api/v1/concierge/send-message", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("WhatsApp gateway returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			TaskID     string `json:"taskId"`
			Status     string `json:"status"`
			ScheduleAt string `json:"scheduleAt"`
		} `json:"data"`
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	taskID := response.Data.TaskID

	r.logger.Info("Notification task created",
		"taskId", taskID,
		"phone", notification.Phone,
		"scheduleAt", scheduleAtUTC)

	return taskID, nil
}
