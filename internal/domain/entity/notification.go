// internal/domain/entity/notification.go
package entity

import (
	"errors"
	"time"
)

// NotificationType defines the type of an outbound notification
type NotificationType string

const (
	BookingConfirmation NotificationType = "booking_confirmation"
	ReviewRequest       NotificationType = "review_request"
)

// ImagePayload represents the image structure for the WhatsApp API
type ImagePayload struct {
	URL string `json:"url" bson:"url"`
}

// Notification represents an outbound message queued to the WhatsApp gateway
type Notification struct {
	ID         string                 `json:"id,omitempty" bson:"_id,omitempty"`
	Type       NotificationType       `json:"type" bson:"type"`
	Phone      string                 `json:"phone" bson:"phone"`
	Text       string                 `json:"text" bson:"text"`
	Image      *ImagePayload          `json:"image,omitempty" bson:"image,omitempty"`
	ScheduleAt time.Time              `json:"scheduleAt" bson:"scheduleAt"`
	CreatedAt  time.Time              `json:"createdAt" bson:"createdAt"`
	SentAt     time.Time              `json:"sentAt,omitempty" bson:"sentAt,omitempty"`
	Status     string                 `json:"status" bson:"status"`
	Metadata   map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

func (n *Notification) SetImageURL(url string) {
	if url != "" {
		n.Image = &ImagePayload{URL: url}
	}
}

// SendConciergeMessage is the request body the WhatsApp gateway expects
type SendConciergeMessage struct {
	CompanyID   string          `json:"companyId" binding:"required"`
	AgentID     string          `json:"agentId" binding:"required"`
	PhoneNumber string          `json:"phoneNumber" binding:"required"`
	Message     OutboundMessage `json:"message" binding:"required"`
	ScheduleAt  string          `json:"scheduleAt" binding:"omitempty,datetime"`
	Type        string          `json:"type" binding:"required,oneof=text image"`
}

// OutboundMessage can be either a text or an image message
type OutboundMessage struct {
	Text    string      `json:"text,omitempty"`
	Image   interface{} `json:"image,omitempty"`
	Caption string      `json:"caption,omitempty"`
}

// Validate enforces the anyOf constraint on OutboundMessage
func (m OutboundMessage) Validate() error {
	if m.Text != "" && m.Image == nil {
		return nil
	}
	if m.Image != nil && m.Text == "" {
		return nil
	}
	return errors.New("message must be either text or image type with required fields")
}

type SendConciergeMessageResponse struct {
	Status     string  `json:"status"`
	ScheduleAt *string `json:"scheduleAt,omitempty"`
}
