package entity

import (
	"time"
)

// Message channels
const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
	ChannelSMS      = "sms"
	ChannelManual   = "manual"
)

// Message Process Status
const (
	StatusPending     = "PENDING"
	StatusProcessing  = "PROCESSING"
	StatusCompleted   = "COMPLETED"
	StatusFailed      = "FAILED"
	StatusSkipped     = "SKIPPED"
	StatusNeedsReview = "NEEDS_REVIEW"
)

// Message represents an inbound booking-request message from any channel
type Message struct {
	MessageID        string                 `bson:"messageId"`
	Channel          string                 `bson:"channel"`
	From             string                 `bson:"from"`
	To               string                 `bson:"to"`
	Subject          string                 `bson:"subject"`
	Body             string                 `bson:"body"`
	HTMLBody         string                 `bson:"htmlBody"`
	ReceivedAt       time.Time              `bson:"receivedAt"`
	Labels           []string               `bson:"labels"`
	ProcessedAt      time.Time              `bson:"processedAt"`
	ProcessStatus    string                 `bson:"processStatus"`
	ProcessorType    string                 `bson:"processorType"`
	ProcessStartedAt time.Time              `bson:"processStartedAt"`
	ProcessSteps     ProcessSteps           `bson:"processSteps"`
	ErrorDetail      string                 `bson:"errorDetail"`
	ExtractedData    map[string]interface{} `bson:"extractedData"`
}

// ProcessSteps tracks how far a message got through the booking pipeline
type ProcessSteps struct {
	EntitiesExtracted bool `bson:"entitiesExtracted"`
	BookingCreated    bool `bson:"bookingCreated"`
	ConfirmationSent  bool `bson:"confirmationSent"`
}
