package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"concierge-service/internal/domain/entity"
	"concierge-service/internal/domain/repository"
	"concierge-service/pkg/logger"
	"concierge-service/pkg/metrics"
	"concierge-service/pkg/parser"
	"concierge-service/templates"
)

// BookingProcessor turns inbound booking-request messages into bookings
type BookingProcessor struct {
	messageRepo repository.MessageRepository
	bookingRepo repository.BookingRepository
	serviceRepo repository.ServiceRepository
	notifier    repository.NotifierRepository
	parser      *parser.RequestParser
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// NewBookingProcessor creates a new booking processor
func NewBookingProcessor(
	messageRepo repository.MessageRepository,
	bookingRepo repository.BookingRepository,
	serviceRepo repository.ServiceRepository,
	notifier repository.NotifierRepository,
	requestParser *parser.RequestParser,
	m *metrics.Metrics,
	logger logger.Logger,
) *BookingProcessor {
	return &BookingProcessor{
		messageRepo: messageRepo,
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		notifier:    notifier,
		parser:      requestParser,
		metrics:     m,
		logger:      logger,
	}
}

// ProcessBookingMessage parses one message and either auto-creates a booking
// (high confidence) or queues it for manual review.
func (bp *BookingProcessor) ProcessBookingMessage(ctx context.Context, message *entity.Message) error {
	bp.logger.Info("Starting booking message processing",
		"messageId", message.MessageID,
		"channel", message.Channel)

	start := time.Now()
	defer func() {
		bp.metrics.ProcessingTime.Observe(time.Since(start).Seconds())
	}()

	// Mark as PROCESSING
	if err := bp.messageRepo.UpdateStatusByMessageID(ctx, message.MessageID, entity.StatusProcessing, time.Now()); err != nil {
		bp.logger.Error("Failed to update status to PROCESSING", "error", err)
		return err
	}

	bp.metrics.MessagesProcessed.Inc()

	body := message.Body
	if body == "" {
		body = message.HTMLBody
	}

	// The service catalog supplies the active allow-list for the keyword
	// matcher. If the catalog is unreachable the parser runs unfiltered.
	var activeCodes []string
	if services, err := bp.serviceRepo.ListActive(ctx); err != nil {
		bp.logger.Error("Failed to load active services, parsing unfiltered", "error", err)
		bp.metrics.ErrorsCount.WithLabelValues("service_catalog").Inc()
	} else {
		for _, service := range services {
			activeCodes = append(activeCodes, service.Code)
		}
	}

	result := bp.parser.Parse(body, activeCodes)

	steps := entity.ProcessSteps{EntitiesExtracted: true}
	bp.messageRepo.UpdateProcessStepsByMessageID(ctx, message.MessageID, steps)

	if !result.Success {
		bp.metrics.ParseOutcomes.WithLabelValues("failed").Inc()
		bp.logger.Info("Message could not be parsed into a booking",
			"messageId", message.MessageID,
			"error", result.Error,
			"suggestions", len(result.Suggestions))

		bp.sendReviewAck(ctx, message, result.Suggestions)

		return bp.messageRepo.MarkAsProcessedByMessageID(
			ctx,
			message.MessageID,
			entity.StatusNeedsReview,
			"booking",
			result.Error,
			map[string]interface{}{
				"suggestions": result.Suggestions,
			},
		)
	}

	data := result.Data
	bp.metrics.ParseOutcomes.WithLabelValues(data.Confidence.Overall).Inc()

	extractedData := map[string]interface{}{
		"passengerName":  data.PassengerName,
		"flightNumber":   data.FlightNumber,
		"airline":        data.Airline,
		"date":           data.Date,
		"time":           data.Time,
		"passengerCount": data.PassengerCount,
		"services":       data.Services,
		"confidence":     data.Confidence.Overall,
	}

	// Anything below the high bucket goes to a human.
	if data.Confidence.Overall != parser.ConfidenceHigh {
		bp.logger.Info("Confidence too low for auto-booking, queueing for review",
			"messageId", message.MessageID,
			"confidence", data.Confidence.Overall)

		return bp.messageRepo.MarkAsProcessedByMessageID(
			ctx,
			message.MessageID,
			entity.StatusNeedsReview,
			"booking",
			"",
			extractedData,
		)
	}

	booking := bp.buildBooking(ctx, data, message)

	if err := bp.bookingRepo.Upsert(ctx, booking); err != nil {
		bp.logger.Error("Failed to save booking", "bookingKey", booking.BookingKey, "error", err)
		bp.metrics.ErrorsCount.WithLabelValues("booking_upsert").Inc()

		bp.messageRepo.MarkAsProcessedByMessageID(
			ctx,
			message.MessageID,
			entity.StatusFailed,
			"booking",
			err.Error(),
			extractedData,
		)
		return err
	}

	bp.metrics.BookingsCreated.Inc()
	steps.BookingCreated = true
	bp.messageRepo.UpdateProcessStepsByMessageID(ctx, message.MessageID, steps)

	if bp.sendConfirmation(ctx, message, booking) {
		steps.ConfirmationSent = true
		bp.messageRepo.UpdateProcessStepsByMessageID(ctx, message.MessageID, steps)
	}

	extractedData["bookingKey"] = booking.BookingKey
	extractedData["serviceId"] = booking.ServiceID

	if err := bp.messageRepo.MarkAsProcessedByMessageID(
		ctx,
		message.MessageID,
		entity.StatusCompleted,
		"booking",
		"",
		extractedData,
	); err != nil {
		bp.logger.Error("Failed to mark message as processed", "error", err)
		return err
	}

	bp.logger.Info("Booking created from message",
		"messageId", message.MessageID,
		"bookingKey", booking.BookingKey,
		"flight", booking.FlightNumber)

	return nil
}

// ProcessPendingMessages drains unprocessed messages with safety checks
func (bp *BookingProcessor) ProcessPendingMessages(ctx context.Context) error {
	// First, reset any stale processing messages
	if err := bp.messageRepo.ResetProcessingMessages(ctx); err != nil {
		bp.logger.Error("Failed to reset stale processing messages", "error", err)
	}

	messages, err := bp.messageRepo.FindUnprocessed(ctx, 100)
	if err != nil {
		bp.logger.Error("Failed to get unprocessed messages", "error", err)
		return err
	}

	bp.logger.Info("Found unprocessed messages", "count", len(messages))

	successCount := 0
	failCount := 0

	for _, message := range messages {
		if err := bp.ProcessBookingMessage(ctx, message); err != nil {
			bp.logger.Error("Failed to process message", "messageId", message.MessageID, "error", err)
			failCount++
		} else {
			successCount++
		}
	}

	bp.logger.Info("Message processing batch completed",
		"total", len(messages),
		"success", successCount,
		"failed", failCount)

	return nil
}

// buildBooking maps a parsed record onto a persistent booking. The first
// matched service becomes the booked service; its default fee comes from
// the catalog.
func (bp *BookingProcessor) buildBooking(ctx context.Context, data *parser.ParsedBookingData, message *entity.Message) *entity.Booking {
	booking := &entity.Booking{
		BookingKey:      bp.createBookingKey(data.PassengerName, data.FlightNumber, data.Date),
		PassengerName:   data.PassengerName,
		Company:         data.Company,
		Phone:           data.Phone,
		Email:           data.Email,
		FlightNumber:    data.FlightNumber,
		Airline:         data.Airline,
		Date:            data.Date,
		Time:            data.Time,
		Terminal:        data.Terminal,
		PassengerCount:  data.PassengerCount,
		SpecialRequests: data.SpecialRequests,
		Status:          entity.BookingStatusConfirmed,
		Source:          message.Channel,
		SourceMessageID: message.MessageID,
		Confidence:      data.Confidence.Overall,
	}

	if len(data.Services) > 0 {
		booking.ServiceID = data.Services[0]
		if service, err := bp.serviceRepo.GetByCode(ctx, booking.ServiceID); err != nil {
			bp.logger.Warn("Service fee lookup failed", "serviceId", booking.ServiceID, "error", err)
		} else {
			booking.ServiceFee = service.DefaultFee
		}
	}

	return booking
}

// sendConfirmation pushes the WhatsApp confirmation for a new booking.
// Delivery failures are logged, not fatal: the booking already exists.
func (bp *BookingProcessor) sendConfirmation(ctx context.Context, message *entity.Message, booking *entity.Booking) bool {
	phone := booking.Phone
	if phone == "" && message.Channel == entity.ChannelWhatsApp {
		phone = message.From
	}
	if phone == "" {
		bp.logger.Info("No phone for confirmation, skipping", "bookingKey", booking.BookingKey)
		return false
	}

	notification := &entity.Notification{
		Type:       entity.BookingConfirmation,
		Phone:      phone,
		Text:       templates.FormatBookingConfirmation(booking),
		ScheduleAt: time.Now().Add(2 * time.Second),
		CreatedAt:  time.Now(),
		Status:     "pending",
		Metadata: map[string]interface{}{
			"bookingKey":      booking.BookingKey,
			"sourceMessageId": message.MessageID,
			"messageType":     "confirmation",
		},
	}
	notification.SetImageURL(templates.ConfirmationImageURL)

	taskID, err := bp.notifier.SendNotification(ctx, notification)
	if err != nil {
		bp.logger.Error("Failed to send confirmation", "bookingKey", booking.BookingKey, "error", err)
		bp.metrics.ErrorsCount.WithLabelValues("notification").Inc()
		return false
	}

	bp.logger.Info("Sent booking confirmation", "taskId", taskID, "phone", phone)
	return true
}

// sendReviewAck replies with the missing-detail hints when a WhatsApp or SMS
// request could not be parsed.
func (bp *BookingProcessor) sendReviewAck(ctx context.Context, message *entity.Message, suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	if message.Channel != entity.ChannelWhatsApp && message.Channel != entity.ChannelSMS {
		return
	}

	notification := &entity.Notification{
		Type:       entity.ReviewRequest,
		Phone:      message.From,
		Text:       templates.FormatReviewAck(suggestions),
		ScheduleAt: time.Now().Add(2 * time.Second),
		CreatedAt:  time.Now(),
		Status:     "pending",
		Metadata: map[string]interface{}{
			"sourceMessageId": message.MessageID,
			"messageType":     "review_ack",
		},
	}

	if _, err := bp.notifier.SendNotification(ctx, notification); err != nil {
		bp.logger.Error("Failed to send review ack", "messageId", message.MessageID, "error", err)
		bp.metrics.ErrorsCount.WithLabelValues("notification").Inc()
	}
}

func (bp *BookingProcessor) createBookingKey(passengerName, flightNumber, date string) string {
	normalized := strings.ToUpper(strings.TrimSpace(passengerName))
	flight := strings.ReplaceAll(strings.ToUpper(flightNumber), " ", "")
	return fmt.Sprintf("%s:%s:%s", normalized, flight, date)
}
