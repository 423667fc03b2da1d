package repository

import (
	"context"
	"fmt"
	"time"

	"concierge-service/internal/domain/entity"
	"concierge-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMessageRepository implements the MessageRepository interface
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoDB message repository
func NewMongoMessageRepository(db *mongo.Database) repository.MessageRepository {
	collection := db.Collection("messages")

	ctx := context.Background()

	// Index on messageId for fast lookups and uniqueness
	messageIDIndex := mongo.IndexModel{
		Keys:    bson.M{"messageId": 1},
		Options: options.Index().SetUnique(true),
	}

	statusIndex := mongo.IndexModel{
		Keys: bson.M{"processStatus": 1},
	}

	receivedAtIndex := mongo.IndexModel{
		Keys: bson.M{"receivedAt": -1},
	}

	// Compound index for draining unprocessed messages efficiently
	unprocessedIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "processStatus", Value: 1},
			{Key: "receivedAt", Value: 1},
		},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		messageIDIndex,
		statusIndex,
		receivedAtIndex,
		unprocessedIndex,
	})

	return &MongoMessageRepository{
		collection: collection,
	}
}

// Save saves an inbound message
func (r *MongoMessageRepository) Save(ctx context.Context, message *entity.Message) error {
	if message.ProcessStatus == "" {
		message.ProcessStatus = entity.StatusPending
	}

	_, err := r.collection.InsertOne(ctx, message)
	return err
}

// FindByMessageID finds a message by its channel message ID
func (r *MongoMessageRepository) FindByMessageID(ctx context.Context, messageID string) (*entity.Message, error) {
	var message entity.Message
	err := r.collection.FindOne(ctx, bson.M{"messageId": messageID}).Decode(&message)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// FindByMessageIDs finds multiple messages by channel message IDs (batch operation)
func (r *MongoMessageRepository) FindByMessageIDs(ctx context.Context, messageIDs []string) (map[string]*entity.Message, error) {
	if len(messageIDs) == 0 {
		return make(map[string]*entity.Message), nil
	}

	filter := bson.M{"messageId": bson.M{"$in": messageIDs}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	result := make(map[string]*entity.Message)
	for cursor.Next(ctx) {
		var message entity.Message
		if err := cursor.Decode(&message); err != nil {
			continue
		}
		result[message.MessageID] = &message
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// FindUnprocessed finds messages still waiting for processing (PENDING or empty)
func (r *MongoMessageRepository) FindUnprocessed(ctx context.Context, limit int) ([]*entity.Message, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"processStatus": ""},
			{"processStatus": entity.StatusPending},
			{"processStatus": bson.M{"$exists": false}},
		},
	}

	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, filter, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "receivedAt", Value: 1}}, // Process oldest first
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*entity.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

// FindByStatus finds messages by process status
func (r *MongoMessageRepository) FindByStatus(ctx context.Context, status string, limit int) ([]*entity.Message, error) {
	filter := bson.M{"processStatus": status}

	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, filter, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "receivedAt", Value: -1}}, // Most recent first
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*entity.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

// GetLastMessage gets the most recently received message for a channel
func (r *MongoMessageRepository) GetLastMessage(ctx context.Context, channel string) (*entity.Message, error) {
	filter := bson.M{}
	if channel != "" {
		filter["channel"] = channel
	}

	var message entity.Message
	opts := options.FindOne().SetSort(bson.D{{Key: "receivedAt", Value: -1}})
	err := r.collection.FindOne(ctx, filter, opts).Decode(&message)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// UpdateStatusByMessageID updates the status and, when moving to
// PROCESSING, the started time
func (r *MongoMessageRepository) UpdateStatusByMessageID(ctx context.Context, messageID string, status string, startedAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"processStatus": status,
		},
	}

	if status == entity.StatusProcessing && !startedAt.IsZero() {
		update["$set"].(bson.M)["processStartedAt"] = startedAt
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"messageId": messageID},
		update,
	)

	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no message found with messageId: %s", messageID)
	}

	return nil
}

// UpdateProcessStepsByMessageID updates the pipeline progress flags
func (r *MongoMessageRepository) UpdateProcessStepsByMessageID(ctx context.Context, messageID string, steps entity.ProcessSteps) error {
	update := bson.M{
		"$set": bson.M{
			"processSteps": steps,
		},
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"messageId": messageID},
		update,
	)
	return err
}

// MarkAsProcessedByMessageID marks a message as processed with full details
func (r *MongoMessageRepository) MarkAsProcessedByMessageID(ctx context.Context, messageID, status, processorType, errorDetail string, extractedData map[string]interface{}) error {
	update := bson.M{
		"$set": bson.M{
			"processedAt":   time.Now(),
			"processStatus": status,
			"processorType": processorType,
		},
	}

	if len(extractedData) > 0 {
		update["$set"].(bson.M)["extractedData"] = extractedData
	}

	if errorDetail != "" {
		update["$set"].(bson.M)["errorDetail"] = errorDetail
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"messageId": messageID},
		update,
	)

	if err != nil {
		return fmt.Errorf("failed to mark as processed: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no message found with messageId: %s", messageID)
	}

	return nil
}

// ResetProcessingMessages resets messages stuck in PROCESSING back to PENDING
func (r *MongoMessageRepository) ResetProcessingMessages(ctx context.Context) error {
	// Anything processing for more than 5 minutes is considered stale
	staleTime := time.Now().Add(-5 * time.Minute)

	filter := bson.M{
		"processStatus": entity.StatusProcessing,
		"$or": []bson.M{
			{"processStartedAt": bson.M{"$lt": staleTime}},
			{"processStartedAt": bson.M{"$exists": false}},
		},
	}

	update := bson.M{
		"$set": bson.M{
			"processStatus": entity.StatusPending,
			"errorDetail":   "Reset from stale PROCESSING state",
		},
	}

	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}
