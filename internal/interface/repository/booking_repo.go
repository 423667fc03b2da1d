package repository

import (
	"context"
	"time"

	"concierge-service/internal/domain/entity"
	"concierge-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepository implements BookingRepository
type MongoBookingRepository struct {
	collection *mongo.Collection
}

// NewMongoBookingRepository creates a new booking repository
func NewMongoBookingRepository(db *mongo.Database) repository.BookingRepository {
	collection := db.Collection("bookings")

	// Unique index on bookingKey keeps re-parsed messages from creating
	// duplicate bookings
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"bookingKey": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	statusIndex := mongo.IndexModel{
		Keys: bson.M{"status": 1},
	}
	collection.Indexes().CreateOne(ctx, statusIndex)

	return &MongoBookingRepository{
		collection: collection,
	}
}

// FindByBookingKey finds a booking by its booking key
func (r *MongoBookingRepository) FindByBookingKey(ctx context.Context, bookingKey string) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.collection.FindOne(ctx, bson.M{"bookingKey": bookingKey}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// FindByStatus finds bookings by status, most recent first
func (r *MongoBookingRepository) FindByStatus(ctx context.Context, status string, limit int) ([]*entity.Booking, error) {
	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"status": status}, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []*entity.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// Upsert creates or updates a booking keyed by bookingKey
func (r *MongoBookingRepository) Upsert(ctx context.Context, booking *entity.Booking) error {
	booking.UpdatedAt = time.Now()

	if booking.ID == "" {
		booking.ID = primitive.NewObjectID().Hex()
		booking.CreatedAt = time.Now()
	}

	updateDoc := bson.M{
		"bookingKey":      booking.BookingKey,
		"passengerName":   booking.PassengerName,
		"company":         booking.Company,
		"phone":           booking.Phone,
		"email":           booking.Email,
		"flightNumber":    booking.FlightNumber,
		"airline":         booking.Airline,
		"date":            booking.Date,
		"time":            booking.Time,
		"terminal":        booking.Terminal,
		"passengerCount":  booking.PassengerCount,
		"serviceId":       booking.ServiceID,
		"serviceFee":      booking.ServiceFee,
		"specialRequests": booking.SpecialRequests,
		"status":          booking.Status,
		"source":          booking.Source,
		"sourceMessageId": booking.SourceMessageID,
		"confidence":      booking.Confidence,
		"createdAt":       booking.CreatedAt,
		"updatedAt":       booking.UpdatedAt,
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"bookingKey": booking.BookingKey},
		bson.M{"$set": updateDoc},
		opts,
	)
	return err
}
