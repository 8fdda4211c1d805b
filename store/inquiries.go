package store

import (
	"context"
	"fmt"

	"go-showcase/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Inquiries persists contact form submissions
type Inquiries struct {
	coll *mongo.Collection
}

// NewInquiries creates an inquiry store on db
func NewInquiries(db *mongo.Database) *Inquiries {
	return &Inquiries{coll: db.Collection(InquiriesCollection)}
}

// Create inserts in, filling its id and timestamps.
func (s *Inquiries) Create(ctx context.Context, in *models.Inquiry) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	in.ID = primitive.NewObjectID()
	in.CreatedAt = now()
	in.UpdatedAt = in.CreatedAt
	if _, err := s.coll.InsertOne(ctx, in); err != nil {
		return fmt.Errorf("insert inquiry: %w", err)
	}
	return nil
}

// List returns all inquiries, newest first.
func (s *Inquiries) List(ctx context.Context) ([]models.Inquiry, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find inquiries: %w", err)
	}
	inquiries := []models.Inquiry{}
	if err := cursor.All(ctx, &inquiries); err != nil {
		return nil, fmt.Errorf("read inquiries: %w", err)
	}
	return inquiries, nil
}

// Update replaces name, email and message of the inquiry with the given id.
func (s *Inquiries) Update(ctx context.Context, id primitive.ObjectID, in *models.Inquiry) (*models.Inquiry, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":      in.Name,
		"email":     in.Email,
		"message":   in.Message,
		"updatedAt": now(),
	}}
	var updated models.Inquiry
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		return nil, translate(err)
	}
	return &updated, nil
}

// Delete removes the inquiry with the given id.
func (s *Inquiries) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete inquiry: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
