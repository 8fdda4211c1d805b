package store

import (
	"context"
	"errors"
	"fmt"

	"go-showcase/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Orders persists placed orders
type Orders struct {
	coll *mongo.Collection
}

// NewOrders creates an order store on db
func NewOrders(db *mongo.Database) *Orders {
	return &Orders{coll: db.Collection(OrdersCollection)}
}

// Create inserts o as a new pending order.
func (s *Orders) Create(ctx context.Context, o *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	o.ID = primitive.NewObjectID()
	o.Status = models.StatusPending
	o.CreatedAt = now()
	o.UpdatedAt = o.CreatedAt
	if o.OrderDate.IsZero() {
		o.OrderDate = o.CreatedAt
	}
	if _, err := s.coll.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// List returns orders newest first, restricted to status when it is non-empty.
func (s *Orders) List(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}
	return orders, nil
}

// Get returns the order with the given id.
func (s *Orders) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var o models.Order
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

// UpdateCustomer replaces the delivery record of the order.
func (s *Orders) UpdateCustomer(ctx context.Context, id primitive.ObjectID, c models.Customer) (*models.Order, error) {
	return s.findOneAndSet(ctx, bson.M{"_id": id}, bson.M{"customer": c})
}

// UpdateStatus moves the order to status. The write only applies when the stored
// status may transition to the new one, so a concurrent change cannot be skipped over.
// Returns ErrInvalidTransition when the current state forbids the move.
func (s *Orders) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": models.AllowedPredecessors(status)},
	}
	o, err := s.findOneAndSet(ctx, filter, bson.M{"status": status})
	if !errors.Is(err, ErrNotFound) {
		return o, err
	}

	// nothing matched: unknown id or a forbidden transition
	if _, getErr := s.Get(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrInvalidTransition
}

func (s *Orders) findOneAndSet(ctx context.Context, filter, set bson.M) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	set["updatedAt"] = now()
	var o models.Order
	err := s.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&o)
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

// Delete removes the order with the given id.
func (s *Orders) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
