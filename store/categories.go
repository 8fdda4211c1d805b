package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-showcase/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Categories persists the named product groupings
type Categories struct {
	coll *mongo.Collection
}

// NewCategories creates a category store on db
func NewCategories(db *mongo.Database) *Categories {
	return &Categories{coll: db.Collection(CategoriesCollection)}
}

// List returns all categories sorted by name.
func (s *Categories) List(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}
	return categories, nil
}

// Get returns the category with the given id.
func (s *Categories) Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// FindByName returns the category called name.
func (s *Categories) FindByName(ctx context.Context, name string) (*models.Category, error) {
	return s.findOne(ctx, bson.M{"name": strings.TrimSpace(name)})
}

func (s *Categories) findOne(ctx context.Context, filter bson.M) (*models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var c models.Category
	if err := s.coll.FindOne(ctx, filter).Decode(&c); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// Create inserts a category with a trimmed name. A taken name yields ErrDuplicate.
func (s *Categories) Create(ctx context.Context, c *models.Category) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	c.ID = primitive.NewObjectID()
	c.Name = strings.TrimSpace(c.Name)
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	if _, err := s.coll.InsertOne(ctx, c); err != nil {
		if err = translate(err); errors.Is(err, ErrDuplicate) {
			return err
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// Rename changes the name of the category with the given id and returns the result.
func (s *Categories) Rename(ctx context.Context, id primitive.ObjectID, name string) (*models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"name": strings.TrimSpace(name), "updatedAt": now()}}
	var c models.Category
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&c)
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// Delete removes the category with the given id.
func (s *Categories) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
