package store

import (
	"context"
	"fmt"
	"sort"

	"go-showcase/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Products persists catalog items
type Products struct {
	coll *mongo.Collection
}

// NewProducts creates a product store on db
func NewProducts(db *mongo.Database) *Products {
	return &Products{coll: db.Collection(ProductsCollection)}
}

// List returns all products, or only those whose category equals category when it is non-empty.
func (s *Products) List(ctx context.Context, category string) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	return products, nil
}

// Get returns the product with the given id.
func (s *Products) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var p models.Product
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// Create inserts p, filling its id and timestamps.
func (s *Products) Create(ctx context.Context, p *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	p.ID = primitive.NewObjectID()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	if _, err := s.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of the product with the given id and returns the result.
func (s *Products) Update(ctx context.Context, id primitive.ObjectID, p *models.Product) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":       p.Name,
		"price":      p.Price,
		"details":    p.Details,
		"category":   p.Category,
		"image":      p.Image,
		"dimensions": p.Dimensions,
		"materials":  p.Materials,
		"updatedAt":  now(),
	}}
	var updated models.Product
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		return nil, translate(err)
	}
	return &updated, nil
}

// Delete removes the product with the given id.
func (s *Products) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Categories returns the distinct category labels present on products, sorted.
func (s *Products) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	values, err := s.coll.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}
	labels := make([]string, 0, len(values))
	for _, v := range values {
		if label, ok := v.(string); ok && label != "" {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels, nil
}

// CountInCategory returns how many products carry the category label.
func (s *Products) CountInCategory(ctx context.Context, category string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	count, err := s.coll.CountDocuments(ctx, bson.M{"category": category})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// RenameCategory relabels every product in category from to category to.
func (s *Products) RenameCategory(ctx context.Context, from, to string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	result, err := s.coll.UpdateMany(ctx,
		bson.M{"category": from},
		bson.M{"$set": bson.M{"category": to, "updatedAt": now()}})
	if err != nil {
		return 0, fmt.Errorf("relabel products: %w", err)
	}
	return result.ModifiedCount, nil
}
