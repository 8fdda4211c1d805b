package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog item. Category holds the name of a Category document.
type Product struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Price      float64            `bson:"price" json:"price"`
	Details    string             `bson:"details" json:"details"`
	Category   string             `bson:"category" json:"category"`
	Image      string             `bson:"image" json:"image"`
	Dimensions string             `bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	Materials  string             `bson:"materials,omitempty" json:"materials,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductRequest is the body for creating or replacing a product
type ProductRequest struct {
	Name       string   `json:"name" validate:"notblank"`
	Price      *float64 `json:"price" validate:"required,gte=0"`
	Details    string   `json:"details" validate:"notblank"`
	Category   string   `json:"category" validate:"notblank"`
	Image      string   `json:"image"`
	Dimensions string   `json:"dimensions"`
	Materials  string   `json:"materials"`
}

// Apply copies the request fields onto p.
func (req ProductRequest) Apply(p *Product) {
	p.Name = req.Name
	p.Price = *req.Price
	p.Details = req.Details
	p.Category = req.Category
	p.Image = req.Image
	p.Dimensions = req.Dimensions
	p.Materials = req.Materials
}
