package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Inquiry is a contact form submission
type Inquiry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// InquiryRequest is the body for creating or editing an inquiry
type InquiryRequest struct {
	Name    string `json:"name" validate:"notblank"`
	Email   string `json:"email" validate:"notblank,email"`
	Message string `json:"message" validate:"notblank"`
}

// Apply copies the request fields onto in.
func (req InquiryRequest) Apply(in *Inquiry) {
	in.Name = req.Name
	in.Email = req.Email
	in.Message = req.Message
}
