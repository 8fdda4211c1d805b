package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the fulfilment state of an order
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// fulfilment order of the non-cancelled states
var statusRank = map[OrderStatus]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

// OrderStatuses lists every valid status.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

// Valid reports whether s is one of the enumerated statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether an order in state s may move to next.
// Moves go forward along pending, processing, shipped, delivered (skips allowed);
// cancelled is reachable from any non-terminal state. Re-applying the current
// state is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return statusRank[next] > statusRank[s]
}

// AllowedPredecessors returns the states from which next can be reached.
func AllowedPredecessors(next OrderStatus) []OrderStatus {
	var out []OrderStatus
	for _, s := range OrderStatuses() {
		if s.CanTransitionTo(next) {
			out = append(out, s)
		}
	}
	return out
}

// ProductSnapshot is a copy of the product taken when the order was placed.
// It is never refreshed from the catalog.
type ProductSnapshot struct {
	ID    primitive.ObjectID `bson:"id" json:"id" validate:"required"`
	Name  string             `bson:"name" json:"name" validate:"notblank"`
	Price *float64           `bson:"price" json:"price" validate:"required,gte=0"`
	Image string             `bson:"image" json:"image"`
}

// Customer is the delivery record of an order
type Customer struct {
	FullName        string `bson:"fullName" json:"fullName" validate:"notblank"`
	PrimaryNumber   string `bson:"primaryNumber" json:"primaryNumber" validate:"notblank"`
	SecondaryNumber string `bson:"secondaryNumber" json:"secondaryNumber"`
	Address         string `bson:"address" json:"address" validate:"notblank"`
	Landmark        string `bson:"landmark" json:"landmark" validate:"notblank"`
	Pincode         string `bson:"pincode" json:"pincode" validate:"notblank"`
}

// Order represents a buyer's order for a single product
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Product   ProductSnapshot    `bson:"product" json:"product"`
	Customer  Customer           `bson:"customer" json:"customer"`
	OrderDate time.Time          `bson:"orderDate" json:"orderDate"`
	Status    OrderStatus        `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateOrderRequest is the body of POST /api/orders
type CreateOrderRequest struct {
	Product  ProductSnapshot `json:"product"`
	Customer Customer        `json:"customer"`
}

// UpdateOrderRequest is the body of PUT /api/orders/{id}
type UpdateOrderRequest struct {
	Customer Customer `json:"customer"`
}

// StatusRequest is the body of PATCH /api/orders/{id}/status
type StatusRequest struct {
	Status OrderStatus `json:"status" validate:"required"`
}
