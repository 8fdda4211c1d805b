package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account that can sign in to the storefront
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FullName   string             `bson:"fullName" json:"fullName"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password,omitempty" json:"-"`
	IsAdmin    bool               `bson:"isAdmin" json:"isAdmin"`
	ProfilePic string             `bson:"profilePic,omitempty" json:"profilePic"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SignupRequest is the body of POST /api/auth/signup
type SignupRequest struct {
	FullName    string `json:"fullName" validate:"notblank"`
	Email       string `json:"email" validate:"notblank,email"`
	Password    string `json:"password" validate:"notblank,min=6,max=72"`
	AdminSecret string `json:"adminSecret"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

// ProfilePicRequest is the body of PUT /api/auth/update-profile
type ProfilePicRequest struct {
	ProfilePic string `json:"profilePic" validate:"notblank"`
}

// CreateUserRequest is the body of POST /api/users (admin only)
type CreateUserRequest struct {
	FullName string `json:"fullName" validate:"notblank"`
	Email    string `json:"email" validate:"notblank,email"`
	Password string `json:"password" validate:"notblank,min=6,max=72"`
	IsAdmin  bool   `json:"isAdmin"`
}

// AuthResponse is returned by signup and login: the user plus the session token
// for callers that cannot rely on the cookie.
type AuthResponse struct {
	User
	Token string `json:"token"`
}
