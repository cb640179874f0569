package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a storefront account. Passwords are bcrypt hashes and never
// serialized.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	Avatar    string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"-"`
}

// AuthUser is the login/register response payload: public profile plus a
// fresh bearer token.
type AuthUser struct {
	ID     primitive.ObjectID `json:"_id"`
	Name   string             `json:"name"`
	Email  string             `json:"email"`
	Token  string             `json:"token"`
}

// RegisterRequest is the signup body.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the login body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the fields a user may change. Empty fields
// are left untouched.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Avatar   string `json:"avatar"`
	Password string `json:"password"`
}

// DeleteAccountRequest confirms the caller's password before the account is
// removed.
type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

// Profile is the authenticated profile view.
type Profile struct {
	ID        primitive.ObjectID `json:"_id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Address   string             `json:"address,omitempty"`
	Avatar    string             `json:"avatar,omitempty"`
	Token     string             `json:"token,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}
