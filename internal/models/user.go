package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is a person in the graph. Users are always the receiving side of a
// NOTIFIED relationship.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;size:64"`
	Name        string    `json:"name"`
	Email       string    `json:"email" gorm:"uniqueIndex"`
	FirebaseUID *string   `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserCompact is the public projection of a user embedded in other payloads
type UserCompact struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToCompact returns the public projection of u
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name}
}

// CreateUserRequest defines the fields needed to register a user node
type CreateUserRequest struct {
	ID          string `json:"id" validate:"omitempty,max=64"`
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	FirebaseUID string `json:"firebase_uid" validate:"omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
