package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	UserRoleRider UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email" validate:"required,email"`
	Password    string             `json:"-" bson:"password"`
	Role        UserRole           `json:"role" bson:"role" default:"user"`
	LastLoginAt *time.Time         `json:"lastLoginAt,omitempty" bson:"last_login_at"`
	LoginCount  int                `json:"loginCount" bson:"login_count"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
	DeletedAt   *time.Time         `json:"-" bson:"deleted_at"`
}

// PublicUser is the shape returned by the auth and admin endpoints.
type PublicUser struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        UserRole   `json:"role"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	LoginCount  int        `json:"loginCount"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:          u.ID.Hex(),
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		LastLoginAt: u.LastLoginAt,
		LoginCount:  u.LoginCount,
	}
}
