package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is a user's access level
type Role string

const (
	RoleStudent   Role = "student"
	RoleCounselor Role = "counselor"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleCounselor || r == RoleAdmin
}

// User is an account that can call the API
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	Name         string    `json:"name" bson:"name"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// UserClaims are JWT claims for authenticated users
type UserClaims struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// RegisterRequest is the request body for account creation
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
