package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims are the JWT claims attached to every authenticated request.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}
