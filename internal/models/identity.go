package models

import "github.com/golang-jwt/jwt/v5"

// Identity is the verified caller returned by the authentication gate.
type Identity struct {
	Subject string `json:"subject" validate:"required,email"`
}

// TokenClaims is the JWT payload issued by the enrollment portal.
type TokenClaims struct {
	jwt.RegisteredClaims
}
