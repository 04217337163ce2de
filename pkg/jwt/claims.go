package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents JWT custom claims
type Claims struct {
	HospitalID uuid.UUID `json:"hospital_id"`
	Email      string    `json:"email"`
	jwt.RegisteredClaims
}
