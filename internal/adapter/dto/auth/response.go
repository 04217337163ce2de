package auth

import (
	hospitaldto "github.com/hospitalvoice/booking-agent/internal/adapter/dto/hospital"
)

// AuthResponse represents the authentication response with tokens
type AuthResponse struct {
	AccessToken  string                        `json:"access_token"`
	RefreshToken string                        `json:"refresh_token"`
	ExpiresIn    int                           `json:"expires_in"` // seconds
	TokenType    string                        `json:"token_type"` // "Bearer"
	Hospital     *hospitaldto.HospitalResponse `json:"hospital,omitempty"`
}

// RefreshTokenResponse represents the response after refreshing tokens
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}
