package auth

// SignupRequest represents the request to register a hospital account
type SignupRequest struct {
	Name         string       `json:"name" validate:"required,min=2,max=255"`
	Email        string       `json:"email" validate:"required,email"`
	Password     string       `json:"password" validate:"required,min=8,max=72"`
	Phone        string       `json:"phone" validate:"required,min=5,max=32"`
	Longitude    float64      `json:"longitude" validate:"min=-180,max=180"`
	Latitude     float64      `json:"latitude" validate:"min=-90,max=90"`
	Address      string       `json:"address,omitempty"`
	City         string       `json:"city,omitempty"`
	State        string       `json:"state,omitempty"`
	ZipCode      string       `json:"zip_code,omitempty"`
	Country      string       `json:"country,omitempty"`
	Specialties  []string     `json:"specialties,omitempty"`
	Departments  []Department `json:"departments,omitempty"`
	Availability string       `json:"availability,omitempty" validate:"omitempty,oneof=24/7 business-hours limited"`
}

// Department is a department entry in signup and update payloads
type Department struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone,omitempty"`
}

// LoginRequest represents the request to log in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest represents the request to refresh access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
