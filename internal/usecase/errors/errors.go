package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrConflict      = errors.New("resource conflict")
	ErrInternalError = errors.New("internal server error")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrEmailAlreadyUsed   = errors.New("email already in use")
)

// Hospital directory errors
var (
	ErrHospitalNotFound      = errors.New("hospital not found")
	ErrHospitalNotActive     = errors.New("hospital is not active")
	ErrInvalidCoordinates    = errors.New("invalid coordinates")
	ErrMissingLocationFilter = errors.New("at least one of city, state or zip code is required")
	ErrMissingSpecialty      = errors.New("specialty is required")
)

// Reservation errors
var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrCustomerNotFound    = errors.New("customer not found")
)

// Call log errors
var (
	ErrCallLogNotFound   = errors.New("call log not found")
	ErrRecordingNotFound = errors.New("recording not found")
)

// Conversation errors
var (
	ErrSessionNotFound = errors.New("call session not found")
	ErrSessionExists   = errors.New("call session already exists")
	ErrTurnInterrupted = errors.New("turn interrupted")
	ErrUnknownTool     = errors.New("unknown tool")
)
