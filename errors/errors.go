package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError là custom error type cho application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrAlreadyExists(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_ALREADY_EXISTS,
		Message:  fmt.Sprintf("%s already exists", resource),
	}
}

func ErrPermissionDenied(action string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_PERMISSION_DENIED,
		Message:  fmt.Sprintf("Permission denied: %s", action),
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

// Authentication Errors
func ErrInvalidToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_TOKEN,
		Message:  "Invalid authentication token",
	}
}

func ErrTokenExpired() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_TOKEN_EXPIRED,
		Message:  "Authentication token has expired",
	}
}

func ErrInvalidCredentials() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_CREDENTIALS,
		Message:  "Invalid email or password",
	}
}

func ErrHospitalAccountNotFound() AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_AUTH_ACCOUNT_NOT_FOUND,
		Message:  "Hospital account not found",
	}
}

func ErrHospitalAlreadyExists(email string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_AUTH_ACCOUNT_ALREADY_EXISTS,
		Message:  "Hospital already exists",
	}.WithDetail("email", email)
}

func ErrInvalidRefreshToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_REFRESH_TOKEN,
		Message:  "Invalid refresh token",
	}
}

// Hospital Directory Errors
func ErrHospitalNotFound(hospitalID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_HOSPITAL_NOT_FOUND,
		Message:  "Hospital not found",
	}.WithDetail("hospital_id", hospitalID)
}

func ErrInvalidCoordinates(longitude, latitude string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_COORDINATES,
		Message:  "Invalid coordinates",
	}.WithDetail("longitude", longitude).
		WithDetail("latitude", latitude)
}

func ErrMissingLocationFilter() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_MISSING_LOCATION_FILTER,
		Message:  "At least one of city, state or zip code is required",
	}
}

// Reservation Errors
func ErrReservationNotFound(reservationID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_RESERVATION_NOT_FOUND,
		Message:  "Reservation not found",
	}.WithDetail("reservation_id", reservationID)
}

func ErrReservationInvalid(details map[string]string) AppError {
	e := AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_RESERVATION_INVALID,
		Message:  "Reservation data is invalid",
	}
	for k, v := range details {
		e = e.WithDetail(k, v)
	}
	return e
}

func ErrReservationCreateFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_RESERVATION_CREATE_FAILED,
		Message:  "Failed to create reservation",
	}
}

// Call Log Errors
func ErrCallLogNotFound(callLogID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_CALL_LOG_NOT_FOUND,
		Message:  "Call log not found",
	}.WithDetail("call_log_id", callLogID)
}

func ErrRecordingNotFound(callLogID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_RECORDING_NOT_FOUND,
		Message:  "Recording not found for call log",
	}.WithDetail("call_log_id", callLogID)
}

// Conversation Errors
func ErrSessionNotFound(callSid string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_SESSION_NOT_FOUND,
		Message:  "Call session not found",
	}.WithDetail("call_sid", callSid)
}

func ErrCompletionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_COMPLETION_FAILED,
		Message:  "Chat completion failed",
	}
}

func ErrUnknownTool(name string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_UNKNOWN_TOOL,
		Message:  "Unknown tool requested",
	}.WithDetail("tool", name)
}

func ErrAIServiceUnavailable(service string) AppError {
	return AppError{
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_AI_SERVICE_UNAVAILABLE,
		Message:  "AI service temporarily unavailable",
	}.WithDetail("service", service)
}

func ErrAITranscriptionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_AI_TRANSCRIPTION_FAILED,
		Message:  "Audio transcription failed",
	}
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

func ErrCacheFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_CACHE_FAILED,
		Message:  fmt.Sprintf("Cache operation failed: %s", operation),
	}
}

func ErrExternalAPIFailed(service string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_EXTERNAL_API_FAILED,
		Message:  fmt.Sprintf("External API call failed: %s", service),
	}
}

// Database Errors
func ErrDBConnectionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_CONNECTION_FAILED,
		Message:  "Database connection failed",
	}
}

func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}.WithDetail("query", query)
}

func ErrDBTransactionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_TRANSACTION_FAILED,
		Message:  "Database transaction failed",
	}
}

// Custom Errors
func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

func ErrForbidden(message string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_FORBIDDEN,
		Message:  message,
	}
}
