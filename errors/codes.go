package errors

// ErrorCode identifies an application error category
type ErrorCode int32

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS
	ErrorCode_PERMISSION_DENIED
	ErrorCode_UNAUTHENTICATED
	ErrorCode_FORBIDDEN
	ErrorCode_INVALID_PAYLOAD

	ErrorCode_AUTH_INVALID_TOKEN
	ErrorCode_AUTH_TOKEN_EXPIRED
	ErrorCode_AUTH_INVALID_CREDENTIALS
	ErrorCode_AUTH_ACCOUNT_NOT_FOUND
	ErrorCode_AUTH_ACCOUNT_ALREADY_EXISTS
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN

	ErrorCode_HOSPITAL_NOT_FOUND
	ErrorCode_INVALID_COORDINATES
	ErrorCode_MISSING_LOCATION_FILTER

	ErrorCode_RESERVATION_NOT_FOUND
	ErrorCode_RESERVATION_INVALID
	ErrorCode_RESERVATION_CREATE_FAILED

	ErrorCode_CALL_LOG_NOT_FOUND
	ErrorCode_RECORDING_NOT_FOUND

	ErrorCode_SESSION_NOT_FOUND
	ErrorCode_COMPLETION_FAILED
	ErrorCode_UNKNOWN_TOOL
	ErrorCode_AI_SERVICE_UNAVAILABLE
	ErrorCode_AI_TRANSCRIPTION_FAILED

	ErrorCode_INTEGRATION_STORAGE_FAILED
	ErrorCode_INTEGRATION_CACHE_FAILED
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED

	ErrorCode_DB_CONNECTION_FAILED
	ErrorCode_DB_QUERY_FAILED
	ErrorCode_DB_TRANSACTION_FAILED

	ErrorCode_HTTP_OK
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                         "UNKNOWN",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:                  "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:               "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:                 "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                       "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:              "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:              "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_CREDENTIALS:        "AUTH_INVALID_CREDENTIALS",
	ErrorCode_AUTH_ACCOUNT_NOT_FOUND:          "AUTH_ACCOUNT_NOT_FOUND",
	ErrorCode_AUTH_ACCOUNT_ALREADY_EXISTS:     "AUTH_ACCOUNT_ALREADY_EXISTS",
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN:      "AUTH_INVALID_REFRESH_TOKEN",
	ErrorCode_HOSPITAL_NOT_FOUND:              "HOSPITAL_NOT_FOUND",
	ErrorCode_INVALID_COORDINATES:             "INVALID_COORDINATES",
	ErrorCode_MISSING_LOCATION_FILTER:         "MISSING_LOCATION_FILTER",
	ErrorCode_RESERVATION_NOT_FOUND:           "RESERVATION_NOT_FOUND",
	ErrorCode_RESERVATION_INVALID:             "RESERVATION_INVALID",
	ErrorCode_RESERVATION_CREATE_FAILED:       "RESERVATION_CREATE_FAILED",
	ErrorCode_CALL_LOG_NOT_FOUND:              "CALL_LOG_NOT_FOUND",
	ErrorCode_RECORDING_NOT_FOUND:             "RECORDING_NOT_FOUND",
	ErrorCode_SESSION_NOT_FOUND:               "SESSION_NOT_FOUND",
	ErrorCode_COMPLETION_FAILED:               "COMPLETION_FAILED",
	ErrorCode_UNKNOWN_TOOL:                    "UNKNOWN_TOOL",
	ErrorCode_AI_SERVICE_UNAVAILABLE:          "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_TRANSCRIPTION_FAILED:         "AI_TRANSCRIPTION_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:            "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:           "DB_TRANSACTION_FAILED",
	ErrorCode_HTTP_OK:                         "HTTP_OK",
}

// String returns the stable name of the error code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
