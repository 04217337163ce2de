package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
)

// CallLogRepository defines the interface for call log data access
type CallLogRepository interface {
	// Create creates a new call log
	Create(ctx context.Context, callLog *entities.CallLog) error

	// FindByID retrieves a call log by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.CallLog, error)

	// Update updates an existing call log
	Update(ctx context.Context, callLog *entities.CallLog) error

	// List retrieves call logs with filters, newest first
	List(ctx context.Context, filters CallLogFilters) ([]*entities.CallLog, int64, error)

	// Stats aggregates call statistics over the given window
	Stats(ctx context.Context, from, to *time.Time) (*CallStats, error)
}

// CallLogFilters represents filter options for listing call logs
type CallLogFilters struct {
	From    *time.Time
	To      *time.Time
	Status  *entities.CallStatus
	Outcome *entities.CallOutcome
	Limit   int
	Offset  int
}

// CallStats aggregates call metrics
type CallStats struct {
	TotalCalls       int64   `json:"total_calls"`
	CompletedCalls   int64   `json:"completed_calls"`
	MissedCalls      int64   `json:"missed_calls"`
	FailedCalls      int64   `json:"failed_calls"`
	TotalDuration    int64   `json:"total_duration"`
	AvgDuration      float64 `json:"avg_duration"`
	AvgQualityScore  float64 `json:"avg_quality_score"`
	ReservationsMade int64   `json:"reservations_made"`
}
