package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
	"github.com/hospitalvoice/booking-agent/internal/domain/repositories"
)

// callLogRepository implements the CallLogRepository interface
type callLogRepository struct {
	db *gorm.DB
}

// NewCallLogRepository creates a new call log repository
func NewCallLogRepository(db *gorm.DB) repositories.CallLogRepository {
	return &callLogRepository{db: db}
}

// Create creates a new call log
func (r *callLogRepository) Create(ctx context.Context, callLog *entities.CallLog) error {
	return r.db.WithContext(ctx).Create(callLog).Error
}

// FindByID retrieves a call log by its ID
func (r *callLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.CallLog, error) {
	var callLog entities.CallLog
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("id = ?", id).
		First(&callLog).Error

	if err != nil {
		return nil, err
	}
	return &callLog, nil
}

// Update updates an existing call log
func (r *callLogRepository) Update(ctx context.Context, callLog *entities.CallLog) error {
	return r.db.WithContext(ctx).Save(callLog).Error
}

// List retrieves call logs with filters, newest first
func (r *callLogRepository) List(ctx context.Context, filters repositories.CallLogFilters) ([]*entities.CallLog, int64, error) {
	var callLogs []*entities.CallLog
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entities.CallLog{}).
		Preload("Customer")

	if filters.From != nil {
		query = query.Where("start_time >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("start_time <= ?", *filters.To)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Outcome != nil {
		query = query.Where("outcome = ?", *filters.Outcome)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("start_time DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&callLogs).Error; err != nil {
		return nil, 0, err
	}
	return callLogs, total, nil
}

// Stats aggregates call statistics over the given window
func (r *callLogRepository) Stats(ctx context.Context, from, to *time.Time) (*repositories.CallStats, error) {
	query := r.db.WithContext(ctx).Model(&entities.CallLog{})
	if from != nil {
		query = query.Where("start_time >= ?", *from)
	}
	if to != nil {
		query = query.Where("start_time <= ?", *to)
	}

	var stats repositories.CallStats
	err := query.Select(
		"count(*) as total_calls, " +
			"count(*) filter (where status = 'completed') as completed_calls, " +
			"count(*) filter (where status = 'missed') as missed_calls, " +
			"count(*) filter (where status = 'failed') as failed_calls, " +
			"coalesce(sum(duration), 0) as total_duration, " +
			"coalesce(avg(duration), 0) as avg_duration, " +
			"coalesce(avg(quality_score), 0) as avg_quality_score, " +
			"count(*) filter (where outcome = 'reservation_made') as reservations_made",
	).Scan(&stats).Error

	if err != nil {
		return nil, err
	}
	return &stats, nil
}
