package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
	"github.com/hospitalvoice/booking-agent/internal/domain/repositories"
)

// reservationRepository implements the ReservationRepository interface
type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *gorm.DB) repositories.ReservationRepository {
	return &reservationRepository{db: db}
}

// CreateWithCustomer finds or creates the named customer and inserts the
// reservation in one transaction. A duplicate idempotency key returns the
// stored reservation without writing anything.
func (r *reservationRepository) CreateWithCustomer(ctx context.Context, customerName, customerPhone string, reservation *entities.Reservation) (*entities.Reservation, error) {
	if reservation.IdempotencyKey != nil {
		existing, err := r.findByIdempotencyKey(ctx, *reservation.IdempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer entities.Customer
		err := tx.Where("lower(name) = lower(?)", customerName).First(&customer).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			phone := customerPhone
			if phone == "" {
				phone = entities.UnknownPhone
			}
			customer = entities.Customer{Name: customerName, Phone: phone}
			if err := tx.Create(&customer).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		reservation.CustomerID = customer.ID
		reservation.Customer = &customer
		return tx.Create(reservation).Error
	})

	if err != nil {
		// Two concurrent calls with the same key can both pass the
		// pre-check; the loser of the insert race gets the unique
		// violation and returns the row the winner stored.
		if reservation.IdempotencyKey != nil && isUniqueViolation(err) {
			return r.findByIdempotencyKey(ctx, *reservation.IdempotencyKey)
		}
		return nil, err
	}
	return reservation, nil
}

func (r *reservationRepository) findByIdempotencyKey(ctx context.Context, key string) (*entities.Reservation, error) {
	var existing entities.Reservation
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Hospital").
		Where("idempotency_key = ?", key).
		First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// FindByID retrieves a reservation by its ID
func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Reservation, error) {
	var reservation entities.Reservation
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Hospital").
		Where("id = ?", id).
		First(&reservation).Error

	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Update updates an existing reservation
func (r *reservationRepository) Update(ctx context.Context, reservation *entities.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

// List retrieves reservations with filters, newest first
func (r *reservationRepository) List(ctx context.Context, filters repositories.ReservationFilters) ([]*entities.Reservation, int64, error) {
	var reservations []*entities.Reservation
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entities.Reservation{}).
		Preload("Customer").
		Preload("Hospital")

	if filters.From != nil {
		query = query.Where("date >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("date <= ?", *filters.To)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.HospitalID != nil {
		query = query.Where("hospital_id = ?", *filters.HospitalID)
	}
	if filters.CustomerID != nil {
		query = query.Where("customer_id = ?", *filters.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&reservations).Error; err != nil {
		return nil, 0, err
	}
	return reservations, total, nil
}

// FindDueForReminder retrieves confirmed reservations starting before cutoff
// that have not been reminded yet
func (r *reservationRepository) FindDueForReminder(ctx context.Context, cutoff time.Time) ([]*entities.Reservation, error) {
	var reservations []*entities.Reservation
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Hospital").
		Where("status = ?", entities.ReservationStatusConfirmed).
		Where("reminder_sent = false").
		Where("date > now() AND date <= ?", cutoff).
		Find(&reservations).Error

	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// CustomerSummaries aggregates reservation counts and last dates per customer
func (r *reservationRepository) CustomerSummaries(ctx context.Context, hospitalID *uuid.UUID, limit, offset int) ([]*repositories.CustomerSummary, int64, error) {
	type row struct {
		CustomerID       uuid.UUID
		ReservationCount int64
		LastReservation  *time.Time
	}

	query := r.db.WithContext(ctx).
		Model(&entities.Reservation{}).
		Select("customer_id, count(*) as reservation_count, max(date) as last_reservation").
		Group("customer_id")

	if hospitalID != nil {
		query = query.Where("hospital_id = ?", *hospitalID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []row
	err := query.Order("last_reservation DESC").Limit(limit).Offset(offset).Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]*repositories.CustomerSummary, 0, len(rows))
	for _, rw := range rows {
		var customer entities.Customer
		if err := r.db.WithContext(ctx).Where("id = ?", rw.CustomerID).First(&customer).Error; err != nil {
			continue
		}
		summaries = append(summaries, &repositories.CustomerSummary{
			Customer:         &customer,
			ReservationCount: rw.ReservationCount,
			LastReservation:  rw.LastReservation,
		})
	}
	return summaries, total, nil
}
