package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
)

// ReservationRepository defines the interface for reservation data access
type ReservationRepository interface {
	// CreateWithCustomer finds or creates the named customer and inserts the
	// reservation inside one transaction. When the reservation carries an
	// idempotency key that already exists, the stored reservation is returned
	// and nothing is written.
	CreateWithCustomer(ctx context.Context, customerName, customerPhone string, reservation *entities.Reservation) (*entities.Reservation, error)

	// FindByID retrieves a reservation by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Reservation, error)

	// Update updates an existing reservation
	Update(ctx context.Context, reservation *entities.Reservation) error

	// List retrieves reservations with filters, newest first
	List(ctx context.Context, filters ReservationFilters) ([]*entities.Reservation, int64, error)

	// FindDueForReminder retrieves confirmed reservations starting before the
	// cutoff that have not been reminded yet
	FindDueForReminder(ctx context.Context, cutoff time.Time) ([]*entities.Reservation, error)

	// CustomerSummaries aggregates reservation counts and last dates per customer
	CustomerSummaries(ctx context.Context, hospitalID *uuid.UUID, limit, offset int) ([]*CustomerSummary, int64, error)
}

// ReservationFilters represents filter options for listing reservations
type ReservationFilters struct {
	From       *time.Time
	To         *time.Time
	Status     *entities.ReservationStatus
	HospitalID *uuid.UUID
	CustomerID *uuid.UUID
	Limit      int
	Offset     int
}

// CustomerSummary aggregates a customer's reservation history
type CustomerSummary struct {
	Customer         *entities.Customer
	ReservationCount int64
	LastReservation  *time.Time
}
