package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
)

// HospitalRepository defines the interface for hospital data access
type HospitalRepository interface {
	// Create creates a new hospital
	Create(ctx context.Context, hospital *entities.Hospital) error

	// FindByID retrieves a hospital by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Hospital, error)

	// FindByEmail retrieves a hospital by its normalized email
	FindByEmail(ctx context.Context, email string) (*entities.Hospital, error)

	// FindByName retrieves an active hospital by case-insensitive exact name
	FindByName(ctx context.Context, name string) (*entities.Hospital, error)

	// Update updates an existing hospital
	Update(ctx context.Context, hospital *entities.Hospital) error

	// Deactivate soft deletes a hospital by clearing is_active
	Deactivate(ctx context.Context, id uuid.UUID) error

	// List retrieves hospitals with filters and pagination
	List(ctx context.Context, filters HospitalFilters) ([]*entities.Hospital, int64, error)

	// FindNearest retrieves active hospitals within maxDistance meters of the
	// point, ordered by ascending distance
	FindNearest(ctx context.Context, lon, lat, maxDistanceMeters float64, limit int) ([]*entities.Hospital, error)

	// FindByLocation retrieves active hospitals matching any provided
	// city/state/zip filters
	FindByLocation(ctx context.Context, city, state, zipCode string, limit int) ([]*entities.Hospital, error)

	// FindBySpecialty retrieves active hospitals whose specialty list matches
	// the term, proximity-ordered when coordinates are provided
	FindBySpecialty(ctx context.Context, specialty string, lon, lat *float64, maxDistanceMeters float64, limit int) ([]*entities.Hospital, error)

	// FindAllActive retrieves active hospitals up to limit
	FindAllActive(ctx context.Context, limit int) ([]*entities.Hospital, error)
}

// HospitalFilters represents filter options for listing hospitals
type HospitalFilters struct {
	City       string
	State      string
	Specialty  string
	ActiveOnly bool
	Limit      int
	Offset     int
}
