package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
)

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	// Create creates a new customer
	Create(ctx context.Context, customer *entities.Customer) error

	// FindByID retrieves a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error)

	// FindByName retrieves a customer by case-insensitive exact name
	FindByName(ctx context.Context, name string) (*entities.Customer, error)

	// List retrieves customers with pagination
	List(ctx context.Context, limit, offset int) ([]*entities.Customer, int64, error)
}
