package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
	"github.com/hospitalvoice/booking-agent/internal/domain/repositories"
)

// customerRepository implements the CustomerRepository interface
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) repositories.CustomerRepository {
	return &customerRepository{db: db}
}

// Create creates a new customer
func (r *customerRepository) Create(ctx context.Context, customer *entities.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// FindByID retrieves a customer by its ID
func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	var customer entities.Customer
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&customer).Error

	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByName retrieves a customer by case-insensitive exact name
func (r *customerRepository) FindByName(ctx context.Context, name string) (*entities.Customer, error) {
	var customer entities.Customer
	err := r.db.WithContext(ctx).
		Where("lower(name) = lower(?)", name).
		First(&customer).Error

	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// List retrieves customers with pagination
func (r *customerRepository) List(ctx context.Context, limit, offset int) ([]*entities.Customer, int64, error) {
	var customers []*entities.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Customer{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&customers).Error
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}
