package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
	"github.com/hospitalvoice/booking-agent/internal/domain/repositories"
)

// haversineExpr computes great-circle distance in meters between a hospital
// row and the given point. Placeholders: lat, lon, lat.
const haversineExpr = "(6371000 * acos(least(1, greatest(-1, " +
	"cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?)) + " +
	"sin(radians(?)) * sin(radians(latitude))))))"

// hospitalRepository implements the HospitalRepository interface
type hospitalRepository struct {
	db *gorm.DB
}

// NewHospitalRepository creates a new hospital repository
func NewHospitalRepository(db *gorm.DB) repositories.HospitalRepository {
	return &hospitalRepository{db: db}
}

// Create creates a new hospital
func (r *hospitalRepository) Create(ctx context.Context, hospital *entities.Hospital) error {
	hospital.Email = entities.NormalizeEmail(hospital.Email)
	return r.db.WithContext(ctx).Create(hospital).Error
}

// FindByID retrieves a hospital by its ID
func (r *hospitalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Hospital, error) {
	var hospital entities.Hospital
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&hospital).Error

	if err != nil {
		return nil, err
	}
	return &hospital, nil
}

// FindByEmail retrieves a hospital by its normalized email
func (r *hospitalRepository) FindByEmail(ctx context.Context, email string) (*entities.Hospital, error) {
	var hospital entities.Hospital
	err := r.db.WithContext(ctx).
		Where("email = ?", entities.NormalizeEmail(email)).
		First(&hospital).Error

	if err != nil {
		return nil, err
	}
	return &hospital, nil
}

// FindByName retrieves an active hospital by case-insensitive exact name
func (r *hospitalRepository) FindByName(ctx context.Context, name string) (*entities.Hospital, error) {
	var hospital entities.Hospital
	err := r.db.WithContext(ctx).
		Where("lower(name) = lower(?) AND is_active = true", name).
		First(&hospital).Error

	if err != nil {
		return nil, err
	}
	return &hospital, nil
}

// Update updates an existing hospital
func (r *hospitalRepository) Update(ctx context.Context, hospital *entities.Hospital) error {
	return r.db.WithContext(ctx).Save(hospital).Error
}

// Deactivate soft deletes a hospital by clearing is_active
func (r *hospitalRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Hospital{}).
		Where("id = ?", id).
		Update("is_active", false)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List retrieves hospitals with filters and pagination
func (r *hospitalRepository) List(ctx context.Context, filters repositories.HospitalFilters) ([]*entities.Hospital, int64, error) {
	var hospitals []*entities.Hospital
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Hospital{})

	if filters.ActiveOnly {
		query = query.Where("is_active = true")
	}
	if filters.City != "" {
		query = query.Where("city ILIKE ?", fmt.Sprintf("%%%s%%", filters.City))
	}
	if filters.State != "" {
		query = query.Where("state ILIKE ?", filters.State)
	}
	if filters.Specialty != "" {
		query = query.Where("specialties::text ILIKE ?", fmt.Sprintf("%%%s%%", filters.Specialty))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("name ASC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&hospitals).Error; err != nil {
		return nil, 0, err
	}
	return hospitals, total, nil
}

// FindNearest retrieves active hospitals within maxDistance meters, nearest first
func (r *hospitalRepository) FindNearest(ctx context.Context, lon, lat, maxDistanceMeters float64, limit int) ([]*entities.Hospital, error) {
	var hospitals []*entities.Hospital

	distance := gorm.Expr(haversineExpr, lat, lon, lat)
	err := r.db.WithContext(ctx).
		Model(&entities.Hospital{}).
		Where("is_active = true").
		Where("? <= ?", distance, maxDistanceMeters).
		Clauses(clause.OrderBy{Expression: gorm.Expr(haversineExpr+" ASC", lat, lon, lat)}).
		Limit(limit).
		Find(&hospitals).Error

	if err != nil {
		return nil, err
	}
	return hospitals, nil
}

// FindByLocation retrieves active hospitals matching the provided filters
func (r *hospitalRepository) FindByLocation(ctx context.Context, city, state, zipCode string, limit int) ([]*entities.Hospital, error) {
	var hospitals []*entities.Hospital

	query := r.db.WithContext(ctx).
		Model(&entities.Hospital{}).
		Where("is_active = true")

	if city != "" {
		query = query.Where("city ILIKE ?", fmt.Sprintf("%%%s%%", city))
	}
	if state != "" {
		query = query.Where("state ILIKE ?", state)
	}
	if zipCode != "" {
		query = query.Where("zip_code = ?", zipCode)
	}

	err := query.Order("name ASC").Limit(limit).Find(&hospitals).Error
	if err != nil {
		return nil, err
	}
	return hospitals, nil
}

// FindBySpecialty retrieves active hospitals whose specialty list matches the
// term, proximity-ordered when coordinates are given
func (r *hospitalRepository) FindBySpecialty(ctx context.Context, specialty string, lon, lat *float64, maxDistanceMeters float64, limit int) ([]*entities.Hospital, error) {
	var hospitals []*entities.Hospital

	query := r.db.WithContext(ctx).
		Model(&entities.Hospital{}).
		Where("is_active = true").
		Where("specialties::text ILIKE ?", fmt.Sprintf("%%%s%%", specialty))

	if lon != nil && lat != nil {
		distance := gorm.Expr(haversineExpr, *lat, *lon, *lat)
		query = query.
			Where("? <= ?", distance, maxDistanceMeters).
			Clauses(clause.OrderBy{Expression: gorm.Expr(haversineExpr+" ASC", *lat, *lon, *lat)})
	} else {
		query = query.Order("rating DESC")
	}

	err := query.Limit(limit).Find(&hospitals).Error
	if err != nil {
		return nil, err
	}
	return hospitals, nil
}

// FindAllActive retrieves active hospitals up to limit
func (r *hospitalRepository) FindAllActive(ctx context.Context, limit int) ([]*entities.Hospital, error) {
	var hospitals []*entities.Hospital
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Order("name ASC").
		Limit(limit).
		Find(&hospitals).Error

	if err != nil {
		return nil, err
	}
	return hospitals, nil
}
