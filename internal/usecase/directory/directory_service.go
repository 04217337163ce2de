package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
	"github.com/hospitalvoice/booking-agent/internal/domain/repositories"
	"github.com/hospitalvoice/booking-agent/internal/infrastructure/cache"
	usecaseErrors "github.com/hospitalvoice/booking-agent/internal/usecase/errors"
)

const (
	// DefaultNearbyDistance is the default search radius in meters
	DefaultNearbyDistance = 5000
	// DefaultSpecialtyDistance is the search radius for specialty queries
	DefaultSpecialtyDistance = 10000

	defaultNearbyLimit    = 10
	defaultLocationLimit  = 20
	defaultSpecialtyLimit = 10
	defaultListLimit      = 50

	snapshotCacheKey = "directory:active_snapshot"
	snapshotCacheTTL = 2 * time.Minute
)

// DirectoryService handles hospital directory business logic
type DirectoryService struct {
	hospitalRepo repositories.HospitalRepository
	store        cache.Store
	logger       *zap.Logger
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(
	hospitalRepo repositories.HospitalRepository,
	store cache.Store,
	logger *zap.Logger,
) *DirectoryService {
	return &DirectoryService{
		hospitalRepo: hospitalRepo,
		store:        store,
		logger:       logger,
	}
}

// Nearest retrieves active hospitals around a point, nearest first
func (s *DirectoryService) Nearest(ctx context.Context, lon, lat float64, maxDistanceMeters float64, limit int) ([]*entities.Hospital, error) {
	if !entities.ValidLongitude(lon) || !entities.ValidLatitude(lat) {
		return nil, usecaseErrors.ErrInvalidCoordinates
	}
	if maxDistanceMeters <= 0 {
		maxDistanceMeters = DefaultNearbyDistance
	}
	if limit <= 0 {
		limit = defaultNearbyLimit
	}

	hospitals, err := s.hospitalRepo.FindNearest(ctx, lon, lat, maxDistanceMeters, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find nearby hospitals: %w", err)
	}
	return hospitals, nil
}

// ByLocation retrieves active hospitals matching city, state or zip filters.
// At least one filter is required.
func (s *DirectoryService) ByLocation(ctx context.Context, city, state, zipCode string) ([]*entities.Hospital, error) {
	if city == "" && state == "" && zipCode == "" {
		return nil, usecaseErrors.ErrMissingLocationFilter
	}

	hospitals, err := s.hospitalRepo.FindByLocation(ctx, city, state, zipCode, defaultLocationLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to find hospitals by location: %w", err)
	}
	return hospitals, nil
}

// BySpecialty retrieves active hospitals offering a specialty,
// proximity-ordered when both coordinates are given
func (s *DirectoryService) BySpecialty(ctx context.Context, specialty string, lon, lat *float64, maxDistanceMeters float64) ([]*entities.Hospital, error) {
	if specialty == "" {
		return nil, usecaseErrors.ErrMissingSpecialty
	}
	if lon != nil && lat != nil {
		if !entities.ValidLongitude(*lon) || !entities.ValidLatitude(*lat) {
			return nil, usecaseErrors.ErrInvalidCoordinates
		}
	} else {
		// Only use proximity ordering with a complete coordinate pair
		lon, lat = nil, nil
	}
	if maxDistanceMeters <= 0 {
		maxDistanceMeters = DefaultSpecialtyDistance
	}

	hospitals, err := s.hospitalRepo.FindBySpecialty(ctx, specialty, lon, lat, maxDistanceMeters, defaultSpecialtyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to find hospitals by specialty: %w", err)
	}
	return hospitals, nil
}

// ListAll retrieves active hospitals up to limit
func (s *DirectoryService) ListAll(ctx context.Context, limit int) ([]*entities.Hospital, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	hospitals, err := s.hospitalRepo.FindAllActive(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return hospitals, nil
}

// GetHospital retrieves a hospital by ID
func (s *DirectoryService) GetHospital(ctx context.Context, id uuid.UUID) (*entities.Hospital, error) {
	hospital, err := s.hospitalRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrHospitalNotFound
		}
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}
	return hospital, nil
}

// UpdateHospitalInput represents updatable hospital fields
type UpdateHospitalInput struct {
	Name         *string
	Phone        *string
	Address      *string
	City         *string
	State        *string
	ZipCode      *string
	Country      *string
	Specialties  []string
	Departments  []entities.Department
	Availability *entities.HospitalAvailability
}

// UpdateHospital applies the provided fields to a hospital
func (s *DirectoryService) UpdateHospital(ctx context.Context, id uuid.UUID, input UpdateHospitalInput) (*entities.Hospital, error) {
	hospital, err := s.GetHospital(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		hospital.Name = *input.Name
	}
	if input.Phone != nil {
		hospital.Phone = *input.Phone
	}
	if input.Address != nil {
		hospital.Address = *input.Address
	}
	if input.City != nil {
		hospital.City = *input.City
	}
	if input.State != nil {
		hospital.State = *input.State
	}
	if input.ZipCode != nil {
		hospital.ZipCode = *input.ZipCode
	}
	if input.Country != nil {
		hospital.Country = *input.Country
	}
	if input.Specialties != nil {
		raw, err := json.Marshal(input.Specialties)
		if err != nil {
			return nil, fmt.Errorf("failed to encode specialties: %w", err)
		}
		hospital.Specialties = raw
	}
	if input.Departments != nil {
		raw, err := json.Marshal(input.Departments)
		if err != nil {
			return nil, fmt.Errorf("failed to encode departments: %w", err)
		}
		hospital.Departments = raw
	}
	if input.Availability != nil {
		if !entities.ValidAvailability(*input.Availability) {
			return nil, usecaseErrors.ErrInvalidInput
		}
		hospital.Availability = *input.Availability
	}

	if err := s.hospitalRepo.Update(ctx, hospital); err != nil {
		return nil, fmt.Errorf("failed to update hospital: %w", err)
	}
	s.invalidateSnapshot()
	return hospital, nil
}

// DeactivateHospital soft deletes a hospital
func (s *DirectoryService) DeactivateHospital(ctx context.Context, id uuid.UUID) error {
	if err := s.hospitalRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrHospitalNotFound
		}
		return fmt.Errorf("failed to deactivate hospital: %w", err)
	}
	s.invalidateSnapshot()
	return nil
}

// ListHospitals retrieves hospitals with filters and pagination
func (s *DirectoryService) ListHospitals(ctx context.Context, filters repositories.HospitalFilters) ([]*entities.Hospital, int64, error) {
	hospitals, total, err := s.hospitalRepo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return hospitals, total, nil
}

// SnapshotEntry is one line of the active-directory snapshot consumed at
// call setup
type SnapshotEntry struct {
	Name         string   `json:"name"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	Specialties  []string `json:"specialties,omitempty"`
	Availability string   `json:"availability"`
}

// ActiveSnapshot returns a compact listing of active hospitals, served from
// cache when fresh
func (s *DirectoryService) ActiveSnapshot(ctx context.Context) ([]SnapshotEntry, error) {
	if cached, ok := s.store.Get(snapshotCacheKey); ok {
		var entries []SnapshotEntry
		if err := json.Unmarshal([]byte(cached), &entries); err == nil {
			return entries, nil
		}
	}

	hospitals, err := s.hospitalRepo.FindAllActive(ctx, defaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load directory snapshot: %w", err)
	}

	entries := make([]SnapshotEntry, 0, len(hospitals))
	for _, h := range hospitals {
		var specialties []string
		if len(h.Specialties) > 0 {
			if err := json.Unmarshal(h.Specialties, &specialties); err != nil {
				s.logger.Warn("failed to decode hospital specialties",
					zap.String("hospital_id", h.ID.String()),
					zap.Error(err))
			}
		}
		entries = append(entries, SnapshotEntry{
			Name:         h.Name,
			City:         h.City,
			State:        h.State,
			Specialties:  specialties,
			Availability: string(h.Availability),
		})
	}

	if raw, err := json.Marshal(entries); err == nil {
		s.store.Set(snapshotCacheKey, string(raw), snapshotCacheTTL)
	}
	return entries, nil
}

func (s *DirectoryService) invalidateSnapshot() {
	s.store.Delete(snapshotCacheKey)
}
