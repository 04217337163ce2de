package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
	"github.com/hospitalvoice/booking-agent/internal/domain/repositories"
	usecaseErrors "github.com/hospitalvoice/booking-agent/internal/usecase/errors"
	"github.com/hospitalvoice/booking-agent/pkg/jwt"
)

// AuthService handles hospital account authentication
type AuthService struct {
	hospitalRepo repositories.HospitalRepository
	jwtManager   *jwt.Manager
	logger       *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	hospitalRepo repositories.HospitalRepository,
	jwtManager *jwt.Manager,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		hospitalRepo: hospitalRepo,
		jwtManager:   jwtManager,
		logger:       logger,
	}
}

// SignupInput represents input for registering a hospital
type SignupInput struct {
	Name         string
	Email        string
	Password     string
	Phone        string
	Longitude    float64
	Latitude     float64
	Address      string
	City         string
	State        string
	ZipCode      string
	Country      string
	Specialties  []string
	Departments  []entities.Department
	Availability entities.HospitalAvailability
}

// TokenPair carries access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Signup registers a hospital account and issues tokens
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*entities.Hospital, *TokenPair, error) {
	if !entities.ValidLongitude(input.Longitude) || !entities.ValidLatitude(input.Latitude) {
		return nil, nil, usecaseErrors.ErrInvalidCoordinates
	}

	if _, err := s.hospitalRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, nil, usecaseErrors.ErrEmailAlreadyUsed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to check existing hospital: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	availability := input.Availability
	if availability == "" {
		availability = entities.HospitalAvailabilityBusiness
	}
	if !entities.ValidAvailability(availability) {
		return nil, nil, usecaseErrors.ErrInvalidInput
	}

	hospital := &entities.Hospital{
		Name:         input.Name,
		Email:        entities.NormalizeEmail(input.Email),
		PasswordHash: string(hash),
		Phone:        input.Phone,
		Longitude:    input.Longitude,
		Latitude:     input.Latitude,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		ZipCode:      input.ZipCode,
		Country:      input.Country,
		Availability: availability,
		IsActive:     true,
	}
	if input.Specialties != nil {
		raw, err := json.Marshal(input.Specialties)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode specialties: %w", err)
		}
		hospital.Specialties = raw
	}
	if input.Departments != nil {
		raw, err := json.Marshal(input.Departments)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode departments: %w", err)
		}
		hospital.Departments = raw
	}

	if err := s.hospitalRepo.Create(ctx, hospital); err != nil {
		return nil, nil, fmt.Errorf("failed to create hospital: %w", err)
	}

	tokens, err := s.issueTokens(hospital)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("hospital registered",
		zap.String("hospital_id", hospital.ID.String()),
		zap.String("email", hospital.Email))
	return hospital, tokens, nil
}

// Login authenticates a hospital by email and password
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.Hospital, *TokenPair, error) {
	hospital, err := s.hospitalRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, usecaseErrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up hospital: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hospital.PasswordHash), []byte(password)); err != nil {
		return nil, nil, usecaseErrors.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(hospital)
	if err != nil {
		return nil, nil, err
	}
	return hospital, tokens, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	hospitalID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, usecaseErrors.ErrTokenInvalid
	}

	hospital, err := s.hospitalRepo.FindByID(ctx, hospitalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to look up hospital: %w", err)
	}

	return s.issueTokens(hospital)
}

// Me retrieves the hospital behind an authenticated request
func (s *AuthService) Me(ctx context.Context, hospitalID uuid.UUID) (*entities.Hospital, error) {
	hospital, err := s.hospitalRepo.FindByID(ctx, hospitalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrHospitalNotFound
		}
		return nil, fmt.Errorf("failed to look up hospital: %w", err)
	}
	return hospital, nil
}

// AccessExpiry exposes the configured access token lifetime
func (s *AuthService) AccessExpiry() time.Duration {
	return s.jwtManager.GetAccessExpiry()
}

func (s *AuthService) issueTokens(hospital *entities.Hospital) (*TokenPair, error) {
	access, err := s.jwtManager.GenerateAccessToken(hospital.ID, hospital.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(hospital.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
