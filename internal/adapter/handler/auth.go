package handler

import (
	stdErrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hospitalvoice/booking-agent/errors"
	authdto "github.com/hospitalvoice/booking-agent/internal/adapter/dto/auth"
	"github.com/hospitalvoice/booking-agent/internal/adapter/presenter"
	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
	"github.com/hospitalvoice/booking-agent/internal/infrastructure/http/middleware"
	"github.com/hospitalvoice/booking-agent/internal/usecase/auth"
	usecaseErrors "github.com/hospitalvoice/booking-agent/internal/usecase/errors"
)

// Auth handles hospital account HTTP requests
type Auth struct {
	authService *auth.AuthService
	logger      *zap.Logger
}

// NewAuth creates a new auth handler
func NewAuth(authService *auth.AuthService, logger *zap.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

// Signup registers a hospital account
// POST /v1/auth/signup
func (h *Auth) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req authdto.SignupRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	departments := make([]entities.Department, len(req.Departments))
	for i, d := range req.Departments {
		departments[i] = entities.Department{Name: d.Name, Phone: d.Phone}
	}

	hospital, tokens, err := h.authService.Signup(ctx, auth.SignupInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		Longitude:    req.Longitude,
		Latitude:     req.Latitude,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		Specialties:  req.Specialties,
		Departments:  departments,
		Availability: entities.HospitalAvailability(req.Availability),
	})
	if err != nil {
		return HandleError(h.logger, c, h.mapAuthError(err))
	}

	return HandleSuccess(h.logger, c, h.authResponse(hospital, tokens))
}

// Login authenticates a hospital account
// POST /v1/auth/login
func (h *Auth) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req authdto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	hospital, tokens, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return HandleError(h.logger, c, h.mapAuthError(err))
	}

	return HandleSuccess(h.logger, c, h.authResponse(hospital, tokens))
}

// Refresh exchanges a refresh token for a new token pair
// POST /v1/auth/refresh
func (h *Auth) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req authdto.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	tokens, err := h.authService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return HandleError(h.logger, c, h.mapAuthError(err))
	}

	return HandleSuccess(h.logger, c, &authdto.RefreshTokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    int(h.authService.AccessExpiry().Seconds()),
		TokenType:    "Bearer",
	})
}

// Me returns the authenticated hospital account
// GET /v1/auth/me
func (h *Auth) Me(c echo.Context) error {
	ctx := c.Request().Context()

	hospitalID, ok := middleware.HospitalIDFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	hospital, err := h.authService.Me(ctx, hospitalID)
	if err != nil {
		return HandleError(h.logger, c, h.mapAuthError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToHospitalResponse(hospital))
}

func (h *Auth) authResponse(hospital *entities.Hospital, tokens *auth.TokenPair) *authdto.AuthResponse {
	return &authdto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    int(h.authService.AccessExpiry().Seconds()),
		TokenType:    "Bearer",
		Hospital:     presenter.ToHospitalResponse(hospital),
	}
}

func (h *Auth) mapAuthError(err error) error {
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrEmailAlreadyUsed):
		return errors.ErrHospitalAlreadyExists("")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidCredentials):
		return errors.ErrInvalidCredentials()
	case stdErrors.Is(err, usecaseErrors.ErrTokenInvalid):
		return errors.ErrInvalidRefreshToken()
	case stdErrors.Is(err, usecaseErrors.ErrTokenExpired):
		return errors.ErrTokenExpired()
	case stdErrors.Is(err, usecaseErrors.ErrInvalidCoordinates):
		return errors.ErrInvalidCoordinates("", "")
	case stdErrors.Is(err, usecaseErrors.ErrHospitalNotFound):
		return errors.ErrHospitalAccountNotFound()
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())
	default:
		return err
	}
}
