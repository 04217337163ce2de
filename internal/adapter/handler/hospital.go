package handler

import (
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hospitalvoice/booking-agent/errors"
	hospitaldto "github.com/hospitalvoice/booking-agent/internal/adapter/dto/hospital"
	"github.com/hospitalvoice/booking-agent/internal/adapter/presenter"
	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
	"github.com/hospitalvoice/booking-agent/internal/domain/repositories"
	"github.com/hospitalvoice/booking-agent/internal/infrastructure/http/middleware"
	"github.com/hospitalvoice/booking-agent/internal/usecase/directory"
	usecaseErrors "github.com/hospitalvoice/booking-agent/internal/usecase/errors"
)

// Hospital handles hospital directory HTTP requests
type Hospital struct {
	directoryService *directory.DirectoryService
	logger           *zap.Logger
}

// NewHospital creates a new hospital handler
func NewHospital(directoryService *directory.DirectoryService, logger *zap.Logger) *Hospital {
	return &Hospital{
		directoryService: directoryService,
		logger:           logger,
	}
}

// Nearby returns active hospitals around a point, nearest first
// GET /v1/hospitals/nearby?latitude=..&longitude=..&maxDistance=..&limit=..
func (h *Hospital) Nearby(c echo.Context) error {
	ctx := c.Request().Context()

	lat, latOK := QueryFloat(c, "latitude")
	lon, lonOK := QueryFloat(c, "longitude")
	if !latOK || !lonOK {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("latitude and longitude are required"))
	}

	maxDistance, _ := QueryFloat(c, "maxDistance")
	limit := QueryInt(c, "limit", 0)

	hospitals, err := h.directoryService.Nearest(ctx, lon, lat, maxDistance, limit)
	if err != nil {
		return HandleError(h.logger, c, h.mapDirectoryError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToSearchResponse(hospitals))
}

// ByLocation returns active hospitals matching city, state or zip filters
// GET /v1/hospitals/search/location?city=..&state=..&zipCode=..
func (h *Hospital) ByLocation(c echo.Context) error {
	ctx := c.Request().Context()

	hospitals, err := h.directoryService.ByLocation(ctx,
		c.QueryParam("city"),
		c.QueryParam("state"),
		c.QueryParam("zipCode"),
	)
	if err != nil {
		return HandleError(h.logger, c, h.mapDirectoryError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToSearchResponse(hospitals))
}

// BySpecialty returns active hospitals offering a specialty
// GET /v1/hospitals/search/specialty?specialty=..&latitude=..&longitude=..&maxDistance=..
func (h *Hospital) BySpecialty(c echo.Context) error {
	ctx := c.Request().Context()

	specialty := c.QueryParam("specialty")

	var lonPtr, latPtr *float64
	if lon, ok := QueryFloat(c, "longitude"); ok {
		lonPtr = &lon
	}
	if lat, ok := QueryFloat(c, "latitude"); ok {
		latPtr = &lat
	}
	maxDistance, _ := QueryFloat(c, "maxDistance")

	hospitals, err := h.directoryService.BySpecialty(ctx, specialty, lonPtr, latPtr, maxDistance)
	if err != nil {
		return HandleError(h.logger, c, h.mapDirectoryError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToSearchResponse(hospitals))
}

// List returns hospitals with filters and pagination
// GET /v1/hospitals?city=..&state=..&specialty=..&page=..&page_size=..
func (h *Hospital) List(c echo.Context) error {
	ctx := c.Request().Context()

	var req hospitaldto.ListHospitalsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 20
	}

	hospitals, total, err := h.directoryService.ListHospitals(ctx, repositories.HospitalFilters{
		City:       req.City,
		State:      req.State,
		Specialty:  req.Specialty,
		ActiveOnly: true,
		Limit:      req.PageSize,
		Offset:     (req.Page - 1) * req.PageSize,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToHospitalListResponse(hospitals, total, req.Page, req.PageSize))
}

// Get returns a hospital by ID
// GET /v1/hospitals/:id
func (h *Hospital) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid hospital id"))
	}

	hospital, err := h.directoryService.GetHospital(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, h.mapDirectoryError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToHospitalResponse(hospital))
}

// Update applies changes to the authenticated hospital's own profile
// PUT /v1/hospitals/:id
func (h *Hospital) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid hospital id"))
	}

	hospitalID, ok := middleware.HospitalIDFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	if hospitalID != id {
		return HandleError(h.logger, c, errors.ErrForbidden("hospitals can only update their own profile"))
	}

	var req hospitaldto.UpdateHospitalRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	input := directory.UpdateHospitalInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Country:     req.Country,
		Specialties: req.Specialties,
	}
	if req.Departments != nil {
		departments := make([]entities.Department, len(req.Departments))
		for i, d := range req.Departments {
			departments[i] = entities.Department{Name: d.Name, Phone: d.Phone}
		}
		input.Departments = departments
	}
	if req.Availability != nil {
		availability := entities.HospitalAvailability(*req.Availability)
		input.Availability = &availability
	}

	hospital, err := h.directoryService.UpdateHospital(ctx, id, input)
	if err != nil {
		return HandleError(h.logger, c, h.mapDirectoryError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToHospitalResponse(hospital))
}

// Deactivate soft deletes the authenticated hospital's own profile
// DELETE /v1/hospitals/:id
func (h *Hospital) Deactivate(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid hospital id"))
	}

	hospitalID, ok := middleware.HospitalIDFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	if hospitalID != id {
		return HandleError(h.logger, c, errors.ErrForbidden("hospitals can only deactivate their own profile"))
	}

	if err := h.directoryService.DeactivateHospital(ctx, id); err != nil {
		return HandleError(h.logger, c, h.mapDirectoryError(err))
	}

	return HandleSuccess(h.logger, c, map[string]string{"message": "hospital deactivated"})
}

func (h *Hospital) mapDirectoryError(err error) error {
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrHospitalNotFound):
		return errors.ErrHospitalNotFound("")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidCoordinates):
		return errors.ErrInvalidCoordinates("", "")
	case stdErrors.Is(err, usecaseErrors.ErrMissingLocationFilter):
		return errors.ErrMissingLocationFilter()
	case stdErrors.Is(err, usecaseErrors.ErrMissingSpecialty):
		return errors.ErrInvalidArgument("specialty is required")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())
	default:
		return err
	}
}
