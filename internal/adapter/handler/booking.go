package handler

import (
	stdErrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hospitalvoice/booking-agent/errors"
	bookingdto "github.com/hospitalvoice/booking-agent/internal/adapter/dto/booking"
	"github.com/hospitalvoice/booking-agent/internal/adapter/presenter"
	"github.com/hospitalvoice/booking-agent/internal/infrastructure/http/middleware"
	"github.com/hospitalvoice/booking-agent/internal/infrastructure/storage"
	"github.com/hospitalvoice/booking-agent/internal/usecase/booking"
	usecaseErrors "github.com/hospitalvoice/booking-agent/internal/usecase/errors"
	"github.com/hospitalvoice/booking-agent/internal/usecase/transcription"
)

// recordingURLExpiry bounds how long a shared recording link stays valid
const recordingURLExpiry = 2 * time.Hour

// Booking handles reservation and call log HTTP requests
type Booking struct {
	bookingService       *booking.BookingService
	transcriptionService *transcription.Service
	recordingStore       *storage.RecordingStore
	logger               *zap.Logger
}

// NewBooking creates a new booking handler
func NewBooking(
	bookingService *booking.BookingService,
	transcriptionService *transcription.Service,
	recordingStore *storage.RecordingStore,
	logger *zap.Logger,
) *Booking {
	return &Booking{
		bookingService:       bookingService,
		transcriptionService: transcriptionService,
		recordingStore:       recordingStore,
		logger:               logger,
	}
}

// ListReservations returns reservations matching the filters, newest first
// GET /v1/reservations?dateFilter=..&startDate=..&endDate=..&status=..&page=..
func (h *Booking) ListReservations(c echo.Context) error {
	ctx := c.Request().Context()

	var req bookingdto.ListReservationsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	page, pageSize := normalizePage(req.Page, req.PageSize)

	input := booking.ListReservationsInput{
		DateFilter:  booking.DateFilter(req.DateFilter),
		CustomStart: req.StartDate,
		CustomEnd:   req.EndDate,
		Status:      req.Status,
		Limit:       pageSize,
		Offset:      (page - 1) * pageSize,
	}
	if hospitalID, ok := middleware.HospitalIDFromContext(c); ok {
		input.HospitalID = &hospitalID
	} else if req.HospitalID != "" {
		id, err := uuid.Parse(req.HospitalID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid hospital id"))
		}
		input.HospitalID = &id
	}

	reservations, total, err := h.bookingService.ListReservations(ctx, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToReservationListResponse(reservations, total))
}

// GetReservation returns a reservation by ID
// GET /v1/reservations/:id
func (h *Booking) GetReservation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid reservation id"))
	}

	reservation, err := h.bookingService.GetReservation(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, h.mapBookingError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToReservationResponse(reservation))
}

// CancelReservation marks a reservation cancelled
// POST /v1/reservations/:id/cancel
func (h *Booking) CancelReservation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid reservation id"))
	}

	reservation, err := h.bookingService.CancelReservation(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, h.mapBookingError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToReservationResponse(reservation))
}

// RescheduleReservation moves a reservation to a new date and slot
// POST /v1/reservations/:id/reschedule
func (h *Booking) RescheduleReservation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid reservation id"))
	}

	var req bookingdto.RescheduleReservationRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	date, ok := booking.ParseDate(req.Date)
	if !ok {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid reservation date format"))
	}

	reservation, err := h.bookingService.RescheduleReservation(ctx, id, date, req.TimeSlot)
	if err != nil {
		return HandleError(h.logger, c, h.mapBookingError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToReservationResponse(reservation))
}

// ListCallLogs returns call logs matching the filters, newest first
// GET /v1/call-logs?dateFilter=..&callStatus=..&page=..
func (h *Booking) ListCallLogs(c echo.Context) error {
	ctx := c.Request().Context()

	var req bookingdto.ListCallLogsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	page, pageSize := normalizePage(req.Page, req.PageSize)

	callLogs, total, err := h.bookingService.ListCallLogs(ctx, booking.ListCallLogsInput{
		DateFilter:  booking.DateFilter(req.DateFilter),
		CustomStart: req.StartDate,
		CustomEnd:   req.EndDate,
		Status:      req.CallStatus,
		Limit:       pageSize,
		Offset:      (page - 1) * pageSize,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToCallLogListResponse(callLogs, total))
}

// GetCallLog returns a call log by ID
// GET /v1/call-logs/:id
func (h *Booking) GetCallLog(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid call log id"))
	}

	callLog, err := h.bookingService.GetCallLog(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, h.mapBookingError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToCallLogResponse(callLog))
}

// GetRecording returns a short-lived link to the call recording
// GET /v1/call-logs/:id/recording
func (h *Booking) GetRecording(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid call log id"))
	}

	callLog, err := h.bookingService.GetCallLog(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, h.mapBookingError(err))
	}
	if !callLog.HasRecording() {
		return HandleError(h.logger, c, errors.ErrRecordingNotFound(id.String()))
	}

	url, err := h.recordingStore.RecordingURL(ctx, callLog.RecordingURL, recordingURLExpiry)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("presign recording", err))
	}

	return HandleSuccess(h.logger, c, &bookingdto.RecordingResponse{
		CallLogID: id.String(),
		URL:       url,
		ExpiresIn: int(recordingURLExpiry.Seconds()),
	})
}

// Transcribe submits the call recording for transcription and stores the
// transcript and sentiment on the call log
// POST /v1/call-logs/:id/transcribe
func (h *Booking) Transcribe(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid call log id"))
	}

	if err := h.transcriptionService.TranscribeCallLog(ctx, id); err != nil {
		switch {
		case stdErrors.Is(err, usecaseErrors.ErrRecordingNotFound):
			return HandleError(h.logger, c, errors.ErrRecordingNotFound(id.String()))
		case stdErrors.Is(err, usecaseErrors.ErrCallLogNotFound):
			return HandleError(h.logger, c, errors.ErrCallLogNotFound(id.String()))
		default:
			return HandleError(h.logger, c, errors.ErrAITranscriptionFailed(err))
		}
	}

	callLog, err := h.bookingService.GetCallLog(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, h.mapBookingError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToCallLogResponse(callLog))
}

// Stats returns aggregate call metrics over the selected window
// GET /v1/stats/overview?dateFilter=..&startDate=..&endDate=..
func (h *Booking) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	var req bookingdto.StatsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	stats, err := h.bookingService.CallStats(ctx, booking.DateFilter(req.DateFilter), req.StartDate, req.EndDate)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, stats)
}

// ListCustomers returns per-customer reservation aggregates
// GET /v1/customers?page=..&page_size=..
func (h *Booking) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()

	page, pageSize := normalizePage(QueryInt(c, "page", 1), QueryInt(c, "page_size", 50))

	var hospitalID *uuid.UUID
	if id, ok := middleware.HospitalIDFromContext(c); ok {
		hospitalID = &id
	}

	summaries, total, err := h.bookingService.ListCustomers(ctx, hospitalID, pageSize, (page-1)*pageSize)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToCustomerListResponse(summaries, total))
}

func (h *Booking) mapBookingError(err error) error {
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrReservationNotFound):
		return errors.ErrReservationNotFound("")
	case stdErrors.Is(err, usecaseErrors.ErrCallLogNotFound):
		return errors.ErrCallLogNotFound("")
	case stdErrors.Is(err, usecaseErrors.ErrHospitalNotFound):
		return errors.ErrHospitalNotFound("")
	default:
		return err
	}
}

func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 50
	}
	return page, pageSize
}
