package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
	"github.com/hospitalvoice/booking-agent/internal/domain/repositories"
	usecaseErrors "github.com/hospitalvoice/booking-agent/internal/usecase/errors"
)

// BookingService handles reservation and call log business logic
type BookingService struct {
	reservationRepo repositories.ReservationRepository
	hospitalRepo    repositories.HospitalRepository
	customerRepo    repositories.CustomerRepository
	callLogRepo     repositories.CallLogRepository
	logger          *zap.Logger
	now             func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(
	reservationRepo repositories.ReservationRepository,
	hospitalRepo repositories.HospitalRepository,
	customerRepo repositories.CustomerRepository,
	callLogRepo repositories.CallLogRepository,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		reservationRepo: reservationRepo,
		hospitalRepo:    hospitalRepo,
		customerRepo:    customerRepo,
		callLogRepo:     callLogRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// CreateReservationInput represents input for creating a reservation
type CreateReservationInput struct {
	CustomerName    string
	CustomerPhone   string
	HospitalName    string
	AppointmentType string
	ReservationDate string
	TimeSlot        string
	Reason          string
	CallLogID       *uuid.UUID
	IdempotencyKey  string
}

// ValidationError carries the itemized problems of a rejected reservation
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid reservation data: " + strings.Join(e.Errors, "; ")
}

// CreateReservation validates the input, finds or creates the customer and
// inserts a confirmed reservation in one transaction. A repeated idempotency
// key returns the previously created reservation.
func (s *BookingService) CreateReservation(ctx context.Context, input CreateReservationInput) (*entities.Reservation, error) {
	result := ValidateReservation(input, s.now())
	if !result.Valid {
		return nil, &ValidationError{Errors: result.Errors}
	}

	hospital, err := s.hospitalRepo.FindByName(ctx, input.HospitalName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrHospitalNotFound
		}
		return nil, fmt.Errorf("failed to look up hospital: %w", err)
	}

	reservation := &entities.Reservation{
		HospitalID:      hospital.ID,
		Hospital:        hospital,
		AppointmentType: entities.AppointmentType(input.AppointmentType),
		Date:            result.Date,
		TimeSlot:        input.TimeSlot,
		Reason:          input.Reason,
		Status:          entities.ReservationStatusConfirmed,
		CallLogID:       input.CallLogID,
	}
	if input.IdempotencyKey != "" {
		key := input.IdempotencyKey
		reservation.IdempotencyKey = &key
	}

	created, err := s.reservationRepo.CreateWithCustomer(ctx, input.CustomerName, input.CustomerPhone, reservation)
	if err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	s.logger.Info("reservation created",
		zap.String("reservation_id", created.ID.String()),
		zap.String("hospital", hospital.Name),
		zap.String("customer", input.CustomerName))
	return created, nil
}

// GetReservation retrieves a reservation by ID
func (s *BookingService) GetReservation(ctx context.Context, id uuid.UUID) (*entities.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return reservation, nil
}

// CancelReservation marks a reservation cancelled
func (s *BookingService) CancelReservation(ctx context.Context, id uuid.UUID) (*entities.Reservation, error) {
	reservation, err := s.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	reservation.Cancel()
	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to cancel reservation: %w", err)
	}
	return reservation, nil
}

// RescheduleReservation moves a reservation to a new date and slot
func (s *BookingService) RescheduleReservation(ctx context.Context, id uuid.UUID, date time.Time, slot string) (*entities.Reservation, error) {
	reservation, err := s.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	reservation.Reschedule(date, slot)
	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to reschedule reservation: %w", err)
	}
	return reservation, nil
}

// ListReservationsInput represents filters for listing reservations
type ListReservationsInput struct {
	DateFilter  DateFilter
	CustomStart string
	CustomEnd   string
	Status      string
	HospitalID  *uuid.UUID
	Limit       int
	Offset      int
}

// ListReservations retrieves reservations matching the filters, newest first
func (s *BookingService) ListReservations(ctx context.Context, input ListReservationsInput) ([]*entities.Reservation, int64, error) {
	filters := repositories.ReservationFilters{
		HospitalID: input.HospitalID,
		Limit:      input.Limit,
		Offset:     input.Offset,
	}

	if r := ResolveDateRange(input.DateFilter, input.CustomStart, input.CustomEnd, s.now()); r != nil {
		filters.From = &r.From
		filters.To = &r.To
	}
	if input.Status != "" {
		status := entities.ReservationStatus(input.Status)
		filters.Status = &status
	}

	reservations, total, err := s.reservationRepo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, total, nil
}

// ListCallLogsInput represents filters for listing call logs
type ListCallLogsInput struct {
	DateFilter  DateFilter
	CustomStart string
	CustomEnd   string
	Status      string
	Limit       int
	Offset      int
}

// ListCallLogs retrieves call logs matching the filters, newest first
func (s *BookingService) ListCallLogs(ctx context.Context, input ListCallLogsInput) ([]*entities.CallLog, int64, error) {
	filters := repositories.CallLogFilters{
		Limit:  input.Limit,
		Offset: input.Offset,
	}

	if r := ResolveDateRange(input.DateFilter, input.CustomStart, input.CustomEnd, s.now()); r != nil {
		filters.From = &r.From
		filters.To = &r.To
	}
	if input.Status != "" {
		status := entities.CallStatus(input.Status)
		filters.Status = &status
	}

	callLogs, total, err := s.callLogRepo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list call logs: %w", err)
	}
	return callLogs, total, nil
}

// GetCallLog retrieves a call log by ID
func (s *BookingService) GetCallLog(ctx context.Context, id uuid.UUID) (*entities.CallLog, error) {
	callLog, err := s.callLogRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrCallLogNotFound
		}
		return nil, fmt.Errorf("failed to get call log: %w", err)
	}
	return callLog, nil
}

// CallStats aggregates call metrics over the selected window
func (s *BookingService) CallStats(ctx context.Context, filter DateFilter, customStart, customEnd string) (*repositories.CallStats, error) {
	var from, to *time.Time
	if r := ResolveDateRange(filter, customStart, customEnd, s.now()); r != nil {
		from, to = &r.From, &r.To
	}

	stats, err := s.callLogRepo.Stats(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate call stats: %w", err)
	}
	return stats, nil
}

// ListCustomers aggregates reservation history per customer
func (s *BookingService) ListCustomers(ctx context.Context, hospitalID *uuid.UUID, limit, offset int) ([]*repositories.CustomerSummary, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	summaries, total, err := s.reservationRepo.CustomerSummaries(ctx, hospitalID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	return summaries, total, nil
}
