package booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
	"github.com/hospitalvoice/booking-agent/internal/domain/repositories"
	usecaseErrors "github.com/hospitalvoice/booking-agent/internal/usecase/errors"
)

type fakeHospitalRepo struct {
	hospitals []*entities.Hospital
}

func (f *fakeHospitalRepo) Create(_ context.Context, hospital *entities.Hospital) error {
	hospital.ID = uuid.New()
	f.hospitals = append(f.hospitals, hospital)
	return nil
}

func (f *fakeHospitalRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Hospital, error) {
	for _, h := range f.hospitals {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeHospitalRepo) FindByEmail(_ context.Context, email string) (*entities.Hospital, error) {
	for _, h := range f.hospitals {
		if h.Email == email {
			return h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeHospitalRepo) FindByName(_ context.Context, name string) (*entities.Hospital, error) {
	for _, h := range f.hospitals {
		if strings.EqualFold(h.Name, name) {
			return h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeHospitalRepo) Update(_ context.Context, _ *entities.Hospital) error { return nil }

func (f *fakeHospitalRepo) Deactivate(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeHospitalRepo) List(_ context.Context, _ repositories.HospitalFilters) ([]*entities.Hospital, int64, error) {
	return f.hospitals, int64(len(f.hospitals)), nil
}

func (f *fakeHospitalRepo) FindNearest(_ context.Context, _, _, _ float64, limit int) ([]*entities.Hospital, error) {
	if limit < len(f.hospitals) {
		return f.hospitals[:limit], nil
	}
	return f.hospitals, nil
}

func (f *fakeHospitalRepo) FindByLocation(_ context.Context, _, _, _ string, _ int) ([]*entities.Hospital, error) {
	return f.hospitals, nil
}

func (f *fakeHospitalRepo) FindBySpecialty(_ context.Context, _ string, _, _ *float64, _ float64, _ int) ([]*entities.Hospital, error) {
	return f.hospitals, nil
}

func (f *fakeHospitalRepo) FindAllActive(_ context.Context, _ int) ([]*entities.Hospital, error) {
	return f.hospitals, nil
}

type fakeReservationRepo struct {
	reservations []*entities.Reservation
	byIdemKey    map[string]*entities.Reservation
	lastFilters  repositories.ReservationFilters
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{byIdemKey: map[string]*entities.Reservation{}}
}

func (f *fakeReservationRepo) CreateWithCustomer(_ context.Context, customerName, customerPhone string, reservation *entities.Reservation) (*entities.Reservation, error) {
	if reservation.IdempotencyKey != nil {
		if existing, ok := f.byIdemKey[*reservation.IdempotencyKey]; ok {
			return existing, nil
		}
	}

	phone := customerPhone
	if phone == "" {
		phone = entities.UnknownPhone
	}
	reservation.ID = uuid.New()
	reservation.Customer = &entities.Customer{ID: uuid.New(), Name: customerName, Phone: phone}
	reservation.CustomerID = reservation.Customer.ID
	f.reservations = append(f.reservations, reservation)
	if reservation.IdempotencyKey != nil {
		f.byIdemKey[*reservation.IdempotencyKey] = reservation
	}
	return reservation, nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Reservation, error) {
	for _, r := range f.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReservationRepo) Update(_ context.Context, _ *entities.Reservation) error { return nil }

func (f *fakeReservationRepo) List(_ context.Context, filters repositories.ReservationFilters) ([]*entities.Reservation, int64, error) {
	f.lastFilters = filters
	return f.reservations, int64(len(f.reservations)), nil
}

func (f *fakeReservationRepo) FindDueForReminder(_ context.Context, _ time.Time) ([]*entities.Reservation, error) {
	return nil, nil
}

func (f *fakeReservationRepo) CustomerSummaries(_ context.Context, _ *uuid.UUID, _, _ int) ([]*repositories.CustomerSummary, int64, error) {
	return nil, 0, nil
}

type fakeCustomerRepo struct{}

func (fakeCustomerRepo) Create(_ context.Context, customer *entities.Customer) error {
	customer.ID = uuid.New()
	return nil
}

func (fakeCustomerRepo) FindByID(_ context.Context, _ uuid.UUID) (*entities.Customer, error) {
	return nil, gorm.ErrRecordNotFound
}

func (fakeCustomerRepo) FindByName(_ context.Context, _ string) (*entities.Customer, error) {
	return nil, gorm.ErrRecordNotFound
}

func (fakeCustomerRepo) List(_ context.Context, _, _ int) ([]*entities.Customer, int64, error) {
	return nil, 0, nil
}

type fakeCallLogRepo struct {
	callLogs    []*entities.CallLog
	lastFilters repositories.CallLogFilters
	stats       repositories.CallStats
}

func (f *fakeCallLogRepo) Create(_ context.Context, callLog *entities.CallLog) error {
	callLog.ID = uuid.New()
	f.callLogs = append(f.callLogs, callLog)
	return nil
}

func (f *fakeCallLogRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.CallLog, error) {
	for _, c := range f.callLogs {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCallLogRepo) Update(_ context.Context, _ *entities.CallLog) error { return nil }

func (f *fakeCallLogRepo) List(_ context.Context, filters repositories.CallLogFilters) ([]*entities.CallLog, int64, error) {
	f.lastFilters = filters
	return f.callLogs, int64(len(f.callLogs)), nil
}

func (f *fakeCallLogRepo) Stats(_ context.Context, _, _ *time.Time) (*repositories.CallStats, error) {
	stats := f.stats
	return &stats, nil
}

func newTestService() (*BookingService, *fakeReservationRepo, *fakeHospitalRepo, *fakeCallLogRepo) {
	reservationRepo := newFakeReservationRepo()
	hospitalRepo := &fakeHospitalRepo{hospitals: []*entities.Hospital{
		{ID: uuid.New(), Name: "City General Hospital", IsActive: true},
	}}
	callLogRepo := &fakeCallLogRepo{}
	svc := NewBookingService(reservationRepo, hospitalRepo, fakeCustomerRepo{}, callLogRepo, zap.NewNop())
	return svc, reservationRepo, hospitalRepo, callLogRepo
}

func TestCreateReservation_Success(t *testing.T) {
	svc, reservationRepo, hospitalRepo, _ := newTestService()

	created, err := svc.CreateReservation(context.Background(), CreateReservationInput{
		CustomerName:    "Jane Doe",
		HospitalName:    "city general hospital",
		AppointmentType: "checkup",
		ReservationDate: "2099-01-01",
		TimeSlot:        "10:00 AM",
	})

	require.NoError(t, err)
	assert.Equal(t, entities.ReservationStatusConfirmed, created.Status)
	assert.Equal(t, hospitalRepo.hospitals[0].ID, created.HospitalID)
	assert.Equal(t, "Jane Doe", created.Customer.Name)
	assert.Equal(t, entities.UnknownPhone, created.Customer.Phone)
	assert.Len(t, reservationRepo.reservations, 1)
}

func TestCreateReservation_ValidationFailureWritesNothing(t *testing.T) {
	svc, reservationRepo, _, _ := newTestService()

	_, err := svc.CreateReservation(context.Background(), CreateReservationInput{
		AppointmentType: "massage",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
	assert.Empty(t, reservationRepo.reservations)
}

func TestCreateReservation_UnknownHospitalWritesNothing(t *testing.T) {
	svc, reservationRepo, _, _ := newTestService()

	_, err := svc.CreateReservation(context.Background(), CreateReservationInput{
		CustomerName:    "Jane Doe",
		HospitalName:    "Nonexistent Hospital",
		AppointmentType: "checkup",
		ReservationDate: "2099-01-01",
		TimeSlot:        "10:00 AM",
	})

	require.ErrorIs(t, err, usecaseErrors.ErrHospitalNotFound)
	assert.Empty(t, reservationRepo.reservations)
}

func TestCreateReservation_IdempotencyKeyReturnsSameReservation(t *testing.T) {
	svc, reservationRepo, _, _ := newTestService()

	input := CreateReservationInput{
		CustomerName:    "Jane Doe",
		HospitalName:    "City General Hospital",
		AppointmentType: "checkup",
		ReservationDate: "2099-01-01",
		TimeSlot:        "10:00 AM",
		IdempotencyKey:  "CA123:call_0",
	}

	first, err := svc.CreateReservation(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.CreateReservation(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, reservationRepo.reservations, 1)
}

func TestCreateReservation_NoKeyIsNotDeduplicated(t *testing.T) {
	svc, reservationRepo, _, _ := newTestService()

	input := CreateReservationInput{
		CustomerName:    "Jane Doe",
		HospitalName:    "City General Hospital",
		AppointmentType: "checkup",
		ReservationDate: "2099-01-01",
		TimeSlot:        "10:00 AM",
	}

	first, err := svc.CreateReservation(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.CreateReservation(context.Background(), input)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, reservationRepo.reservations, 2)
}

func TestCancelReservation(t *testing.T) {
	svc, reservationRepo, _, _ := newTestService()
	created, err := svc.CreateReservation(context.Background(), CreateReservationInput{
		CustomerName:    "Jane Doe",
		HospitalName:    "City General Hospital",
		AppointmentType: "checkup",
		ReservationDate: "2099-01-01",
		TimeSlot:        "10:00 AM",
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelReservation(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.ReservationStatusCancelled, cancelled.Status)

	_, err = svc.CancelReservation(context.Background(), uuid.New())
	assert.ErrorIs(t, err, usecaseErrors.ErrReservationNotFound)
	assert.Len(t, reservationRepo.reservations, 1)
}

func TestRescheduleReservation_ResetsToConfirmed(t *testing.T) {
	svc, _, _, _ := newTestService()
	created, err := svc.CreateReservation(context.Background(), CreateReservationInput{
		CustomerName:    "Jane Doe",
		HospitalName:    "City General Hospital",
		AppointmentType: "checkup",
		ReservationDate: "2099-01-01",
		TimeSlot:        "10:00 AM",
	})
	require.NoError(t, err)

	_, err = svc.CancelReservation(context.Background(), created.ID)
	require.NoError(t, err)

	newDate := time.Date(2099, 2, 1, 0, 0, 0, 0, time.Local)
	rescheduled, err := svc.RescheduleReservation(context.Background(), created.ID, newDate, "2:00 PM")
	require.NoError(t, err)

	assert.Equal(t, entities.ReservationStatusConfirmed, rescheduled.Status)
	assert.Equal(t, newDate, rescheduled.Date)
	assert.Equal(t, "2:00 PM", rescheduled.TimeSlot)
}

func TestListReservations_DateFilterSetsBounds(t *testing.T) {
	svc, reservationRepo, _, _ := newTestService()

	_, _, err := svc.ListReservations(context.Background(), ListReservationsInput{
		DateFilter: DateFilterToday,
		Status:     "confirmed",
	})
	require.NoError(t, err)

	require.NotNil(t, reservationRepo.lastFilters.From)
	require.NotNil(t, reservationRepo.lastFilters.To)
	require.NotNil(t, reservationRepo.lastFilters.Status)
	assert.Equal(t, entities.ReservationStatusConfirmed, *reservationRepo.lastFilters.Status)

	_, _, err = svc.ListReservations(context.Background(), ListReservationsInput{
		DateFilter: DateFilterAll,
	})
	require.NoError(t, err)
	assert.Nil(t, reservationRepo.lastFilters.From)
	assert.Nil(t, reservationRepo.lastFilters.To)
}

func TestCallStats_PassesWindow(t *testing.T) {
	svc, _, _, callLogRepo := newTestService()
	callLogRepo.stats = repositories.CallStats{TotalCalls: 4, CompletedCalls: 3, ReservationsMade: 2}

	stats, err := svc.CallStats(context.Background(), DateFilterThisWeek, "", "")
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalCalls)
	assert.Equal(t, int64(3), stats.CompletedCalls)
	assert.Equal(t, int64(2), stats.ReservationsMade)
}
