package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
	"github.com/hospitalvoice/booking-agent/internal/domain/repositories"
	"github.com/hospitalvoice/booking-agent/internal/infrastructure/cache"
	"github.com/hospitalvoice/booking-agent/internal/usecase/booking"
	"github.com/hospitalvoice/booking-agent/internal/usecase/directory"
)

type fakeHospitalRepo struct {
	hospitals       []*entities.Hospital
	lastMaxDistance float64
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

func (f *fakeHospitalRepo) FindBySpecialty(_ context.Context, _ string, _, _ *float64, maxDistanceMeters float64, _ int) ([]*entities.Hospital, error) {
	f.lastMaxDistance = maxDistanceMeters
	return f.hospitals, nil
}

func (f *fakeHospitalRepo) FindAllActive(_ context.Context, _ int) ([]*entities.Hospital, error) {
	return f.hospitals, nil
}

type fakeReservationRepo struct {
	reservations []*entities.Reservation
	byIdemKey    map[string]*entities.Reservation
	lastKey      string
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{byIdemKey: map[string]*entities.Reservation{}}
}

func (f *fakeReservationRepo) CreateWithCustomer(_ context.Context, customerName, customerPhone string, reservation *entities.Reservation) (*entities.Reservation, error) {
	if reservation.IdempotencyKey != nil {
		f.lastKey = *reservation.IdempotencyKey
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

func (f *fakeReservationRepo) List(_ context.Context, _ repositories.ReservationFilters) ([]*entities.Reservation, int64, error) {
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

type fakeCallLogRepo struct{}

func (fakeCallLogRepo) Create(_ context.Context, callLog *entities.CallLog) error {
	callLog.ID = uuid.New()
	return nil
}

func (fakeCallLogRepo) FindByID(_ context.Context, _ uuid.UUID) (*entities.CallLog, error) {
	return nil, gorm.ErrRecordNotFound
}

func (fakeCallLogRepo) Update(_ context.Context, _ *entities.CallLog) error { return nil }

func (fakeCallLogRepo) List(_ context.Context, _ repositories.CallLogFilters) ([]*entities.CallLog, int64, error) {
	return nil, 0, nil
}

func (fakeCallLogRepo) Stats(_ context.Context, _, _ *time.Time) (*repositories.CallStats, error) {
	return &repositories.CallStats{}, nil
}

// fakeCompleter replays a scripted sequence of completions. With block set it
// waits for context cancellation instead.
type fakeCompleter struct {
	mu        sync.Mutex
	script    []openai.ChatCompletionMessage
	calls     int
	toolsSeen [][]openai.Tool
	block     bool
}

func (f *fakeCompleter) Complete(ctx context.Context, _ []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, error) {
	f.mu.Lock()
	index := f.calls
	f.calls++
	f.toolsSeen = append(f.toolsSeen, tools)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return openai.ChatCompletionMessage{}, ctx.Err()
	}

	if index >= len(f.script) {
		index = len(f.script) - 1
	}
	return f.script[index], nil
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func toolCallMessage(name, args string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleAssistant,
		ToolCalls: []openai.ToolCall{
			{
				ID:   "call_0",
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      name,
					Arguments: args,
				},
			},
		},
	}
}

func textMessage(content string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: content,
	}
}

func newTestStack(hospitals ...*entities.Hospital) (*directory.DirectoryService, *booking.BookingService, *fakeReservationRepo) {
	hospitalRepo := &fakeHospitalRepo{hospitals: hospitals}
	reservationRepo := newFakeReservationRepo()
	directoryService := directory.NewDirectoryService(hospitalRepo, cache.NewMemoryStore(), zap.NewNop())
	bookingService := booking.NewBookingService(reservationRepo, hospitalRepo, fakeCustomerRepo{}, fakeCallLogRepo{}, zap.NewNop())
	return directoryService, bookingService, reservationRepo
}

func activeHospital(name string) *entities.Hospital {
	return &entities.Hospital{
		ID:       uuid.New(),
		Name:     name,
		Phone:    "555-0100",
		City:     "Springfield",
		IsActive: true,
	}
}
