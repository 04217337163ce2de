package conversation

import (
	"context"
	"encoding/json"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
	"github.com/hospitalvoice/booking-agent/internal/infrastructure/cache"
	"github.com/hospitalvoice/booking-agent/internal/usecase/booking"
	"github.com/hospitalvoice/booking-agent/internal/usecase/directory"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *fakeReservationRepo) {
	t.Helper()
	directoryService, bookingService, reservationRepo := newTestStack(activeHospital("City General Hospital"))
	return NewDispatcher(directoryService, bookingService, zap.NewNop()), reservationRepo
}

func dispatch(t *testing.T, d *Dispatcher, session *Session, name, args string) map[string]interface{} {
	t.Helper()
	raw := d.Dispatch(context.Background(), session, openai.ToolCall{
		ID:       "call_0",
		Type:     openai.ToolTypeFunction,
		Function: openai.FunctionCall{Name: name, Arguments: args},
	})

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &payload), "dispatch result must be JSON: %s", raw)
	return payload
}

func dispatchList(t *testing.T, d *Dispatcher, session *Session, name, args string) []interface{} {
	t.Helper()
	raw := d.Dispatch(context.Background(), session, openai.ToolCall{
		ID:       "call_0",
		Type:     openai.ToolTypeFunction,
		Function: openai.FunctionCall{Name: name, Arguments: args},
	})

	var payload []interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &payload), "dispatch result must be a JSON list: %s", raw)
	return payload
}

func TestTools_AdvertisesFiveFunctions(t *testing.T) {
	d, _ := newTestDispatcher(t)

	tools := d.Tools()
	require.Len(t, tools, 5)

	names := make(map[string]bool, len(tools))
	for _, tool := range tools {
		require.Equal(t, openai.ToolTypeFunction, tool.Type)
		names[tool.Function.Name] = true
	}
	for _, expected := range []string{
		ToolGetAllHospitals,
		ToolGetNearbyHospitals,
		ToolGetHospitalsByLocation,
		ToolGetHospitalsBySpecialty,
		ToolCreateReservation,
	} {
		assert.True(t, names[expected], "missing tool %s", expected)
	}
}

func TestDispatch_UnknownTool(t *testing.T) {
	d, _ := newTestDispatcher(t)
	session := &Session{CallSid: "CA1"}

	payload := dispatch(t, d, session, "get_weather", `{}`)

	assert.Equal(t, false, payload["success"])
	assert.Contains(t, payload["message"], `no tool named "get_weather"`)
}

func TestDispatch_GetAllHospitals(t *testing.T) {
	d, _ := newTestDispatcher(t)
	session := &Session{CallSid: "CA1"}

	payload := dispatchList(t, d, session, ToolGetAllHospitals, `{"limit": 10}`)

	require.Len(t, payload, 1)
	hospital := payload[0].(map[string]interface{})
	assert.Equal(t, "City General Hospital", hospital["name"])
}

func TestDispatch_StoreErrorBecomesPayload(t *testing.T) {
	d, _ := newTestDispatcher(t)
	session := &Session{CallSid: "CA1"}

	// Latitude far outside the valid range fails validation inside the store
	payload := dispatch(t, d, session, ToolGetNearbyHospitals, `{"latitude": 400, "longitude": 10}`)

	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Tool call failed", payload["error"])
	assert.NotEmpty(t, payload["message"])
}

func TestDispatch_SpecialtyRadiusReachesStore(t *testing.T) {
	hospitalRepo := &fakeHospitalRepo{hospitals: []*entities.Hospital{activeHospital("City General Hospital")}}
	directoryService := directory.NewDirectoryService(hospitalRepo, cache.NewMemoryStore(), zap.NewNop())
	bookingService := booking.NewBookingService(newFakeReservationRepo(), hospitalRepo, fakeCustomerRepo{}, fakeCallLogRepo{}, zap.NewNop())
	d := NewDispatcher(directoryService, bookingService, zap.NewNop())
	session := &Session{CallSid: "CA1"}

	dispatchList(t, d, session, ToolGetHospitalsBySpecialty,
		`{"specialty": "cardiology", "latitude": 39.78, "longitude": -89.65, "maxDistance": 25000}`)
	assert.Equal(t, 25000.0, hospitalRepo.lastMaxDistance)

	// Omitted radius falls back to the directory default
	dispatchList(t, d, session, ToolGetHospitalsBySpecialty,
		`{"specialty": "cardiology", "latitude": 39.78, "longitude": -89.65}`)
	assert.Equal(t, float64(directory.DefaultSpecialtyDistance), hospitalRepo.lastMaxDistance)
}

func TestDispatch_CreateReservationSuccess(t *testing.T) {
	d, reservationRepo := newTestDispatcher(t)
	session := &Session{CallSid: "CA1", CallerNumber: "+15550100"}

	payload := dispatch(t, d, session, ToolCreateReservation, `{
		"customerName": "Jane Doe",
		"hospitalName": "City General Hospital",
		"appointmentType": "checkup",
		"reservationDate": "2099-01-01",
		"timeSlot": "10:00 AM"
	}`)

	assert.Equal(t, true, payload["success"])
	assert.NotEmpty(t, payload["reservationId"])
	assert.Contains(t, payload["message"], "Jane Doe")
	assert.Contains(t, payload["message"], "City General Hospital")
	assert.Contains(t, payload["message"], "2099-01-01")
	assert.Contains(t, payload["message"], "10:00 AM")

	details := payload["details"].(map[string]interface{})
	assert.Equal(t, "checkup", details["appointmentType"])

	// The caller's number fills in for a missing customer phone
	require.Len(t, reservationRepo.reservations, 1)
	assert.Equal(t, "+15550100", reservationRepo.reservations[0].Customer.Phone)
	// One idempotency key per tool call
	assert.Equal(t, "CA1:call_0", reservationRepo.lastKey)
}

func TestDispatch_CreateReservationValidationFailure(t *testing.T) {
	d, reservationRepo := newTestDispatcher(t)
	session := &Session{CallSid: "CA1"}

	payload := dispatch(t, d, session, ToolCreateReservation, `{"customerName": "Jane Doe"}`)

	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Validation failed", payload["error"])
	errs := payload["errors"].([]interface{})
	assert.NotEmpty(t, errs)
	assert.Empty(t, reservationRepo.reservations)
}

func TestDispatch_CreateReservationUnknownHospital(t *testing.T) {
	d, reservationRepo := newTestDispatcher(t)
	session := &Session{CallSid: "CA1"}

	payload := dispatch(t, d, session, ToolCreateReservation, `{
		"customerName": "Jane Doe",
		"hospitalName": "Nonexistent Hospital",
		"appointmentType": "checkup",
		"reservationDate": "2099-01-01",
		"timeSlot": "10:00 AM"
	}`)

	assert.Equal(t, false, payload["success"])
	assert.Contains(t, payload["message"], "hospital not found")
	assert.Empty(t, reservationRepo.reservations)
}

func TestDispatch_RepeatedToolCallIsDeduplicated(t *testing.T) {
	d, reservationRepo := newTestDispatcher(t)
	session := &Session{CallSid: "CA1"}
	args := `{
		"customerName": "Jane Doe",
		"hospitalName": "City General Hospital",
		"appointmentType": "checkup",
		"reservationDate": "2099-01-01",
		"timeSlot": "10:00 AM"
	}`

	first := dispatch(t, d, session, ToolCreateReservation, args)
	second := dispatch(t, d, session, ToolCreateReservation, args)

	assert.Equal(t, first["reservationId"], second["reservationId"])
	assert.Len(t, reservationRepo.reservations, 1)
}

func TestDispatch_MalformedArguments(t *testing.T) {
	d, _ := newTestDispatcher(t)
	session := &Session{CallSid: "CA1"}

	payload := dispatch(t, d, session, ToolGetAllHospitals, `{not json`)

	assert.Equal(t, false, payload["success"])
	assert.Contains(t, payload["message"], "invalid arguments")
}
