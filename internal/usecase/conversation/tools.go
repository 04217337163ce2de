package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
	"github.com/hospitalvoice/booking-agent/internal/usecase/booking"
	"github.com/hospitalvoice/booking-agent/internal/usecase/directory"
)

// Tool names exposed to the model
const (
	ToolGetAllHospitals         = "get_all_hospitals"
	ToolGetNearbyHospitals      = "get_nearby_hospitals"
	ToolGetHospitalsByLocation  = "get_hospitals_by_location"
	ToolGetHospitalsBySpecialty = "get_hospitals_by_specialty"
	ToolCreateReservation       = "create_reservation"
)

// toolDefinition pairs a JSON-schema declaration with its handler
type toolDefinition struct {
	name        string
	description string
	parameters  json.RawMessage
	handle      func(ctx context.Context, session *Session, callID string, args json.RawMessage) (interface{}, error)
}

// Dispatcher routes model tool calls to the directory and booking services.
// Every dispatch returns a JSON string; store failures are encoded into the
// payload and never propagate as errors.
type Dispatcher struct {
	directory *directory.DirectoryService
	booking   *booking.BookingService
	logger    *zap.Logger
	tools     []toolDefinition
}

// NewDispatcher creates a tool dispatcher over the given services
func NewDispatcher(
	directoryService *directory.DirectoryService,
	bookingService *booking.BookingService,
	logger *zap.Logger,
) *Dispatcher {
	d := &Dispatcher{
		directory: directoryService,
		booking:   bookingService,
		logger:    logger,
	}
	d.tools = []toolDefinition{
		{
			name:        ToolGetNearbyHospitals,
			description: "Find hospitals near a specific location using coordinates (latitude and longitude). Returns hospitals within a specified distance.",
			parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"latitude": {"type": "number", "description": "Latitude coordinate of the location"},
					"longitude": {"type": "number", "description": "Longitude coordinate of the location"},
					"maxDistance": {"type": "number", "description": "Maximum distance in meters (default: 5000)", "default": 5000},
					"limit": {"type": "number", "description": "Maximum number of hospitals to return (default: 5)", "default": 5}
				},
				"required": ["latitude", "longitude"]
			}`),
			handle: d.handleNearby,
		},
		{
			name:        ToolGetHospitalsByLocation,
			description: "Find hospitals by city, state, or zip code. Use this when the user provides a city name or zip code.",
			parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"city": {"type": "string", "description": "City name"},
					"state": {"type": "string", "description": "State name or abbreviation"},
					"zipCode": {"type": "string", "description": "Zip code"}
				}
			}`),
			handle: d.handleByLocation,
		},
		{
			name:        ToolGetHospitalsBySpecialty,
			description: "Find hospitals that offer a specific medical specialty (e.g., cardiology, pediatrics, orthopedics). Optionally filter by location.",
			parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"specialty": {"type": "string", "description": "Medical specialty to search for"},
					"latitude": {"type": "number", "description": "Optional latitude for location-based search"},
					"longitude": {"type": "number", "description": "Optional longitude for location-based search"},
					"maxDistance": {"type": "number", "description": "Maximum distance in meters (default: 10000)", "default": 10000}
				},
				"required": ["specialty"]
			}`),
			handle: d.handleBySpecialty,
		},
		{
			name:        ToolGetAllHospitals,
			description: "Get a list of all available hospitals in the system. Returns hospitals with their names, contact info, specialties, and ratings.",
			parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"limit": {"type": "number", "description": "Maximum number of hospitals to return (default: 50)", "default": 50}
				}
			}`),
			handle: d.handleAll,
		},
		{
			name:        ToolCreateReservation,
			description: "Create a new hospital appointment reservation for a customer. Collects customer name, selects hospital, appointment type, and date.",
			parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"customerName": {"type": "string", "description": "Full name of the customer/patient"},
					"customerPhone": {"type": "string", "description": "Phone number of the customer"},
					"hospitalName": {"type": "string", "description": "Name of the hospital"},
					"appointmentType": {"type": "string", "enum": ["consultation", "surgery", "checkup", "emergency", "follow-up"], "description": "Type of appointment"},
					"reservationDate": {"type": "string", "description": "Date of the appointment (ISO format: YYYY-MM-DD)"},
					"timeSlot": {"type": "string", "description": "Time slot for the appointment (e.g., 09:00 AM)"},
					"reason": {"type": "string", "description": "Reason for the appointment"}
				},
				"required": ["customerName", "hospitalName", "appointmentType", "reservationDate", "timeSlot"]
			}`),
			handle: d.handleCreateReservation,
		},
	}
	return d
}

// Tools returns the tool table advertised to the model
func (d *Dispatcher) Tools() []openai.Tool {
	tools := make([]openai.Tool, len(d.tools))
	for i, t := range d.tools {
		tools[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.name,
				Description: t.description,
				Parameters:  t.parameters,
			},
		}
	}
	return tools
}

// Dispatch executes one tool call and returns its JSON result string
func (d *Dispatcher) Dispatch(ctx context.Context, session *Session, call openai.ToolCall) string {
	d.logger.Info("dispatching tool call",
		zap.String("call_sid", session.CallSid),
		zap.String("tool", call.Function.Name))

	for _, t := range d.tools {
		if t.name != call.Function.Name {
			continue
		}
		result, err := t.handle(ctx, session, call.ID, json.RawMessage(call.Function.Arguments))
		if err != nil {
			d.logger.Warn("tool call failed",
				zap.String("call_sid", session.CallSid),
				zap.String("tool", call.Function.Name),
				zap.Error(err))
			return encodeJSON(map[string]interface{}{
				"success": false,
				"error":   "Tool call failed",
				"message": err.Error(),
			})
		}
		return encodeJSON(result)
	}

	return encodeJSON(map[string]interface{}{
		"success": false,
		"error":   "Unknown tool",
		"message": fmt.Sprintf("no tool named %q", call.Function.Name),
	})
}

type nearbyArgs struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	MaxDistance float64 `json:"maxDistance"`
	Limit       int     `json:"limit"`
}

func (d *Dispatcher) handleNearby(ctx context.Context, _ *Session, _ string, raw json.RawMessage) (interface{}, error) {
	var args nearbyArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if args.Limit <= 0 {
		args.Limit = 5
	}

	hospitals, err := d.directory.Nearest(ctx, args.Longitude, args.Latitude, args.MaxDistance, args.Limit)
	if err != nil {
		return nil, err
	}
	return hospitalSummaries(hospitals), nil
}

type byLocationArgs struct {
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

func (d *Dispatcher) handleByLocation(ctx context.Context, _ *Session, _ string, raw json.RawMessage) (interface{}, error) {
	var args byLocationArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	hospitals, err := d.directory.ByLocation(ctx, args.City, args.State, args.ZipCode)
	if err != nil {
		return nil, err
	}
	return hospitalSummaries(hospitals), nil
}

type bySpecialtyArgs struct {
	Specialty   string   `json:"specialty"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	MaxDistance float64  `json:"maxDistance"`
}

func (d *Dispatcher) handleBySpecialty(ctx context.Context, _ *Session, _ string, raw json.RawMessage) (interface{}, error) {
	var args bySpecialtyArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	hospitals, err := d.directory.BySpecialty(ctx, args.Specialty, args.Longitude, args.Latitude, args.MaxDistance)
	if err != nil {
		return nil, err
	}
	return hospitalSummaries(hospitals), nil
}

type allArgs struct {
	Limit int `json:"limit"`
}

func (d *Dispatcher) handleAll(ctx context.Context, _ *Session, _ string, raw json.RawMessage) (interface{}, error) {
	var args allArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	hospitals, err := d.directory.ListAll(ctx, args.Limit)
	if err != nil {
		return nil, err
	}
	return hospitalSummaries(hospitals), nil
}

type createReservationArgs struct {
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	HospitalName    string `json:"hospitalName"`
	AppointmentType string `json:"appointmentType"`
	ReservationDate string `json:"reservationDate"`
	TimeSlot        string `json:"timeSlot"`
	Reason          string `json:"reason"`
}

func (d *Dispatcher) handleCreateReservation(ctx context.Context, session *Session, callID string, raw json.RawMessage) (interface{}, error) {
	var args createReservationArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	phone := args.CustomerPhone
	if phone == "" {
		phone = session.CallerNumber
	}

	input := booking.CreateReservationInput{
		CustomerName:    args.CustomerName,
		CustomerPhone:   phone,
		HospitalName:    args.HospitalName,
		AppointmentType: args.AppointmentType,
		ReservationDate: args.ReservationDate,
		TimeSlot:        args.TimeSlot,
		Reason:          args.Reason,
		// One key per tool call keeps model retries from double-booking
		IdempotencyKey: fmt.Sprintf("%s:%s", session.CallSid, callID),
	}

	reservation, err := d.booking.CreateReservation(ctx, input)
	if err != nil {
		var validationErr *booking.ValidationError
		if errors.As(err, &validationErr) {
			return map[string]interface{}{
				"success": false,
				"error":   "Validation failed",
				"errors":  validationErr.Errors,
			}, nil
		}
		return nil, err
	}

	return map[string]interface{}{
		"success":       true,
		"message":       fmt.Sprintf("Reservation confirmed for %s at %s on %s at %s", args.CustomerName, reservation.Hospital.Name, args.ReservationDate, args.TimeSlot),
		"reservationId": reservation.ID.String(),
		"details": map[string]string{
			"customerName":    args.CustomerName,
			"hospitalName":    reservation.Hospital.Name,
			"appointmentType": args.AppointmentType,
			"reservationDate": args.ReservationDate,
			"timeSlot":        args.TimeSlot,
		},
	}, nil
}

// hospitalSummary is the compact hospital shape sent back to the model
type hospitalSummary struct {
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	Specialties  []string `json:"specialties,omitempty"`
	Availability string   `json:"availability"`
	Rating       float64  `json:"rating"`
}

func hospitalSummaries(hospitals []*entities.Hospital) []hospitalSummary {
	out := make([]hospitalSummary, 0, len(hospitals))
	for _, h := range hospitals {
		var specialties []string
		if len(h.Specialties) > 0 {
			json.Unmarshal(h.Specialties, &specialties)
		}
		out = append(out, hospitalSummary{
			Name:         h.Name,
			Phone:        h.Phone,
			City:         h.City,
			State:        h.State,
			Specialties:  specialties,
			Availability: string(h.Availability),
			Rating:       h.Rating,
		})
	}
	return out
}

func encodeJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return `{"success":false,"error":"failed to encode tool result"}`
	}
	return string(b)
}
