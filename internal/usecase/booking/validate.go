package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
)

var validAppointmentTypes = []string{
	string(entities.AppointmentConsultation),
	string(entities.AppointmentSurgery),
	string(entities.AppointmentCheckup),
	string(entities.AppointmentEmergency),
	string(entities.AppointmentFollowUp),
}

// dateLayouts accepted for spoken reservation dates
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ValidationResult carries the outcome of reservation input validation
type ValidationResult struct {
	Valid  bool
	Errors []string
	Date   time.Time
}

// ValidateReservation checks reservation input and collects every problem
// found. The parsed date is returned so callers do not parse twice.
func ValidateReservation(input CreateReservationInput, now time.Time) ValidationResult {
	var errs []string

	if strings.TrimSpace(input.CustomerName) == "" {
		errs = append(errs, "Customer name is required")
	}
	if strings.TrimSpace(input.HospitalName) == "" {
		errs = append(errs, "Hospital name is required")
	}

	if input.AppointmentType == "" {
		errs = append(errs, "Appointment type is required")
	} else if !entities.ValidAppointmentType(entities.AppointmentType(input.AppointmentType)) {
		errs = append(errs, fmt.Sprintf("Invalid appointment type. Must be one of: %s",
			strings.Join(validAppointmentTypes, ", ")))
	}

	var date time.Time
	if input.ReservationDate == "" {
		errs = append(errs, "Reservation date is required")
	} else {
		parsed, ok := parseReservationDate(input.ReservationDate, now.Location())
		if !ok {
			errs = append(errs, "Invalid reservation date format")
		} else if parsed.Before(now) && !sameDay(parsed, now) {
			errs = append(errs, "Reservation date cannot be in the past")
		} else {
			date = parsed
		}
	}

	if strings.TrimSpace(input.TimeSlot) == "" {
		errs = append(errs, "Time slot is required")
	}

	return ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
		Date:   date,
	}
}

// ParseDate parses a reservation date in any accepted layout
func ParseDate(value string) (time.Time, bool) {
	return parseReservationDate(value, time.Local)
}

func parseReservationDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
