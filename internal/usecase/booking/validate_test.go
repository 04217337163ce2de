package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() CreateReservationInput {
	return CreateReservationInput{
		CustomerName:    "Jane Doe",
		HospitalName:    "City General Hospital",
		AppointmentType: "checkup",
		ReservationDate: "2099-01-01",
		TimeSlot:        "10:00 AM",
	}
}

func TestValidateReservation_AcceptsValidPayload(t *testing.T) {
	result := ValidateReservation(validInput(), time.Now())

	require.True(t, result.Valid, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2099, result.Date.Year())
}

func TestValidateReservation_RequiredFields(t *testing.T) {
	result := ValidateReservation(CreateReservationInput{}, time.Now())

	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Customer name is required")
	assert.Contains(t, result.Errors, "Hospital name is required")
	assert.Contains(t, result.Errors, "Appointment type is required")
	assert.Contains(t, result.Errors, "Reservation date is required")
	assert.Contains(t, result.Errors, "Time slot is required")
}

func TestValidateReservation_InvalidAppointmentType(t *testing.T) {
	input := validInput()
	input.AppointmentType = "massage"

	result := ValidateReservation(input, time.Now())

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Invalid appointment type. Must be one of:")
	assert.Contains(t, result.Errors[0], "consultation")
	assert.Contains(t, result.Errors[0], "follow-up")
}

func TestValidateReservation_UnparseableDate(t *testing.T) {
	input := validInput()
	input.ReservationDate = "next Tuesday-ish"

	result := ValidateReservation(input, time.Now())

	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Invalid reservation date format")
}

func TestValidateReservation_PastDateRejected(t *testing.T) {
	input := validInput()
	input.ReservationDate = "2001-01-01"

	result := ValidateReservation(input, time.Now())

	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Reservation date cannot be in the past")
}

func TestValidateReservation_TodayIsAccepted(t *testing.T) {
	now := time.Date(2025, 6, 18, 15, 0, 0, 0, time.Local)
	input := validInput()
	input.ReservationDate = "2025-06-18"

	result := ValidateReservation(input, now)

	require.True(t, result.Valid, "errors: %v", result.Errors)
}

func TestValidateReservation_SpokenDateFormats(t *testing.T) {
	for _, date := range []string{
		"January 1, 2099",
		"January 1 2099",
		"Jan 1, 2099",
		"1 January 2099",
	} {
		input := validInput()
		input.ReservationDate = date

		result := ValidateReservation(input, time.Now())
		require.True(t, result.Valid, "date %q rejected: %v", date, result.Errors)
		assert.Equal(t, 2099, result.Date.Year())
	}
}

func TestValidateReservation_CollectsAllErrors(t *testing.T) {
	input := CreateReservationInput{
		AppointmentType: "massage",
		ReservationDate: "garbage",
	}

	result := ValidateReservation(input, time.Now())

	require.False(t, result.Valid)
	assert.Len(t, result.Errors, 5)
}
