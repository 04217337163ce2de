package entities

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentType represents the kind of appointment being booked
type AppointmentType string

const (
	AppointmentConsultation AppointmentType = "consultation"
	AppointmentSurgery      AppointmentType = "surgery"
	AppointmentCheckup      AppointmentType = "checkup"
	AppointmentEmergency    AppointmentType = "emergency"
	AppointmentFollowUp     AppointmentType = "follow-up"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusNoShow    ReservationStatus = "no-show"
)

// Reservation represents a booked appointment at a hospital
type Reservation struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CustomerID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer        *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	HospitalID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"hospital_id"`
	Hospital        *Hospital         `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	AppointmentType AppointmentType   `gorm:"type:varchar(20);not null" json:"appointment_type"`
	Date            time.Time         `gorm:"not null;index" json:"date"`
	TimeSlot        string            `gorm:"type:varchar(50);not null" json:"time_slot"`
	Reason          string            `gorm:"type:text" json:"reason,omitempty"`
	Status          ReservationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CallLogID       *uuid.UUID        `gorm:"type:uuid;index" json:"call_log_id,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	ReminderSent    bool              `gorm:"default:false" json:"reminder_sent"`
	ReminderSentAt  *time.Time        `json:"reminder_sent_at,omitempty"`
	IdempotencyKey  *string           `gorm:"type:varchar(128);uniqueIndex" json:"-"`
	CreatedAt       time.Time         `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Reservation
func (Reservation) TableName() string {
	return "reservations"
}

// ValidAppointmentType reports whether t is a known appointment type
func ValidAppointmentType(t AppointmentType) bool {
	switch t {
	case AppointmentConsultation, AppointmentSurgery, AppointmentCheckup,
		AppointmentEmergency, AppointmentFollowUp:
		return true
	}
	return false
}

// Cancel marks the reservation as cancelled
func (r *Reservation) Cancel() {
	r.Status = ReservationStatusCancelled
}

// Reschedule moves the reservation to a new date and slot and re-confirms it
func (r *Reservation) Reschedule(date time.Time, slot string) {
	r.Date = date
	r.TimeSlot = slot
	r.Status = ReservationStatusConfirmed
}

// MarkReminderSent records that a reminder went out
func (r *Reservation) MarkReminderSent() {
	now := time.Now()
	r.ReminderSent = true
	r.ReminderSentAt = &now
}
