package booking

import "time"

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ReservationResponse represents a reservation in API responses
type ReservationResponse struct {
	ID              string            `json:"id"`
	Customer        *CustomerResponse `json:"customer,omitempty"`
	HospitalID      string            `json:"hospital_id"`
	HospitalName    string            `json:"hospital_name,omitempty"`
	AppointmentType string            `json:"appointment_type"`
	Date            time.Time         `json:"date"`
	TimeSlot        string            `json:"time_slot"`
	Reason          string            `json:"reason,omitempty"`
	Status          string            `json:"status"`
	CallLogID       *string           `json:"call_log_id,omitempty"`
	ReminderSent    bool              `json:"reminder_sent"`
	CreatedAt       time.Time         `json:"created_at"`
}

// ReservationListResponse represents a reservation list
type ReservationListResponse struct {
	Count        int                    `json:"count"`
	Total        int64                  `json:"total"`
	Reservations []*ReservationResponse `json:"reservations"`
}

// CallLogResponse represents a call log in API responses
type CallLogResponse struct {
	ID            string            `json:"id"`
	Customer      *CustomerResponse `json:"customer,omitempty"`
	ReservationID *string           `json:"reservation_id,omitempty"`
	PhoneNumber   string            `json:"phone_number"`
	Direction     string            `json:"direction"`
	Status        string            `json:"status"`
	StartTime     time.Time         `json:"start_time"`
	EndTime       *time.Time        `json:"end_time,omitempty"`
	Duration      int               `json:"duration"`
	HasRecording  bool              `json:"has_recording"`
	Transcript    string            `json:"transcript,omitempty"`
	Summary       string            `json:"summary,omitempty"`
	Sentiment     string            `json:"sentiment"`
	Outcome       string            `json:"outcome"`
	QualityScore  float64           `json:"quality_score"`
	CreatedAt     time.Time         `json:"created_at"`
}

// CallLogListResponse represents a call log list
type CallLogListResponse struct {
	Count    int                `json:"count"`
	Total    int64              `json:"total"`
	CallLogs []*CallLogResponse `json:"call_logs"`
}

// RecordingResponse carries a presigned recording URL
type RecordingResponse struct {
	CallLogID string `json:"call_log_id"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"` // seconds
}

// CustomerSummaryResponse aggregates a customer's reservation history
type CustomerSummaryResponse struct {
	CustomerID        string     `json:"customer_id"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	TotalReservations int64      `json:"total_reservations"`
	LastReservation   *time.Time `json:"last_reservation,omitempty"`
}

// CustomerListResponse represents a customer aggregate list
type CustomerListResponse struct {
	Count     int                        `json:"count"`
	Total     int64                      `json:"total"`
	Customers []*CustomerSummaryResponse `json:"customers"`
}
