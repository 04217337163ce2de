package entities

import (
	"time"

	"github.com/google/uuid"
)

// CallDirection represents whether the call was inbound or outbound
type CallDirection string

const (
	CallDirectionInbound  CallDirection = "inbound"
	CallDirectionOutbound CallDirection = "outbound"
)

// CallStatus represents the terminal state of a call
type CallStatus string

const (
	CallStatusCompleted CallStatus = "completed"
	CallStatusMissed    CallStatus = "missed"
	CallStatusFailed    CallStatus = "failed"
	CallStatusBusy      CallStatus = "busy"
	CallStatusNoAnswer  CallStatus = "no-answer"
)

// CallSentiment represents the overall tone detected in a call
type CallSentiment string

const (
	CallSentimentPositive CallSentiment = "positive"
	CallSentimentNeutral  CallSentiment = "neutral"
	CallSentimentNegative CallSentiment = "negative"
)

// CallOutcome represents what the call achieved
type CallOutcome string

const (
	CallOutcomeReservationMade        CallOutcome = "reservation_made"
	CallOutcomeReservationRescheduled CallOutcome = "reservation_rescheduled"
	CallOutcomeNoAction               CallOutcome = "no_action"
	CallOutcomeEscalated              CallOutcome = "escalated"
)

// CallLog represents one recorded phone conversation
type CallLog struct {
	ID                uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CustomerID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer          *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ReservationID     *uuid.UUID    `gorm:"type:uuid;index" json:"reservation_id,omitempty"`
	PhoneNumber       string        `gorm:"type:varchar(32);not null" json:"phone_number"`
	Direction         CallDirection `gorm:"type:varchar(10);not null;default:'inbound'" json:"direction"`
	Status            CallStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
	StartTime         time.Time     `gorm:"not null;index" json:"start_time"`
	EndTime           *time.Time    `json:"end_time,omitempty"`
	Duration          int           `gorm:"default:0" json:"duration"` // seconds
	RecordingURL      string        `gorm:"type:varchar(512)" json:"recording_url,omitempty"`
	RecordingDuration int           `gorm:"default:0" json:"recording_duration,omitempty"`
	Transcript        string        `gorm:"type:text" json:"transcript,omitempty"`
	Summary           string        `gorm:"type:text" json:"summary,omitempty"`
	Sentiment         CallSentiment `gorm:"type:varchar(10);default:'neutral'" json:"sentiment"`
	Outcome           CallOutcome   `gorm:"type:varchar(30);not null;default:'no_action';index" json:"outcome"`
	AgentID           string        `gorm:"type:varchar(100)" json:"agent_id,omitempty"`
	Notes             string        `gorm:"type:text" json:"notes,omitempty"`
	QualityScore      float64       `gorm:"default:0;check:quality_score >= 0 AND quality_score <= 5" json:"quality_score"`
	CreatedAt         time.Time     `gorm:"default:now()" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for CallLog
func (CallLog) TableName() string {
	return "call_logs"
}

// End marks the call finished and computes its duration
func (c *CallLog) End(status CallStatus) {
	now := time.Now()
	c.Status = status
	c.EndTime = &now
	c.Duration = int(now.Sub(c.StartTime).Seconds())
}

// HasRecording reports whether a recording is attached
func (c *CallLog) HasRecording() bool {
	return c.RecordingURL != ""
}
