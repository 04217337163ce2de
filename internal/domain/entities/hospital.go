package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// HospitalAvailability represents the operating schedule of a hospital
type HospitalAvailability string

const (
	HospitalAvailability247      HospitalAvailability = "24/7"
	HospitalAvailabilityBusiness HospitalAvailability = "business-hours"
	HospitalAvailabilityLimited  HospitalAvailability = "limited"
)

// Department is a named department with its own phone line
type Department struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Hospital represents a registered hospital account and directory entry
type Hospital struct {
	ID           uuid.UUID            `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string               `gorm:"type:varchar(255);not null;index" json:"name"`
	Email        string               `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string               `gorm:"type:varchar(255);not null" json:"-"`
	Phone        string               `gorm:"type:varchar(32);not null" json:"phone"`
	Longitude    float64              `gorm:"type:double precision;not null;index" json:"longitude"`
	Latitude     float64              `gorm:"type:double precision;not null;index" json:"latitude"`
	Address      string               `gorm:"type:varchar(255)" json:"address,omitempty"`
	City         string               `gorm:"type:varchar(100);index" json:"city,omitempty"`
	State        string               `gorm:"type:varchar(100);index" json:"state,omitempty"`
	ZipCode      string               `gorm:"type:varchar(20);index" json:"zip_code,omitempty"`
	Country      string               `gorm:"type:varchar(100);default:'USA'" json:"country,omitempty"`
	Specialties  datatypes.JSON       `gorm:"type:jsonb;default:'[]'" json:"specialties"`
	Departments  datatypes.JSON       `gorm:"type:jsonb;default:'[]'" json:"departments"`
	Availability HospitalAvailability `gorm:"type:varchar(20);not null;default:'business-hours'" json:"availability"`
	Rating       float64              `gorm:"default:0;check:rating >= 0 AND rating <= 5" json:"rating"`
	TotalReviews int                  `gorm:"default:0" json:"total_reviews"`
	IsActive     bool                 `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time            `gorm:"default:now()" json:"created_at"`
	UpdatedAt    time.Time            `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Hospital
func (Hospital) TableName() string {
	return "hospitals"
}

// ValidAvailability reports whether the value is a known availability mode
func ValidAvailability(v HospitalAvailability) bool {
	switch v {
	case HospitalAvailability247, HospitalAvailabilityBusiness, HospitalAvailabilityLimited:
		return true
	}
	return false
}

// ValidLongitude reports whether lon is within [-180, 180]
func ValidLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}

// ValidLatitude reports whether lat is within [-90, 90]
func ValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// NormalizeEmail lowercases and trims a hospital email for uniqueness checks
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
