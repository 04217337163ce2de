package entities

import (
	"time"

	"github.com/google/uuid"
)

// UnknownPhone is stored when a caller number could not be captured
const UnknownPhone = "unknown"

// Customer represents a caller who holds reservations
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Phone     string    `gorm:"type:varchar(32);not null;default:'unknown'" json:"phone"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customers"
}
