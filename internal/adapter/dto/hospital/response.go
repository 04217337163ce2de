package hospital

import "time"

// HospitalResponse represents a hospital in API responses
type HospitalResponse struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email,omitempty"`
	Phone        string       `json:"phone"`
	Longitude    float64      `json:"longitude"`
	Latitude     float64      `json:"latitude"`
	Address      string       `json:"address,omitempty"`
	City         string       `json:"city,omitempty"`
	State        string       `json:"state,omitempty"`
	ZipCode      string       `json:"zip_code,omitempty"`
	Country      string       `json:"country,omitempty"`
	Specialties  []string     `json:"specialties,omitempty"`
	Departments  []Department `json:"departments,omitempty"`
	Availability string       `json:"availability"`
	Rating       float64      `json:"rating"`
	TotalReviews int          `json:"total_reviews"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// HospitalListResponse represents a paginated hospital list
type HospitalListResponse struct {
	Hospitals  []*HospitalResponse `json:"hospitals"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

// SearchResponse represents a directory search result
type SearchResponse struct {
	Count     int                 `json:"count"`
	Hospitals []*HospitalResponse `json:"hospitals"`
}
