package hospital

// UpdateHospitalRequest represents the request to update a hospital
type UpdateHospitalRequest struct {
	Name         *string      `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Phone        *string      `json:"phone,omitempty" validate:"omitempty,min=5,max=32"`
	Address      *string      `json:"address,omitempty"`
	City         *string      `json:"city,omitempty"`
	State        *string      `json:"state,omitempty"`
	ZipCode      *string      `json:"zip_code,omitempty"`
	Country      *string      `json:"country,omitempty"`
	Specialties  []string     `json:"specialties,omitempty"`
	Departments  []Department `json:"departments,omitempty"`
	Availability *string      `json:"availability,omitempty" validate:"omitempty,oneof=24/7 business-hours limited"`
}

// Department is a department entry in hospital payloads
type Department struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone,omitempty"`
}

// ListHospitalsRequest represents list filters and pagination
type ListHospitalsRequest struct {
	City      string `query:"city"`
	State     string `query:"state"`
	Specialty string `query:"specialty"`
	Page      int    `query:"page"`
	PageSize  int    `query:"page_size"`
}
