package presenter

import (
	"encoding/json"

	hospitaldto "github.com/hospitalvoice/booking-agent/internal/adapter/dto/hospital"
	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
)

// ToHospitalResponse converts a Hospital entity to HospitalResponse DTO
func ToHospitalResponse(h *entities.Hospital) *hospitaldto.HospitalResponse {
	if h == nil {
		return nil
	}

	var specialties []string
	if len(h.Specialties) > 0 {
		json.Unmarshal(h.Specialties, &specialties)
	}

	var departments []hospitaldto.Department
	if len(h.Departments) > 0 {
		json.Unmarshal(h.Departments, &departments)
	}

	return &hospitaldto.HospitalResponse{
		ID:           h.ID.String(),
		Name:         h.Name,
		Email:        h.Email,
		Phone:        h.Phone,
		Longitude:    h.Longitude,
		Latitude:     h.Latitude,
		Address:      h.Address,
		City:         h.City,
		State:        h.State,
		ZipCode:      h.ZipCode,
		Country:      h.Country,
		Specialties:  specialties,
		Departments:  departments,
		Availability: string(h.Availability),
		Rating:       h.Rating,
		TotalReviews: h.TotalReviews,
		IsActive:     h.IsActive,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

// ToSearchResponse converts a directory search result to SearchResponse
func ToSearchResponse(hospitals []*entities.Hospital) *hospitaldto.SearchResponse {
	responses := make([]*hospitaldto.HospitalResponse, len(hospitals))
	for i, h := range hospitals {
		responses[i] = ToHospitalResponse(h)
		// Directory searches are public; keep account emails private
		responses[i].Email = ""
	}
	return &hospitaldto.SearchResponse{
		Count:     len(responses),
		Hospitals: responses,
	}
}

// ToHospitalListResponse converts a hospital page to HospitalListResponse
func ToHospitalListResponse(hospitals []*entities.Hospital, total int64, page, pageSize int) *hospitaldto.HospitalListResponse {
	responses := make([]*hospitaldto.HospitalResponse, len(hospitals))
	for i, h := range hospitals {
		responses[i] = ToHospitalResponse(h)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &hospitaldto.HospitalListResponse{
		Hospitals:  responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
