package booking

// ListReservationsRequest represents reservation list filters
type ListReservationsRequest struct {
	DateFilter string `query:"dateFilter"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
	Status     string `query:"status"`
	HospitalID string `query:"hospitalId"`
	Page       int    `query:"page"`
	PageSize   int    `query:"page_size"`
}

// RescheduleReservationRequest moves a reservation to a new date and slot
type RescheduleReservationRequest struct {
	Date     string `json:"date" validate:"required"`
	TimeSlot string `json:"time_slot" validate:"required"`
}

// ListCallLogsRequest represents call log list filters
type ListCallLogsRequest struct {
	DateFilter string `query:"dateFilter"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
	CallStatus string `query:"callStatus"`
	Page       int    `query:"page"`
	PageSize   int    `query:"page_size"`
}

// StatsRequest represents the call stats window selection
type StatsRequest struct {
	DateFilter string `query:"dateFilter"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
}
