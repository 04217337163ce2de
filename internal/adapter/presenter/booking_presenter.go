package presenter

import (
	bookingdto "github.com/hospitalvoice/booking-agent/internal/adapter/dto/booking"
	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
	"github.com/hospitalvoice/booking-agent/internal/domain/repositories"
)

// ToCustomerResponse converts a Customer entity to CustomerResponse DTO
func ToCustomerResponse(c *entities.Customer) *bookingdto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &bookingdto.CustomerResponse{
		ID:    c.ID.String(),
		Name:  c.Name,
		Phone: c.Phone,
	}
}

// ToReservationResponse converts a Reservation entity to ReservationResponse DTO
func ToReservationResponse(r *entities.Reservation) *bookingdto.ReservationResponse {
	if r == nil {
		return nil
	}

	response := &bookingdto.ReservationResponse{
		ID:              r.ID.String(),
		Customer:        ToCustomerResponse(r.Customer),
		HospitalID:      r.HospitalID.String(),
		AppointmentType: string(r.AppointmentType),
		Date:            r.Date,
		TimeSlot:        r.TimeSlot,
		Reason:          r.Reason,
		Status:          string(r.Status),
		ReminderSent:    r.ReminderSent,
		CreatedAt:       r.CreatedAt,
	}

	if r.Hospital != nil {
		response.HospitalName = r.Hospital.Name
	}
	if r.CallLogID != nil {
		callLogID := r.CallLogID.String()
		response.CallLogID = &callLogID
	}
	return response
}

// ToReservationListResponse converts reservations to ReservationListResponse
func ToReservationListResponse(reservations []*entities.Reservation, total int64) *bookingdto.ReservationListResponse {
	responses := make([]*bookingdto.ReservationResponse, len(reservations))
	for i, r := range reservations {
		responses[i] = ToReservationResponse(r)
	}
	return &bookingdto.ReservationListResponse{
		Count:        len(responses),
		Total:        total,
		Reservations: responses,
	}
}

// ToCallLogResponse converts a CallLog entity to CallLogResponse DTO
func ToCallLogResponse(c *entities.CallLog) *bookingdto.CallLogResponse {
	if c == nil {
		return nil
	}

	response := &bookingdto.CallLogResponse{
		ID:           c.ID.String(),
		Customer:     ToCustomerResponse(c.Customer),
		PhoneNumber:  c.PhoneNumber,
		Direction:    string(c.Direction),
		Status:       string(c.Status),
		StartTime:    c.StartTime,
		EndTime:      c.EndTime,
		Duration:     c.Duration,
		HasRecording: c.HasRecording(),
		Transcript:   c.Transcript,
		Summary:      c.Summary,
		Sentiment:    string(c.Sentiment),
		Outcome:      string(c.Outcome),
		QualityScore: c.QualityScore,
		CreatedAt:    c.CreatedAt,
	}

	if c.ReservationID != nil {
		reservationID := c.ReservationID.String()
		response.ReservationID = &reservationID
	}
	return response
}

// ToCallLogListResponse converts call logs to CallLogListResponse
func ToCallLogListResponse(callLogs []*entities.CallLog, total int64) *bookingdto.CallLogListResponse {
	responses := make([]*bookingdto.CallLogResponse, len(callLogs))
	for i, c := range callLogs {
		responses[i] = ToCallLogResponse(c)
	}
	return &bookingdto.CallLogListResponse{
		Count:    len(responses),
		Total:    total,
		CallLogs: responses,
	}
}

// ToCustomerListResponse converts customer summaries to CustomerListResponse
func ToCustomerListResponse(summaries []*repositories.CustomerSummary, total int64) *bookingdto.CustomerListResponse {
	responses := make([]*bookingdto.CustomerSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		if s.Customer == nil {
			continue
		}
		responses = append(responses, &bookingdto.CustomerSummaryResponse{
			CustomerID:        s.Customer.ID.String(),
			Name:              s.Customer.Name,
			Phone:             s.Customer.Phone,
			TotalReservations: s.ReservationCount,
			LastReservation:   s.LastReservation,
		})
	}
	return &bookingdto.CustomerListResponse{
		Count:     len(responses),
		Total:     total,
		Customers: responses,
	}
}
