package get_availability

import (
	"github.com/NikoCousin/book-am/internal/domain"
	getAvailability "github.com/NikoCousin/book-am/internal/usecase/get_availability"
)

// SlotResponse доступный слот в ответе
type SlotResponse struct {
	StartTime string  `json:"startTime"` // "10:00"
	StaffIDs  []int64 `json:"staffIds"`  // Мастера, свободные в этот слот
}

// AvailabilityResponse ответ со списком доступных слотов
type AvailabilityResponse struct {
	BusinessID int64          `json:"businessId"`
	ServiceID  int64          `json:"serviceId"`
	StaffID    *int64         `json:"staffId,omitempty"`
	Date       string         `json:"date"` // "2026-09-15"
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		BusinessID: resp.BusinessID,
		ServiceID:  resp.ServiceID,
		StaffID:    resp.StaffID,
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartTime: slot.StartTime.String(),
			StaffIDs:  slot.StaffIDs,
		})
	}

	return out
}
