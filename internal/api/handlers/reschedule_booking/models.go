package reschedule_booking

import (
	"time"

	"github.com/NikoCousin/book-am/internal/domain"
	rescheduleBooking "github.com/NikoCousin/book-am/internal/usecase/reschedule_booking"
	"github.com/NikoCousin/book-am/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	BookingDate string `json:"bookingDate"` // "2026-09-15"
	StartTime   string `json:"startTime"`   // "10:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64  `json:"id"`
	BusinessID  int64  `json:"businessId"`
	StaffID     int64  `json:"staffId"`
	ServiceID   int64  `json:"serviceId"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`
	UpdatedAt   string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(businessID, bookingID int64) (rescheduleBooking.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return rescheduleBooking.Request{}, err
	}

	newStartTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return rescheduleBooking.Request{}, err
	}

	return rescheduleBooking.Request{
		BusinessID:   businessID,
		BookingID:    bookingID,
		NewDate:      newDate,
		NewStartTime: newStartTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp rescheduleBooking.Response) *BookingResponse {
	b := resp.Booking
	return &BookingResponse{
		ID:          b.ID,
		BusinessID:  b.BusinessID,
		StaffID:     b.StaffID,
		ServiceID:   b.ServiceID,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		Status:      string(b.Status),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}
}
