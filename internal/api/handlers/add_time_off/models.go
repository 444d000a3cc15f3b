package add_time_off

import (
	"time"

	"github.com/NikoCousin/book-am/internal/domain"
	"github.com/NikoCousin/book-am/internal/service/staff/models"
)

// AddTimeOffRequest HTTP request model
type AddTimeOffRequest struct {
	StartDate string  `json:"startDate"` // "2026-09-15"
	EndDate   string  `json:"endDate"`   // Включительно
	Reason    *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AddTimeOffRequest) ToServiceRequest(businessID int64) (*models.AddTimeOffRequest, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &models.AddTimeOffRequest{
		BusinessID: businessID,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     r.Reason,
	}, nil
}
