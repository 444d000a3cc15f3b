package get_business

import "github.com/NikoCousin/book-am/internal/domain"

// ServiceResponse услуга бизнеса в ответе
type ServiceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	Price           int64  `json:"price"` // Цена в AMD
}

// BusinessResponse публичная карточка бизнеса
type BusinessResponse struct {
	ID         int64   `json:"id"`
	Slug       string  `json:"slug"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Phone      string  `json:"phone"`
	Email      *string `json:"email,omitempty"`
	IsVerified bool    `json:"isVerified"`

	Services []ServiceResponse `json:"services"`
}

// FromDomain собирает публичную карточку бизнеса с активными услугами
func FromDomain(b *domain.Business, services []*domain.Service) *BusinessResponse {
	resp := &BusinessResponse{
		ID:         b.ID,
		Slug:       b.Slug,
		Name:       b.Name,
		Type:       b.Type,
		Phone:      b.Phone,
		Email:      b.Email,
		IsVerified: b.IsVerified,
		Services:   make([]ServiceResponse, 0, len(services)),
	}

	for _, service := range services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:              service.ID,
			Name:            service.Name,
			DurationMinutes: service.DurationMinutes,
			Price:           service.Price,
		})
	}

	return resp
}
