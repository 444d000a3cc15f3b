package create_booking

import (
	"time"

	"github.com/NikoCousin/book-am/internal/domain"
	"github.com/NikoCousin/book-am/pkg/types"
)

// Request входные данные для создания бронирования
type Request struct {
	BusinessID int64
	ServiceID  int64
	StaffID    *int64 // nil - любой свободный мастер

	Date      time.Time
	StartTime types.TimeString

	CustomerName  string
	CustomerPhone string  // Формат: +374XXXXXXXX
	CustomerEmail *string
	Notes         *string
}

// Response созданное бронирование
type Response struct {
	Booking *domain.Booking
}
