package reschedule_booking

import (
	"time"

	"github.com/NikoCousin/book-am/internal/domain"
	"github.com/NikoCousin/book-am/pkg/types"
)

// Request входные данные для переноса бронирования
type Request struct {
	BusinessID int64
	BookingID  int64

	NewDate      time.Time
	NewStartTime types.TimeString
}

// Response перенесенное бронирование
type Response struct {
	Booking *domain.Booking
}
