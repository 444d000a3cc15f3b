package get_booking

import (
	"context"

	"github.com/NikoCousin/book-am/internal/service/bookings/models"
)

type BookingsService interface {
	GetByID(ctx context.Context, businessID, bookingID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
