package get_business_bookings

import (
	"context"

	"github.com/NikoCousin/book-am/internal/service/bookings/models"
)

type BookingsService interface {
	GetBusinessBookings(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
