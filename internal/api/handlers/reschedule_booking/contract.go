package reschedule_booking

import (
	"context"

	rescheduleBooking "github.com/NikoCousin/book-am/internal/usecase/reschedule_booking"
)

type RescheduleBookingUseCase interface {
	Execute(ctx context.Context, req rescheduleBooking.Request) (rescheduleBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
