package add_time_off

import (
	"context"

	"github.com/NikoCousin/book-am/internal/service/staff/models"
)

type StaffService interface {
	AddTimeOff(ctx context.Context, staffID int64, req *models.AddTimeOffRequest) (*models.TimeOffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
