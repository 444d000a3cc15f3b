package update_staff_schedule

import (
	"context"

	"github.com/NikoCousin/book-am/internal/service/staff/models"
)

type StaffService interface {
	ReplaceSchedule(ctx context.Context, staffID int64, req *models.ReplaceScheduleRequest) (*models.StaffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
