package get_staff

import (
	"context"

	"github.com/NikoCousin/book-am/internal/service/staff/models"
)

type StaffService interface {
	ListByBusiness(ctx context.Context, businessID int64) (*models.StaffListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
