package staff

import (
	"context"

	"github.com/NikoCousin/book-am/internal/domain"
)

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	ListByBusiness(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.Staff, error)
	ReplaceSchedule(ctx context.Context, staffID int64, entries []domain.ScheduleEntry) error
	AddTimeOff(ctx context.Context, timeOff *domain.TimeOff) (*domain.TimeOff, error)
	GetTimeOff(ctx context.Context, id int64) (*domain.TimeOff, error)
	DeleteTimeOff(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
