package reschedule_booking

import (
	"context"
	"time"

	"github.com/NikoCousin/book-am/internal/domain"
	"github.com/NikoCousin/book-am/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)

	// FindSlotHolder ищет бронирование, удерживающее слот.
	// Возвращает ErrBookingNotFound, если слот свободен.
	FindSlotHolder(ctx context.Context, staffID int64, date time.Time, startTime types.TimeString, excludeID *int64) (*domain.Booking, error)

	// UpdateSlot переносит бронирование на новые дату и время
	UpdateSlot(ctx context.Context, id int64, date time.Time, startTime, endTime types.TimeString, status domain.BookingStatus) (*domain.Booking, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	// DoSerializable выполняет функцию в SERIALIZABLE транзакции с ретраями
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
