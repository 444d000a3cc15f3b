package create_booking

import (
	"context"
	"time"

	"github.com/NikoCousin/book-am/internal/domain"
	"github.com/NikoCousin/book-am/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// Create создает бронирование, возвращает ErrSlotTaken при занятом слоте
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)

	// FindSlotHolder ищет бронирование, удерживающее слот.
	// Возвращает ErrBookingNotFound, если слот свободен.
	FindSlotHolder(ctx context.Context, staffID int64, date time.Time, startTime types.TimeString, excludeID *int64) (*domain.Booking, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	ListByBusiness(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.Staff, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	// UpsertByPhone находит клиента по телефону или создает нового
	UpsertByPhone(ctx context.Context, phone, name string, email *string) (*domain.Customer, error)
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
