package domain

import (
	"time"

	"github.com/NikoCousin/book-am/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusNoShow      BookingStatus = "no-show"
	StatusRescheduled BookingStatus = "rescheduled"
)

// Booking represents a customer appointment with a staff member
type Booking struct {
	ID         int64
	BusinessID int64
	StaffID    int64
	ServiceID  int64
	CustomerID int64

	// Denormalized customer data for history
	CustomerName  string
	CustomerPhone string

	BookingDate time.Time
	StartTime   types.TimeString
	// EndTime вычисляется при создании как StartTime + длительность услуги
	// и больше не пересчитывается (изменение услуги не трогает историю)
	EndTime types.TimeString
	Status  BookingStatus
	Notes   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoldsSlot returns true if the booking still occupies its time slot.
// Только pending и confirmed бронирования блокируют слот.
func (b *Booking) HoldsSlot() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsFinished returns true if the booking reached a terminal state
func (b *Booking) IsFinished() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusNoShow
}

// BusinessBookingsFilter фильтр для получения бронирований бизнеса
type BusinessBookingsFilter struct {
	BusinessID     int64          // Обязательный параметр
	StaffID        *int64         // Фильтр по мастеру (опционально)
	StartDate      *time.Time     // Начало периода (опционально)
	EndDate        *time.Time     // Конец периода (опционально)
	Status         *BookingStatus // Фильтр по статусу (опционально)
	OnlySlotHolder bool           // Только бронирования, удерживающие слот (pending/confirmed)
}
