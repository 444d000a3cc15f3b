package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes = 30
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 часов
	MinSlotIntervalMinutes    = 5
	MaxSlotIntervalMinutes    = 240
	MaxNotesLength            = 500
	MaxCustomerNameLength     = 120
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SlotHoldingStatuses статусы бронирований, удерживающих слот.
// Используются в проверке уникальности (staff_id, booking_date, start_time).
var SlotHoldingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// AllStatuses полный закрытый набор статусов бронирования.
// Переходы между статусами не ограничены (осознанная вольность, как в продукте).
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
	StatusRescheduled,
}

// ParseBookingStatus валидирует строку статуса и приводит её к BookingStatus
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	for _, valid := range AllStatuses {
		if status == valid {
			return status, true
		}
	}
	return "", false
}
