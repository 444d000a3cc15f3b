package domain

import "time"

// Business represents a tenant (barbershop/salon) in the system
type Business struct {
	ID         int64
	Slug       string // Уникальный URL-ключ бизнеса
	Name       string
	Type       string // barber | salon
	Phone      string
	Email      *string
	IsVerified bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service represents a bookable service offered by a business
type Service struct {
	ID         int64
	BusinessID int64
	Name       string
	// DurationMinutes определяет длину бронирования и вычисление end_time
	DurationMinutes int
	Price           int64 // Цена в AMD
	IsActive        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Staff represents a staff member of a business
type Staff struct {
	ID         int64
	BusinessID int64
	Name       string
	Email      *string
	Phone      *string
	Avatar     *string
	IsActive   bool

	// Недельное расписание и отгулы, подгружаются репозиторием вместе с мастером
	Schedules []ScheduleEntry
	TimeOff   []TimeOff

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Customer represents a customer identified by phone number
type Customer struct {
	ID    int64
	Phone string
	Name  string
	Email *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
