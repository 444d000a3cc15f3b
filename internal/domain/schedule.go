package domain

import (
	"errors"
	"time"

	"github.com/NikoCousin/book-am/pkg/types"
)

var (
	// ErrInvalidDayOfWeek возвращается при дне недели вне диапазона [0, 6]
	ErrInvalidDayOfWeek = errors.New("day of week must be in range [0, 6]")
)

// ScheduleEntry represents one weekday of a staff member's recurring weekly schedule.
// DayOfWeek: 0 = Sunday ... 6 = Saturday.
type ScheduleEntry struct {
	ID        int64
	StaffID   int64
	DayOfWeek int
	StartTime types.TimeString
	EndTime   types.TimeString
	// IsWorking=false означает выходной день; для генерации слотов
	// эквивалентно отсутствию записи, но сохраняется для отображения в дашборде
	IsWorking bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimeOff represents a date range during which a staff member is fully unavailable,
// regardless of the weekly schedule. Both dates are inclusive.
type TimeOff struct {
	ID        int64
	StaffID   int64
	StartDate time.Time
	EndDate   time.Time
	Reason    *string

	CreatedAt time.Time
}

// WorkingWindow is the [Start, End) range during which a staff member is schedulable
type WorkingWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// WorkingWindowFor возвращает рабочее окно мастера на указанный день недели
// или nil, если в этот день мастер не работает.
//
// Уникальность записи на (staff, day) источником данных не гарантируется,
// поэтому при дубликатах детерминированно выбирается последняя обновлённая
// запись (при равенстве - с наибольшим id).
func WorkingWindowFor(entries []ScheduleEntry, dayOfWeek int) (*WorkingWindow, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, ErrInvalidDayOfWeek
	}

	var selected *ScheduleEntry
	for i := range entries {
		entry := &entries[i]
		if entry.DayOfWeek != dayOfWeek {
			continue
		}
		if selected == nil || entry.UpdatedAt.After(selected.UpdatedAt) ||
			(entry.UpdatedAt.Equal(selected.UpdatedAt) && entry.ID > selected.ID) {
			selected = entry
		}
	}

	if selected == nil || !selected.IsWorking {
		return nil, nil
	}

	return &WorkingWindow{Start: selected.StartTime, End: selected.EndTime}, nil
}

// IsDateBlocked проверяет, попадает ли дата в один из периодов отгулов.
// Границы периода включительные, сравнение только по датам (время игнорируется).
func IsDateBlocked(timeOff []TimeOff, date time.Time) bool {
	day := dateOnly(date)
	for _, t := range timeOff {
		if !day.Before(dateOnly(t.StartDate)) && !day.After(dateOnly(t.EndDate)) {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
