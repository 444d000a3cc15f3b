package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikoCousin/book-am/pkg/types"
)

func TestWorkingWindowFor(t *testing.T) {
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	entries := []ScheduleEntry{
		{ID: 1, DayOfWeek: 1, StartTime: "10:00", EndTime: "19:00", IsWorking: true, UpdatedAt: base},
		{ID: 2, DayOfWeek: 2, StartTime: "10:00", EndTime: "19:00", IsWorking: false, UpdatedAt: base},
	}

	window, err := WorkingWindowFor(entries, 1)
	require.NoError(t, err)
	require.NotNil(t, window)
	assert.Equal(t, types.TimeString("10:00"), window.Start)
	assert.Equal(t, types.TimeString("19:00"), window.End)

	// is_working=false эквивалентно нерабочему дню
	window, err = WorkingWindowFor(entries, 2)
	require.NoError(t, err)
	assert.Nil(t, window)

	// Нет записи на день
	window, err = WorkingWindowFor(entries, 3)
	require.NoError(t, err)
	assert.Nil(t, window)
}

func TestWorkingWindowFor_InvalidDay(t *testing.T) {
	_, err := WorkingWindowFor(nil, -1)
	assert.ErrorIs(t, err, ErrInvalidDayOfWeek)

	_, err = WorkingWindowFor(nil, 7)
	assert.ErrorIs(t, err, ErrInvalidDayOfWeek)
}

func TestWorkingWindowFor_DuplicateEntries(t *testing.T) {
	older := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	// При дубликатах выбирается последняя обновленная запись
	entries := []ScheduleEntry{
		{ID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", IsWorking: true, UpdatedAt: older},
		{ID: 2, DayOfWeek: 1, StartTime: "11:00", EndTime: "20:00", IsWorking: true, UpdatedAt: newer},
	}

	window, err := WorkingWindowFor(entries, 1)
	require.NoError(t, err)
	require.NotNil(t, window)
	assert.Equal(t, types.TimeString("11:00"), window.Start)

	// При равных updated_at выбирается запись с наибольшим id
	entries = []ScheduleEntry{
		{ID: 5, DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", IsWorking: true, UpdatedAt: older},
		{ID: 3, DayOfWeek: 1, StartTime: "11:00", EndTime: "20:00", IsWorking: true, UpdatedAt: older},
	}

	window, err = WorkingWindowFor(entries, 1)
	require.NoError(t, err)
	require.NotNil(t, window)
	assert.Equal(t, types.TimeString("09:00"), window.Start)

	// Последняя обновленная запись может выключать день целиком
	entries = []ScheduleEntry{
		{ID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", IsWorking: true, UpdatedAt: older},
		{ID: 2, DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", IsWorking: false, UpdatedAt: newer},
	}

	window, err = WorkingWindowFor(entries, 1)
	require.NoError(t, err)
	assert.Nil(t, window)
}

func TestIsDateBlocked(t *testing.T) {
	timeOff := []TimeOff{
		{
			StartDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		},
	}

	// Границы включительные
	assert.True(t, IsDateBlocked(timeOff, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, IsDateBlocked(timeOff, time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)))
	assert.True(t, IsDateBlocked(timeOff, time.Date(2026, 9, 12, 23, 0, 0, 0, time.UTC)))

	assert.False(t, IsDateBlocked(timeOff, time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsDateBlocked(timeOff, time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsDateBlocked(nil, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)))
}

func TestBooking_HoldsSlot(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).HoldsSlot())
	assert.True(t, (&Booking{Status: StatusConfirmed}).HoldsSlot())
	assert.False(t, (&Booking{Status: StatusCancelled}).HoldsSlot())
	assert.False(t, (&Booking{Status: StatusCompleted}).HoldsSlot())
	assert.False(t, (&Booking{Status: StatusNoShow}).HoldsSlot())
	assert.False(t, (&Booking{Status: StatusRescheduled}).HoldsSlot())
}

func TestParseBookingStatus(t *testing.T) {
	for _, s := range AllStatuses {
		got, ok := ParseBookingStatus(string(s))
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}

	_, ok := ParseBookingStatus("unknown")
	assert.False(t, ok)

	_, ok = ParseBookingStatus("")
	assert.False(t, ok)
}
