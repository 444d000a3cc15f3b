package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikoCousin/book-am/pkg/types"
)

func TestReplaceScheduleRequest_ToDomainEntries(t *testing.T) {
	req := &ReplaceScheduleRequest{
		Days: []ScheduleDay{
			{DayOfWeek: 1, StartTime: "10:00", EndTime: "19:00", IsWorking: true},
			{DayOfWeek: 0, StartTime: "00:00", EndTime: "00:00", IsWorking: false},
		},
	}

	entries, err := req.ToDomainEntries(7)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(7), entries[0].StaffID)
	assert.Equal(t, types.TimeString("10:00"), entries[0].StartTime)
	assert.True(t, entries[0].IsWorking)
	assert.False(t, entries[1].IsWorking)
}

func TestReplaceScheduleRequest_Invalid(t *testing.T) {
	// Дубликат дня недели
	req := &ReplaceScheduleRequest{
		Days: []ScheduleDay{
			{DayOfWeek: 1, StartTime: "10:00", EndTime: "19:00", IsWorking: true},
			{DayOfWeek: 1, StartTime: "11:00", EndTime: "20:00", IsWorking: true},
		},
	}
	_, err := req.ToDomainEntries(1)
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	// День вне диапазона
	req = &ReplaceScheduleRequest{
		Days: []ScheduleDay{{DayOfWeek: 7, StartTime: "10:00", EndTime: "19:00", IsWorking: true}},
	}
	_, err = req.ToDomainEntries(1)
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	// Начало не раньше конца для рабочего дня
	req = &ReplaceScheduleRequest{
		Days: []ScheduleDay{{DayOfWeek: 1, StartTime: "19:00", EndTime: "10:00", IsWorking: true}},
	}
	_, err = req.ToDomainEntries(1)
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	// Некорректный формат времени
	req = &ReplaceScheduleRequest{
		Days: []ScheduleDay{{DayOfWeek: 1, StartTime: "1000", EndTime: "19:00", IsWorking: true}},
	}
	_, err = req.ToDomainEntries(1)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestAddTimeOffRequest_Validate(t *testing.T) {
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	req := &AddTimeOffRequest{BusinessID: 1, StartDate: start, EndDate: end}
	assert.NoError(t, req.Validate())

	// Однодневный отгул допустим
	req = &AddTimeOffRequest{BusinessID: 1, StartDate: start, EndDate: start}
	assert.NoError(t, req.Validate())

	req = &AddTimeOffRequest{BusinessID: 1, StartDate: end, EndDate: start}
	assert.ErrorIs(t, req.Validate(), ErrInvalidTimeOff)

	req = &AddTimeOffRequest{BusinessID: 1}
	assert.ErrorIs(t, req.Validate(), ErrInvalidTimeOff)
}
