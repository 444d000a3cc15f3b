package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikoCousin/book-am/internal/domain"
	"github.com/NikoCousin/book-am/pkg/types"
)

func TestGenerateSlots(t *testing.T) {
	slots := generateSlots("10:00", "12:00", 30)
	assert.Equal(t, []types.TimeString{"10:00", "10:30", "11:00", "11:30"}, slots)

	// Слот, начинающийся ровно в end, не генерируется
	slots = generateSlots("10:00", "10:30", 30)
	assert.Equal(t, []types.TimeString{"10:00"}, slots)

	slots = generateSlots("10:00", "10:00", 30)
	assert.Empty(t, slots)

	// Сетка у конца суток обрывается без зацикливания
	slots = generateSlots("23:00", "24:00", 30)
	assert.Equal(t, []types.TimeString{"23:00", "23:30"}, slots)
}

func mondaySchedule(updatedAt time.Time) []domain.ScheduleEntry {
	// Понедельник - суббота, 10:00 - 19:00
	entries := make([]domain.ScheduleEntry, 0, 6)
	for day := 1; day <= 6; day++ {
		entries = append(entries, domain.ScheduleEntry{
			ID:        int64(day),
			DayOfWeek: day,
			StartTime: "10:00",
			EndTime:   "19:00",
			IsWorking: true,
			UpdatedAt: updatedAt,
		})
	}
	return entries
}

func TestResolveStaffSlots(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC) // понедельник

	member := &domain.Staff{
		ID:        1,
		Schedules: mondaySchedule(now),
	}

	// 10:00 - 19:00 с шагом 30 минут и 30-минутной услугой: 18 слотов
	slots, err := resolveStaffSlots(member, monday, now, 30, 30, nil)
	require.NoError(t, err)
	assert.Len(t, slots, 18)
	assert.Equal(t, types.TimeString("10:00"), slots[0])
	assert.Equal(t, types.TimeString("18:30"), slots[len(slots)-1])

	// 60-минутная услуга не помещается после 18:00
	slots, err = resolveStaffSlots(member, monday, now, 60, 30, nil)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("18:00"), slots[len(slots)-1])
	assert.Len(t, slots, 17)
}

func TestResolveStaffSlots_BookingExcluded(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	member := &domain.Staff{ID: 1, Schedules: mondaySchedule(now)}

	bookings := []*domain.Booking{
		{StaffID: 1, StartTime: "10:00", EndTime: "10:30", Status: domain.StatusConfirmed},
	}

	slots, err := resolveStaffSlots(member, monday, now, 30, 30, bookings)
	require.NoError(t, err)
	assert.Len(t, slots, 17)
	assert.NotContains(t, slots, types.TimeString("10:00"))
	assert.Contains(t, slots, types.TimeString("10:30"))

	// Отмененное бронирование слот не блокирует
	bookings[0].Status = domain.StatusCancelled
	slots, err = resolveStaffSlots(member, monday, now, 30, 30, bookings)
	require.NoError(t, err)
	assert.Len(t, slots, 18)

	// Часовое бронирование перекрывает два получасовых слота
	bookings[0].Status = domain.StatusPending
	bookings[0].EndTime = "11:00"
	slots, err = resolveStaffSlots(member, monday, now, 30, 30, bookings)
	require.NoError(t, err)
	assert.NotContains(t, slots, types.TimeString("10:00"))
	assert.NotContains(t, slots, types.TimeString("10:30"))
	assert.Contains(t, slots, types.TimeString("11:00"))

	// Бронирования другого мастера не учитываются
	bookings[0].StaffID = 2
	slots, err = resolveStaffSlots(member, monday, now, 30, 30, bookings)
	require.NoError(t, err)
	assert.Len(t, slots, 18)
}

func TestResolveStaffSlots_EmptyCases(t *testing.T) {
	now := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)
	member := &domain.Staff{ID: 1, Schedules: mondaySchedule(now)}

	// Прошедшая дата
	past := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	slots, err := resolveStaffSlots(member, past, now, 30, 30, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)

	// Воскресенье - нерабочий день
	sunday := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	slots, err = resolveStaffSlots(member, sunday, now, 30, 30, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)

	// Отгул перекрывает рабочий день
	monday := time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC)
	member.TimeOff = []domain.TimeOff{{StartDate: monday, EndDate: monday}}
	slots, err = resolveStaffSlots(member, monday, now, 30, 30, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestMergeStaffSlots(t *testing.T) {
	merged := mergeStaffSlots(map[int64][]types.TimeString{
		2: {"10:00", "11:00"},
		1: {"10:00", "10:30"},
	})

	require.Len(t, merged, 3)
	assert.Equal(t, types.TimeString("10:00"), merged[0].StartTime)
	assert.Equal(t, []int64{1, 2}, merged[0].StaffIDs)
	assert.Equal(t, types.TimeString("10:30"), merged[1].StartTime)
	assert.Equal(t, []int64{1}, merged[1].StaffIDs)
	assert.Equal(t, types.TimeString("11:00"), merged[2].StartTime)
	assert.Equal(t, []int64{2}, merged[2].StaffIDs)

	assert.Empty(t, mergeStaffSlots(nil))
}
