package get_availability

import (
	"sort"
	"time"

	"github.com/NikoCousin/book-am/internal/domain"
	"github.com/NikoCousin/book-am/pkg/types"
)

// generateSlots генерирует стартовые времена слотов с шагом interval минут.
// Слоты лежат строго в полуинтервале [start, end): слот, начинающийся в end,
// не генерируется.
func generateSlots(start, end types.TimeString, interval int) []types.TimeString {
	var slots []types.TimeString

	current := start
	for current.IsBefore(end) {
		slots = append(slots, current)

		next, err := current.AddMinutes(interval)
		if err != nil {
			// Достигли конца суток
			break
		}
		current = next
	}

	return slots
}

// resolveStaffSlots вычисляет доступные слоты одного мастера на дату.
//
// Пустой результат возвращается, если дата в прошлом, мастер в отгуле
// или день недели нерабочий. Иначе базовая сетка слотов фильтруется:
// услуга должна целиком помещаться в рабочее окно, и слот не должен
// пересекаться с активными бронированиями мастера.
func resolveStaffSlots(
	member *domain.Staff,
	date time.Time,
	now time.Time,
	durationMinutes int,
	intervalMinutes int,
	bookings []*domain.Booking,
) ([]types.TimeString, error) {
	if isDateInPast(date, now) {
		return nil, nil
	}

	if domain.IsDateBlocked(member.TimeOff, date) {
		return nil, nil
	}

	window, err := domain.WorkingWindowFor(member.Schedules, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	if window == nil {
		return nil, nil
	}

	var available []types.TimeString
	for _, slot := range generateSlots(window.Start, window.End, intervalMinutes) {
		slotEnd, err := slot.AddMinutes(durationMinutes)
		if err != nil {
			// Услуга не помещается до конца суток
			continue
		}

		if slotEnd.IsAfter(window.End) {
			continue
		}

		if overlapsActiveBooking(slot, slotEnd, member.ID, bookings) {
			continue
		}

		available = append(available, slot)
	}

	return available, nil
}

// overlapsActiveBooking проверяет пересечение слота с активными бронированиями мастера.
// Пересечение строгое: слот, начинающийся ровно в момент окончания
// бронирования, считается свободным.
func overlapsActiveBooking(slotStart, slotEnd types.TimeString, staffID int64, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if booking.StaffID != staffID {
			continue
		}
		if !booking.HoldsSlot() {
			continue
		}
		if booking.StartTime.IsBefore(slotEnd) && booking.EndTime.IsAfter(slotStart) {
			return true
		}
	}
	return false
}

// mergeStaffSlots объединяет слоты нескольких мастеров в один список без
// дубликатов, с указанием мастеров для каждого слота. Результат отсортирован
// по возрастанию времени начала.
func mergeStaffSlots(slotsByStaff map[int64][]types.TimeString) []Slot {
	staffBySlot := make(map[types.TimeString][]int64)
	for staffID, slots := range slotsByStaff {
		for _, slot := range slots {
			staffBySlot[slot] = append(staffBySlot[slot], staffID)
		}
	}

	merged := make([]Slot, 0, len(staffBySlot))
	for slot, staffIDs := range staffBySlot {
		sort.Slice(staffIDs, func(i, j int) bool { return staffIDs[i] < staffIDs[j] })
		merged = append(merged, Slot{StartTime: slot, StaffIDs: staffIDs})
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].StartTime.IsBefore(merged[j].StartTime)
	})

	return merged
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня (по дате, без учета времени)
func isDateInPast(date, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Before(today)
}
