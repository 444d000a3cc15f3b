package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikoCousin/book-am/internal/domain"
	"github.com/NikoCousin/book-am/internal/infra/storage/business"
	"github.com/NikoCousin/book-am/pkg/ptr"
	"github.com/NikoCousin/book-am/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	return filterMatch(filter, f.bookings), nil
}

type fakeBusinessRepo struct {
	businesses map[int64]*domain.Business
	services   map[int64]*domain.Service
}

func (f *fakeBusinessRepo) GetByID(_ context.Context, id int64) (*domain.Business, error) {
	b, ok := f.businesses[id]
	if !ok {
		return nil, business.ErrBusinessNotFound
	}
	return b, nil
}

func (f *fakeBusinessRepo) GetService(_ context.Context, businessID, serviceID int64) (*domain.Service, error) {
	s, ok := f.services[serviceID]
	if !ok || s.BusinessID != businessID {
		return nil, business.ErrServiceNotFound
	}
	return s, nil
}

type fakeStaffRepo struct {
	staff []*domain.Staff
}

func (f *fakeStaffRepo) ListByBusiness(_ context.Context, businessID int64, activeOnly bool) ([]*domain.Staff, error) {
	var out []*domain.Staff
	for _, m := range f.staff {
		if m.BusinessID != businessID {
			continue
		}
		if activeOnly && !m.IsActive {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// filterMatch применяет фильтр к срезу в памяти, повторяя семантику репозитория
func filterMatch(f domain.BusinessBookingsFilter, bookings []*domain.Booking) []*domain.Booking {
	var out []*domain.Booking
	for _, b := range bookings {
		if b.BusinessID != f.BusinessID {
			continue
		}
		if f.StaffID != nil && b.StaffID != *f.StaffID {
			continue
		}
		if f.StartDate != nil && b.BookingDate.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && b.BookingDate.After(*f.EndDate) {
			continue
		}
		if f.OnlySlotHolder && !b.HoldsSlot() {
			continue
		}
		out = append(out, b)
	}
	return out
}

func newTestUsecase(bookings []*domain.Booking, staff []*domain.Staff, now time.Time) *Usecase {
	return NewUsecase(
		&fakeBookingRepo{bookings: bookings},
		&fakeBusinessRepo{
			businesses: map[int64]*domain.Business{1: {ID: 1, Slug: "armen-cuts", Name: "Armen Cuts"}},
			services: map[int64]*domain.Service{
				10: {ID: 10, BusinessID: 1, Name: "Haircut", DurationMinutes: 30, IsActive: true},
				11: {ID: 11, BusinessID: 1, Name: "Old service", DurationMinutes: 30, IsActive: false},
			},
		},
		&fakeStaffRepo{staff: staff},
		&fixedTimeProvider{now: now},
		nopLogger{},
		30,
	)
}

func weeklySchedule(start, end types.TimeString, updatedAt time.Time) []domain.ScheduleEntry {
	entries := make([]domain.ScheduleEntry, 0, 6)
	for day := 1; day <= 6; day++ {
		entries = append(entries, domain.ScheduleEntry{
			ID:        int64(day),
			DayOfWeek: day,
			StartTime: start,
			EndTime:   end,
			IsWorking: true,
			UpdatedAt: updatedAt,
		})
	}
	return entries
}

func TestExecute_SingleStaff(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	staff := []*domain.Staff{
		{ID: 1, BusinessID: 1, Name: "Armen", IsActive: true, Schedules: weeklySchedule("10:00", "19:00", now)},
	}

	uc := newTestUsecase(nil, staff, now)

	resp, err := uc.Execute(context.Background(), Request{
		BusinessID: 1,
		ServiceID:  10,
		StaffID:    ptr.Ptr(int64(1)),
		Date:       monday,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 18)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("18:30"), resp.Slots[17].StartTime)
	assert.Equal(t, []int64{1}, resp.Slots[0].StaffIDs)
}

func TestExecute_BookedSlotExcluded(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	staff := []*domain.Staff{
		{ID: 1, BusinessID: 1, Name: "Armen", IsActive: true, Schedules: weeklySchedule("10:00", "19:00", now)},
	}
	bookings := []*domain.Booking{
		{ID: 100, BusinessID: 1, StaffID: 1, BookingDate: monday, StartTime: "10:00", EndTime: "10:30", Status: domain.StatusConfirmed},
	}

	uc := newTestUsecase(bookings, staff, now)

	resp, err := uc.Execute(context.Background(), Request{BusinessID: 1, ServiceID: 10, Date: monday})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 17)
	for _, slot := range resp.Slots {
		assert.NotEqual(t, types.TimeString("10:00"), slot.StartTime)
	}

	// Повторный вызов дает тот же результат - доступность не мутирует состояние
	resp2, err := uc.Execute(context.Background(), Request{BusinessID: 1, ServiceID: 10, Date: monday})
	require.NoError(t, err)
	assert.Equal(t, resp.Slots, resp2.Slots)
}

func TestExecute_AnyStaffUnion(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	// Утренний и вечерний мастера со стыком в 13:00
	staff := []*domain.Staff{
		{ID: 1, BusinessID: 1, Name: "Armen", IsActive: true, Schedules: weeklySchedule("10:00", "13:00", now)},
		{ID: 2, BusinessID: 1, Name: "Narek", IsActive: true, Schedules: weeklySchedule("13:00", "19:00", now)},
	}

	uc := newTestUsecase(nil, staff, now)

	resp, err := uc.Execute(context.Background(), Request{BusinessID: 1, ServiceID: 10, Date: monday})
	require.NoError(t, err)

	// 10:00-12:30 у первого (6 слотов) + 13:00-18:30 у второго (12 слотов), без дубликатов
	require.Len(t, resp.Slots, 18)
	seen := make(map[types.TimeString]bool)
	for i, slot := range resp.Slots {
		assert.False(t, seen[slot.StartTime], "duplicate slot %s", slot.StartTime)
		seen[slot.StartTime] = true
		if i > 0 {
			assert.True(t, resp.Slots[i-1].StartTime.IsBefore(slot.StartTime))
		}
	}
	assert.Equal(t, []int64{1}, resp.Slots[0].StaffIDs)
	assert.Equal(t, []int64{2}, resp.Slots[17].StaffIDs)
}

func TestExecute_PastDateEmpty(t *testing.T) {
	now := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	staff := []*domain.Staff{
		{ID: 1, BusinessID: 1, Name: "Armen", IsActive: true, Schedules: weeklySchedule("10:00", "19:00", now)},
	}

	uc := newTestUsecase(nil, staff, now)

	resp, err := uc.Execute(context.Background(), Request{BusinessID: 1, ServiceID: 10, Date: yesterday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NotFoundErrors(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	staff := []*domain.Staff{
		{ID: 1, BusinessID: 1, Name: "Armen", IsActive: true, Schedules: weeklySchedule("10:00", "19:00", now)},
	}
	uc := newTestUsecase(nil, staff, now)

	_, err := uc.Execute(context.Background(), Request{BusinessID: 99, ServiceID: 10, Date: monday})
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	_, err = uc.Execute(context.Background(), Request{BusinessID: 1, ServiceID: 99, Date: monday})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	// Неактивная услуга неотличима от несуществующей
	_, err = uc.Execute(context.Background(), Request{BusinessID: 1, ServiceID: 11, Date: monday})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = uc.Execute(context.Background(), Request{BusinessID: 1, ServiceID: 10, StaffID: ptr.Ptr(int64(99)), Date: monday})
	assert.ErrorIs(t, err, ErrStaffNotFound)

	_, err = uc.Execute(context.Background(), Request{BusinessID: 0, ServiceID: 10, Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
