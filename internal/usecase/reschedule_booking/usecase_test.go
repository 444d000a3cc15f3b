package reschedule_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikoCousin/book-am/internal/domain"
	bookingRepo "github.com/NikoCousin/book-am/internal/infra/storage/booking"
	businessRepo "github.com/NikoCousin/book-am/internal/infra/storage/business"
	"github.com/NikoCousin/book-am/pkg/types"
)

type fakeStore struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeStore) FindSlotHolder(_ context.Context, staffID int64, date time.Time, startTime types.TimeString, excludeID *int64) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.StaffID == staffID && b.BookingDate.Equal(date) && b.StartTime == startTime && b.HoldsSlot() {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeStore) UpdateSlot(_ context.Context, id int64, date time.Time, startTime, endTime types.TimeString, status domain.BookingStatus) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}

	b.BookingDate = date
	b.StartTime = startTime
	b.EndTime = endTime
	b.Status = status
	b.UpdatedAt = time.Now()

	copied := *b
	return &copied, nil
}

type fakeBusinessRepo struct {
	service *domain.Service
}

func (f *fakeBusinessRepo) GetService(_ context.Context, businessID, serviceID int64) (*domain.Service, error) {
	if f.service == nil || f.service.ID != serviceID || f.service.BusinessID != businessID {
		return nil, businessRepo.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUsecase(store *fakeStore) *Usecase {
	return NewUsecase(
		store,
		&fakeBusinessRepo{service: &domain.Service{ID: 10, BusinessID: 1, Name: "Haircut", DurationMinutes: 30, IsActive: true}},
		&fakeTxManager{},
		&fixedTimeProvider{now: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)},
		nopLogger{},
	)
}

func seedStore() *fakeStore {
	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	return &fakeStore{
		bookings: map[int64]*domain.Booking{
			1: {
				ID: 1, BusinessID: 1, StaffID: 1, ServiceID: 10, CustomerID: 1,
				BookingDate: monday, StartTime: "10:00", EndTime: "10:30",
				Status: domain.StatusConfirmed,
			},
			2: {
				ID: 2, BusinessID: 1, StaffID: 1, ServiceID: 10, CustomerID: 2,
				BookingDate: monday, StartTime: "11:00", EndTime: "11:30",
				Status: domain.StatusConfirmed,
			},
		},
	}
}

func TestExecute_Reschedule(t *testing.T) {
	store := seedStore()
	uc := newTestUsecase(store)

	tuesday := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), Request{
		BusinessID:   1,
		BookingID:    1,
		NewDate:      tuesday,
		NewStartTime: "12:00",
	})
	require.NoError(t, err)
	assert.Equal(t, tuesday, resp.Booking.BookingDate)
	assert.Equal(t, types.TimeString("12:00"), resp.Booking.StartTime)
	assert.Equal(t, types.TimeString("12:30"), resp.Booking.EndTime)
	assert.Equal(t, domain.StatusRescheduled, resp.Booking.Status)
}

func TestExecute_SameSlotSucceeds(t *testing.T) {
	// Перенос на собственный слот не должен конфликтовать сам с собой
	store := seedStore()
	uc := newTestUsecase(store)

	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), Request{
		BusinessID:   1,
		BookingID:    1,
		NewDate:      monday,
		NewStartTime: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), resp.Booking.StartTime)
	assert.Equal(t, domain.StatusRescheduled, resp.Booking.Status)
}

func TestExecute_TakenSlotConflicts(t *testing.T) {
	store := seedStore()
	uc := newTestUsecase(store)

	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), Request{
		BusinessID:   1,
		BookingID:    1,
		NewDate:      monday,
		NewStartTime: "11:00", // занят бронированием 2
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_TenantScoping(t *testing.T) {
	store := seedStore()
	uc := newTestUsecase(store)

	tuesday := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	// Чужой бизнес не видит бронирование
	_, err := uc.Execute(context.Background(), Request{
		BusinessID:   2,
		BookingID:    1,
		NewDate:      tuesday,
		NewStartTime: "12:00",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = uc.Execute(context.Background(), Request{
		BusinessID:   1,
		BookingID:    99,
		NewDate:      tuesday,
		NewStartTime: "12:00",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUsecase(seedStore())

	// Дата в прошлом
	_, err := uc.Execute(context.Background(), Request{
		BusinessID:   1,
		BookingID:    1,
		NewDate:      time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		NewStartTime: "12:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Некорректное время
	_, err = uc.Execute(context.Background(), Request{
		BusinessID:   1,
		BookingID:    1,
		NewDate:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		NewStartTime: "9:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
