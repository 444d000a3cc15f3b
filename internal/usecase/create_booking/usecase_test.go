package create_booking

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
	"github.com/NikoCousin/book-am/pkg/ptr"
	"github.com/NikoCousin/book-am/pkg/types"
)

// fakeStore хранит бронирования в памяти и повторяет контракт репозитория:
// ErrBookingNotFound для свободного слота, ErrSlotTaken для занятого.
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (f *fakeStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.bookings {
		if existing.StaffID == b.StaffID &&
			existing.BookingDate.Equal(b.BookingDate) &&
			existing.StartTime == b.StartTime &&
			existing.HoldsSlot() {
			return nil, bookingRepo.ErrSlotTaken
		}
	}

	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.bookings = append(f.bookings, b)
	return b, nil
}

func (f *fakeStore) FindSlotHolder(_ context.Context, staffID int64, date time.Time, startTime types.TimeString, excludeID *int64) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.StaffID == staffID && b.BookingDate.Equal(date) && b.StartTime == startTime && b.HoldsSlot() {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

type fakeBusinessRepo struct {
	service *domain.Service
}

func (f *fakeBusinessRepo) GetByID(_ context.Context, id int64) (*domain.Business, error) {
	if id != 1 {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return &domain.Business{ID: 1, Slug: "armen-cuts", Name: "Armen Cuts"}, nil
}

func (f *fakeBusinessRepo) GetService(_ context.Context, businessID, serviceID int64) (*domain.Service, error) {
	if businessID != 1 || f.service == nil || f.service.ID != serviceID {
		return nil, businessRepo.ErrServiceNotFound
	}
	return f.service, nil
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

type fakeCustomerRepo struct {
	mu        sync.Mutex
	nextID    int64
	customers map[string]*domain.Customer
}

func (f *fakeCustomerRepo) UpsertByPhone(_ context.Context, phone, name string, email *string) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.customers == nil {
		f.customers = make(map[string]*domain.Customer)
	}
	if c, ok := f.customers[phone]; ok {
		c.Name = name
		return c, nil
	}

	f.nextID++
	c := &domain.Customer{ID: f.nextID, Phone: phone, Name: name, Email: email}
	f.customers[phone] = c
	return c, nil
}

// fakeTxManager сериализует транзакции мьютексом - модель поведения
// SERIALIZABLE транзакций для конкурентных тестов
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

func weeklySchedule(updatedAt time.Time) []domain.ScheduleEntry {
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

func newTestUsecase(store *fakeStore, staff []*domain.Staff, now time.Time) *Usecase {
	return NewUsecase(
		store,
		&fakeBusinessRepo{service: &domain.Service{ID: 10, BusinessID: 1, Name: "Haircut", DurationMinutes: 30, IsActive: true}},
		&fakeStaffRepo{staff: staff},
		&fakeCustomerRepo{},
		&fakeTxManager{},
		&fixedTimeProvider{now: now},
		nopLogger{},
	)
}

func validRequest() Request {
	return Request{
		BusinessID:    1,
		ServiceID:     10,
		StaffID:       ptr.Ptr(int64(1)),
		Date:          time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC), // понедельник
		StartTime:     "10:00",
		CustomerName:  "Tigran",
		CustomerPhone: "+37491234567",
	}
}

func TestExecute_CreatesBooking(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	staff := []*domain.Staff{
		{ID: 1, BusinessID: 1, Name: "Armen", IsActive: true, Schedules: weeklySchedule(now)},
	}
	store := &fakeStore{}
	uc := newTestUsecase(store, staff, now)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, int64(1), resp.Booking.StaffID)
	assert.Equal(t, types.TimeString("10:00"), resp.Booking.StartTime)
	assert.Equal(t, types.TimeString("10:30"), resp.Booking.EndTime)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
	assert.NotZero(t, resp.Booking.CustomerID)
}

func TestExecute_ConcurrentSameSlot_OneWinner(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	staff := []*domain.Staff{
		{ID: 1, BusinessID: 1, Name: "Armen", IsActive: true, Schedules: weeklySchedule(now)},
	}
	store := &fakeStore{}
	uc := newTestUsecase(store, staff, now)

	const attempts = 10
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validRequest())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var wins, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			wins++
		default:
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			conflicts++
		}
	}

	assert.Equal(t, 1, wins, "exactly one booking must win the slot")
	assert.Equal(t, attempts-1, conflicts)
	assert.Len(t, store.bookings, 1)
}

func TestExecute_AnyStaffPicksFree(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	staff := []*domain.Staff{
		{ID: 1, BusinessID: 1, Name: "Armen", IsActive: true, Schedules: weeklySchedule(now)},
		{ID: 2, BusinessID: 1, Name: "Narek", IsActive: true, Schedules: weeklySchedule(now)},
	}
	store := &fakeStore{}
	uc := newTestUsecase(store, staff, now)

	req := validRequest()
	req.StaffID = nil

	// Первое бронирование достается мастеру с меньшим ID
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Booking.StaffID)

	// Второе на тот же слот - следующему свободному
	req2 := validRequest()
	req2.StaffID = nil
	req2.CustomerPhone = "+37499876543"
	resp, err = uc.Execute(context.Background(), req2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Booking.StaffID)

	// Третьего свободного мастера нет
	req3 := validRequest()
	req3.StaffID = nil
	req3.CustomerPhone = "+37477111222"
	_, err = uc.Execute(context.Background(), req3)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ScheduleChecks(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	staff := []*domain.Staff{
		{ID: 1, BusinessID: 1, Name: "Armen", IsActive: true, Schedules: weeklySchedule(now)},
	}
	uc := newTestUsecase(&fakeStore{}, staff, now)

	// Слот вне рабочего окна
	req := validRequest()
	req.StartTime = "09:00"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Услуга не помещается до конца окна
	req = validRequest()
	req.StartTime = "18:45"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Воскресенье - нерабочий день
	req = validRequest()
	req.Date = time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Отгул блокирует день
	staff[0].TimeOff = []domain.TimeOff{{StartDate: monday, EndDate: monday}}
	req = validRequest()
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_Validation(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	staff := []*domain.Staff{
		{ID: 1, BusinessID: 1, Name: "Armen", IsActive: true, Schedules: weeklySchedule(now)},
	}
	uc := newTestUsecase(&fakeStore{}, staff, now)

	// Дата в прошлом
	req := validRequest()
	req.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Телефон не армянского формата
	req = validRequest()
	req.CustomerPhone = "+79991234567"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Пустое имя клиента
	req = validRequest()
	req.CustomerName = "  "
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Неизвестный мастер
	req = validRequest()
	req.StaffID = ptr.Ptr(int64(99))
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
