package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/NikoCousin/book-am/internal/domain"
	"github.com/NikoCousin/book-am/internal/infra/storage/booking"
	"github.com/NikoCousin/book-am/internal/infra/storage/business"
	"github.com/NikoCousin/book-am/pkg/types"
)

// Usecase реализует создание бронирования с защитой от гонки за слот
type Usecase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	staffRepo    StaffRepository
	customerRepo CustomerRepository
	txManager    TxManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUsecase создает новый экземпляр usecase создания бронирования
func NewUsecase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	staffRepo StaffRepository,
	customerRepo CustomerRepository,
	txManager TxManager,
	timeProvider TimeProvider,
	logger Logger,
) *Usecase {
	return &Usecase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		staffRepo:    staffRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute создает бронирование.
//
// Шаги:
// 1. Валидация входных данных
// 2. Проверка существования бизнеса
// 3. Получение услуги (должна быть активной)
// 4. Определение кандидатов: указанный мастер или все активные мастера бизнеса
// 5. Фильтрация кандидатов по расписанию и отгулам
// 6. В SERIALIZABLE транзакции:
//    6.1. Поиск первого кандидата со свободным слотом (FOR UPDATE)
//    6.2. Поиск или создание клиента по телефону
//    6.3. Вставка бронирования со статусом confirmed
//
// При гонке двух запросов за один слот побеждает ровно один: проигравший
// получает либо сериализационный конфликт (и ретрай увидит занятый слот),
// либо ErrSlotTaken от уникального индекса.
func (u *Usecase) Execute(ctx context.Context, req Request) (Response, error) {
	now := u.timeProvider.Now()

	if err := validateRequest(req, now); err != nil {
		return Response{}, err
	}

	if _, err := u.businessRepo.GetByID(ctx, req.BusinessID); err != nil {
		if errors.Is(err, business.ErrBusinessNotFound) {
			return Response{}, fmt.Errorf("%w: business %d", ErrBusinessNotFound, req.BusinessID)
		}
		u.logger.Error("create_booking: failed to get business %d: %v", req.BusinessID, err)
		return Response{}, fmt.Errorf("%w: get business: %v", ErrInternal, err)
	}

	service, err := u.businessRepo.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, business.ErrServiceNotFound) {
			return Response{}, fmt.Errorf("%w: service %d", ErrServiceNotFound, req.ServiceID)
		}
		u.logger.Error("create_booking: failed to get service %d: %v", req.ServiceID, err)
		return Response{}, fmt.Errorf("%w: get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		return Response{}, fmt.Errorf("%w: service %d is inactive", ErrServiceNotFound, req.ServiceID)
	}

	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		return Response{}, fmt.Errorf("%w: service does not fit before midnight", ErrSlotNotAvailable)
	}

	candidates, err := u.resolveCandidates(ctx, req, endTime)
	if err != nil {
		return Response{}, err
	}

	var created *domain.Booking
	err = u.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		staffID, err := u.pickFreeStaff(txCtx, candidates, req)
		if err != nil {
			return err
		}

		customer, err := u.customerRepo.UpsertByPhone(txCtx, req.CustomerPhone, req.CustomerName, req.CustomerEmail)
		if err != nil {
			u.logger.Error("create_booking: failed to upsert customer %s: %v", req.CustomerPhone, err)
			return fmt.Errorf("%w: upsert customer: %v", ErrInternal, err)
		}

		created, err = u.bookingRepo.Create(txCtx, &domain.Booking{
			BusinessID:    req.BusinessID,
			StaffID:       staffID,
			ServiceID:     req.ServiceID,
			CustomerID:    customer.ID,
			CustomerName:  customer.Name,
			CustomerPhone: customer.Phone,
			BookingDate:   req.Date,
			StartTime:     req.StartTime,
			EndTime:       endTime,
			Status:        domain.StatusConfirmed,
			Notes:         req.Notes,
		})
		if err != nil {
			if errors.Is(err, booking.ErrSlotTaken) {
				return fmt.Errorf("%w: staff %d at %s", ErrSlotNotAvailable, staffID, req.StartTime)
			}
			u.logger.Error("create_booking: failed to create booking: %v", err)
			return fmt.Errorf("%w: create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return Response{}, err
	}

	u.logger.Info("create_booking: booking %d created for business %d, staff %d, %s %s",
		created.ID, created.BusinessID, created.StaffID, created.BookingDate.Format(domain.DateFormat), created.StartTime)

	return Response{Booking: created}, nil
}

// resolveCandidates возвращает мастеров, у которых слот помещается в рабочее
// окно и не попадает на отгул. Порядок кандидатов - по возрастанию ID.
func (u *Usecase) resolveCandidates(ctx context.Context, req Request, endTime types.TimeString) ([]int64, error) {
	staffList, err := u.staffRepo.ListByBusiness(ctx, req.BusinessID, true)
	if err != nil {
		u.logger.Error("create_booking: failed to list staff for business %d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: list staff: %v", ErrInternal, err)
	}

	if req.StaffID != nil {
		found := false
		for _, member := range staffList {
			if member.ID == *req.StaffID {
				staffList = []*domain.Staff{member}
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: staff %d", ErrStaffNotFound, *req.StaffID)
		}
	}

	var candidates []int64
	for _, member := range staffList {
		ok, err := staffCanServeSlot(member, req, endTime)
		if err != nil {
			return nil, fmt.Errorf("%w: check staff %d schedule: %v", ErrInternal, member.ID, err)
		}
		if ok {
			candidates = append(candidates, member.ID)
		}
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no staff available at %s", ErrSlotNotAvailable, req.StartTime)
	}

	return candidates, nil
}

// staffCanServeSlot проверяет, что слот попадает в рабочее окно мастера
// и дата не заблокирована отгулом
func staffCanServeSlot(member *domain.Staff, req Request, endTime types.TimeString) (bool, error) {
	if domain.IsDateBlocked(member.TimeOff, req.Date) {
		return false, nil
	}

	window, err := domain.WorkingWindowFor(member.Schedules, int(req.Date.Weekday()))
	if err != nil {
		return false, err
	}
	if window == nil {
		return false, nil
	}

	if req.StartTime.IsBefore(window.Start) || endTime.IsAfter(window.End) {
		return false, nil
	}

	return true, nil
}

// pickFreeStaff возвращает первого кандидата, чей слот свободен.
// Внутри транзакции FindSlotHolder блокирует найденную строку (FOR UPDATE).
func (u *Usecase) pickFreeStaff(ctx context.Context, candidates []int64, req Request) (int64, error) {
	for _, staffID := range candidates {
		_, err := u.bookingRepo.FindSlotHolder(ctx, staffID, req.Date, req.StartTime, nil)
		if errors.Is(err, booking.ErrBookingNotFound) {
			// Слот свободен
			return staffID, nil
		}
		if err != nil {
			u.logger.Error("create_booking: failed to check slot for staff %d: %v", staffID, err)
			return 0, fmt.Errorf("%w: check slot: %v", ErrInternal, err)
		}
	}

	return 0, fmt.Errorf("%w: %s %s", ErrSlotNotAvailable, req.Date.Format(domain.DateFormat), req.StartTime)
}
