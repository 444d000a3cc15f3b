package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/NikoCousin/book-am/internal/domain"
	"github.com/NikoCousin/book-am/internal/infra/storage/business"
	"github.com/NikoCousin/book-am/pkg/types"
)

// Usecase реализует получение доступных слотов для записи
type Usecase struct {
	bookingRepo     BookingRepository
	businessRepo    BusinessRepository
	staffRepo       StaffRepository
	timeProvider    TimeProvider
	logger          Logger
	intervalMinutes int
}

// NewUsecase создает новый экземпляр usecase получения доступных слотов
func NewUsecase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	staffRepo StaffRepository,
	timeProvider TimeProvider,
	logger Logger,
	intervalMinutes int,
) *Usecase {
	if intervalMinutes <= 0 {
		intervalMinutes = domain.DefaultSlotIntervalMinutes
	}

	return &Usecase{
		bookingRepo:     bookingRepo,
		businessRepo:    businessRepo,
		staffRepo:       staffRepo,
		timeProvider:    timeProvider,
		logger:          logger,
		intervalMinutes: intervalMinutes,
	}
}

// Execute возвращает доступные слоты на дату для услуги бизнеса.
//
// Шаги:
// 1. Валидация входных данных
// 2. Проверка существования бизнеса
// 3. Получение услуги (должна быть активной)
// 4. Получение мастеров с расписаниями и отгулами
// 5. Получение активных бронирований на дату
// 6. Вычисление слотов: для одного мастера или объединение по всем
func (u *Usecase) Execute(ctx context.Context, req Request) (Response, error) {
	if err := validateRequest(req); err != nil {
		return Response{}, err
	}

	if _, err := u.businessRepo.GetByID(ctx, req.BusinessID); err != nil {
		if errors.Is(err, business.ErrBusinessNotFound) {
			return Response{}, fmt.Errorf("%w: business %d", ErrBusinessNotFound, req.BusinessID)
		}
		u.logger.Error("get_availability: failed to get business %d: %v", req.BusinessID, err)
		return Response{}, fmt.Errorf("%w: get business: %v", ErrInternal, err)
	}

	service, err := u.businessRepo.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, business.ErrServiceNotFound) {
			return Response{}, fmt.Errorf("%w: service %d", ErrServiceNotFound, req.ServiceID)
		}
		u.logger.Error("get_availability: failed to get service %d: %v", req.ServiceID, err)
		return Response{}, fmt.Errorf("%w: get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		return Response{}, fmt.Errorf("%w: service %d is inactive", ErrServiceNotFound, req.ServiceID)
	}

	staffList, err := u.staffRepo.ListByBusiness(ctx, req.BusinessID, true)
	if err != nil {
		u.logger.Error("get_availability: failed to list staff for business %d: %v", req.BusinessID, err)
		return Response{}, fmt.Errorf("%w: list staff: %v", ErrInternal, err)
	}

	if req.StaffID != nil {
		staffList = filterStaffByID(staffList, *req.StaffID)
		if len(staffList) == 0 {
			return Response{}, fmt.Errorf("%w: staff %d", ErrStaffNotFound, *req.StaffID)
		}
	}

	bookings, err := u.bookingRepo.GetByBusinessWithFilter(ctx, domain.BusinessBookingsFilter{
		BusinessID:     req.BusinessID,
		StartDate:      &req.Date,
		EndDate:        &req.Date,
		OnlySlotHolder: true,
	})
	if err != nil {
		u.logger.Error("get_availability: failed to get bookings for business %d: %v", req.BusinessID, err)
		return Response{}, fmt.Errorf("%w: get bookings: %v", ErrInternal, err)
	}

	now := u.timeProvider.Now()

	slotsByStaff := make(map[int64][]types.TimeString, len(staffList))
	for _, member := range staffList {
		slots, err := resolveStaffSlots(member, req.Date, now, service.DurationMinutes, u.intervalMinutes, bookings)
		if err != nil {
			return Response{}, fmt.Errorf("%w: resolve slots for staff %d: %v", ErrInternal, member.ID, err)
		}
		if len(slots) > 0 {
			slotsByStaff[member.ID] = slots
		}
	}

	return Response{
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		StaffID:    req.StaffID,
		Date:       req.Date,
		Slots:      mergeStaffSlots(slotsByStaff),
	}, nil
}

func filterStaffByID(staffList []*domain.Staff, staffID int64) []*domain.Staff {
	for _, member := range staffList {
		if member.ID == staffID {
			return []*domain.Staff{member}
		}
	}
	return nil
}
