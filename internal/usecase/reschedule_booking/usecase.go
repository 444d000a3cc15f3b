package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/NikoCousin/book-am/internal/domain"
	"github.com/NikoCousin/book-am/internal/infra/storage/booking"
	"github.com/NikoCousin/book-am/pkg/types"
)

// Usecase реализует перенос бронирования на другой слот
type Usecase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	txManager    TxManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUsecase создает новый экземпляр usecase переноса бронирования
func NewUsecase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	txManager TxManager,
	timeProvider TimeProvider,
	logger Logger,
) *Usecase {
	return &Usecase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute переносит бронирование на новые дату и время.
//
// Шаги:
// 1. Валидация входных данных
// 2. Получение бронирования с проверкой принадлежности бизнесу
// 3. Пересчет end_time от актуальной длительности услуги
// 4. В SERIALIZABLE транзакции:
//    4.1. Проверка, что новый слот свободен (собственное бронирование
//         исключается - перенос на тот же слот всегда успешен)
//    4.2. Обновление даты, времени и статуса на "rescheduled"
func (u *Usecase) Execute(ctx context.Context, req Request) (Response, error) {
	now := u.timeProvider.Now()

	if err := validateRequest(req, now); err != nil {
		return Response{}, err
	}

	current, err := u.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return Response{}, fmt.Errorf("%w: booking %d", ErrBookingNotFound, req.BookingID)
		}
		u.logger.Error("reschedule_booking: failed to get booking %d: %v", req.BookingID, err)
		return Response{}, fmt.Errorf("%w: get booking: %v", ErrInternal, err)
	}

	// Бронирование чужого бизнеса неотличимо от несуществующего
	if current.BusinessID != req.BusinessID {
		return Response{}, fmt.Errorf("%w: booking %d", ErrBookingNotFound, req.BookingID)
	}

	endTime, err := u.resolveEndTime(ctx, current, req.NewStartTime)
	if err != nil {
		return Response{}, err
	}

	var updated *domain.Booking
	err = u.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		_, err := u.bookingRepo.FindSlotHolder(txCtx, current.StaffID, req.NewDate, req.NewStartTime, &current.ID)
		if err == nil {
			return fmt.Errorf("%w: staff %d at %s", ErrSlotNotAvailable, current.StaffID, req.NewStartTime)
		}
		if !errors.Is(err, booking.ErrBookingNotFound) {
			u.logger.Error("reschedule_booking: failed to check slot: %v", err)
			return fmt.Errorf("%w: check slot: %v", ErrInternal, err)
		}

		updated, err = u.bookingRepo.UpdateSlot(txCtx, current.ID, req.NewDate, req.NewStartTime, endTime, domain.StatusRescheduled)
		if err != nil {
			if errors.Is(err, booking.ErrSlotTaken) {
				return fmt.Errorf("%w: staff %d at %s", ErrSlotNotAvailable, current.StaffID, req.NewStartTime)
			}
			u.logger.Error("reschedule_booking: failed to update booking %d: %v", current.ID, err)
			return fmt.Errorf("%w: update booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return Response{}, err
	}

	u.logger.Info("reschedule_booking: booking %d moved to %s %s",
		updated.ID, updated.BookingDate.Format(domain.DateFormat), updated.StartTime)

	return Response{Booking: updated}, nil
}

// resolveEndTime пересчитывает время окончания от актуальной длительности
// услуги. Если услуга удалена, сохраняется исходная длительность бронирования.
func (u *Usecase) resolveEndTime(ctx context.Context, current *domain.Booking, newStart types.TimeString) (types.TimeString, error) {
	duration := current.EndTime.Minutes() - current.StartTime.Minutes()

	service, err := u.businessRepo.GetService(ctx, current.BusinessID, current.ServiceID)
	if err == nil {
		duration = service.DurationMinutes
	}

	endTime, err := newStart.AddMinutes(duration)
	if err != nil {
		return "", fmt.Errorf("%w: service does not fit before midnight", ErrSlotNotAvailable)
	}

	return endTime, nil
}
