package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/NikoCousin/book-am/internal/domain"
	staffRepo "github.com/NikoCousin/book-am/internal/infra/storage/staff"
	"github.com/NikoCousin/book-am/internal/service/staff/models"
)

// Service сервис для управления мастерами: расписания и отгулы
type Service struct {
	staffRepo StaffRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса мастеров
func NewService(staffRepo StaffRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		staffRepo: staffRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// ListByBusiness получает мастеров бизнеса с расписаниями и отгулами
func (s *Service) ListByBusiness(ctx context.Context, businessID int64) (*models.StaffListResponse, error) {
	s.logger.Info("ListByBusiness: fetching staff for business=%d", businessID)

	members, err := s.staffRepo.ListByBusiness(ctx, businessID, false)
	if err != nil {
		s.logger.Error("ListByBusiness: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListByBusiness - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStaffList(members), nil
}

// ReplaceSchedule полностью заменяет недельное расписание мастера.
// Замена атомарна: удаление старых записей и вставка новых идут в одной транзакции.
func (s *Service) ReplaceSchedule(ctx context.Context, staffID int64, req *models.ReplaceScheduleRequest) (*models.StaffResponse, error) {
	s.logger.Info("ReplaceSchedule: replacing schedule for staff=%d, business=%d", staffID, req.BusinessID)

	if err := s.checkStaffBelongs(ctx, staffID, req.BusinessID); err != nil {
		return nil, err
	}

	entries, err := req.ToDomainEntries(staffID)
	if err != nil {
		s.logger.Warn("ReplaceSchedule: invalid schedule for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.staffRepo.ReplaceSchedule(txCtx, staffID, entries)
	})
	if err != nil {
		s.logger.Error("ReplaceSchedule: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: ReplaceSchedule - repository error: %v", ErrInternal, err)
	}

	member, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		s.logger.Error("ReplaceSchedule: failed to reload staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: ReplaceSchedule - reload staff: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceSchedule: schedule replaced for staff=%d, %d days", staffID, len(entries))
	return models.FromDomainStaff(member), nil
}

// AddTimeOff добавляет мастеру период отгула
func (s *Service) AddTimeOff(ctx context.Context, staffID int64, req *models.AddTimeOffRequest) (*models.TimeOffResponse, error) {
	s.logger.Info("AddTimeOff: adding time off for staff=%d, business=%d", staffID, req.BusinessID)

	if err := s.checkStaffBelongs(ctx, staffID, req.BusinessID); err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		s.logger.Warn("AddTimeOff: invalid period for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.staffRepo.AddTimeOff(ctx, &domain.TimeOff{
		StaffID:   staffID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	})
	if err != nil {
		s.logger.Error("AddTimeOff: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: AddTimeOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddTimeOff: time off id=%d added for staff=%d", created.ID, staffID)
	resp := models.FromDomainTimeOff(created)
	return &resp, nil
}

// DeleteTimeOff удаляет запись отгула.
// Запись чужого бизнеса неотличима от несуществующей.
func (s *Service) DeleteTimeOff(ctx context.Context, businessID, timeOffID int64) error {
	s.logger.Info("DeleteTimeOff: deleting time off id=%d for business=%d", timeOffID, businessID)

	timeOff, err := s.staffRepo.GetTimeOff(ctx, timeOffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrTimeOffNotFound) {
			s.logger.Warn("DeleteTimeOff: time off id=%d not found", timeOffID)
			return ErrTimeOffNotFound
		}
		s.logger.Error("DeleteTimeOff: repository error for time off id=%d: %v", timeOffID, err)
		return fmt.Errorf("%w: DeleteTimeOff - repository error: %v", ErrInternal, err)
	}

	if err := s.checkStaffBelongs(ctx, timeOff.StaffID, businessID); err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			return ErrTimeOffNotFound
		}
		return err
	}

	if err := s.staffRepo.DeleteTimeOff(ctx, timeOffID); err != nil {
		if errors.Is(err, staffRepo.ErrTimeOffNotFound) {
			return ErrTimeOffNotFound
		}
		s.logger.Error("DeleteTimeOff: repository error for time off id=%d: %v", timeOffID, err)
		return fmt.Errorf("%w: DeleteTimeOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteTimeOff: time off id=%d deleted", timeOffID)
	return nil
}

// checkStaffBelongs проверяет, что мастер принадлежит бизнесу
func (s *Service) checkStaffBelongs(ctx context.Context, staffID, businessID int64) error {
	member, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("checkStaffBelongs: staff=%d not found", staffID)
			return ErrStaffNotFound
		}
		s.logger.Error("checkStaffBelongs: repository error for staff=%d: %v", staffID, err)
		return fmt.Errorf("%w: checkStaffBelongs - repository error: %v", ErrInternal, err)
	}

	if member.BusinessID != businessID {
		s.logger.Warn("checkStaffBelongs: staff=%d belongs to another business", staffID)
		return ErrStaffNotFound
	}

	return nil
}
