package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/NikoCousin/book-am/internal/domain"
	"github.com/NikoCousin/book-am/pkg/types"
)

var (
	// ErrInvalidSchedule возвращается при некорректном недельном расписании
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInvalidTimeOff возвращается при некорректном периоде отгула
	ErrInvalidTimeOff = errors.New("invalid time off period")
)

// Request модели

// ScheduleDay один день недельного расписания мастера
type ScheduleDay struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "19:00"
	IsWorking bool   `json:"isWorking"`
}

// ReplaceScheduleRequest запрос на полную замену недельного расписания
type ReplaceScheduleRequest struct {
	BusinessID int64         `json:"businessId"`
	Days       []ScheduleDay `json:"days"`
}

// ToDomainEntries валидирует и конвертирует дни расписания в domain модели.
// Дни недели не должны повторяться, начало рабочего окна должно быть раньше конца.
func (r *ReplaceScheduleRequest) ToDomainEntries(staffID int64) ([]domain.ScheduleEntry, error) {
	seen := make(map[int]bool, len(r.Days))
	entries := make([]domain.ScheduleEntry, 0, len(r.Days))

	for _, day := range r.Days {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: day_of_week %d out of range [0, 6]", ErrInvalidSchedule, day.DayOfWeek)
		}
		if seen[day.DayOfWeek] {
			return nil, fmt.Errorf("%w: duplicate day_of_week %d", ErrInvalidSchedule, day.DayOfWeek)
		}
		seen[day.DayOfWeek] = true

		startTime, err := types.NewTimeStringFromString(day.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: start_time for day %d: %v", ErrInvalidSchedule, day.DayOfWeek, err)
		}
		endTime, err := types.NewTimeStringFromString(day.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: end_time for day %d: %v", ErrInvalidSchedule, day.DayOfWeek, err)
		}
		if day.IsWorking && !startTime.IsBefore(endTime) {
			return nil, fmt.Errorf("%w: start_time must be before end_time for day %d", ErrInvalidSchedule, day.DayOfWeek)
		}

		entries = append(entries, domain.ScheduleEntry{
			StaffID:   staffID,
			DayOfWeek: day.DayOfWeek,
			StartTime: startTime,
			EndTime:   endTime,
			IsWorking: day.IsWorking,
		})
	}

	return entries, nil
}

// AddTimeOffRequest запрос на добавление отгула
type AddTimeOffRequest struct {
	BusinessID int64     `json:"businessId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Reason     *string   `json:"reason,omitempty"`
}

// Validate проверяет корректность периода отгула
func (r *AddTimeOffRequest) Validate() error {
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrInvalidTimeOff)
	}
	if r.EndDate.Before(r.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", ErrInvalidTimeOff)
	}
	return nil
}

// Response модели

// ScheduleDayResponse день недельного расписания в ответе
type ScheduleDayResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsWorking bool   `json:"isWorking"`
}

// TimeOffResponse запись отгула в ответе
type TimeOffResponse struct {
	ID        int64   `json:"id"`
	StaffID   int64   `json:"staffId"`
	StartDate string  `json:"startDate"` // "2026-09-15"
	EndDate   string  `json:"endDate"`
	Reason    *string `json:"reason,omitempty"`
}

// StaffResponse ответ с данными мастера
type StaffResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	IsActive bool    `json:"isActive"`

	Schedule []ScheduleDayResponse `json:"schedule"`
	TimeOff  []TimeOffResponse     `json:"timeOff"`
}

// StaffListResponse ответ со списком мастеров
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// Методы конвертации

// FromDomainStaff конвертирует domain модель в DTO
func FromDomainStaff(m *domain.Staff) *StaffResponse {
	if m == nil {
		return nil
	}

	resp := &StaffResponse{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		Phone:    m.Phone,
		Avatar:   m.Avatar,
		IsActive: m.IsActive,
		Schedule: make([]ScheduleDayResponse, 0, len(m.Schedules)),
		TimeOff:  make([]TimeOffResponse, 0, len(m.TimeOff)),
	}

	for _, entry := range m.Schedules {
		resp.Schedule = append(resp.Schedule, ScheduleDayResponse{
			DayOfWeek: entry.DayOfWeek,
			StartTime: entry.StartTime.String(),
			EndTime:   entry.EndTime.String(),
			IsWorking: entry.IsWorking,
		})
	}

	for _, timeOff := range m.TimeOff {
		resp.TimeOff = append(resp.TimeOff, FromDomainTimeOff(&timeOff))
	}

	return resp
}

// FromDomainStaffList конвертирует список domain моделей в DTO
func FromDomainStaffList(members []*domain.Staff) *StaffListResponse {
	resp := &StaffListResponse{
		Staff: make([]StaffResponse, 0, len(members)),
	}

	for _, member := range members {
		if staffResp := FromDomainStaff(member); staffResp != nil {
			resp.Staff = append(resp.Staff, *staffResp)
		}
	}

	return resp
}

// FromDomainTimeOff конвертирует запись отгула в DTO
func FromDomainTimeOff(t *domain.TimeOff) TimeOffResponse {
	return TimeOffResponse{
		ID:        t.ID,
		StaffID:   t.StaffID,
		StartDate: t.StartDate.Format(domain.DateFormat),
		EndDate:   t.EndDate.Format(domain.DateFormat),
		Reason:    t.Reason,
	}
}
