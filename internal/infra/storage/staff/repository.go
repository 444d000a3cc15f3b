package staff

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/NikoCousin/book-am/internal/domain"
	"github.com/NikoCousin/book-am/pkg/dbmetrics"
	"github.com/NikoCousin/book-am/pkg/psqlbuilder"
)

// Repository репозиторий для работы с мастерами, их расписаниями и отгулами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает мастера по ID вместе с расписанием и отгулами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := staffSelect().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	member, err := scanStaff(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan staff: %v", ErrScanRow, err)
	}

	if err := r.attachDetails(ctx, []*domain.Staff{member}); err != nil {
		return nil, err
	}

	return member, nil
}

// ListByBusiness получает мастеров бизнеса вместе с расписаниями и отгулами,
// отсортированных по id (стабильный порядок назначения в any-staff режиме).
// activeOnly=true отфильтровывает неактивных мастеров.
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := staffSelect().
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("id ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	members := make([]*domain.Staff, 0)
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - scan row: %v", ErrScanRow, err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - rows error: %v", ErrScanRow, err)
	}

	if err := r.attachDetails(ctx, members); err != nil {
		return nil, err
	}

	return members, nil
}

// ReplaceSchedule заменяет недельное расписание мастера целиком.
// Вызывается внутри транзакции (дашборд присылает всю неделю разом).
func (r *Repository) ReplaceSchedule(ctx context.Context, staffID int64, entries []domain.ScheduleEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff_schedules").
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceSchedule - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceSchedule - delete old entries: %v", ErrExecQuery, err)
	}

	if len(entries) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("staff_schedules").
		Columns("staff_id", "day_of_week", "start_time", "end_time", "is_working")

	for _, entry := range entries {
		insertBuilder = insertBuilder.Values(staffID, entry.DayOfWeek, entry.StartTime, entry.EndTime, entry.IsWorking)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceSchedule - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceSchedule - insert entries: %v", ErrExecQuery, err)
	}

	return nil
}

// AddTimeOff добавляет период отгула мастера
func (r *Repository) AddTimeOff(ctx context.Context, timeOff *domain.TimeOff) (*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_time_off").
		Columns("staff_id", "start_date", "end_date", "reason").
		Values(timeOff.StaffID, timeOff.StartDate, timeOff.EndDate, timeOff.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddTimeOff - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&timeOff.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: AddTimeOff - execute insert: %v", ErrExecQuery, err)
	}

	timeOff.CreatedAt = createdAt.Time

	return timeOff, nil
}

// GetTimeOff получает запись отгула по ID
func (r *Repository) GetTimeOff(ctx context.Context, id int64) (*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "staff_id", "start_date", "end_date", "reason", "created_at").
		From("staff_time_off").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeOff - build select query: %v", ErrBuildQuery, err)
	}

	var timeOff domain.TimeOff
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&timeOff.ID,
		&timeOff.StaffID,
		&timeOff.StartDate,
		&timeOff.EndDate,
		&timeOff.Reason,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTimeOffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeOff - scan time off: %v", ErrScanRow, err)
	}

	timeOff.CreatedAt = createdAt.Time

	return &timeOff, nil
}

// DeleteTimeOff удаляет запись отгула
func (r *Repository) DeleteTimeOff(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff_time_off").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteTimeOff - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteTimeOff - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteTimeOff - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTimeOffNotFound
	}

	return nil
}

// attachDetails подгружает расписания и отгулы для переданных мастеров
func (r *Repository) attachDetails(ctx context.Context, members []*domain.Staff) error {
	if len(members) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Staff, len(members))
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		byID[m.ID] = m
		ids = append(ids, m.ID)
		m.Schedules = make([]domain.ScheduleEntry, 0)
		m.TimeOff = make([]domain.TimeOff, 0)
	}

	if err := r.attachSchedules(ctx, byID, ids); err != nil {
		return err
	}
	return r.attachTimeOff(ctx, byID, ids)
}

func (r *Repository) attachSchedules(ctx context.Context, byID map[int64]*domain.Staff, ids []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_working",
		"created_at",
		"updated_at",
	).
		From("staff_schedules").
		Where(squirrel.Eq{"staff_id": ids}).
		OrderBy("staff_id ASC, day_of_week ASC, updated_at ASC, id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachSchedules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachSchedules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry domain.ScheduleEntry
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.StaffID,
			&entry.DayOfWeek,
			&entry.StartTime,
			&entry.EndTime,
			&entry.IsWorking,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return fmt.Errorf("%w: attachSchedules - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entry.UpdatedAt = updatedAt.Time

		if member, ok := byID[entry.StaffID]; ok {
			member.Schedules = append(member.Schedules, entry)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachSchedules - rows error: %v", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) attachTimeOff(ctx context.Context, byID map[int64]*domain.Staff, ids []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"start_date",
		"end_date",
		"reason",
		"created_at",
	).
		From("staff_time_off").
		Where(squirrel.Eq{"staff_id": ids}).
		OrderBy("staff_id ASC, start_date ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachTimeOff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachTimeOff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var timeOff domain.TimeOff
		var createdAt sql.NullTime

		err := rows.Scan(
			&timeOff.ID,
			&timeOff.StaffID,
			&timeOff.StartDate,
			&timeOff.EndDate,
			&timeOff.Reason,
			&createdAt,
		)
		if err != nil {
			return fmt.Errorf("%w: attachTimeOff - scan row: %v", ErrScanRow, err)
		}

		timeOff.CreatedAt = createdAt.Time

		if member, ok := byID[timeOff.StaffID]; ok {
			member.TimeOff = append(member.TimeOff, timeOff)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachTimeOff - rows error: %v", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func staffSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"email",
		"phone",
		"avatar",
		"is_active",
		"created_at",
		"updated_at",
	).From("staff")
}

func scanStaff(row rowScanner) (*domain.Staff, error) {
	var member domain.Staff
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&member.ID,
		&member.BusinessID,
		&member.Name,
		&member.Email,
		&member.Phone,
		&member.Avatar,
		&member.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	member.CreatedAt = createdAt.Time
	member.UpdatedAt = updatedAt.Time

	return &member, nil
}
