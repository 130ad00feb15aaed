package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/attendance"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRepositoryImpl{db: db}
}

const recordColumns = `id, user_id, work_day, time_in, time_out, total_hours, status,
	   pending_time_in, pending_time_out, request_reason, rejection_reason,
	   created_at, updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.WorkDay, &rec.TimeIn, &rec.TimeOut, &rec.TotalHours, &rec.Status,
		&rec.PendingTimeIn, &rec.PendingTimeOut, &rec.RequestReason, &rec.RejectionReason,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements attendance.RecordRepository. The unique index on
// (user_id, work_day) arbitrates concurrent inserts; the losing insert
// returns no row.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, user_id, work_day, time_in, time_out, total_hours, status,
			pending_time_in, pending_time_out, request_reason, rejection_reason
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		ON CONFLICT (user_id, work_day) DO NOTHING
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.UserID,
		rec.WorkDay,
		rec.TimeIn,
		rec.TimeOut,
		rec.TotalHours,
		rec.Status,
		rec.PendingTimeIn,
		rec.PendingTimeOut,
		rec.RequestReason,
		rec.RejectionReason,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrDuplicateDay
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.RecordRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE id = $1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// GetByUserAndDay implements attendance.RecordRepository.
func (r *attendanceRepositoryImpl) GetByUserAndDay(ctx context.Context, userID string, day time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE user_id = $1
		  AND work_day = $2
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, userID, day))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record by day: %w", err)
	}

	return rec, nil
}

// SetTimeOut implements attendance.RecordRepository. The time_out IS NULL
// guard makes concurrent clock-outs race safely: exactly one update fires.
// Status is derived in place: an unreviewed proposal on the row keeps it
// pending, otherwise the closed pair completes it.
func (r *attendanceRepositoryImpl) SetTimeOut(ctx context.Context, id string, at time.Time, totalHours float64) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET time_out = $1, total_hours = $2,
			status = CASE
				WHEN pending_time_in IS NOT NULL OR pending_time_out IS NOT NULL THEN $3
				ELSE $4
			END,
			updated_at = NOW()
		WHERE id = $5
		  AND time_out IS NULL
		RETURNING ` + recordColumns + `
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, at, totalHours, attendance.StatusPending, attendance.StatusCompleted, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrAlreadyClockedOut
		}
		return attendance.Record{}, fmt.Errorf("failed to close attendance record: %w", err)
	}

	return rec, nil
}

// Update implements attendance.RecordRepository. The updated_at predicate
// is a compare-and-swap: a stale writer updates zero rows.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, rec attendance.Record, expectedUpdatedAt time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET time_in = $1, time_out = $2, total_hours = $3, status = $4,
			pending_time_in = $5, pending_time_out = $6,
			request_reason = $7, rejection_reason = $8,
			updated_at = NOW()
		WHERE id = $9
		  AND updated_at = $10
		RETURNING ` + recordColumns + `
	`

	updated, err := scanRecord(q.QueryRow(ctx, query,
		rec.TimeIn,
		rec.TimeOut,
		rec.TotalHours,
		rec.Status,
		rec.PendingTimeIn,
		rec.PendingTimeOut,
		rec.RequestReason,
		rec.RejectionReason,
		rec.ID,
		expectedUpdatedAt,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrConcurrentUpdate
		}
		return attendance.Record{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return updated, nil
}

// ListByUser implements attendance.RecordRepository.
func (r *attendanceRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE user_id = $1
		ORDER BY work_day DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ListByStatus implements attendance.RecordRepository. Feeds the pending
// review queue, oldest request first.
func (r *attendanceRepositoryImpl) ListByStatus(ctx context.Context, status attendance.Status) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ar.id, ar.user_id, ar.work_day, ar.time_in, ar.time_out, ar.total_hours, ar.status,
			   ar.pending_time_in, ar.pending_time_out, ar.request_reason, ar.rejection_reason,
			   ar.created_at, ar.updated_at,
			   u.full_name, u.email, u.team
		FROM attendance_records ar
		JOIN users u ON u.id = ar.user_id
		WHERE ar.status = $1
		ORDER BY ar.updated_at ASC
	`

	rows, err := q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records by status: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.WorkDay, &rec.TimeIn, &rec.TimeOut, &rec.TotalHours, &rec.Status,
			&rec.PendingTimeIn, &rec.PendingTimeOut, &rec.RequestReason, &rec.RejectionReason,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.UserName, &rec.UserEmail, &rec.Team,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// List implements attendance.RecordRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if filter.UserName != nil && *filter.UserName != "" {
		where += fmt.Sprintf(" AND u.full_name ILIKE $%d", argPos)
		args = append(args, "%"+*filter.UserName+"%")
		argPos++
	}
	if filter.Date != nil && *filter.Date != "" {
		where += fmt.Sprintf(" AND ar.work_day = $%d", argPos)
		args = append(args, *filter.Date)
		argPos++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		where += fmt.Sprintf(" AND ar.work_day >= $%d", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		where += fmt.Sprintf(" AND ar.work_day <= $%d", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND ar.status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.Team != nil && *filter.Team != "" {
		where += fmt.Sprintf(" AND u.team = $%d", argPos)
		args = append(args, *filter.Team)
		argPos++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_records ar
		JOIN users u ON u.id = ar.user_id` + where

	var totalCount int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	listQuery := `
		SELECT ar.id, ar.user_id, ar.work_day, ar.time_in, ar.time_out, ar.total_hours, ar.status,
			   ar.pending_time_in, ar.pending_time_out, ar.request_reason, ar.rejection_reason,
			   ar.created_at, ar.updated_at,
			   u.full_name, u.email, u.team
		FROM attendance_records ar
		JOIN users u ON u.id = ar.user_id` + where + fmt.Sprintf(`
		ORDER BY ar.work_day DESC, u.full_name ASC
		LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.WorkDay, &rec.TimeIn, &rec.TimeOut, &rec.TotalHours, &rec.Status,
			&rec.PendingTimeIn, &rec.PendingTimeOut, &rec.RequestReason, &rec.RejectionReason,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.UserName, &rec.UserEmail, &rec.Team,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, totalCount, rows.Err()
}

// Delete implements attendance.RecordRepository. The owner predicate keeps
// a user from deleting someone else's record at the storage layer too.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string, ownerID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM attendance_records
		WHERE id = $1
		  AND user_id = $2
	`

	tag, err := q.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}
