package postgresql

import (
	"context"
	"fmt"

	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/report"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.Repository {
	return &reportRepositoryImpl{db: db}
}

// HoursByUser implements report.Repository. Only committed record totals
// count toward progress; a record with a pending proposal still contributes
// its last committed total.
func (r *reportRepositoryImpl) HoursByUser(ctx context.Context, team *string) ([]report.UserHours, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.full_name, u.team, u.required_hours,
			   COALESCE(SUM(ar.total_hours), 0) AS hours_worked
		FROM users u
		LEFT JOIN attendance_records ar
			ON ar.user_id = u.id
		   AND ar.time_in IS NOT NULL
		   AND ar.time_out IS NOT NULL
		WHERE ($1::text IS NULL OR u.team = $1)
		GROUP BY u.id, u.full_name, u.team, u.required_hours
		ORDER BY u.full_name
	`

	rows, err := q.Query(ctx, query, team)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate hours by user: %w", err)
	}
	defer rows.Close()

	var out []report.UserHours
	for rows.Next() {
		var row report.UserHours
		if err := rows.Scan(&row.UserID, &row.FullName, &row.Team, &row.RequiredHours, &row.HoursWorked); err != nil {
			return nil, fmt.Errorf("failed to scan user hours: %w", err)
		}
		out = append(out, row)
	}

	return out, rows.Err()
}
