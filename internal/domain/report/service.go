package report

import "context"

// ReportService produces aggregate views for admins and team leaders.
type ReportService interface {
	RemainingHours(ctx context.Context, scope Scope) (RemainingHoursResponse, error)
}
