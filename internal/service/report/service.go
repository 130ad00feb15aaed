package report

import (
	"context"
	"math"
	"sort"

	"github.com/go-chi/jwtauth/v5"

	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/auth"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/report"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/user"
)

type reportServiceImpl struct {
	reportRepo report.Repository
}

// NewReportService creates a new report service instance.
func NewReportService(reportRepo report.Repository) report.ReportService {
	return &reportServiceImpl{reportRepo: reportRepo}
}

func (s *reportServiceImpl) RemainingHours(ctx context.Context, scope report.Scope) (report.RemainingHoursResponse, error) {
	identity, err := identityFromContext(ctx)
	if err != nil {
		return report.RemainingHoursResponse{}, err
	}

	if !scope.Valid() {
		scope = report.ScopeTeam
	}

	var team *string
	switch scope {
	case report.ScopeAll:
		if !identity.IsAdmin() {
			return report.RemainingHoursResponse{}, user.ErrAdminPrivilegeRequired
		}
	case report.ScopeTeam:
		if !identity.Role.CanViewReports() {
			return report.RemainingHoursResponse{}, user.ErrReporterPrivilegeRequired
		}
		team = &identity.Team
	}

	rows, err := s.reportRepo.HoursByUser(ctx, team)
	if err != nil {
		return report.RemainingHoursResponse{}, err
	}

	users := make([]report.RemainingHoursRow, 0, len(rows))
	for _, row := range rows {
		users = append(users, toProgressRow(row))
	}
	// Most outstanding hours first.
	sort.Slice(users, func(i, j int) bool { return users[i].RemainingHours > users[j].RemainingHours })

	return report.RemainingHoursResponse{Scope: scope, Users: users}, nil
}

func toProgressRow(row report.UserHours) report.RemainingHoursRow {
	remaining := row.RequiredHours - row.HoursWorked
	if remaining < 0 {
		remaining = 0
	}

	var completion float64
	if row.RequiredHours > 0 {
		completion = row.HoursWorked / row.RequiredHours * 100
		if completion > 100 {
			completion = 100
		}
	}

	return report.RemainingHoursRow{
		UserID:               row.UserID,
		FullName:             row.FullName,
		Team:                 row.Team,
		RequiredHours:        row.RequiredHours,
		HoursWorked:          row.HoursWorked,
		RemainingHours:       round2(remaining),
		CompletionPercentage: round2(completion),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func identityFromContext(ctx context.Context) (user.Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Identity{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Identity{}, auth.ErrInvalidToken
	}

	identity := user.Identity{UserID: userID}
	if v, ok := claims["role"].(string); ok {
		identity.Role = user.Role(v)
	}
	if v, ok := claims["team"].(string); ok {
		identity.Team = v
	}

	return identity, nil
}
