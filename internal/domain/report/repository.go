package report

import "context"

// Repository reads aggregate hour data. It never mutates records and
// tolerates running concurrently with writes; a slightly stale snapshot is
// acceptable.
type Repository interface {
	// HoursByUser sums committed record hours per user, optionally
	// restricted to one team.
	HoursByUser(ctx context.Context, team *string) ([]UserHours, error)
}
