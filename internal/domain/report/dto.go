package report

// Scope selects which users an aggregate report covers.
type Scope string

const (
	ScopeAll  Scope = "all"  // every user (admin)
	ScopeTeam Scope = "team" // the caller's team (team leader or admin)
)

func (s Scope) Valid() bool {
	return s == ScopeAll || s == ScopeTeam
}

// UserHours is the raw aggregation row the repository produces: one user
// and the sum of their committed record hours.
type UserHours struct {
	UserID        string
	FullName      string
	Team          string
	RequiredHours float64
	HoursWorked   float64
}

// RemainingHoursRow is one user's progress against their required-hours
// target.
type RemainingHoursRow struct {
	UserID               string  `json:"user_id"`
	FullName             string  `json:"full_name"`
	Team                 string  `json:"team,omitempty"`
	RequiredHours        float64 `json:"required_hours"`
	HoursWorked          float64 `json:"hours_worked"`
	RemainingHours       float64 `json:"remaining_hours"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// RemainingHoursResponse lists progress rows sorted by remaining hours,
// most outstanding first.
type RemainingHoursResponse struct {
	Scope Scope               `json:"scope"`
	Users []RemainingHoursRow `json:"users"`
}
