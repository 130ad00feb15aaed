package user

import "time"

// Role is the closed set of roles the product knows. Kept as a tagged
// string so illegal flag combinations are unrepresentable.
type Role string

const (
	RoleMember     Role = "member"      // Regular intern
	RoleTeamLeader Role = "team_leader" // Can review team hour reports
	RoleAdmin      Role = "admin"       // Can approve/reject time edits
)

func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleTeamLeader, RoleAdmin:
		return true
	}
	return false
}

// CanApproveEdits reports whether the role may resolve time-edit requests.
func (r Role) CanApproveEdits() bool {
	return r == RoleAdmin
}

// CanViewReports reports whether the role may read aggregate hour reports.
func (r Role) CanViewReports() bool {
	return r == RoleAdmin || r == RoleTeamLeader
}

type User struct {
	ID            string
	Email         string
	PasswordHash  string
	FullName      string
	Role          Role
	Team          string
	RequiredHours float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Identity is the resolved caller the rest of the system consumes: who is
// acting and with which role. Built from verified JWT claims at the
// boundary.
type Identity struct {
	UserID   string
	Email    string
	FullName string
	Role     Role
	Team     string
}

func (i Identity) IsAdmin() bool {
	return i.Role.CanApproveEdits()
}
