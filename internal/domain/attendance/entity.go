package attendance

import (
	"time"

	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/pkg/hours"
)

// Status is an attendance record's lifecycle state. It is derived from the
// record's fields on every mutation, never set free-hand, except that the
// edit workflow stamps approved/rejected after consuming a proposal.
type Status string

const (
	StatusIncomplete Status = "incomplete" // missing clock-in or clock-out
	StatusCompleted  Status = "completed"  // both committed times present
	StatusPending    Status = "pending"    // an edit proposal awaits review
	StatusApproved   Status = "approved"   // last proposal was committed
	StatusRejected   Status = "rejected"   // last proposal was discarded
)

// Record is one user's attendance for one Manila calendar day. At most one
// record exists per (UserID, WorkDay).
type Record struct {
	ID      string
	UserID  string
	WorkDay time.Time // Manila midnight; the day-bucket key

	TimeIn     *time.Time
	TimeOut    *time.Time
	TotalHours float64
	Status     Status

	// Unreviewed edit proposal. Either or both may be set.
	PendingTimeIn  *time.Time
	PendingTimeOut *time.Time

	RequestReason   *string
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined user fields for list/queue views.
	UserName  *string
	UserEmail *string
	Team      *string
}

// HasPendingEdit reports whether an unreviewed proposal is on the record.
func (r *Record) HasPendingEdit() bool {
	return r.PendingTimeIn != nil || r.PendingTimeOut != nil
}

// Recompute derives Status and TotalHours from the record's current
// fields. Every mutating operation calls it before persisting, so the
// derivation stays a pure function rather than a storage-layer hook.
//
// Priority: an unresolved proposal wins, then a completed (in, out) pair,
// then incomplete. TotalHours always reflects the committed pair only;
// pending values never contribute.
func (r *Record) Recompute() {
	switch {
	case r.HasPendingEdit():
		r.Status = StatusPending
	case r.TimeIn != nil && r.TimeOut != nil:
		r.Status = StatusCompleted
	default:
		r.Status = StatusIncomplete
	}

	if r.TimeIn != nil && r.TimeOut != nil {
		if total, ok := hours.Total(*r.TimeIn, *r.TimeOut); ok {
			r.TotalHours = total
		}
	}
}
