package attendance

import (
	"context"
	"time"
)

// RecordRepository defines data access for attendance records.
//
// Mutations are guarded so that every operation is a single atomic
// read-modify-write: Create relies on the (user_id, work_day) uniqueness,
// SetTimeOut only fires while time_out is still unset, and Update is a
// compare-and-swap on the record's last-seen UpdatedAt. A losing writer
// gets ErrDuplicateDay, ErrAlreadyClockedOut or ErrConcurrentUpdate and
// never silently overwrites.
type RecordRepository interface {
	// Create inserts a new record; ErrDuplicateDay when the (user, day)
	// bucket is already taken.
	Create(ctx context.Context, rec Record) (Record, error)

	// GetByID retrieves a record by its identifier.
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByUserAndDay retrieves the record for a user's Manila calendar
	// day; ErrRecordNotFound when absent.
	GetByUserAndDay(ctx context.Context, userID string, day time.Time) (Record, error)

	// SetTimeOut closes an open record, storing the computed total.
	// ErrAlreadyClockedOut when time_out is already set.
	SetTimeOut(ctx context.Context, id string, at time.Time, totalHours float64) (Record, error)

	// Update persists a mutated record. The stored row must still carry
	// expectedUpdatedAt or the write fails with ErrConcurrentUpdate.
	Update(ctx context.Context, rec Record, expectedUpdatedAt time.Time) (Record, error)

	// ListByUser returns all of a user's records, newest day first.
	ListByUser(ctx context.Context, userID string) ([]Record, error)

	// ListByStatus returns records in the given status joined with the
	// owner's name/email, oldest first. Feeds the pending review queue.
	ListByStatus(ctx context.Context, status Status) ([]Record, error)

	// List returns filtered records for the admin view, plus the total
	// match count.
	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)

	// Delete removes a record owned by ownerID; ErrRecordNotFound when no
	// such row exists for that owner.
	Delete(ctx context.Context, id string, ownerID string) error
}
