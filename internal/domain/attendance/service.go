package attendance

import "context"

// AttendanceService defines the record lifecycle and the edit-request
// workflow. The caller identity always comes from the request context's
// verified claims.
type AttendanceService interface {
	// ClockIn opens today's record for the caller.
	ClockIn(ctx context.Context) (RecordResponse, error)

	// ClockOut closes today's record and computes the stored total.
	ClockOut(ctx context.Context) (ClockOutResponse, error)

	// Create backfills a record for a past date (admin, or the owner).
	Create(ctx context.Context, req CreateRequest) (RecordResponse, error)

	// GetMyRecords returns the caller's records annotated with display
	// hours and day classification.
	GetMyRecords(ctx context.Context) (MyRecordsResponse, error)

	// List returns filtered records across users (admin).
	List(ctx context.Context, filter ListFilter) (ListResponse, error)

	// Delete removes one of the caller's own records.
	Delete(ctx context.Context, id string) error

	// SubmitEdit proposes a correction to one field of the caller's record
	// for a day, and notifies the admins best-effort.
	SubmitEdit(ctx context.Context, req SubmitEditRequest) (RecordResponse, error)

	// Approve commits one pending field of the target record (admin).
	Approve(ctx context.Context, req ApproveRequest) (RecordResponse, error)

	// Reject discards the target record's proposal, keeping the committed
	// times untouched (admin).
	Reject(ctx context.Context, req RejectRequest) (RecordResponse, error)

	// ListPending returns the review queue of pending edit requests
	// (admin).
	ListPending(ctx context.Context) (PendingListResponse, error)
}
