package attendance

import "errors"

// Attendance domain errors
var (
	// Clocking errors
	ErrAlreadyClockedIn  = errors.New("you have already clocked in today")
	ErrAlreadyClockedOut = errors.New("you have already clocked out today")
	ErrNotClockedIn      = errors.New("you have not clocked in yet")

	// Edit workflow errors
	ErrInvalidOrdering  = errors.New("time in must come before time out")
	ErrNoPendingRequest = errors.New("no pending edit request on this record")

	// General errors
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrNotRecordOwner   = errors.New("you can only modify your own attendance records")
	ErrDuplicateDay     = errors.New("an attendance record already exists for this day")
	ErrConcurrentUpdate = errors.New("the record was modified by another request, try again")
)
