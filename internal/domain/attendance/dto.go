package attendance

import (
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/pkg/validator"
)

// EditableField names a record field an edit request may target.
type EditableField string

const (
	FieldTimeIn  EditableField = "time_in"
	FieldTimeOut EditableField = "time_out"
)

func (f EditableField) Valid() bool {
	return f == FieldTimeIn || f == FieldTimeOut
}

// CreateRequest backfills a record for a past date. UserID defaults to the
// caller; targeting someone else requires the admin role.
type CreateRequest struct {
	UserID  string  `json:"user_id,omitempty"`
	Date    string  `json:"date"`               // YYYY-MM-DD
	TimeIn  *string `json:"time_in,omitempty"`  // HH:mm
	TimeOut *string `json:"time_out,omitempty"` // HH:mm
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}

	if r.TimeIn != nil {
		if _, _, ok := validator.IsValidClock(*r.TimeIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "time_in",
				Message: "time_in must be HH:mm",
			})
		}
	}

	if r.TimeOut != nil {
		if _, _, ok := validator.IsValidClock(*r.TimeOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "time_out",
				Message: "time_out must be HH:mm",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SubmitEditRequest proposes a correction to one field of the caller's
// record for the given day.
type SubmitEditRequest struct {
	Date   string        `json:"date"` // YYYY-MM-DD
	Field  EditableField `json:"field"`
	Time   string        `json:"time"` // HH:mm
	Reason string        `json:"reason"`
}

func (r *SubmitEditRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}

	if !r.Field.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "field",
			Message: "field must be time_in or time_out",
		})
	}

	if _, _, ok := validator.IsValidClock(r.Time); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be HH:mm",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ApproveRequest commits one pending field of the target user's record.
type ApproveRequest struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"` // YYYY-MM-DD
}

func (r *ApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RejectRequest discards the pending proposal on the target user's record.
type RejectRequest struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"` // YYYY-MM-DD
	Reason string `json:"reason,omitempty"`
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListFilter narrows the admin record listing.
type ListFilter struct {
	UserName  *string `json:"user_name,omitempty"`
	Date      *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`
	Team      *string `json:"team,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	for field, value := range map[string]*string{
		"date":       f.Date,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
	} {
		if value == nil || *value == "" {
			continue
		}
		if _, ok := validator.IsValidDate(*value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be YYYY-MM-DD",
			})
		}
	}

	if f.Status != nil && *f.Status != "" {
		if !validator.IsInSlice(*f.Status, []string{
			string(StatusIncomplete), string(StatusCompleted),
			string(StatusPending), string(StatusApproved), string(StatusRejected),
		}) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status is not a known record status",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RecordResponse is the wire shape of a record, annotated with the
// reporting breakdown (display hours, overtime, day classification).
type RecordResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	UserName   *string `json:"user_name,omitempty"`
	Team       *string `json:"team,omitempty"`
	Date       string  `json:"date"`
	TimeIn     *string `json:"time_in,omitempty"`
	TimeOut    *string `json:"time_out,omitempty"`
	TotalHours float64 `json:"total_hours"`
	Status     string  `json:"status"`

	PendingTimeIn   *string `json:"pending_time_in,omitempty"`
	PendingTimeOut  *string `json:"pending_time_out,omitempty"`
	RequestReason   *string `json:"request_reason,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`

	// Reporting-only annotations; never persisted.
	DisplayHours  *float64 `json:"display_hours,omitempty"`
	OvertimeHours *float64 `json:"overtime_hours,omitempty"`
	DayType       string   `json:"day_type"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ClockOutResponse surfaces the freshly computed total next to the record.
type ClockOutResponse struct {
	Record     RecordResponse `json:"record"`
	TotalHours float64        `json:"total_hours"`
}

type ListResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}

type MyRecordsResponse struct {
	Records []RecordResponse `json:"records"`
}

type PendingListResponse struct {
	Requests []RecordResponse `json:"requests"`
}
