package attendance

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/attendance"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/auth"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/user"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/pkg/email"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/pkg/hours"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/pkg/validator"
)

type attendanceServiceImpl struct {
	recordRepo   attendance.RecordRepository
	userRepo     user.UserRepository
	emailService email.EmailService
	now          func() time.Time
}

// NewAttendanceService creates a new attendance service instance.
func NewAttendanceService(
	recordRepo attendance.RecordRepository,
	userRepo user.UserRepository,
	emailService email.EmailService,
) attendance.AttendanceService {
	return &attendanceServiceImpl{
		recordRepo:   recordRepo,
		userRepo:     userRepo,
		emailService: emailService,
		now:          time.Now,
	}
}

// identityFromContext resolves the caller from the verified JWT claims.
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
	if v, ok := claims["email"].(string); ok {
		identity.Email = v
	}
	if v, ok := claims["full_name"].(string); ok {
		identity.FullName = v
	}
	if v, ok := claims["role"].(string); ok {
		identity.Role = user.Role(v)
	}
	if v, ok := claims["team"].(string); ok {
		identity.Team = v
	}

	return identity, nil
}

func (s *attendanceServiceImpl) ClockIn(ctx context.Context) (attendance.RecordResponse, error) {
	identity, err := identityFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now().In(hours.Manila)

	rec := attendance.Record{
		ID:      uuid.New().String(),
		UserID:  identity.UserID,
		WorkDay: hours.DayOf(now),
		TimeIn:  &now,
	}
	rec.Recompute()

	created, err := s.recordRepo.Create(ctx, rec)
	if err == attendance.ErrDuplicateDay {
		// Today's record may already exist without a clock-in, e.g. a
		// backfill that only set the clock-out. Adopt it instead of
		// conflicting; only a committed time-in is a real double clock-in.
		existing, getErr := s.recordRepo.GetByUserAndDay(ctx, identity.UserID, rec.WorkDay)
		if getErr != nil {
			return attendance.RecordResponse{}, getErr
		}
		if existing.TimeIn != nil {
			return attendance.RecordResponse{}, attendance.ErrAlreadyClockedIn
		}

		existing.TimeIn = &now
		existing.Recompute()
		created, err = s.recordRepo.Update(ctx, existing, existing.UpdatedAt)
	}
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return toRecordResponse(created), nil
}

func (s *attendanceServiceImpl) ClockOut(ctx context.Context) (attendance.ClockOutResponse, error) {
	identity, err := identityFromContext(ctx)
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}

	now := s.now().In(hours.Manila)

	rec, err := s.recordRepo.GetByUserAndDay(ctx, identity.UserID, hours.DayOf(now))
	if err != nil {
		if err == attendance.ErrRecordNotFound {
			return attendance.ClockOutResponse{}, attendance.ErrNotClockedIn
		}
		return attendance.ClockOutResponse{}, err
	}

	if rec.TimeIn == nil {
		return attendance.ClockOutResponse{}, attendance.ErrNotClockedIn
	}
	if rec.TimeOut != nil {
		return attendance.ClockOutResponse{}, attendance.ErrAlreadyClockedOut
	}

	total, ok := hours.Total(*rec.TimeIn, now)
	if !ok {
		return attendance.ClockOutResponse{}, attendance.ErrInvalidOrdering
	}

	// The guard in SetTimeOut decides the winner when two clock-outs race.
	updated, err := s.recordRepo.SetTimeOut(ctx, rec.ID, now, total)
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}

	return attendance.ClockOutResponse{
		Record:     toRecordResponse(updated),
		TotalHours: updated.TotalHours,
	}, nil
}

func (s *attendanceServiceImpl) Create(ctx context.Context, req attendance.CreateRequest) (attendance.RecordResponse, error) {
	identity, err := identityFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	targetID := req.UserID
	if targetID == "" {
		targetID = identity.UserID
	}
	if targetID != identity.UserID && !identity.IsAdmin() {
		return attendance.RecordResponse{}, user.ErrAdminPrivilegeRequired
	}

	date, _ := validator.IsValidDate(req.Date)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, hours.Manila)

	rec := attendance.Record{
		ID:      uuid.New().String(),
		UserID:  targetID,
		WorkDay: day,
	}

	if req.TimeIn != nil {
		h, m, _ := validator.IsValidClock(*req.TimeIn)
		at := hours.At(day, h, m)
		rec.TimeIn = &at
	}
	if req.TimeOut != nil {
		h, m, _ := validator.IsValidClock(*req.TimeOut)
		at := hours.At(day, h, m)
		rec.TimeOut = &at
	}
	if rec.TimeIn != nil && rec.TimeOut != nil && !rec.TimeOut.After(*rec.TimeIn) {
		return attendance.RecordResponse{}, attendance.ErrInvalidOrdering
	}

	rec.Recompute()

	created, err := s.recordRepo.Create(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return toRecordResponse(created), nil
}

func (s *attendanceServiceImpl) GetMyRecords(ctx context.Context) (attendance.MyRecordsResponse, error) {
	identity, err := identityFromContext(ctx)
	if err != nil {
		return attendance.MyRecordsResponse{}, err
	}

	records, err := s.recordRepo.ListByUser(ctx, identity.UserID)
	if err != nil {
		return attendance.MyRecordsResponse{}, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toRecordResponse(rec))
	}

	return attendance.MyRecordsResponse{Records: responses}, nil
}

func (s *attendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListResponse, error) {
	identity, err := identityFromContext(ctx)
	if err != nil {
		return attendance.ListResponse{}, err
	}
	if !identity.IsAdmin() {
		return attendance.ListResponse{}, user.ErrAdminPrivilegeRequired
	}

	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	records, totalCount, err := s.recordRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toRecordResponse(rec))
	}

	return attendance.ListResponse{
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(filter.Limit))),
		Records:    responses,
	}, nil
}

func (s *attendanceServiceImpl) Delete(ctx context.Context, id string) error {
	identity, err := identityFromContext(ctx)
	if err != nil {
		return err
	}

	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.UserID != identity.UserID {
		return attendance.ErrNotRecordOwner
	}

	return s.recordRepo.Delete(ctx, id, identity.UserID)
}

func (s *attendanceServiceImpl) SubmitEdit(ctx context.Context, req attendance.SubmitEditRequest) (attendance.RecordResponse, error) {
	identity, err := identityFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, hours.Manila)

	rec, err := s.recordRepo.GetByUserAndDay(ctx, identity.UserID, day)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	h, m, _ := validator.IsValidClock(req.Time)
	proposed := hours.At(day, h, m)

	// A proposal must stay consistent with the counterpart field it will
	// eventually pair with: the pending value if one exists, else the
	// committed one.
	switch req.Field {
	case attendance.FieldTimeIn:
		counterpart := rec.PendingTimeOut
		if counterpart == nil {
			counterpart = rec.TimeOut
		}
		if counterpart != nil && !proposed.Before(*counterpart) {
			return attendance.RecordResponse{}, attendance.ErrInvalidOrdering
		}
		rec.PendingTimeIn = &proposed
	case attendance.FieldTimeOut:
		counterpart := rec.PendingTimeIn
		if counterpart == nil {
			counterpart = rec.TimeIn
		}
		if counterpart != nil && !proposed.After(*counterpart) {
			return attendance.RecordResponse{}, attendance.ErrInvalidOrdering
		}
		rec.PendingTimeOut = &proposed
	}

	if req.Reason != "" {
		rec.RequestReason = &req.Reason
	}
	rec.RejectionReason = nil
	rec.Recompute()

	updated, err := s.recordRepo.Update(ctx, rec, rec.UpdatedAt)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.notifyAdmins(identity.FullName, string(req.Field), req.Reason)

	return toRecordResponse(updated), nil
}

func (s *attendanceServiceImpl) Approve(ctx context.Context, req attendance.ApproveRequest) (attendance.RecordResponse, error) {
	identity, err := identityFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !identity.Role.CanApproveEdits() {
		return attendance.RecordResponse{}, user.ErrAdminPrivilegeRequired
	}

	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, hours.Manila)

	rec, err := s.recordRepo.GetByUserAndDay(ctx, req.UserID, day)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	// Nothing pending is a no-op success: a double-submitted approval has
	// already been applied, which is what the approver wanted.
	if !rec.HasPendingEdit() {
		return toRecordResponse(rec), nil
	}

	// One field per approval, time-in first. A proposal touching both
	// fields takes two approvals to resolve. Ordering is checked against
	// the pending counterpart when one exists, so a dual proposal that
	// shifts the whole day stays approvable field by field.
	switch {
	case rec.PendingTimeIn != nil:
		proposed := *rec.PendingTimeIn
		counterpart := rec.PendingTimeOut
		if counterpart == nil {
			counterpart = rec.TimeOut
		}
		if counterpart != nil && !proposed.Before(*counterpart) {
			return attendance.RecordResponse{}, attendance.ErrInvalidOrdering
		}
		rec.TimeIn = &proposed
		rec.PendingTimeIn = nil
	case rec.PendingTimeOut != nil:
		proposed := *rec.PendingTimeOut
		if rec.TimeIn != nil && !proposed.After(*rec.TimeIn) {
			return attendance.RecordResponse{}, attendance.ErrInvalidOrdering
		}
		rec.TimeOut = &proposed
		rec.PendingTimeOut = nil
	}

	rec.Recompute()
	if !rec.HasPendingEdit() {
		rec.RequestReason = nil
		rec.RejectionReason = nil
		rec.Status = attendance.StatusApproved
	}

	updated, err := s.recordRepo.Update(ctx, rec, rec.UpdatedAt)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if !updated.HasPendingEdit() {
		s.notifyMember(updated.UserID, "approved", "")
	}

	return toRecordResponse(updated), nil
}

func (s *attendanceServiceImpl) Reject(ctx context.Context, req attendance.RejectRequest) (attendance.RecordResponse, error) {
	identity, err := identityFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !identity.Role.CanApproveEdits() {
		return attendance.RecordResponse{}, user.ErrAdminPrivilegeRequired
	}

	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, hours.Manila)

	rec, err := s.recordRepo.GetByUserAndDay(ctx, req.UserID, day)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if !rec.HasPendingEdit() {
		return attendance.RecordResponse{}, attendance.ErrNoPendingRequest
	}

	reason := req.Reason
	if reason == "" {
		reason = "No reason provided"
	}

	// The committed times stay untouched; only the proposal is discarded.
	// The member's request reason stays on the record for audit.
	rec.PendingTimeIn = nil
	rec.PendingTimeOut = nil
	rec.RejectionReason = &reason
	rec.Recompute()
	rec.Status = attendance.StatusRejected

	updated, err := s.recordRepo.Update(ctx, rec, rec.UpdatedAt)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.notifyMember(updated.UserID, "rejected", reason)

	return toRecordResponse(updated), nil
}

func (s *attendanceServiceImpl) ListPending(ctx context.Context) (attendance.PendingListResponse, error) {
	identity, err := identityFromContext(ctx)
	if err != nil {
		return attendance.PendingListResponse{}, err
	}
	if !identity.Role.CanApproveEdits() {
		return attendance.PendingListResponse{}, user.ErrAdminPrivilegeRequired
	}

	records, err := s.recordRepo.ListByStatus(ctx, attendance.StatusPending)
	if err != nil {
		return attendance.PendingListResponse{}, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toRecordResponse(rec))
	}

	return attendance.PendingListResponse{Requests: responses}, nil
}

// notifyAdmins emails every admin about a new edit request. Best-effort:
// the record mutation has already committed, so failures are logged and
// swallowed.
func (s *attendanceServiceImpl) notifyAdmins(memberName, field, reason string) {
	go func() {
		admins, err := s.userRepo.AdminEmails(context.Background())
		if err != nil {
			slog.Error("Failed to resolve admin recipients for edit request notice", "error", err)
			return
		}
		for _, addr := range admins {
			if err := s.emailService.SendEditRequested(addr, memberName, field, reason); err != nil {
				slog.Error("Failed to send edit request notice", "to", addr, "error", err)
			}
		}
	}()
}

// notifyMember emails the record owner about the outcome of their edit
// request. Best-effort, same as notifyAdmins.
func (s *attendanceServiceImpl) notifyMember(userID, outcome, detail string) {
	go func() {
		owner, err := s.userRepo.GetByID(context.Background(), userID)
		if err != nil {
			slog.Error("Failed to resolve record owner for edit outcome notice", "user_id", userID, "error", err)
			return
		}
		if err := s.emailService.SendEditResolved(owner.Email, owner.FullName, outcome, detail); err != nil {
			slog.Error("Failed to send edit outcome notice", "to", owner.Email, "error", err)
		}
	}()
}

func toRecordResponse(rec attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:              rec.ID,
		UserID:          rec.UserID,
		UserName:        rec.UserName,
		Team:            rec.Team,
		Date:            rec.WorkDay.In(hours.Manila).Format("2006-01-02"),
		TimeIn:          formatClock(rec.TimeIn),
		TimeOut:         formatClock(rec.TimeOut),
		TotalHours:      rec.TotalHours,
		Status:          string(rec.Status),
		PendingTimeIn:   formatClock(rec.PendingTimeIn),
		PendingTimeOut:  formatClock(rec.PendingTimeOut),
		RequestReason:   rec.RequestReason,
		RejectionReason: rec.RejectionReason,
		DayType:         hours.Classify(rec.TotalHours),
		CreatedAt:       rec.CreatedAt.In(hours.Manila).Format(time.RFC3339),
		UpdatedAt:       rec.UpdatedAt.In(hours.Manila).Format(time.RFC3339),
	}

	if rec.TimeIn != nil && rec.TimeOut != nil {
		if b, ok := hours.Display(*rec.TimeIn, *rec.TimeOut, rec.Status == attendance.StatusApproved); ok {
			resp.DisplayHours = &b.Base
			resp.OvertimeHours = &b.Overtime
		}
	}

	return resp
}

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.In(hours.Manila).Format("15:04")
	return &s
}
