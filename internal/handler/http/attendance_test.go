package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/config"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/attendance"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/auth"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/report"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/user"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/pkg/jwt"
)

const handlerTestSecret = "test-secret-key-for-jwt"

// stubAttendanceService returns canned results so the tests exercise the
// router, middleware and error mapping rather than business rules.
type stubAttendanceService struct {
	clockInResp attendance.RecordResponse
	clockInErr  error
	listResp    attendance.ListResponse
	listErr     error
	submitResp  attendance.RecordResponse
	submitErr   error

	lastFilter attendance.ListFilter
}

func (s *stubAttendanceService) ClockIn(ctx context.Context) (attendance.RecordResponse, error) {
	return s.clockInResp, s.clockInErr
}

func (s *stubAttendanceService) ClockOut(ctx context.Context) (attendance.ClockOutResponse, error) {
	return attendance.ClockOutResponse{}, nil
}

func (s *stubAttendanceService) Create(ctx context.Context, req attendance.CreateRequest) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{}, nil
}

func (s *stubAttendanceService) GetMyRecords(ctx context.Context) (attendance.MyRecordsResponse, error) {
	return attendance.MyRecordsResponse{}, nil
}

func (s *stubAttendanceService) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListResponse, error) {
	s.lastFilter = filter
	return s.listResp, s.listErr
}

func (s *stubAttendanceService) Delete(ctx context.Context, id string) error {
	return nil
}

func (s *stubAttendanceService) SubmitEdit(ctx context.Context, req attendance.SubmitEditRequest) (attendance.RecordResponse, error) {
	return s.submitResp, s.submitErr
}

func (s *stubAttendanceService) Approve(ctx context.Context, req attendance.ApproveRequest) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{}, nil
}

func (s *stubAttendanceService) Reject(ctx context.Context, req attendance.RejectRequest) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{}, nil
}

func (s *stubAttendanceService) ListPending(ctx context.Context) (attendance.PendingListResponse, error) {
	return attendance.PendingListResponse{}, nil
}

type stubAuthService struct{}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	return auth.LoginResponse{}, auth.ErrInvalidCredentials
}

type stubReportService struct {
	resp report.RemainingHoursResponse
	err  error

	lastScope report.Scope
}

func (s *stubReportService) RemainingHours(ctx context.Context, scope report.Scope) (report.RemainingHoursResponse, error) {
	s.lastScope = scope
	return s.resp, s.err
}

type handlerTestEnv struct {
	router     http.Handler
	jwtService jwt.Service
	attendance *stubAttendanceService
	reports    *stubReportService
}

func newHandlerTestEnv() *handlerTestEnv {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.FrontendURL = "http://localhost:3000"

	jwtService := jwt.NewJWTService(handlerTestSecret, "1h", "24h")
	attendanceStub := &stubAttendanceService{}
	reportStub := &stubReportService{}

	router := NewRouter(
		cfg,
		jwtService,
		NewAuthHandler(jwtService, &stubAuthService{}),
		NewAttendanceHandler(attendanceStub),
		NewReportHandler(reportStub),
	)

	return &handlerTestEnv{
		router:     router,
		jwtService: jwtService,
		attendance: attendanceStub,
		reports:    reportStub,
	}
}

func (e *handlerTestEnv) tokenFor(t *testing.T, role user.Role) string {
	t.Helper()
	token, _, err := e.jwtService.GenerateAccessToken(user.User{
		ID:       "user-1",
		Email:    "user@example.com",
		FullName: "Test User",
		Role:     role,
		Team:     "platform",
	})
	require.NoError(t, err)
	return token
}

func (e *handlerTestEnv) do(t *testing.T, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, target, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func TestClockInRequiresAuth(t *testing.T) {
	env := newHandlerTestEnv()

	rr := env.do(t, http.MethodPost, "/api/v1/attendance/clock-in", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestClockInSuccess(t *testing.T) {
	env := newHandlerTestEnv()
	env.attendance.clockInResp = attendance.RecordResponse{
		ID:     "rec-1",
		UserID: "user-1",
		Date:   "2026-03-02",
		Status: string(attendance.StatusIncomplete),
	}

	rr := env.do(t, http.MethodPost, "/api/v1/attendance/clock-in", env.tokenFor(t, user.RoleMember), nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	var body struct {
		Success bool                      `json:"success"`
		Data    attendance.RecordResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "rec-1", body.Data.ID)
	assert.Equal(t, "incomplete", body.Data.Status)
}

func TestClockInConflictMapsTo409(t *testing.T) {
	env := newHandlerTestEnv()
	env.attendance.clockInErr = attendance.ErrAlreadyClockedIn

	rr := env.do(t, http.MethodPost, "/api/v1/attendance/clock-in", env.tokenFor(t, user.RoleMember), nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestListRejectsNonAdminAtMiddleware(t *testing.T) {
	env := newHandlerTestEnv()

	rr := env.do(t, http.MethodGet, "/api/v1/attendance/", env.tokenFor(t, user.RoleMember), nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestListParsesQueryFilters(t *testing.T) {
	env := newHandlerTestEnv()
	env.attendance.listResp = attendance.ListResponse{Page: 2, Limit: 10, TotalCount: 0, TotalPages: 0}

	target := "/api/v1/attendance/?user_name=maria&start_date=2026-03-01&end_date=2026-03-31&status=pending&team=platform&page=2&limit=10"
	rr := env.do(t, http.MethodGet, target, env.tokenFor(t, user.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	filter := env.attendance.lastFilter
	require.NotNil(t, filter.UserName)
	assert.Equal(t, "maria", *filter.UserName)
	require.NotNil(t, filter.StartDate)
	assert.Equal(t, "2026-03-01", *filter.StartDate)
	require.NotNil(t, filter.Status)
	assert.Equal(t, "pending", *filter.Status)
	assert.Equal(t, 2, filter.Page)
	assert.Equal(t, 10, filter.Limit)
}

func TestSubmitEditBadJSON(t *testing.T) {
	env := newHandlerTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/edit-requests/", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+env.tokenFor(t, user.RoleMember))

	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestApproveRequiresAdminRole(t *testing.T) {
	env := newHandlerTestEnv()

	body := attendance.ApproveRequest{UserID: "user-2", Date: "2026-03-02"}
	rr := env.do(t, http.MethodPost, "/api/v1/attendance/edit-requests/approve", env.tokenFor(t, user.RoleTeamLeader), body)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/v1/attendance/edit-requests/approve", env.tokenFor(t, user.RoleAdmin), body)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestReportsRequireReporterRole(t *testing.T) {
	env := newHandlerTestEnv()

	rr := env.do(t, http.MethodGet, "/api/v1/reports/remaining-hours?scope=team", env.tokenFor(t, user.RoleMember), nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/v1/reports/remaining-hours?scope=team", env.tokenFor(t, user.RoleTeamLeader), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, report.ScopeTeam, env.reports.lastScope)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newHandlerTestEnv()

	body := auth.LoginRequest{Email: "user@example.com", Password: "wrong"}
	rr := env.do(t, http.MethodPost, "/api/v1/auth/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHeartbeat(t *testing.T) {
	env := newHandlerTestEnv()

	rr := env.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}
