package http

import (
	"net/http"

	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/report"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/handler/http/response"
)

type ReportHandler interface {
	RemainingHours(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// RemainingHours implements ReportHandler.
func (h *reportHandlerImpl) RemainingHours(w http.ResponseWriter, r *http.Request) {
	scope := report.Scope(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = report.ScopeTeam
	}

	result, err := h.reportService.RemainingHours(r.Context(), scope)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
