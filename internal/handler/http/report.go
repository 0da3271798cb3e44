package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rotaworks/rota-backend-go/internal/domain/report"
	"github.com/rotaworks/rota-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Rota Export
	GenerateRotaReport(w http.ResponseWriter, r *http.Request)
	DownloadRotaReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GenerateRotaReport handles GET /reports/rota
func (h *reportHandlerImpl) GenerateRotaReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := report.RotaReportRequest{
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.GenerateRota(ctx, req)
	if err != nil {
		slog.Error("Rota report generation error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DownloadRotaReport handles GET /reports/rota/files/{fileName} and
// streams a previously generated export.
func (h *reportHandlerImpl) DownloadRotaReport(w http.ResponseWriter, r *http.Request) {
	fileName := chi.URLParam(r, "fileName")

	file, err := h.reportService.OpenRota(r.Context(), fileName)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", fileName))
	if _, err := io.Copy(w, file); err != nil {
		slog.Error("Rota report stream error", "error", err, "file", fileName)
	}
}
