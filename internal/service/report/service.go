package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rotaworks/rota-backend-go/internal/domain/report"
	"github.com/rotaworks/rota-backend-go/internal/domain/shift"
	"github.com/rotaworks/rota-backend-go/internal/pkg/storage"
	"github.com/rotaworks/rota-backend-go/internal/pkg/validator"
)

type ReportServiceImpl struct {
	shift.ShiftRepository
	fileStorage storage.FileStorage
}

func NewReportService(shiftRepository shift.ShiftRepository, fileStorage storage.FileStorage) report.ReportService {
	return &ReportServiceImpl{
		ShiftRepository: shiftRepository,
		fileStorage:     fileStorage,
	}
}

// GenerateRota implements report.ReportService. Exports for the same
// range share a file name, so regenerating replaces the stored copy.
func (s *ReportServiceImpl) GenerateRota(ctx context.Context, req report.RotaReportRequest) (report.RotaReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.RotaReportResponse{}, err
	}

	from, _ := validator.IsValidDate(req.StartDate)
	to, _ := validator.IsValidDate(req.EndDate)
	// Include shifts dated anywhere on the final day
	to = to.Add(24*time.Hour - time.Second)

	shifts, err := s.ShiftRepository.ListByDateRange(ctx, from, to)
	if err != nil {
		return report.RotaReportResponse{}, fmt.Errorf("failed to list shifts for rota: %w", err)
	}

	var buf bytes.Buffer
	if err := renderRotaPDF(&buf, req.StartDate, req.EndDate, shifts); err != nil {
		return report.RotaReportResponse{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	fileName := fmt.Sprintf("rota-%s-to-%s.pdf", req.StartDate, req.EndDate)
	path := "reports/" + fileName

	// Drop the previous export for this range before storing the new one
	if err := s.fileStorage.Delete(ctx, path); err != nil {
		return report.RotaReportResponse{}, fmt.Errorf("failed to remove previous export: %w", err)
	}
	if _, err := s.fileStorage.Upload(ctx, &buf, path); err != nil {
		return report.RotaReportResponse{}, fmt.Errorf("failed to store rota export: %w", err)
	}

	return report.RotaReportResponse{
		FileName:    fileName,
		URL:         "/api/v1/reports/rota/files/" + fileName,
		TotalShifts: len(shifts),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// OpenRota implements report.ReportService.
func (s *ReportServiceImpl) OpenRota(ctx context.Context, fileName string) (io.ReadCloser, error) {
	if fileName == "" || strings.Contains(fileName, "/") || strings.Contains(fileName, "..") || !strings.HasSuffix(fileName, ".pdf") {
		return nil, report.ErrInvalidReportFileName
	}

	path := "reports/" + fileName
	exists, err := s.fileStorage.Exists(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to check report file: %w", err)
	}
	if !exists {
		return nil, report.ErrReportNotFound
	}

	return s.fileStorage.Download(ctx, path)
}

func renderRotaPDF(w io.Writer, startDate, endDate string, shifts []shift.Shift) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Rota")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", startDate, endDate))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Shifts: %d", len(shifts)))
	pdf.Ln(10)

	widths := []float64{22, 26, 36, 24, 34, 30, 18}
	headers := []string{"Date", "Time", "Title", "Role", "Worker", "Location", "Status"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, sh := range shifts {
		row := []string{
			sh.Date.Format("2006-01-02"),
			fmt.Sprintf("%s - %s", sh.StartTime.Format("15:04"), sh.FinishTime.Format("15:04")),
			sh.Title,
			sh.Role,
			sh.WorkerName,
			sh.LocationName,
			string(sh.Status),
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
