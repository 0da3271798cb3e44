package report

import (
	"context"
	"io"
)

// ReportService defines the interface for rota exports
type ReportService interface {
	// GenerateRota renders every shift in the inclusive date range as a
	// PDF, stores it, and returns where to fetch it.
	GenerateRota(ctx context.Context, req RotaReportRequest) (RotaReportResponse, error)

	// OpenRota streams a previously generated export.
	OpenRota(ctx context.Context, fileName string) (io.ReadCloser, error)
}
