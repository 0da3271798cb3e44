package report

import "errors"

var (
	ErrReportNotFound         = errors.New("report file not found")
	ErrInvalidReportFileName  = errors.New("invalid report file name")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)
