package report

import (
	"github.com/rotaworks/rota-backend-go/internal/pkg/validator"
)

type RotaReportRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (r *RotaReportRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate is required",
		})
	} else if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate must be a valid date (YYYY-MM-DD)",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate is required",
		})
	} else if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must be a valid date (YYYY-MM-DD)",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must not be before startDate",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RotaReportResponse describes a generated rota export. URL points at
// the download route serving the stored file.
type RotaReportResponse struct {
	FileName    string `json:"fileName"`
	URL         string `json:"url"`
	TotalShifts int    `json:"totalShifts"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	GeneratedAt string `json:"generatedAt"`
}
