package location

import "github.com/rotaworks/rota-backend-go/internal/pkg/validator"

// Payload is the location block carried inside shift create and update
// requests. The wire key for the coordinate pair is "cordinates", kept
// for compatibility with existing clients.
type Payload struct {
	Name          string             `json:"name"`
	Address       string             `json:"address"`
	PostCode      string             `json:"postCode"`
	Distance      *string            `json:"distance,omitempty"`
	Constituency  *string            `json:"constituency,omitempty"`
	AdminDistrict *string            `json:"adminDistrict,omitempty"`
	Coordinates   CoordinatesPayload `json:"cordinates"`
}

type CoordinatesPayload struct {
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
	Approximate bool    `json:"approximate,omitempty"`
}

func (p *Payload) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(p.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "location.name",
			Message: "location.name is required",
		})
	}
	if len(p.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "location.name",
			Message: "location.name must not exceed 255 characters",
		})
	}
	if validator.IsEmpty(p.Address) {
		errs = append(errs, validator.ValidationError{
			Field:   "location.address",
			Message: "location.address is required",
		})
	}
	if validator.IsEmpty(p.PostCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "location.postCode",
			Message: "location.postCode is required",
		})
	}
	if p.Coordinates.Longitude < -180 || p.Coordinates.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "location.cordinates.longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if p.Coordinates.Latitude < -90 || p.Coordinates.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "location.cordinates.latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Summary is the denormalized location view embedded in shift responses.
type Summary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	PostCode      string  `json:"postCode"`
	Distance      *string `json:"distance,omitempty"`
	Constituency  *string `json:"constituency,omitempty"`
	AdminDistrict *string `json:"adminDistrict,omitempty"`
}
