package location

import "time"

type Location struct {
	ID            string
	Name          string
	Address       string
	PostCode      string
	Distance      *string
	Constituency  *string
	AdminDistrict *string
	Longitude     float64
	Latitude      float64
	Approximate   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
