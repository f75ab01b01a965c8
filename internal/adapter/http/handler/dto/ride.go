package dto

import (
	"strings"

	"github.com/fareline/fareline/internal/domain/models"
	"github.com/fareline/fareline/pkg/validator"
)

type SearchRidesRequest struct {
	Origin      string
	Destination string
}

func (r *SearchRidesRequest) Validate(v *validator.Validator) {
	// whitespace-only endpoints fail the same way empty ones do
	v.Check(strings.TrimSpace(r.Origin) != "", "origin", "must be provided")
	v.Check(len(r.Origin) <= 255, "origin", "must not be more than 255 characters long")

	v.Check(strings.TrimSpace(r.Destination) != "", "destination", "must be provided")
	v.Check(len(r.Destination) <= 255, "destination", "must not be more than 255 characters long")
}

type BookRideRequest struct {
	RideID      string `json:"rideId"`
	Provider    string `json:"provider"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

func (r *BookRideRequest) Validate(v *validator.Validator) {
	v.Check(strings.TrimSpace(r.RideID) != "", "rideId", "must be provided")
	v.Check(strings.TrimSpace(r.Provider) != "", "provider", "must be provided")

	v.Check(strings.TrimSpace(r.Origin) != "", "origin", "must be provided")
	v.Check(len(r.Origin) <= 255, "origin", "must not be more than 255 characters long")

	v.Check(strings.TrimSpace(r.Destination) != "", "destination", "must be provided")
	v.Check(len(r.Destination) <= 255, "destination", "must not be more than 255 characters long")
}

func (r *BookRideRequest) ToModel() models.BookingRequest {
	return models.BookingRequest{
		RideID:      r.RideID,
		Provider:    r.Provider,
		Origin:      r.Origin,
		Destination: r.Destination,
	}
}
