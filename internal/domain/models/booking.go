package models

import (
	"time"

	"github.com/fareline/fareline/internal/domain/types"
	"github.com/fareline/fareline/pkg/uuid"
)

// BookingRequest is what the client submits when committing to a quote.
type BookingRequest struct {
	RideID      string `json:"rideId"`
	Provider    string `json:"provider"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// Booking is a confirmed commitment against one selected quote.
// Append-only: rows are never updated or deleted through this service.
type Booking struct {
	BookingID       string              `json:"bookingId"`
	UserID          uuid.UUID           `json:"-"`
	RideID          string              `json:"rideId"`
	Provider        string              `json:"provider"`
	VehicleType     string              `json:"type,omitempty"`
	Origin          string              `json:"origin"`
	Destination     string              `json:"destination"`
	Price           int64               `json:"price,omitempty"`
	Currency        string              `json:"currency,omitempty"`
	Status          types.BookingStatus `json:"status"`
	DriverName      string              `json:"driverName"`
	DriverRating    float64             `json:"driverRating"`
	VehicleDetails  string              `json:"vehicleDetails"`
	VehicleNumber   string              `json:"vehicleNumber"`
	EstimatedPickup time.Time           `json:"estimatedPickup"`
	CreatedAt       time.Time           `json:"date"`
}
