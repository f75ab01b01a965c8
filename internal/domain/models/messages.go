package models

import "time"

// BookingConfirmedMessage is the event body published when a booking
// is committed. Consumers must tolerate unknown fields.
type BookingConfirmedMessage struct {
	BookingID       string    `json:"booking_id"`
	UserID          string    `json:"user_id"`
	RideID          string    `json:"ride_id"`
	Provider        string    `json:"provider"`
	VehicleType     string    `json:"vehicle_type,omitempty"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	Price           int64     `json:"price,omitempty"`
	Currency        string    `json:"currency,omitempty"`
	Status          string    `json:"status"`
	EstimatedPickup time.Time `json:"estimated_pickup"`
	ConfirmedAt     time.Time `json:"confirmed_at"`
}
