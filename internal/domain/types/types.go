package types

// BookingStatus is the lifecycle state of a booking. Only CONFIRMED is
// ever produced over the HTTP surface; the other states exist for data
// imported from provider callbacks.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) String() string { return string(s) }

func IsValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	default:
		return false
	}
}
