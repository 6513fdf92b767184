package model

import "time"

// Booking types accepted by the booking endpoint.
const (
	BookingVisit  = "visit"  // in-person appointment
	BookingOnline = "online" // online consultation
)

// BookingConfirmed is the only booking status the platform issues.
// There is no pending state: a booking either persists as confirmed
// or the request fails.
const BookingConfirmed = "確定"

// Booking records a patient appointment as stored in the `bookings`
// table. ClinicName is denormalized at creation time so booking
// history stays readable even if the clinic profile is later renamed.
type Booking struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	ClinicID   string    `json:"clinic_id"`
	ClinicName string    `json:"clinic_name"`
	Type       string    `json:"type"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Dept       string    `json:"dept"`
	Status     string    `json:"status"`
	Concern    string    `json:"concern,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
