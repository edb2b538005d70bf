package domain

import (
	"time"

	"github.com/google/uuid"
)

// Appointment is a single booked slot. Records are append-only: once stored
// they are never updated or deleted through the API.
//
// The JSON field names are part of the wire contract consumed by the booking
// frontend and must not change.
type Appointment struct {
	ID              uuid.UUID `json:"id"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	PatientName     string    `json:"patientName"`
	PatientEmail    string    `json:"patientEmail,omitempty"`
	PatientPhone    string    `json:"patientPhone,omitempty"`
	PatientAdhaar   string    `json:"patientAdhaar,omitempty"`
	Concern         string    `json:"concern,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewID returns a time-ordered unique appointment ID. UUIDv7 keeps IDs
// sortable in creation order across restarts.
func NewID() (uuid.UUID, error) {
	return uuid.NewV7()
}

// SlotTaken reports whether some appointment in appts already occupies the
// (date, time) slot. Matching is literal string equality on both fields:
// "2024-01-01" and "2024-1-1" are different slots. Slots are atomic units,
// there is no overlap or range logic.
func SlotTaken(appts []Appointment, date, timeOfDay string) bool {
	for _, a := range appts {
		if a.AppointmentDate == date && a.AppointmentTime == timeOfDay {
			return true
		}
	}
	return false
}
