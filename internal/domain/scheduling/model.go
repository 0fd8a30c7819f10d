package scheduling

import (
	"fmt"
	"time"
)

const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Appointment links a patient and a doctor to a date and half-hour slot.
// Date and time are opaque strings compared for equality, exactly as
// submitted at booking time.
type Appointment struct {
	ID        int64     `json:"appID"`
	PatientID int64     `json:"patientID"`
	DoctorID  int64     `json:"doctorID"`
	Date      string    `json:"appDate"`
	Time      string    `json:"appTime"`
	Status    string    `json:"status"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentWithNames is the listing row with the joined first names.
type AppointmentWithNames struct {
	Appointment
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
}

// Consultation holds the clinical fields attached to one appointment.
type Consultation struct {
	ID           int64     `json:"consultationID"`
	AppID        int64     `json:"appID"`
	Type         string    `json:"consultation_type"`
	Reason       string    `json:"reason"`
	Diagnosis    *string   `json:"diagnosis"`
	Prescription *string   `json:"prescription"`
	NeedsTests   bool      `json:"needs_tests"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ConsultationView is the appointment joined with names and, when present,
// the consultation row. Appointments booked without a consultation still
// appear, with the clinical fields null.
type ConsultationView struct {
	Appointment
	PatientName          string  `json:"patient_name"`
	PatientLastName      string  `json:"patient_last_name"`
	DoctorName           string  `json:"doctor_name"`
	DoctorLastName       string  `json:"doctor_last_name"`
	DoctorSpecialization string  `json:"doctor_specialization"`
	ConsultationID       *int64  `json:"consultationID"`
	ConsultationType     *string `json:"consultation_type"`
	Reason               *string `json:"reason"`
	Diagnosis            *string `json:"diagnosis"`
	Prescription         *string `json:"prescription"`
	NeedsTests           *bool   `json:"needs_tests"`
}

// SlotGrid returns the bookable half-hour labels, 09:00 through 16:30.
func SlotGrid() []string {
	slots := make([]string, 0, 16)
	for hour := 9; hour < 17; hour++ {
		for minute := 0; minute < 60; minute += 30 {
			slots = append(slots, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return slots
}

// AppointmentRequest is the booking payload.
type AppointmentRequest struct {
	PatientID int64   `json:"patientID"`
	DoctorID  int64   `json:"doctorID"`
	Date      string  `json:"appDate"`
	Time      string  `json:"appTime"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes"`
}

// ConsultationRequest books an appointment together with its consultation.
type ConsultationRequest struct {
	AppointmentRequest
	ConsultationType string  `json:"consultationType"`
	Reason           string  `json:"reason"`
	Diagnosis        *string `json:"diagnosis"`
	Prescription     *string `json:"prescription"`
	NeedsTests       bool    `json:"needsTests"`
}

// SlotQuery selects the doctor/date pair for the availability lookup.
type SlotQuery struct {
	DoctorID int64  `json:"doctorID"`
	Date     string `json:"date"`
}
