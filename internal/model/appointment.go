package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment references its patient and doctor by id. The directory
// guarantees both ids resolve; the appointment does not own either
// lifecycle. Its (date, time) is never simultaneously open in the
// doctor's schedule.
type Appointment struct {
	ID        string            `json:"appointment_id"`
	PatientID string            `json:"patient_id"`
	DoctorID  string            `json:"doctor_id"`
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Status    AppointmentStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func NewAppointment(patientID, doctorID, date, timeOfDay string) *Appointment {
	now := time.Now().UTC()
	return &Appointment{
		ID:        uuid.New().String(),
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Time:      timeOfDay,
		Status:    AppointmentStatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a copy detached from the directory's record.
func (a *Appointment) Clone() *Appointment {
	clone := *a
	return &clone
}

type BookAppointmentRequest struct {
	PatientID string `json:"patient_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}
