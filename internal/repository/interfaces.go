package repository

import (
	"context"

	"github.com/clinicdesk/scheduler-api/internal/model"
)

// Store is the persistence gateway for the directory's collections.
// Loads degrade to empty collections when the backing data is missing
// or unreadable; saves replace the whole collection.
type Store interface {
	LoadPatients(ctx context.Context) ([]*model.Patient, error)
	LoadDoctors(ctx context.Context) ([]*model.Doctor, error)
	// LoadAppointments drops appointments whose patient or doctor id
	// does not resolve against the given collections.
	LoadAppointments(ctx context.Context, patients []*model.Patient, doctors []*model.Doctor) ([]*model.Appointment, error)

	SavePatients(ctx context.Context, patients []*model.Patient) error
	SaveDoctors(ctx context.Context, doctors []*model.Doctor) error
	SaveAppointments(ctx context.Context, appointments []*model.Appointment) error
}
