package scheduler

import (
	"sync"

	"github.com/clinicdesk/scheduler-api/internal/model"
	"github.com/clinicdesk/scheduler-api/pkg/errors"
	"github.com/clinicdesk/scheduler-api/pkg/metrics"
)

// Service is the in-memory directory of patients, doctors and
// appointments, plus the booking lifecycle on top of it. Collections
// are small and scanned linearly; registration order is preserved.
//
// A single coarse lock guards every operation so the directory can be
// served over HTTP: each booking, cancellation and reschedule is one
// critical section and no partial state is ever observable.
type Service struct {
	mu           sync.RWMutex
	patients     []*model.Patient
	doctors      []*model.Doctor
	appointments []*model.Appointment
	metrics      *metrics.Metrics
}

func NewService(m *metrics.Metrics) *Service {
	return &Service{metrics: m}
}

// RegisterPatient adds a patient to the directory.
func (s *Service) RegisterPatient(patient *model.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.patients {
		if p.ID == patient.ID {
			return errors.DuplicateID("patient", patient.ID)
		}
	}
	s.patients = append(s.patients, patient.Clone())
	s.updateGauges()
	return nil
}

// RegisterDoctor adds a doctor to the directory.
func (s *Service) RegisterDoctor(doctor *model.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.doctors {
		if d.ID == doctor.ID {
			return errors.DuplicateID("doctor", doctor.ID)
		}
	}
	s.doctors = append(s.doctors, doctor.Clone())
	s.updateGauges()
	return nil
}

func (s *Service) PatientByID(id string) (*model.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patient := s.findPatient(id)
	if patient == nil {
		return nil, errors.NotFound("patient", id)
	}
	return patient.Clone(), nil
}

func (s *Service) DoctorByID(id string) (*model.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doctor := s.findDoctor(id)
	if doctor == nil {
		return nil, errors.NotFound("doctor", id)
	}
	return doctor.Clone(), nil
}

func (s *Service) AppointmentByID(id string) (*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	apt := s.findAppointment(id)
	if apt == nil {
		return nil, errors.NotFound("appointment", id)
	}
	return apt.Clone(), nil
}

// FindDoctorsBySpecialization returns doctors whose specialization
// exactly equals spec, in registration order. Matching is
// case-sensitive with no fuzzy matching.
func (s *Service) FindDoctorsBySpecialization(spec string) []*model.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*model.Doctor
	for _, d := range s.doctors {
		if d.Specialization == spec {
			matches = append(matches, d.Clone())
		}
	}
	return matches
}

func (s *Service) ListPatients() []*model.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patients := make([]*model.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		patients = append(patients, p.Clone())
	}
	return patients
}

func (s *Service) ListDoctors() []*model.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doctors := make([]*model.Doctor, 0, len(s.doctors))
	for _, d := range s.doctors {
		doctors = append(doctors, d.Clone())
	}
	return doctors
}

// ListAppointments returns appointments in booking order, optionally
// filtered by status. Cancelled appointments are retained in the
// directory, so a "cancelled" filter returns real history.
func (s *Service) ListAppointments(status model.AppointmentStatus) []*model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	appointments := make([]*model.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		if status != "" && a.Status != status {
			continue
		}
		appointments = append(appointments, a.Clone())
	}
	return appointments
}

// AppointmentsForPatient derives a patient's history from the
// authoritative appointment collection.
func (s *Service) AppointmentsForPatient(patientID string) ([]*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.findPatient(patientID) == nil {
		return nil, errors.NotFound("patient", patientID)
	}

	var appointments []*model.Appointment
	for _, a := range s.appointments {
		if a.PatientID == patientID {
			appointments = append(appointments, a.Clone())
		}
	}
	return appointments, nil
}

// AddDoctorSlot publishes availability for a doctor. Publishing a slot
// that is already open is a no-op.
func (s *Service) AddDoctorSlot(doctorID, date, timeOfDay string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doctor := s.findDoctor(doctorID)
	if doctor == nil {
		return errors.NotFound("doctor", doctorID)
	}
	doctor.AddSlot(date, timeOfDay)
	s.updateGauges()
	return nil
}

// RemoveDoctorSlot withdraws availability; removing an absent slot is
// a no-op.
func (s *Service) RemoveDoctorSlot(doctorID, date, timeOfDay string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doctor := s.findDoctor(doctorID)
	if doctor == nil {
		return errors.NotFound("doctor", doctorID)
	}
	doctor.RemoveSlot(date, timeOfDay)
	s.updateGauges()
	return nil
}

func (s *Service) DoctorSlots(doctorID string) ([]model.Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doctor := s.findDoctor(doctorID)
	if doctor == nil {
		return nil, errors.NotFound("doctor", doctorID)
	}
	return doctor.Slots(), nil
}

// Snapshot returns deep copies of the three collections for the
// persistence gateway.
func (s *Service) Snapshot() ([]*model.Patient, []*model.Doctor, []*model.Appointment) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patients := make([]*model.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		patients = append(patients, p.Clone())
	}
	doctors := make([]*model.Doctor, 0, len(s.doctors))
	for _, d := range s.doctors {
		doctors = append(doctors, d.Clone())
	}
	appointments := make([]*model.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		appointments = append(appointments, a.Clone())
	}
	return patients, doctors, appointments
}

// Restore installs collections loaded by the persistence gateway,
// replacing any current state. The gateway has already dropped
// appointments with dangling references.
func (s *Service) Restore(patients []*model.Patient, doctors []*model.Doctor, appointments []*model.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.patients = patients
	s.doctors = doctors
	s.appointments = appointments
	s.updateGauges()
}

// callers hold s.mu
func (s *Service) findPatient(id string) *model.Patient {
	for _, p := range s.patients {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Service) findDoctor(id string) *model.Doctor {
	for _, d := range s.doctors {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (s *Service) findAppointment(id string) *model.Appointment {
	for _, a := range s.appointments {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (s *Service) updateGauges() {
	if s.metrics == nil {
		return
	}
	open := 0
	for _, d := range s.doctors {
		open += len(d.Schedule)
	}
	s.metrics.OpenSlots.Set(float64(open))
	s.metrics.RegisteredPatients.Set(float64(len(s.patients)))
	s.metrics.RegisteredDoctors.Set(float64(len(s.doctors)))
}
