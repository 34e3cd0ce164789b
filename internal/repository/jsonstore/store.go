package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/scheduler-api/internal/model"
)

const (
	patientsFile     = "patients.json"
	doctorsFile      = "doctors.json"
	appointmentsFile = "appointments.json"
)

// Store persists each collection as one JSON file under a data
// directory. Every save rewrites the whole file; there is no
// incremental write path.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) LoadPatients(ctx context.Context) ([]*model.Patient, error) {
	var patients []*model.Patient
	if !s.loadFile(patientsFile, &patients) {
		return []*model.Patient{}, nil
	}
	return patients, nil
}

func (s *Store) LoadDoctors(ctx context.Context) ([]*model.Doctor, error) {
	var doctors []*model.Doctor
	if !s.loadFile(doctorsFile, &doctors) {
		return []*model.Doctor{}, nil
	}
	return doctors, nil
}

func (s *Store) LoadAppointments(ctx context.Context, patients []*model.Patient, doctors []*model.Doctor) ([]*model.Appointment, error) {
	var raw []*model.Appointment
	if !s.loadFile(appointmentsFile, &raw) {
		return []*model.Appointment{}, nil
	}

	patientIDs := make(map[string]struct{}, len(patients))
	for _, p := range patients {
		patientIDs[p.ID] = struct{}{}
	}
	doctorIDs := make(map[string]struct{}, len(doctors))
	for _, d := range doctors {
		doctorIDs[d.ID] = struct{}{}
	}

	appointments := make([]*model.Appointment, 0, len(raw))
	for _, apt := range raw {
		if _, ok := patientIDs[apt.PatientID]; !ok {
			log.Warn().
				Str("appointment_id", apt.ID).
				Str("patient_id", apt.PatientID).
				Msg("dropping appointment with unknown patient")
			continue
		}
		if _, ok := doctorIDs[apt.DoctorID]; !ok {
			log.Warn().
				Str("appointment_id", apt.ID).
				Str("doctor_id", apt.DoctorID).
				Msg("dropping appointment with unknown doctor")
			continue
		}
		appointments = append(appointments, apt)
	}
	return appointments, nil
}

func (s *Store) SavePatients(ctx context.Context, patients []*model.Patient) error {
	return s.saveFile(patientsFile, patients)
}

func (s *Store) SaveDoctors(ctx context.Context, doctors []*model.Doctor) error {
	return s.saveFile(doctorsFile, doctors)
}

func (s *Store) SaveAppointments(ctx context.Context, appointments []*model.Appointment) error {
	return s.saveFile(appointmentsFile, appointments)
}

// loadFile reports whether the file was read and decoded. A missing or
// corrupt file logs a warning and returns false so the caller starts
// with an empty collection; the system stays usable either way.
func (s *Store) loadFile(name string, out interface{}) bool {
	path := filepath.Join(s.dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("file", path).Msg("data file not found, starting empty")
		} else {
			log.Warn().Err(err).Str("file", path).Msg("failed to read data file, starting empty")
		}
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("data file is corrupted, starting empty")
		return false
	}
	return true
}

// saveFile writes to a temp file in the same directory and renames it
// over the target so a crash mid-write never truncates the snapshot.
func (s *Store) saveFile(name string, in interface{}) error {
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
