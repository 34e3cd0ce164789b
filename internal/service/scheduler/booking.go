package scheduler

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/scheduler-api/internal/model"
	"github.com/clinicdesk/scheduler-api/pkg/errors"
)

// Book pairs the patient with a doctor matching their required
// specialization and claims the requested slot.
//
// Doctor selection is first-fit by policy: candidates are scanned in
// registration order and the first one holding the exact slot wins.
// There is no load balancing or preference ranking.
//
// All checks run before any mutation, so a failed booking leaves the
// directory untouched.
func (s *Service) Book(patientID, date, timeOfDay string) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	patient := s.findPatient(patientID)
	if patient == nil {
		s.countBookingFailure("patient_not_found")
		return nil, errors.NotFound("patient", patientID)
	}

	var candidates []*model.Doctor
	for _, d := range s.doctors {
		if d.Specialization == patient.RequiredSpecialization {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		s.countBookingFailure("no_matching_specialist")
		return nil, errors.NoMatchingSpecialist(patient.RequiredSpecialization)
	}

	var doctor *model.Doctor
	for _, d := range candidates {
		if d.HasSlot(date, timeOfDay) {
			doctor = d
			break
		}
	}
	if doctor == nil {
		s.countBookingFailure("slot_unavailable")
		return nil, errors.SlotUnavailable(patient.RequiredSpecialization, date, timeOfDay, nil)
	}

	doctor.RemoveSlot(date, timeOfDay)
	apt := model.NewAppointment(patient.ID, doctor.ID, date, timeOfDay)
	s.appointments = append(s.appointments, apt)
	patient.RecordAppointment(date, timeOfDay)

	if s.metrics != nil {
		s.metrics.BookingsTotal.Inc()
	}
	s.updateGauges()

	log.Info().
		Str("appointment_id", apt.ID).
		Str("patient_id", patient.ID).
		Str("doctor_id", doctor.ID).
		Str("specialization", doctor.Specialization).
		Str("date", date).
		Str("time", timeOfDay).
		Msg("appointment booked")

	return apt.Clone(), nil
}

// Cancel transitions an appointment to cancelled. Cancelling an
// already-cancelled appointment succeeds without further effect. The
// record stays in the directory and the doctor's slot is not restored;
// staff re-publish availability explicitly.
func (s *Service) Cancel(appointmentID string) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apt := s.findAppointment(appointmentID)
	if apt == nil {
		return nil, errors.NotFound("appointment", appointmentID)
	}

	if apt.Status != model.AppointmentStatusCancelled {
		apt.Status = model.AppointmentStatusCancelled
		apt.UpdatedAt = time.Now().UTC()
		if s.metrics != nil {
			s.metrics.CancellationsTotal.Inc()
		}
		log.Info().
			Str("appointment_id", apt.ID).
			Str("patient_id", apt.PatientID).
			Str("doctor_id", apt.DoctorID).
			Msg("appointment cancelled")
	}

	return apt.Clone(), nil
}

// Reschedule moves a scheduled appointment to a new slot of the same
// doctor. The target slot is verified before the original is freed, so
// a failed reschedule mutates nothing; on failure the error lists the
// doctor's remaining open slots.
func (s *Service) Reschedule(appointmentID, newDate, newTime string) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apt := s.findAppointment(appointmentID)
	if apt == nil {
		s.countRescheduleFailure("appointment_not_found")
		return nil, errors.NotFound("appointment", appointmentID)
	}

	if apt.Status != model.AppointmentStatusScheduled {
		s.countRescheduleFailure("invalid_state")
		return nil, errors.InvalidState("only scheduled appointments can be rescheduled")
	}

	doctor := s.findDoctor(apt.DoctorID)
	if doctor == nil {
		s.countRescheduleFailure("doctor_not_found")
		return nil, errors.NotFound("doctor", apt.DoctorID)
	}

	if !doctor.HasSlot(newDate, newTime) {
		s.countRescheduleFailure("slot_unavailable")
		return nil, errors.SlotUnavailable(doctor.Specialization, newDate, newTime, doctor.Slots())
	}

	doctor.AddSlot(apt.Date, apt.Time)
	doctor.RemoveSlot(newDate, newTime)
	apt.Date = newDate
	apt.Time = newTime
	apt.UpdatedAt = time.Now().UTC()

	if s.metrics != nil {
		s.metrics.ReschedulesTotal.Inc()
	}
	s.updateGauges()

	log.Info().
		Str("appointment_id", apt.ID).
		Str("doctor_id", doctor.ID).
		Str("date", newDate).
		Str("time", newTime).
		Msg("appointment rescheduled")

	return apt.Clone(), nil
}

func (s *Service) countBookingFailure(reason string) {
	if s.metrics != nil {
		s.metrics.BookingFailures.WithLabelValues(reason).Inc()
	}
}

func (s *Service) countRescheduleFailure(reason string) {
	if s.metrics != nil {
		s.metrics.RescheduleFailures.WithLabelValues(reason).Inc()
	}
}
