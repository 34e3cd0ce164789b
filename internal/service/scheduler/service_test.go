package scheduler

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/scheduler-api/internal/model"
	"github.com/clinicdesk/scheduler-api/pkg/errors"
	"github.com/clinicdesk/scheduler-api/pkg/metrics"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	m := metrics.NewWithRegistry("clinic_test", prometheus.NewRegistry())
	return NewService(m)
}

func newCardiologist(t *testing.T, name string) *model.Doctor {
	t.Helper()
	d, err := model.NewDoctor(name, "heart@hospital.com", 45, "male", "Cardiology")
	require.NoError(t, err)
	return d
}

func newCardiacPatient(t *testing.T, name string) *model.Patient {
	t.Helper()
	p, err := model.NewPatient(name, "john@email.com", 55, "male", "1001", "1968-03-12", "Cardiology")
	require.NoError(t, err)
	return p
}

func TestRegisterPatientRejectsDuplicateID(t *testing.T) {
	s := newTestService(t)
	p := newCardiacPatient(t, "John Smith")

	require.NoError(t, s.RegisterPatient(p))
	err := s.RegisterPatient(p)
	require.Error(t, err)
	assert.Equal(t, errors.ErrDuplicateID, errors.CodeOf(err))
	assert.Len(t, s.ListPatients(), 1)
}

func TestRegisterDoctorRejectsDuplicateID(t *testing.T) {
	s := newTestService(t)
	d := newCardiologist(t, "Dr. Heart")

	require.NoError(t, s.RegisterDoctor(d))
	err := s.RegisterDoctor(d)
	require.Error(t, err)
	assert.Equal(t, errors.ErrDuplicateID, errors.CodeOf(err))
}

func TestFindDoctorsBySpecialization(t *testing.T) {
	s := newTestService(t)

	first := newCardiologist(t, "Dr. Heart")
	second := newCardiologist(t, "Dr. Aorta")
	neuro, err := model.NewDoctor("Dr. Brain", "brain@hospital.com", 38, "female", "Neurology")
	require.NoError(t, err)

	require.NoError(t, s.RegisterDoctor(first))
	require.NoError(t, s.RegisterDoctor(neuro))
	require.NoError(t, s.RegisterDoctor(second))

	matches := s.FindDoctorsBySpecialization("Cardiology")
	require.Len(t, matches, 2)
	assert.Equal(t, first.ID, matches[0].ID, "registration order preserved")
	assert.Equal(t, second.ID, matches[1].ID)

	// exact, case-sensitive match only
	assert.Empty(t, s.FindDoctorsBySpecialization("cardiology"))
	assert.Empty(t, s.FindDoctorsBySpecialization("Cardio"))
}

func TestLookupsReturnNotFound(t *testing.T) {
	s := newTestService(t)

	_, err := s.PatientByID("missing")
	assert.Equal(t, errors.ErrNotFound, errors.CodeOf(err))
	_, err = s.DoctorByID("missing")
	assert.Equal(t, errors.ErrNotFound, errors.CodeOf(err))
	_, err = s.AppointmentByID("missing")
	assert.Equal(t, errors.ErrNotFound, errors.CodeOf(err))
}

func TestBookAssignsFirstFitDoctor(t *testing.T) {
	s := newTestService(t)

	doctor := newCardiologist(t, "Dr. Heart")
	doctor.AddSlot("2023-12-25", "10:00")
	patient := newCardiacPatient(t, "John Smith")

	require.NoError(t, s.RegisterDoctor(doctor))
	require.NoError(t, s.RegisterPatient(patient))

	apt, err := s.Book(patient.ID, "2023-12-25", "10:00")
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusScheduled, apt.Status)
	assert.Equal(t, patient.ID, apt.PatientID)
	assert.Equal(t, doctor.ID, apt.DoctorID)

	// the booked slot is gone from the doctor's schedule
	got, err := s.DoctorByID(doctor.ID)
	require.NoError(t, err)
	assert.False(t, got.HasSlot("2023-12-25", "10:00"))

	// booked appointment is in the directory and in the derived history
	history, err := s.AppointmentsForPatient(patient.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, apt.ID, history[0].ID)

	// denormalized summary cache was appended too
	gotPatient, err := s.PatientByID(patient.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.AppointmentSummary{{Date: "2023-12-25", Time: "10:00"}}, gotPatient.Appointments)
}

func TestBookPrefersFirstRegisteredDoctor(t *testing.T) {
	s := newTestService(t)

	first := newCardiologist(t, "Dr. Heart")
	first.AddSlot("2023-12-25", "10:00")
	second := newCardiologist(t, "Dr. Aorta")
	second.AddSlot("2023-12-25", "10:00")

	require.NoError(t, s.RegisterDoctor(first))
	require.NoError(t, s.RegisterDoctor(second))

	patient := newCardiacPatient(t, "John Smith")
	require.NoError(t, s.RegisterPatient(patient))

	apt, err := s.Book(patient.ID, "2023-12-25", "10:00")
	require.NoError(t, err)
	assert.Equal(t, first.ID, apt.DoctorID, "first-fit: first registered, first offered")

	secondAfter, err := s.DoctorByID(second.ID)
	require.NoError(t, err)
	assert.True(t, secondAfter.HasSlot("2023-12-25", "10:00"))
}

func TestBookNoMatchingSpecialist(t *testing.T) {
	s := newTestService(t)

	doctor := newCardiologist(t, "Dr. Heart")
	doctor.AddSlot("2023-12-25", "10:00")
	require.NoError(t, s.RegisterDoctor(doctor))

	patient, err := model.NewPatient("Emma Brown", "emma@email.com", 42, "female", "1002", "1981-07-24", "Neurology")
	require.NoError(t, err)
	require.NoError(t, s.RegisterPatient(patient))

	_, err = s.Book(patient.ID, "2023-12-25", "10:00")
	require.Error(t, err)
	assert.Equal(t, errors.ErrNoMatchingSpecialist, errors.CodeOf(err))

	// no state mutated
	assert.Empty(t, s.ListAppointments(""))
	got, err := s.DoctorByID(doctor.ID)
	require.NoError(t, err)
	assert.True(t, got.HasSlot("2023-12-25", "10:00"))
}

func TestBookSlotUnavailable(t *testing.T) {
	s := newTestService(t)

	doctor := newCardiologist(t, "Dr. Heart")
	doctor.AddSlot("2023-12-25", "10:00")
	require.NoError(t, s.RegisterDoctor(doctor))

	patient := newCardiacPatient(t, "John Smith")
	require.NoError(t, s.RegisterPatient(patient))

	_, err := s.Book(patient.ID, "2023-12-25", "14:00")
	require.Error(t, err)
	assert.Equal(t, errors.ErrSlotUnavailable, errors.CodeOf(err))

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "2023-12-25", appErr.Context["date"])
	assert.Equal(t, "14:00", appErr.Context["time"])
	assert.Equal(t, "Cardiology", appErr.Context["specialization"])

	// no state mutated
	assert.Empty(t, s.ListAppointments(""))
	gotPatient, err := s.PatientByID(patient.ID)
	require.NoError(t, err)
	assert.Empty(t, gotPatient.Appointments)
}

func TestBookUnknownPatient(t *testing.T) {
	s := newTestService(t)
	_, err := s.Book("missing", "2023-12-25", "10:00")
	assert.Equal(t, errors.ErrNotFound, errors.CodeOf(err))
}

func TestCancel(t *testing.T) {
	s := newTestService(t)

	doctor := newCardiologist(t, "Dr. Heart")
	doctor.AddSlot("2023-12-25", "10:00")
	require.NoError(t, s.RegisterDoctor(doctor))
	patient := newCardiacPatient(t, "John Smith")
	require.NoError(t, s.RegisterPatient(patient))

	apt, err := s.Book(patient.ID, "2023-12-25", "10:00")
	require.NoError(t, err)

	cancelled, err := s.Cancel(apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)

	// the record is retained, not purged
	got, err := s.AppointmentByID(apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, got.Status)
	assert.Len(t, s.ListAppointments(model.AppointmentStatusCancelled), 1)

	// the slot is not restored on cancellation
	gotDoctor, err := s.DoctorByID(doctor.ID)
	require.NoError(t, err)
	assert.False(t, gotDoctor.HasSlot("2023-12-25", "10:00"))
}

func TestCancelIsIdempotent(t *testing.T) {
	s := newTestService(t)

	doctor := newCardiologist(t, "Dr. Heart")
	doctor.AddSlot("2023-12-25", "10:00")
	require.NoError(t, s.RegisterDoctor(doctor))
	patient := newCardiacPatient(t, "John Smith")
	require.NoError(t, s.RegisterPatient(patient))

	apt, err := s.Book(patient.ID, "2023-12-25", "10:00")
	require.NoError(t, err)

	_, err = s.Cancel(apt.ID)
	require.NoError(t, err)
	again, err := s.Cancel(apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, again.Status)
}

func TestCancelUnknownAppointment(t *testing.T) {
	s := newTestService(t)
	_, err := s.Cancel("missing")
	assert.Equal(t, errors.ErrNotFound, errors.CodeOf(err))
	assert.Empty(t, s.ListAppointments(""))
}

func TestRescheduleMovesSlot(t *testing.T) {
	s := newTestService(t)

	doctor := newCardiologist(t, "Dr. Heart")
	doctor.AddSlot("2023-12-25", "10:00")
	doctor.AddSlot("2023-12-26", "14:00")
	require.NoError(t, s.RegisterDoctor(doctor))
	patient := newCardiacPatient(t, "John Smith")
	require.NoError(t, s.RegisterPatient(patient))

	apt, err := s.Book(patient.ID, "2023-12-25", "10:00")
	require.NoError(t, err)

	moved, err := s.Reschedule(apt.ID, "2023-12-26", "14:00")
	require.NoError(t, err)
	assert.Equal(t, "2023-12-26", moved.Date)
	assert.Equal(t, "14:00", moved.Time)
	assert.Equal(t, model.AppointmentStatusScheduled, moved.Status)

	gotDoctor, err := s.DoctorByID(doctor.ID)
	require.NoError(t, err)
	assert.True(t, gotDoctor.HasSlot("2023-12-25", "10:00"), "old slot freed")
	assert.False(t, gotDoctor.HasSlot("2023-12-26", "14:00"), "new slot claimed")
}

func TestRescheduleToUnavailableSlotMutatesNothing(t *testing.T) {
	s := newTestService(t)

	doctor := newCardiologist(t, "Dr. Heart")
	doctor.AddSlot("2023-12-25", "10:00")
	doctor.AddSlot("2023-12-26", "14:00")
	require.NoError(t, s.RegisterDoctor(doctor))
	patient := newCardiacPatient(t, "John Smith")
	require.NoError(t, s.RegisterPatient(patient))

	apt, err := s.Book(patient.ID, "2023-12-25", "10:00")
	require.NoError(t, err)

	_, err = s.Reschedule(apt.ID, "2023-12-31", "09:00")
	require.Error(t, err)
	assert.Equal(t, errors.ErrSlotUnavailable, errors.CodeOf(err))

	// the failure reports the doctor's remaining open slots
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []model.Slot{{Date: "2023-12-26", Time: "14:00"}}, appErr.Context["open_slots"])

	// the original slot did not leak back into the schedule
	gotDoctor, err := s.DoctorByID(doctor.ID)
	require.NoError(t, err)
	assert.False(t, gotDoctor.HasSlot("2023-12-25", "10:00"))
	assert.True(t, gotDoctor.HasSlot("2023-12-26", "14:00"))

	// the appointment still points at the original slot
	got, err := s.AppointmentByID(apt.ID)
	require.NoError(t, err)
	assert.Equal(t, "2023-12-25", got.Date)
	assert.Equal(t, "10:00", got.Time)
}

func TestRescheduleCancelledAppointmentFails(t *testing.T) {
	s := newTestService(t)

	doctor := newCardiologist(t, "Dr. Heart")
	doctor.AddSlot("2023-12-25", "10:00")
	doctor.AddSlot("2023-12-26", "14:00")
	require.NoError(t, s.RegisterDoctor(doctor))
	patient := newCardiacPatient(t, "John Smith")
	require.NoError(t, s.RegisterPatient(patient))

	apt, err := s.Book(patient.ID, "2023-12-25", "10:00")
	require.NoError(t, err)
	_, err = s.Cancel(apt.ID)
	require.NoError(t, err)

	_, err = s.Reschedule(apt.ID, "2023-12-26", "14:00")
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidState, errors.CodeOf(err))
}

func TestRescheduleUnknownAppointment(t *testing.T) {
	s := newTestService(t)
	_, err := s.Reschedule("missing", "2023-12-26", "14:00")
	assert.Equal(t, errors.ErrNotFound, errors.CodeOf(err))
}

func TestSnapshotAndRestoreRoundTrip(t *testing.T) {
	s := newTestService(t)

	doctor := newCardiologist(t, "Dr. Heart")
	doctor.AddSlot("2023-12-25", "10:00")
	doctor.AddSlot("2023-12-25", "14:00")
	require.NoError(t, s.RegisterDoctor(doctor))
	patient := newCardiacPatient(t, "John Smith")
	require.NoError(t, s.RegisterPatient(patient))
	_, err := s.Book(patient.ID, "2023-12-25", "10:00")
	require.NoError(t, err)

	patients, doctors, appointments := s.Snapshot()

	restored := newTestService(t)
	restored.Restore(patients, doctors, appointments)

	gotDoctor, err := restored.DoctorByID(doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Slot{{Date: "2023-12-25", Time: "14:00"}}, gotDoctor.Slots())
	assert.Len(t, restored.ListAppointments(model.AppointmentStatusScheduled), 1)
}
