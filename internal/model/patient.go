package model

// AppointmentSummary is the denormalized (date, time) entry kept on a
// patient for display. The appointment collection is authoritative;
// nothing reads this list to make scheduling decisions.
type AppointmentSummary struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type Patient struct {
	Person
	CardNo                 string               `json:"card_no"`
	DateOfBirth            string               `json:"date_of_birth"`
	RequiredSpecialization string               `json:"required_specialization"`
	Appointments           []AppointmentSummary `json:"appointments"`
}

// NewPatient builds a patient record. The required specialization is a
// matching hint only; it is not checked against any doctor at
// registration time.
func NewPatient(name, contactInfo string, age int, gender, cardNo, dateOfBirth, requiredSpecialization string) (*Patient, error) {
	person, err := NewPerson(name, contactInfo, age, gender)
	if err != nil {
		return nil, err
	}
	return &Patient{
		Person:                 person,
		CardNo:                 cardNo,
		DateOfBirth:            dateOfBirth,
		RequiredSpecialization: requiredSpecialization,
	}, nil
}

// RecordAppointment appends a booking summary to the display cache.
func (p *Patient) RecordAppointment(date, timeOfDay string) {
	p.Appointments = append(p.Appointments, AppointmentSummary{Date: date, Time: timeOfDay})
}

// Clone returns a deep copy, detached from the directory's record.
func (p *Patient) Clone() *Patient {
	clone := *p
	clone.Appointments = make([]AppointmentSummary, len(p.Appointments))
	copy(clone.Appointments, p.Appointments)
	return &clone
}

type RegisterPatientRequest struct {
	Name                   string `json:"name" binding:"required"`
	ContactInfo            string `json:"contact_info" binding:"required"`
	Age                    int    `json:"age" binding:"gte=0"`
	Gender                 string `json:"gender"`
	CardNo                 string `json:"card_no" binding:"required"`
	DateOfBirth            string `json:"date_of_birth"`
	RequiredSpecialization string `json:"required_specialization" binding:"required"`
}
