package model

// Slot is an open (date, time) pair a doctor has published as available.
// Both parts are opaque strings; the system does not parse or validate
// their format.
type Slot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type Doctor struct {
	Person
	Specialization string `json:"specialization"`
	// Schedule holds the doctor's open slots in publication order.
	// Never contains duplicates.
	Schedule []Slot `json:"schedule"`
}

func NewDoctor(name, contactInfo string, age int, gender, specialization string) (*Doctor, error) {
	person, err := NewPerson(name, contactInfo, age, gender)
	if err != nil {
		return nil, err
	}
	return &Doctor{
		Person:         person,
		Specialization: specialization,
	}, nil
}

// AddSlot publishes an open slot. Adding a slot that is already open
// is a no-op.
func (d *Doctor) AddSlot(date, timeOfDay string) {
	if d.HasSlot(date, timeOfDay) {
		return
	}
	d.Schedule = append(d.Schedule, Slot{Date: date, Time: timeOfDay})
}

// RemoveSlot withdraws an open slot; removing an absent slot is a no-op.
func (d *Doctor) RemoveSlot(date, timeOfDay string) {
	for i, slot := range d.Schedule {
		if slot.Date == date && slot.Time == timeOfDay {
			d.Schedule = append(d.Schedule[:i], d.Schedule[i+1:]...)
			return
		}
	}
}

func (d *Doctor) HasSlot(date, timeOfDay string) bool {
	for _, slot := range d.Schedule {
		if slot.Date == date && slot.Time == timeOfDay {
			return true
		}
	}
	return false
}

// Slots returns a copy of the open slots in publication order.
func (d *Doctor) Slots() []Slot {
	slots := make([]Slot, len(d.Schedule))
	copy(slots, d.Schedule)
	return slots
}

// Clone returns a deep copy, detached from the directory's record.
func (d *Doctor) Clone() *Doctor {
	clone := *d
	clone.Schedule = d.Slots()
	return &clone
}

type RegisterDoctorRequest struct {
	Name           string `json:"name" binding:"required"`
	ContactInfo    string `json:"contact_info" binding:"required"`
	Age            int    `json:"age" binding:"gte=0"`
	Gender         string `json:"gender"`
	Specialization string `json:"specialization" binding:"required"`
}

type SlotRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}
