package model

import (
	"github.com/google/uuid"

	"github.com/clinicdesk/scheduler-api/pkg/errors"
)

// Person holds the identity fields shared by doctors and patients.
// Identity is the generated ID; two records with equal fields but
// different IDs are different people.
type Person struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
}

// NewPerson builds an identity record with a fresh ID. Dates, contact
// info and gender are accepted as-is; only the age is checked.
func NewPerson(name, contactInfo string, age int, gender string) (Person, error) {
	if age < 0 {
		return Person{}, errors.Validation("age cannot be negative")
	}
	return Person{
		ID:          uuid.New().String(),
		Name:        name,
		ContactInfo: contactInfo,
		Age:         age,
		Gender:      gender,
	}, nil
}

// SetAge rejects negative values and leaves the record unchanged on failure.
func (p *Person) SetAge(age int) error {
	if age < 0 {
		return errors.Validation("age cannot be negative")
	}
	p.Age = age
	return nil
}
