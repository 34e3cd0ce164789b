package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDoctor(t *testing.T) *Doctor {
	t.Helper()
	d, err := NewDoctor("Dr. Heart", "heart@hospital.com", 45, "male", "Cardiology")
	require.NoError(t, err)
	return d
}

func TestAddSlotIsIdempotent(t *testing.T) {
	d := newTestDoctor(t)

	d.AddSlot("2023-12-25", "10:00")
	d.AddSlot("2023-12-25", "10:00")
	d.AddSlot("2023-12-25", "10:00")

	assert.Equal(t, []Slot{{Date: "2023-12-25", Time: "10:00"}}, d.Slots())
}

func TestRemoveSlot(t *testing.T) {
	d := newTestDoctor(t)
	d.AddSlot("2023-12-25", "10:00")
	d.AddSlot("2023-12-25", "14:00")

	d.RemoveSlot("2023-12-25", "10:00")
	assert.False(t, d.HasSlot("2023-12-25", "10:00"))
	assert.True(t, d.HasSlot("2023-12-25", "14:00"))

	// removing an absent slot is a no-op
	d.RemoveSlot("2023-12-25", "10:00")
	assert.Equal(t, []Slot{{Date: "2023-12-25", Time: "14:00"}}, d.Slots())
}

func TestSlotsPreserveInsertionOrder(t *testing.T) {
	d := newTestDoctor(t)
	d.AddSlot("2023-12-27", "09:00")
	d.AddSlot("2023-12-25", "10:00")
	d.AddSlot("2023-12-26", "08:30")

	assert.Equal(t, []Slot{
		{Date: "2023-12-27", Time: "09:00"},
		{Date: "2023-12-25", Time: "10:00"},
		{Date: "2023-12-26", Time: "08:30"},
	}, d.Slots())
}

func TestSlotsReturnsCopy(t *testing.T) {
	d := newTestDoctor(t)
	d.AddSlot("2023-12-25", "10:00")

	slots := d.Slots()
	slots[0].Time = "23:59"

	assert.True(t, d.HasSlot("2023-12-25", "10:00"))
}

func TestDoctorClone(t *testing.T) {
	d := newTestDoctor(t)
	d.AddSlot("2023-12-25", "10:00")

	clone := d.Clone()
	clone.AddSlot("2023-12-26", "11:00")
	clone.Name = "Dr. Someone Else"

	assert.False(t, d.HasSlot("2023-12-26", "11:00"))
	assert.Equal(t, "Dr. Heart", d.Name)
}
