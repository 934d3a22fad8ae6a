package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidUnit(t *testing.T) {
	for _, u := range Units {
		assert.True(t, ValidUnit(u), u)
	}
	assert.False(t, ValidUnit("barrel"))
	assert.False(t, ValidUnit(""))
	assert.False(t, ValidUnit("KG"))
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, ValidOrderStatus(s), s)
	}
	assert.False(t, ValidOrderStatus("shipped"))
	assert.False(t, ValidOrderStatus(""))
}

func TestValidReservationStatus(t *testing.T) {
	for _, s := range ReservationStatuses {
		assert.True(t, ValidReservationStatus(s), s)
	}
	assert.False(t, ValidReservationStatus("arrived"))
}

func TestWorkSessionHours(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(7*time.Hour + 30*time.Minute)

	closed := WorkSession{StartedAt: start, EndedAt: &end}
	assert.InDelta(t, 7.5, closed.Hours(time.Now()), 0.001)

	open := WorkSession{StartedAt: start}
	assert.InDelta(t, 2.0, open.Hours(start.Add(2*time.Hour)), 0.001)
}
