package timeutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_BeginOfDay_ShouldKeepLocation(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*60*60)
	moment := time.Date(2024, 5, 15, 1, 30, 0, 0, zone)

	begin := BeginOfDay(moment)

	// Начало суток считается в поясе исходного момента: в UTC это ещё 14 мая.
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, zone), begin)
	assert.Equal(t, zone, begin.Location())
}

func Test_BeginOfWeek_ShouldReturnMonday(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*60*60)
	sunday := time.Date(2024, 5, 19, 23, 0, 0, 0, zone)

	assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, zone), BeginOfWeek(sunday))
}

func Test_BeginOfNextMonth_ShouldRollOverYear(t *testing.T) {
	moment := time.Date(2024, 12, 16, 15, 22, 30, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), BeginOfNextMonth(moment))
}
