package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	assert.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		d, err := ParseDate("2026-08-10")
		assert.NoError(t, err)
		assert.Equal(t, 2026, d.Year())
		assert.Equal(t, time.August, d.Month())
		assert.Equal(t, 10, d.Day())
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := ParseDate("10/08/2026")
		assert.Error(t, err)

		_, err = ParseDate("")
		assert.Error(t, err)
	})
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int64
	}{
		{
			name:  "ExactDays",
			start: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 8, 13, 0, 0, 0, 0, time.UTC),
			want:  3,
		},
		{
			name:  "PartialDayRoundsUp",
			start: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 8, 13, 6, 0, 0, 0, time.UTC),
			want:  4,
		},
		{
			name:  "SameDayBillsOneDay",
			start: time.Date(2026, 8, 10, 10, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 8, 10, 18, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "SingleDay",
			start: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC),
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(tt.start, tt.end))
		})
	}
}

func TestRentalCost(t *testing.T) {
	start := mustDate(t, "2026-08-10")

	assert.Equal(t, int64(30000), RentalCost(10000, start, mustDate(t, "2026-08-13")))
	assert.Equal(t, int64(10000), RentalCost(10000, start, start.Add(8*time.Hour)))
	assert.Equal(t, int64(40000), RentalCost(10000, start, mustDate(t, "2026-08-13").Add(time.Minute)))
}

func TestExtensionCost(t *testing.T) {
	assert.Equal(t, int64(24000), ExtensionCost(12000, 2))
	assert.Equal(t, int64(0), ExtensionCost(12000, 0))
}
