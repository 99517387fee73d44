package xtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLocalTime(t *testing.T) {
	lt, err := ParseLocalTime("15:04:05")
	if assert.NoError(t, err) {
		assert.Equal(t, "15:04:05", lt.String())

		hour, minute, second := lt.Clock()
		assert.Equal(t, 15, hour)
		assert.Equal(t, 4, minute)
		assert.Equal(t, 5, second)
	}
}

func TestParseClock(t *testing.T) {
	cases := map[string]string{
		"0001-01-01T14:00:00":     "14:00:00",
		"0001-01-01T07:35:10.000": "07:35:10",
		"0001-01-01 18:05:00":     "18:05:00",
		"14:00":                   "14:00:00",
		"  18:00:00 ":             "18:00:00",
	}

	for raw, expected := range cases {
		t.Run(raw, func(t *testing.T) {
			lt, err := ParseClock(raw)
			if assert.NoError(t, err) {
				assert.Equal(t, expected, lt.String())
			}
		})
	}

	for _, raw := range []string{"", "noon", "25:00", "0001-01-01"} {
		t.Run("invalid "+raw, func(t *testing.T) {
			_, err := ParseClock(raw)
			assert.Error(t, err)
		})
	}
}

func TestLocalTime_Time(t *testing.T) {
	assert.Equal(
		t,
		time.Date(2024, time.June, 15, 9, 30, 28, 0, time.UTC),
		MustParseLocalTime("09:30:28").Time(MustParseLocalDate("2024-06-15"), nil),
	)
}

func TestLocalDateTime_JSON(t *testing.T) {
	ldt := NewLocalDateTime(MustParseLocalDate("2025-11-25"), MustParseLocalTime("14:00:00"))

	b, err := json.Marshal(ldt)
	if assert.NoError(t, err) {
		assert.Equal(t, `"2025-11-25T14:00:00"`, string(b))
	}

	var parsed LocalDateTime
	if assert.NoError(t, json.Unmarshal(b, &parsed)) {
		assert.Equal(t, ldt, parsed)
	}
}
