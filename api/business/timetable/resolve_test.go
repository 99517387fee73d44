package timetable

import (
	"testing"

	"github.com/explore-flights/multimodal/common"
	"github.com/explore-flights/multimodal/common/xtime"
	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	d := xtime.MustParseLocalDate("2025-11-25")

	if ldt := Combine(d, "0001-01-01T14:00:00"); assert.NotNil(t, ldt) {
		assert.Equal(t, "2025-11-25T14:00:00", ldt.String())
	}

	if ldt := Combine(d, "18:00"); assert.NotNil(t, ldt) {
		assert.Equal(t, "2025-11-25T18:00:00", ldt.String())
	}

	assert.Nil(t, Combine(d, ""))
	assert.Nil(t, Combine(d, "в течение дня"))
}

func TestResolve(t *testing.T) {
	d := xtime.MustParseLocalDate("2025-11-25")
	entries := []common.TimetableEntry{
		{Id: "a", RecurrenceType: common.RecurrenceDaysOfMonth, RecurrenceDays: "25", DepartureRaw: "14:00", ArrivalRaw: "18:00"},
		{Id: "b", RecurrenceType: common.RecurrenceDaysOfMonth, RecurrenceDays: "26", DepartureRaw: "14:00", ArrivalRaw: "18:00"},
		{Id: "c", DepartureRaw: "0001-01-01T07:30:00", ArrivalRaw: "broken"},
	}

	options := Resolve(entries, d)
	if assert.Len(t, options, 2) {
		assert.Equal(t, "a", options[0].Entry.Id)
		assert.Equal(t, "2025-11-25T14:00:00", options[0].DepartureAt.String())
		assert.Equal(t, "2025-11-25T18:00:00", options[0].ArrivalAt.String())

		assert.Equal(t, "c", options[1].Entry.Id)
		assert.Equal(t, "2025-11-25T07:30:00", options[1].DepartureAt.String())
		assert.Nil(t, options[1].ArrivalAt)
	}

	if options = Resolve(entries, d.Next()); assert.Len(t, options, 2) {
		assert.Equal(t, "b", options[0].Entry.Id)
		assert.Equal(t, "c", options[1].Entry.Id)
	}
}
