package timetable

import (
	"testing"

	"github.com/explore-flights/multimodal/common"
	"github.com/explore-flights/multimodal/common/xtime"
	"github.com/stretchr/testify/assert"
)

func TestRunsOn_DaysOfMonth(t *testing.T) {
	entry := common.TimetableEntry{
		RecurrenceType: common.RecurrenceDaysOfMonth,
		RecurrenceDays: "2,4,6",
	}

	allowed := common.NewSet(2, 4, 6)
	for d := range xtime.MustParseLocalDate("2025-01-01").Until(xtime.MustParseLocalDate("2025-12-31")) {
		assert.Equal(t, allowed.Contains(d.Day), RunsOn(entry, d), d.String())
	}

	assert.False(t, RunsOn(entry, xtime.MustParseLocalDate("2025-11-05")))
}

func TestRunsOn(t *testing.T) {
	d := xtime.MustParseLocalDate("2025-11-25")

	testCases := []struct {
		name     string
		rType    string
		days     string
		expected bool
	}{
		{"whitespace tolerant", common.RecurrenceDaysOfMonth, " 1 , 25 ,30", true},
		{"day missing", common.RecurrenceDaysOfMonth, "26", false},
		{"garbage tokens dropped", common.RecurrenceDaysOfMonth, "x,25,", true},
		{"only garbage", common.RecurrenceDaysOfMonth, "пн,вт", false},
		{"empty list runs daily", common.RecurrenceDaysOfMonth, "", true},
		{"blank list runs daily", common.RecurrenceDaysOfMonth, "   ", true},
		{"unknown type runs daily", "ДниНедели", "1,2", true},
		{"no type runs daily", "", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entry := common.TimetableEntry{RecurrenceType: tc.rType, RecurrenceDays: tc.days}
			assert.Equal(t, tc.expected, RunsOn(entry, d))
		})
	}
}
