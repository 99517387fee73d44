package timetable

import (
	"strconv"
	"strings"

	"github.com/explore-flights/multimodal/common"
	"github.com/explore-flights/multimodal/common/xtime"
)

// RunsOn reports whether the entry operates on the given date.
//
// Only the day-of-month rule is understood. An explicit day list that holds no
// valid day never matches, while any other rule (or an empty list) matches every day.
func RunsOn(entry common.TimetableEntry, d xtime.LocalDate) bool {
	if entry.RecurrenceType != common.RecurrenceDaysOfMonth || strings.TrimSpace(entry.RecurrenceDays) == "" {
		return true
	}

	return parseDays(entry.RecurrenceDays).Contains(d.Day)
}

func parseDays(raw string) common.Set[int] {
	days := common.NewSet[int]()
	for _, token := range strings.Split(raw, ",") {
		if day, err := strconv.Atoi(strings.TrimSpace(token)); err == nil {
			days.Add(day)
		}
	}

	return days
}
