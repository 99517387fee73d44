package timetable

import (
	"github.com/explore-flights/multimodal/common"
	"github.com/explore-flights/multimodal/common/xtime"
)

type Option struct {
	Entry       common.TimetableEntry
	DepartureAt *xtime.LocalDateTime
	ArrivalAt   *xtime.LocalDateTime
}

// Combine anchors the time of day of raw on d. Unparseable values yield nil.
func Combine(d xtime.LocalDate, raw string) *xtime.LocalDateTime {
	lt, err := xtime.ParseClock(raw)
	if err != nil {
		return nil
	}

	ldt := xtime.NewLocalDateTime(d, lt)
	return &ldt
}

// Resolve keeps the entries running on d and resolves their departure and arrival timestamps.
func Resolve(entries []common.TimetableEntry, d xtime.LocalDate) []Option {
	options := make([]Option, 0, len(entries))
	for _, entry := range entries {
		if !RunsOn(entry, d) {
			continue
		}

		options = append(options, Option{
			Entry:       entry,
			DepartureAt: Combine(d, entry.DepartureRaw),
			ArrivalAt:   Combine(d, entry.ArrivalRaw),
		})
	}

	return options
}
