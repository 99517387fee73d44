package xtime

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
	"time"
)

type LocalTime time.Duration

// layouts accepted by ParseClock; the catalog anchors times of day to 0001-01-01
var clockLayouts = []string{
	"2006-01-02T15:04:05",
	time.DateTime,
	time.RFC3339,
	"15:04:05",
	"15:04",
}

func NewLocalTime(t time.Time) LocalTime {
	hour, minute, sec := t.Clock()

	d := time.Duration(0)
	d += time.Duration(hour) * time.Hour
	d += time.Duration(minute) * time.Minute
	d += time.Duration(sec) * time.Second

	return LocalTime(d)
}

func ParseLocalTime(v string) (LocalTime, error) {
	t, err := time.Parse("15:04:05", v)
	if err != nil {
		return LocalTime(0), err
	}

	return NewLocalTime(t), nil
}

// ParseClock extracts the time of day from a bare clock value or a date-anchored timestamp.
func ParseClock(v string) (LocalTime, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return LocalTime(0), errors.New("empty time value")
	}

	// fractional seconds carry no meaning for timetables
	if base, _, ok := strings.Cut(v, "."); ok && strings.Contains(base, ":") {
		v = base
	}

	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return NewLocalTime(t), nil
		}
	}

	return LocalTime(0), fmt.Errorf("unsupported time value %q", v)
}

func MustParseLocalTime(v string) LocalTime {
	t, err := ParseLocalTime(v)
	if err != nil {
		panic(err)
	}

	return t
}

func (lt LocalTime) Clock() (int, int, int) {
	d := time.Duration(lt).Truncate(time.Second)
	hour := d / time.Hour
	d %= time.Hour

	minute := d / time.Minute
	d %= time.Minute

	second := d / time.Second

	return int(hour), int(minute), int(second)
}

func (lt LocalTime) Time(d LocalDate, loc *time.Location) time.Time {
	year, month, day := d.Date()
	hour, minute, second := lt.Clock()
	return time.Date(year, month, day, hour, minute, second, 0, cmp.Or(loc, time.UTC))
}

func (lt LocalTime) String() string {
	hour, minute, second := lt.Clock()
	return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)
}

func (lt *LocalTime) UnmarshalText(text []byte) error {
	var err error
	*lt, err = ParseClock(string(text))

	return err
}

func (lt LocalTime) MarshalText() ([]byte, error) {
	return []byte(lt.String()), nil
}
