package xtime

import (
	"encoding/json"
	"time"
)

const localDateTimeLayout = "2006-01-02T15:04:05"

// LocalDateTime is a wall clock timestamp without zone information.
type LocalDateTime struct {
	Date LocalDate
	Time LocalTime
}

func NewLocalDateTime(d LocalDate, t LocalTime) LocalDateTime {
	return LocalDateTime{d, t}
}

func ParseLocalDateTime(v string) (LocalDateTime, error) {
	t, err := time.Parse(localDateTimeLayout, v)
	if err != nil {
		return LocalDateTime{}, err
	}

	return LocalDateTime{NewLocalDate(t), NewLocalTime(t)}, nil
}

func (ldt LocalDateTime) String() string {
	return ldt.Time.Time(ldt.Date, nil).Format(localDateTimeLayout)
}

func (ldt LocalDateTime) Compare(other LocalDateTime) int {
	return ldt.Time.Time(ldt.Date, nil).Compare(other.Time.Time(other.Date, nil))
}

func (ldt *LocalDateTime) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	var err error
	*ldt, err = ParseLocalDateTime(v)

	return err
}

func (ldt LocalDateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(ldt.String())
}
