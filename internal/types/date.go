package types

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the ISO 8601 calendar date format.
const DateLayout = "2006-01-02"

// Date is a calendar day without time of day, always in UTC.
type Date time.Time

// NewDate returns the Date for year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return NewDate(year, month, day)
}

// Today returns the current calendar day in UTC.
func Today() Date {
	return DateOf(time.Now().UTC())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}

	return DateOf(t), nil
}

// Time returns the date as time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// String returns the date in YYYY-MM-DD format.
func (d Date) String() string {
	return time.Time(d).Format(DateLayout)
}

// Day returns the day of the month.
func (d Date) Day() int {
	return time.Time(d).Day()
}

// Month returns the month the date is in.
func (d Date) Month() Month {
	return MonthOf(time.Time(d))
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// It accepts YYYY-MM-DD and RFC3339 strings.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	for _, layout := range []string{DateLayout, time.RFC3339} {
		t, err := time.Parse(layout, value)
		if err == nil {
			*d = DateOf(t)
			return nil
		}
	}

	return fmt.Errorf("cannot parse '%s' as date, use YYYY-MM-DD", value)
}

// IsZero reports if the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date(time.Time(d).AddDate(0, 0, n))
}

// DaysUntil returns the number of calendar days from d to e.
// It is negative if e is before d.
func (d Date) DaysUntil(e Date) int {
	return int(math.Round(time.Time(e).Sub(time.Time(d)).Hours() / 24))
}

// Before reports whether d is before e.
func (d Date) Before(e Date) bool {
	return time.Time(d).Before(time.Time(e))
}

// After reports whether d is after e.
func (d Date) After(e Date) bool {
	return time.Time(d).After(time.Time(e))
}

// Equal reports whether d and e are the same day.
func (d Date) Equal(e Date) bool {
	return time.Time(d).Equal(time.Time(e))
}

// Min returns the earlier of the two dates.
func Min(d, e Date) Date {
	if e.Before(d) {
		return e
	}
	return d
}

// UnmarshalParam implements gin's BindUnmarshaler for query and URI parameters.
func (d *Date) UnmarshalParam(param string) error {
	if param == "" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(param)
	if err != nil {
		return fmt.Errorf("cannot parse '%s' as date, use YYYY-MM-DD", param)
	}

	*d = parsed
	return nil
}
