package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day without a time component, held at UTC midnight.
type Date time.Time

func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Date(t), nil
}

func (d Date) Time() time.Time { return time.Time(d) }
func (d Date) IsZero() bool    { return time.Time(d).IsZero() }
func (d Date) String() string  { return time.Time(d).Format(DateLayout) }

func (d Date) Before(o Date) bool { return time.Time(d).Before(time.Time(o)) }
func (d Date) After(o Date) bool  { return time.Time(d).After(time.Time(o)) }
func (d Date) Equal(o Date) bool  { return time.Time(d).Equal(time.Time(o)) }

// NightsUntil returns the number of nights between d and o.
func (d Date) NightsUntil(o Date) int {
	return int(time.Time(o).Sub(time.Time(d)).Hours() / 24)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = DateOf(v)
	case string:
		parsed, err := ParseDate(v[:min(len(v), len(DateLayout))])
		if err != nil {
			return err
		}
		*d = parsed
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return time.Time(d), nil
}

func (Date) GormDataType() string {
	return "date"
}
