package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ErrDateFormat is returned when a date field cannot be parsed.
var ErrDateFormat = errors.New("date has wrong format, use YYYY-MM-DD")

// Date is a calendar day. It is written as "2006-01-02"; RFC3339 input is
// accepted and truncated to its date.
type Date struct{ time.Time }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrDateFormat
	}
	t, err := ParseDate(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ParseDate parses "2006-01-02" or an RFC3339 timestamp into midnight UTC of
// that day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, time.RFC3339Nano, "2006-01-02T15:04:05"} {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, ErrDateFormat
}

// DateFromTime wraps an optional time as an optional Date.
func DateFromTime(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{Time: t.UTC()}
}

// Nullable distinguishes a JSON key that is absent (Set false), present as
// null (Set true, Valid false) and present with a value.
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Valid = false
		var zero T
		n.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Ptr returns the value when present and non-null, else nil.
func (n Nullable[T]) Ptr() *T {
	if !n.Set || !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// IsNull reports an explicit JSON null.
func (n Nullable[T]) IsNull() bool { return n.Set && !n.Valid }
