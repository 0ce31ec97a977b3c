package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// Date is a calendar date with either month or day precision.
type Date struct {
	t     time.Time
	month bool
}

// ParseDate accepts "2006-01", "2006-01-02" or an RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(monthLayout, s); err == nil {
		return Date{t: t, month: true}, nil
	}
	if t, err := time.Parse(dayLayout, s); err == nil {
		return Date{t: t}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		// The calendar day as written, in the timestamp's own offset.
		y, m, d := t.Date()
		return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}, nil
	}
	return Date{}, fmt.Errorf("models: invalid date %q", s)
}

// Time returns the first instant of the date in UTC.
func (d Date) Time() time.Time { return d.t }

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// Equal reports whether both dates denote the same day with the same precision.
func (d Date) Equal(o Date) bool { return d.month == o.month && d.t.Equal(o.t) }

func (d Date) String() string {
	if d.month {
		return d.t.Format(monthLayout)
	}
	return d.t.Format(dayLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("models: date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Unquoted YAML timestamps are
// accepted as well since the node value keeps the literal text.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("models: line %d: date must be a scalar", node.Line)
	}
	parsed, err := ParseDate(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = parsed
	return nil
}
