package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date binds either an RFC3339 timestamp or a plain YYYY-MM-DD date, which
// is read as midnight in the server's local time zone.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return fmt.Errorf("date %q is neither RFC3339 nor YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

// TimePtr returns nil for a nil Date.
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
