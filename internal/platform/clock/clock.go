package clock

import (
	"time"
)

// System reads the wall clock in a fixed location, so "today" follows the
// organization's calendar rather than the host's.
type System struct {
	Location *time.Location
}

// NewSystem loads the named IANA zone. An empty name means UTC.
func NewSystem(zone string) (*System, error) {
	if zone == "" {
		return &System{Location: time.UTC}, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	return &System{Location: loc}, nil
}

// Today returns the current date in the configured location.
func (c *System) Today() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc)
}

// Fixed always reports the same day. Useful in tests and for replaying reports.
type Fixed struct {
	Day time.Time
}

func (c Fixed) Today() time.Time {
	return c.Day
}
