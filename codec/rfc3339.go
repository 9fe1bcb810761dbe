package codec

import (
	"errors"
	"fmt"
	"time"
)

const (
	// layoutSeconds renders the offset numerically even for UTC ("+00:00").
	layoutSeconds = "2006-01-02T15:04:05-07:00"
	layoutMicros  = "2006-01-02T15:04:05.000000-07:00"
	layoutDate    = "2006-01-02"
)

// ErrInvalidDateTime is returned by ParseDateTime for unparseable input.
var ErrInvalidDateTime = errors.New("invalid date-time")

// FormatDateTime renders t as RFC 3339 with a numeric UTC offset.
// Fractional seconds are emitted with microsecond precision only when non-zero.
func FormatDateTime(t time.Time) string {
	if t.Nanosecond()/1000 != 0 {
		return t.Format(layoutMicros)
	}
	return t.Format(layoutSeconds)
}

// ParseDateTime accepts RFC 3339 timestamps (fractional seconds optional) and
// plain calendar dates, which are read as midnight UTC.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(layoutDate, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
}
