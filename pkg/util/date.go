package util

import "time"

// ParseLocalDateTime combines a date ("2006-01-02") and a clock ("15:04")
// into a local time in loc. An empty clock defaults to noon, the classical
// convention for an unstated question time.
func ParseLocalDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	if clock == "" {
		clock = "12:00"
	}
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
}
