package core

import "time"

// Clock supplies the current local time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now in the local zone.
func (SystemClock) Now() time.Time {
	return time.Now()
}
