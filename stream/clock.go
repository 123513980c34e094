package stream

import "time"

// A Clock reports the runtime in milliseconds.
type Clock func() int64

// NewClock returns a Clock counting from start.
func NewClock(start time.Time) Clock {
	return func() int64 {
		return time.Since(start).Milliseconds()
	}
}
