package clock

import "time"

// Clock supplies the current instant. Catalog filtering and discount
// windows are all evaluated against a Clock instead of calling
// time.Now() inline, so tests can pin the instant.
type Clock interface {
	Now() time.Time
}

// Real reads the system clock in UTC.
type Real struct{}

func (Real) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}
