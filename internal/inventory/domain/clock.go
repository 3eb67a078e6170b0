package domain

import "time"

// DateLayout is the calendar date format used for every stored date.
const DateLayout = "2006-01-02"

// Clock supplies the current time to handlers that stamp dates.
type Clock func() time.Time

// Today returns the current calendar date.
func (c Clock) Today() string {
	if c == nil {
		return time.Now().Format(DateLayout)
	}
	return c().Format(DateLayout)
}

// Now returns the current time.
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
