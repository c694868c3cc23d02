package calendar

import "errors"

var (
	// ErrInvalidDate marks a date string that does not parse as ISO
	// YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
	// ErrPastDate marks a mutating operation on a date before today.
	ErrPastDate = errors.New("cannot modify past dates")
	// ErrInsufficientAvailability marks a confirm attempt below the
	// confirmation quorum.
	ErrInsufficientAvailability = errors.New("not enough available users")
)
