package models

import "errors"

var (
	// ErrGroupIDOutOfRange indicates a slot references a group the registry does not have.
	ErrGroupIDOutOfRange = errors.New("group id out of range")

	// ErrStaffIDOutOfRange indicates a slot's local id cannot be resolved to a member.
	ErrStaffIDOutOfRange = errors.New("staff id out of range")

	// ErrEmptyGroup indicates a referenced group has no members.
	ErrEmptyGroup error = &emptyGroupError{}

	// ErrEmptyCycle indicates a template cycle with no weeks.
	ErrEmptyCycle = errors.New("template cycle is empty")

	// ErrNegativeWeek indicates a negative week start or count.
	ErrNegativeWeek = errors.New("week numbers must not be negative")

	// ErrWeekOverflow indicates a week range whose last week does not fit in an int.
	ErrWeekOverflow = errors.New("week range overflows")

	// ErrMissingRegistry indicates a plan or scheduler without a staff registry.
	ErrMissingRegistry = errors.New("rotation plan has no staff registry")
)

// emptyGroupError is a staff id failure: no local id resolves in an empty group.
type emptyGroupError struct{}

func (*emptyGroupError) Error() string { return "staff group is empty" }

func (*emptyGroupError) Is(target error) bool { return target == ErrStaffIDOutOfRange }
