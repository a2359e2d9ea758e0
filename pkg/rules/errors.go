package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arnavshah/rotation-api-go/pkg/models"
)

var (
	// ErrUnassignedStaff indicates members that no slot in the cycle ever reaches.
	ErrUnassignedStaff = errors.New("unassigned staff")

	// ErrDuplicateSlot indicates a member reached by more than one slot of a week.
	ErrDuplicateSlot = errors.New("duplicate slot")

	// ErrAmPmMismatch indicates members whose morning/afternoon counts miss the target.
	ErrAmPmMismatch = errors.New("morning/afternoon mismatch")
)

// RangeError reports the first slot whose group or local id is out of bounds
type RangeError struct {
	Kind     error // models.ErrGroupIDOutOfRange, models.ErrStaffIDOutOfRange or models.ErrEmptyGroup
	Location models.SlotLocation
	Slot     models.ShiftSlot
	Bound    int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %v (group %d, local %d, bound %d)", e.Location, e.Kind, e.Slot.GroupID, e.Slot.LocalID, e.Bound)
}

func (e *RangeError) Unwrap() error {
	return e.Kind
}

// UnassignedStaffError lists every member no slot refers to
type UnassignedStaffError struct {
	Staff []models.StaffRef
}

func (e *UnassignedStaffError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnassignedStaff, joinRefs(e.Staff))
}

func (e *UnassignedStaffError) Unwrap() error {
	return ErrUnassignedStaff
}

// DuplicateSlot is one member reached twice within the same week template
type DuplicateSlot struct {
	Staff  models.StaffRef     `json:"staff"`
	First  models.SlotLocation `json:"first"`
	Second models.SlotLocation `json:"second"`
}

// DuplicateSlotError lists every duplicate found
type DuplicateSlotError struct {
	Duplicates []DuplicateSlot
}

func (e *DuplicateSlotError) Error() string {
	parts := make([]string, len(e.Duplicates))
	for i, d := range e.Duplicates {
		parts[i] = fmt.Sprintf("%s at %s and %s", d.Staff, d.First, d.Second)
	}
	return fmt.Sprintf("%v: %s", ErrDuplicateSlot, strings.Join(parts, ", "))
}

func (e *DuplicateSlotError) Unwrap() error {
	return ErrDuplicateSlot
}

// AmPmMismatch is one member's counts that differ from the target
type AmPmMismatch struct {
	Staff     models.StaffRef `json:"staff"`
	Morning   int             `json:"morning"`
	Afternoon int             `json:"afternoon"`
}

// AmPmMismatchError lists every member off target
type AmPmMismatchError struct {
	TargetMorning   int
	TargetAfternoon int
	Mismatches      []AmPmMismatch
}

func (e *AmPmMismatchError) Error() string {
	parts := make([]string, len(e.Mismatches))
	for i, m := range e.Mismatches {
		parts[i] = fmt.Sprintf("%s has %d/%d", m.Staff, m.Morning, m.Afternoon)
	}
	return fmt.Sprintf("%v (want %d/%d): %s", ErrAmPmMismatch, e.TargetMorning, e.TargetAfternoon, strings.Join(parts, ", "))
}

func (e *AmPmMismatchError) Unwrap() error {
	return ErrAmPmMismatch
}

func joinRefs(refs []models.StaffRef) string {
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}
