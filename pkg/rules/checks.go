package rules

import "github.com/arnavshah/rotation-api-go/pkg/models"

// RangeCheck rejects the first slot that points outside the registry.
//
// A strict check requires 0 <= LocalID < group size. A lenient check only
// requires the local id to resolve by modulus: non-negative, non-empty group.
type RangeCheck struct {
	Strict bool
}

func (RangeCheck) Name() string { return "range" }

func (c RangeCheck) Check(plan models.RotationPlan) error {
	sizes := plan.Registry.GroupSizes()
	return plan.Cycle.EachSlot(func(loc models.SlotLocation, s models.ShiftSlot) error {
		if s.GroupID < 0 || s.GroupID >= len(sizes) {
			return &RangeError{Kind: models.ErrGroupIDOutOfRange, Location: loc, Slot: s, Bound: len(sizes)}
		}
		n := sizes[s.GroupID]
		switch {
		case n == 0:
			return &RangeError{Kind: models.ErrEmptyGroup, Location: loc, Slot: s, Bound: 0}
		case s.LocalID < 0, c.Strict && s.LocalID >= n:
			return &RangeError{Kind: models.ErrStaffIDOutOfRange, Location: loc, Slot: s, Bound: n}
		}
		return nil
	})
}

// resolve maps a slot to the member index it rotates from. ok is false for
// slots RangeCheck would reject.
func resolve(s models.ShiftSlot, sizes []int) (models.StaffRef, bool) {
	if s.GroupID < 0 || s.GroupID >= len(sizes) || sizes[s.GroupID] == 0 || s.LocalID < 0 {
		return models.StaffRef{}, false
	}
	return models.StaffRef{GroupID: s.GroupID, Index: s.LocalID % sizes[s.GroupID]}, true
}

// staffTable is a per group, per member table sized from the registry
type staffTable[T any] [][]T

func newStaffTable[T any](sizes []int) staffTable[T] {
	t := make(staffTable[T], len(sizes))
	for g, n := range sizes {
		t[g] = make([]T, n)
	}
	return t
}

// CoverageCheck fails when some member is never reached by any slot of the
// cycle. Repeated references to a member are allowed.
type CoverageCheck struct{}

func (CoverageCheck) Name() string { return "coverage" }

func (CoverageCheck) Check(plan models.RotationPlan) error {
	sizes := plan.Registry.GroupSizes()
	seen := newStaffTable[bool](sizes)
	_ = plan.Cycle.EachSlot(func(_ models.SlotLocation, s models.ShiftSlot) error {
		if ref, ok := resolve(s, sizes); ok {
			seen[ref.GroupID][ref.Index] = true
		}
		return nil
	})

	var missing []models.StaffRef
	for g, members := range seen {
		for i, ok := range members {
			if !ok {
				missing = append(missing, models.StaffRef{GroupID: g, Index: i})
			}
		}
	}
	if len(missing) > 0 {
		return &UnassignedStaffError{Staff: missing}
	}
	return nil
}

// DuplicateSlotCheck fails when two slots of the same week template rotate
// from the same member, which would put one person in both slots every time
// the template is used.
type DuplicateSlotCheck struct{}

func (DuplicateSlotCheck) Name() string { return "duplicate-slot" }

func (DuplicateSlotCheck) Check(plan models.RotationPlan) error {
	sizes := plan.Registry.GroupSizes()
	var dups []DuplicateSlot
	for w := range plan.Cycle {
		first := make(map[models.StaffRef]models.SlotLocation)
		_ = plan.Cycle[w].EachSlot(w, func(loc models.SlotLocation, s models.ShiftSlot) error {
			ref, ok := resolve(s, sizes)
			if !ok {
				return nil
			}
			if prev, exists := first[ref]; exists {
				dups = append(dups, DuplicateSlot{Staff: ref, First: prev, Second: loc})
				return nil
			}
			first[ref] = loc
			return nil
		})
	}
	if len(dups) > 0 {
		return &DuplicateSlotError{Duplicates: dups}
	}
	return nil
}

// AmPmBalanceCheck requires every member to be reached by exactly
// TargetMorning morning slots and TargetAfternoon afternoon slots over the
// whole cycle.
type AmPmBalanceCheck struct {
	TargetMorning   int
	TargetAfternoon int
}

func (AmPmBalanceCheck) Name() string { return "am-pm-balance" }

func (c AmPmBalanceCheck) Check(plan models.RotationPlan) error {
	sizes := plan.Registry.GroupSizes()
	counts := newStaffTable[[2]int](sizes)
	_ = plan.Cycle.EachSlot(func(loc models.SlotLocation, s models.ShiftSlot) error {
		if ref, ok := resolve(s, sizes); ok {
			counts[ref.GroupID][ref.Index][loc.Period]++
		}
		return nil
	})

	var off []AmPmMismatch
	for g, members := range counts {
		for i, n := range members {
			if n[models.Morning] != c.TargetMorning || n[models.Afternoon] != c.TargetAfternoon {
				off = append(off, AmPmMismatch{
					Staff:     models.StaffRef{GroupID: g, Index: i},
					Morning:   n[models.Morning],
					Afternoon: n[models.Afternoon],
				})
			}
		}
	}
	if len(off) > 0 {
		return &AmPmMismatchError{
			TargetMorning:   c.TargetMorning,
			TargetAfternoon: c.TargetAfternoon,
			Mismatches:      off,
		}
	}
	return nil
}
