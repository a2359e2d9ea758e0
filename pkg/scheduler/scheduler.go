package scheduler

import (
	"errors"
	"fmt"
	"math"

	"github.com/arnavshah/rotation-api-go/pkg/models"
)

// AssignedSlot is a template slot after a staff member has been chosen for
// it. The only way to obtain one is AssignSlot.
type AssignedSlot struct {
	slot  models.ShiftSlot
	staff models.StaffRef
}

// Slot returns the template slot this assignment was made from
func (a AssignedSlot) Slot() models.ShiftSlot {
	return a.slot
}

// Staff returns the member chosen for the slot
func (a AssignedSlot) Staff() models.StaffRef {
	return a.staff
}

// AssignSlot picks member (delta + LocalID) mod N of the slot's group, where N
// is the size of that group.
func AssignSlot(slot models.ShiftSlot, registry *models.StaffRegistry, delta int) (AssignedSlot, error) {
	group, err := registry.Group(slot.GroupID)
	if err != nil {
		return AssignedSlot{}, err
	}
	n := group.Len()
	if n == 0 {
		return AssignedSlot{}, fmt.Errorf("%w: group %d", models.ErrEmptyGroup, slot.GroupID)
	}
	if slot.LocalID < 0 || delta < 0 {
		return AssignedSlot{}, fmt.Errorf("%w: local id %d with offset %d", models.ErrStaffIDOutOfRange, slot.LocalID, delta)
	}
	// reduce both terms first so the sum stays below 2n
	index := (delta%n + slot.LocalID%n) % n
	return AssignedSlot{
		slot:  slot,
		staff: models.StaffRef{GroupID: slot.GroupID, Index: index},
	}, nil
}

// AssignError reports the slot that stopped a week from being assigned
type AssignError struct {
	Location models.SlotLocation
	Slot     models.ShiftSlot
	Err      error
}

func (e *AssignError) Error() string {
	return fmt.Sprintf("assigning %s (group %d, local %d): %v", e.Location, e.Slot.GroupID, e.Slot.LocalID, e.Err)
}

func (e *AssignError) Unwrap() error {
	return e.Err
}

// AssignDay fills every slot of a day template with the same delta
func AssignDay(day models.DayTemplate, weekday models.Weekday, registry *models.StaffRegistry, delta int) (models.DecidedDay, error) {
	decided := models.DecidedDay{
		Weekday:   weekday,
		Morning:   make([]models.StaffRef, 0, len(day.Morning)),
		Afternoon: make([]models.StaffRef, 0, len(day.Afternoon)),
	}
	for _, p := range []models.Period{models.Morning, models.Afternoon} {
		for i, s := range day.Slots(p) {
			a, err := AssignSlot(s, registry, delta)
			if err != nil {
				return models.DecidedDay{}, &AssignError{
					Location: models.SlotLocation{Day: weekday, Period: p, Position: i},
					Slot:     s,
					Err:      err,
				}
			}
			if p == models.Morning {
				decided.Morning = append(decided.Morning, a.Staff())
			} else {
				decided.Afternoon = append(decided.Afternoon, a.Staff())
			}
		}
	}
	return decided, nil
}

// AssignWeek fills a whole week template. The first failing slot aborts the
// week and no partial roster is returned.
func AssignWeek(week *models.WeekTemplate, registry *models.StaffRegistry, delta int) ([models.DaysPerWeek]models.DecidedDay, error) {
	var days [models.DaysPerWeek]models.DecidedDay
	for d := range week.Days {
		decided, err := AssignDay(week.Days[d], models.Weekday(d), registry, delta)
		if err != nil {
			return [models.DaysPerWeek]models.DecidedDay{}, err
		}
		days[d] = decided
	}
	return days, nil
}

// Scheduler generates rosters from a template cycle
type Scheduler struct {
	Registry *models.StaffRegistry
	Cycle    models.TemplateCycle
}

// NewScheduler creates a new scheduler instance
func NewScheduler(registry *models.StaffRegistry, cycle models.TemplateCycle) *Scheduler {
	return &Scheduler{
		Registry: registry,
		Cycle:    cycle,
	}
}

// TemplateFor returns the template index used for an absolute week and the
// rotation offset, which is the number of completed cycles.
func (s *Scheduler) TemplateFor(week int) (index, delta int, err error) {
	c := len(s.Cycle)
	if c == 0 {
		return 0, 0, models.ErrEmptyCycle
	}
	if week < 0 {
		return 0, 0, fmt.Errorf("%w: week %d", models.ErrNegativeWeek, week)
	}
	return week % c, week / c, nil
}

// Generate returns weekCount rosters starting at absolute week weekStart
func (s *Scheduler) Generate(weekStart, weekCount int) ([]models.DecidedWeek, error) {
	if len(s.Cycle) == 0 {
		return nil, models.ErrEmptyCycle
	}
	if s.Registry == nil {
		return nil, models.ErrMissingRegistry
	}
	if weekStart < 0 || weekCount < 0 {
		return nil, fmt.Errorf("%w: start %d, count %d", models.ErrNegativeWeek, weekStart, weekCount)
	}
	if weekCount > 0 && weekStart > math.MaxInt-(weekCount-1) {
		return nil, fmt.Errorf("%w: start %d, count %d", models.ErrWeekOverflow, weekStart, weekCount)
	}

	weeks := make([]models.DecidedWeek, 0, weekCount)
	for i := 0; i < weekCount; i++ {
		w := weekStart + i
		t, delta, err := s.TemplateFor(w)
		if err != nil {
			return nil, err
		}
		days, err := AssignWeek(&s.Cycle[t], s.Registry, delta)
		if err != nil {
			var ae *AssignError
			if errors.As(err, &ae) {
				ae.Location.Week = t
			}
			return nil, fmt.Errorf("generating week %d: %w", w, err)
		}
		weeks = append(weeks, models.DecidedWeek{
			Week:          w,
			TemplateIndex: t,
			Delta:         delta,
			Days:          days,
		})
	}
	return weeks, nil
}
