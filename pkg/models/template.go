package models

import (
	"fmt"
	"strings"
)

// Weekday indexes the days of a week template, Monday first
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the fixed length of every week template
const DaysPerWeek = 7

var weekdayNames = [DaysPerWeek]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

func (d Weekday) String() string {
	if d < 0 || int(d) >= DaysPerWeek {
		return fmt.Sprintf("day(%d)", int(d))
	}
	return weekdayNames[d]
}

// ParseWeekday accepts the three letter day names used in plan files
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range weekdayNames {
		if n == s {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

func (d Weekday) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Weekday) UnmarshalText(b []byte) error {
	v, err := ParseWeekday(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Period is the half of the day a slot belongs to
type Period int

const (
	Morning Period = iota
	Afternoon
)

func (p Period) String() string {
	if p == Afternoon {
		return "afternoon"
	}
	return "morning"
}

func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Period) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "morning", "am":
		*p = Morning
	case "afternoon", "pm":
		*p = Afternoon
	default:
		return fmt.Errorf("unknown period %q", string(b))
	}
	return nil
}

// ShiftSlot is an unassigned template slot. It names a staff group and a
// rotation key but never a person; see scheduler.AssignSlot.
type ShiftSlot struct {
	GroupID int `json:"group_id"`
	LocalID int `json:"local_id"`
}

// DayTemplate lists the slots of one day
type DayTemplate struct {
	Morning   []ShiftSlot `json:"morning"`
	Afternoon []ShiftSlot `json:"afternoon"`
}

// Slots returns the slot list for a period
func (d DayTemplate) Slots(p Period) []ShiftSlot {
	if p == Afternoon {
		return d.Afternoon
	}
	return d.Morning
}

// WeekTemplate holds exactly one DayTemplate per weekday
type WeekTemplate struct {
	Days [DaysPerWeek]DayTemplate `json:"days"`
}

// TemplateCycle is the repeating sequence of week templates
type TemplateCycle []WeekTemplate

// SlotLocation identifies one slot inside a template cycle
type SlotLocation struct {
	Week     int     `json:"week"`
	Day      Weekday `json:"day"`
	Period   Period  `json:"period"`
	Position int     `json:"position"`
}

func (l SlotLocation) String() string {
	return fmt.Sprintf("week %d %s %s #%d", l.Week, l.Day, l.Period, l.Position)
}

// EachSlot visits every slot of the week in day, period, position order.
// A non-nil error from fn stops the walk and is returned.
func (w *WeekTemplate) EachSlot(week int, fn func(SlotLocation, ShiftSlot) error) error {
	for d := range w.Days {
		for _, p := range []Period{Morning, Afternoon} {
			for i, s := range w.Days[d].Slots(p) {
				loc := SlotLocation{Week: week, Day: Weekday(d), Period: p, Position: i}
				if err := fn(loc, s); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// EachSlot visits every slot of the cycle in week order
func (c TemplateCycle) EachSlot(fn func(SlotLocation, ShiftSlot) error) error {
	for i := range c {
		if err := c[i].EachSlot(i, fn); err != nil {
			return err
		}
	}
	return nil
}

// RotationPlan pairs a template cycle with the registry it draws staff from
type RotationPlan struct {
	Registry *StaffRegistry `json:"registry"`
	Cycle    TemplateCycle  `json:"cycle"`
}

// DecidedDay is the roster for one day. Entries index into the registry the
// roster was generated from.
type DecidedDay struct {
	Weekday   Weekday    `json:"weekday"`
	Morning   []StaffRef `json:"morning"`
	Afternoon []StaffRef `json:"afternoon"`
}

// DecidedWeek is the roster for one absolute week
type DecidedWeek struct {
	Week          int                     `json:"week"`
	TemplateIndex int                     `json:"template_index"`
	Delta         int                     `json:"delta"`
	Days          [DaysPerWeek]DecidedDay `json:"days"`
}
