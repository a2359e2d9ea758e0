// Package rotatest builds registries and template cycles for tests.
//
// Slots are written as a group letter and a local id: "a0" is group 0,
// local id 0; "c1" is group 2, local id 1.
package rotatest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arnavshah/rotation-api-go/pkg/models"
)

// Slot parses a single slot token and panics on malformed input
func Slot(tok string) models.ShiftSlot {
	if len(tok) < 2 || tok[0] < 'a' || tok[0] > 'z' {
		panic(fmt.Sprintf("rotatest: bad slot %q", tok))
	}
	id, err := strconv.Atoi(tok[1:])
	if err != nil {
		panic(fmt.Sprintf("rotatest: bad slot %q: %v", tok, err))
	}
	return models.ShiftSlot{GroupID: int(tok[0] - 'a'), LocalID: id}
}

func slots(list string) []models.ShiftSlot {
	out := []models.ShiftSlot{}
	for _, tok := range strings.Fields(list) {
		out = append(out, Slot(tok))
	}
	return out
}

// Day builds a day from space separated morning and afternoon tokens
func Day(morning, afternoon string) models.DayTemplate {
	return models.DayTemplate{Morning: slots(morning), Afternoon: slots(afternoon)}
}

// Week builds a week starting on Monday; missing days are empty
func Week(days ...models.DayTemplate) models.WeekTemplate {
	if len(days) > models.DaysPerWeek {
		panic("rotatest: more than 7 days")
	}
	var w models.WeekTemplate
	for i := range w.Days {
		if i < len(days) {
			w.Days[i] = days[i]
		} else {
			w.Days[i] = Day("", "")
		}
	}
	return w
}

// Registry returns groups named A, B, ... with members "a0".."aN" and so on
func Registry(sizes ...int) *models.StaffRegistry {
	groups := make([]models.StaffGroup, len(sizes))
	for g, n := range sizes {
		letter := string(rune('a' + g))
		groups[g] = models.NewStaffGroup(strings.ToUpper(letter))
		for i := 0; i < n; i++ {
			groups[g].AddStaff(letter + strconv.Itoa(i))
		}
	}
	return models.NewStaffRegistry(groups...)
}

// SampleRegistry has two groups of six
func SampleRegistry() *models.StaffRegistry {
	return Registry(6, 6)
}

// SampleCycle is a two week cycle over SampleRegistry. Every member appears
// once in the mornings and once in the afternoons, never twice in a week.
func SampleCycle() models.TemplateCycle {
	return models.TemplateCycle{
		Week(
			Day("a0 b0", "b3"),
			Day("", "a3"),
			Day("", ""),
			Day("b1", ""),
			Day("a1 b2", "a4 b4 a5"),
			Day("a2", "b5"),
			Day("", ""),
		),
		Week(
			Day("a3 b3", "b0"),
			Day("", "a0"),
			Day("", ""),
			Day("b4", ""),
			Day("a4 b5", "a1 b1 a2"),
			Day("a5", "b2"),
			Day("", ""),
		),
	}
}

// SamplePlan pairs SampleRegistry with SampleCycle
func SamplePlan() models.RotationPlan {
	return models.RotationPlan{Registry: SampleRegistry(), Cycle: SampleCycle()}
}
