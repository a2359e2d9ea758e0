package scheduler

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavshah/rotation-api-go/internal/rotatest"
	"github.com/arnavshah/rotation-api-go/pkg/models"
)

func TestAssignSlot_Rotation(t *testing.T) {
	reg := rotatest.Registry(6, 4)
	for group, n := range []int{6, 4} {
		for local := 0; local < 8; local++ {
			for delta := 0; delta < 15; delta++ {
				a, err := AssignSlot(models.ShiftSlot{GroupID: group, LocalID: local}, reg, delta)
				require.NoError(t, err)
				assert.Equal(t, models.StaffRef{GroupID: group, Index: (delta + local) % n}, a.Staff())
				assert.Equal(t, models.ShiftSlot{GroupID: group, LocalID: local}, a.Slot())
			}
		}
	}
}

func TestAssignSlot_Errors(t *testing.T) {
	reg := models.NewStaffRegistry(models.NewStaffGroup("A", "x", "y"), models.NewStaffGroup("Empty"))

	_, err := AssignSlot(models.ShiftSlot{GroupID: 2}, reg, 0)
	assert.ErrorIs(t, err, models.ErrGroupIDOutOfRange)

	_, err = AssignSlot(models.ShiftSlot{GroupID: -1}, reg, 0)
	assert.ErrorIs(t, err, models.ErrGroupIDOutOfRange)

	_, err = AssignSlot(models.ShiftSlot{GroupID: 1}, reg, 3)
	assert.ErrorIs(t, err, models.ErrEmptyGroup)
	assert.ErrorIs(t, err, models.ErrStaffIDOutOfRange)

	_, err = AssignSlot(models.ShiftSlot{GroupID: 0, LocalID: -1}, reg, 0)
	assert.ErrorIs(t, err, models.ErrStaffIDOutOfRange)
	assert.False(t, errors.Is(err, models.ErrEmptyGroup))
}

func TestAssignSlot_LargeLocalID(t *testing.T) {
	reg := rotatest.Registry(3)
	for _, delta := range []int{0, 1, 2, 7, math.MaxInt} {
		a, err := AssignSlot(models.ShiftSlot{GroupID: 0, LocalID: math.MaxInt}, reg, delta)
		require.NoError(t, err)
		want := (math.MaxInt%3 + delta%3) % 3
		assert.Equal(t, models.StaffRef{GroupID: 0, Index: want}, a.Staff(), "delta %d", delta)
	}
}

func TestGenerate_LargeLocalIDStaysInRange(t *testing.T) {
	reg := rotatest.Registry(2)
	cycle := models.TemplateCycle{rotatest.Week(models.DayTemplate{
		Morning:   []models.ShiftSlot{{GroupID: 0, LocalID: math.MaxInt}},
		Afternoon: []models.ShiftSlot{{GroupID: 0, LocalID: 0}},
	})}

	weeks, err := NewScheduler(reg, cycle).Generate(2, 1)
	require.NoError(t, err)
	ref := weeks[0].Days[models.Monday].Morning[0]
	assert.GreaterOrEqual(t, ref.Index, 0)
	assert.Less(t, ref.Index, 2)
	assert.NotPanics(t, func() { FairnessScore(reg, weeks) })
}

func TestAssignDay_EmptyMorning(t *testing.T) {
	reg := rotatest.SampleRegistry()
	day, err := AssignDay(rotatest.Day("", "a1 b2"), models.Tuesday, reg, 1)
	require.NoError(t, err)

	assert.NotNil(t, day.Morning)
	assert.Empty(t, day.Morning)
	assert.Equal(t, models.Tuesday, day.Weekday)
	assert.Equal(t, []models.StaffRef{{GroupID: 0, Index: 2}, {GroupID: 1, Index: 3}}, day.Afternoon)
}

func TestAssignWeek_SameDeltaForEverySlot(t *testing.T) {
	reg := rotatest.SampleRegistry()
	week := rotatest.SampleCycle()[0]

	days, err := AssignWeek(&week, reg, 4)
	require.NoError(t, err)

	for d := range week.Days {
		for i, s := range week.Days[d].Morning {
			assert.Equal(t, (s.LocalID+4)%6, days[d].Morning[i].Index)
		}
		for i, s := range week.Days[d].Afternoon {
			assert.Equal(t, (s.LocalID+4)%6, days[d].Afternoon[i].Index)
		}
	}
}

func TestAssignWeek_FirstFailureAborts(t *testing.T) {
	reg := rotatest.SampleRegistry()
	week := rotatest.Week(
		rotatest.Day("a0", "b1"),
		rotatest.Day("", "c1"),
		rotatest.Day("c0", ""),
	)

	days, err := AssignWeek(&week, reg, 0)
	require.Error(t, err)
	assert.Equal(t, [models.DaysPerWeek]models.DecidedDay{}, days)

	var ae *AssignError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, models.SlotLocation{Day: models.Tuesday, Period: models.Afternoon, Position: 0}, ae.Location)
	assert.ErrorIs(t, err, models.ErrGroupIDOutOfRange)
}

func TestGenerate_Scenario(t *testing.T) {
	reg := rotatest.SampleRegistry()
	s := NewScheduler(reg, rotatest.SampleCycle())

	weeks, err := s.Generate(25, 5)
	require.NoError(t, err)
	require.Len(t, weeks, 5)

	first := weeks[0]
	assert.Equal(t, 25, first.Week)
	assert.Equal(t, 1, first.TemplateIndex)
	assert.Equal(t, 12, first.Delta)

	// template 1 puts slot a0 on Tuesday afternoon
	ref := first.Days[models.Tuesday].Afternoon[0]
	assert.Equal(t, models.StaffRef{GroupID: 0, Index: 0}, ref)
	m, err := reg.Member(ref)
	require.NoError(t, err)
	assert.Equal(t, "a0", m.Name)

	for i, w := range weeks {
		assert.Equal(t, 25+i, w.Week)
		assert.Equal(t, (25+i)%2, w.TemplateIndex)
		assert.Equal(t, (25+i)/2, w.Delta)
	}
}

func TestGenerate_Periodicity(t *testing.T) {
	reg := rotatest.Registry(6, 4)
	cycle := models.TemplateCycle{
		rotatest.Week(rotatest.Day("a0 b1", "a3")),
		rotatest.Week(rotatest.Day("b0", "a5 b3")),
		rotatest.Week(rotatest.Day("a2", "")),
	}
	s := NewScheduler(reg, cycle)
	sizes := reg.GroupSizes()
	const c = 3

	for _, start := range []int{0, 1, 7} {
		base, err := s.Generate(start, 6)
		require.NoError(t, err)
		for k := 1; k <= 4; k++ {
			shifted, err := s.Generate(start+k*c, 6)
			require.NoError(t, err)
			for i := range base {
				assert.Equal(t, base[i].TemplateIndex, shifted[i].TemplateIndex)
				assert.Equal(t, base[i].Delta+k, shifted[i].Delta)
				for d := range base[i].Days {
					for j, ref := range base[i].Days[d].Morning {
						got := shifted[i].Days[d].Morning[j]
						n := sizes[ref.GroupID]
						assert.Equal(t, (ref.Index+k)%n, got.Index)
					}
					for j, ref := range base[i].Days[d].Afternoon {
						got := shifted[i].Days[d].Afternoon[j]
						n := sizes[ref.GroupID]
						assert.Equal(t, (ref.Index+k)%n, got.Index)
					}
				}
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	s := NewScheduler(rotatest.SampleRegistry(), rotatest.SampleCycle())

	a, err := s.Generate(3, 10)
	require.NoError(t, err)
	b, err := s.Generate(3, 10)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Generate is not deterministic (-first +second):\n%s", diff)
	}
}

func TestGenerate_DoesNotMutateInputs(t *testing.T) {
	reg := rotatest.SampleRegistry()
	cycle := rotatest.SampleCycle()
	s := NewScheduler(reg, cycle)

	_, err := s.Generate(0, 8)
	require.NoError(t, err)

	if diff := cmp.Diff(rotatest.SampleRegistry(), reg); diff != "" {
		t.Errorf("registry changed:\n%s", diff)
	}
	if diff := cmp.Diff(rotatest.SampleCycle(), cycle); diff != "" {
		t.Errorf("cycle changed:\n%s", diff)
	}
}

func TestGenerate_Errors(t *testing.T) {
	reg := rotatest.SampleRegistry()

	_, err := NewScheduler(reg, nil).Generate(0, 1)
	assert.ErrorIs(t, err, models.ErrEmptyCycle)

	s := NewScheduler(reg, rotatest.SampleCycle())
	_, err = s.Generate(-1, 1)
	assert.ErrorIs(t, err, models.ErrNegativeWeek)
	_, err = s.Generate(0, -1)
	assert.ErrorIs(t, err, models.ErrNegativeWeek)

	weeks, err := s.Generate(4, 0)
	require.NoError(t, err)
	assert.Empty(t, weeks)

	_, err = s.Generate(math.MaxInt, 2)
	assert.ErrorIs(t, err, models.ErrWeekOverflow)
	_, err = NewScheduler(reg, append(rotatest.SampleCycle(), rotatest.Week())).Generate(math.MaxInt-1, 3)
	assert.ErrorIs(t, err, models.ErrWeekOverflow)

	// the last representable week still generates
	weeks, err = s.Generate(math.MaxInt, 1)
	require.NoError(t, err)
	require.Len(t, weeks, 1)
	assert.Equal(t, math.MaxInt%2, weeks[0].TemplateIndex)

	_, err = NewScheduler(nil, rotatest.SampleCycle()).Generate(0, 1)
	assert.ErrorIs(t, err, models.ErrMissingRegistry)

	bad := NewScheduler(reg, models.TemplateCycle{
		rotatest.Week(),
		rotatest.Week(rotatest.Day("", ""), rotatest.Day("c0", "")),
	})
	_, err = bad.Generate(0, 2)
	require.Error(t, err)
	var ae *AssignError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, 1, ae.Location.Week)
	assert.Equal(t, models.Tuesday, ae.Location.Day)
}

func TestTemplateFor(t *testing.T) {
	s := NewScheduler(rotatest.SampleRegistry(), rotatest.SampleCycle())
	index, delta, err := s.TemplateFor(25)
	require.NoError(t, err)
	assert.Equal(t, 1, index)
	assert.Equal(t, 12, delta)

	_, _, err = s.TemplateFor(-1)
	assert.ErrorIs(t, err, models.ErrNegativeWeek)

	_, _, err = NewScheduler(rotatest.SampleRegistry(), nil).TemplateFor(3)
	assert.ErrorIs(t, err, models.ErrEmptyCycle)
}

func TestAssignmentCounts_IgnoresForeignRefs(t *testing.T) {
	reg := rotatest.Registry(2)
	weeks := []models.DecidedWeek{{}}
	weeks[0].Days[0].Morning = []models.StaffRef{{GroupID: 0, Index: -1}, {GroupID: -1, Index: 0}, {GroupID: 0, Index: 1}}

	assert.Equal(t, [][]int{{0, 1}}, AssignmentCounts(reg, weeks))
}

func TestFairnessScore(t *testing.T) {
	reg := rotatest.SampleRegistry()
	s := NewScheduler(reg, rotatest.SampleCycle())

	// one full cycle reaches every member twice
	weeks, err := s.Generate(0, 2)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, FairnessScore(reg, weeks), 1e-9)

	counts := AssignmentCounts(reg, weeks)
	for _, g := range counts {
		for _, c := range g {
			assert.Equal(t, 2, c)
		}
	}

	assert.Equal(t, 100.0, FairnessScore(reg, nil))

	lopsided := NewScheduler(reg, models.TemplateCycle{rotatest.Week(rotatest.Day("a0", ""))})
	weeks, err = lopsided.Generate(0, 1)
	require.NoError(t, err)
	assert.Less(t, FairnessScore(reg, weeks), 100.0)
}
