// Package rules checks a rotation plan for structural problems before any
// roster is generated from it.
//
// Checkers only ever look at unassigned templates. Verify stops at the first
// failing checker; VerifyAll runs every checker and returns a Report.
package rules

import (
	"fmt"
	"strings"

	"github.com/arnavshah/rotation-api-go/pkg/models"
)

// ErrMissingRegistry indicates a plan without a staff registry.
var ErrMissingRegistry = models.ErrMissingRegistry

// Checker evaluates a plan and returns nil or a structured error
type Checker interface {
	Name() string
	Check(plan models.RotationPlan) error
}

type checkFunc struct {
	name string
	fn   func(models.RotationPlan) error
}

func (c checkFunc) Name() string { return c.name }
func (c checkFunc) Check(plan models.RotationPlan) error { return c.fn(plan) }

// Named wraps a plain function as a Checker
func Named(name string, fn func(models.RotationPlan) error) Checker {
	return checkFunc{name: name, fn: fn}
}

// Verify runs the checkers in order and returns the first failure. On
// success the plan is returned unchanged.
func Verify(plan models.RotationPlan, checkers ...Checker) (models.RotationPlan, error) {
	if plan.Registry == nil {
		return plan, ErrMissingRegistry
	}
	for _, c := range checkers {
		if err := c.Check(plan); err != nil {
			return plan, &Failure{Checker: c.Name(), Err: err}
		}
	}
	return plan, nil
}

// VerifyAll runs every checker and collects all failures into a *Report
func VerifyAll(plan models.RotationPlan, checkers ...Checker) (models.RotationPlan, error) {
	if plan.Registry == nil {
		return plan, ErrMissingRegistry
	}
	report := &Report{}
	for _, c := range checkers {
		if err := c.Check(plan); err != nil {
			report.Failures = append(report.Failures, &Failure{Checker: c.Name(), Err: err})
		}
	}
	if len(report.Failures) == 0 {
		return plan, nil
	}
	return plan, report
}

// Failure ties an error to the checker that produced it
type Failure struct {
	Checker string
	Err     error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s check: %v", f.Checker, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Report is the aggregate result of VerifyAll
type Report struct {
	Failures []*Failure
}

func (r *Report) Error() string {
	msgs := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("%d check(s) failed: %s", len(r.Failures), strings.Join(msgs, "; "))
}

func (r *Report) Unwrap() []error {
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errs
}

// BalanceTarget is the number of morning and afternoon slots every member
// must cover over one full cycle
type BalanceTarget struct {
	Morning   int `json:"morning" yaml:"morning" toml:"morning"`
	Afternoon int `json:"afternoon" yaml:"afternoon" toml:"afternoon"`
}

// Options selects the checkers DefaultCheckers returns
type Options struct {
	// Strict requires every local id to be below its group size.
	Strict bool `json:"strict" yaml:"strict" toml:"strict"`
	// Duplicates enables DuplicateSlotCheck.
	Duplicates bool `json:"duplicates" yaml:"duplicates" toml:"duplicates"`
	// Balance enables AmPmBalanceCheck when set.
	Balance *BalanceTarget `json:"balance,omitempty" yaml:"balance,omitempty" toml:"balance,omitempty"`
}

// DefaultCheckers returns range and coverage checks plus the optional ones
func DefaultCheckers(opts Options) []Checker {
	checkers := []Checker{
		RangeCheck{Strict: opts.Strict},
		CoverageCheck{},
	}
	if opts.Duplicates {
		checkers = append(checkers, DuplicateSlotCheck{})
	}
	if opts.Balance != nil {
		checkers = append(checkers, AmPmBalanceCheck{
			TargetMorning:   opts.Balance.Morning,
			TargetAfternoon: opts.Balance.Afternoon,
		})
	}
	return checkers
}
