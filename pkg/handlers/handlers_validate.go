package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/rotation-api-go/pkg/models"
	"github.com/arnavshah/rotation-api-go/pkg/planfile"
	"github.com/arnavshah/rotation-api-go/pkg/rules"
)

// checkers returns the checks requested by the plan, or range and coverage
func checkers(f *planfile.File) []rules.Checker {
	if f.Checks != nil {
		return rules.DefaultCheckers(*f.Checks)
	}
	return rules.DefaultCheckers(rules.Options{})
}

// kindOf maps an error to the machine readable kind reported to clients
func kindOf(err error) string {
	switch {
	case errors.Is(err, models.ErrGroupIDOutOfRange):
		return "group_id_out_of_range"
	case errors.Is(err, models.ErrEmptyGroup):
		return "empty_group"
	case errors.Is(err, models.ErrStaffIDOutOfRange):
		return "staff_id_out_of_range"
	case errors.Is(err, rules.ErrUnassignedStaff):
		return "unassigned_staff"
	case errors.Is(err, rules.ErrDuplicateSlot):
		return "duplicate_slot"
	case errors.Is(err, rules.ErrAmPmMismatch):
		return "am_pm_mismatch"
	case errors.Is(err, models.ErrEmptyCycle), errors.Is(err, models.ErrNegativeWeek), errors.Is(err, models.ErrWeekOverflow):
		return "bad_request"
	}
	return "invalid_plan"
}

// describe renders one failure with the structured details a client needs to
// fix the template
func describe(checker string, err error) gin.H {
	out := gin.H{
		"kind":    kindOf(err),
		"message": err.Error(),
	}
	if checker != "" {
		out["checker"] = checker
	}

	var (
		re *rules.RangeError
		ue *rules.UnassignedStaffError
		de *rules.DuplicateSlotError
		me *rules.AmPmMismatchError
	)
	switch {
	case errors.As(err, &re):
		out["location"] = re.Location
		out["slot"] = re.Slot
		out["bound"] = re.Bound
	case errors.As(err, &ue):
		out["staff"] = ue.Staff
	case errors.As(err, &de):
		out["duplicates"] = de.Duplicates
	case errors.As(err, &me):
		out["target"] = rules.BalanceTarget{Morning: me.TargetMorning, Afternoon: me.TargetAfternoon}
		out["mismatches"] = me.Mismatches
	}
	return out
}

// validationErrors flattens a Verify/VerifyAll error into response entries
func validationErrors(err error) []gin.H {
	var report *rules.Report
	if errors.As(err, &report) {
		out := make([]gin.H, 0, len(report.Failures))
		for _, f := range report.Failures {
			out = append(out, describe(f.Checker, f.Err))
		}
		return out
	}
	var f *rules.Failure
	if errors.As(err, &f) {
		return []gin.H{describe(f.Checker, f.Err)}
	}
	return []gin.H{describe("", err)}
}

// ValidatePlan runs every requested check and reports all failures
func (h *Handler) ValidatePlan(c *gin.Context) {
	var input planfile.File
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	plan, err := input.Plan()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"valid":  false,
			"errors": validationErrors(err),
		})
		return
	}

	if _, err := rules.VerifyAll(plan, checkers(&input)...); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"valid":  false,
			"errors": validationErrors(err),
		})
		return
	}

	staff := 0
	for _, n := range plan.Registry.GroupSizes() {
		staff += n
	}
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"group_count":  len(plan.Registry.Groups),
			"staff_count":  staff,
			"cycle_length": len(plan.Cycle),
		},
	})
}
