package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arnavshah/rotation-api-go/pkg/export"
	"github.com/arnavshah/rotation-api-go/pkg/models"
	"github.com/arnavshah/rotation-api-go/pkg/planfile"
	"github.com/arnavshah/rotation-api-go/pkg/rules"
	"github.com/arnavshah/rotation-api-go/pkg/scheduler"
)

// MaxWeekCount bounds the number of weeks one request may generate
const MaxWeekCount = 520

var errTooManyWeeks = fmt.Errorf("week_count must be at most %d", MaxWeekCount)

// RosterRequest is a plan plus the range of absolute weeks to generate
type RosterRequest struct {
	planfile.File
	WeekStart int `json:"week_start"`
	WeekCount int `json:"week_count"`
}

// invalidPlanError marks failures the client must fix in the template
type invalidPlanError struct{ err error }

func (e *invalidPlanError) Error() string { return e.err.Error() }
func (e *invalidPlanError) Unwrap() error { return e.err }

// buildRoster validates the plan fail-fast and generates the requested weeks
func buildRoster(f *planfile.File, weekStart, weekCount int) (*models.RosterResponse, error) {
	if weekCount > MaxWeekCount {
		return nil, errTooManyWeeks
	}
	plan, err := f.Plan()
	if err != nil {
		return nil, &invalidPlanError{err}
	}
	if _, err := rules.Verify(plan, checkers(f)...); err != nil {
		return nil, &invalidPlanError{err}
	}

	weeks, err := scheduler.NewScheduler(plan.Registry, plan.Cycle).Generate(weekStart, weekCount)
	if err != nil {
		return nil, err
	}

	resp := &models.RosterResponse{
		WeekStart:     weekStart,
		WeekCount:     weekCount,
		CycleLength:   len(plan.Cycle),
		Weeks:         make([]models.RosterWeek, 0, len(weeks)),
		FairnessScore: scheduler.FairnessScore(plan.Registry, weeks),
	}
	for _, w := range weeks {
		rw, err := plan.Registry.ResolveWeek(w)
		if err != nil {
			return nil, err
		}
		resp.Weeks = append(resp.Weeks, rw)
	}
	return resp, nil
}

func staffCount(f *planfile.File) int {
	n := 0
	for _, g := range f.Groups {
		n += len(g.Staff)
	}
	return n
}

// respondRosterError writes the error body for a failed buildRoster
func (h *Handler) respondRosterError(c *gin.Context, err error) {
	var invalid *invalidPlanError
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "plan failed validation",
			"errors": validationErrors(invalid.err),
		})
	case errors.Is(err, models.ErrNegativeWeek), errors.Is(err, models.ErrWeekOverflow), errors.Is(err, errTooManyWeeks):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		// validated plans should always generate
		h.Log.Error("generating roster", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "kind": kindOf(err)})
	}
}

// RosterJSON handles the JSON-based roster request
func (h *Handler) RosterJSON(c *gin.Context) {
	var input RosterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := buildRoster(&input.File, input.WeekStart, input.WeekCount)
	if err != nil {
		h.respondRosterError(c, err)
		return
	}

	h.RecordUsage(c, input.WeekCount, staffCount(&input.File))
	c.JSON(http.StatusOK, resp)
}

// RosterCSV handles the roster request and returns the roster as CSV
func (h *Handler) RosterCSV(c *gin.Context) {
	var input RosterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := buildRoster(&input.File, input.WeekStart, input.WeekCount)
	if err != nil {
		h.respondRosterError(c, err)
		return
	}

	var outCSV strings.Builder
	if err := export.WriteCSV(&outCSV, resp.Weeks); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not render CSV"})
		return
	}

	h.RecordUsage(c, input.WeekCount, staffCount(&input.File))
	c.JSON(http.StatusOK, gin.H{"csv": outCSV.String()})
}
