package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arnavshah/rotation-api-go/pkg/database"
	"github.com/arnavshah/rotation-api-go/pkg/planfile"
	"github.com/arnavshah/rotation-api-go/pkg/rules"
)

// SavePlanRequest stores a named template under the caller's key
type SavePlanRequest struct {
	Name string        `json:"name"`
	Plan planfile.File `json:"plan"`
}

// SavePlan validates a plan with every requested check and stores it
func (h *Handler) SavePlan(c *gin.Context) {
	apiKey, ok := currentKey(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}

	var req SavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	plan, err := req.Plan.Plan()
	if err == nil {
		_, err = rules.VerifyAll(plan, checkers(&req.Plan)...)
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "plan failed validation",
			"errors": validationErrors(err),
		})
		return
	}

	body, err := json.Marshal(req.Plan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not encode plan"})
		return
	}

	saved := database.SavedPlan{
		PublicID: uuid.NewString(),
		KeyID:    apiKey.ID,
		Name:     req.Name,
		Weeks:    len(plan.Cycle),
		Body:     string(body),
	}
	if err := h.DB.Create(&saved).Error; err != nil {
		h.Log.Error("saving plan", zap.String("name", req.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save plan"})
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// ListPlans returns the plans stored under the caller's key
func (h *Handler) ListPlans(c *gin.Context) {
	apiKey, ok := currentKey(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}

	var plans []database.SavedPlan
	if err := h.DB.Where("key_id = ?", apiKey.ID).Order("created_at desc").Find(&plans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// PlanRoster generates weeks from a stored plan
// (query: week_start, week_count; defaults 0 and the cycle length)
func (h *Handler) PlanRoster(c *gin.Context) {
	apiKey, ok := currentKey(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}

	var saved database.SavedPlan
	err = h.DB.Where("public_id = ? AND key_id = ?", id.String(), apiKey.ID).First(&saved).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load plan"})
		return
	}

	var f planfile.File
	if err := json.Unmarshal([]byte(saved.Body), &f); err != nil {
		h.Log.Error("decoding stored plan", zap.String("plan", saved.PublicID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored plan is corrupt"})
		return
	}

	weekStart, err := strconv.Atoi(c.DefaultQuery("week_start", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_start must be an integer"})
		return
	}
	weekCount, err := strconv.Atoi(c.DefaultQuery("week_count", strconv.Itoa(saved.Weeks)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_count must be an integer"})
		return
	}

	resp, err := buildRoster(&f, weekStart, weekCount)
	if err != nil {
		h.respondRosterError(c, err)
		return
	}

	h.RecordUsage(c, weekCount, staffCount(&f))
	c.JSON(http.StatusOK, gin.H{"plan": saved, "roster": resp})
}
