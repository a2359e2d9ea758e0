package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arnavshah/rotation-api-go/pkg/database"
)

// UsageDays is how many daily usage rows a summary covers
const UsageDays = 30

// UsageTotals sums the daily rows of a summary
type UsageTotals struct {
	Requests int64 `json:"requests"`
	Weeks    int64 `json:"weeks"`
	Staff    int64 `json:"staff"`
}

// UsageSummary is the usage of one key over its most recent days
type UsageSummary struct {
	KeyID     uint                `json:"key_id"`
	KeyName   string              `json:"key_name"`
	RateLimit int                 `json:"rate_limit"`
	History   []database.APIUsage `json:"usage_history"`
	Totals    UsageTotals         `json:"totals"`
}

func (h *Handler) usageSummary(key *database.APIKey) (*UsageSummary, error) {
	var rows []database.APIUsage
	if err := h.DB.Where("key_id = ?", key.ID).Order("date desc").Limit(UsageDays).Find(&rows).Error; err != nil {
		return nil, err
	}
	sum := &UsageSummary{
		KeyID:     key.ID,
		KeyName:   key.Name,
		RateLimit: key.RateLimit,
		History:   rows,
	}
	for _, r := range rows {
		sum.Totals.Requests += int64(r.RequestCount)
		sum.Totals.Weeks += int64(r.TotalWeeks)
		sum.Totals.Staff += int64(r.TotalStaff)
	}
	return sum, nil
}

func (h *Handler) respondUsage(c *gin.Context, key *database.APIKey) {
	sum, err := h.usageSummary(key)
	if err != nil {
		h.Log.Error("loading usage", zap.Uint("key_id", key.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage details"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

// GetMyUsage returns the usage summary of the calling key
func (h *Handler) GetMyUsage(c *gin.Context) {
	key, ok := currentKey(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}
	h.respondUsage(c, key)
}
