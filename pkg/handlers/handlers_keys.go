package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arnavshah/rotation-api-go/pkg/database"
)

// DefaultRateLimit applies to keys created without an explicit limit
const DefaultRateLimit = 10000

type createKeyRequest struct {
	Name      string `json:"name" binding:"required"`
	RateLimit int    `json:"rate_limit" binding:"gte=0"`
}

type rateLimitRequest struct {
	RateLimit int `json:"rate_limit" binding:"required,gt=0"`
}

// keyFromParam loads the key named by the :id route parameter, writing a
// 400 or 404 when it cannot
func (h *Handler) keyFromParam(c *gin.Context) (*database.APIKey, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key id must be a positive integer"})
		return nil, false
	}
	var key database.APIKey
	err = h.DB.First(&key, uint(id)).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "key not found"})
		return nil, false
	case err != nil:
		h.Log.Error("loading api key", zap.Uint64("key_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load key"})
		return nil, false
	}
	return &key, true
}

// GenerateKey signs a key for a client name and stores its record. The full
// key is only ever returned here.
func (h *Handler) GenerateKey(c *gin.Context) {
	var req createKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.Contains(req.Name, ".") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must not contain '.'"})
		return
	}
	if req.RateLimit == 0 {
		req.RateLimit = DefaultRateLimit
	}

	secret := h.Auth.GenerateHMACKey(req.Name)
	record := database.APIKey{
		Key:        secret,
		Name:       req.Name,
		KeyPreview: preview(secret),
		RateLimit:  req.RateLimit,
	}
	if err := h.DB.Create(&record).Error; err != nil {
		h.Log.Error("creating api key", zap.String("name", req.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create key record"})
		return
	}
	h.Log.Info("api key created", zap.Uint("key_id", record.ID), zap.String("name", req.Name))

	c.JSON(http.StatusCreated, gin.H{"key": secret, "record": record})
}

// ListKeys returns every key record, oldest first
func (h *Handler) ListKeys(c *gin.Context) {
	var keys []database.APIKey
	if err := h.DB.Order("id").Find(&keys).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list keys"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// RevokeKey deletes a key together with its usage rows and saved plans
func (h *Handler) RevokeKey(c *gin.Context) {
	key, ok := h.keyFromParam(c)
	if !ok {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("key_id = ?", key.ID).Delete(&database.APIUsage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("key_id = ?", key.ID).Delete(&database.SavedPlan{}).Error; err != nil {
			return err
		}
		return tx.Delete(key).Error
	})
	if err != nil {
		h.Log.Error("revoking api key", zap.Uint("key_id", key.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete key"})
		return
	}
	h.Log.Info("api key revoked", zap.Uint("key_id", key.ID), zap.String("name", key.Name))
	c.JSON(http.StatusOK, gin.H{"revoked": key})
}

// UpdateKeyLimit sets a new positive rate limit on a key
func (h *Handler) UpdateKeyLimit(c *gin.Context) {
	var req rateLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rate_limit must be a positive integer"})
		return
	}
	key, ok := h.keyFromParam(c)
	if !ok {
		return
	}

	if err := h.DB.Model(key).Update("rate_limit", req.RateLimit).Error; err != nil {
		h.Log.Error("updating rate limit", zap.Uint("key_id", key.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update key limit"})
		return
	}
	key.RateLimit = req.RateLimit
	c.JSON(http.StatusOK, gin.H{"key": key})
}

// GetUsage returns the usage summary of any key
func (h *Handler) GetUsage(c *gin.Context) {
	key, ok := h.keyFromParam(c)
	if !ok {
		return
	}
	h.respondUsage(c, key)
}
