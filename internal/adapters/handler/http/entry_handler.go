package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cadenceapp/cadence/internal/adapters/handler/http/middleware"
	"github.com/cadenceapp/cadence/internal/core/domain"
	"github.com/cadenceapp/cadence/internal/core/services"
)

type EntryHandler struct {
	svc *services.EntryService
}

func NewEntryHandler(svc *services.EntryService) *EntryHandler {
	return &EntryHandler{svc: svc}
}

type metricValueRequest struct {
	MetricID string  `json:"metric_id" binding:"required"`
	Value    float64 `json:"value"`
}

type createEntryRequest struct {
	ActivityID string               `json:"activity_id" binding:"required"`
	LoggedAt   time.Time            `json:"logged_at"`
	Notes      string               `json:"notes"`
	Values     []metricValueRequest `json:"values"`
}

type updateEntryRequest struct {
	Notes   string               `json:"notes"`
	Values  []metricValueRequest `json:"values"`
	Version int                  `json:"version" binding:"required"`
}

func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/entries")
	{
		entries.POST("", h.Create)
		entries.GET("", h.List)
		entries.GET("/:id", h.Get)
		entries.PUT("/:id", h.Update)
		entries.DELETE("/:id", h.Delete)
	}
}

func valueInputs(in []metricValueRequest) []services.MetricValueInput {
	out := make([]services.MetricValueInput, 0, len(in))
	for _, v := range in {
		out = append(out, services.MetricValueInput{MetricID: v.MetricID, Value: v.Value})
	}
	return out
}

func (h *EntryHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loggedAt := req.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = time.Now().UTC()
	}

	entry, err := h.svc.Create(c.Request.Context(), services.CreateEntryInput{
		ActivityID: req.ActivityID,
		UserID:     userID,
		LoggedAt:   loggedAt,
		Notes:      req.Notes,
		Values:     valueInputs(req.Values),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrActivityNotFound), errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *EntryHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	scope := domain.EntryScope{
		UserID:     userID,
		ActivityID: c.Query("activity_id"),
		CategoryID: c.Query("category_id"),
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
			return
		}
		scope.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
			return
		}
		scope.To = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	list, err := h.svc.List(c.Request.Context(), scope)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrActivityNotFound), errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *EntryHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	entry, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.svc.Update(c.Request.Context(), services.UpdateEntryInput{
		ID:      c.Param("id"),
		UserID:  userID,
		Notes:   req.Notes,
		Values:  valueInputs(req.Values),
		Version: req.Version,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEntryConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "version conflict",
				"message": "Data has been modified elsewhere. Refresh and retry.",
			})
		case errors.Is(err, domain.ErrEntryNotFound), errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}
