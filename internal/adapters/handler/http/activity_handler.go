package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cadenceapp/cadence/internal/adapters/handler/http/middleware"
	"github.com/cadenceapp/cadence/internal/core/domain"
	"github.com/cadenceapp/cadence/internal/core/services"
)

type ActivityHandler struct {
	svc *services.ActivityService
}

func NewActivityHandler(svc *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

type createActivityRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
	Unit        string `json:"unit"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

type updateActivityRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Version     int    `json:"version" binding:"required"`
}

type addMetricRequest struct {
	Name        string `json:"name" binding:"required"`
	Unit        string `json:"unit"`
	Aggregation string `json:"aggregation"`
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	activities := router.Group("/activities")
	{
		activities.POST("", h.Create)
		activities.GET("", h.List)
		activities.GET("/:id", h.Get)
		activities.PUT("/:id", h.Update)
		activities.DELETE("/:id", h.Delete)

		activities.POST("/:id/metrics", h.AddMetric)
		activities.GET("/:id/metrics", h.ListMetrics)
	}
}

func (h *ActivityHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity, err := h.svc.Create(c.Request.Context(), services.CreateActivityInput{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Unit:        req.Unit,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrActivityTitleEmpty),
			errors.Is(err, domain.ErrActivityTitleTooLong),
			errors.Is(err, domain.ErrActivityDescTooLong),
			errors.Is(err, domain.ErrInvalidColor):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrCategoryNotFound), errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, activity)
}

func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *ActivityHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	activity, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, activity)
}

func (h *ActivityHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req updateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.svc.Update(c.Request.Context(), services.UpdateActivityInput{
		ID:          c.Param("id"),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Unit:        req.Unit,
		Color:       req.Color,
		Icon:        req.Icon,
		Version:     req.Version,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrActivityConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "version conflict",
				"message": "Data has been modified elsewhere. Refresh and retry.",
			})
		case errors.Is(err, domain.ErrActivityNotFound), errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
		case errors.Is(err, domain.ErrInvalidColor),
			errors.Is(err, domain.ErrActivityTitleEmpty),
			errors.Is(err, domain.ErrActivityTitleTooLong),
			errors.Is(err, domain.ErrActivityArchived):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.Status(http.StatusOK)
}

func (h *ActivityHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ActivityHandler) AddMetric(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req addMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metric, err := h.svc.AddMetric(c.Request.Context(), c.Param("id"), userID, req.Name, req.Unit, req.Aggregation)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrActivityNotFound), errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
		case errors.Is(err, domain.ErrMetricNameEmpty), errors.Is(err, domain.ErrInvalidAggregation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, metric)
}

func (h *ActivityHandler) ListMetrics(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	metrics, err := h.svc.ListMetrics(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, metrics)
}
