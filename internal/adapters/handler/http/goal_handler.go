package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cadenceapp/cadence/internal/adapters/handler/http/middleware"
	"github.com/cadenceapp/cadence/internal/core/domain"
	"github.com/cadenceapp/cadence/internal/core/services"
	"github.com/cadenceapp/cadence/internal/core/stats"
)

type GoalHandler struct {
	svc *services.GoalService
}

func NewGoalHandler(svc *services.GoalService) *GoalHandler {
	return &GoalHandler{svc: svc}
}

type createGoalRequest struct {
	ActivityID string  `json:"activity_id" binding:"required"`
	MetricID   string  `json:"metric_id" binding:"required"`
	Title      string  `json:"title" binding:"required"`
	Target     float64 `json:"target" binding:"required"`
	Period     string  `json:"period" binding:"required"`
	StartDate  string  `json:"start_date" binding:"required"`
	EndDate    string  `json:"end_date"`
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.POST("", h.Create)
		goals.GET("", h.List)
		goals.GET("/:id/progress", h.Progress)
		goals.POST("/:id/deactivate", h.Deactivate)
		goals.DELETE("/:id", h.Delete)
	}
}

func (h *GoalHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.svc.Create(c.Request.Context(), services.CreateGoalInput{
		UserID:     userID,
		ActivityID: req.ActivityID,
		MetricID:   req.MetricID,
		Title:      req.Title,
		Target:     req.Target,
		Period:     stats.Period(req.Period),
		StartDate:  stats.DateKey(req.StartDate),
		EndDate:    stats.DateKey(req.EndDate),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrActivityNotFound), errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
		case errors.Is(err, domain.ErrGoalInvalidPeriod),
			errors.Is(err, domain.ErrGoalInvalidTarget),
			errors.Is(err, domain.ErrGoalInvalidWindow),
			errors.Is(err, domain.ErrGoalMissingEnd):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	activeOnly := c.Query("active") == "true"

	list, err := h.svc.ListByUserID(c.Request.Context(), userID, activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *GoalHandler) Progress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	report, err := h.svc.Progress(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *GoalHandler) Deactivate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	err := h.svc.Deactivate(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusOK)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}
