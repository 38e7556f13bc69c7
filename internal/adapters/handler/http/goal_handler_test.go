package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cadenceapp/cadence/internal/core/domain"
	"github.com/cadenceapp/cadence/internal/core/services"
	"github.com/cadenceapp/cadence/internal/core/stats"
)

func setupGoalRouter() (*gin.Engine, *MockGoalRepo, *MockActivityRepo, *MockEntryRepo, *MockUserRepo) {
	gin.SetMode(gin.TestMode)

	goalRepo := new(MockGoalRepo)
	activityRepo := new(MockActivityRepo)
	entryRepo := new(MockEntryRepo)
	userRepo := new(MockUserRepo)

	svc := services.NewGoalService(goalRepo, activityRepo, entryRepo, userRepo)
	handler := NewGoalHandler(svc)

	r := gin.New()
	r.Use(fakeAuth())
	handler.RegisterRoutes(r.Group("/api/v1"))

	return r, goalRepo, activityRepo, entryRepo, userRepo
}

func TestGoalHandler_Create(t *testing.T) {
	t.Run("Success: Should return 201 with derived end date", func(t *testing.T) {
		r, goalRepo, activityRepo, _, _ := setupGoalRouter()

		activityRepo.On("GetByID", mock.Anything, "act-1").
			Return(&domain.Activity{ID: "act-1", UserID: "user-1"}, nil)
		goalRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Goal")).Return(nil)

		payload := gin.H{
			"activity_id": "act-1",
			"metric_id":   "metric-1",
			"title":       "January distance",
			"target":      100,
			"period":      "MONTHLY",
			"start_date":  "2025-01-01",
		}
		body, _ := json.Marshal(payload)

		req, _ := http.NewRequest(http.MethodPost, "/api/v1/goals", bytes.NewBuffer(body))
		req.Header.Set("X-User-ID", "user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var created domain.Goal
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, stats.DateKey("2025-01-31"), created.EndDate)
		assert.True(t, created.IsActive)
	})

	t.Run("Fail: Should return 400 for unknown period", func(t *testing.T) {
		r, goalRepo, activityRepo, _, _ := setupGoalRouter()

		activityRepo.On("GetByID", mock.Anything, "act-1").
			Return(&domain.Activity{ID: "act-1", UserID: "user-1"}, nil)

		payload := gin.H{
			"activity_id": "act-1",
			"metric_id":   "metric-1",
			"title":       "Bad period",
			"target":      100,
			"period":      "FORTNIGHTLY",
			"start_date":  "2025-01-01",
		}
		body, _ := json.Marshal(payload)

		req, _ := http.NewRequest(http.MethodPost, "/api/v1/goals", bytes.NewBuffer(body))
		req.Header.Set("X-User-ID", "user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		goalRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return 400 for TOTAL goal without end date", func(t *testing.T) {
		r, goalRepo, activityRepo, _, _ := setupGoalRouter()

		activityRepo.On("GetByID", mock.Anything, "act-1").
			Return(&domain.Activity{ID: "act-1", UserID: "user-1"}, nil)

		payload := gin.H{
			"activity_id": "act-1",
			"metric_id":   "metric-1",
			"title":       "Open ended",
			"target":      500,
			"period":      "TOTAL",
			"start_date":  "2025-01-01",
		}
		body, _ := json.Marshal(payload)

		req, _ := http.NewRequest(http.MethodPost, "/api/v1/goals", bytes.NewBuffer(body))
		req.Header.Set("X-User-ID", "user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		goalRepo.AssertNotCalled(t, "Create")
	})
}

func TestGoalHandler_Progress(t *testing.T) {
	t.Run("Success: Should return progress percentages", func(t *testing.T) {
		r, goalRepo, _, entryRepo, userRepo := setupGoalRouter()

		user, err := domain.NewUser("user-1", "goals@cadence.app", "UTC")
		require.NoError(t, err)

		today := time.Now().UTC()
		start := stats.ToDateKey(today.AddDate(0, 0, -10), time.UTC)
		end := stats.ToDateKey(today.AddDate(0, 0, 10), time.UTC)

		goal := &domain.Goal{
			ID:           "goal-1",
			UserID:       "user-1",
			ActivityID:   "act-1",
			MetricID:     "metric-1",
			Title:        "Total pages",
			TargetValue:  100,
			TargetPeriod: stats.PeriodTotal,
			StartDate:    start,
			EndDate:      end,
			IsActive:     true,
		}

		goalRepo.On("GetByID", mock.Anything, "goal-1").Return(goal, nil)
		userRepo.On("GetByID", mock.Anything, "user-1").Return(user, nil)
		entryRepo.On("SumMetricInRange", mock.Anything, "metric-1", mock.Anything, mock.Anything).
			Return(45.0, nil)

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/goals/goal-1/progress", nil)
		req.Header.Set("X-User-ID", "user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var report domain.GoalProgressReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, 45.0, report.CurrentProgress)
		assert.InDelta(t, 45.0, report.Progress.PercentageComplete, 0.001)
	})

	t.Run("Fail: Should return 404 for someone else's goal", func(t *testing.T) {
		r, goalRepo, _, _, _ := setupGoalRouter()

		goalRepo.On("GetByID", mock.Anything, "goal-1").
			Return(&domain.Goal{ID: "goal-1", UserID: "someone-else"}, nil)

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/goals/goal-1/progress", nil)
		req.Header.Set("X-User-ID", "user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGoalHandler_List(t *testing.T) {
	t.Run("Success: Should forward active filter", func(t *testing.T) {
		r, goalRepo, _, _, _ := setupGoalRouter()

		goalRepo.On("ListByUserID", mock.Anything, "user-1", true).
			Return([]*domain.Goal{}, nil)

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/goals?active=true", nil)
		req.Header.Set("X-User-ID", "user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		goalRepo.AssertExpectations(t)
	})
}

func TestGoalHandler_Deactivate(t *testing.T) {
	t.Run("Success: Should return 200 and persist the flag", func(t *testing.T) {
		r, goalRepo, _, _, _ := setupGoalRouter()

		goal := &domain.Goal{ID: "goal-1", UserID: "user-1", IsActive: true}

		goalRepo.On("GetByID", mock.Anything, "goal-1").Return(goal, nil)
		goalRepo.On("Update", mock.Anything, mock.MatchedBy(func(g *domain.Goal) bool {
			return !g.IsActive
		})).Return(nil)

		req, _ := http.NewRequest(http.MethodPost, "/api/v1/goals/goal-1/deactivate", nil)
		req.Header.Set("X-User-ID", "user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, fmt.Sprintf("body: %s", w.Body.String()))
		goalRepo.AssertExpectations(t)
	})
}
