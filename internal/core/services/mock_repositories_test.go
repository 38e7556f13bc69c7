package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/cadenceapp/cadence/internal/core/domain"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockCategoryRepo struct{ mock.Mock }

func (m *MockCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	return m.Called(ctx, category).Error(0)
}
func (m *MockCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}
func (m *MockCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	return m.Called(ctx, category).Error(0)
}
func (m *MockCategoryRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockActivityRepo struct{ mock.Mock }

func (m *MockActivityRepo) Create(ctx context.Context, activity *domain.Activity) error {
	return m.Called(ctx, activity).Error(0)
}
func (m *MockActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}
func (m *MockActivityRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Activity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Activity), args.Error(1)
}
func (m *MockActivityRepo) Update(ctx context.Context, activity *domain.Activity) error {
	return m.Called(ctx, activity).Error(0)
}
func (m *MockActivityRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockActivityRepo) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	return m.Called(ctx, id, current, longest).Error(0)
}

type MockMetricRepo struct{ mock.Mock }

func (m *MockMetricRepo) Create(ctx context.Context, metric *domain.Metric) error {
	return m.Called(ctx, metric).Error(0)
}
func (m *MockMetricRepo) GetByID(ctx context.Context, id string) (*domain.Metric, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Metric), args.Error(1)
}
func (m *MockMetricRepo) ListByActivityID(ctx context.Context, activityID string) ([]*domain.Metric, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Metric), args.Error(1)
}
func (m *MockMetricRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockEntryRepo struct{ mock.Mock }

func (m *MockEntryRepo) Create(ctx context.Context, entry *domain.ProgressEntry) error {
	return m.Called(ctx, entry).Error(0)
}
func (m *MockEntryRepo) GetByID(ctx context.Context, id string) (*domain.ProgressEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressEntry), args.Error(1)
}
func (m *MockEntryRepo) Update(ctx context.Context, entry *domain.ProgressEntry) error {
	return m.Called(ctx, entry).Error(0)
}
func (m *MockEntryRepo) Delete(ctx context.Context, id string, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}
func (m *MockEntryRepo) List(ctx context.Context, scope domain.EntryScope) ([]*domain.ProgressEntry, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ProgressEntry), args.Error(1)
}
func (m *MockEntryRepo) EntryTimestamps(ctx context.Context, scope domain.EntryScope) ([]time.Time, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}
func (m *MockEntryRepo) Facts(ctx context.Context, scope domain.EntryScope) (domain.EntryFacts, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(domain.EntryFacts), args.Error(1)
}
func (m *MockEntryRepo) SumMetricInRange(ctx context.Context, metricID string, from, to time.Time) (float64, error) {
	args := m.Called(ctx, metricID, from, to)
	return args.Get(0).(float64), args.Error(1)
}

type MockGoalRepo struct{ mock.Mock }

func (m *MockGoalRepo) Create(ctx context.Context, goal *domain.Goal) error {
	return m.Called(ctx, goal).Error(0)
}
func (m *MockGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}
func (m *MockGoalRepo) ListByUserID(ctx context.Context, userID string, activeOnly bool) ([]*domain.Goal, error) {
	args := m.Called(ctx, userID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Goal), args.Error(1)
}
func (m *MockGoalRepo) Update(ctx context.Context, goal *domain.Goal) error {
	return m.Called(ctx, goal).Error(0)
}
func (m *MockGoalRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockGroupRepo struct{ mock.Mock }

func (m *MockGroupRepo) Create(ctx context.Context, group *domain.Group) error {
	return m.Called(ctx, group).Error(0)
}
func (m *MockGroupRepo) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}
func (m *MockGroupRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Group, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Group), args.Error(1)
}
func (m *MockGroupRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockGroupRepo) AddMember(ctx context.Context, groupID, userID string) error {
	return m.Called(ctx, groupID, userID).Error(0)
}
func (m *MockGroupRepo) RemoveMember(ctx context.Context, groupID, userID string) error {
	return m.Called(ctx, groupID, userID).Error(0)
}
func (m *MockGroupRepo) ListMembers(ctx context.Context, groupID string) ([]*domain.GroupMember, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GroupMember), args.Error(1)
}
func (m *MockGroupRepo) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}
