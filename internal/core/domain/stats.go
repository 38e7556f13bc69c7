package domain

import (
	"github.com/cadenceapp/cadence/internal/core/stats"
)

// ActivityStats is the per-activity analytics payload: streaks plus
// engagement figures, serialized as-is into the response body.
type ActivityStats struct {
	ActivityID    string                  `json:"activity_id"`
	ActivityTitle string                  `json:"activity_title"`
	Streaks       stats.StreakResult      `json:"streaks"`
	Engagement    stats.EngagementSummary `json:"engagement"`
}

// DashboardStats aggregates stats for every active activity of a user.
type DashboardStats struct {
	UserID     string          `json:"user_id"`
	Timezone   string          `json:"timezone"`
	Activities []ActivityStats `json:"activities"`
}

// GroupStats computes streaks over the merged entry dates of all group
// members: a day counts if any member logged anything.
type GroupStats struct {
	GroupID     string             `json:"group_id"`
	GroupName   string             `json:"group_name"`
	MemberCount int                `json:"member_count"`
	Streaks     stats.StreakResult `json:"streaks"`
}

// GoalProgressReport pairs a goal with its derived progress.
type GoalProgressReport struct {
	Goal            *Goal              `json:"goal"`
	CurrentProgress float64            `json:"current_progress"`
	Progress        stats.GoalProgress `json:"progress"`
}
