package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrActivityTitleEmpty   = errors.New("activity title cannot be empty")
	ErrActivityTitleTooLong = errors.New("activity title is too long (max 100 chars)")
	ErrActivityDescTooLong  = errors.New("activity description is too long (max 500 chars)")
	ErrActivityArchived     = errors.New("cannot update an archived activity")
	ErrActivityNotFound     = errors.New("activity not found")
	ErrActivityConflict     = errors.New("activity version conflict")
	ErrInvalidUserID        = errors.New("invalid user id")
)

const (
	MaxTitleLen = 100
	MaxDescLen  = 500
)

// Activity is something a user tracks over time: a habit, a practice, a
// training routine. Progress entries hang off activities; the cached
// streak columns are refreshed asynchronously by the streak worker and
// exist only to keep dashboard reads cheap.
type Activity struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	CategoryID  string     `json:"category_id" db:"category_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description,omitempty" db:"description"`
	Unit        string     `json:"unit" db:"unit"`
	Color       string     `json:"color" db:"color"`
	Icon        string     `json:"icon" db:"icon"`
	SortOrder   int        `json:"sort_order" db:"sort_order"`
	Version     int        `json:"version" db:"version"`
	CurrentStreak int      `json:"current_streak" db:"current_streak"`
	LongestStreak int      `json:"longest_streak" db:"longest_streak"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty" db:"archived_at"`
}

func NewActivity(userID, categoryID, title, description, unit, color, icon string) (*Activity, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if err := validateActivity(title, description, color); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Activity{
		ID:          uuid.NewString(),
		UserID:      userID,
		CategoryID:  categoryID,
		Title:       title,
		Description: description,
		Unit:        unit,
		Color:       color,
		Icon:        icon,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (a *Activity) Update(title, description, unit, color, icon string) error {
	if a.ArchivedAt != nil {
		return ErrActivityArchived
	}

	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if err := validateActivity(title, description, color); err != nil {
		return err
	}

	a.Title = title
	a.Description = description
	a.Unit = unit
	a.Color = color
	a.Icon = icon
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (a *Activity) ChangePosition(newOrder int) error {
	if a.ArchivedAt != nil {
		return ErrActivityArchived
	}

	a.SortOrder = newOrder
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (a *Activity) Archive() {
	if a.ArchivedAt != nil {
		return
	}

	now := time.Now().UTC()
	a.ArchivedAt = &now
	a.UpdatedAt = now
}

func (a *Activity) Restore() {
	if a.ArchivedAt == nil {
		return
	}
	a.ArchivedAt = nil
	a.UpdatedAt = time.Now().UTC()
}

func (a *Activity) UpdateStreaks(current, longest int) {
	a.CurrentStreak = current
	a.LongestStreak = longest
	a.UpdatedAt = time.Now().UTC()
}

func validateActivity(title, description, color string) error {
	if title == "" {
		return ErrActivityTitleEmpty
	}
	if len(title) > MaxTitleLen {
		return ErrActivityTitleTooLong
	}
	if len(description) > MaxDescLen {
		return ErrActivityDescTooLong
	}
	if color != "" && !colorRegex.MatchString(color) {
		return ErrInvalidColor
	}
	return nil
}
