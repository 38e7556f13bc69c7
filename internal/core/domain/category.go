package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCategoryNameEmpty   = errors.New("category name cannot be empty")
	ErrCategoryNameTooLong = errors.New("category name is too long (max 100 chars)")
	ErrInvalidColor        = errors.New("invalid color format (must be #RRGGBB)")
	ErrCategoryNotFound    = errors.New("category not found")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const maxCategoryNameLen = 100

type Category struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	Icon      string    `json:"icon" db:"icon"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewCategory(userID, name, color, icon string) (*Category, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	name = strings.TrimSpace(name)
	if err := validateCategoryName(name, color); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Category{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		Icon:      icon,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (c *Category) Update(name, color, icon string) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name, color); err != nil {
		return err
	}

	c.Name = name
	c.Color = color
	c.Icon = icon
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func validateCategoryName(name, color string) error {
	if name == "" {
		return ErrCategoryNameEmpty
	}
	if len(name) > maxCategoryNameLen {
		return ErrCategoryNameTooLong
	}
	if color != "" && !colorRegex.MatchString(color) {
		return ErrInvalidColor
	}
	return nil
}
