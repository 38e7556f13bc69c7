package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGroupNameEmpty     = errors.New("group name cannot be empty")
	ErrGroupNotFound      = errors.New("group not found")
	ErrAlreadyMember      = errors.New("user is already a member of this group")
	ErrNotMember          = errors.New("user is not a member of this group")
	ErrNotGroupOwner      = errors.New("only the group owner can do this")
)

// Group is a shared scope: members log entries against their own
// activities and the group dashboard aggregates over all of them.
type Group struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type GroupMember struct {
	GroupID  string    `json:"group_id" db:"group_id"`
	UserID   string    `json:"user_id" db:"user_id"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
}

func NewGroup(ownerID, name, description string) (*Group, error) {
	if ownerID == "" {
		return nil, ErrInvalidUserID
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrGroupNameEmpty
	}

	now := time.Now().UTC()
	return &Group{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
