package services

import (
	"context"

	"github.com/cadenceapp/cadence/internal/core/domain"
)

type GroupService struct {
	repo domain.GroupRepository
}

func NewGroupService(repo domain.GroupRepository) *GroupService {
	return &GroupService{repo: repo}
}

func (s *GroupService) Create(ctx context.Context, ownerID, name, description string) (*domain.Group, error) {
	group, err := domain.NewGroup(ownerID, name, description)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, group); err != nil {
		return nil, err
	}

	// The owner is always a member.
	if err := s.repo.AddMember(ctx, group.ID, ownerID); err != nil {
		return nil, err
	}

	return group, nil
}

func (s *GroupService) ListByUserID(ctx context.Context, userID string) ([]*domain.Group, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *GroupService) Join(ctx context.Context, groupID, userID string) error {
	if _, err := s.repo.GetByID(ctx, groupID); err != nil {
		return err
	}
	return s.repo.AddMember(ctx, groupID, userID)
}

func (s *GroupService) Leave(ctx context.Context, groupID, userID string) error {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.OwnerID == userID {
		return domain.ErrNotGroupOwner
	}
	return s.repo.RemoveMember(ctx, groupID, userID)
}

func (s *GroupService) Members(ctx context.Context, groupID, userID string) ([]*domain.GroupMember, error) {
	member, err := s.repo.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrNotMember
	}
	return s.repo.ListMembers(ctx, groupID)
}

func (s *GroupService) Delete(ctx context.Context, groupID, userID string) error {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.OwnerID != userID {
		return domain.ErrNotGroupOwner
	}
	return s.repo.Delete(ctx, groupID)
}
