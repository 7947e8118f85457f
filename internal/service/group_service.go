package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

// CreateGroupInput is the DTO for creating a client group.
type CreateGroupInput struct {
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description" binding:"max=1000"`
}

// UpdateGroupInput is the DTO for updating a client group.
type UpdateGroupInput struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=120"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// GroupMembersInput is the DTO for adding clients to a group.
type GroupMembersInput struct {
	UserIDs []uuid.UUID `json:"user_ids" binding:"required,min=1,max=100"`
}

// BatchIDsInput is the DTO for batch trash requests.
type BatchIDsInput struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1,max=100"`
}

// GroupService defines the client group management contract.
type GroupService interface {
	Create(ctx context.Context, actor Actor, input CreateGroupInput) (*domain.ClientGroup, error)
	GetByID(ctx context.Context, tenantID, groupID uuid.UUID) (*domain.ClientGroup, error)
	List(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.ClientGroup, int, error)
	Update(ctx context.Context, tenantID, groupID uuid.UUID, input UpdateGroupInput) (*domain.ClientGroup, error)
	Trash(ctx context.Context, tenantID uuid.UUID, groupIDs []uuid.UUID) (*BatchResult, error)
	AddMembers(ctx context.Context, tenantID, groupID uuid.UUID, input GroupMembersInput) (*BatchResult, error)
	RemoveMember(ctx context.Context, tenantID, groupID, userID uuid.UUID) error
	ListMembers(ctx context.Context, tenantID, groupID uuid.UUID, offset, limit int) ([]domain.User, int, error)
}

type groupService struct {
	repo     port.GroupRepository
	userRepo port.UserRepository
	log      *zap.Logger
}

// NewGroupService creates a new GroupService implementation.
func NewGroupService(repo port.GroupRepository, userRepo port.UserRepository, log *zap.Logger) GroupService {
	return &groupService{repo: repo, userRepo: userRepo, log: log}
}

func (s *groupService) Create(ctx context.Context, actor Actor, input CreateGroupInput) (*domain.ClientGroup, error) {
	group := &domain.ClientGroup{
		TenantID:    actor.TenantID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		CreatedBy:   actor.UserID,
	}
	if group.Name == "" {
		return nil, domain.ErrGroupNameRequired
	}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *groupService) GetByID(ctx context.Context, tenantID, groupID uuid.UUID) (*domain.ClientGroup, error) {
	return s.repo.GetByID(ctx, tenantID, groupID)
}

func (s *groupService) List(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.ClientGroup, int, error) {
	return s.repo.List(ctx, tenantID, strings.TrimSpace(search), offset, limit)
}

func (s *groupService) Update(ctx context.Context, tenantID, groupID uuid.UUID, input UpdateGroupInput) (*domain.ClientGroup, error) {
	group, err := s.repo.GetByID(ctx, tenantID, groupID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.ErrGroupNameRequired
		}
		group.Name = name
	}
	if input.Description != nil {
		group.Description = strings.TrimSpace(*input.Description)
	}
	if err := s.repo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *groupService) Trash(ctx context.Context, tenantID uuid.UUID, groupIDs []uuid.UUID) (*BatchResult, error) {
	n, err := s.repo.Trash(ctx, tenantID, dedupeIDs(groupIDs))
	if err != nil {
		return nil, err
	}
	return &BatchResult{Affected: n}, nil
}

func (s *groupService) AddMembers(ctx context.Context, tenantID, groupID uuid.UUID, input GroupMembersInput) (*BatchResult, error) {
	if _, err := s.repo.GetByID(ctx, tenantID, groupID); err != nil {
		return nil, err
	}
	ids := dedupeIDs(input.UserIDs)
	for _, id := range ids {
		user, err := s.userRepo.GetByID(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		if user.Role != domain.RoleClient {
			return nil, domain.ErrGroupMemberNotClient
		}
	}
	n, err := s.repo.AddMembers(ctx, tenantID, groupID, ids)
	if err != nil {
		return nil, err
	}
	s.log.Info("group members added",
		zap.String("tenant_id", tenantID.String()),
		zap.String("group_id", groupID.String()),
		zap.Int("added", n))
	return &BatchResult{Affected: n}, nil
}

func (s *groupService) RemoveMember(ctx context.Context, tenantID, groupID, userID uuid.UUID) error {
	return s.repo.RemoveMember(ctx, tenantID, groupID, userID)
}

func (s *groupService) ListMembers(ctx context.Context, tenantID, groupID uuid.UUID, offset, limit int) ([]domain.User, int, error) {
	if _, err := s.repo.GetByID(ctx, tenantID, groupID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListMembers(ctx, tenantID, groupID, offset, limit)
}
