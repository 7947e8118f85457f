package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"claimdesk/internal/config"
	"claimdesk/internal/domain"
	"claimdesk/internal/port"
	"claimdesk/internal/validation"
)

// CreateUserInput is the DTO for creating a user.
type CreateUserInput struct {
	Emails   []domain.EmailEntry `json:"emails" binding:"required,min=1,dive"`
	Password string              `json:"password" binding:"required,min=8"`
	FullName string              `json:"full_name" binding:"required,max=200"`
	Phone    string              `json:"phone" binding:"omitempty,phone_cc"`
	Role     domain.UserRole     `json:"role" binding:"required"`
	GroupID  *uuid.UUID          `json:"group_id"`
}

// UpdateUserInput is the DTO for updating a user. ClearGroup removes a
// client from its group.
type UpdateUserInput struct {
	FullName   *string          `json:"full_name" binding:"omitempty,max=200"`
	Phone      *string          `json:"phone" binding:"omitempty,phone_cc"`
	Role       *domain.UserRole `json:"role"`
	IsActive   *bool            `json:"is_active"`
	GroupID    *uuid.UUID       `json:"group_id"`
	ClearGroup bool             `json:"clear_group"`
}

// ReplaceEmailsInput is the DTO for replacing a user's email set.
type ReplaceEmailsInput struct {
	Emails []domain.EmailEntry `json:"emails" binding:"required,min=1,dive"`
}

// BatchUsersInput is the DTO for batch user actions.
type BatchUsersInput struct {
	Action  domain.UserBatchAction `json:"action" binding:"required"`
	UserIDs []uuid.UUID            `json:"user_ids" binding:"required,min=1,max=100"`
}

// BatchResult reports how many records a batch action changed.
type BatchResult struct {
	Affected int `json:"affected"`
}

// UpdateProfileInput is the DTO for self-service profile edits.
type UpdateProfileInput struct {
	FullName *string `json:"full_name" binding:"omitempty,min=1,max=200"`
	Phone    *string `json:"phone" binding:"omitempty,phone_cc"`
}

// ChangePasswordInput is the DTO for self-service password changes.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UserService defines the user management contract.
type UserService interface {
	Create(ctx context.Context, actor Actor, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error)
	List(ctx context.Context, tenantID uuid.UUID, filter domain.UserFilter, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, actor Actor, userID uuid.UUID, input UpdateUserInput) (*domain.User, error)
	ReplaceEmails(ctx context.Context, actor Actor, userID uuid.UUID, input ReplaceEmailsInput) (*domain.User, error)
	Trash(ctx context.Context, actor Actor, userID uuid.UUID) error
	Batch(ctx context.Context, actor Actor, input BatchUsersInput) (*BatchResult, error)
	UploadAvatar(ctx context.Context, actor Actor, userID uuid.UUID, file FileUpload) (*domain.User, error)
	ListAgents(ctx context.Context, tenantID uuid.UUID) ([]domain.AgentSummary, error)

	GetProfile(ctx context.Context, actor Actor) (*domain.User, error)
	UpdateProfile(ctx context.Context, actor Actor, input UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, actor Actor, input ChangePasswordInput) error
}

type userService struct {
	repo      port.UserRepository
	groupRepo port.GroupRepository
	objects   *objectStore
	cfg       *config.S3Config
	log       *zap.Logger
}

// NewUserService creates a new UserService implementation.
func NewUserService(
	repo port.UserRepository,
	groupRepo port.GroupRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
	log *zap.Logger,
) UserService {
	return &userService{
		repo:      repo,
		groupRepo: groupRepo,
		objects:   &objectStore{storage: storage, cfg: cfg, log: log},
		cfg:       cfg,
		log:       log,
	}
}

func (s *userService) Create(ctx context.Context, actor Actor, input CreateUserInput) (*domain.User, error) {
	if !domain.ValidUserRoles[input.Role] {
		return nil, domain.ErrInvalidRole
	}
	if err := s.checkRoleGrant(actor, input.Role); err != nil {
		return nil, err
	}
	emails, err := normalizeEmails(input.Emails)
	if err != nil {
		return nil, err
	}
	phone, err := normalizePhone(input.Phone)
	if err != nil {
		return nil, err
	}
	if input.GroupID != nil {
		if err := s.checkGroup(ctx, actor.TenantID, input.Role, *input.GroupID); err != nil {
			return nil, err
		}
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		TenantID:     actor.TenantID,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Phone:        phone,
		Role:         input.Role,
		IsActive:     true,
		GroupID:      input.GroupID,
	}
	if err := s.repo.Create(ctx, user, emails); err != nil {
		return nil, err
	}
	s.log.Info("user created",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.String("created_by", actor.UserID.String()))

	return s.decorate(ctx, user)
}

func (s *userService) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, user)
}

func (s *userService) List(ctx context.Context, tenantID uuid.UUID, filter domain.UserFilter, offset, limit int) ([]domain.User, int, error) {
	if filter.Role != "" && !domain.ValidUserRoles[filter.Role] {
		return nil, 0, domain.ErrInvalidRole
	}
	filter.Search = strings.TrimSpace(filter.Search)
	users, total, err := s.repo.List(ctx, tenantID, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].AvatarURL = s.objects.url(ctx, users[i].AvatarKey)
	}
	return users, total, nil
}

func (s *userService) Update(ctx context.Context, actor Actor, userID uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, actor.TenantID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.checkTarget(actor, user); err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Phone != nil {
		phone, err := normalizePhone(*input.Phone)
		if err != nil {
			return nil, err
		}
		user.Phone = phone
	}
	if input.Role != nil && *input.Role != user.Role {
		if !domain.ValidUserRoles[*input.Role] {
			return nil, domain.ErrInvalidRole
		}
		if user.ID == actor.UserID {
			return nil, domain.ErrSelfAction
		}
		if err := s.checkRoleGrant(actor, *input.Role); err != nil {
			return nil, err
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil && *input.IsActive != user.IsActive {
		if user.ID == actor.UserID {
			return nil, domain.ErrSelfAction
		}
		user.IsActive = *input.IsActive
	}
	switch {
	case input.ClearGroup:
		user.GroupID = nil
	case input.GroupID != nil:
		if err := s.checkGroup(ctx, actor.TenantID, user.Role, *input.GroupID); err != nil {
			return nil, err
		}
		user.GroupID = input.GroupID
	}
	if user.Role != domain.RoleClient {
		user.GroupID = nil
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.decorate(ctx, user)
}

func (s *userService) ReplaceEmails(ctx context.Context, actor Actor, userID uuid.UUID, input ReplaceEmailsInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, actor.TenantID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.checkTarget(actor, user); err != nil {
		return nil, err
	}
	emails, err := normalizeEmails(input.Emails)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceEmails(ctx, actor.TenantID, userID, emails); err != nil {
		return nil, err
	}
	user.Email = domain.PrimaryEmail(emails)
	return s.decorate(ctx, user)
}

func (s *userService) Trash(ctx context.Context, actor Actor, userID uuid.UUID) error {
	_, err := s.Batch(ctx, actor, BatchUsersInput{Action: domain.UserBatchTrash, UserIDs: []uuid.UUID{userID}})
	return err
}

func (s *userService) Batch(ctx context.Context, actor Actor, input BatchUsersInput) (*BatchResult, error) {
	if !domain.ValidUserBatchActions[input.Action] {
		return nil, domain.ErrInvalidBatchAction
	}
	ids := dedupeIDs(input.UserIDs)
	for _, id := range ids {
		if id == actor.UserID && input.Action != domain.UserBatchActivate {
			return nil, domain.ErrSelfAction
		}
	}
	if actor.Role != domain.RoleSuperAdmin {
		for _, id := range ids {
			user, err := s.repo.GetByID(ctx, actor.TenantID, id)
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			if err := s.checkTarget(actor, user); err != nil {
				return nil, err
			}
		}
	}

	var (
		n   int
		err error
	)
	switch input.Action {
	case domain.UserBatchActivate:
		n, err = s.repo.SetActive(ctx, actor.TenantID, ids, true)
	case domain.UserBatchDeactivate:
		n, err = s.repo.SetActive(ctx, actor.TenantID, ids, false)
	case domain.UserBatchTrash:
		n, err = s.repo.Trash(ctx, actor.TenantID, ids)
	}
	if err != nil {
		return nil, err
	}
	if input.Action == domain.UserBatchTrash && len(ids) == 1 && n == 0 {
		return nil, domain.ErrNotFound
	}

	s.log.Info("user batch action",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("action", string(input.Action)),
		zap.Int("requested", len(ids)),
		zap.Int("affected", n))
	return &BatchResult{Affected: n}, nil
}

func (s *userService) UploadAvatar(ctx context.Context, actor Actor, userID uuid.UUID, file FileUpload) (*domain.User, error) {
	if userID != actor.UserID && !actor.Role.IsAdmin() {
		return nil, domain.ErrInsufficientRole
	}
	user, err := s.repo.GetByID(ctx, actor.TenantID, userID)
	if err != nil {
		return nil, err
	}
	if userID != actor.UserID {
		if err := s.checkTarget(actor, user); err != nil {
			return nil, err
		}
	}

	info, err := inspectUpload(file, domain.ImageFileTypes, megabytes(s.cfg.MaxAvatarSizeMB))
	if err != nil {
		return nil, err
	}
	key := objectKey(actor.TenantID, "avatars", userID, info.Ext)
	if err := s.objects.put(ctx, key, file, info.ContentType); err != nil {
		return nil, err
	}

	previous := user.AvatarKey
	user.AvatarKey = key
	if err := s.repo.Update(ctx, user); err != nil {
		s.objects.remove(ctx, key)
		return nil, err
	}
	s.objects.remove(ctx, previous)
	return s.decorate(ctx, user)
}

func (s *userService) ListAgents(ctx context.Context, tenantID uuid.UUID) ([]domain.AgentSummary, error) {
	agents, err := s.repo.ListAgents(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for i := range agents {
		agents[i].AvatarURL = s.objects.url(ctx, agents[i].AvatarKey)
	}
	return agents, nil
}

func (s *userService) GetProfile(ctx context.Context, actor Actor) (*domain.User, error) {
	return s.GetByID(ctx, actor.TenantID, actor.UserID)
}

func (s *userService) UpdateProfile(ctx context.Context, actor Actor, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, actor.TenantID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Phone != nil {
		phone, err := normalizePhone(*input.Phone)
		if err != nil {
			return nil, err
		}
		user.Phone = phone
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.decorate(ctx, user)
}

func (s *userService) ChangePassword(ctx context.Context, actor Actor, input ChangePasswordInput) error {
	user, err := s.repo.GetByID(ctx, actor.TenantID, actor.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := hashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, actor.TenantID, actor.UserID, hash)
}

// decorate loads the email set and presigns the avatar.
func (s *userService) decorate(ctx context.Context, user *domain.User) (*domain.User, error) {
	emails, err := s.repo.ListEmails(ctx, user.TenantID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("userService.decorate: %w", err)
	}
	user.Emails = emails
	user.AvatarURL = s.objects.url(ctx, user.AvatarKey)
	return user, nil
}

// checkRoleGrant stops anyone but a superadmin from handing out superadmin.
func (s *userService) checkRoleGrant(actor Actor, role domain.UserRole) error {
	if role == domain.RoleSuperAdmin && actor.Role != domain.RoleSuperAdmin {
		return domain.ErrInsufficientRole
	}
	return nil
}

// checkTarget stops admins from managing superadmin accounts.
func (s *userService) checkTarget(actor Actor, target *domain.User) error {
	if target.Role == domain.RoleSuperAdmin && actor.Role != domain.RoleSuperAdmin {
		return domain.ErrInsufficientRole
	}
	return nil
}

func (s *userService) checkGroup(ctx context.Context, tenantID uuid.UUID, role domain.UserRole, groupID uuid.UUID) error {
	if role != domain.RoleClient {
		return domain.ErrGroupMemberNotClient
	}
	if _, err := s.groupRepo.GetByID(ctx, tenantID, groupID); err != nil {
		return err
	}
	return nil
}

func normalizeEmails(entries []domain.EmailEntry) ([]domain.EmailEntry, error) {
	emails, err := domain.NormalizeEmailSet(entries)
	if err != nil {
		return nil, err
	}
	for _, e := range emails {
		if !validation.Email(e.Email) {
			return nil, domain.ErrInvalidEmail
		}
	}
	return emails, nil
}

func normalizePhone(phone string) (string, error) {
	phone = validation.NormalizePhone(phone)
	if phone == "" {
		return "", nil
	}
	if !validation.Phone(phone) {
		return "", domain.ErrInvalidPhone
	}
	return phone, nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
