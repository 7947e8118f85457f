package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"claimdesk/internal/domain"
	"claimdesk/internal/export"
	"claimdesk/internal/port"
)

const (
	dateLayout      = "2006-01-02"
	exportPageSize  = 500
	currencyCodeLen = 3
)

// CreateClaimInput is the DTO for submitting a claim. ClientID is required
// when back office staff submit on a client's behalf and ignored for clients.
type CreateClaimInput struct {
	ClientID        *uuid.UUID       `json:"client_id"`
	ClaimType       domain.ClaimType `json:"claim_type" binding:"required"`
	Title           string           `json:"title" binding:"required,max=200"`
	Description     string           `json:"description" binding:"max=5000"`
	Amount          decimal.Decimal  `json:"amount" swaggertype:"string" example:"1250.50"`
	Currency        string           `json:"currency" binding:"omitempty,len=3,alpha"`
	IncidentDate    string           `json:"incident_date" binding:"omitempty,datetime=2006-01-02"`
	AssignedAgentID *uuid.UUID       `json:"assigned_agent_id"`
}

// UpdateClaimInput is the DTO for back office claim edits. ClearAgent
// unassigns the claim.
type UpdateClaimInput struct {
	Title           *string             `json:"title" binding:"omitempty,min=1,max=200"`
	Description     *string             `json:"description" binding:"omitempty,max=5000"`
	Amount          *decimal.Decimal    `json:"amount" swaggertype:"string"`
	Currency        *string             `json:"currency" binding:"omitempty,len=3,alpha"`
	IncidentDate    *string             `json:"incident_date" binding:"omitempty,datetime=2006-01-02"`
	Status          *domain.ClaimStatus `json:"status"`
	AssignedAgentID *uuid.UUID          `json:"assigned_agent_id"`
	ClearAgent      bool                `json:"clear_agent"`
}

// ClaimService defines the claim lifecycle contract.
type ClaimService interface {
	Create(ctx context.Context, actor Actor, input CreateClaimInput) (*domain.ClaimDetail, error)
	Get(ctx context.Context, actor Actor, claimID uuid.UUID) (*domain.ClaimDetail, error)
	List(ctx context.Context, actor Actor, filter domain.ClaimFilter, offset, limit int) ([]domain.Claim, int, error)
	Update(ctx context.Context, actor Actor, claimID uuid.UUID, input UpdateClaimInput) (*domain.ClaimDetail, error)
	Trash(ctx context.Context, actor Actor, claimIDs []uuid.UUID) (*BatchResult, error)
	// Export writes every claim matching filter to w and returns the row count.
	Export(ctx context.Context, actor Actor, filter domain.ClaimFilter, format export.Format, w io.Writer) (int, error)
}

type claimService struct {
	repo     port.ClaimRepository
	docRepo  port.ClaimDocumentRepository
	userRepo port.UserRepository
	log      *zap.Logger
}

// NewClaimService creates a new ClaimService implementation.
func NewClaimService(
	repo port.ClaimRepository,
	docRepo port.ClaimDocumentRepository,
	userRepo port.UserRepository,
	log *zap.Logger,
) ClaimService {
	return &claimService{
		repo:     repo,
		docRepo:  docRepo,
		userRepo: userRepo,
		log:      log,
	}
}

func (s *claimService) Create(ctx context.Context, actor Actor, input CreateClaimInput) (*domain.ClaimDetail, error) {
	if !domain.ValidClaimTypes[input.ClaimType] {
		return nil, domain.ErrInvalidClaimType
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	currency, err := normalizeCurrency(input.Currency)
	if err != nil {
		return nil, err
	}
	incident, err := parseDate(input.IncidentDate)
	if err != nil {
		return nil, err
	}

	var clientID uuid.UUID
	switch {
	case actor.Role == domain.RoleClient:
		clientID = actor.UserID
	case actor.Role.IsBackOffice() && input.ClientID != nil:
		clientID = *input.ClientID
	case actor.Role.IsBackOffice():
		return nil, domain.ErrClientRequired
	default:
		return nil, domain.ErrInsufficientRole
	}
	client, err := s.userRepo.GetByID(ctx, actor.TenantID, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrClientRequired
		}
		return nil, err
	}
	if client.Role != domain.RoleClient || !client.IsActive {
		return nil, domain.ErrClientRequired
	}

	claim := &domain.Claim{
		TenantID:     actor.TenantID,
		ClientID:     client.ID,
		ClientName:   client.FullName,
		GroupID:      client.GroupID,
		ClaimType:    input.ClaimType,
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Amount:       input.Amount,
		Currency:     currency,
		IncidentDate: incident,
		Status:       domain.ClaimStatusPending,
		CreatedBy:    actor.UserID,
	}
	if input.AssignedAgentID != nil && actor.Role.IsBackOffice() {
		if err := s.checkAssignee(ctx, actor.TenantID, *input.AssignedAgentID); err != nil {
			return nil, err
		}
		claim.AssignedAgentID = input.AssignedAgentID
	}

	items := domain.Checklist(claim.ClaimType)
	docs := make([]domain.ClaimDocument, len(items))
	for i, item := range items {
		docs[i] = domain.ClaimDocument{
			Name:     item.Name,
			Required: item.Required,
			Position: i + 1,
			Status:   domain.DocumentStatusPending,
		}
	}

	if err := s.repo.Create(ctx, claim, docs); err != nil {
		return nil, err
	}
	s.log.Info("claim submitted",
		zap.String("tenant_id", claim.TenantID.String()),
		zap.String("claim_id", claim.ID.String()),
		zap.String("number", claim.Number),
		zap.String("created_by", actor.UserID.String()))

	return &domain.ClaimDetail{
		Claim:                *claim,
		Documents:            docs,
		ReadyForVerification: domain.ReadyForVerification(claim.Status, docs),
	}, nil
}

func (s *claimService) Get(ctx context.Context, actor Actor, claimID uuid.UUID) (*domain.ClaimDetail, error) {
	claim, err := loadVisibleClaim(ctx, s.repo, actor, claimID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, claim)
}

func (s *claimService) List(ctx context.Context, actor Actor, filter domain.ClaimFilter, offset, limit int) ([]domain.Claim, int, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, actor.TenantID, claimScope(actor, filter), offset, limit)
}

func (s *claimService) Update(ctx context.Context, actor Actor, claimID uuid.UUID, input UpdateClaimInput) (*domain.ClaimDetail, error) {
	if !actor.Role.IsBackOffice() {
		return nil, domain.ErrInsufficientRole
	}
	claim, err := loadVisibleClaim(ctx, s.repo, actor, claimID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		claim.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		claim.Description = strings.TrimSpace(*input.Description)
	}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domain.ErrInvalidAmount
		}
		claim.Amount = *input.Amount
	}
	if input.Currency != nil {
		currency, err := normalizeCurrency(*input.Currency)
		if err != nil {
			return nil, err
		}
		claim.Currency = currency
	}
	if input.IncidentDate != nil {
		incident, err := parseDate(*input.IncidentDate)
		if err != nil {
			return nil, err
		}
		claim.IncidentDate = incident
	}
	if input.Status != nil && *input.Status != claim.Status {
		if !domain.ValidClaimStatuses[*input.Status] {
			return nil, domain.ErrInvalidClaimStatus
		}
		if *input.Status == domain.ClaimStatusVerified {
			return nil, domain.ErrStatusRequiresVerify
		}
		if claim.Status == domain.ClaimStatusVerified {
			claim.VerifiedBy = nil
			claim.VerifiedAt = nil
		}
		claim.Status = *input.Status
	}
	switch {
	case input.ClearAgent:
		claim.AssignedAgentID = nil
	case input.AssignedAgentID != nil:
		if err := s.checkAssignee(ctx, actor.TenantID, *input.AssignedAgentID); err != nil {
			return nil, err
		}
		claim.AssignedAgentID = input.AssignedAgentID
	}

	if err := s.repo.Update(ctx, claim); err != nil {
		return nil, err
	}
	return s.detail(ctx, claim)
}

func (s *claimService) Trash(ctx context.Context, actor Actor, claimIDs []uuid.UUID) (*BatchResult, error) {
	if !actor.Role.IsAdmin() {
		return nil, domain.ErrInsufficientRole
	}
	n, err := s.repo.Trash(ctx, actor.TenantID, dedupeIDs(claimIDs))
	if err != nil {
		return nil, err
	}
	return &BatchResult{Affected: n}, nil
}

func (s *claimService) Export(ctx context.Context, actor Actor, filter domain.ClaimFilter, format export.Format, w io.Writer) (int, error) {
	if !actor.Role.IsBackOffice() {
		return 0, domain.ErrInsufficientRole
	}
	if err := filter.Validate(); err != nil {
		return 0, err
	}
	filter.Search = strings.TrimSpace(filter.Search)
	filter = claimScope(actor, filter)

	out, err := export.NewWriter(format, w)
	if err != nil {
		return 0, err
	}
	if err := out.WriteHeader(); err != nil {
		return 0, fmt.Errorf("claimService.Export: %w", err)
	}

	written := 0
	for {
		page, total, err := s.repo.List(ctx, actor.TenantID, filter, written, exportPageSize)
		if err != nil {
			return written, err
		}
		if err := out.WriteClaims(page); err != nil {
			return written, fmt.Errorf("claimService.Export: %w", err)
		}
		written += len(page)
		if len(page) < exportPageSize || written >= total {
			break
		}
	}
	if err := out.Close(); err != nil {
		return written, fmt.Errorf("claimService.Export: %w", err)
	}
	return written, nil
}

func (s *claimService) detail(ctx context.Context, claim *domain.Claim) (*domain.ClaimDetail, error) {
	docs, err := s.docRepo.ListByClaim(ctx, claim.TenantID, claim.ID)
	if err != nil {
		return nil, err
	}
	return &domain.ClaimDetail{
		Claim:                *claim,
		Documents:            docs,
		ReadyForVerification: domain.ReadyForVerification(claim.Status, docs),
	}, nil
}

// checkAssignee requires an active staff or admin user of the same tenant.
func (s *claimService) checkAssignee(ctx context.Context, tenantID, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidAssignee
		}
		return err
	}
	if !user.IsActive || (user.Role != domain.RoleStaff && user.Role != domain.RoleAdmin) {
		return domain.ErrInvalidAssignee
	}
	return nil
}

// loadVisibleClaim hides claims outside the actor's scope as not found.
func loadVisibleClaim(ctx context.Context, repo port.ClaimRepository, actor Actor, claimID uuid.UUID) (*domain.Claim, error) {
	claim, err := repo.GetByID(ctx, actor.TenantID, claimID)
	if err != nil {
		return nil, err
	}
	if !canSeeClaim(actor, claim) {
		return nil, domain.ErrClaimNotFound
	}
	return claim, nil
}

func normalizeCurrency(c string) (string, error) {
	c = domain.NormalizeCurrency(c)
	if len(c) != currencyCodeLen {
		return "", domain.ErrInvalidCurrency
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", domain.ErrInvalidCurrency
		}
	}
	return c, nil
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	return &t, nil
}
