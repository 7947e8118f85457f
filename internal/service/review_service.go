package service

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"claimdesk/internal/config"
	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

// ReviewInput is the DTO for approving or rejecting a received document.
type ReviewInput struct {
	Action domain.CommentAction `json:"action" binding:"required,oneof=approve reject"`
	Reason string               `json:"reason" binding:"max=2000"`
}

// CommentInput is the DTO for a free-text history entry. DocumentID is
// optional; without it the comment applies to the whole claim.
type CommentInput struct {
	DocumentID *uuid.UUID `json:"document_id"`
	Body       string     `json:"body" binding:"required,max=5000"`
}

// ReviewService drives the document review state machine of a claim.
type ReviewService interface {
	Upload(ctx context.Context, actor Actor, claimID, documentID uuid.UUID, file FileUpload) (*domain.ClaimDetail, error)
	Review(ctx context.Context, actor Actor, claimID, documentID uuid.UUID, input ReviewInput) (*domain.ClaimDetail, error)
	Verify(ctx context.Context, actor Actor, claimID uuid.UUID) (*domain.ClaimDetail, error)
	AddComment(ctx context.Context, actor Actor, claimID uuid.UUID, input CommentInput) (*domain.DocumentComment, error)
	ListComments(ctx context.Context, actor Actor, claimID uuid.UUID, documentID *uuid.UUID, offset, limit int) ([]domain.DocumentComment, int, error)
	DownloadURL(ctx context.Context, actor Actor, claimID, documentID uuid.UUID) (string, error)
}

type reviewService struct {
	claimRepo   port.ClaimRepository
	docRepo     port.ClaimDocumentRepository
	commentRepo port.DocumentCommentRepository
	objects     *objectStore
	notify      *notifier
	cfg         *config.S3Config
	log         *zap.Logger
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	claimRepo port.ClaimRepository,
	docRepo port.ClaimDocumentRepository,
	commentRepo port.DocumentCommentRepository,
	userRepo port.UserRepository,
	tenantRepo port.TenantRepository,
	storage port.ObjectStorage,
	emailSender port.EmailSender,
	cfg *config.S3Config,
	log *zap.Logger,
) ReviewService {
	return &reviewService{
		claimRepo:   claimRepo,
		docRepo:     docRepo,
		commentRepo: commentRepo,
		objects:     &objectStore{storage: storage, cfg: cfg, log: log},
		notify:      newNotifier(tenantRepo, userRepo, emailSender, log),
		cfg:         cfg,
		log:         log,
	}
}

func (s *reviewService) Upload(ctx context.Context, actor Actor, claimID, documentID uuid.UUID, file FileUpload) (*domain.ClaimDetail, error) {
	claim, doc, err := s.loadOpen(ctx, actor, claimID, documentID)
	if err != nil {
		return nil, err
	}

	action := domain.UploadActionFor(doc.Status)
	next, err := domain.NextDocumentStatus(doc.Status, action, actor.Role)
	if err != nil {
		return nil, err
	}

	info, err := inspectUpload(file, nil, megabytes(s.cfg.MaxFileSizeMB))
	if err != nil {
		return nil, err
	}
	key := objectKey(actor.TenantID, "claims", claim.ID, info.Ext)
	if err := s.objects.put(ctx, key, file, info.ContentType); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expected, previousKey := doc.Status, doc.FileKey
	doc.Status = next
	doc.FileKey = key
	doc.FileName = filepath.Base(file.Filename)
	doc.ContentType = info.ContentType
	doc.FileSize = file.Size
	doc.UploadedBy = &actor.UserID
	doc.UploadedAt = &now
	doc.RejectionReason = ""
	if err := s.docRepo.UpdateReview(ctx, doc, expected); err != nil {
		s.objects.remove(ctx, key)
		return nil, err
	}
	s.objects.remove(ctx, previousKey)

	s.record(ctx, actor, claim.ID, &doc.ID, action, doc.FileName)

	if claim.Status == domain.ClaimStatusPending {
		if err := s.claimRepo.MarkInReview(ctx, actor.TenantID, claim.ID); err != nil {
			return nil, err
		}
		claim.Status = domain.ClaimStatusInReview
	}

	s.log.Info("document uploaded",
		zap.String("claim_id", claim.ID.String()),
		zap.String("document_id", doc.ID.String()),
		zap.String("action", string(action)),
		zap.String("user_id", actor.UserID.String()))
	return s.detail(ctx, claim)
}

func (s *reviewService) Review(ctx context.Context, actor Actor, claimID, documentID uuid.UUID, input ReviewInput) (*domain.ClaimDetail, error) {
	if input.Action != domain.CommentActionApprove && input.Action != domain.CommentActionReject {
		return nil, domain.ErrInvalidDocumentTransition
	}
	reason := strings.TrimSpace(input.Reason)
	if input.Action == domain.CommentActionReject && reason == "" {
		return nil, domain.ErrRejectionReasonRequired
	}

	claim, doc, err := s.loadOpen(ctx, actor, claimID, documentID)
	if err != nil {
		return nil, err
	}
	next, err := domain.NextDocumentStatus(doc.Status, input.Action, actor.Role)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expected := doc.Status
	doc.Status = next
	doc.ReviewedBy = &actor.UserID
	doc.ReviewedAt = &now
	doc.RejectionReason = ""
	if input.Action == domain.CommentActionReject {
		doc.RejectionReason = reason
	}
	if err := s.docRepo.UpdateReview(ctx, doc, expected); err != nil {
		return nil, err
	}

	s.record(ctx, actor, claim.ID, &doc.ID, input.Action, reason)
	if input.Action == domain.CommentActionReject {
		s.notify.documentRejected(ctx, claim, doc)
	}

	s.log.Info("document reviewed",
		zap.String("claim_id", claim.ID.String()),
		zap.String("document_id", doc.ID.String()),
		zap.String("action", string(input.Action)),
		zap.String("user_id", actor.UserID.String()))
	return s.detail(ctx, claim)
}

func (s *reviewService) Verify(ctx context.Context, actor Actor, claimID uuid.UUID) (*domain.ClaimDetail, error) {
	if !actor.Role.IsBackOffice() {
		return nil, domain.ErrInsufficientRole
	}
	claim, err := loadVisibleClaim(ctx, s.claimRepo, actor, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Status == domain.ClaimStatusClosed {
		return nil, domain.ErrClaimLocked
	}
	docs, err := s.docRepo.ListByClaim(ctx, actor.TenantID, claim.ID)
	if err != nil {
		return nil, err
	}
	if !domain.ReadyForVerification(claim.Status, docs) {
		return nil, domain.ErrClaimNotReady
	}

	now := time.Now().UTC()
	claim.Status = domain.ClaimStatusVerified
	claim.VerifiedBy = &actor.UserID
	claim.VerifiedAt = &now
	if err := s.claimRepo.Update(ctx, claim); err != nil {
		return nil, err
	}
	s.notify.claimVerified(ctx, claim)

	s.log.Info("claim verified",
		zap.String("claim_id", claim.ID.String()),
		zap.String("user_id", actor.UserID.String()))
	return &domain.ClaimDetail{Claim: *claim, Documents: docs}, nil
}

func (s *reviewService) AddComment(ctx context.Context, actor Actor, claimID uuid.UUID, input CommentInput) (*domain.DocumentComment, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, domain.ErrCommentRequired
	}
	claim, err := loadVisibleClaim(ctx, s.claimRepo, actor, claimID)
	if err != nil {
		return nil, err
	}
	if input.DocumentID != nil {
		if _, err := s.docRepo.GetByID(ctx, actor.TenantID, claim.ID, *input.DocumentID); err != nil {
			return nil, err
		}
	}

	comment := &domain.DocumentComment{
		TenantID:   actor.TenantID,
		ClaimID:    claim.ID,
		DocumentID: input.DocumentID,
		AuthorID:   &actor.UserID,
		AuthorRole: actor.Role,
		Action:     domain.CommentActionComment,
		Body:       body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *reviewService) ListComments(ctx context.Context, actor Actor, claimID uuid.UUID, documentID *uuid.UUID, offset, limit int) ([]domain.DocumentComment, int, error) {
	if _, err := loadVisibleClaim(ctx, s.claimRepo, actor, claimID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByClaim(ctx, actor.TenantID, claimID, documentID, offset, limit)
}

func (s *reviewService) DownloadURL(ctx context.Context, actor Actor, claimID, documentID uuid.UUID) (string, error) {
	claim, err := loadVisibleClaim(ctx, s.claimRepo, actor, claimID)
	if err != nil {
		return "", err
	}
	doc, err := s.docRepo.GetByID(ctx, actor.TenantID, claim.ID, documentID)
	if err != nil {
		return "", err
	}
	if doc.FileKey == "" {
		return "", domain.ErrDocumentNotFound
	}
	url, err := s.objects.storage.PresignGet(ctx, s.cfg.Bucket, doc.FileKey, s.cfg.PresignExpiry)
	if err != nil {
		return "", err
	}
	return url, nil
}

// loadOpen loads a visible claim and one of its documents, refusing claims
// that were verified or closed.
func (s *reviewService) loadOpen(ctx context.Context, actor Actor, claimID, documentID uuid.UUID) (*domain.Claim, *domain.ClaimDocument, error) {
	claim, err := loadVisibleClaim(ctx, s.claimRepo, actor, claimID)
	if err != nil {
		return nil, nil, err
	}
	if claim.Status == domain.ClaimStatusVerified || claim.Status == domain.ClaimStatusClosed {
		return nil, nil, domain.ErrClaimLocked
	}
	doc, err := s.docRepo.GetByID(ctx, actor.TenantID, claim.ID, documentID)
	if err != nil {
		return nil, nil, err
	}
	return claim, doc, nil
}

// record appends a transition to the history. The transition itself is
// already stored, so a failure here is logged only.
func (s *reviewService) record(ctx context.Context, actor Actor, claimID uuid.UUID, documentID *uuid.UUID, action domain.CommentAction, body string) {
	comment := &domain.DocumentComment{
		TenantID:   actor.TenantID,
		ClaimID:    claimID,
		DocumentID: documentID,
		AuthorID:   &actor.UserID,
		AuthorRole: actor.Role,
		Action:     action,
		Body:       body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.log.Error("recording document history",
			zap.String("claim_id", claimID.String()),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

func (s *reviewService) detail(ctx context.Context, claim *domain.Claim) (*domain.ClaimDetail, error) {
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
