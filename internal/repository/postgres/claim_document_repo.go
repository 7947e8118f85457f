package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

type claimDocumentRepo struct {
	db *sqlx.DB
}

// NewClaimDocumentRepo creates a new PostgreSQL-backed ClaimDocumentRepository.
func NewClaimDocumentRepo(db *sqlx.DB) port.ClaimDocumentRepository {
	return &claimDocumentRepo{db: db}
}

func (r *claimDocumentRepo) ListByClaim(ctx context.Context, tenantID, claimID uuid.UUID) ([]domain.ClaimDocument, error) {
	var docs []domain.ClaimDocument
	err := r.db.SelectContext(ctx, &docs,
		`SELECT * FROM claim_documents WHERE tenant_id = $1 AND claim_id = $2
		 ORDER BY position, created_at`,
		tenantID, claimID)
	if err != nil {
		return nil, fmt.Errorf("claimDocumentRepo.ListByClaim: %w", err)
	}
	return docs, nil
}

func (r *claimDocumentRepo) GetByID(ctx context.Context, tenantID, claimID, documentID uuid.UUID) (*domain.ClaimDocument, error) {
	var doc domain.ClaimDocument
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM claim_documents WHERE id = $1 AND claim_id = $2 AND tenant_id = $3",
		documentID, claimID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("claimDocumentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *claimDocumentRepo) UpdateReview(ctx context.Context, doc *domain.ClaimDocument, expected domain.DocumentStatus) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE claim_documents SET
			status = $1, file_key = $2, file_name = $3, content_type = $4, file_size = $5,
			uploaded_by = $6, uploaded_at = $7, reviewed_by = $8, reviewed_at = $9,
			rejection_reason = $10, updated_at = $11
		 WHERE id = $12 AND tenant_id = $13 AND status = $14`,
		doc.Status, doc.FileKey, doc.FileName, doc.ContentType, doc.FileSize,
		doc.UploadedBy, doc.UploadedAt, doc.ReviewedBy, doc.ReviewedAt,
		doc.RejectionReason, doc.UpdatedAt,
		doc.ID, doc.TenantID, expected)
	if err != nil {
		return fmt.Errorf("claimDocumentRepo.UpdateReview: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvalidDocumentTransition
	}
	return nil
}
