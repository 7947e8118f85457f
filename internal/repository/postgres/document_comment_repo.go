package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

type documentCommentRepo struct {
	db *sqlx.DB
}

// NewDocumentCommentRepo creates a new PostgreSQL-backed DocumentCommentRepository.
func NewDocumentCommentRepo(db *sqlx.DB) port.DocumentCommentRepository {
	return &documentCommentRepo{db: db}
}

func (r *documentCommentRepo) Create(ctx context.Context, comment *domain.DocumentComment) error {
	comment.ID = uuid.New()
	comment.CreatedAt = time.Now().UTC()
	// The author's name is copied so the entry still reads right after the
	// author is purged.
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO document_comments (id, tenant_id, claim_id, document_id, author_id,
			author_name, author_role, action, body, created_at)
		 VALUES ($1, $2, $3, $4, $5,
			COALESCE((SELECT full_name FROM users WHERE id = $5), ''), $6, $7, $8, $9)
		 RETURNING author_name`,
		comment.ID, comment.TenantID, comment.ClaimID, comment.DocumentID, comment.AuthorID,
		comment.AuthorRole, comment.Action, comment.Body, comment.CreatedAt).Scan(&comment.AuthorName)
	if err != nil {
		return fmt.Errorf("documentCommentRepo.Create: %w", err)
	}
	return nil
}

// ListByClaim returns the history newest first, optionally narrowed to one document.
func (r *documentCommentRepo) ListByClaim(ctx context.Context, tenantID, claimID uuid.UUID, documentID *uuid.UUID, offset, limit int) ([]domain.DocumentComment, int, error) {
	var w whereBuilder
	w.add("dc.tenant_id = ?", tenantID)
	w.add("dc.claim_id = ?", claimID)
	if documentID != nil {
		w.add("dc.document_id = ?", *documentID)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM document_comments dc"+w.sql(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("documentCommentRepo.ListByClaim count: %w", err)
	}

	var comments []domain.DocumentComment
	query := `SELECT dc.id, dc.tenant_id, dc.claim_id, dc.document_id, dc.author_id,
			COALESCE(u.full_name, dc.author_name) AS author_name, dc.author_role, dc.action, dc.body, dc.created_at
		FROM document_comments dc
		LEFT JOIN users u ON u.id = dc.author_id` + w.sql() +
		" ORDER BY dc.created_at DESC LIMIT " + w.next(1) + " OFFSET " + w.next(2)
	if err := r.db.SelectContext(ctx, &comments, query, append(w.args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("documentCommentRepo.ListByClaim: %w", err)
	}
	return comments, total, nil
}
