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

type claimRepo struct {
	db *sqlx.DB
}

// NewClaimRepo creates a new PostgreSQL-backed ClaimRepository.
func NewClaimRepo(db *sqlx.DB) port.ClaimRepository {
	return &claimRepo{db: db}
}

const claimSelect = `SELECT c.id, c.tenant_id, c.number, c.client_id, u.full_name AS client_name,
	c.group_id, c.assigned_agent_id, c.claim_type, c.title, c.description, c.amount,
	c.currency, c.incident_date, c.status, c.verified_by, c.verified_at, c.deleted_at,
	c.created_by, c.created_at, c.updated_at
FROM claims c
INNER JOIN users u ON u.id = c.client_id`

// claimConditions translates a filter into conditions over claims c joined
// with users u. Date bounds are calendar days and both are inclusive.
func claimConditions(tenantID uuid.UUID, f domain.ClaimFilter) *whereBuilder {
	w := &whereBuilder{}
	w.add("c.tenant_id = ?", tenantID)
	w.add("c.deleted_at IS NULL")
	if f.ScopeClientID != nil {
		w.add("c.client_id = ?", *f.ScopeClientID)
	}
	if f.ScopeAgentID != nil {
		w.add("c.assigned_agent_id = ?", *f.ScopeAgentID)
	}
	if f.Status != "" {
		w.add("c.status = ?", f.Status)
	}
	if f.ClaimType != "" {
		w.add("c.claim_type = ?", f.ClaimType)
	}
	if f.AssignedAgentID != nil {
		w.add("c.assigned_agent_id = ?", *f.AssignedAgentID)
	}
	if f.From != nil {
		w.add("c.created_at >= ?", startOfDay(*f.From))
	}
	if f.To != nil {
		w.add("c.created_at < ?", startOfDay(*f.To).AddDate(0, 0, 1))
	}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		w.add("(c.number ILIKE ? OR c.title ILIKE ? OR u.full_name ILIKE ?)", pattern, pattern, pattern)
	}
	return w
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (r *claimRepo) Create(ctx context.Context, claim *domain.Claim, docs []domain.ClaimDocument) error {
	claim.ID = uuid.New()
	now := time.Now().UTC()
	claim.CreatedAt = now
	claim.UpdatedAt = now

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var seq int64
		if err := tx.GetContext(ctx, &seq,
			`INSERT INTO claim_sequences (tenant_id, year, last_value) VALUES ($1, $2, 1)
			 ON CONFLICT (tenant_id, year) DO UPDATE SET last_value = claim_sequences.last_value + 1
			 RETURNING last_value`,
			claim.TenantID, now.Year()); err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
		claim.Number = domain.ClaimNumber(now.Year(), seq)

		_, err := tx.ExecContext(ctx,
			`INSERT INTO claims (id, tenant_id, number, client_id, group_id, assigned_agent_id,
				claim_type, title, description, amount, currency, incident_date, status,
				created_by, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			claim.ID, claim.TenantID, claim.Number, claim.ClientID, claim.GroupID, claim.AssignedAgentID,
			claim.ClaimType, claim.Title, claim.Description, claim.Amount, claim.Currency,
			claim.IncidentDate, claim.Status, claim.CreatedBy, claim.CreatedAt, claim.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert claim: %w", err)
		}

		for i := range docs {
			d := &docs[i]
			d.ID = uuid.New()
			d.TenantID = claim.TenantID
			d.ClaimID = claim.ID
			d.CreatedAt = now
			d.UpdatedAt = now
			_, err := tx.ExecContext(ctx,
				`INSERT INTO claim_documents (id, tenant_id, claim_id, name, required, position,
					status, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				d.ID, d.TenantID, d.ClaimID, d.Name, d.Required, d.Position, d.Status,
				d.CreatedAt, d.UpdatedAt)
			if err != nil {
				return fmt.Errorf("insert document %q: %w", d.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("claimRepo.Create: %w", err)
	}
	return nil
}

func (r *claimRepo) GetByID(ctx context.Context, tenantID, claimID uuid.UUID) (*domain.Claim, error) {
	var claim domain.Claim
	err := r.db.GetContext(ctx, &claim,
		claimSelect+" WHERE c.id = $1 AND c.tenant_id = $2 AND c.deleted_at IS NULL", claimID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, fmt.Errorf("claimRepo.GetByID: %w", err)
	}
	return &claim, nil
}

func (r *claimRepo) List(ctx context.Context, tenantID uuid.UUID, filter domain.ClaimFilter, offset, limit int) ([]domain.Claim, int, error) {
	w := claimConditions(tenantID, filter)

	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM claims c INNER JOIN users u ON u.id = c.client_id"+w.sql(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("claimRepo.List count: %w", err)
	}

	var claims []domain.Claim
	query := claimSelect + w.sql() + " ORDER BY c.created_at DESC LIMIT " + w.next(1) + " OFFSET " + w.next(2)
	if err := r.db.SelectContext(ctx, &claims, query, append(w.args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("claimRepo.List: %w", err)
	}
	return claims, total, nil
}

func (r *claimRepo) Update(ctx context.Context, claim *domain.Claim) error {
	claim.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE claims SET title = $1, description = $2, amount = $3, currency = $4,
			incident_date = $5, status = $6, assigned_agent_id = $7, verified_by = $8,
			verified_at = $9, updated_at = $10
		 WHERE id = $11 AND tenant_id = $12 AND deleted_at IS NULL`,
		claim.Title, claim.Description, claim.Amount, claim.Currency,
		claim.IncidentDate, claim.Status, claim.AssignedAgentID, claim.VerifiedBy,
		claim.VerifiedAt, claim.UpdatedAt, claim.ID, claim.TenantID)
	if err != nil {
		return fmt.Errorf("claimRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrClaimNotFound
	}
	return nil
}

func (r *claimRepo) MarkInReview(ctx context.Context, tenantID, claimID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE claims SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND tenant_id = $3 AND status = $4 AND deleted_at IS NULL`,
		domain.ClaimStatusInReview, claimID, tenantID, domain.ClaimStatusPending)
	if err != nil {
		return fmt.Errorf("claimRepo.MarkInReview: %w", err)
	}
	return nil
}

func (r *claimRepo) Trash(ctx context.Context, tenantID uuid.UUID, claimIDs []uuid.UUID) (int, error) {
	if len(claimIDs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	query, args, err := sqlx.In(
		`UPDATE claims SET deleted_at = ?, updated_at = ?
		 WHERE tenant_id = ? AND id IN (?) AND deleted_at IS NULL`,
		now, now, tenantID, claimIDs)
	if err != nil {
		return 0, fmt.Errorf("claimRepo.Trash: %w", err)
	}
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("claimRepo.Trash: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}
