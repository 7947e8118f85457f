package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const claimStatsColumns = `SELECT
	COUNT(*) AS total_claims,
	COUNT(CASE WHEN c.status = 'pendiente' THEN 1 END) AS claims_pending,
	COUNT(CASE WHEN c.status = 'en_revision' THEN 1 END) AS claims_in_review,
	COUNT(CASE WHEN c.status = 'verificado' THEN 1 END) AS claims_verified,
	COUNT(CASE WHEN c.status = 'rechazado' THEN 1 END) AS claims_rejected,
	COUNT(CASE WHEN c.status = 'cerrado' THEN 1 END) AS claims_closed
FROM claims c
INNER JOIN users u ON u.id = c.client_id`

const documentStatsColumns = `SELECT
	COUNT(CASE WHEN d.status = 'pendiente' THEN 1 END) AS documents_pending,
	COUNT(CASE WHEN d.status = 'recibido' THEN 1 END) AS documents_received,
	COUNT(CASE WHEN d.status = 'aprobado' THEN 1 END) AS documents_approved,
	COUNT(CASE WHEN d.status = 'rechazado' THEN 1 END) AS documents_rejected
FROM claim_documents d
INNER JOIN claims c ON c.id = d.claim_id
INNER JOIN users u ON u.id = c.client_id`

func (r *statsRepo) GetClaimStats(ctx context.Context, tenantID uuid.UUID, scope domain.ClaimFilter) (*domain.Stats, error) {
	w := claimConditions(tenantID, domain.ClaimFilter{
		ScopeClientID: scope.ScopeClientID,
		ScopeAgentID:  scope.ScopeAgentID,
	})

	var stats domain.Stats
	if err := r.db.GetContext(ctx, &stats, claimStatsColumns+w.sql(), w.args...); err != nil {
		return nil, fmt.Errorf("statsRepo.GetClaimStats claims: %w", err)
	}

	var docs domain.Stats
	if err := r.db.GetContext(ctx, &docs, documentStatsColumns+w.sql(), w.args...); err != nil {
		return nil, fmt.Errorf("statsRepo.GetClaimStats documents: %w", err)
	}
	stats.DocumentsPending = docs.DocumentsPending
	stats.DocumentsReceived = docs.DocumentsReceived
	stats.DocumentsApproved = docs.DocumentsApproved
	stats.DocumentsRejected = docs.DocumentsRejected

	return &stats, nil
}
