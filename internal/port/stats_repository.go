package port

import (
	"context"

	"github.com/google/uuid"

	"claimdesk/internal/domain"
)

// StatsRepository provides aggregate statistics queries. Only the scope
// fields of the filter are applied.
type StatsRepository interface {
	GetClaimStats(ctx context.Context, tenantID uuid.UUID, scope domain.ClaimFilter) (*domain.Stats, error)
}
