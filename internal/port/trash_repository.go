package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"claimdesk/internal/domain"
)

// TrashRepository restores and permanently removes soft-deleted records.
// Purge operations return the object storage keys that belonged to the
// removed rows so the caller can delete the files.
type TrashRepository interface {
	List(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, offset, limit int) ([]domain.TrashItem, int, error)
	Count(ctx context.Context, tenantID uuid.UUID) (int, error)
	Restore(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, id uuid.UUID) error
	Purge(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, id uuid.UUID) ([]string, error)
	Empty(ctx context.Context, tenantID uuid.UUID) (int, []string, error)
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int, []string, error)
}
