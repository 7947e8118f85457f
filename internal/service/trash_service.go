package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"claimdesk/internal/config"
	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

// TrashService manages soft-deleted users, groups and claims.
type TrashService interface {
	List(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, offset, limit int) ([]domain.TrashItem, int, error)
	Restore(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, id uuid.UUID) error
	Purge(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, id uuid.UUID) error
	Empty(ctx context.Context, tenantID uuid.UUID) (*BatchResult, error)
	// PurgeExpired permanently deletes items of every tenant whose
	// retention has elapsed.
	PurgeExpired(ctx context.Context) (int, error)
}

type trashService struct {
	repo      port.TrashRepository
	objects   *objectStore
	retention time.Duration
	log       *zap.Logger
	now       func() time.Time
}

// NewTrashService creates a new TrashService implementation.
func NewTrashService(
	repo port.TrashRepository,
	storage port.ObjectStorage,
	s3Cfg *config.S3Config,
	trashCfg config.TrashConfig,
	log *zap.Logger,
) TrashService {
	retention := trashCfg.Retention
	if retention <= 0 {
		retention = domain.DefaultTrashRetention
	}
	return &trashService{
		repo:      repo,
		objects:   &objectStore{storage: storage, cfg: s3Cfg, log: log},
		retention: retention,
		log:       log,
		now:       time.Now,
	}
}

func (s *trashService) List(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, offset, limit int) ([]domain.TrashItem, int, error) {
	if kind != "" && !domain.ValidTrashKinds[kind] {
		return nil, 0, domain.ErrInvalidTrashKind
	}
	items, total, err := s.repo.List(ctx, tenantID, kind, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	for i := range items {
		items[i].Decorate(now, s.retention)
	}
	return items, total, nil
}

func (s *trashService) Restore(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, id uuid.UUID) error {
	if !domain.ValidTrashKinds[kind] {
		return domain.ErrInvalidTrashKind
	}
	return s.repo.Restore(ctx, tenantID, kind, id)
}

func (s *trashService) Purge(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, id uuid.UUID) error {
	if !domain.ValidTrashKinds[kind] {
		return domain.ErrInvalidTrashKind
	}
	keys, err := s.repo.Purge(ctx, tenantID, kind, id)
	if err != nil {
		return err
	}
	s.objects.remove(ctx, keys...)
	s.log.Info("trash item purged",
		zap.String("tenant_id", tenantID.String()),
		zap.String("kind", string(kind)),
		zap.String("id", id.String()))
	return nil
}

func (s *trashService) Empty(ctx context.Context, tenantID uuid.UUID) (*BatchResult, error) {
	n, keys, err := s.repo.Empty(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	s.objects.remove(ctx, keys...)
	s.log.Info("trash emptied", zap.String("tenant_id", tenantID.String()), zap.Int("purged", n))
	return &BatchResult{Affected: n}, nil
}

func (s *trashService) PurgeExpired(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.retention)
	n, keys, err := s.repo.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	s.objects.remove(ctx, keys...)
	return n, nil
}
