package service

import (
	"context"

	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

// StatsService provides dashboard counters.
type StatsService interface {
	GetStats(ctx context.Context, actor Actor) (*domain.Stats, error)
}

type statsService struct {
	statsRepo port.StatsRepository
	trashRepo port.TrashRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository, trashRepo port.TrashRepository) StatsService {
	return &statsService{statsRepo: statsRepo, trashRepo: trashRepo}
}

// GetStats counts what the actor would see in the claim list. Admins also
// get the number of items waiting in the trash.
func (s *statsService) GetStats(ctx context.Context, actor Actor) (*domain.Stats, error) {
	stats, err := s.statsRepo.GetClaimStats(ctx, actor.TenantID, claimScope(actor, domain.ClaimFilter{}))
	if err != nil {
		return nil, err
	}
	if actor.Role.IsAdmin() {
		n, err := s.trashRepo.Count(ctx, actor.TenantID)
		if err != nil {
			return nil, err
		}
		stats.TrashedItems = n
	}
	return stats, nil
}
