package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"claimdesk/internal/domain"
	"claimdesk/internal/service"
	"claimdesk/mocks"
)

func TestStatsService_Admin_IncludesTrash(t *testing.T) {
	stats := new(mocks.MockStatsRepo)
	trash := new(mocks.MockTrashRepo)
	svc := service.NewStatsService(stats, trash)
	admin := actorFor(domain.RoleAdmin)

	stats.On("GetClaimStats", mock.Anything, admin.TenantID, mock.MatchedBy(func(f domain.ClaimFilter) bool {
		return f.ScopeClientID == nil && f.ScopeAgentID == nil
	})).Return(&domain.Stats{TotalClaims: 12, ClaimsPending: 4}, nil)
	trash.On("Count", mock.Anything, admin.TenantID).Return(3, nil)

	got, err := svc.GetStats(context.Background(), admin)

	require.NoError(t, err)
	assert.Equal(t, 12, got.TotalClaims)
	assert.Equal(t, 3, got.TrashedItems)
}

func TestStatsService_Client_Scoped(t *testing.T) {
	stats := new(mocks.MockStatsRepo)
	trash := new(mocks.MockTrashRepo)
	svc := service.NewStatsService(stats, trash)
	client := actorFor(domain.RoleClient)

	stats.On("GetClaimStats", mock.Anything, client.TenantID, mock.MatchedBy(func(f domain.ClaimFilter) bool {
		return f.ScopeClientID != nil && *f.ScopeClientID == client.UserID
	})).Return(&domain.Stats{TotalClaims: 2}, nil)

	got, err := svc.GetStats(context.Background(), client)

	require.NoError(t, err)
	assert.Zero(t, got.TrashedItems)
	trash.AssertNumberOfCalls(t, "Count", 0)
}
