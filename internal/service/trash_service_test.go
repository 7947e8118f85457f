package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"claimdesk/internal/config"
	"claimdesk/internal/domain"
	"claimdesk/internal/service"
	"claimdesk/mocks"
)

func setupTrash(retention time.Duration) (*mocks.MockTrashRepo, *mocks.MockObjectStorage, service.TrashService) {
	repo := new(mocks.MockTrashRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewTrashService(repo, storage, testS3Config(), config.TrashConfig{Retention: retention}, zap.NewNop())
	return repo, storage, svc
}

func TestTrashService_List_Decorates(t *testing.T) {
	repo, _, svc := setupTrash(0)
	tenantID := uuid.New()
	deleted := time.Now().Add(-10 * 24 * time.Hour)
	repo.On("List", mock.Anything, tenantID, domain.TrashKindClaim, 0, 20).
		Return([]domain.TrashItem{{Kind: domain.TrashKindClaim, ID: uuid.New(), Label: "CLM-2026-000001", DeletedAt: deleted}}, 1, nil)

	items, total, err := svc.List(context.Background(), tenantID, domain.TrashKindClaim, 0, 20)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 20, items[0].DaysRemaining)
	assert.Equal(t, deleted.Add(domain.DefaultTrashRetention), items[0].ExpiresAt)
}

func TestTrashService_InvalidKind(t *testing.T) {
	_, _, svc := setupTrash(0)
	ctx := context.Background()

	_, _, err := svc.List(ctx, uuid.New(), "invoice", 0, 20)
	assert.ErrorIs(t, err, domain.ErrInvalidTrashKind)
	assert.ErrorIs(t, svc.Restore(ctx, uuid.New(), "", uuid.New()), domain.ErrInvalidTrashKind)
	assert.ErrorIs(t, svc.Purge(ctx, uuid.New(), "invoice", uuid.New()), domain.ErrInvalidTrashKind)
}

func TestTrashService_Restore_NotInTrash(t *testing.T) {
	repo, _, svc := setupTrash(0)
	tenantID, id := uuid.New(), uuid.New()
	repo.On("Restore", mock.Anything, tenantID, domain.TrashKindUser, id).Return(domain.ErrNotInTrash)

	err := svc.Restore(context.Background(), tenantID, domain.TrashKindUser, id)

	assert.ErrorIs(t, err, domain.ErrNotInTrash)
}

func TestTrashService_Purge_DeletesObjects(t *testing.T) {
	repo, storage, svc := setupTrash(0)
	tenantID, id := uuid.New(), uuid.New()
	keys := []string{"tenants/a/claims/b/1.pdf", "tenants/a/claims/b/2.png"}
	repo.On("Purge", mock.Anything, tenantID, domain.TrashKindClaim, id).Return(keys, nil)
	storage.On("DeleteMany", mock.Anything, "claimdesk-test", keys).Return(errors.New("s3 down"))

	err := svc.Purge(context.Background(), tenantID, domain.TrashKindClaim, id)

	require.NoError(t, err)
	storage.AssertExpectations(t)
}

func TestTrashService_Empty(t *testing.T) {
	repo, storage, svc := setupTrash(0)
	tenantID := uuid.New()
	repo.On("Empty", mock.Anything, tenantID).Return(3, []string{}, nil)

	res, err := svc.Empty(context.Background(), tenantID)

	require.NoError(t, err)
	assert.Equal(t, 3, res.Affected)
	storage.AssertNumberOfCalls(t, "DeleteMany", 0)
}

func TestTrashService_PurgeExpired_UsesRetention(t *testing.T) {
	repo, storage, svc := setupTrash(7 * 24 * time.Hour)
	before := time.Now().Add(-7 * 24 * time.Hour)
	repo.On("PurgeDeletedBefore", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		return !cutoff.Before(before) && cutoff.Before(before.Add(time.Minute))
	})).Return(2, []string{"k1"}, nil)
	storage.On("DeleteMany", mock.Anything, "claimdesk-test", []string{"k1"}).Return(nil)

	n, err := svc.PurgeExpired(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	repo.AssertExpectations(t)
}

func TestTrashPurgeWorker_RunOnce(t *testing.T) {
	trash := new(mocks.MockTrashService)
	trash.On("PurgeExpired", mock.Anything).Return(4, nil).Once()
	trash.On("PurgeExpired", mock.Anything).Return(0, errors.New("db gone")).Once()

	worker := service.NewTrashPurgeWorker(trash, 0, zap.NewNop())
	worker.RunOnce()
	worker.RunOnce()

	trash.AssertExpectations(t)
}

func TestTrashPurgeWorker_StartStopsOnCancel(t *testing.T) {
	ran := make(chan struct{}, 1)
	trash := new(mocks.MockTrashService)
	trash.On("PurgeExpired", mock.Anything).Return(0, nil).Run(func(mock.Arguments) {
		select {
		case ran <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		service.NewTrashPurgeWorker(trash, time.Hour, zap.NewNop()).Start(ctx)
		close(done)
	}()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("worker did not run an initial pass")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
