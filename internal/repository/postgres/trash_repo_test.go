package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimdesk/internal/domain"
	"claimdesk/internal/repository/postgres"
)

func TestTrashRepo_Restore_User(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewTrashRepo(db)
	tenantID, userID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET deleted_at = NULL")).
		WithArgs(userID, tenantID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE user_emails SET deleted_at = NULL")).
		WithArgs(userID, tenantID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.Restore(context.Background(), tenantID, domain.TrashKindUser, userID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrashRepo_Restore_EmailTaken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewTrashRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET deleted_at = NULL").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE user_emails SET deleted_at = NULL").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_user_emails_tenant_email"})
	mock.ExpectRollback()

	err := repo.Restore(context.Background(), uuid.New(), domain.TrashKindUser, uuid.New())

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrashRepo_Restore_NotTrashed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewTrashRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE client_groups SET deleted_at = NULL").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Restore(context.Background(), uuid.New(), domain.TrashKindGroup, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotInTrash)
}

func TestTrashRepo_Restore_InvalidKind(t *testing.T) {
	db, _ := newMockDB(t)
	repo := postgres.NewTrashRepo(db)

	err := repo.Restore(context.Background(), uuid.New(), "invoice", uuid.New())

	assert.ErrorIs(t, err, domain.ErrInvalidTrashKind)
}

func TestTrashRepo_Purge_ClaimReturnsFileKeys(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewTrashRepo(db)
	tenantID, claimID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM claims WHERE deleted_at IS NOT NULL AND tenant_id = $1 AND id = $2")).
		WithArgs(tenantID, claimID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(claimID.String()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT file_key FROM claim_documents WHERE claim_id IN ($1)")).
		WithArgs(claimID).
		WillReturnRows(sqlmock.NewRows([]string{"file_key"}).AddRow("t/claims/a.pdf").AddRow("t/claims/b.jpg"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM claims WHERE id IN ($1)")).
		WithArgs(claimID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	keys, err := repo.Purge(context.Background(), tenantID, domain.TrashKindClaim, claimID)

	require.NoError(t, err)
	assert.Equal(t, []string{"t/claims/a.pdf", "t/claims/b.jpg"}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrashRepo_Purge_NotTrashed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewTrashRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM client_groups").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	_, err := repo.Purge(context.Background(), uuid.New(), domain.TrashKindGroup, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotInTrash)
}

func TestTrashRepo_Purge_ClientWithLiveClaims(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewTrashRepo(db)
	tenantID, userID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE deleted_at IS NOT NULL AND tenant_id = $1 AND id = $2 AND NOT EXISTS (SELECT 1 FROM claims c WHERE c.client_id = users.id AND c.deleted_at IS NULL)")).
		WithArgs(tenantID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM users WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NOT NULL)")).
		WithArgs(tenantID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	keys, err := repo.Purge(context.Background(), tenantID, domain.TrashKindUser, userID)

	assert.ErrorIs(t, err, domain.ErrClientHasClaims)
	assert.Nil(t, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrashRepo_Purge_UserNotTrashed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewTrashRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM users").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.Purge(context.Background(), uuid.New(), domain.TrashKindUser, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotInTrash)
}

func TestTrashRepo_PurgeDeletedBefore_AllKinds(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewTrashRepo(db)
	cutoff := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM claims WHERE deleted_at IS NOT NULL AND deleted_at < ").
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE deleted_at IS NOT NULL AND deleted_at < $1 AND NOT EXISTS (SELECT 1 FROM claims c")).
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID.String()))
	mock.ExpectQuery("SELECT avatar_key FROM users").
		WithArgs(userID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"avatar_key"}).AddRow("t/avatars/u.png"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id IN ($1)")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM client_groups WHERE deleted_at IS NOT NULL AND deleted_at < ").
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	n, keys, err := repo.PurgeDeletedBefore(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"t/avatars/u.png"}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrashRepo_List_InvalidKind(t *testing.T) {
	db, _ := newMockDB(t)
	repo := postgres.NewTrashRepo(db)

	_, _, err := repo.List(context.Background(), uuid.New(), "invoice", 0, 20)

	assert.ErrorIs(t, err, domain.ErrInvalidTrashKind)
}
