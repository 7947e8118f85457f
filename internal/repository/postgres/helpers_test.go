package postgres_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "pgx"), mock
}

var userColumns = []string{
	"id", "tenant_id", "email", "password_hash", "full_name", "phone", "role", "is_active",
	"avatar_key", "group_id", "password_reset_token_id", "deleted_at", "created_at", "updated_at",
}
