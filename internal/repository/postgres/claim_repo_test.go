package postgres_test

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimdesk/internal/domain"
	"claimdesk/internal/repository/postgres"
)

func TestClaimRepo_Create_NumbersAndChecklist(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewClaimRepo(db)
	tenantID := uuid.New()
	year := time.Now().UTC().Year()

	claim := &domain.Claim{
		TenantID:  tenantID,
		ClientID:  uuid.New(),
		ClaimType: domain.ClaimTypeScheduling,
		Title:     "Cirugía programada",
		Amount:    decimal.RequireFromString("15000.50"),
		Currency:  "MXN",
		Status:    domain.ClaimStatusPending,
	}
	docs := []domain.ClaimDocument{
		{Name: "Identificación oficial", Required: true, Position: 1, Status: domain.DocumentStatusPending},
		{Name: "Orden médica", Required: true, Position: 2, Status: domain.DocumentStatusPending},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO claim_sequences").
		WithArgs(tenantID, year).
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(42))
	mock.ExpectExec("INSERT INTO claims").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO claim_documents").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO claim_documents").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), claim, docs)

	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("CLM-%d-000042", year), claim.Number)
	for _, d := range docs {
		assert.Equal(t, claim.ID, d.ClaimID)
		assert.Equal(t, tenantID, d.TenantID)
		assert.NotEqual(t, uuid.Nil, d.ID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRepo_Create_RollsBackOnDocumentFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewClaimRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO claim_sequences").
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(1))
	mock.ExpectExec("INSERT INTO claims").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO claim_documents").WillReturnError(fmt.Errorf("boom"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &domain.Claim{TenantID: uuid.New()},
		[]domain.ClaimDocument{{Name: "Factura"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "claimRepo.Create")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRepo_List_ScopeAndInclusiveDates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewClaimRepo(db)
	tenantID := uuid.New()
	clientID := uuid.New()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 15, 30, 0, 0, time.UTC)
	endExclusive := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE c.tenant_id = $1 AND c.deleted_at IS NULL AND c.client_id = $2 AND c.status = $3 AND c.created_at >= $4 AND c.created_at < $5")).
		WithArgs(tenantID, clientID, "en_revision", from, endExclusive).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY c.created_at DESC LIMIT $6 OFFSET $7")).
		WithArgs(tenantID, clientID, "en_revision", from, endExclusive, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "number", "client_id", "client_name", "claim_type", "title", "amount", "status"}).
			AddRow(uuid.New().String(), tenantID.String(), "CLM-2026-000001", clientID.String(), "Ana", "reembolso", "Consulta", "1200.00", "en_revision"))

	claims, total, err := repo.List(context.Background(), tenantID, domain.ClaimFilter{
		Status:        domain.ClaimStatusInReview,
		From:          &from,
		To:            &to,
		ScopeClientID: &clientID,
	}, 0, 10)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, claims, 1)
	assert.Equal(t, "Ana", claims[0].ClientName)
	assert.True(t, claims[0].Amount.Equal(decimal.RequireFromString("1200")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewClaimRepo(db)

	mock.ExpectQuery("FROM claims c").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrClaimNotFound)
}

func TestClaimRepo_MarkInReview_OnlyFromPending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewClaimRepo(db)
	tenantID, claimID := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE claims SET status = $1")).
		WithArgs("en_revision", claimID, tenantID, "pendiente").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.MarkInReview(context.Background(), tenantID, claimID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimDocumentRepo_UpdateReview_StaleStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewClaimDocumentRepo(db)

	mock.ExpectExec("UPDATE claim_documents SET").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateReview(context.Background(),
		&domain.ClaimDocument{ID: uuid.New(), TenantID: uuid.New(), Status: domain.DocumentStatusApproved},
		domain.DocumentStatusReceived)

	assert.ErrorIs(t, err, domain.ErrInvalidDocumentTransition)
}
