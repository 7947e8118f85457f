package noop_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"claimdesk/internal/domain"
	"claimdesk/internal/email/noop"
	"claimdesk/internal/port"
)

func TestNoopSender_LogsLink(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sender := noop.NewNoopSender("https://portal.test", zap.New(core))
	claim := &domain.Claim{ID: uuid.New(), Number: "CLM-2026-000003"}

	err := sender.SendClaimVerifiedEmail(context.Background(), nil,
		port.EmailRecipient{Email: "ana@example.com", Name: "Ana"}, claim)

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "ana@example.com", fields["to"])
	assert.Equal(t, "https://portal.test/claims/"+claim.ID.String(), fields["link"])
}
