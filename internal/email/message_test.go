package email_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"claimdesk/internal/domain"
	"claimdesk/internal/email"
)

func TestPasswordReset_DefaultBrand(t *testing.T) {
	msg := email.PasswordReset(nil, "https://portal.example.com", "Ana", "tok en")

	assert.Equal(t, "https://portal.example.com/reset-password?token=tok+en", msg.Link)
	assert.Contains(t, msg.Subject, "ClaimDesk")
	assert.Contains(t, msg.HTML, "#1E3A8A")
	assert.Empty(t, msg.ReplyTo)
}

func TestDocumentRejected_UsesBrandAndEscapes(t *testing.T) {
	brand := &domain.TenantBranding{DisplayName: "Seguros Acme", PrimaryColor: "#112233", SupportEmail: "ayuda@acme.mx"}
	claim := &domain.Claim{ID: uuid.New(), Number: "CLM-2026-000007"}

	msg := email.DocumentRejected(brand, "https://acme.mx", "Ana", claim, "Factura", "ilegible <scan>")

	assert.Equal(t, "Seguros Acme", msg.FromName)
	assert.Equal(t, "ayuda@acme.mx", msg.ReplyTo)
	assert.Contains(t, msg.Subject, "CLM-2026-000007")
	assert.Contains(t, msg.HTML, "#112233")
	assert.Contains(t, msg.HTML, "ilegible &lt;scan&gt;")
	assert.Contains(t, msg.Text, "ilegible <scan>")
	assert.Equal(t, "https://acme.mx/claims/"+claim.ID.String(), msg.Link)
}

func TestClaimVerified(t *testing.T) {
	claim := &domain.Claim{ID: uuid.New(), Number: "CLM-2026-000001", Title: "Consulta"}

	msg := email.ClaimVerified(&domain.TenantBranding{}, "https://x", "Ana", claim)

	assert.Equal(t, "ClaimDesk", msg.FromName)
	assert.Contains(t, msg.Text, "Consulta")
}
