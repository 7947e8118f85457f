package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimdesk/internal/validation"
)

func TestPhone(t *testing.T) {
	valid := []string{
		"+525512345678", "+52 55 1234 5678", "+1-202-555-0143", " +34612345678 ",
		"+1 234567", "+52 123456", "+123 456789012345",
	}
	invalid := []string{
		"5512345678", "+0 55 1234 5678", "+52", "+52 55 abc 5678", "", "++525512345678",
		"+123456", "+1234 567890123456",
	}

	for _, p := range valid {
		assert.True(t, validation.Phone(p), p)
	}
	for _, p := range invalid {
		assert.False(t, validation.Phone(p), p)
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+525512345678", validation.NormalizePhone(" +52 55-1234-5678 "))
}

func TestHexColor(t *testing.T) {
	assert.True(t, validation.HexColor("#1E3A8a"))
	assert.False(t, validation.HexColor("1E3A8A"))
	assert.False(t, validation.HexColor("#FFF"))
}

func TestTenantSlug(t *testing.T) {
	assert.True(t, validation.TenantSlug("acme-seguros"))
	assert.True(t, validation.TenantSlug("a1b"))
	assert.False(t, validation.TenantSlug("ab"))
	assert.False(t, validation.TenantSlug("-acme"))
	assert.False(t, validation.TenantSlug("Acme"))
	assert.False(t, validation.TenantSlug("acme_seguros"))
}

func TestEmail(t *testing.T) {
	assert.True(t, validation.Email("ana@example.com"))
	assert.False(t, validation.Email("ana@"))
	assert.False(t, validation.Email(""))
}

func TestRegisterGinValidators(t *testing.T) {
	require.NoError(t, validation.RegisterGinValidators())
}
