package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"claimdesk/internal/domain"
)

func sampleClaims() []domain.Claim {
	incident := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	return []domain.Claim{
		{
			ID:           uuid.New(),
			Number:       "CLM-2026-000001",
			ClaimType:    domain.ClaimTypeReimbursement,
			Status:       domain.ClaimStatusInReview,
			ClientName:   "Ana Pérez",
			Title:        "Consulta, urgencias",
			Amount:       decimal.RequireFromString("1250.5"),
			Currency:     "MXN",
			IncidentDate: &incident,
			CreatedAt:    time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestCSVWriter_BOMHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteClaims(sampleClaims()))
	require.NoError(t, w.Close())

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, BOM))

	rows, err := csv.NewReader(bytes.NewReader(data[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Número", rows[0][0])
	assert.Len(t, rows[0], len(columns))

	row := rows[1]
	assert.Equal(t, "CLM-2026-000001", row[0])
	assert.Equal(t, "en_revision", row[2])
	assert.Equal(t, "Consulta, urgencias", row[4])
	assert.Equal(t, "1250.50", row[5])
	assert.Equal(t, "2026-02-14", row[7])
	assert.Equal(t, "", row[8])
	assert.Equal(t, "2026-02-15T10:00:00Z", row[9])
}

func TestXLSXWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewXLSXWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteClaims(sampleClaims()))
	require.NoError(t, w.Close())

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Número", rows[0][0])
	assert.Equal(t, "Ana Pérez", rows[1][3])
	assert.Equal(t, "1250.5", rows[1][5])
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "reclamos_Seguros_Acme_2026-10-18.xlsx",
		BuildFilename("reclamos Seguros Acme!", FormatXLSX, now))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a_b-c", SanitizeFilename("  a / b-c  "))
	assert.Len(t, SanitizeFilename(string(bytes.Repeat([]byte("x"), 150))), 100)
}
