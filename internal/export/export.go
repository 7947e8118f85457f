// Package export writes claim listings as CSV or XLSX spreadsheets.
package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"claimdesk/internal/domain"
)

// Format is a supported export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a query value to a Format, defaulting to CSV.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Writer streams claims into a spreadsheet. Close must be called to finish
// the file.
type Writer interface {
	WriteHeader() error
	WriteClaims(claims []domain.Claim) error
	Close() error
}

// NewWriter returns the Writer for format writing to w.
func NewWriter(format Format, w io.Writer) (Writer, error) {
	switch format {
	case FormatCSV:
		return NewCSVWriter(w), nil
	case FormatXLSX:
		return NewXLSXWriter(w)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// columns defines the header row shared by both formats.
var columns = []string{
	"Número",
	"Tipo",
	"Estado",
	"Cliente",
	"Título",
	"Monto",
	"Moneda",
	"Fecha del incidente",
	"Verificado el",
	"Creado el",
}

// claimToRow converts a claim to the string cells of one row.
func claimToRow(c *domain.Claim) []string {
	return []string{
		c.Number,
		string(c.ClaimType),
		string(c.Status),
		c.ClientName,
		c.Title,
		c.Amount.StringFixed(2),
		c.Currency,
		formatDate(c.IncidentDate),
		formatTime(c.VerifiedAt),
		c.CreatedAt.Format(time.RFC3339),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{format}.
func BuildFilename(name string, format Format, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), now.Format("2006-01-02"), format)
}
