package export

import (
	"encoding/csv"
	"io"

	"claimdesk/internal/domain"
)

// BOM is the UTF-8 byte order mark Excel on Windows needs to detect UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter wraps csv.Writer for exporting claims.
type CSVWriter struct {
	out io.Writer
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{out: w, csv: csv.NewWriter(w)}
}

// WriteHeader writes the BOM followed by the header row.
func (w *CSVWriter) WriteHeader() error {
	if _, err := w.out.Write(BOM); err != nil {
		return err
	}
	return w.csv.Write(columns)
}

// WriteClaims writes one row per claim.
func (w *CSVWriter) WriteClaims(claims []domain.Claim) error {
	for i := range claims {
		if err := w.csv.Write(claimToRow(&claims[i])); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes buffered rows.
func (w *CSVWriter) Close() error {
	w.csv.Flush()
	return w.csv.Error()
}
