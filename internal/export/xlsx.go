package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"claimdesk/internal/domain"
)

// SheetName is the worksheet holding exported claims.
const SheetName = "Reclamos"

// amountColumn is the 0-based index of the numeric amount cell.
const amountColumn = 5

// XLSXWriter streams claims into a single-sheet workbook. The workbook is
// written to the destination on Close.
type XLSXWriter struct {
	out    io.Writer
	file   *excelize.File
	stream *excelize.StreamWriter
	row    int
}

// NewXLSXWriter creates an XLSXWriter that writes to w.
func NewXLSXWriter(w io.Writer) (*XLSXWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("creating stream writer: %w", err)
	}
	return &XLSXWriter{out: w, file: f, stream: sw, row: 1}, nil
}

func (w *XLSXWriter) WriteHeader() error {
	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	cells := make([]interface{}, len(columns))
	for i, c := range columns {
		cells[i] = c
	}
	return w.setRow(cells, excelize.RowOpts{StyleID: style})
}

// WriteClaims writes one row per claim. Amounts are stored as numbers so
// they can be summed in the spreadsheet.
func (w *XLSXWriter) WriteClaims(claims []domain.Claim) error {
	for i := range claims {
		row := claimToRow(&claims[i])
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cells[amountColumn] = claims[i].Amount.InexactFloat64()
		if err := w.setRow(cells); err != nil {
			return err
		}
	}
	return nil
}

func (w *XLSXWriter) setRow(cells []interface{}, opts ...excelize.RowOpts) error {
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.stream.SetRow(cell, cells, opts...); err != nil {
		return fmt.Errorf("writing row %d: %w", w.row, err)
	}
	w.row++
	return nil
}

// Close finishes the sheet and writes the workbook.
func (w *XLSXWriter) Close() error {
	defer w.file.Close()
	if err := w.stream.Flush(); err != nil {
		return fmt.Errorf("flushing sheet: %w", err)
	}
	if err := w.file.Write(w.out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
