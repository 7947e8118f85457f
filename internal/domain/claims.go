package domain

import (
	"fmt"
	"strings"
)

// DefaultCurrency is used when a claim is submitted without one.
const DefaultCurrency = "MXN"

// ChecklistItem is a document a claim of a given type must carry.
type ChecklistItem struct {
	Name     string
	Required bool
}

var checklists = map[ClaimType][]ChecklistItem{
	ClaimTypeReimbursement: {
		{Name: "Identificación oficial", Required: true},
		{Name: "Factura", Required: true},
		{Name: "Informe médico", Required: true},
		{Name: "Recetas", Required: false},
	},
	ClaimTypeScheduling: {
		{Name: "Identificación oficial", Required: true},
		{Name: "Orden médica", Required: true},
		{Name: "Informe médico", Required: true},
	},
}

// Checklist returns the document checklist for a claim type.
func Checklist(t ClaimType) []ChecklistItem {
	items := checklists[t]
	out := make([]ChecklistItem, len(items))
	copy(out, items)
	return out
}

// ClaimNumber formats the human-facing claim reference.
func ClaimNumber(year int, seq int64) string {
	return fmt.Sprintf("CLM-%d-%06d", year, seq)
}

// NormalizeCurrency upper-cases a currency code and applies the default.
func NormalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return DefaultCurrency
	}
	return c
}
