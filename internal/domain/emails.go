package domain

import "strings"

// EmailEntry is an email address as submitted in a user form.
type EmailEntry struct {
	Email     string `json:"email" binding:"required,email"`
	IsPrimary bool   `json:"is_primary"`
}

// NormalizeEmailSet trims and lower-cases a submitted email list and checks
// the set rules: at least one email, no address listed twice (case-insensitive)
// and exactly one primary.
func NormalizeEmailSet(entries []EmailEntry) ([]EmailEntry, error) {
	if len(entries) == 0 {
		return nil, ErrNoEmails
	}
	seen := make(map[string]bool, len(entries))
	primaries := 0
	out := make([]EmailEntry, 0, len(entries))
	for _, e := range entries {
		addr := strings.ToLower(strings.TrimSpace(e.Email))
		if addr == "" {
			return nil, ErrInvalidEmail
		}
		if seen[addr] {
			return nil, ErrDuplicateUserEmail
		}
		seen[addr] = true
		if e.IsPrimary {
			primaries++
		}
		out = append(out, EmailEntry{Email: addr, IsPrimary: e.IsPrimary})
	}
	if primaries != 1 {
		return nil, ErrPrimaryEmailCount
	}
	return out, nil
}

// PrimaryEmail returns the primary address of a normalized set.
func PrimaryEmail(entries []EmailEntry) string {
	for _, e := range entries {
		if e.IsPrimary {
			return e.Email
		}
	}
	return ""
}

// NormalizeEmail lower-cases and trims a single address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
