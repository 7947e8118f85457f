package domain

import (
	"math"
	"time"
)

// DefaultTrashRetention is how long a soft-deleted record stays restorable.
const DefaultTrashRetention = 30 * 24 * time.Hour

// TrashExpiry returns when an item deleted at deletedAt is purged.
func TrashExpiry(deletedAt time.Time, retention time.Duration) time.Time {
	return deletedAt.Add(retention)
}

// TrashDaysRemaining returns the whole days, rounded up, until an item is
// purged. It is never negative.
func TrashDaysRemaining(deletedAt, now time.Time, retention time.Duration) int {
	left := TrashExpiry(deletedAt, retention).Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours() / 24))
}

// Decorate fills the derived expiry fields of a trash item.
func (t *TrashItem) Decorate(now time.Time, retention time.Duration) {
	t.ExpiresAt = TrashExpiry(t.DeletedAt, retention)
	t.DaysRemaining = TrashDaysRemaining(t.DeletedAt, now, retention)
}
