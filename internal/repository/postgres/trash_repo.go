package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

type trashRepo struct {
	db *sqlx.DB
}

// NewTrashRepo creates a new PostgreSQL-backed TrashRepository.
func NewTrashRepo(db *sqlx.DB) port.TrashRepository {
	return &trashRepo{db: db}
}

type trashTable struct {
	name  string
	label string
	// keep holds back rows that must not be purged yet.
	keep string
}

var trashTables = map[domain.TrashKind]trashTable{
	domain.TrashKindUser: {
		name:  "users",
		label: "full_name",
		keep:  " AND NOT EXISTS (SELECT 1 FROM claims c WHERE c.client_id = users.id AND c.deleted_at IS NULL)",
	},
	domain.TrashKindGroup: {name: "client_groups", label: "name"},
	domain.TrashKindClaim: {name: "claims", label: "number || ' ' || title"},
}

// purgeOrder removes claims before users so keys of claims that cascade
// from a purged client are collected once.
var purgeOrder = []domain.TrashKind{domain.TrashKindClaim, domain.TrashKindUser, domain.TrashKindGroup}

func (r *trashRepo) List(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, offset, limit int) ([]domain.TrashItem, int, error) {
	kinds := purgeOrder
	if kind != "" {
		if _, ok := trashTables[kind]; !ok {
			return nil, 0, domain.ErrInvalidTrashKind
		}
		kinds = []domain.TrashKind{kind}
	}

	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		t := trashTables[k]
		parts = append(parts, fmt.Sprintf(
			"SELECT '%s' AS kind, id, %s AS label, deleted_at FROM %s WHERE tenant_id = $1 AND deleted_at IS NOT NULL",
			k, t.label, t.name))
	}
	union := strings.Join(parts, " UNION ALL ")

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM ("+union+") t", tenantID); err != nil {
		return nil, 0, fmt.Errorf("trashRepo.List count: %w", err)
	}

	var items []domain.TrashItem
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM ("+union+") t ORDER BY deleted_at DESC LIMIT $2 OFFSET $3",
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("trashRepo.List: %w", err)
	}
	return items, total, nil
}

func (r *trashRepo) Count(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT
			(SELECT COUNT(*) FROM users WHERE tenant_id = $1 AND deleted_at IS NOT NULL) +
			(SELECT COUNT(*) FROM client_groups WHERE tenant_id = $1 AND deleted_at IS NOT NULL) +
			(SELECT COUNT(*) FROM claims WHERE tenant_id = $1 AND deleted_at IS NOT NULL)`,
		tenantID)
	if err != nil {
		return 0, fmt.Errorf("trashRepo.Count: %w", err)
	}
	return total, nil
}

// Restore clears deleted_at. A user or group whose email or name was taken
// while it sat in the trash cannot be restored.
func (r *trashRepo) Restore(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, id uuid.UUID) error {
	t, ok := trashTables[kind]
	if !ok {
		return domain.ErrInvalidTrashKind
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			"UPDATE "+t.name+" SET deleted_at = NULL, updated_at = NOW() WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NOT NULL",
			id, tenantID)
		if err != nil {
			return err
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return domain.ErrNotInTrash
		}
		if kind == domain.TrashKindUser {
			_, err = tx.ExecContext(ctx,
				"UPDATE user_emails SET deleted_at = NULL WHERE user_id = $1 AND tenant_id = $2", id, tenantID)
		}
		return err
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotInTrash):
		return err
	case isUniqueViolation(err, constraintUserEmail):
		return domain.ErrDuplicateEmail
	case isUniqueViolation(err, constraintGroupName):
		return domain.ErrDuplicateGroupName
	default:
		return fmt.Errorf("trashRepo.Restore: %w", err)
	}
}

func (r *trashRepo) Purge(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, id uuid.UUID) ([]string, error) {
	if _, ok := trashTables[kind]; !ok {
		return nil, domain.ErrInvalidTrashKind
	}
	n, keys, err := r.purge(ctx, []domain.TrashKind{kind}, "tenant_id = ? AND id = ?", tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("trashRepo.Purge: %w", err)
	}
	if n > 0 {
		return keys, nil
	}
	if kind == domain.TrashKindUser {
		var trashed bool
		err := r.db.GetContext(ctx, &trashed,
			"SELECT EXISTS (SELECT 1 FROM users WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NOT NULL)",
			tenantID, id)
		if err != nil {
			return nil, fmt.Errorf("trashRepo.Purge: %w", err)
		}
		if trashed {
			return nil, domain.ErrClientHasClaims
		}
	}
	return nil, domain.ErrNotInTrash
}

func (r *trashRepo) Empty(ctx context.Context, tenantID uuid.UUID) (int, []string, error) {
	n, keys, err := r.purge(ctx, purgeOrder, "tenant_id = ?", tenantID)
	if err != nil {
		return 0, nil, fmt.Errorf("trashRepo.Empty: %w", err)
	}
	return n, keys, nil
}

// PurgeDeletedBefore removes items of every tenant trashed before cutoff.
func (r *trashRepo) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int, []string, error) {
	n, keys, err := r.purge(ctx, purgeOrder, "deleted_at < ?", cutoff)
	if err != nil {
		return 0, nil, fmt.Errorf("trashRepo.PurgeDeletedBefore: %w", err)
	}
	return n, keys, nil
}

// purge deletes the trashed rows of each kind matching cond and returns how
// many were removed plus the storage keys they owned. Clients with live
// claims stay in the trash until those claims are trashed too.
func (r *trashRepo) purge(ctx context.Context, kinds []domain.TrashKind, cond string, args ...interface{}) (int, []string, error) {
	var (
		total int
		keys  []string
	)
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, kind := range kinds {
			var ids []uuid.UUID
			table := trashTables[kind]
			query := tx.Rebind("SELECT id FROM " + table.name + " WHERE deleted_at IS NOT NULL AND " + cond + table.keep)
			if err := tx.SelectContext(ctx, &ids, query, args...); err != nil {
				return fmt.Errorf("selecting %s: %w", kind, err)
			}
			if len(ids) == 0 {
				continue
			}
			k, err := ownedKeys(ctx, tx, kind, ids)
			if err != nil {
				return fmt.Errorf("collecting %s keys: %w", kind, err)
			}
			keys = append(keys, k...)
			n, err := deleteIDs(ctx, tx, table.name, ids)
			if err != nil {
				return fmt.Errorf("deleting %s: %w", kind, err)
			}
			total += n
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return total, keys, nil
}

func ownedKeys(ctx context.Context, tx *sqlx.Tx, kind domain.TrashKind, ids []uuid.UUID) ([]string, error) {
	var query string
	var args []interface{}
	var err error
	switch kind {
	case domain.TrashKindClaim:
		query, args, err = sqlx.In(
			"SELECT file_key FROM claim_documents WHERE claim_id IN (?) AND file_key <> ''", ids)
	case domain.TrashKindUser:
		query, args, err = sqlx.In(
			`SELECT avatar_key FROM users WHERE id IN (?) AND avatar_key <> ''
			 UNION ALL
			 SELECT d.file_key FROM claim_documents d
			 INNER JOIN claims c ON c.id = d.claim_id
			 WHERE c.client_id IN (?) AND d.file_key <> ''`, ids, ids)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var keys []string
	if err := tx.SelectContext(ctx, &keys, tx.Rebind(query), args...); err != nil {
		return nil, err
	}
	return keys, nil
}

func deleteIDs(ctx context.Context, tx *sqlx.Tx, table string, ids []uuid.UUID) (int, error) {
	query, args, err := sqlx.In("DELETE FROM "+table+" WHERE id IN (?)", ids)
	if err != nil {
		return 0, err
	}
	result, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}
