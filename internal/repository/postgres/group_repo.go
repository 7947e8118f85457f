package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

type groupRepo struct {
	db *sqlx.DB
}

// NewGroupRepo creates a new PostgreSQL-backed GroupRepository.
func NewGroupRepo(db *sqlx.DB) port.GroupRepository {
	return &groupRepo{db: db}
}

const groupSelect = `SELECT g.id, g.tenant_id, g.name, g.description, g.deleted_at, g.created_by,
	g.created_at, g.updated_at,
	(SELECT COUNT(*) FROM users u
	 WHERE u.group_id = g.id AND u.deleted_at IS NULL) AS member_count
FROM client_groups g`

func (r *groupRepo) Create(ctx context.Context, group *domain.ClientGroup) error {
	group.ID = uuid.New()
	now := time.Now().UTC()
	group.CreatedAt = now
	group.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO client_groups (id, tenant_id, name, description, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		group.ID, group.TenantID, group.Name, group.Description, group.CreatedBy,
		group.CreatedAt, group.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, constraintGroupName) {
			return domain.ErrDuplicateGroupName
		}
		return fmt.Errorf("groupRepo.Create: %w", err)
	}
	return nil
}

func (r *groupRepo) GetByID(ctx context.Context, tenantID, groupID uuid.UUID) (*domain.ClientGroup, error) {
	var group domain.ClientGroup
	err := r.db.GetContext(ctx, &group,
		groupSelect+" WHERE g.id = $1 AND g.tenant_id = $2 AND g.deleted_at IS NULL", groupID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("groupRepo.GetByID: %w", err)
	}
	return &group, nil
}

func (r *groupRepo) List(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.ClientGroup, int, error) {
	var w whereBuilder
	w.add("g.tenant_id = ?", tenantID)
	w.add("g.deleted_at IS NULL")
	if search != "" {
		w.add("g.name ILIKE ?", likePattern(search))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM client_groups g"+w.sql(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("groupRepo.List count: %w", err)
	}

	var groups []domain.ClientGroup
	query := groupSelect + w.sql() + " ORDER BY g.name LIMIT " + w.next(1) + " OFFSET " + w.next(2)
	if err := r.db.SelectContext(ctx, &groups, query, append(w.args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("groupRepo.List: %w", err)
	}
	return groups, total, nil
}

func (r *groupRepo) Update(ctx context.Context, group *domain.ClientGroup) error {
	group.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE client_groups SET name = $1, description = $2, updated_at = $3
		 WHERE id = $4 AND tenant_id = $5 AND deleted_at IS NULL`,
		group.Name, group.Description, group.UpdatedAt, group.ID, group.TenantID)
	if err != nil {
		if isUniqueViolation(err, constraintGroupName) {
			return domain.ErrDuplicateGroupName
		}
		return fmt.Errorf("groupRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *groupRepo) Trash(ctx context.Context, tenantID uuid.UUID, groupIDs []uuid.UUID) (int, error) {
	if len(groupIDs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	query, args, err := sqlx.In(
		`UPDATE client_groups SET deleted_at = ?, updated_at = ?
		 WHERE tenant_id = ? AND id IN (?) AND deleted_at IS NULL`,
		now, now, tenantID, groupIDs)
	if err != nil {
		return 0, fmt.Errorf("groupRepo.Trash: %w", err)
	}
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("groupRepo.Trash: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

// AddMembers moves clients into the group. Non-client users are skipped by
// the role condition, so the returned count can be lower than len(userIDs).
func (r *groupRepo) AddMembers(ctx context.Context, tenantID, groupID uuid.UUID, userIDs []uuid.UUID) (int, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(
		`UPDATE users SET group_id = ?, updated_at = NOW()
		 WHERE tenant_id = ? AND id IN (?) AND role = ? AND deleted_at IS NULL`,
		groupID, tenantID, userIDs, domain.RoleClient)
	if err != nil {
		return 0, fmt.Errorf("groupRepo.AddMembers: %w", err)
	}
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("groupRepo.AddMembers: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

func (r *groupRepo) RemoveMember(ctx context.Context, tenantID, groupID, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET group_id = NULL, updated_at = NOW()
		 WHERE tenant_id = $1 AND group_id = $2 AND id = $3`,
		tenantID, groupID, userID)
	if err != nil {
		return fmt.Errorf("groupRepo.RemoveMember: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *groupRepo) ListMembers(ctx context.Context, tenantID, groupID uuid.UUID, offset, limit int) ([]domain.User, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM users WHERE tenant_id = $1 AND group_id = $2 AND deleted_at IS NULL",
		tenantID, groupID)
	if err != nil {
		return nil, 0, fmt.Errorf("groupRepo.ListMembers count: %w", err)
	}

	var users []domain.User
	err = r.db.SelectContext(ctx, &users,
		`SELECT * FROM users WHERE tenant_id = $1 AND group_id = $2 AND deleted_at IS NULL
		 ORDER BY full_name LIMIT $3 OFFSET $4`,
		tenantID, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("groupRepo.ListMembers: %w", err)
	}
	return users, total, nil
}
