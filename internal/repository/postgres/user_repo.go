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

type userRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new PostgreSQL-backed UserRepository.
func NewUserRepo(db *sqlx.DB) port.UserRepository {
	return &userRepo{db: db}
}

const userEmailColumns = "id, user_id, tenant_id, email, is_primary, created_at"

func (r *userRepo) Create(ctx context.Context, user *domain.User, emails []domain.EmailEntry) error {
	user.ID = uuid.New()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Email = domain.PrimaryEmail(emails)

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, tenant_id, email, password_hash, full_name, phone, role,
				is_active, avatar_key, group_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			user.ID, user.TenantID, user.Email, user.PasswordHash, user.FullName, user.Phone,
			user.Role, user.IsActive, user.AvatarKey, user.GroupID, user.CreatedAt, user.UpdatedAt)
		if err != nil {
			return err
		}
		return insertEmails(ctx, tx, user.TenantID, user.ID, emails, now)
	})
	if err != nil {
		if isUniqueViolation(err, constraintUserEmail) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("userRepo.Create: %w", err)
	}
	return nil
}

func insertEmails(ctx context.Context, tx *sqlx.Tx, tenantID, userID uuid.UUID, emails []domain.EmailEntry, now time.Time) error {
	for _, e := range emails {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO user_emails (id, user_id, tenant_id, email, is_primary, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), userID, tenantID, e.Email, e.IsPrimary, now)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		"SELECT * FROM users WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL", userID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}
	return &user, nil
}

// GetByEmail matches any of the user's addresses, not only the primary.
func (r *userRepo) GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		`SELECT u.* FROM users u
		 INNER JOIN user_emails e ON e.user_id = u.id
		 WHERE e.tenant_id = $1 AND e.email = $2 AND e.deleted_at IS NULL AND u.deleted_at IS NULL`,
		tenantID, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", err)
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context, tenantID uuid.UUID, filter domain.UserFilter, offset, limit int) ([]domain.User, int, error) {
	var w whereBuilder
	w.add("u.tenant_id = ?", tenantID)
	w.add("u.deleted_at IS NULL")
	if filter.Role != "" {
		w.add("u.role = ?", filter.Role)
	}
	if filter.IsActive != nil {
		w.add("u.is_active = ?", *filter.IsActive)
	}
	if filter.GroupID != nil {
		w.add("u.group_id = ?", *filter.GroupID)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		w.add(`(u.full_name ILIKE ? OR EXISTS (
			SELECT 1 FROM user_emails e WHERE e.user_id = u.id AND e.email ILIKE ?))`, pattern, pattern)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM users u"+w.sql(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("userRepo.List count: %w", err)
	}

	query := "SELECT u.* FROM users u" + w.sql() +
		" ORDER BY u.created_at DESC LIMIT " + w.next(1) + " OFFSET " + w.next(2)
	var users []domain.User
	if err := r.db.SelectContext(ctx, &users, query, append(w.args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("userRepo.List: %w", err)
	}
	return users, total, nil
}

func (r *userRepo) ListAgents(ctx context.Context, tenantID uuid.UUID) ([]domain.AgentSummary, error) {
	var agents []domain.AgentSummary
	err := r.db.SelectContext(ctx, &agents,
		`SELECT u.*,
			COUNT(c.id) AS assigned_claims,
			COUNT(c.id) FILTER (WHERE c.status IN ('pendiente', 'en_revision')) AS open_claims
		 FROM users u
		 LEFT JOIN claims c ON c.assigned_agent_id = u.id AND c.deleted_at IS NULL
		 WHERE u.tenant_id = $1 AND u.role = $2 AND u.deleted_at IS NULL
		 GROUP BY u.id
		 ORDER BY u.full_name`,
		tenantID, domain.RoleStaff)
	if err != nil {
		return nil, fmt.Errorf("userRepo.ListAgents: %w", err)
	}
	return agents, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET full_name = $1, phone = $2, role = $3, is_active = $4,
			avatar_key = $5, group_id = $6, updated_at = $7
		 WHERE id = $8 AND tenant_id = $9 AND deleted_at IS NULL`,
		user.FullName, user.Phone, user.Role, user.IsActive,
		user.AvatarKey, user.GroupID, user.UpdatedAt, user.ID, user.TenantID)
	if err != nil {
		return fmt.Errorf("userRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, tenantID, userID uuid.UUID, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, password_reset_token_id = NULL, updated_at = NOW()
		 WHERE id = $2 AND tenant_id = $3 AND deleted_at IS NULL`,
		passwordHash, userID, tenantID)
	if err != nil {
		return fmt.Errorf("userRepo.UpdatePassword: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) ListEmails(ctx context.Context, tenantID, userID uuid.UUID) ([]domain.UserEmail, error) {
	var emails []domain.UserEmail
	err := r.db.SelectContext(ctx, &emails,
		`SELECT `+userEmailColumns+` FROM user_emails
		 WHERE tenant_id = $1 AND user_id = $2
		 ORDER BY is_primary DESC, created_at`,
		tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("userRepo.ListEmails: %w", err)
	}
	return emails, nil
}

// ReplaceEmails swaps the whole address set and mirrors the primary onto users.email.
func (r *userRepo) ReplaceEmails(ctx context.Context, tenantID, userID uuid.UUID, emails []domain.EmailEntry) error {
	now := time.Now().UTC()
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE users SET email = $1, updated_at = $2
			 WHERE id = $3 AND tenant_id = $4 AND deleted_at IS NULL`,
			domain.PrimaryEmail(emails), now, userID, tenantID)
		if err != nil {
			return err
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return domain.ErrNotFound
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM user_emails WHERE tenant_id = $1 AND user_id = $2", tenantID, userID); err != nil {
			return err
		}
		return insertEmails(ctx, tx, tenantID, userID, emails, now)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if isUniqueViolation(err, constraintUserEmail) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("userRepo.ReplaceEmails: %w", err)
	}
	return nil
}

func (r *userRepo) SetActive(ctx context.Context, tenantID uuid.UUID, userIDs []uuid.UUID, active bool) (int, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(
		`UPDATE users SET is_active = ?, updated_at = NOW()
		 WHERE tenant_id = ? AND id IN (?) AND deleted_at IS NULL`,
		active, tenantID, userIDs)
	if err != nil {
		return 0, fmt.Errorf("userRepo.SetActive: %w", err)
	}
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("userRepo.SetActive: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

// Trash soft-deletes users and releases their addresses for reuse.
func (r *userRepo) Trash(ctx context.Context, tenantID uuid.UUID, userIDs []uuid.UUID) (int, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	var affected int64
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query, args, err := sqlx.In(
			`UPDATE users SET deleted_at = ?, updated_at = ?
			 WHERE tenant_id = ? AND id IN (?) AND deleted_at IS NULL`,
			now, now, tenantID, userIDs)
		if err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return err
		}
		affected, _ = result.RowsAffected()

		query, args, err = sqlx.In(
			`UPDATE user_emails SET deleted_at = ?
			 WHERE tenant_id = ? AND user_id IN (?) AND deleted_at IS NULL`,
			now, tenantID, userIDs)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, tx.Rebind(query), args...)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("userRepo.Trash: %w", err)
	}
	return int(affected), nil
}

func (r *userRepo) SetPasswordResetToken(ctx context.Context, tenantID, userID uuid.UUID, tokenID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_reset_token_id = $1, updated_at = NOW()
		 WHERE id = $2 AND tenant_id = $3 AND deleted_at IS NULL`,
		tokenID, userID, tenantID)
	if err != nil {
		return fmt.Errorf("userRepo.SetPasswordResetToken: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) ResetPassword(ctx context.Context, tenantID, userID uuid.UUID, passwordHash, expectedTokenID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, password_reset_token_id = NULL, updated_at = NOW()
		 WHERE id = $2 AND tenant_id = $3 AND password_reset_token_id = $4 AND deleted_at IS NULL`,
		passwordHash, userID, tenantID, expectedTokenID)
	if err != nil {
		return fmt.Errorf("userRepo.ResetPassword: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPasswordResetTokenInvalid
	}
	return nil
}
