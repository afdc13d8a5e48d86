package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const adminColumns = `id, telegram_id, username, first_name, last_name, language_code, is_admin, default_branch_id, digest_enabled, created_at, updated_at`

// AdminRepository хранит пользователей Telegram, допущенных к боту
type AdminRepository struct {
	*base.Repository
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{Repository: base.NewRepository(pool)}
}

func scanAdmin(row pgx.Row) (*model.Admin, error) {
	var admin model.Admin
	err := row.Scan(
		&admin.ID,
		&admin.TelegramID,
		&admin.Username,
		&admin.FirstName,
		&admin.LastName,
		&admin.LanguageCode,
		&admin.IsAdmin,
		&admin.DefaultBranchID,
		&admin.DigestEnabled,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Create создаёт запись администратора
func (r *AdminRepository) Create(ctx context.Context, admin *model.Admin) error {
	query := `
		INSERT INTO admins (telegram_id, username, first_name, last_name, language_code, is_admin, default_branch_id, digest_enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		admin.TelegramID,
		admin.Username,
		admin.FirstName,
		admin.LastName,
		admin.LanguageCode,
		admin.IsAdmin,
		admin.DefaultBranchID,
		admin.DigestEnabled,
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	return nil
}

// GetByTelegramID получает администратора по Telegram ID
func (r *AdminRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE telegram_id = $1`

	admin, err := scanAdmin(r.QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get admin by telegram id: %w", err)
	}

	return admin, nil
}

// Update обновляет профиль и права администратора
func (r *AdminRepository) Update(ctx context.Context, admin *model.Admin) error {
	query := `
		UPDATE admins
		SET username = $1, first_name = $2, last_name = $3, language_code = $4,
		    is_admin = $5, default_branch_id = $6, digest_enabled = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	err := r.QueryRow(
		ctx, query,
		admin.Username,
		admin.FirstName,
		admin.LastName,
		admin.LanguageCode,
		admin.IsAdmin,
		admin.DefaultBranchID,
		admin.DigestEnabled,
		admin.ID,
	).Scan(&admin.UpdatedAt)

	if err != nil {
		if base.IsNotFound(err) {
			return fmt.Errorf("admin %d: %w", admin.ID, base.ErrNotFound)
		}
		return fmt.Errorf("update admin: %w", err)
	}

	return nil
}

// SetDigestEnabled включает или выключает ежедневную сводку
func (r *AdminRepository) SetDigestEnabled(ctx context.Context, telegramID int64, enabled bool) error {
	query := `
		UPDATE admins
		SET digest_enabled = $1, updated_at = NOW()
		WHERE telegram_id = $2 AND is_admin = true
	`

	if err := r.ExecOne(ctx, query, enabled, telegramID); err != nil {
		return fmt.Errorf("set digest enabled for %d: %w", telegramID, err)
	}
	return nil
}

// ListDigestRecipients возвращает администраторов с включённой сводкой
func (r *AdminRepository) ListDigestRecipients(ctx context.Context) ([]*model.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE is_admin = true AND digest_enabled = true ORDER BY id`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list digest recipients: %w", err)
	}
	defer rows.Close()

	var admins []*model.Admin
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		admins = append(admins, admin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate admins: %w", err)
	}

	return admins, nil
}
