package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepository хранит журнал изменений, сделанных через бота
type AuditRepository struct {
	*base.Repository
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет событие, id генерируется если не задан
func (r *AuditRepository) Create(ctx context.Context, event *model.AuditEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	details := event.Details
	if len(details) == 0 {
		details = []byte("{}")
	}

	query := `
		INSERT INTO audit_events (id, telegram_id, action, resource, resource_id, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.QueryRow(ctx, query,
		event.ID,
		event.TelegramID,
		string(event.Action),
		event.Resource,
		event.ResourceID,
		details,
	).Scan(&event.CreatedAt)
	if err != nil {
		return fmt.Errorf("create audit event: %w", err)
	}

	return nil
}

// ListRecent возвращает последние события, новые первыми
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]*model.AuditEvent, error) {
	query := `
		SELECT id, telegram_id, action, resource, resource_id, details, created_at
		FROM audit_events
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []*model.AuditEvent
	for rows.Next() {
		var (
			event  model.AuditEvent
			action string
		)
		if err := rows.Scan(
			&event.ID,
			&event.TelegramID,
			&action,
			&event.Resource,
			&event.ResourceID,
			&event.Details,
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Action = model.AuditAction(action)
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}

	return events, nil
}

// DeleteOlderThan чистит журнал, возвращает число удалённых строк
func (r *AuditRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	affected, err := r.ExecAffected(ctx,
		`DELETE FROM audit_events WHERE created_at < NOW() - make_interval(days => $1)`, days)
	if err != nil {
		return 0, fmt.Errorf("delete old audit events: %w", err)
	}
	return affected, nil
}
