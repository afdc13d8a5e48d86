package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"go.uber.org/zap"
)

const HistoryLimit = 10

type AuditService struct {
	auditRepo AuditStore
	logger    *zap.Logger
}

func NewAuditService(auditRepo AuditStore, logger *zap.Logger) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Record пишет событие журнала. Ошибка записи только логируется,
// вызов API к этому моменту уже выполнен
func (s *AuditService) Record(ctx context.Context, telegramID int64, action model.AuditAction, resource string, resourceID *int64, details interface{}) {
	event := &model.AuditEvent{
		TelegramID: telegramID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
	}

	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			s.logger.Warn("Failed to marshal audit details", zap.String("resource", resource), zap.Error(err))
		} else {
			event.Details = raw
		}
	}

	if err := s.auditRepo.Create(ctx, event); err != nil {
		s.logger.Error("Failed to write audit event",
			zap.Int64("telegram_id", telegramID),
			zap.String("action", string(action)),
			zap.String("resource", resource),
			zap.Error(err),
		)
		return
	}

	s.logger.Debug("Audit event written",
		zap.String("id", event.ID.String()),
		zap.String("action", string(action)),
		zap.String("resource", resource),
	)
}

// Recent возвращает последние события журнала
func (s *AuditService) Recent(ctx context.Context) ([]*model.AuditEvent, error) {
	events, err := s.auditRepo.ListRecent(ctx, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent audit events: %w", err)
	}
	return events, nil
}

// Prune удаляет события старше days дней
func (s *AuditService) Prune(ctx context.Context, days int) (int64, error) {
	removed, err := s.auditRepo.DeleteOlderThan(ctx, days)
	if err != nil {
		return 0, fmt.Errorf("prune audit events: %w", err)
	}
	return removed, nil
}
