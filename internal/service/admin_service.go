package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"go.uber.org/zap"
)

var ErrNotAdmin = errors.New("user is not an admin")

type AdminService struct {
	adminRepo AdminStore
	bootstrap func(telegramID int64) bool
	logger    *zap.Logger
}

// NewAdminService: bootstrap сообщает, нужно ли выдать права пользователю (ADMIN_TELEGRAM_IDS)
func NewAdminService(adminRepo AdminStore, bootstrap func(telegramID int64) bool, logger *zap.Logger) *AdminService {
	if bootstrap == nil {
		bootstrap = func(int64) bool { return false }
	}
	return &AdminService{
		adminRepo: adminRepo,
		bootstrap: bootstrap,
		logger:    logger,
	}
}

// RegisterAdmin регистрирует или обновляет пользователя Telegram
func (s *AdminService) RegisterAdmin(ctx context.Context, telegramID int64, username, firstName, lastName, languageCode string) (*model.Admin, error) {
	existing, err := s.adminRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("check existing admin: %w", err)
	}

	// Если пользователь уже существует, обновляем данные
	if existing != nil {
		existing.Username = username
		existing.FirstName = firstName
		existing.LastName = lastName
		existing.LanguageCode = languageCode
		if s.bootstrap(telegramID) {
			existing.IsAdmin = true
		}

		if err := s.adminRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update admin: %w", err)
		}

		s.logger.Info("Admin updated",
			zap.Int64("telegram_id", telegramID),
			zap.String("username", username),
			zap.Bool("is_admin", existing.IsAdmin),
		)

		return existing, nil
	}

	admin := &model.Admin{
		TelegramID:    telegramID,
		Username:      username,
		FirstName:     firstName,
		LastName:      lastName,
		LanguageCode:  languageCode,
		IsAdmin:       s.bootstrap(telegramID),
		DigestEnabled: true,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	s.logger.Info("New user registered",
		zap.Int64("admin_id", admin.ID),
		zap.Int64("telegram_id", telegramID),
		zap.String("username", username),
		zap.Bool("is_admin", admin.IsAdmin),
	)

	return admin, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (s *AdminService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Admin, error) {
	return s.adminRepo.GetByTelegramID(ctx, telegramID)
}

// RequireAdmin возвращает ErrNotAdmin для незарегистрированных и обычных пользователей
func (s *AdminService) RequireAdmin(ctx context.Context, telegramID int64) (*model.Admin, error) {
	admin, err := s.adminRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	if admin == nil || !admin.IsAdmin {
		return nil, ErrNotAdmin
	}
	return admin, nil
}

// ToggleDigest переключает ежедневную сводку и возвращает новое значение
func (s *AdminService) ToggleDigest(ctx context.Context, telegramID int64) (bool, error) {
	admin, err := s.RequireAdmin(ctx, telegramID)
	if err != nil {
		return false, err
	}

	enabled := !admin.DigestEnabled
	if err := s.adminRepo.SetDigestEnabled(ctx, telegramID, enabled); err != nil {
		return false, fmt.Errorf("set digest: %w", err)
	}

	s.logger.Info("Digest toggled",
		zap.Int64("telegram_id", telegramID),
		zap.Bool("enabled", enabled),
	)

	return enabled, nil
}

// SetDefaultBranch запоминает филиал, который мастер подставляет по умолчанию
func (s *AdminService) SetDefaultBranch(ctx context.Context, telegramID, branchID int64) error {
	admin, err := s.RequireAdmin(ctx, telegramID)
	if err != nil {
		return err
	}

	admin.DefaultBranchID = &branchID
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	return nil
}

// DigestRecipients возвращает администраторов, подписанных на сводку
func (s *AdminService) DigestRecipients(ctx context.Context) ([]*model.Admin, error) {
	return s.adminRepo.ListDigestRecipients(ctx)
}
