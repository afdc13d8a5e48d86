package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/validation"
	"go.uber.org/zap"
)

type StudentService struct {
	api       StudentAPI
	validator *validation.Validator
	audit     *AuditService
	logger    *zap.Logger
}

func NewStudentService(api StudentAPI, validator *validation.Validator, audit *AuditService, logger *zap.Logger) *StudentService {
	return &StudentService{
		api:       api,
		validator: validator,
		audit:     audit,
		logger:    logger,
	}
}

// Register проверяет анкету и регистрирует студента
func (s *StudentService) Register(ctx context.Context, actorID int64, req model.RegisterStudentRequest) (*model.Student, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.NicknameEn = strings.TrimSpace(req.NicknameEn)
	req.Phone = validation.NormalizePhone(req.Phone)
	req.CitizenID = strings.ReplaceAll(strings.TrimSpace(req.CitizenID), "-", "")

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	student, err := s.api.RegisterStudent(ctx, req)
	if err != nil {
		s.logger.Error("Failed to register student", zap.Int64("telegram_id", actorID), zap.Error(err))
		return nil, fmt.Errorf("register student: %w", err)
	}

	s.audit.Record(ctx, actorID, model.AuditActionCreate, "student", &student.ID, map[string]string{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
	})

	s.logger.Info("Student registered",
		zap.Int64("student_id", student.ID),
		zap.Int64("telegram_id", actorID),
	)

	return student, nil
}

// ValidateField проверяет одно поле диалога регистрации сразу после ввода
func (s *StudentService) ValidateField(field, value string) error {
	switch field {
	case "first_name", "last_name":
		return s.validator.Var(field, strings.TrimSpace(value), "required,max=100")
	case "nickname_en":
		return s.validator.Var(field, strings.TrimSpace(value), "max=50")
	case "phone":
		return s.validator.Var(field, validation.NormalizePhone(value), "required,thai_phone")
	case "citizen_id":
		return s.validator.Var(field, strings.ReplaceAll(strings.TrimSpace(value), "-", ""), "omitempty,thai_citizen_id")
	default:
		return nil
	}
}
