package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/validation"
	"go.uber.org/zap"
)

const TeachersPageSize = 10

var ErrConfirmationMismatch = errors.New("confirmation name does not match")

type TeacherService struct {
	api       TeacherAPI
	validator *validation.Validator
	audit     *AuditService
	logger    *zap.Logger
}

func NewTeacherService(api TeacherAPI, validator *validation.Validator, audit *AuditService, logger *zap.Logger) *TeacherService {
	return &TeacherService{
		api:       api,
		validator: validator,
		audit:     audit,
		logger:    logger,
	}
}

// TeacherPage - страница списка преподавателей
type TeacherPage struct {
	Teachers []model.Teacher
	Total    int
	Page     int
	Pages    int
}

// List возвращает страницу списка с учётом поиска и фильтров
func (s *TeacherService) List(ctx context.Context, filter model.TeacherFilter) (*TeacherPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = TeachersPageSize
	}
	filter.Search = strings.TrimSpace(filter.Search)

	teachers, total, err := s.api.ListTeachers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}

	pages := (total + filter.Limit - 1) / filter.Limit
	if pages < 1 {
		pages = 1
	}

	return &TeacherPage{
		Teachers: teachers,
		Total:    total,
		Page:     filter.Page,
		Pages:    pages,
	}, nil
}

// Get получает преподавателя для карточки
func (s *TeacherService) Get(ctx context.Context, id int64) (*model.Teacher, error) {
	teacher, err := s.api.GetTeacher(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	return teacher, nil
}

// Create проверяет форму и создаёт преподавателя
func (s *TeacherService) Create(ctx context.Context, actorID int64, in model.TeacherInput) (*model.Teacher, error) {
	in = normalizeTeacherInput(in)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	teacher, err := s.api.CreateTeacher(ctx, in)
	if err != nil {
		s.logger.Error("Failed to create teacher", zap.Int64("telegram_id", actorID), zap.Error(err))
		return nil, fmt.Errorf("create teacher: %w", err)
	}

	s.audit.Record(ctx, actorID, model.AuditActionCreate, "teacher", &teacher.ID, in)

	s.logger.Info("Teacher created",
		zap.Int64("teacher_id", teacher.ID),
		zap.Int64("telegram_id", actorID),
		zap.String("name", teacher.FullName()),
	)

	return teacher, nil
}

// Update проверяет форму и сохраняет изменения
func (s *TeacherService) Update(ctx context.Context, actorID, id int64, in model.TeacherInput) (*model.Teacher, error) {
	in = normalizeTeacherInput(in)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	teacher, err := s.api.UpdateTeacher(ctx, id, in)
	if err != nil {
		s.logger.Error("Failed to update teacher",
			zap.Int64("teacher_id", id),
			zap.Int64("telegram_id", actorID),
			zap.Error(err))
		return nil, fmt.Errorf("update teacher: %w", err)
	}

	s.audit.Record(ctx, actorID, model.AuditActionUpdate, "teacher", &id, in)

	s.logger.Info("Teacher updated",
		zap.Int64("teacher_id", id),
		zap.Int64("telegram_id", actorID),
	)

	return teacher, nil
}

// Delete удаляет преподавателя только если введённое имя совпало с ConfirmationName
func (s *TeacherService) Delete(ctx context.Context, actorID int64, teacher *model.Teacher, typed string) error {
	if !MatchesDeleteConfirmation(*teacher, typed) {
		return ErrConfirmationMismatch
	}

	if err := s.api.DeleteTeacher(ctx, teacher.ID); err != nil {
		s.logger.Error("Failed to delete teacher",
			zap.Int64("teacher_id", teacher.ID),
			zap.Int64("telegram_id", actorID),
			zap.Error(err))
		return fmt.Errorf("delete teacher: %w", err)
	}

	s.audit.Record(ctx, actorID, model.AuditActionDelete, "teacher", &teacher.ID, map[string]string{
		"name": teacher.FullName(),
	})

	s.logger.Info("Teacher deleted",
		zap.Int64("teacher_id", teacher.ID),
		zap.Int64("telegram_id", actorID),
	)

	return nil
}

// MatchesDeleteConfirmation сравнивает без учёта регистра и пробелов по краям
func MatchesDeleteConfirmation(t model.Teacher, typed string) bool {
	want := t.ConfirmationName()
	if want == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(typed), want)
}

func normalizeTeacherInput(in model.TeacherInput) model.TeacherInput {
	in.FirstNameEn = strings.TrimSpace(in.FirstNameEn)
	in.LastNameEn = strings.TrimSpace(in.LastNameEn)
	in.NicknameEn = strings.TrimSpace(in.NicknameEn)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = validation.NormalizePhone(in.Phone)
	in.Specializations = model.JoinList(model.SplitList(in.Specializations))
	in.Certifications = model.JoinList(model.SplitList(in.Certifications))
	return in
}
