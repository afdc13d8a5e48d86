package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/wizard"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	participantSearchLimit = 20
	teacherPickerLimit     = 100
)

type ScheduleService struct {
	reference ReferenceAPI
	schedules ScheduleAPI
	teachers  TeacherAPI
	audit     *AuditService
	logger    *zap.Logger
}

func NewScheduleService(
	reference ReferenceAPI,
	schedules ScheduleAPI,
	teachers TeacherAPI,
	audit *AuditService,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		reference: reference,
		schedules: schedules,
		teachers:  teachers,
		audit:     audit,
		logger:    logger,
	}
}

// Branches возвращает активные филиалы
func (s *ScheduleService) Branches(ctx context.Context) ([]model.Branch, error) {
	branches, err := s.reference.ListBranches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return branches, nil
}

// Groups загружает активные и заполненные группы филиала параллельно
// и объединяет их в опции выбора, активные первыми
func (s *ScheduleService) Groups(ctx context.Context, branchID int64) ([]model.GroupOption, error) {
	var active, full []model.Group

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		groups, err := s.reference.ListGroups(gctx, branchID, model.GroupStatusActive)
		if err != nil {
			return fmt.Errorf("list active groups: %w", err)
		}
		active = groups
		return nil
	})
	g.Go(func() error {
		groups, err := s.reference.ListGroups(gctx, branchID, model.GroupStatusFull)
		if err != nil {
			return fmt.Errorf("list full groups: %w", err)
		}
		full = groups
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(active)+len(full))
	options := make([]model.GroupOption, 0, len(active)+len(full))
	for _, list := range [][]model.Group{active, full} {
		for _, group := range list {
			if _, ok := seen[group.ID]; ok {
				continue
			}
			seen[group.ID] = struct{}{}
			options = append(options, model.NewGroupOption(group))
		}
	}

	s.logger.Debug("Groups loaded",
		zap.Int64("branch_id", branchID),
		zap.Int("active", len(active)),
		zap.Int("full", len(full)),
	)

	return options, nil
}

// Rooms возвращает аудитории филиала
func (s *ScheduleService) Rooms(ctx context.Context, branchID int64) ([]model.Room, error) {
	rooms, err := s.reference.ListRooms(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// Courses возвращает курсы филиала для формы группы
func (s *ScheduleService) Courses(ctx context.Context, branchID int64) ([]model.Course, error) {
	courses, err := s.reference.ListCourses(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// Teachers возвращает активных преподавателей филиала для выбора в мастере
func (s *ScheduleService) Teachers(ctx context.Context, branchID *int64) ([]model.Teacher, error) {
	active := true
	teachers, _, err := s.teachers.ListTeachers(ctx, model.TeacherFilter{
		BranchID: branchID,
		Active:   &active,
		Page:     1,
		Limit:    teacherPickerLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// CheckConflicts проверяет занятость аудиторий под черновик
func (s *ScheduleService) CheckConflicts(ctx context.Context, draft wizard.ScheduleDraft) (*model.RoomConflictResult, error) {
	req, err := wizard.BuildRoomCheckRequest(draft)
	if err != nil {
		return nil, fmt.Errorf("build room check request: %w", err)
	}

	res, err := s.schedules.CheckRoomConflicts(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("check room conflicts: %w", err)
	}
	return res, nil
}

// Preview запрашивает у сервера расчёт расписания
func (s *ScheduleService) Preview(ctx context.Context, draft wizard.ScheduleDraft) (*model.SchedulePreview, error) {
	req, err := wizard.BuildPreviewRequest(draft)
	if err != nil {
		return nil, fmt.Errorf("build preview request: %w", err)
	}

	preview, err := s.schedules.PreviewSchedule(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("preview schedule: %w", err)
	}
	return preview, nil
}

// CreateClass отправляет итоговый черновик класса
func (s *ScheduleService) CreateClass(ctx context.Context, actorID int64, flow *wizard.ClassFlow) (*model.Schedule, error) {
	if err := flow.CanCreate(); err != nil {
		return nil, err
	}

	req, err := wizard.BuildCreateRequest(flow.Draft, flow.Preview)
	if err != nil {
		return nil, fmt.Errorf("build create request: %w", err)
	}

	return s.create(ctx, actorID, req)
}

// CreateEvent отправляет событие (встреча, праздник и т.д.)
func (s *ScheduleService) CreateEvent(ctx context.Context, actorID int64, draft wizard.EventDraft) (*model.Schedule, error) {
	req, err := wizard.BuildEventRequest(draft)
	if err != nil {
		return nil, err
	}

	return s.create(ctx, actorID, req)
}

func (s *ScheduleService) create(ctx context.Context, actorID int64, req model.CreateScheduleRequest) (*model.Schedule, error) {
	schedule, err := s.schedules.CreateSchedule(ctx, req)
	if err != nil {
		s.logger.Error("Failed to create schedule",
			zap.Int64("telegram_id", actorID),
			zap.String("schedule_type", string(req.ScheduleType)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("create schedule: %w", err)
	}

	s.audit.Record(ctx, actorID, model.AuditActionCreate, "schedule", &schedule.ID, req)

	s.logger.Info("Schedule created",
		zap.Int64("schedule_id", schedule.ID),
		zap.Int64("telegram_id", actorID),
		zap.String("schedule_type", string(req.ScheduleType)),
		zap.String("name", req.ScheduleName),
	)

	return schedule, nil
}

// SearchParticipants ищет пользователей для списка участников события
func (s *ScheduleService) SearchParticipants(ctx context.Context, query string) ([]model.User, error) {
	users, err := s.schedules.SearchUsers(ctx, query, participantSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}
