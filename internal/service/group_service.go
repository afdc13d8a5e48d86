package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/validation"
	"github.com/Freeeeeet/school_admin_bot/internal/wizard"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const memberAddConcurrency = 4

// MemberFailure - студент, которого не удалось добавить в группу
type MemberFailure struct {
	StudentID int64
	Err       error
}

// BatchResult - итог массового добавления участников
type BatchResult struct {
	Succeeded []int64
	Failed    []MemberFailure
}

// Err объединяет ошибки всех неудачных добавлений, nil если их не было
func (r BatchResult) Err() error {
	var err error
	for _, f := range r.Failed {
		err = multierr.Append(err, fmt.Errorf("student %d: %w", f.StudentID, f.Err))
	}
	return err
}

func (r BatchResult) Partial() bool {
	return len(r.Failed) > 0 && len(r.Succeeded) > 0
}

type GroupService struct {
	reference ReferenceAPI
	students  StudentAPI
	validator *validation.Validator
	audit     *AuditService
	logger    *zap.Logger
}

func NewGroupService(reference ReferenceAPI, students StudentAPI, validator *validation.Validator, audit *AuditService, logger *zap.Logger) *GroupService {
	return &GroupService{
		reference: reference,
		students:  students,
		validator: validator,
		audit:     audit,
		logger:    logger,
	}
}

// SearchStudents ищет студентов для формы группы
func (s *GroupService) SearchStudents(ctx context.Context, query string) ([]model.Student, error) {
	students, err := s.students.SearchStudents(ctx, query, participantSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search students: %w", err)
	}
	return students, nil
}

// CreateWithMembers создаёт группу и добавляет выбранных студентов параллельно.
// Ошибка возвращается только если не создалась сама группа
func (s *GroupService) CreateWithMembers(ctx context.Context, actorID int64, branchID *int64, form *wizard.GroupForm) (*model.Group, BatchResult, error) {
	req := form.Request(branchID)
	if err := s.validator.Struct(req); err != nil {
		return nil, BatchResult{}, err
	}

	group, err := s.reference.CreateGroup(ctx, req)
	if err != nil {
		return nil, BatchResult{}, fmt.Errorf("create group: %w", err)
	}

	s.audit.Record(ctx, actorID, model.AuditActionCreate, "group", &group.ID, req)

	result := s.addMembers(ctx, group.ID, form.StudentIDs, form.PaymentStatus)

	s.logger.Info("Group created",
		zap.Int64("group_id", group.ID),
		zap.Int64("telegram_id", actorID),
		zap.Int("members_added", len(result.Succeeded)),
		zap.Int("members_failed", len(result.Failed)),
	)
	if err := result.Err(); err != nil {
		s.logger.Warn("Some members were not added", zap.Int64("group_id", group.ID), zap.Error(err))
	}

	return group, result, nil
}

func (s *GroupService) addMembers(ctx context.Context, groupID int64, studentIDs []int64, payment model.PaymentStatus) BatchResult {
	var (
		mu     sync.Mutex
		result BatchResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(memberAddConcurrency)

	for _, studentID := range studentIDs {
		studentID := studentID
		g.Go(func() error {
			err := s.reference.AddGroupMember(gctx, groupID, model.AddGroupMemberRequest{
				StudentID:     studentID,
				PaymentStatus: payment,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, MemberFailure{StudentID: studentID, Err: err})
			} else {
				result.Succeeded = append(result.Succeeded, studentID)
			}
			// ошибка одного студента не отменяет остальных
			return nil
		})
	}
	_ = g.Wait()

	return result
}
