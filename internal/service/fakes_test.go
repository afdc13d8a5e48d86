package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/attendance"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"go.uber.org/zap"
)

var errAPI = errors.New("api unavailable")

type fakeAuditStore struct {
	mu     sync.Mutex
	events []*model.AuditEvent
	err    error
}

func (f *fakeAuditStore) Create(_ context.Context, e *model.AuditEvent) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *fakeAuditStore) ListRecent(_ context.Context, limit int) ([]*model.AuditEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.events) < limit {
		limit = len(f.events)
	}
	return f.events[:limit], nil
}

func (f *fakeAuditStore) DeleteOlderThan(_ context.Context, days int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cutoff := time.Now().AddDate(0, 0, -days)
	kept := f.events[:0]
	var removed int64
	for _, e := range f.events {
		if e.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	f.events = kept
	return removed, nil
}

func newTestAudit() (*AuditService, *fakeAuditStore) {
	store := &fakeAuditStore{}
	return NewAuditService(store, zap.NewNop()), store
}

type fakeAdminStore struct {
	byTelegram map[int64]*model.Admin
	nextID     int64
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{byTelegram: make(map[int64]*model.Admin)}
}

func (f *fakeAdminStore) Create(_ context.Context, a *model.Admin) error {
	f.nextID++
	a.ID = f.nextID
	f.byTelegram[a.TelegramID] = a
	return nil
}

func (f *fakeAdminStore) GetByTelegramID(_ context.Context, id int64) (*model.Admin, error) {
	return f.byTelegram[id], nil
}

func (f *fakeAdminStore) Update(_ context.Context, a *model.Admin) error {
	f.byTelegram[a.TelegramID] = a
	return nil
}

func (f *fakeAdminStore) SetDigestEnabled(_ context.Context, id int64, enabled bool) error {
	a, ok := f.byTelegram[id]
	if !ok {
		return errors.New("admin not found")
	}
	a.DigestEnabled = enabled
	return nil
}

func (f *fakeAdminStore) ListDigestRecipients(_ context.Context) ([]*model.Admin, error) {
	var out []*model.Admin
	for _, a := range f.byTelegram {
		if a.IsAdmin && a.DigestEnabled {
			out = append(out, a)
		}
	}
	return out, nil
}

// fakeAPI реализует все интерфейсы API
type fakeAPI struct {
	mu sync.Mutex

	groups       map[model.GroupStatus][]model.Group
	groupsErr    error
	createdGroup *model.Group
	failMembers  map[int64]bool
	added        []int64

	teachers      []model.Teacher
	teachersTotal int
	lastFilter    model.TeacherFilter
	deleted       []int64

	conflicts   *model.RoomConflictResult
	preview     *model.SchedulePreview
	lastCreate  *model.CreateScheduleRequest
	createErr   error
	lastRequest interface{}

	report attendance.Report
}

func (f *fakeAPI) ListBranches(context.Context) ([]model.Branch, error) {
	return []model.Branch{{ID: 1, NameEn: "Main", IsActive: true}}, nil
}

func (f *fakeAPI) ListRooms(context.Context, int64) ([]model.Room, error) { return nil, nil }

func (f *fakeAPI) ListCourses(context.Context, int64) ([]model.Course, error) { return nil, nil }

func (f *fakeAPI) ListGroups(_ context.Context, _ int64, status model.GroupStatus) ([]model.Group, error) {
	if f.groupsErr != nil && status == model.GroupStatusFull {
		return nil, f.groupsErr
	}
	return f.groups[status], nil
}

func (f *fakeAPI) CreateGroup(_ context.Context, req model.CreateGroupRequest) (*model.Group, error) {
	f.lastRequest = req
	return f.createdGroup, nil
}

func (f *fakeAPI) AddGroupMember(_ context.Context, _ int64, req model.AddGroupMemberRequest) error {
	if f.failMembers[req.StudentID] {
		return errAPI
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, req.StudentID)
	return nil
}

func (f *fakeAPI) CheckRoomConflicts(_ context.Context, req model.RoomConflictRequest) (*model.RoomConflictResult, error) {
	f.lastRequest = req
	return f.conflicts, nil
}

func (f *fakeAPI) PreviewSchedule(_ context.Context, req model.CreateScheduleRequest) (*model.SchedulePreview, error) {
	f.lastRequest = req
	return f.preview, nil
}

func (f *fakeAPI) CreateSchedule(_ context.Context, req model.CreateScheduleRequest) (*model.Schedule, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastCreate = &req
	return &model.Schedule{ID: 77, ScheduleName: req.ScheduleName, ScheduleType: req.ScheduleType}, nil
}

func (f *fakeAPI) SearchUsers(context.Context, string, int) ([]model.User, error) {
	return []model.User{{ID: 5, Username: "somchai"}}, nil
}

func (f *fakeAPI) ListTeachers(_ context.Context, filter model.TeacherFilter) ([]model.Teacher, int, error) {
	f.lastFilter = filter
	return f.teachers, f.teachersTotal, nil
}

func (f *fakeAPI) GetTeacher(_ context.Context, id int64) (*model.Teacher, error) {
	for _, t := range f.teachers {
		if t.ID == id {
			t := t
			return &t, nil
		}
	}
	return nil, errAPI
}

func (f *fakeAPI) CreateTeacher(_ context.Context, in model.TeacherInput) (*model.Teacher, error) {
	f.lastRequest = in
	return &model.Teacher{ID: 9, FirstNameEn: in.FirstNameEn, LastNameEn: in.LastNameEn}, nil
}

func (f *fakeAPI) UpdateTeacher(_ context.Context, id int64, in model.TeacherInput) (*model.Teacher, error) {
	f.lastRequest = in
	return &model.Teacher{ID: id, FirstNameEn: in.FirstNameEn}, nil
}

func (f *fakeAPI) DeleteTeacher(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) SearchStudents(context.Context, string, int) ([]model.Student, error) {
	return []model.Student{{ID: 1, FirstName: "Nok"}}, nil
}

func (f *fakeAPI) RegisterStudent(_ context.Context, req model.RegisterStudentRequest) (*model.Student, error) {
	f.lastRequest = req
	return &model.Student{ID: 31, FirstName: req.FirstName, LastName: req.LastName}, nil
}

func (f *fakeAPI) Report(context.Context, attendance.Kind, string) (attendance.Report, error) {
	if f.report == nil {
		return nil, errAPI
	}
	return f.report, nil
}
