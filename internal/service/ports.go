package service

import (
	"context"

	"github.com/Freeeeeet/school_admin_bot/internal/attendance"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// Интерфейсы над apiclient.Client и репозиториями, в тестах подменяются фейками

type ReferenceAPI interface {
	ListBranches(ctx context.Context) ([]model.Branch, error)
	ListRooms(ctx context.Context, branchID int64) ([]model.Room, error)
	ListCourses(ctx context.Context, branchID int64) ([]model.Course, error)
	ListGroups(ctx context.Context, branchID int64, status model.GroupStatus) ([]model.Group, error)
	CreateGroup(ctx context.Context, req model.CreateGroupRequest) (*model.Group, error)
	AddGroupMember(ctx context.Context, groupID int64, req model.AddGroupMemberRequest) error
}

type ScheduleAPI interface {
	CheckRoomConflicts(ctx context.Context, req model.RoomConflictRequest) (*model.RoomConflictResult, error)
	PreviewSchedule(ctx context.Context, req model.CreateScheduleRequest) (*model.SchedulePreview, error)
	CreateSchedule(ctx context.Context, req model.CreateScheduleRequest) (*model.Schedule, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]model.User, error)
}

type TeacherAPI interface {
	ListTeachers(ctx context.Context, filter model.TeacherFilter) ([]model.Teacher, int, error)
	GetTeacher(ctx context.Context, id int64) (*model.Teacher, error)
	CreateTeacher(ctx context.Context, in model.TeacherInput) (*model.Teacher, error)
	UpdateTeacher(ctx context.Context, id int64, in model.TeacherInput) (*model.Teacher, error)
	DeleteTeacher(ctx context.Context, id int64) error
}

type StudentAPI interface {
	SearchStudents(ctx context.Context, query string, limit int) ([]model.Student, error)
	RegisterStudent(ctx context.Context, req model.RegisterStudentRequest) (*model.Student, error)
}

type AttendanceAPI interface {
	Report(ctx context.Context, kind attendance.Kind, date string) (attendance.Report, error)
}

type AdminStore interface {
	Create(ctx context.Context, admin *model.Admin) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Admin, error)
	Update(ctx context.Context, admin *model.Admin) error
	SetDigestEnabled(ctx context.Context, telegramID int64, enabled bool) error
	ListDigestRecipients(ctx context.Context) ([]*model.Admin, error)
}

type AuditStore interface {
	Create(ctx context.Context, event *model.AuditEvent) error
	ListRecent(ctx context.Context, limit int) ([]*model.AuditEvent, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}
