package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// ListTeachers возвращает страницу преподавателей и общее количество
func (c *Client) ListTeachers(ctx context.Context, filter model.TeacherFilter) ([]model.Teacher, int, error) {
	q := url.Values{}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	idQuery("branch_id", filter.BranchID, q)
	if filter.Active != nil {
		q.Set("active", strconv.FormatBool(*filter.Active))
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}

	var teachers []model.Teacher
	total, err := c.get(ctx, "/teachers", "teachers", q, &teachers)
	if err != nil {
		return nil, 0, fmt.Errorf("list teachers: %w", err)
	}
	if total == 0 {
		total = len(teachers)
	}
	return teachers, total, nil
}

// GetTeacher возвращает преподавателя по id
func (c *Client) GetTeacher(ctx context.Context, id int64) (*model.Teacher, error) {
	var teacher model.Teacher
	if _, err := c.get(ctx, fmt.Sprintf("/teachers/%d", id), "teacher", nil, &teacher); err != nil {
		return nil, fmt.Errorf("get teacher %d: %w", id, err)
	}
	return &teacher, nil
}

// CreateTeacher создаёт преподавателя
func (c *Client) CreateTeacher(ctx context.Context, in model.TeacherInput) (*model.Teacher, error) {
	var teacher model.Teacher
	if err := c.post(ctx, "/teachers", "teacher", in, &teacher); err != nil {
		return nil, fmt.Errorf("create teacher: %w", err)
	}
	if err := requireID(teacher.ID, "teacher"); err != nil {
		return nil, fmt.Errorf("create teacher: %w", err)
	}
	return &teacher, nil
}

// UpdateTeacher обновляет преподавателя
func (c *Client) UpdateTeacher(ctx context.Context, id int64, in model.TeacherInput) (*model.Teacher, error) {
	var teacher model.Teacher
	if err := c.put(ctx, fmt.Sprintf("/teachers/%d", id), "teacher", in, &teacher); err != nil {
		return nil, fmt.Errorf("update teacher %d: %w", id, err)
	}
	return &teacher, nil
}

// DeleteTeacher удаляет преподавателя
func (c *Client) DeleteTeacher(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/teachers/%d", id)); err != nil {
		return fmt.Errorf("delete teacher %d: %w", id, err)
	}
	return nil
}
