package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// SearchStudents ищет студентов по имени или телефону
func (c *Client) SearchStudents(ctx context.Context, query string, limit int) ([]model.Student, error) {
	q := url.Values{"search": {query}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var students []model.Student
	if _, err := c.get(ctx, "/students", "students", q, &students); err != nil {
		return nil, fmt.Errorf("search students: %w", err)
	}
	return students, nil
}

// RegisterStudent - быстрая регистрация студента
func (c *Client) RegisterStudent(ctx context.Context, req model.RegisterStudentRequest) (*model.Student, error) {
	var student model.Student
	if err := c.post(ctx, "/students", "student", req, &student); err != nil {
		return nil, fmt.Errorf("register student: %w", err)
	}
	if err := requireID(student.ID, "student"); err != nil {
		return nil, fmt.Errorf("register student: %w", err)
	}
	return &student, nil
}

// SearchUsers ищет пользователей для участия в событиях
func (c *Client) SearchUsers(ctx context.Context, query string, limit int) ([]model.User, error) {
	q := url.Values{"search": {query}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var users []model.User
	if _, err := c.get(ctx, "/users", "users", q, &users); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}
