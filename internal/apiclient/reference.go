package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// ListBranches возвращает активные филиалы
func (c *Client) ListBranches(ctx context.Context) ([]model.Branch, error) {
	var branches []model.Branch
	if _, err := c.get(ctx, "/branches", "branches", url.Values{"active": {"true"}}, &branches); err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	active := branches[:0]
	for _, b := range branches {
		if b.IsActive {
			active = append(active, b)
		}
	}
	return active, nil
}

// ListRooms возвращает аудитории филиала
func (c *Client) ListRooms(ctx context.Context, branchID int64) ([]model.Room, error) {
	q := url.Values{}
	idQuery("branch_id", &branchID, q)

	var rooms []model.Room
	if _, err := c.get(ctx, "/rooms", "rooms", q, &rooms); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// ListCourses возвращает курсы филиала
func (c *Client) ListCourses(ctx context.Context, branchID int64) ([]model.Course, error) {
	q := url.Values{}
	idQuery("branch_id", &branchID, q)

	var courses []model.Course
	if _, err := c.get(ctx, "/courses", "courses", q, &courses); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// ListGroups возвращает группы филиала с указанным статусом
func (c *Client) ListGroups(ctx context.Context, branchID int64, status model.GroupStatus) ([]model.Group, error) {
	q := url.Values{}
	idQuery("branch_id", &branchID, q)
	if status != "" {
		q.Set("status", string(status))
	}

	var groups []model.Group
	if _, err := c.get(ctx, "/groups", "groups", q, &groups); err != nil {
		return nil, fmt.Errorf("list %s groups: %w", status, err)
	}
	return groups, nil
}

// CreateGroup создаёт группу
func (c *Client) CreateGroup(ctx context.Context, req model.CreateGroupRequest) (*model.Group, error) {
	var group model.Group
	if err := c.post(ctx, "/groups", "group", req, &group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	if err := requireID(group.ID, "group"); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return &group, nil
}

// AddGroupMember добавляет студента в группу
func (c *Client) AddGroupMember(ctx context.Context, groupID int64, req model.AddGroupMemberRequest) error {
	if err := c.post(ctx, fmt.Sprintf("/groups/%d/members", groupID), "", req, nil); err != nil {
		return fmt.Errorf("add member %d to group %d: %w", req.StudentID, groupID, err)
	}
	return nil
}
