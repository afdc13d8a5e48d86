package apiclient

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// CheckRoomConflicts - серверная проверка пересечений аудиторий
func (c *Client) CheckRoomConflicts(ctx context.Context, req model.RoomConflictRequest) (*model.RoomConflictResult, error) {
	var res model.RoomConflictResult
	if err := c.post(ctx, "/schedules/rooms/check-conflicts", "", req, &res); err != nil {
		return nil, fmt.Errorf("check room conflicts: %w", err)
	}
	return &res, nil
}

// PreviewSchedule - серверный расчёт сессий, праздников и оплаты группы
func (c *Client) PreviewSchedule(ctx context.Context, req model.CreateScheduleRequest) (*model.SchedulePreview, error) {
	var preview model.SchedulePreview
	if err := c.post(ctx, "/schedules/preview", "preview", req, &preview); err != nil {
		return nil, fmt.Errorf("preview schedule: %w", err)
	}
	return &preview, nil
}

// CreateSchedule создаёт расписание
func (c *Client) CreateSchedule(ctx context.Context, req model.CreateScheduleRequest) (*model.Schedule, error) {
	var schedule model.Schedule
	if err := c.post(ctx, "/schedules", "schedule", req, &schedule); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	if err := requireID(schedule.ID, "schedule"); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	return &schedule, nil
}
