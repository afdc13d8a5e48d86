package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Freeeeeet/school_admin_bot/internal/attendance"
)

// DailyReport - отметки преподавателей за день
func (c *Client) DailyReport(ctx context.Context, date string) (*attendance.DailyReport, error) {
	var rep attendance.DailyReport
	if _, err := c.get(ctx, "/attendance/reports/daily", "report", url.Values{"date": {date}}, &rep); err != nil {
		return nil, fmt.Errorf("daily report %s: %w", date, err)
	}
	return &rep, nil
}

// WeeklyReport - сводка за неделю, которая содержит date
func (c *Client) WeeklyReport(ctx context.Context, date string) (*attendance.WeeklyReport, error) {
	var rep attendance.WeeklyReport
	if _, err := c.get(ctx, "/attendance/reports/weekly", "report", url.Values{"date": {date}}, &rep); err != nil {
		return nil, fmt.Errorf("weekly report %s: %w", date, err)
	}
	return &rep, nil
}

// MonthlyReport - сводка за месяц, который содержит date
func (c *Client) MonthlyReport(ctx context.Context, date string) (*attendance.MonthlyReport, error) {
	var rep attendance.MonthlyReport
	if _, err := c.get(ctx, "/attendance/reports/monthly", "report", url.Values{"date": {date}}, &rep); err != nil {
		return nil, fmt.Errorf("monthly report %s: %w", date, err)
	}
	return &rep, nil
}

// Report вызывает эндпоинт нужного вида
func (c *Client) Report(ctx context.Context, kind attendance.Kind, date string) (attendance.Report, error) {
	switch kind {
	case attendance.KindDaily:
		rep, err := c.DailyReport(ctx, date)
		if err != nil {
			return nil, err
		}
		return *rep, nil
	case attendance.KindWeekly:
		rep, err := c.WeeklyReport(ctx, date)
		if err != nil {
			return nil, err
		}
		return *rep, nil
	case attendance.KindMonthly:
		rep, err := c.MonthlyReport(ctx, date)
		if err != nil {
			return nil, err
		}
		return *rep, nil
	default:
		return nil, fmt.Errorf("unknown report kind %q", kind)
	}
}
