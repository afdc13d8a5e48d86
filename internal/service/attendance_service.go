package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/attendance"
	"go.uber.org/zap"
)

type AttendanceService struct {
	api      AttendanceAPI
	location *time.Location
	logger   *zap.Logger
}

func NewAttendanceService(api AttendanceAPI, location *time.Location, logger *zap.Logger) *AttendanceService {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceService{
		api:      api,
		location: location,
		logger:   logger,
	}
}

// ReportResult - отчёт вместе с посчитанными карточками
type ReportResult struct {
	Report attendance.Report
	Stats  attendance.Stats
}

// Fetch запрашивает отчёт нужного типа на дату (YYYY-MM-DD)
func (s *AttendanceService) Fetch(ctx context.Context, kind attendance.Kind, date string) (*ReportResult, error) {
	if _, err := time.ParseInLocation("2006-01-02", date, s.location); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	report, err := s.api.Report(ctx, kind, date)
	if err != nil {
		s.logger.Error("Failed to fetch attendance report",
			zap.String("kind", string(kind)),
			zap.String("date", date),
			zap.Error(err))
		return nil, fmt.Errorf("fetch %s report: %w", kind, err)
	}

	return &ReportResult{
		Report: report,
		Stats:  attendance.CalculateStats(report),
	}, nil
}

// Today возвращает сегодняшнюю дату в часовом поясе школы
func (s *AttendanceService) Today() string {
	return time.Now().In(s.location).Format("2006-01-02")
}

// Export готовит файл выгрузки: format "json" или "xlsx"
func (s *AttendanceService) Export(r attendance.Report, format string) (string, []byte, error) {
	now := time.Now().In(s.location)

	switch format {
	case "json":
		data, err := attendance.ExportJSON(r, now)
		if err != nil {
			return "", nil, err
		}
		return attendance.FileName(r, now, "json"), data, nil
	case "xlsx":
		data, err := attendance.ExportXLSX(r)
		if err != nil {
			return "", nil, err
		}
		return attendance.FileName(r, now, "xlsx"), data, nil
	default:
		return "", nil, fmt.Errorf("unknown export format %q", format)
	}
}
