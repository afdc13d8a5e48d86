package model

type IssueSeverity string

const (
	IssueSeverityError   IssueSeverity = "error"
	IssueSeverityWarning IssueSeverity = "warning"
)

type PreviewIssue struct {
	Type     string        `json:"type"`
	Severity IssueSeverity `json:"severity"`
	Message  string        `json:"message"`
}

type PreviewSession struct {
	SessionNumber int    `json:"session_number"`
	WeekNumber    int    `json:"week_number"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	IsHoliday     bool   `json:"is_holiday"`
	Rescheduled   bool   `json:"rescheduled"`
}

type HolidayImpact struct {
	OriginalDate string `json:"original_date"`
	ShiftedDate  string `json:"shifted_date"`
	HolidayName  string `json:"holiday_name"`
}

type GroupPayment struct {
	GroupID       int64 `json:"group_id"`
	TotalMembers  int   `json:"total_members"`
	EligibleCount int   `json:"eligible_members"`
	PendingCount  int   `json:"pending_members"`
	CanCreate     bool  `json:"can_create"`
}

// SchedulePreview - рассчитанный сервером предварительный просмотр
type SchedulePreview struct {
	CanCreate        bool             `json:"can_create"`
	Issues           []PreviewIssue   `json:"issues"`
	Sessions         []PreviewSession `json:"sessions"`
	HolidayImpacts   []HolidayImpact  `json:"holiday_impacts"`
	GroupPayment     *GroupPayment    `json:"group_payment,omitempty"`
	EstimatedEndDate string           `json:"estimated_end_date"`
	TotalSessions    int              `json:"total_sessions"`
}

// Errors возвращает только блокирующие проблемы
func (p *SchedulePreview) Errors() []PreviewIssue {
	var out []PreviewIssue
	for _, is := range p.Issues {
		if is.Severity == IssueSeverityError {
			out = append(out, is)
		}
	}
	return out
}
