package attendance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	teachersSheet = "Teachers"
)

type exportEnvelope struct {
	Kind        Kind      `json:"kind"`
	Period      string    `json:"period"`
	GeneratedAt time.Time `json:"generated_at"`
	Stats       Stats     `json:"stats"`
	Report      Report    `json:"report"`
}

// ExportJSON - выгрузка отчёта со статистикой в JSON
func ExportJSON(r Report, generatedAt time.Time) ([]byte, error) {
	env := exportEnvelope{
		Kind:        r.Kind(),
		Period:      r.Period(),
		GeneratedAt: generatedAt.UTC(),
		Stats:       CalculateStats(r),
		Report:      r,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

// ExportXLSX - выгрузка отчёта в Excel: лист со статистикой и, для дневного отчёта, лист отметок
func ExportXLSX(r Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	stats := CalculateStats(r)
	rows := [][]interface{}{
		{"Report", string(r.Kind())},
		{"Period", r.Period()},
		{"Total", stats.Total},
		{"On time", stats.OnTime},
		{"Late", stats.Late},
		{"Field work", stats.FieldWork},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return nil, fmt.Errorf("set summary cell %s: %w", cell, err)
			}
		}
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 14)
	_ = f.SetColWidth(summarySheet, "B", "B", 28)

	if daily, ok := asDaily(r); ok {
		if err := writeTeachersSheet(f, daily); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTeachersSheet(f *excelize.File, daily DailyReport) error {
	if _, err := f.NewSheet(teachersSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headers := []string{"Teacher ID", "Teacher", "Status", "Check-in", "Location", "Notes"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(teachersSheet, cell, header)
	}

	for i, rec := range daily.TeacherAttendances {
		row := i + 2
		f.SetCellValue(teachersSheet, fmt.Sprintf("A%d", row), rec.TeacherID)
		f.SetCellValue(teachersSheet, fmt.Sprintf("B%d", row), rec.TeacherName)
		f.SetCellValue(teachersSheet, fmt.Sprintf("C%d", row), string(rec.Status))
		f.SetCellValue(teachersSheet, fmt.Sprintf("D%d", row), rec.CheckInTime)
		f.SetCellValue(teachersSheet, fmt.Sprintf("E%d", row), rec.Location)
		f.SetCellValue(teachersSheet, fmt.Sprintf("F%d", row), rec.Notes)
	}
	return nil
}

func asDaily(r Report) (DailyReport, bool) {
	switch rep := r.(type) {
	case DailyReport:
		return rep, true
	case *DailyReport:
		return *rep, true
	}
	return DailyReport{}, false
}
