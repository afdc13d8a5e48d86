package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// Рисует PNG превью расписания: из JSON ответа /schedules/preview или на тестовых данных
func main() {
	input := flag.String("in", "", "JSON file with a schedule preview (empty: sample data)")
	output := flag.String("out", "preview.png", "output PNG file")
	week := flag.Int("week", 0, "week index, 0-based")
	title := flag.String("title", "Schedule preview", "image title")
	flag.Parse()

	preview, err := loadPreview(*input)
	if err != nil {
		fmt.Printf("Failed to read preview: %v\n", err)
		os.Exit(1)
	}

	imageData, err := common.GeneratePreviewImage(*title, preview, *week)
	if err != nil {
		fmt.Printf("Failed to render image: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*output, imageData, 0644); err != nil {
		fmt.Printf("Failed to save file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Image saved to %s\n", *output)
	fmt.Printf("📊 Sessions: %d, weeks: %d\n", len(preview.Sessions), common.PreviewWeeks(preview))
}

func loadPreview(path string) (*model.SchedulePreview, error) {
	if path == "" {
		return samplePreview(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// ответ API приходит в конверте {"data": ...}, но принимаем и голый объект
	var envelope struct {
		Data *model.SchedulePreview `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}
	var preview model.SchedulePreview
	if err := json.Unmarshal(data, &preview); err != nil {
		return nil, err
	}
	return &preview, nil
}

// samplePreview - две недели занятий пн/ср 09:00-11:00, одно перенесено из-за праздника
func samplePreview() *model.SchedulePreview {
	start := time.Now()
	for start.Weekday() != time.Monday {
		start = start.AddDate(0, 0, -1)
	}

	p := &model.SchedulePreview{CanCreate: true}
	n := 0
	for w := 0; w < 2; w++ {
		for _, offset := range []int{0, 2} {
			n++
			day := start.AddDate(0, 0, 7*w+offset)
			p.Sessions = append(p.Sessions, model.PreviewSession{
				SessionNumber: n,
				WeekNumber:    w + 1,
				Date:          day.Format("2006-01-02"),
				StartTime:     "09:00",
				EndTime:       "11:00",
			})
		}
	}

	// среда первой недели - праздник, занятие сдвинуто на четверг
	holiday := start.AddDate(0, 0, 2)
	shifted := start.AddDate(0, 0, 3)
	p.Sessions[1].Date = shifted.Format("2006-01-02")
	p.Sessions[1].Rescheduled = true
	p.HolidayImpacts = []model.HolidayImpact{{
		OriginalDate: holiday.Format("2006-01-02"),
		ShiftedDate:  shifted.Format("2006-01-02"),
		HolidayName:  "Makha Bucha",
	}}
	p.TotalSessions = len(p.Sessions)
	p.EstimatedEndDate = p.Sessions[len(p.Sessions)-1].Date
	return p
}
