package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/intakelog/backend/internal/models"
)

// MarkdownExportService renders a date range as one markdown file per day
// (summary table, food log grouped by meal, weight, activity) bundled into a
// zip. This is a human-readable companion to the full data bundle, not a
// restore format.
type MarkdownExportService struct {
	logs     *LogService
	tracking *TrackingService
	loc      *time.Location
}

func NewMarkdownExportService(logs *LogService, tracking *TrackingService, loc *time.Location) *MarkdownExportService {
	if loc == nil {
		loc = time.Local
	}
	return &MarkdownExportService{logs: logs, tracking: tracking, loc: loc}
}

// Export builds the zip for [from, to], inclusive, both YYYY-MM-DD.
func (s *MarkdownExportService) Export(ctx context.Context, userID uuid.UUID, from, to string) ([]byte, error) {
	start, err := time.ParseInLocation(models.DateLayout, from, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, from)
	}
	end, err := time.ParseInLocation(models.DateLayout, to, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, to)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range %s to %s", ErrInvalidDate, from, to)
	}

	weights, err := s.tracking.WeightsInRange(ctx, userID, start, end.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	weightByDay := map[string][]float64{}
	for _, w := range weights {
		day := w.MeasuredAt.In(s.loc).Format(models.DateLayout)
		weightByDay[day] = append(weightByDay[day], w.WeightKg)
	}
	activity, err := s.tracking.ActivityInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	activityByDay := map[string]models.DailyActivity{}
	for _, a := range activity {
		activityByDay[a.Date] = a
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for cur := start; !cur.After(end); cur = cur.Add(24 * time.Hour) {
		day := cur.Format(models.DateLayout)
		entries, err := s.logs.Day(ctx, userID, day)
		if err != nil {
			return nil, err
		}
		page := renderDay(day, entries, weightByDay[day], activityByDay[day])
		f, err := zw.Create(day + ".md")
		if err != nil {
			return nil, err
		}
		if _, err := f.Write([]byte(page)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderDay(day string, entries []DayEntry, weights []float64, activity models.DailyActivity) string {
	var sb strings.Builder
	sb.WriteString("# " + day + "\n\n")

	var kcal, protein, carbs, fat, fiber float64
	for _, e := range entries {
		kcal += e.Calories
		protein += e.ProteinG
		carbs += e.CarbsG
		fat += e.FatG
		fiber += e.FiberG
	}

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| | |\n|---|---|\n")
	sb.WriteString(fmt.Sprintf("| Calories | %.0f kcal |\n", kcal))
	sb.WriteString(fmt.Sprintf("| Protein | %.1f g |\n", protein))
	sb.WriteString(fmt.Sprintf("| Carbs | %.1f g |\n", carbs))
	sb.WriteString(fmt.Sprintf("| Fat | %.1f g |\n", fat))
	sb.WriteString(fmt.Sprintf("| Fiber | %.1f g |\n", fiber))
	if len(weights) > 0 {
		var sum float64
		for _, w := range weights {
			sum += w
		}
		sb.WriteString(fmt.Sprintf("| Weight | %.2f kg |\n", sum/float64(len(weights))))
	}
	if activity.Steps > 0 {
		sb.WriteString(fmt.Sprintf("| Steps | %d |\n", activity.Steps))
	}
	if activity.ActiveKcalEst > 0 {
		sb.WriteString(fmt.Sprintf("| Active kcal | %.0f |\n", activity.ActiveKcalEst))
	}
	sb.WriteString("\n")

	if len(entries) == 0 {
		sb.WriteString("_No food logged._\n\n")
		return sb.String()
	}

	sb.WriteString("## Food Log\n\n")
	byMeal := map[string][]DayEntry{}
	var meals []string
	for _, e := range entries {
		meal := e.Entry.Meal
		if _, seen := byMeal[meal]; !seen {
			meals = append(meals, meal)
		}
		byMeal[meal] = append(byMeal[meal], e)
	}
	for _, meal := range meals {
		sb.WriteString("### " + mealTitle(meal) + "\n\n")
		sb.WriteString("| Food | Servings | kcal | Protein | Carbs | Fat |\n")
		sb.WriteString("|---|---|---|---|---|---|\n")
		var mealKcal, mealProtein float64
		for _, e := range byMeal[meal] {
			sb.WriteString(fmt.Sprintf("| %s | %.2g | %.0f | %.1fg | %.1fg | %.1fg |\n",
				e.FoodName, e.Entry.Servings, e.Calories, e.ProteinG, e.CarbsG, e.FatG))
			mealKcal += e.Calories
			mealProtein += e.ProteinG
		}
		sb.WriteString(fmt.Sprintf("\n**Meal total:** %.0f kcal · %.1fg protein\n\n", mealKcal, mealProtein))
	}
	return sb.String()
}

func mealTitle(meal string) string {
	words := strings.Fields(strings.ReplaceAll(meal, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
