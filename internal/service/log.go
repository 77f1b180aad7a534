package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/intakelog/backend/internal/cache"
	"github.com/intakelog/backend/internal/models"
)

// LogService handles consumption log entries and the per-day rollups built
// from them. Day totals go through the redis cache when one is configured;
// log writes invalidate the day they touch.
type LogService struct {
	db    *gorm.DB
	cache *cache.DayTotalsCache
	loc   *time.Location
}

func NewLogService(db *gorm.DB, totals *cache.DayTotalsCache, loc *time.Location) *LogService {
	if loc == nil {
		loc = time.Local
	}
	return &LogService{db: db, cache: totals, loc: loc}
}

type LogFoodInput struct {
	UserID     uuid.UUID
	OccurredAt time.Time
	FoodItemID uuid.UUID
	Servings   float64
	Meal       string
	Note       string
}

func (s *LogService) LogFood(ctx context.Context, in LogFoodInput) (*models.LogEntry, error) {
	if in.OccurredAt.IsZero() {
		in.OccurredAt = time.Now().In(s.loc)
	}
	if in.Meal == "" {
		in.Meal = "breakfast"
	}
	entry := models.LogEntry{
		UserID:     in.UserID,
		OccurredAt: in.OccurredAt,
		Kind:       models.RefFood,
		RefID:      in.FoodItemID,
		Servings:   in.Servings,
		Meal:       in.Meal,
		Note:       in.Note,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, in.UserID, in.OccurredAt.In(s.loc).Format(models.DateLayout))
	return &entry, nil
}

func (s *LogService) Delete(ctx context.Context, id uuid.UUID) error {
	var entry models.LogEntry
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return ErrNotFound
	}
	res := s.db.WithContext(ctx).Delete(&models.LogEntry{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	s.cache.Invalidate(ctx, entry.UserID, entry.OccurredAt.In(s.loc).Format(models.DateLayout))
	return nil
}

// DayEntry is one log row joined with its food item, scaled by servings.
type DayEntry struct {
	Entry        models.LogEntry
	FoodName     string
	ServingLabel string
	Calories     float64
	ProteinG     float64
	CarbsG       float64
	FatG         float64
	FiberG       float64
}

// dayBounds returns [start, end) for a calendar day in the app timezone.
func (s *LogService) dayBounds(date string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(models.DateLayout, date, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	return start, start.Add(24 * time.Hour), nil
}

func (s *LogService) Day(ctx context.Context, userID uuid.UUID, date string) ([]DayEntry, error) {
	start, end, err := s.dayBounds(date)
	if err != nil {
		return nil, err
	}
	var entries []models.LogEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND occurred_at >= ? AND occurred_at < ?",
			userID, models.RefFood, start, end).
		Order("occurred_at").Find(&entries).Error; err != nil {
		return nil, err
	}
	out := make([]DayEntry, 0, len(entries))
	for _, e := range entries {
		var food models.FoodItem
		if err := s.db.WithContext(ctx).First(&food, "id = ?", e.RefID).Error; err != nil {
			// Dangling ref; skip the row rather than fail the day view.
			continue
		}
		out = append(out, DayEntry{
			Entry:        e,
			FoodName:     food.Name,
			ServingLabel: food.ServingLabel,
			Calories:     e.Servings * food.CaloriesPerServing,
			ProteinG:     e.Servings * food.ProteinPerServing,
			CarbsG:       e.Servings * food.CarbsPerServing,
			FatG:         e.Servings * food.FatPerServing,
			FiberG:       e.Servings * food.FiberPerServing,
		})
	}
	return out, nil
}

// DayTotals sums the day's entries, consulting the cache first.
func (s *LogService) DayTotals(ctx context.Context, userID uuid.UUID, date string) (*cache.DayTotals, error) {
	if totals, ok := s.cache.Get(ctx, userID, date); ok {
		return totals, nil
	}
	entries, err := s.Day(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	totals := &cache.DayTotals{Date: date, EntryCount: len(entries)}
	for _, e := range entries {
		totals.CaloriesIn += e.Calories
		totals.ProteinG += e.ProteinG
		totals.CarbsG += e.CarbsG
		totals.FatG += e.FatG
		totals.FiberG += e.FiberG
	}
	s.cache.Set(ctx, userID, totals)
	return totals, nil
}

// DayCalories is one day's calorie total for the calendar view.
type DayCalories struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
}

// Range returns per-day calorie totals for [from, to], inclusive.
func (s *LogService) Range(ctx context.Context, userID uuid.UUID, from, to string) ([]DayCalories, error) {
	start, _, err := s.dayBounds(from)
	if err != nil {
		return nil, err
	}
	_, end, err := s.dayBounds(to)
	if err != nil {
		return nil, err
	}
	var entries []models.LogEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND occurred_at >= ? AND occurred_at < ?",
			userID, models.RefFood, start, end).
		Order("occurred_at").Find(&entries).Error; err != nil {
		return nil, err
	}
	byDay := map[string]float64{}
	var days []string
	for _, e := range entries {
		var food models.FoodItem
		if err := s.db.WithContext(ctx).First(&food, "id = ?", e.RefID).Error; err != nil {
			continue
		}
		day := e.OccurredAt.In(s.loc).Format(models.DateLayout)
		if _, seen := byDay[day]; !seen {
			days = append(days, day)
		}
		byDay[day] += e.Servings * food.CaloriesPerServing
	}
	out := make([]DayCalories, 0, len(days))
	for _, day := range days {
		out = append(out, DayCalories{Date: day, Calories: byDay[day]})
	}
	return out, nil
}
