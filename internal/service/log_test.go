package service

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intakelog/backend/internal/cache"
	"github.com/intakelog/backend/internal/testdb"
)

func TestLogFoodAndDayTotals(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)
	oats := seedFood(t, db, userID, "Oats", 150)
	eggs := seedFood(t, db, userID, "Eggs", 220)

	svc := NewLogService(db, cache.NewDayTotalsCache(nil, time.Minute), time.UTC)
	ctx := context.Background()
	morning := time.Date(2026, 2, 3, 8, 0, 0, 0, time.UTC)

	entry, err := svc.LogFood(ctx, LogFoodInput{
		UserID: userID, OccurredAt: morning, FoodItemID: oats.ID, Servings: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "breakfast", entry.Meal)

	_, err = svc.LogFood(ctx, LogFoodInput{
		UserID: userID, OccurredAt: morning.Add(5 * time.Hour),
		FoodItemID: eggs.ID, Servings: 1, Meal: "lunch",
	})
	require.NoError(t, err)

	entries, err := svc.Day(ctx, userID, "2026-02-03")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 300.0, entries[0].Calories)

	totals, err := svc.DayTotals(ctx, userID, "2026-02-03")
	require.NoError(t, err)
	assert.Equal(t, 2, totals.EntryCount)
	assert.Equal(t, 520.0, totals.CaloriesIn)

	// Another day is empty.
	totals, err = svc.DayTotals(ctx, userID, "2026-02-04")
	require.NoError(t, err)
	assert.Equal(t, 0, totals.EntryCount)
}

func TestLogDayInvalidDate(t *testing.T) {
	db := testdb.New(t)
	svc := NewLogService(db, nil, time.UTC)
	_, err := svc.Day(context.Background(), uuid.New(), "03/02/2026")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestLogDeleteMissing(t *testing.T) {
	db := testdb.New(t)
	svc := NewLogService(db, nil, time.UTC)
	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New()), ErrNotFound)
}

func TestLogRangeGroupsByDay(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)
	oats := seedFood(t, db, userID, "Oats", 100)

	svc := NewLogService(db, nil, time.UTC)
	ctx := context.Background()
	for day := 1; day <= 3; day++ {
		at := time.Date(2026, 2, day, 12, 0, 0, 0, time.UTC)
		_, err := svc.LogFood(ctx, LogFoodInput{
			UserID: userID, OccurredAt: at, FoodItemID: oats.ID, Servings: float64(day),
		})
		require.NoError(t, err)
	}

	days, err := svc.Range(ctx, userID, "2026-02-01", "2026-02-02")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2026-02-01", days[0].Date)
	assert.Equal(t, 100.0, days[0].Calories)
	assert.Equal(t, 200.0, days[1].Calories)
}

func TestMarkdownExportZip(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)
	oats := seedFood(t, db, userID, "Oats", 150)

	logs := NewLogService(db, nil, time.UTC)
	tracking := NewTrackingService(db)
	ctx := context.Background()

	_, err := logs.LogFood(ctx, LogFoodInput{
		UserID:     userID,
		OccurredAt: time.Date(2026, 2, 3, 8, 0, 0, 0, time.UTC),
		FoodItemID: oats.ID,
		Servings:   1,
	})
	require.NoError(t, err)
	require.NoError(t, tracking.RecordActivity(ctx, DailyActivityInput{
		UserID: userID, Date: "2026-02-03", Steps: 7000, ActiveKcalEst: 250,
	}))

	svc := NewMarkdownExportService(logs, tracking, time.UTC)
	archive, err := svc.Export(ctx, userID, "2026-02-03", "2026-02-04")
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "2026-02-03.md", zr.File[0].Name)
	assert.Equal(t, "2026-02-04.md", zr.File[1].Name)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	var page bytes.Buffer
	_, err = page.ReadFrom(rc)
	require.NoError(t, err)
	assert.Contains(t, page.String(), "# 2026-02-03")
	assert.Contains(t, page.String(), "Oats")
	assert.Contains(t, page.String(), "| Steps | 7000 |")
}

func TestMarkdownExportRejectsBadRange(t *testing.T) {
	db := testdb.New(t)
	logs := NewLogService(db, nil, time.UTC)
	svc := NewMarkdownExportService(logs, NewTrackingService(db), time.UTC)

	_, err := svc.Export(context.Background(), uuid.New(), "2026-02-05", "2026-02-01")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.Export(context.Background(), uuid.New(), "bad", "2026-02-01")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
