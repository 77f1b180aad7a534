package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intakelog/backend/internal/models"
	"github.com/intakelog/backend/internal/testdb"
)

func TestRecordActivityUpsertsByDay(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)
	svc := NewTrackingService(db)
	ctx := context.Background()

	require.NoError(t, svc.RecordActivity(ctx, DailyActivityInput{
		UserID: userID, Date: "2026-02-03", Steps: 5000, ActiveKcalEst: 180,
	}))
	require.NoError(t, svc.RecordActivity(ctx, DailyActivityInput{
		UserID: userID, Date: "2026-02-03", Steps: 11000, ActiveKcalEst: 420,
	}))

	var rows []models.DailyActivity
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 11000, rows[0].Steps)
	assert.Equal(t, 420.0, rows[0].ActiveKcalEst)
}

func TestRecordActivityRejectsBadDate(t *testing.T) {
	db := testdb.New(t)
	err := NewTrackingService(db).RecordActivity(context.Background(), DailyActivityInput{
		UserID: seedUser(t, db), Date: "February 3rd", Steps: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestActivityReturnsZerosWhenUnrecorded(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)

	row, err := NewTrackingService(db).Activity(context.Background(), userID, "2026-02-03")
	require.NoError(t, err)
	assert.Equal(t, 0, row.Steps)
	assert.Equal(t, 0.0, row.ActiveKcalEst)
	assert.Equal(t, "2026-02-03", row.Date)
}

func TestWeightsInRange(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)
	svc := NewTrackingService(db)
	ctx := context.Background()

	for i, kg := range []float64{82.0, 81.5, 81.2} {
		_, err := svc.RecordWeight(ctx, BodyWeightInput{
			UserID:     userID,
			MeasuredAt: time.Date(2026, 2, 1+i, 7, 0, 0, 0, time.UTC),
			WeightKg:   kg,
		})
		require.NoError(t, err)
	}

	rows, err := svc.WeightsInRange(ctx, userID,
		time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 81.5, rows[0].WeightKg)
	assert.Equal(t, "manual", rows[0].Source)
}

func TestPantryDeductFloorsAtZero(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)
	oats := seedFood(t, db, userID, "Oats", 150)
	svc := NewPantryService(db)
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, userID, oats.ID, 3))
	require.NoError(t, svc.Deduct(ctx, userID, oats.ID, 2))

	entries, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1.0, entries[0].Item.Quantity)

	// Deducting past zero clamps.
	require.NoError(t, svc.Deduct(ctx, userID, oats.ID, 5))
	entries, err = svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, entries[0].Item.Quantity)
}

func TestPantryDeductWithoutRowIsNoop(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)
	oats := seedFood(t, db, userID, "Oats", 150)

	require.NoError(t, NewPantryService(db).Deduct(context.Background(), userID, oats.ID, 1))

	var n int64
	require.NoError(t, db.Model(&models.PantryItem{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestPantryUpsertOverwrites(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)
	oats := seedFood(t, db, userID, "Oats", 150)
	svc := NewPantryService(db)
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, userID, oats.ID, 2))
	require.NoError(t, svc.Upsert(ctx, userID, oats.ID, 6))

	entries, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 6.0, entries[0].Item.Quantity)
}
