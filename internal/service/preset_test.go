package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intakelog/backend/internal/models"
	"github.com/intakelog/backend/internal/testdb"
)

func TestPresetCreateValidatesKind(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)
	svc := NewPresetService(db)

	_, err := svc.Create(context.Background(), userID, "Bad", false, []PresetItemInput{
		{Kind: "snack", RefID: uuid.New(), Servings: 1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPresetKind)

	// The transaction rolled the preset row back too.
	var n int64
	require.NoError(t, db.Model(&models.Preset{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestPresetApplyLogsAllItemsAtOneInstant(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)
	oats := seedFood(t, db, userID, "Oats", 150)
	eggs := seedFood(t, db, userID, "Eggs", 220)
	svc := NewPresetService(db)
	ctx := context.Background()

	preset, err := svc.Create(ctx, userID, "Breakfast", true, []PresetItemInput{
		{Kind: models.RefFood, RefID: oats.ID, Servings: 2},
		{Kind: models.RefFood, RefID: eggs.ID}, // defaults to 1 serving
	})
	require.NoError(t, err)

	logged, err := svc.Apply(ctx, userID, preset.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, logged)

	var entries []models.LogEntry
	require.NoError(t, db.Order("servings DESC").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, 2.0, entries[0].Servings)
	assert.Equal(t, 1.0, entries[1].Servings)
	assert.True(t, entries[0].OccurredAt.Equal(entries[1].OccurredAt))
}

func TestPresetListPinnedFirst(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)
	svc := NewPresetService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, userID, "Alpha", false, nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, userID, "Zulu", true, nil)
	require.NoError(t, err)

	presets, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, presets, 2)
	assert.Equal(t, "Zulu", presets[0].Name)
}
