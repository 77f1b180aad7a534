package bundle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte("{not json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeMissingArrays(t *testing.T) {
	b, err := Decode([]byte(`{"version":1,"user_id":"00000000-0000-0000-0000-000000000001"}`))
	require.NoError(t, err)
	assert.Equal(t, 1, b.Version)
	assert.Equal(t, 0, b.Rows())
	assert.Empty(t, b.FoodItems)
	assert.Empty(t, b.DailyActivity)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := &Bundle{
		Version:    Version,
		ExportedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		UserID:     "00000000-0000-0000-0000-000000000001",
		FoodItems: []FoodItem{{
			ID:                 "11111111-1111-1111-1111-111111111111",
			Name:               "Oats",
			ServingLabel:       "40 g",
			Source:             "custom",
			CaloriesPerServing: 150,
			ProteinPerServing:  5,
			CarbsPerServing:    27,
			FatPerServing:      2.5,
			FiberPerServing:    4,
		}},
		DailyActivity: []DailyActivity{{
			UserID: "00000000-0000-0000-0000-000000000001",
			Date:   "2026-03-01",
			Steps:  8000,
		}},
	}

	data, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCollectionOrder(t *testing.T) {
	order := CollectionOrder()
	require.Len(t, order, 10)

	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}

	assert.Equal(t, 0, pos[CollectionUsers])
	assert.Equal(t, len(order)-1, pos[CollectionDailyActivity])

	// Every cross-collection reference must point strictly earlier.
	assert.Less(t, pos[CollectionFoodItems], pos[CollectionRecipes])
	assert.Less(t, pos[CollectionRecipes], pos[CollectionRecipeIngredients])
	assert.Less(t, pos[CollectionRecipes], pos[CollectionRecipePortions])
	assert.Less(t, pos[CollectionPresets], pos[CollectionPresetItems])
	assert.Less(t, pos[CollectionRecipePortions], pos[CollectionLogEntries])
}
