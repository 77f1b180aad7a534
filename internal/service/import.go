package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/intakelog/backend/internal/bundle"
	"github.com/intakelog/backend/internal/models"
)

// ImportService replays a bundle into the store: one transaction, collections
// applied in bundle.CollectionOrder, every row upserted by its stable
// identifier (insert if absent, whole-row overwrite on collision). All owned
// rows are rewritten to a single effective user resolved once per import.
//
// References carried by log entries and preset items are trusted, not
// validated against the referenced table; a dangling recipe_portion reference
// imports cleanly and surfaces as an empty join at read time. Concurrent
// imports for the same user are last-writer-wins under the store's isolation.
type ImportService struct {
	db            *gorm.DB
	logger        *logrus.Logger
	defaultUserID uuid.UUID
}

func NewImportService(db *gorm.DB, logger *logrus.Logger, defaultUserID uuid.UUID) *ImportService {
	return &ImportService{db: db, logger: logger, defaultUserID: defaultUserID}
}

// resolveEffectiveUser picks the owner for the whole import: an explicitly
// requested user wins, then the user recorded in the bundle, then the
// configured single-tenant default.
func (s *ImportService) resolveEffectiveUser(requested string, b *bundle.Bundle) (uuid.UUID, error) {
	if requested != "" {
		id, err := uuid.Parse(requested)
		if err != nil {
			return uuid.Nil, fmt.Errorf("requested user id %q: %w", requested, err)
		}
		return id, nil
	}
	if b.UserID != "" {
		if id, err := uuid.Parse(b.UserID); err == nil {
			return id, nil
		}
	}
	return s.defaultUserID, nil
}

// Import applies the bundle atomically and returns the number of rows
// written. The first row failure aborts and rolls back everything; the store
// is left exactly as it was.
func (s *ImportService) Import(ctx context.Context, b *bundle.Bundle, requestedUser string) (int, error) {
	effectiveUser, err := s.resolveEffectiveUser(requestedUser, b)
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"effective_user": effectiveUser,
		"bundle_user":    b.UserID,
		"rows":           b.Rows(),
	}).Debug("import start")

	// One shared timestamp for every defaulted created_at/occurred_at in this
	// import, so backfilled rows group together when queried by time.
	now := time.Now().UTC()

	st := &importState{user: effectiveUser, now: now}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUser(tx, effectiveUser); err != nil {
			return fmt.Errorf("%w: ensure user: %v", ErrStoreUnavailable, err)
		}
		for _, collection := range bundle.CollectionOrder() {
			if err := st.apply(tx, collection, b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"effective_user": effectiveUser,
		"rows_written":   st.staged,
	}).Info("import committed")
	return st.staged, nil
}

// ensureUser creates the effective owner if it does not exist yet, so every
// later foreign-key write has a target. Idempotent; never touches an
// existing row.
func ensureUser(tx *gorm.DB, id uuid.UUID) error {
	user := models.User{ID: id, DisplayName: "Imported User"}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error
}

// importState carries the per-import counters through the collection writers.
type importState struct {
	user   uuid.UUID
	now    time.Time
	staged int
}

func (st *importState) apply(tx *gorm.DB, collection string, b *bundle.Bundle) error {
	switch collection {
	case bundle.CollectionUsers:
		// The owner row is written by ensureUser before any collection.
		return nil
	case bundle.CollectionFoodItems:
		return st.applyFoodItems(tx, b.FoodItems)
	case bundle.CollectionRecipes:
		return st.applyRecipes(tx, b.Recipes)
	case bundle.CollectionRecipeIngredients:
		return st.applyRecipeIngredients(tx, b.RecipeIngredients)
	case bundle.CollectionRecipePortions:
		return st.applyRecipePortions(tx, b.RecipePortions)
	case bundle.CollectionPresets:
		return st.applyPresets(tx, b.Presets)
	case bundle.CollectionPresetItems:
		return st.applyPresetItems(tx, b.PresetItems)
	case bundle.CollectionLogEntries:
		return st.applyLogEntries(tx, b.LogEntries)
	case bundle.CollectionBodyWeights:
		return st.applyBodyWeights(tx, b.BodyWeights)
	case bundle.CollectionDailyActivity:
		return st.applyDailyActivity(tx, b.DailyActivity)
	}
	return fmt.Errorf("unknown collection %q", collection)
}

func (st *importState) rowErr(collection, rowID string, err error) error {
	return &RowError{Collection: collection, RowID: rowID, Staged: st.staged, Err: err}
}

func (st *importState) createdAt(t time.Time) time.Time {
	if t.IsZero() {
		return st.now
	}
	return t
}

// upsertByID inserts the row or overwrites every listed column when a row
// with the same id exists. created_at is never in the update list: the
// original creation time survives re-imports.
func upsertByID(tx *gorm.DB, row any, updateColumns []string) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(row).Error
}

func (st *importState) applyFoodItems(tx *gorm.DB, items []bundle.FoodItem) error {
	for _, it := range items {
		id, err := uuid.Parse(it.ID)
		if err != nil {
			return st.rowErr(bundle.CollectionFoodItems, it.ID, err)
		}
		row := models.FoodItem{
			ID:                 id,
			Name:               it.Name,
			Brand:              it.Brand,
			ServingLabel:       it.ServingLabel,
			Source:             it.Source,
			CaloriesPerServing: it.CaloriesPerServing,
			ProteinPerServing:  it.ProteinPerServing,
			CarbsPerServing:    it.CarbsPerServing,
			FatPerServing:      it.FatPerServing,
			FiberPerServing:    it.FiberPerServing,
			CreatedAt:          st.createdAt(it.CreatedAt),
		}
		// A food item the bundle recorded as unowned stays unowned; an owned
		// one is remapped to the effective user like every other collection.
		if it.UserID != "" {
			owner := st.user
			row.UserID = &owner
		}
		if err := upsertByID(tx, &row, []string{
			"user_id", "name", "brand", "serving_label", "source",
			"calories_per_serving", "protein_g_per_serving", "carbs_g_per_serving",
			"fat_g_per_serving", "fiber_g_per_serving",
		}); err != nil {
			return st.rowErr(bundle.CollectionFoodItems, it.ID, err)
		}
		st.staged++
	}
	return nil
}

func (st *importState) applyRecipes(tx *gorm.DB, items []bundle.Recipe) error {
	for _, it := range items {
		id, err := uuid.Parse(it.ID)
		if err != nil {
			return st.rowErr(bundle.CollectionRecipes, it.ID, err)
		}
		row := models.Recipe{
			ID:           id,
			UserID:       st.user,
			Name:         it.Name,
			Instructions: it.Instructions,
			YieldCount:   it.YieldCount,
			CreatedAt:    st.createdAt(it.CreatedAt),
		}
		if err := upsertByID(tx, &row, []string{"user_id", "name", "instructions", "yield_count"}); err != nil {
			return st.rowErr(bundle.CollectionRecipes, it.ID, err)
		}
		st.staged++
	}
	return nil
}

func (st *importState) applyRecipeIngredients(tx *gorm.DB, items []bundle.RecipeIngredient) error {
	for _, it := range items {
		id, err := uuid.Parse(it.ID)
		if err != nil {
			return st.rowErr(bundle.CollectionRecipeIngredients, it.ID, err)
		}
		recipeID, err := uuid.Parse(it.RecipeID)
		if err != nil {
			return st.rowErr(bundle.CollectionRecipeIngredients, it.ID, err)
		}
		foodItemID, err := uuid.Parse(it.FoodItemID)
		if err != nil {
			return st.rowErr(bundle.CollectionRecipeIngredients, it.ID, err)
		}
		row := models.RecipeIngredient{
			ID:         id,
			RecipeID:   recipeID,
			FoodItemID: foodItemID,
			AmountG:    it.AmountG,
			CreatedAt:  st.createdAt(it.CreatedAt),
		}
		if err := upsertByID(tx, &row, []string{"recipe_id", "food_item_id", "amount_g"}); err != nil {
			return st.rowErr(bundle.CollectionRecipeIngredients, it.ID, err)
		}
		st.staged++
	}
	return nil
}

func (st *importState) applyRecipePortions(tx *gorm.DB, items []bundle.RecipePortion) error {
	for _, it := range items {
		id, err := uuid.Parse(it.ID)
		if err != nil {
			return st.rowErr(bundle.CollectionRecipePortions, it.ID, err)
		}
		recipeID, err := uuid.Parse(it.RecipeID)
		if err != nil {
			return st.rowErr(bundle.CollectionRecipePortions, it.ID, err)
		}
		row := models.RecipePortion{
			ID:           id,
			RecipeID:     recipeID,
			Name:         it.Name,
			PortionCount: it.PortionCount,
			CreatedAt:    st.createdAt(it.CreatedAt),
		}
		if err := upsertByID(tx, &row, []string{"recipe_id", "name", "portion_count"}); err != nil {
			return st.rowErr(bundle.CollectionRecipePortions, it.ID, err)
		}
		st.staged++
	}
	return nil
}

func (st *importState) applyPresets(tx *gorm.DB, items []bundle.Preset) error {
	for _, it := range items {
		id, err := uuid.Parse(it.ID)
		if err != nil {
			return st.rowErr(bundle.CollectionPresets, it.ID, err)
		}
		row := models.Preset{
			ID:        id,
			UserID:    st.user,
			Name:      it.Name,
			Pinned:    it.Pinned,
			CreatedAt: st.createdAt(it.CreatedAt),
		}
		if err := upsertByID(tx, &row, []string{"user_id", "name", "pinned"}); err != nil {
			return st.rowErr(bundle.CollectionPresets, it.ID, err)
		}
		st.staged++
	}
	return nil
}

func (st *importState) applyPresetItems(tx *gorm.DB, items []bundle.PresetItem) error {
	for _, it := range items {
		id, err := uuid.Parse(it.ID)
		if err != nil {
			return st.rowErr(bundle.CollectionPresetItems, it.ID, err)
		}
		presetID, err := uuid.Parse(it.PresetID)
		if err != nil {
			return st.rowErr(bundle.CollectionPresetItems, it.ID, err)
		}
		refID, err := uuid.Parse(it.RefID)
		if err != nil {
			return st.rowErr(bundle.CollectionPresetItems, it.ID, err)
		}
		row := models.PresetItem{
			ID:        id,
			PresetID:  presetID,
			Kind:      models.RefKind(it.Kind),
			RefID:     refID,
			Servings:  it.Servings,
			CreatedAt: st.createdAt(it.CreatedAt),
		}
		if err := upsertByID(tx, &row, []string{"preset_id", "kind", "ref_id", "servings"}); err != nil {
			return st.rowErr(bundle.CollectionPresetItems, it.ID, err)
		}
		st.staged++
	}
	return nil
}

func (st *importState) applyLogEntries(tx *gorm.DB, items []bundle.LogEntry) error {
	for _, it := range items {
		id, err := uuid.Parse(it.ID)
		if err != nil {
			return st.rowErr(bundle.CollectionLogEntries, it.ID, err)
		}
		refID, err := uuid.Parse(it.RefID)
		if err != nil {
			return st.rowErr(bundle.CollectionLogEntries, it.ID, err)
		}
		occurredAt := it.OccurredAt
		if occurredAt.IsZero() {
			occurredAt = st.now
		}
		row := models.LogEntry{
			ID:         id,
			UserID:     st.user,
			OccurredAt: occurredAt,
			Kind:       models.RefKind(it.Kind),
			RefID:      refID,
			Servings:   it.Servings,
			Meal:       it.Meal,
			Note:       it.Note,
			CreatedAt:  st.createdAt(it.CreatedAt),
		}
		if err := upsertByID(tx, &row, []string{
			"user_id", "occurred_at", "kind", "ref_id", "servings", "meal", "note",
		}); err != nil {
			return st.rowErr(bundle.CollectionLogEntries, it.ID, err)
		}
		st.staged++
	}
	return nil
}

func (st *importState) applyBodyWeights(tx *gorm.DB, items []bundle.BodyWeight) error {
	for _, it := range items {
		id, err := uuid.Parse(it.ID)
		if err != nil {
			return st.rowErr(bundle.CollectionBodyWeights, it.ID, err)
		}
		measuredAt := it.MeasuredAt
		if measuredAt.IsZero() {
			measuredAt = st.now
		}
		row := models.BodyWeight{
			ID:         id,
			UserID:     st.user,
			MeasuredAt: measuredAt,
			WeightKg:   it.WeightKg,
			Source:     it.Source,
			Note:       it.Note,
			CreatedAt:  st.createdAt(it.CreatedAt),
		}
		if err := upsertByID(tx, &row, []string{
			"user_id", "measured_at", "weight_kg", "source", "note",
		}); err != nil {
			return st.rowErr(bundle.CollectionBodyWeights, it.ID, err)
		}
		st.staged++
	}
	return nil
}

func (st *importState) applyDailyActivity(tx *gorm.DB, items []bundle.DailyActivity) error {
	for _, it := range items {
		if _, err := models.ParseDate(it.Date); err != nil {
			return st.rowErr(bundle.CollectionDailyActivity, it.Date,
				fmt.Errorf("%w: %q", ErrInvalidDate, it.Date))
		}
		row := models.DailyActivity{
			UserID:        st.user,
			Date:          it.Date,
			Steps:         it.Steps,
			ActiveKcalEst: it.ActiveKcalEst,
			Source:        it.Source,
			CreatedAt:     st.createdAt(it.CreatedAt),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"steps", "active_calories_kcal_est", "source"}),
		}).Create(&row).Error; err != nil {
			return st.rowErr(bundle.CollectionDailyActivity, it.Date, err)
		}
		st.staged++
	}
	return nil
}
