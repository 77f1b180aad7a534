// Package bundle defines the portable export document: one versioned JSON
// object holding every collection a user can own, plus the fixed order in
// which those collections must be written back so that no row ever references
// a target that has not been written yet.
package bundle

import "time"

// Version is the only bundle schema version currently defined.
const Version = 1

// Collection tags, used for write ordering and error reporting.
const (
	CollectionUsers             = "users"
	CollectionFoodItems         = "food_items"
	CollectionRecipes           = "recipes"
	CollectionRecipeIngredients = "recipe_ingredients"
	CollectionRecipePortions    = "recipe_portions"
	CollectionPresets           = "presets"
	CollectionPresetItems       = "preset_items"
	CollectionLogEntries        = "log_entries"
	CollectionBodyWeights       = "body_weights"
	CollectionDailyActivity     = "daily_activity"
)

// CollectionOrder returns the dependency-respecting write order. Every
// reference between collections points strictly earlier in this list, so a
// topological sort per bundle is unnecessary; the graph is fixed and acyclic.
func CollectionOrder() []string {
	return []string{
		CollectionUsers,
		CollectionFoodItems,
		CollectionRecipes,
		CollectionRecipeIngredients,
		CollectionRecipePortions,
		CollectionPresets,
		CollectionPresetItems,
		CollectionLogEntries,
		CollectionBodyWeights,
		CollectionDailyActivity,
	}
}

type FoodItem struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id,omitempty"`
	Name               string    `json:"name"`
	Brand              string    `json:"brand"`
	ServingLabel       string    `json:"serving_label"`
	Source             string    `json:"source"`
	CaloriesPerServing float64   `json:"calories_per_serving"`
	ProteinPerServing  float64   `json:"protein_g_per_serving"`
	CarbsPerServing    float64   `json:"carbs_g_per_serving"`
	FatPerServing      float64   `json:"fat_g_per_serving"`
	FiberPerServing    float64   `json:"fiber_g_per_serving"`
	CreatedAt          time.Time `json:"created_at"`
}

type Recipe struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Instructions string    `json:"instructions"`
	YieldCount   int       `json:"yield_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type RecipeIngredient struct {
	ID         string    `json:"id"`
	RecipeID   string    `json:"recipe_id"`
	FoodItemID string    `json:"food_item_id"`
	AmountG    float64   `json:"amount_g"`
	CreatedAt  time.Time `json:"created_at"`
}

type RecipePortion struct {
	ID           string    `json:"id"`
	RecipeID     string    `json:"recipe_id"`
	Name         string    `json:"name"`
	PortionCount float64   `json:"portion_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type Preset struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
}

type PresetItem struct {
	ID        string    `json:"id"`
	PresetID  string    `json:"preset_id"`
	Kind      string    `json:"kind"`
	RefID     string    `json:"ref_id"`
	Servings  float64   `json:"servings"`
	CreatedAt time.Time `json:"created_at"`
}

type LogEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Kind       string    `json:"kind"`
	RefID      string    `json:"ref_id"`
	Servings   float64   `json:"servings"`
	Meal       string    `json:"meal"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

type BodyWeight struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	MeasuredAt time.Time `json:"measured_at"`
	WeightKg   float64   `json:"weight_kg"`
	Source     string    `json:"source"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

type DailyActivity struct {
	UserID        string    `json:"user_id"`
	Date          string    `json:"date"`
	Steps         int       `json:"steps"`
	ActiveKcalEst float64   `json:"active_calories_kcal_est"`
	Source        string    `json:"source"`
	CreatedAt     time.Time `json:"created_at"`
}

// Bundle is the full export document. Array order on the wire carries no
// meaning; the importer applies CollectionOrder regardless of how the arrays
// were produced.
type Bundle struct {
	Version           int                `json:"version"`
	ExportedAt        time.Time          `json:"exported_at"`
	UserID            string             `json:"user_id"`
	FoodItems         []FoodItem         `json:"food_items"`
	Recipes           []Recipe           `json:"recipes"`
	RecipeIngredients []RecipeIngredient `json:"recipe_ingredients"`
	RecipePortions    []RecipePortion    `json:"recipe_portions"`
	Presets           []Preset           `json:"presets"`
	PresetItems       []PresetItem       `json:"preset_items"`
	LogEntries        []LogEntry         `json:"log_entries"`
	BodyWeights       []BodyWeight       `json:"body_weights"`
	DailyActivity     []DailyActivity    `json:"daily_activity"`
}

// Rows returns the total number of collection rows the bundle carries.
func (b *Bundle) Rows() int {
	return len(b.FoodItems) + len(b.Recipes) + len(b.RecipeIngredients) +
		len(b.RecipePortions) + len(b.Presets) + len(b.PresetItems) +
		len(b.LogEntries) + len(b.BodyWeights) + len(b.DailyActivity)
}
