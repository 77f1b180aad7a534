package database

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/intakelog/backend/internal/models"
)

// RunMigrations brings the schema up to date. Table order matters for the
// foreign keys; it mirrors the write order of a data import.
func RunMigrations(db *gorm.DB) error {
	logrus.WithField("dialect", db.Dialector.Name()).Info("running migrations")
	return db.AutoMigrate(
		&models.User{},
		&models.FoodItem{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.RecipePortion{},
		&models.RecipePhoto{},
		&models.ShoppingItem{},
		&models.Preset{},
		&models.PresetItem{},
		&models.LogEntry{},
		&models.BodyWeight{},
		&models.DailyActivity{},
		&models.PantryItem{},
	)
}
