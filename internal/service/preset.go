package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/intakelog/backend/internal/models"
)

var ErrInvalidPresetKind = errors.New("invalid preset item kind")

// PresetService handles reusable meal presets and applying them to the log.
type PresetService struct {
	db *gorm.DB
}

func NewPresetService(db *gorm.DB) *PresetService {
	return &PresetService{db: db}
}

type PresetItemInput struct {
	Kind     models.RefKind
	RefID    uuid.UUID
	Servings float64
}

// Create inserts the preset and its items in one transaction. Item kinds are
// validated here, at the only place new kinds can enter the system.
func (s *PresetService) Create(ctx context.Context, userID uuid.UUID, name string, pinned bool, items []PresetItemInput) (*models.Preset, error) {
	preset := models.Preset{UserID: userID, Name: name, Pinned: pinned}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&preset).Error; err != nil {
			return err
		}
		for _, in := range items {
			if !in.Kind.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidPresetKind, in.Kind)
			}
			servings := in.Servings
			if servings <= 0 {
				servings = 1
			}
			row := models.PresetItem{
				PresetID: preset.ID,
				Kind:     in.Kind,
				RefID:    in.RefID,
				Servings: servings,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &preset, nil
}

func (s *PresetService) List(ctx context.Context, userID uuid.UUID) ([]models.Preset, error) {
	var presets []models.Preset
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("pinned DESC, name").Find(&presets).Error; err != nil {
		return nil, err
	}
	return presets, nil
}

// Apply logs every item of the preset at one shared timestamp and returns
// how many entries were written.
func (s *PresetService) Apply(ctx context.Context, userID, presetID uuid.UUID) (int, error) {
	var items []models.PresetItem
	if err := s.db.WithContext(ctx).Where("preset_id = ?", presetID).Find(&items).Error; err != nil {
		return 0, err
	}
	occurredAt := time.Now().UTC()
	logged := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, it := range items {
			entry := models.LogEntry{
				UserID:     userID,
				OccurredAt: occurredAt,
				Kind:       it.Kind,
				RefID:      it.RefID,
				Servings:   it.Servings,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			logged++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return logged, nil
}
