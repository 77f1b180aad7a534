package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/intakelog/backend/internal/models"
)

// TrackingService records body weight measurements and daily activity.
type TrackingService struct {
	db *gorm.DB
}

func NewTrackingService(db *gorm.DB) *TrackingService {
	return &TrackingService{db: db}
}

type BodyWeightInput struct {
	UserID     uuid.UUID
	MeasuredAt time.Time
	WeightKg   float64
	Note       string
}

func (s *TrackingService) RecordWeight(ctx context.Context, in BodyWeightInput) (*models.BodyWeight, error) {
	if in.MeasuredAt.IsZero() {
		in.MeasuredAt = time.Now()
	}
	row := models.BodyWeight{
		UserID:     in.UserID,
		MeasuredAt: in.MeasuredAt,
		WeightKg:   in.WeightKg,
		Source:     "manual",
		Note:       in.Note,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

type DailyActivityInput struct {
	UserID        uuid.UUID
	Date          string
	Steps         int
	ActiveKcalEst float64
}

// RecordActivity upserts the day's activity row; a day has exactly one and
// re-recording overwrites it.
func (s *TrackingService) RecordActivity(ctx context.Context, in DailyActivityInput) error {
	if _, err := models.ParseDate(in.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, in.Date)
	}
	row := models.DailyActivity{
		UserID:        in.UserID,
		Date:          in.Date,
		Steps:         in.Steps,
		ActiveKcalEst: in.ActiveKcalEst,
		Source:        "manual",
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"steps", "active_calories_kcal_est"}),
	}).Create(&row).Error
}

// Activity returns the day's activity row, or zeros if none was recorded.
func (s *TrackingService) Activity(ctx context.Context, userID uuid.UUID, date string) (*models.DailyActivity, error) {
	var row models.DailyActivity
	err := s.db.WithContext(ctx).
		First(&row, "user_id = ? AND date = ?", userID, date).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &models.DailyActivity{UserID: userID, Date: date}, nil
		}
		return nil, err
	}
	return &row, nil
}

// WeightsInRange returns body weight rows with measured_at in [from, to).
func (s *TrackingService) WeightsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.BodyWeight, error) {
	var rows []models.BodyWeight
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND measured_at >= ? AND measured_at < ?", userID, from, to).
		Order("measured_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ActivityInRange returns daily activity rows with date in [from, to], inclusive.
func (s *TrackingService) ActivityInRange(ctx context.Context, userID uuid.UUID, from, to string) ([]models.DailyActivity, error) {
	var rows []models.DailyActivity
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
