package models

import (
	"time"

	"github.com/google/uuid"
)

// DailyActivity is keyed by (user, date) rather than a surrogate ID: a day
// has exactly one activity row, and re-recording a day overwrites it. Date is
// stored as its YYYY-MM-DD string form.
type DailyActivity struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Date          string    `gorm:"size:10;primaryKey" json:"date"`
	Steps         int       `gorm:"not null;default:0" json:"steps"`
	ActiveKcalEst float64   `gorm:"column:active_calories_kcal_est;type:float;not null;default:0" json:"active_calories_kcal_est"`
	Source        string    `gorm:"size:50;not null;default:'manual'" json:"source"`
	CreatedAt     time.Time `json:"created_at"`
}

const DateLayout = "2006-01-02"

// ParseDate validates a daily-activity date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
