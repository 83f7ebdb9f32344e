package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilityRule is one "HH:mm" window of a professional's week. Multiple
// rows per weekday are allowed; is_break rows carve out non-bookable time and
// are stored as separate rows, never subtracted from work rows in the table.
type AvailabilityRule struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ProfessionalID uuid.UUID `gorm:"type:uuid;index:idx_rules_prof_weekday;not null" json:"professional_id"`

	Weekday   int    `gorm:"index:idx_rules_prof_weekday" json:"weekday"` // 0 = Sunday .. 6 = Saturday
	StartTime string `gorm:"size:5;not null" json:"start_time"`           // "HH:mm"
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	IsBreak   bool   `gorm:"default:false" json:"is_break"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *AvailabilityRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
