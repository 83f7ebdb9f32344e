package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WeekdayHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeeklyHours is the tenant-level fallback schedule (weekday 0..6 -> hours),
// stored as jsonb. Only consulted for single-operator accounts with no
// explicit availability rules.
type WeeklyHours map[int]WeekdayHours

func (w WeeklyHours) Value() (driver.Value, error) {
	return json.Marshal(w)
}

func (w *WeeklyHours) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, w)
}

type Tenant struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`

	// Owning user; matched against Professional.UserID by the
	// single-operator availability fallback.
	OwnerUserID    uuid.UUID `gorm:"type:uuid" json:"owner_user_id"`
	SingleOperator bool      `gorm:"default:false" json:"single_operator"`

	WeeklyHours WeeklyHours `gorm:"type:jsonb;default:'{}'" json:"weekly_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
