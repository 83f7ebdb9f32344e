package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	TenantID uuid.UUID `gorm:"type:uuid;index;not null" json:"tenant_id"`

	Name            string `gorm:"size:100;not null" json:"name"`
	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
	IsActive        bool   `gorm:"default:true" json:"is_active"`

	Professionals []Professional `gorm:"many2many:professional_services;" json:"professionals,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
