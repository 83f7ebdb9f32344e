package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	TenantID uuid.UUID `gorm:"type:uuid;index;not null" json:"tenant_id"`

	ProfessionalID uuid.UUID    `gorm:"type:uuid;index;not null" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ClientID uuid.UUID `gorm:"type:uuid;not null" json:"client_id"`

	ServiceID uuid.UUID `gorm:"type:uuid;not null" json:"service_id"`
	Service   Service   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// UTC-equivalent instants. EndTime is start + service duration, computed
	// once at create/update, never re-derived per read.
	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	// Advisory outcome of the last external sync; never a precondition for
	// future bookings.
	SyncStatus        string  `gorm:"size:20;default:'pending'" json:"sync_status"`
	CalendarEventID   *string `gorm:"size:255" json:"calendar_event_id"`
	PlatformBookingID *string `gorm:"size:255" json:"platform_booking_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
