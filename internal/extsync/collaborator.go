package extsync

import (
	"context"

	"github.com/google/uuid"
)

// RefKind tells which external-reference column a collaborator's id belongs to.
type RefKind string

const (
	RefCalendar RefKind = "calendar"
	RefPlatform RefKind = "platform"
)

// Collaborator is an external calendar or booking-platform integration. All
// three operations are idempotent on the collaborator side; a nil id/flag
// means "integration not configured for this tenant" and is not an error.
type Collaborator interface {
	Name() string
	Kind() RefKind

	CreateExternalEvent(ctx context.Context, appointmentID uuid.UUID) (*string, error)
	UpdateExternalEvent(ctx context.Context, appointmentID uuid.UUID) (*string, error)
	DeleteExternalEvent(ctx context.Context, appointmentID uuid.UUID) (*bool, error)
}
