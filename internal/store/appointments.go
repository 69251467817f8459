package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
)

// PageSize is the fixed number of appointments returned per listing page.
const PageSize = 20

type AppointmentRepository interface {
	// Create persists a new appointment. A concurrent booking of the same
	// provider hour surfaces as ErrConflict via the partial unique index on
	// (provider_id, date) for active rows.
	Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)

	// FindActiveByProviderAndDate returns the active appointment occupying
	// the given provider hour, or nil when the slot is free.
	FindActiveByProviderAndDate(ctx context.Context, providerID uuid.UUID, date time.Time) (*domain.Appointment, error)

	// FindByID loads an appointment with its user and provider (including
	// the provider's avatar). Returns ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error)

	// ListActiveByUser returns a user's non-canceled appointments ordered
	// by date ascending, with provider and avatar loaded.
	ListActiveByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Appointment, error)

	Save(ctx context.Context, appt *domain.Appointment) error
}
