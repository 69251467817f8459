package store

import (
	"context"

	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
)

type UserRepository interface {
	// FindByID loads a user with their avatar. Returns ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// ListProviders returns every user with the provider flag set,
	// ordered by name.
	ListProviders(ctx context.Context) ([]domain.User, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n domain.Notification) (domain.Notification, error)
}
