package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CancellationLead is the minimum notice required before a booked hour
// for the client to be allowed to cancel it.
const CancellationLead = 2 * time.Hour

type Appointment struct {
	bun.BaseModel `bun:"table:appointments,alias:a"`

	ID         uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	UserID     uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id"`
	ProviderID uuid.UUID  `bun:"provider_id,notnull,type:uuid" json:"provider_id"`
	Date       time.Time  `bun:"date,notnull" json:"date"`
	CanceledAt *time.Time `bun:"canceled_at" json:"canceled_at"`
	CreatedAt  time.Time  `bun:"created_at,notnull" json:"-"`
	UpdatedAt  time.Time  `bun:"updated_at,notnull" json:"-"`

	User     *User `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Provider *User `bun:"rel:belongs-to,join:provider_id=id" json:"provider,omitempty"`
}

// Past reports whether the booked hour is already behind now.
func (a *Appointment) Past(now time.Time) bool {
	return a.Date.Before(now)
}

// CancelDeadline is the last instant at which cancellation is still allowed.
func (a *Appointment) CancelDeadline() time.Time {
	return a.Date.Add(-CancellationLead)
}

// Cancelable reports whether now is still inside the cancellation window.
func (a *Appointment) Cancelable(now time.Time) bool {
	return now.Before(a.CancelDeadline())
}

func (a *Appointment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			a.ID = id
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}
