package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Notification is an append-only inbox entry shown to a provider when a
// client books one of their hours. It is never mutated by this service.
type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:n"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Content   string    `bun:"content,notnull" json:"content"`
	UserID    uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id"`
	Read      bool      `bun:"read,notnull,default:false" json:"read"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"-"`
}

func (n *Notification) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); !ok {
		return nil
	}
	if n.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		n.ID = id
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	return nil
}
