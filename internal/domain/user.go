package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is either a client booking appointments or a service provider
// offering bookable hours, distinguished by the Provider flag.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Name      string     `bun:"name,notnull" json:"name"`
	Email     string     `bun:"email,notnull,unique" json:"email"`
	Provider  bool       `bun:"provider,notnull,default:false" json:"provider"`
	AvatarID  *uuid.UUID `bun:"avatar_id,type:uuid" json:"-"`
	CreatedAt time.Time  `bun:"created_at,notnull" json:"-"`
	UpdatedAt time.Time  `bun:"updated_at,notnull" json:"-"`

	Avatar *File `bun:"rel:belongs-to,join:avatar_id=id" json:"avatar,omitempty"`
}

func (u *User) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if u.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			u.ID = id
		}
		if u.CreatedAt.IsZero() {
			u.CreatedAt = now
		}
		if u.UpdatedAt.IsZero() {
			u.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		u.UpdatedAt = now
	}
	return nil
}

// File is an uploaded image referenced by a user's avatar.
type File struct {
	bun.BaseModel `bun:"table:files,alias:f"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Path      string    `bun:"path,notnull,unique" json:"path"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"-"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"-"`
}

// URL renders the public address of the stored file under the given base.
func (f *File) URL(base string) string {
	return strings.TrimRight(base, "/") + "/files/" + f.Path
}

func (f *File) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if f.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			f.ID = id
		}
		if f.CreatedAt.IsZero() {
			f.CreatedAt = now
		}
		if f.UpdatedAt.IsZero() {
			f.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		f.UpdatedAt = now
	}
	return nil
}
