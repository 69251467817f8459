package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/store"
)

type UserRepo struct {
	db *bun.DB
}

func NewUserRepo(db *bun.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	var row domain.User
	err := r.db.NewSelect().
		Model(&row).
		Relation("Avatar").
		Where("u.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, store.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return row, nil
}

func (r *UserRepo) ListProviders(ctx context.Context) ([]domain.User, error) {
	var rows []domain.User
	err := r.db.NewSelect().
		Model(&rows).
		Relation("Avatar").
		Where("u.provider").
		OrderExpr("u.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type NotificationRepo struct {
	db *bun.DB
}

func NewNotificationRepo(db *bun.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	_, err := r.db.NewInsert().Model(&n).Exec(ctx)
	if err != nil {
		return domain.Notification{}, err
	}
	return n, nil
}
