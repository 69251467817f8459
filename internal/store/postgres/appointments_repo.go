package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/store"
)

type AppointmentRepo struct {
	db *bun.DB
}

func NewAppointmentRepo(db *bun.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

func (r *AppointmentRepo) Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := domain.Appointment{
		ID:         appt.ID,
		UserID:     appt.UserID,
		ProviderID: appt.ProviderID,
		Date:       appt.Date,
		CanceledAt: appt.CanceledAt,
	}

	_, err := r.db.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// the partial unique index on (provider_id, date) where
			// canceled_at is null caught a concurrent booking
			return domain.Appointment{}, store.ErrConflict
		}
		return domain.Appointment{}, err
	}

	appt.ID = m.ID
	appt.CreatedAt = m.CreatedAt
	appt.UpdatedAt = m.UpdatedAt
	return appt, nil
}

func (r *AppointmentRepo) FindActiveByProviderAndDate(ctx context.Context, providerID uuid.UUID, date time.Time) (*domain.Appointment, error) {
	var row domain.Appointment
	err := r.db.NewSelect().
		Model(&row).
		Where("provider_id = ?", providerID).
		Where("canceled_at IS NULL").
		Where("date = ?", date).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *AppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	var row domain.Appointment
	err := r.db.NewSelect().
		Model(&row).
		Relation("User").
		Relation("Provider").
		Relation("Provider.Avatar").
		Where("a.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Appointment{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Appointment{}, err
	}
	return row, nil
}

func (r *AppointmentRepo) ListActiveByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	err := r.db.NewSelect().
		Model(&rows).
		Relation("Provider").
		Relation("Provider.Avatar").
		Where("a.user_id = ?", userID).
		Where("a.canceled_at IS NULL").
		OrderExpr("a.date ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AppointmentRepo) Save(ctx context.Context, appt *domain.Appointment) error {
	res, err := r.db.NewUpdate().
		Model(appt).
		Column("canceled_at", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
