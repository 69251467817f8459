package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/queue"
	"slotbook/backend/internal/store"
)

type Service struct {
	appointments  store.AppointmentRepository
	users         store.UserRepository
	notifications store.NotificationRepository
	queue         queue.Enqueuer

	now         func() time.Time
	fileBaseURL string
}

type Config struct {
	// Now supplies the current instant; defaults to time.Now. Injected so
	// the time-window checks are deterministic under test.
	Now func() time.Time

	// FileBaseURL is the public base under which avatar files are served.
	FileBaseURL string
}

func NewService(
	appointments store.AppointmentRepository,
	users store.UserRepository,
	notifications store.NotificationRepository,
	q queue.Enqueuer,
	cfg Config,
) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		appointments:  appointments,
		users:         users,
		notifications: notifications,
		queue:         q,
		now:           now,
		fileBaseURL:   cfg.FileBaseURL,
	}
}

type CreateInput struct {
	UserID     uuid.UUID
	ProviderID string
	Date       string
}

// Create books an hour with a provider. Validations run cheapest first:
// structural, then provider role, then past-date, then availability. On
// success the provider gets an inbox notification about the new booking.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Appointment, error) {
	if in.UserID == uuid.Nil {
		return domain.Appointment{}, validationError("user_id is required")
	}
	if strings.TrimSpace(in.ProviderID) == "" {
		return domain.Appointment{}, validationError("provider_id is required")
	}
	providerID, err := uuid.Parse(strings.TrimSpace(in.ProviderID))
	if err != nil {
		return domain.Appointment{}, validationError("provider_id must be a UUID")
	}
	if strings.TrimSpace(in.Date) == "" {
		return domain.Appointment{}, validationError("date is required")
	}
	date, err := time.Parse(time.RFC3339, strings.TrimSpace(in.Date))
	if err != nil {
		return domain.Appointment{}, validationError("date must be an RFC 3339 timestamp")
	}

	provider, err := s.users.FindByID(ctx, providerID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Appointment{}, ErrNotAProvider
	}
	if err != nil {
		return domain.Appointment{}, err
	}
	if !provider.Provider {
		return domain.Appointment{}, ErrNotAProvider
	}

	hourStart := domain.HourStart(date)
	if hourStart.Before(s.now()) {
		return domain.Appointment{}, ErrPastDate
	}

	taken, err := s.appointments.FindActiveByProviderAndDate(ctx, provider.ID, hourStart)
	if err != nil {
		return domain.Appointment{}, err
	}
	if taken != nil {
		return domain.Appointment{}, ErrSlotUnavailable
	}

	appt, err := s.appointments.Create(ctx, domain.Appointment{
		UserID:     in.UserID,
		ProviderID: provider.ID,
		Date:       hourStart,
	})
	if errors.Is(err, store.ErrConflict) {
		// a concurrent booking won the slot between the check and the insert
		return domain.Appointment{}, ErrSlotUnavailable
	}
	if err != nil {
		return domain.Appointment{}, err
	}

	requester, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return appt, fmt.Errorf("load requester for notification: %w", err)
	}
	_, err = s.notifications.Create(ctx, domain.Notification{
		UserID:  provider.ID,
		Content: fmt.Sprintf("Novo agendamento de %s para %s", requester.Name, domain.FormatDatePtBR(hourStart)),
	})
	if err != nil {
		// the booking itself is persisted; the caller must still see this
		return appt, fmt.Errorf("create provider notification: %w", err)
	}

	return appt, nil
}

// Cancel soft-cancels an appointment owned by userID and enqueues the
// cancellation mail for the provider. Cancellation is terminal.
func (s *Service) Cancel(ctx context.Context, userID, appointmentID uuid.UUID) (domain.Appointment, error) {
	if userID == uuid.Nil {
		return domain.Appointment{}, validationError("user_id is required")
	}
	if appointmentID == uuid.Nil {
		return domain.Appointment{}, validationError("appointment_id is required")
	}

	appt, err := s.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if appt.UserID != userID {
		return domain.Appointment{}, ErrForbidden
	}
	if appt.CanceledAt != nil {
		return domain.Appointment{}, ErrAlreadyCanceled
	}

	now := s.now()
	if appt.CancelDeadline().Before(now) {
		return domain.Appointment{}, ErrTooLate
	}

	canceledAt := now
	appt.CanceledAt = &canceledAt
	if err := s.appointments.Save(ctx, &appt); err != nil {
		return domain.Appointment{}, err
	}

	job := queue.CancellationMailJob{
		AppointmentID: appt.ID,
		Date:          appt.Date,
	}
	if appt.Provider != nil {
		job.Provider = queue.Contact{Name: appt.Provider.Name, Email: appt.Provider.Email}
	}
	if appt.User != nil {
		job.User = queue.Contact{Name: appt.User.Name}
	}
	if err := s.queue.Enqueue(ctx, queue.CancellationMailKey, job); err != nil {
		// canceled state is not rolled back; the lost mail job must be
		// visible to the caller
		return appt, fmt.Errorf("%w: %v", ErrQueueDispatch, err)
	}

	return appt, nil
}

type AvatarView struct {
	ID   uuid.UUID `json:"id"`
	Path string    `json:"path"`
	URL  string    `json:"url"`
}

type ProviderView struct {
	ID     uuid.UUID   `json:"id"`
	Name   string      `json:"name"`
	Avatar *AvatarView `json:"avatar"`
}

type AppointmentView struct {
	ID         uuid.UUID     `json:"id"`
	Date       time.Time     `json:"date"`
	Past       bool          `json:"past"`
	Cancelable bool          `json:"cancelable"`
	Provider   *ProviderView `json:"provider"`
}

// List returns one page of the user's active appointments, date ascending,
// PageSize per page. Past and Cancelable are computed against now.
func (s *Service) List(ctx context.Context, userID uuid.UUID, page int) ([]AppointmentView, error) {
	if userID == uuid.Nil {
		return nil, validationError("user_id is required")
	}
	if page < 1 {
		page = 1
	}

	rows, err := s.appointments.ListActiveByUser(ctx, userID, store.PageSize, (page-1)*store.PageSize)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]AppointmentView, 0, len(rows))
	for i := range rows {
		a := &rows[i]
		out = append(out, AppointmentView{
			ID:         a.ID,
			Date:       a.Date,
			Past:       a.Past(now),
			Cancelable: a.Cancelable(now),
			Provider:   s.providerView(a.Provider),
		})
	}
	return out, nil
}

// ListProviders returns every provider, for the booking screen.
func (s *Service) ListProviders(ctx context.Context) ([]ProviderView, error) {
	rows, err := s.users.ListProviders(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ProviderView, 0, len(rows))
	for i := range rows {
		if v := s.providerView(&rows[i]); v != nil {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (s *Service) providerView(u *domain.User) *ProviderView {
	if u == nil {
		return nil
	}
	v := &ProviderView{ID: u.ID, Name: u.Name}
	if u.Avatar != nil {
		v.Avatar = &AvatarView{
			ID:   u.Avatar.ID,
			Path: u.Avatar.Path,
			URL:  u.Avatar.URL(s.fileBaseURL),
		}
	}
	return v
}
