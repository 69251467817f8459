package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/service/appointments"
	"slotbook/backend/internal/store"
)

type AppointmentsHandler struct {
	svc appointmentsService
	log *slog.Logger
}

type appointmentsService interface {
	Create(ctx context.Context, in appointments.CreateInput) (domain.Appointment, error)
	Cancel(ctx context.Context, userID, appointmentID uuid.UUID) (domain.Appointment, error)
	List(ctx context.Context, userID uuid.UUID, page int) ([]appointments.AppointmentView, error)
	ListProviders(ctx context.Context) ([]appointments.ProviderView, error)
}

func NewAppointmentsHandler(svc appointmentsService, log *slog.Logger) *AppointmentsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AppointmentsHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.appointments")),
	}
}

type createRequest struct {
	ProviderID string `json:"provider_id"`
	Date       string `json:"date"`
}

func (h *AppointmentsHandler) Create(c *gin.Context) {
	log := h.log.With(slog.String("handler", "Create"))
	uid := userID(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_json"), slog.String("user_id", uid.String()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	appt, err := h.svc.Create(c.Request.Context(), appointments.CreateInput{
		UserID:     uid,
		ProviderID: req.ProviderID,
		Date:       req.Date,
	})
	if err != nil {
		var vErr *appointments.ValidationError
		switch {
		case errors.As(err, &vErr):
			log.Warn("invalid request", slog.Any("err", err), slog.String("user_id", uid.String()))
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		case errors.Is(err, appointments.ErrNotAProvider):
			log.Warn("booking rejected", slog.Any("err", err), slog.String("user_id", uid.String()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, appointments.ErrPastDate):
			log.Warn("booking rejected", slog.Any("err", err), slog.String("user_id", uid.String()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, appointments.ErrSlotUnavailable):
			log.Info("slot unavailable", slog.String("user_id", uid.String()), slog.String("provider_id", req.ProviderID), slog.String("date", req.Date))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			log.Error("appointment create failed", slog.Any("err", err), slog.String("user_id", uid.String()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	log.Info(
		"appointment created",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("user_id", appt.UserID.String()),
		slog.String("provider_id", appt.ProviderID.String()),
		slog.Time("date", appt.Date),
	)
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentsHandler) List(c *gin.Context) {
	log := h.log.With(slog.String("handler", "List"))
	uid := userID(c)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_page"), slog.String("user_id", uid.String()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
		return
	}

	views, err := h.svc.List(c.Request.Context(), uid, page)
	if err != nil {
		var vErr *appointments.ValidationError
		if errors.As(err, &vErr) {
			log.Warn("invalid request", slog.Any("err", err), slog.String("user_id", uid.String()))
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		log.Error("appointments list failed", slog.Any("err", err), slog.String("user_id", uid.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	log.Debug("appointments listed", slog.String("user_id", uid.String()), slog.Int("count", len(views)), slog.Int("page", page))
	c.JSON(http.StatusOK, views)
}

func (h *AppointmentsHandler) Cancel(c *gin.Context) {
	log := h.log.With(slog.String("handler", "Cancel"))
	uid := userID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "invalid_uuid"), slog.String("user_id", uid.String()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "appointment id must be a UUID"})
		return
	}

	appt, err := h.svc.Cancel(c.Request.Context(), uid, id)
	if err != nil && !errors.Is(err, appointments.ErrQueueDispatch) {
		var vErr *appointments.ValidationError
		switch {
		case errors.As(err, &vErr):
			log.Warn("invalid request", slog.Any("err", err), slog.String("user_id", uid.String()))
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		case errors.Is(err, store.ErrNotFound):
			log.Info("appointment not found", slog.String("appointment_id", id.String()), slog.String("user_id", uid.String()))
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		case errors.Is(err, appointments.ErrForbidden):
			log.Warn("cancel forbidden", slog.String("appointment_id", id.String()), slog.String("user_id", uid.String()))
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, appointments.ErrAlreadyCanceled):
			log.Info("appointment already canceled", slog.String("appointment_id", id.String()), slog.String("user_id", uid.String()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, appointments.ErrTooLate):
			log.Info("cancel past lead window", slog.String("appointment_id", id.String()), slog.String("user_id", uid.String()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Error("appointment cancel failed", slog.Any("err", err), slog.String("appointment_id", id.String()), slog.String("user_id", uid.String()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	if errors.Is(err, appointments.ErrQueueDispatch) {
		// the cancellation is persisted; only the mail job was lost, so the
		// client still gets the canceled appointment back
		log.Error("cancellation mail enqueue failed", slog.Any("err", err), slog.String("appointment_id", id.String()))
	}

	log.Info("appointment canceled", slog.String("appointment_id", id.String()), slog.String("user_id", uid.String()))
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentsHandler) ListProviders(c *gin.Context) {
	log := h.log.With(slog.String("handler", "ListProviders"))

	views, err := h.svc.ListProviders(c.Request.Context())
	if err != nil {
		log.Error("providers list failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	log.Debug("providers listed", slog.Int("count", len(views)))
	c.JSON(http.StatusOK, views)
}
