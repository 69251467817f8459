package queue

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CancellationMailKey identifies the job consumed by the mail worker when
// an appointment is canceled.
const CancellationMailKey = "CancellationMail"

type Enqueuer interface {
	// Enqueue submits a job payload under the given key. The call returns
	// once the broker has accepted the job; processing happens out of band.
	Enqueue(ctx context.Context, key string, payload any) error
}

// Contact carries the minimum a mail template needs about a person.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// CancellationMailJob is the payload of a CancellationMail job, keyed by
// the canceled appointment's id so a reconciliation pass can dedupe.
type CancellationMailJob struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	Date          time.Time `json:"date"`
	Provider      Contact   `json:"provider"`
	User          Contact   `json:"user"`
}
