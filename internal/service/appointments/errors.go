package appointments

import "errors"

// ValidationError marks structurally invalid input, rejected before any
// store access.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

var (
	ErrNotAProvider    = errors.New("appointments can only be created with providers")
	ErrPastDate        = errors.New("past dates are not permitted")
	ErrSlotUnavailable = errors.New("appointment date is not available")
	ErrForbidden       = errors.New("no permission to cancel this appointment")
	ErrTooLate         = errors.New("appointments can only be canceled 2 hours in advance")
	ErrAlreadyCanceled = errors.New("appointment is already canceled")

	// ErrQueueDispatch wraps a failed cancellation-mail enqueue. The
	// appointment stays canceled; only the mail job was lost.
	ErrQueueDispatch = errors.New("cancellation mail dispatch failed")
)
