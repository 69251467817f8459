package mail

import (
	"fmt"

	"slotbook/backend/internal/domain"
	"slotbook/backend/internal/queue"
)

const CancellationSubject = "Agendamento cancelado"

// CancellationBody renders the message sent to a provider when a client
// cancels a booked hour.
func CancellationBody(job queue.CancellationMailJob) string {
	return fmt.Sprintf(
		"Olá, %s!\n\nHouve um cancelamento de horário.\n\nCliente: %s\nData/hora: %s\n",
		job.Provider.Name,
		job.User.Name,
		domain.FormatDatePtBR(job.Date),
	)
}
