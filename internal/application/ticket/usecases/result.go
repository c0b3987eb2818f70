package usecases

import "github.com/corporatewarfare/cwbot/internal/application/ticket/dto"

// FailureReason names an expected, non-exceptional failure.
type FailureReason string

const (
	ReasonNotFound       FailureReason = "not_found"
	ReasonAlreadyClaimed FailureReason = "already_claimed"
	ReasonAlreadyClosed  FailureReason = "already_closed"
)

// Message is the user-facing text for the reason.
func (r FailureReason) Message() string {
	switch r {
	case ReasonNotFound:
		return "This channel is not a ticket."
	case ReasonAlreadyClaimed:
		return "This ticket has already been claimed."
	case ReasonAlreadyClosed:
		return "This ticket is already closed."
	}
	return ""
}

// Outcome is embedded in every ticket result. Callers branch on Success.
type Outcome struct {
	Success bool
	Reason  FailureReason
}

func succeeded() Outcome {
	return Outcome{Success: true}
}

func failed(reason FailureReason) Outcome {
	return Outcome{Reason: reason}
}

type TicketResult struct {
	Outcome
	Ticket *dto.TicketDTO
}
