package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/corporatewarfare/cwbot/internal/domain/ticket"
	vo "github.com/corporatewarfare/cwbot/internal/domain/ticket/valueobjects"
)

func storedTicket(t *testing.T, number int, channelID string, status vo.TicketStatus, claimedBy *string) *ticket.Ticket {
	t.Helper()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var closedAt *time.Time
	if status == vo.StatusClosed {
		c := created.Add(time.Hour)
		closedAt = &c
	}
	tk, err := ticket.ReconstructTicket(uint(number), number, "g1", channelID, "userA", "bug",
		"Login fails", "cannot log in", claimedBy, status, created, created, closedAt)
	require.NoError(t, err)
	return tk
}

func strPtr(s string) *string {
	return &s
}
