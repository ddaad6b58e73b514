package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAwaitingApprovalStatus(t *testing.T) {
	assert.Equal(t, TicketStatus("Awaiting Approval - MANAGER"), AwaitingApprovalStatus("MANAGER"))
	assert.False(t, AwaitingApprovalStatus("MANAGER").IsTerminal())
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, TicketStatusConcluded.IsTerminal())
	assert.True(t, TicketStatusRejected.IsTerminal())
	assert.True(t, TicketStatusCanceled.IsTerminal())
	assert.False(t, TicketStatusOpen.IsTerminal())
}

func TestAppendObservationIsAppendOnly(t *testing.T) {
	ticket := &Ticket{}
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	ticket.AppendObservation(at, 300, "Carla Dias", RoleAnalyst, "first entry")
	assert.Equal(t, "[2025-03-14 09:30] handler 300 Carla Dias (ANALYST): first entry", ticket.Observations)

	ticket.AppendObservation(at.Add(time.Hour), 400, "Tech", RoleFieldService, "second entry")
	lines := strings.Split(ticket.Observations, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "first entry")
	assert.Contains(t, lines[1], "second entry")
	assert.Contains(t, lines[1], "[2025-03-14 10:30]")
}
