package firestoreimplement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTicketID(t *testing.T) {
	december := time.Date(2026, 12, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "TKT261201", formatTicketID(december, 1))
	assert.Equal(t, "TKT261242", formatTicketID(december, 42))

	// sequences wider than two digits keep their full width
	assert.Equal(t, "TKT2612123", formatTicketID(december, 123))

	march := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "TKT270307", formatTicketID(march, 7))
}

func TestTicketCounterIDRollsOverMonthly(t *testing.T) {
	december := time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC)
	january := time.Date(2027, 1, 1, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, "ticketId:26-12", ticketCounterID(december))
	assert.Equal(t, "ticketId:27-01", ticketCounterID(january))

	// a new counter document per month restarts the sequence at 1
	assert.NotEqual(t, ticketCounterID(december), ticketCounterID(january))
}
