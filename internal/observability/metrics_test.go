package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCountsRequestsPerRouteAndStatus(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/list_tickets", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/list_tickets", "GET", 200, 30*time.Millisecond)
	m.RecordRequest("/list_tickets", "GET", 401, 1*time.Millisecond)
	m.RecordRequest("/open_ticket", "POST", 201, 5*time.Millisecond)

	assert.Equal(t, int64(2), m.RequestCount("/list_tickets", "GET", 200))
	assert.Equal(t, int64(1), m.RequestCount("/list_tickets", "GET", 401))
	assert.Equal(t, int64(1), m.RequestCount("/open_ticket", "POST", 201))
	assert.Equal(t, int64(0), m.RequestCount("/open_ticket", "POST", 500))
	assert.Equal(t, 40*time.Millisecond, m.TotalLatency("/list_tickets", "GET", 200))
}

func TestMetricsCountsErrorsByCode(t *testing.T) {
	m := NewMetrics()

	m.RecordError("/approve_ticket/:ticket_number", "POST", "NOT_CURRENT_HANDLER")
	m.RecordError("/approve_ticket/:ticket_number", "POST", "NOT_CURRENT_HANDLER")
	m.RecordError("/approve_ticket/:ticket_number", "POST", "ALREADY_TERMINAL")

	assert.Equal(t, int64(2), m.ErrorCount("/approve_ticket/:ticket_number", "POST", "NOT_CURRENT_HANDLER"))
	assert.Equal(t, int64(1), m.ErrorCount("/approve_ticket/:ticket_number", "POST", "ALREADY_TERMINAL"))
	assert.Equal(t, int64(0), m.ErrorCount("/approve_ticket/:ticket_number", "POST", "NOT_IN_SEQUENCE"))
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/login", "POST", 200, time.Millisecond)
	m.RecordError("/login", "POST", "UNAUTHORIZED")
	assert.Equal(t, int64(0), m.RequestCount("/login", "POST", 200))
	assert.Equal(t, int64(0), m.ErrorCount("/login", "POST", "UNAUTHORIZED"))
}
