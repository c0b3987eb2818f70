package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corporatewarfare/cwbot/internal/application/ticket/dto"
	"github.com/corporatewarfare/cwbot/internal/interfaces/http/handlers"
	tickethandlers "github.com/corporatewarfare/cwbot/internal/interfaces/http/handlers/ticket"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

type stubStats struct {
	err error
}

func (s stubStats) Execute(_ context.Context, guildID string) (*dto.TicketStatsDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.TicketStatsDTO{GuildID: guildID, Total: 3, Open: 1, Claimed: 1, Closed: 1}, nil
}

func newTestRouter(dbErr, statsErr error) *Router {
	log := logger.NewNopLogger()
	health := handlers.NewHealthHandler(map[string]handlers.HealthCheck{
		"database": func(context.Context) error { return dbErr },
	}, func() time.Duration { return 40 * time.Millisecond }, log)
	return NewRouter(health, tickethandlers.NewTicketHandler(stubStats{err: statsErr}, log), log, false)
}

func serve(r *Router, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthz(t *testing.T) {
	w := serve(newTestRouter(nil, nil), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(40), body["gateway_latency_ms"])

	w = serve(newTestRouter(errors.New("database is closed"), nil), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
}

func TestTicketStats(t *testing.T) {
	w := serve(newTestRouter(nil, nil), "/api/guilds/123456789012345678/tickets/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool               `json:"success"`
		Data    dto.TicketStatsDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "123456789012345678", body.Data.GuildID)
	assert.Equal(t, int64(3), body.Data.Total)
}

func TestTicketStats_Errors(t *testing.T) {
	w := serve(newTestRouter(nil, nil), "/api/guilds/not-a-guild/tickets/stats")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(newTestRouter(nil, errors.New("no such table")), "/api/guilds/123456789012345678/tickets/stats")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "no such table")
}
