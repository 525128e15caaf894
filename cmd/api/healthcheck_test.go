package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"CourtsideApi/internal/assert"
	"CourtsideApi/internal/hub"
	"CourtsideApi/internal/jsonlog"
)

func TestHealthCheck(t *testing.T) {
	app := &application{
		config:    config{version: "1.0.0", env: "testing"},
		logger:    jsonlog.New(io.Discard, jsonlog.LevelOff),
		liveGames: &liveGames{games: map[string]*hub.Hub{}},
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/healthcheck", nil)
	app.HealthCheck(w, r)

	rs := w.Result()
	defer rs.Body.Close()
	assert.Equal(t, rs.StatusCode, http.StatusOK)

	body, err := io.ReadAll(rs.Body)
	assert.NilError(t, err)
	assert.StringContains(t, string(body), `"status": "available"`)
	assert.StringContains(t, string(body), `"games_in_progress": 0`)
	assert.StringContains(t, string(body), `"version": "1.0.0"`)
}
