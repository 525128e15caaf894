package main

import (
	"errors"
	"net/http"
	"slices"

	"CourtsideApi/internal/data"
	"CourtsideApi/internal/engine"
	"CourtsideApi/internal/hub"
	"CourtsideApi/internal/pins"
	"CourtsideApi/internal/validator"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// recordSaver binds a hub's fire-and-forget persistence to the owning user.
type recordSaver struct {
	history data.HistoryModel
	userID  int64
}

func (s recordSaver) Insert(record *engine.Record) error {
	return s.history.Insert(s.userID, record)
}

func (app *application) StartLiveGame(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string               `json:"name"`
		TeamSize int                  `json:"team_size"`
		RosterID string               `json:"roster_id"`
		Players  []engine.RosterEntry `json:"players"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := app.contextGetUser(r)

	v := validator.New()
	v.Check(validator.PermittedValue(input.TeamSize, 4, 5), "team_size", "must be 4 or 5")
	v.Check(input.RosterID == "" || len(input.Players) == 0, "players",
		"must not be given together with roster_id")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	roster := input.Players
	if input.RosterID != "" {
		template, err := app.models.Rosters.Get(user.ID, input.RosterID)
		if err != nil {
			switch {
			case errors.Is(err, data.ErrRecordNotFound):
				v.AddError("roster_id", "no saved roster with this id")
				app.failedValidationResponse(w, r, v.Errors)
			default:
				app.serverErrorResponse(w, r, err)
			}
			return
		}
		roster = template.Players
	}

	game, err := engine.New(input.TeamSize, roster)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	pin := pins.GeneratePin(pins.GamePinLength)
	for app.liveGames.contains(pin) {
		pin = pins.GeneratePin(pins.GamePinLength)
	}

	saver := recordSaver{history: app.models.History, userID: user.ID}
	h := hub.New(pin, game, []int64{user.ID}, saver, app.logger)
	go h.Run()
	app.liveGames.put(pin, h)

	app.logger.PrintInfo("live game started", map[string]string{
		"game_pin": pin,
		"name":     input.Name,
	})

	err = app.writeJSON(w, http.StatusCreated, envelope{
		"pin":      pin,
		"summary":  h.Snapshot(),
		"keeper":   "/v1/live/" + pin + "/keeper",
		"watchers": "/v1/live/" + pin + "/watch",
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) SnapshotLiveGame(w http.ResponseWriter, r *http.Request) {
	h, ok := app.liveGames.get(chi.URLParam(r, "pin"))
	if !ok {
		app.notFoundResponse(w, r)
		return
	}

	s := h.Snapshot()
	if s == nil {
		app.notFoundResponse(w, r)
		return
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"summary": s}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) KeepLiveGame(w http.ResponseWriter, r *http.Request) {
	h, ok := app.liveGames.get(chi.URLParam(r, "pin"))
	if !ok {
		app.notFoundResponse(w, r)
		return
	}

	user := app.contextGetUser(r)
	if !slices.Contains(h.AllowedKeepers, user.ID) {
		app.notPermittedResponse(w, r)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.logError(r, err)
		return
	}

	err = h.JoinKeeper(user.ID, conn)
	if err != nil {
		_ = conn.Close()
	}
}

func (app *application) WatchLiveGame(w http.ResponseWriter, r *http.Request) {
	h, ok := app.liveGames.get(chi.URLParam(r, "pin"))
	if !ok {
		app.notFoundResponse(w, r)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.logError(r, err)
		return
	}

	watcher := hub.NewWatcher(h, conn)
	h.JoinWatcher <- watcher
	go watcher.WriteUpdates()
	go watcher.ReadLoop()
}

func (app *application) EndLiveGame(w http.ResponseWriter, r *http.Request) {
	pin := chi.URLParam(r, "pin")
	h, ok := app.liveGames.get(pin)
	if !ok {
		app.notFoundResponse(w, r)
		return
	}

	user := app.contextGetUser(r)
	if !slices.Contains(h.AllowedKeepers, user.ID) {
		app.notPermittedResponse(w, r)
		return
	}

	// deregister first so no new client can reach a hub that is going away
	app.liveGames.remove(pin)
	h.Shutdown()

	err := app.writeJSON(w, http.StatusOK, envelope{"message": "live game closed"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
