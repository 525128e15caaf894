package hub

import (
	json2 "encoding/json"
	"errors"
	"slices"
	"time"

	"CourtsideApi/internal/engine"
	"CourtsideApi/internal/jsonlog"
	"CourtsideApi/internal/ticker"

	"github.com/gorilla/websocket"
)

var ErrKeeperNotAuthorized = errors.New("keeper not authorized")
var ErrGameClosed = errors.New("game closed")

type envelope map[string]any

// HistoryStore persists finished-game records. Persistence is fire and
// forget: a failure is logged and never rolls back engine state.
type HistoryStore interface {
	Insert(record *engine.Record) error
}

// Hub owns one live game. Every mutation, keeper commands and clock ticks
// alike, arrives on Commands and is applied by the single Run goroutine, so
// the engine never sees interleaved writes.
type Hub struct {
	Pin            string
	Game           *engine.Game
	AllowedKeepers []int64
	Commands       chan Command
	Errors         chan error
	JoinWatcher    chan *Watcher
	LeaveWatcher   chan *Watcher
	joinKeeper     chan *Keeper
	LeaveKeeper    chan *Keeper
	keepers        map[*Keeper]bool
	watchers       map[*Watcher]bool
	clock          *ticker.Ticker
	history        HistoryStore
	logger         *jsonlog.Logger
	done           chan struct{}
}

func New(pin string, game *engine.Game, allowedKeepers []int64, history HistoryStore,
	logger *jsonlog.Logger) *Hub {
	h := &Hub{
		Pin:            pin,
		Game:           game,
		AllowedKeepers: allowedKeepers,
		Commands:       make(chan Command),
		Errors:         make(chan error),
		JoinWatcher:    make(chan *Watcher),
		LeaveWatcher:   make(chan *Watcher),
		joinKeeper:     make(chan *Keeper),
		LeaveKeeper:    make(chan *Keeper),
		keepers:        make(map[*Keeper]bool),
		watchers:       make(map[*Watcher]bool),
		history:        history,
		logger:         logger,
		done:           make(chan struct{}),
	}
	h.clock = ticker.New(time.Second, func() {
		select {
		case h.Commands <- tickCommand{}:
		case <-h.done:
		}
	})

	return h
}

func (h *Hub) JoinKeeper(userID int64, conn *websocket.Conn) error {
	keeper := newKeeper(userID, h, conn)
	if !slices.Contains(h.AllowedKeepers, keeper.UserID) {
		return ErrKeeperNotAuthorized
	}

	select {
	case h.joinKeeper <- keeper:
	case <-h.done:
		return ErrGameClosed
	}
	go keeper.ReadCommands()
	go keeper.WriteUpdates()

	return nil
}

func (h *Hub) Run() {
	for {
		select {
		case watcher := <-h.JoinWatcher:
			h.watchers[watcher] = true
			h.send(watcher.Receive, h.stateMessage())
		case watcher := <-h.LeaveWatcher:
			if _, ok := h.watchers[watcher]; ok {
				delete(h.watchers, watcher)
				close(watcher.Receive)
			}
		case keeper := <-h.joinKeeper:
			h.keepers[keeper] = true
			h.send(keeper.Receive, h.stateMessage())
		case keeper := <-h.LeaveKeeper:
			if _, ok := h.keepers[keeper]; ok {
				delete(h.keepers, keeper)
			}
		case command := <-h.Commands:
			command.execute(h)
		case err := <-h.Errors:
			h.logger.PrintError(err, map[string]string{"game_pin": h.Pin})
			for k := range h.keepers {
				k.Close <- err
			}
			for w := range h.watchers {
				w.Close <- err
			}
			close(h.done)
			return
		}
	}
}

// Shutdown stops the clock, disconnects everyone and ends the Run loop. Safe
// to call more than once.
func (h *Hub) Shutdown() {
	h.clock.Stop()
	select {
	case h.Errors <- ErrGameClosed:
	case <-h.done:
	}
}

// Snapshot returns a point-in-time view of the game, serialized through the
// command loop like any other access. Returns nil once the hub has shut down.
func (h *Hub) Snapshot() *engine.Summary {
	req := summaryRequest{reply: make(chan *engine.Summary, 1)}
	select {
	case h.Commands <- req:
		return <-req.reply
	case <-h.done:
		return nil
	}
}

// broadcast pushes the current state view to every connected client. Called
// after each accepted command.
func (h *Hub) broadcast() {
	msg := h.stateMessage()
	for watcher := range h.watchers {
		if !h.send(watcher.Receive, msg) {
			delete(h.watchers, watcher)
		}
	}
	for keeper := range h.keepers {
		if !h.send(keeper.Receive, msg) {
			delete(h.keepers, keeper)
		}
	}
}

func (h *Hub) send(receive chan []byte, msg []byte) bool {
	select {
	case receive <- msg:
		return true
	default:
		close(receive)
		return false
	}
}

func (h *Hub) stateMessage() []byte {
	bytes, err := json2.Marshal(envelope{"summary": h.Game.Summary()})
	if err != nil {
		h.logger.PrintError(err, map[string]string{"game_pin": h.Pin})
		return []byte(`{}`)
	}
	return bytes
}

// persistRecord hands a finished game to the history store on a background
// goroutine. Outside the transactional boundary of any engine operation.
func (h *Hub) persistRecord(record *engine.Record) {
	go func() {
		if err := h.history.Insert(record); err != nil {
			h.logger.PrintError(err, map[string]string{
				"game_pin":  h.Pin,
				"record_id": record.ID,
			})
		}
	}()
}
