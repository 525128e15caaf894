package hub

import (
	"io"
	"sync"
	"testing"
	"time"

	"CourtsideApi/internal/assert"
	"CourtsideApi/internal/engine"
	"CourtsideApi/internal/jsonlog"
)

type stubHistory struct {
	mu      sync.Mutex
	records []*engine.Record
}

func (s *stubHistory) Insert(record *engine.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *stubHistory) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func testHub(t *testing.T) (*Hub, *stubHistory) {
	t.Helper()

	game, err := engine.New(4, []engine.RosterEntry{
		{Name: "Player 1", Number: 4},
		{Name: "Player 2", Number: 5},
		{Name: "Player 3", Number: 6},
	})
	assert.NilError(t, err)

	history := &stubHistory{}
	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	h := New("123456", game, []int64{1}, history, logger)
	go h.Run()

	return h, history
}

func TestCommandsSerialize(t *testing.T) {
	h, _ := testHub(t)
	defer h.Shutdown()

	players := h.Game.Players()
	p1, p2 := players[0].ID, players[1].ID

	h.Commands <- &SwapCommand{In: p1}
	h.Commands <- &ScoreCommand{PlayerID: p1, Points: 3}
	h.Commands <- &TeamScoreCommand{Side: engine.SideThem, Delta: 2}
	h.Commands <- &FoulOutCommand{PlayerID: p2}

	s := h.Snapshot()
	assert.Equal(t, len(s.Court), 1)
	assert.Equal(t, s.ScoreUs, 3)
	assert.Equal(t, s.ScoreThem, 2)
	assert.Equal(t, len(s.Unavailable), 1)
}

func TestRejectedCommandLeavesStateUntouched(t *testing.T) {
	h, _ := testHub(t)
	defer h.Shutdown()

	h.Commands <- &SwapCommand{In: "missing"}

	s := h.Snapshot()
	assert.Equal(t, len(s.Court), 0)
	assert.Equal(t, s.UndoDepth, 0)
}

func TestFinishPersistsRecord(t *testing.T) {
	h, history := testHub(t)
	defer h.Shutdown()

	p1 := h.Game.Players()[0].ID
	h.Commands <- &ScoreCommand{PlayerID: p1, Points: 2}
	h.Commands <- &FinishCommand{Name: "vs Hornets"}

	// persistence runs on a background goroutine
	deadline := time.Now().Add(2 * time.Second)
	for history.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, history.count(), 1)

	history.mu.Lock()
	record := history.records[0]
	history.mu.Unlock()
	assert.Equal(t, record.Name, "vs Hornets")
	assert.Equal(t, record.ScoreUs, 2)

	// the live game resets after finishing
	s := h.Snapshot()
	assert.Equal(t, s.ScoreUs, 0)
	assert.Equal(t, s.State.Period, 1)
}

func TestUndoCommand(t *testing.T) {
	h, _ := testHub(t)
	defer h.Shutdown()

	p1 := h.Game.Players()[0].ID
	h.Commands <- &ScoreCommand{PlayerID: p1, Points: 2}
	h.Commands <- &UndoCommand{}

	s := h.Snapshot()
	assert.Equal(t, s.ScoreUs, 0)
	assert.Equal(t, s.UndoDepth, 0)
}

func TestUndoRestoresRunningClock(t *testing.T) {
	h, _ := testHub(t)
	defer h.Shutdown()

	p1 := h.Game.Players()[0].ID

	// the swap snapshot captures a running game; pausing afterwards stops the
	// ticker without pushing a snapshot of its own
	h.Commands <- &ClockCommand{Start: true}
	h.Commands <- &SwapCommand{In: p1}
	h.Commands <- &ClockCommand{Start: false}
	h.Commands <- &UndoCommand{}

	s := h.Snapshot()
	assert.Equal(t, s.State.Running, true)
	assert.Equal(t, len(s.Court), 0)

	// a restored running state must resume ticking, not just report running
	assert.Equal(t, h.clock.Running(), true)
}

func TestShutdownStopsRunLoop(t *testing.T) {
	game, err := engine.New(4, nil)
	assert.NilError(t, err)

	h := New("123456", game, []int64{1}, &stubHistory{}, jsonlog.New(io.Discard, jsonlog.LevelOff))

	done := make(chan struct{})
	go func() {
		h.Run()
		close(done)
	}()

	h.Shutdown()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run loop still alive after shutdown")
	}

	// late reads return nil instead of blocking forever
	if s := h.Snapshot(); s != nil {
		t.Errorf("got %+v; want nil snapshot after shutdown", s)
	}

	// a repeated shutdown must not block
	h.Shutdown()
}

func TestClockCommandDrivesTicker(t *testing.T) {
	h, _ := testHub(t)
	defer h.Shutdown()

	h.Commands <- &ClockCommand{Start: true}
	s := h.Snapshot()
	assert.Equal(t, s.State.Running, true)
	assert.Equal(t, h.clock.Running(), true)

	h.Commands <- &ClockCommand{Start: false}
	s = h.Snapshot()
	assert.Equal(t, s.State.Running, false)
	assert.Equal(t, h.clock.Running(), false)
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		input   GenericCommand
		want    Command
		wantErr error
	}{
		{
			name:  "Clock Start",
			input: GenericCommand{"type": float64(clockCommandType), "start": true},
			want:  &ClockCommand{Start: true},
		},
		{
			name:  "Swap",
			input: GenericCommand{"type": float64(swapCommandType), "in": "p1", "out": "p2"},
			want:  &SwapCommand{In: "p1", Out: "p2"},
		},
		{
			name:    "Swap Without Players",
			input:   GenericCommand{"type": float64(swapCommandType)},
			wantErr: ErrCommandValidationFailed,
		},
		{
			name: "Score",
			input: GenericCommand{
				"type": float64(scoreCommandType), "player_id": "p1",
				"points": float64(3), "correction": true,
			},
			want: &ScoreCommand{PlayerID: "p1", Points: 3, Correction: true},
		},
		{
			name: "Score Zero Points",
			input: GenericCommand{
				"type": float64(scoreCommandType), "player_id": "p1", "points": float64(0),
			},
			wantErr: ErrCommandValidationFailed,
		},
		{
			name: "Team Score Bad Side",
			input: GenericCommand{
				"type": float64(teamScoreCommandType), "side": "NEITHER", "delta": float64(1),
			},
			wantErr: ErrCommandValidationFailed,
		},
		{
			name:  "Finish Without Name",
			input: GenericCommand{"type": float64(finishCommandType)},
			want:  &FinishCommand{},
		},
		{
			name:    "Missing Type",
			input:   GenericCommand{"start": true},
			wantErr: ErrCommandParseFailed,
		},
		{
			name:    "Unknown Type",
			input:   GenericCommand{"type": float64(99)},
			wantErr: ErrCommandParseFailed,
		},
		{
			name: "Note Update",
			input: GenericCommand{
				"type": float64(noteCommandType), "action": float64(noteUpdate),
				"index": float64(0), "text": "good defense",
			},
			want: &NoteCommand{Action: noteUpdate, Index: 0, Text: "good defense"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.parseCommand()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NilError(t, err)

			switch want := tt.want.(type) {
			case *ClockCommand:
				assert.Equal(t, *got.(*ClockCommand), *want)
			case *SwapCommand:
				assert.Equal(t, *got.(*SwapCommand), *want)
			case *ScoreCommand:
				assert.Equal(t, *got.(*ScoreCommand), *want)
			case *FinishCommand:
				assert.Equal(t, *got.(*FinishCommand), *want)
			case *NoteCommand:
				assert.Equal(t, *got.(*NoteCommand), *want)
			}
		})
	}
}
