package engine

import (
	"reflect"
	"testing"

	"CourtsideApi/internal/assert"
)

func aggregates(g *Game) (players []*Player, state GameState, events []*Event,
	scoreUs, scoreThem int, notes []string) {
	return clonePlayers(g.players), g.state, cloneEvents(g.events), g.scoreUs, g.scoreThem,
		g.Notes()
}

func TestUndoRoundTrip(t *testing.T) {
	g := testGame(5)
	assert.NilError(t, g.Swap("p1", ""))
	g.StartClock()
	g.Tick()
	g.Tick()
	assert.NilError(t, g.ScorePlayer("p1", 2, false))
	g.UpdateNote(0, "before")

	players, state, events, scoreUs, scoreThem, notes := aggregates(g)

	g.saveSnapshot()
	g.Undo()

	gotPlayers, gotState, gotEvents, gotScoreUs, gotScoreThem, gotNotes := aggregates(g)
	if !reflect.DeepEqual(gotPlayers, players) {
		t.Errorf("players not restored:\ngot  %+v\nwant %+v", gotPlayers, players)
	}
	assert.Equal(t, gotState, state)
	if !reflect.DeepEqual(gotEvents, events) {
		t.Errorf("events not restored:\ngot  %+v\nwant %+v", gotEvents, events)
	}
	assert.Equal(t, gotScoreUs, scoreUs)
	assert.Equal(t, gotScoreThem, scoreThem)
	assert.StringSliceEqual(t, gotNotes, notes)
}

func TestUndoRestoresPreImage(t *testing.T) {
	g := testGame(5)
	g.AdjustScore(SideUs, 2)

	assert.NilError(t, g.Swap("p1", ""))
	assert.Equal(t, g.find("p1").OnCourt, true)

	g.Undo()
	assert.Equal(t, g.find("p1").OnCourt, false)
	assert.Equal(t, g.scoreUs, 2)

	g.Undo()
	assert.Equal(t, g.scoreUs, 0)
}

func TestUndoEmptyStackIsNoop(t *testing.T) {
	g := testGame(5)
	g.AdjustScore(SideUs, 1)
	g.undo = nil
	before := g.scoreUs

	g.Undo()

	assert.Equal(t, g.scoreUs, before)
	assert.Equal(t, len(g.undo), 0)
}

func TestUndoStackBounded(t *testing.T) {
	g := testGame(5)
	for i := 0; i < maxUndo+5; i++ {
		g.AdjustScore(SideUs, 1)
	}

	assert.Equal(t, len(g.undo), maxUndo)

	// the oldest snapshots were dropped, so undoing everything bottoms out
	// at the earliest retained pre-image, not at zero
	for i := 0; i < maxUndo; i++ {
		g.Undo()
	}
	assert.Equal(t, g.scoreUs, 5)
	assert.Equal(t, len(g.undo), 0)
}

func TestSnapshotIsIndependentOfLiveState(t *testing.T) {
	g := testGame(5)
	assert.NilError(t, g.Swap("p1", ""))

	// mutate live state after the snapshot was taken
	g.find("p1").SecondsPlayed = 500
	g.find("p1").Points = 50

	g.Undo()
	p := g.find("p1")
	assert.Equal(t, p.SecondsPlayed, 0)
	assert.Equal(t, p.Points, 0)
	assert.Equal(t, p.OnCourt, false)
}

func TestRejectedMutationsDoNotSnapshot(t *testing.T) {
	g := testGame(4)
	g.find("p1").FouledOut = true

	assert.ErrorIs(t, g.Swap("p1", ""), ErrPlayerIneligible)
	assert.Equal(t, len(g.undo), 0)

	assert.ErrorIs(t, g.ScorePlayer("ghost", 2, false), ErrPlayerNotFound)
	assert.Equal(t, len(g.undo), 0)
}

func TestUndoNotPollutedByDerivedActions(t *testing.T) {
	g := testGame(5)
	g.AdjustScore(SideUs, 10)
	depth := len(g.undo)

	// one period advance captures exactly one snapshot even though it also
	// auto-records the score note and a period-end event
	g.AdvancePeriod(false)
	assert.Equal(t, len(g.undo), depth+1)

	g.Undo()
	assert.Equal(t, g.state.Period, 1)
	assert.Equal(t, len(g.events), 0)
	assert.StringSliceEqual(t, g.notes, []string{""})
}
