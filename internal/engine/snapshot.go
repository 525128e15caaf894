package engine

// maxUndo bounds the undo stack; the oldest snapshot is dropped past it.
const maxUndo = 20

// snapshot is a deep, independent copy of the five mutable aggregates taken
// immediately before a user-initiated mutation. Owned exclusively by the undo
// stack; it never aliases live state.
type snapshot struct {
	players   []*Player
	state     GameState
	events    []*Event
	scoreUs   int
	scoreThem int
	notes     []string
}

// saveSnapshot pushes a pre-image of the current state onto the undo stack.
// Called by every user-initiated mutation strictly before its effects apply.
// Automatic consequences of an already-snapshotted action must not call this,
// or a single intent would need several undos.
func (g *Game) saveSnapshot() {
	notes := make([]string, len(g.notes))
	copy(notes, g.notes)

	s := &snapshot{
		players:   clonePlayers(g.players),
		state:     g.state,
		events:    cloneEvents(g.events),
		scoreUs:   g.scoreUs,
		scoreThem: g.scoreThem,
		notes:     notes,
	}

	g.undo = append([]*snapshot{s}, g.undo...)
	if len(g.undo) > maxUndo {
		g.undo = g.undo[:maxUndo]
	}
}

// Undo pops the most recent snapshot and restores it wholesale. One
// directional: the popped snapshot is discarded and there is no redo. A
// no-op on an empty stack.
func (g *Game) Undo() {
	if len(g.undo) == 0 {
		return
	}

	s := g.undo[0]
	g.undo = g.undo[1:]

	g.players = s.players
	g.state = s.state
	g.events = s.events
	g.scoreUs = s.scoreUs
	g.scoreThem = s.scoreThem
	g.notes = s.notes
}
