package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTeamSize         = errors.New("team size must be 4 or 5")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrPlayerIneligible = errors.New("player not eligible for substitution")
	ErrCourtFull        = errors.New("court is at capacity")
)

type Side string

const (
	SideUs   Side = "US"
	SideThem Side = "THEM"
)

type GameState struct {
	Running      bool `json:"running"`
	Period       int  `json:"period"`
	ClockSeconds int  `json:"clock_seconds"`
}

// Game is the owned state aggregate for one live game. Every mutation goes
// through one of its methods; callers must serialize access (the hub runs
// all commands and clock ticks on a single goroutine). Mutating user intents
// capture an undo snapshot before applying their effects. A method that
// returns a non-nil error has left all state untouched.
type Game struct {
	teamSize  int
	players   []*Player
	state     GameState
	events    []*Event
	scoreUs   int
	scoreThem int
	notes     []string
	undo      []*snapshot
}

type RosterEntry struct {
	Name   string `json:"name"`
	Number int    `json:"number"`
}

func New(teamSize int, roster []RosterEntry) (*Game, error) {
	if teamSize != 4 && teamSize != 5 {
		return nil, ErrTeamSize
	}

	g := &Game{
		teamSize: teamSize,
		state:    GameState{Period: 1},
		notes:    []string{""},
	}
	for _, entry := range roster {
		g.players = append(g.players, &Player{
			ID:     uuid.NewString(),
			Name:   entry.Name,
			Number: entry.Number,
		})
	}

	return g, nil
}

func (g *Game) TeamSize() int { return g.teamSize }

func (g *Game) State() GameState { return g.state }

func (g *Game) ScoreUs() int { return g.scoreUs }

func (g *Game) ScoreThem() int { return g.scoreThem }

func (g *Game) UndoDepth() int { return len(g.undo) }

func (g *Game) Players() []*Player {
	return clonePlayers(g.players)
}

func (g *Game) Events() []*Event {
	return cloneEvents(g.events)
}

func (g *Game) Notes() []string {
	notes := make([]string, len(g.notes))
	copy(notes, g.notes)
	return notes
}

func (g *Game) find(id string) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CourtCount returns the number of players currently on court.
func (g *Game) CourtCount() int {
	count := 0
	for _, p := range g.players {
		if p.OnCourt {
			count++
		}
	}
	return count
}

// StartClock marks the game running. Ticks are driven externally; starting
// only gates whether they apply. Idempotent while already running.
func (g *Game) StartClock() {
	if g.state.Running {
		return
	}
	g.state.Running = true
	g.record(EventStart, "Game clock started")
}

// PauseClock stops the game clock. Idempotent while already paused.
func (g *Game) PauseClock() {
	if !g.state.Running {
		return
	}
	g.state.Running = false
	g.record(EventPause, "Game clock paused")
}

// Tick advances the game by exactly one second: the game clock, and every
// player's accumulators. Injured players are frozen entirely. A no-op unless
// the clock is running.
func (g *Game) Tick() {
	if !g.state.Running {
		return
	}
	g.state.ClockSeconds++
	for _, p := range g.players {
		if p.Injured {
			continue
		}
		if p.OnCourt {
			p.SecondsPlayed++
			p.ConsecutiveSecondsOnCourt++
			p.ConsecutiveSecondsOnBench = 0
		} else {
			p.ConsecutiveSecondsOnCourt = 0
			p.ConsecutiveSecondsOnBench++
		}
	}
}

// Swap moves inID onto the court and/or outID off it. Either id may be empty
// for a pure sub-in or sub-out. The whole call is rejected, with no effect,
// if a referenced player is fouled out or injured, or if the result would
// put more than teamSize players on court.
func (g *Game) Swap(inID, outID string) error {
	if inID == "" && outID == "" {
		return nil
	}
	if inID == outID {
		return nil
	}

	var in, out *Player
	if inID != "" {
		if in = g.find(inID); in == nil {
			return ErrPlayerNotFound
		}
	}
	if outID != "" {
		if out = g.find(outID); out == nil {
			return ErrPlayerNotFound
		}
	}

	if in != nil && !in.Eligible() {
		return ErrPlayerIneligible
	}
	if out != nil && !out.Eligible() {
		return ErrPlayerIneligible
	}

	count := g.CourtCount()
	if in != nil && !in.OnCourt {
		count++
	}
	if out != nil && out.OnCourt {
		count--
	}
	if count > g.teamSize {
		return ErrCourtFull
	}

	g.saveSnapshot()

	now := g.state.ClockSeconds
	if in != nil {
		in.OnCourt = true
		in.ConsecutiveSecondsOnBench = 0
		t := now
		in.LastSubInTime = &t
	}
	if out != nil {
		out.OnCourt = false
		out.ConsecutiveSecondsOnCourt = 0
		t := now
		out.LastSubOutTime = &t
	}

	switch {
	case in != nil && out != nil:
		g.record(EventSubstitution, fmt.Sprintf("%s in, %s out", in.Name, out.Name))
	case in != nil:
		g.record(EventSubstitution, fmt.Sprintf("%s checks in", in.Name))
	default:
		g.record(EventSubstitution, fmt.Sprintf("%s to the bench", out.Name))
	}

	return nil
}

// MarkFouledOut permanently removes a player from eligibility. Terminal for
// the rest of the game; there is no un-set.
func (g *Game) MarkFouledOut(id string) error {
	p := g.find(id)
	if p == nil {
		return ErrPlayerNotFound
	}
	if p.FouledOut {
		return nil
	}

	g.saveSnapshot()
	p.FouledOut = true
	p.OnCourt = false
	g.record(EventFoulOut, fmt.Sprintf("%s fouled out (5 fouls)", p.Name))

	return nil
}

// ToggleInjury flips a player's injury status. Becoming injured forces the
// player off court; recovering does not return them to it.
func (g *Game) ToggleInjury(id string) error {
	p := g.find(id)
	if p == nil {
		return ErrPlayerNotFound
	}

	g.saveSnapshot()
	p.Injured = !p.Injured
	if p.Injured {
		p.OnCourt = false
		p.ConsecutiveSecondsOnCourt = 0
		g.record(EventInjury, fmt.Sprintf("%s marked injured", p.Name))
	} else {
		g.record(EventRecovery, fmt.Sprintf("%s cleared to play", p.Name))
	}

	return nil
}

// ScorePlayer attributes points to a player and to the team total, both
// clamped at zero. With correction set the sign is inverted, which reverses
// a misattributed score without a generic undo.
func (g *Game) ScorePlayer(id string, points int, correction bool) error {
	p := g.find(id)
	if p == nil {
		return ErrPlayerNotFound
	}
	if points <= 0 {
		return nil
	}

	g.saveSnapshot()

	real := points
	if correction {
		real = -points
	}
	g.scoreUs = max(0, g.scoreUs+real)
	p.Points = max(0, p.Points+real)

	if correction {
		g.record(EventScore, fmt.Sprintf("%s %d points (correction)", p.Name, real))
	} else {
		g.record(EventScore, fmt.Sprintf("%s +%d points", p.Name, real))
	}

	return nil
}

// AdjustScore applies a quick team-level score change, clamped at zero. Team
// totals and per-player points are tracked independently; quick points are
// never reconciled against player attribution.
func (g *Game) AdjustScore(side Side, delta int) {
	if side != SideUs && side != SideThem {
		return
	}
	g.saveSnapshot()
	switch side {
	case SideUs:
		g.scoreUs = max(0, g.scoreUs+delta)
	case SideThem:
		g.scoreThem = max(0, g.scoreThem+delta)
	}
}

// LogScoreNote records the current score as both a log event and a note.
func (g *Game) LogScoreNote() {
	g.saveSnapshot()
	g.record(EventScore, fmt.Sprintf("Interim score recorded: %d-%d", g.scoreUs, g.scoreThem))
	g.appendScoreNote()
}

// appendScoreNote writes the running score into the notes list. Reuses a
// trailing blank note and leaves a fresh blank one after, so the next manual
// note starts on its own line.
func (g *Game) appendScoreNote() {
	note := fmt.Sprintf("Period %d score: us %d - them %d", g.state.Period, g.scoreUs, g.scoreThem)
	if n := len(g.notes); n > 0 && g.notes[n-1] == "" {
		g.notes[n-1] = note
	} else {
		g.notes = append(g.notes, note)
	}
	g.notes = append(g.notes, "")
}

// AdvancePeriod closes out the current period: pauses the clock, auto-records
// the score to notes (a consequence of this action, so no snapshot of its
// own), logs a period-end event and increments the period. Unless keepLineup
// is set, every on-court player returns to the bench with their shift counter
// cleared but without a sub-out timestamp, so nobody reads as recently subbed.
func (g *Game) AdvancePeriod(keepLineup bool) {
	g.state.Running = false
	g.saveSnapshot()

	g.appendScoreNote()
	g.record(EventPeriodEnd,
		fmt.Sprintf("Period %d ended (%d-%d)", g.state.Period, g.scoreUs, g.scoreThem))
	g.state.Period++

	if !keepLineup {
		for _, p := range g.players {
			p.OnCourt = false
			p.ConsecutiveSecondsOnCourt = 0
		}
	}
}

// Reset zeroes the whole game. A reset is an undo boundary: the stack is
// cleared, nothing before it can be undone.
func (g *Game) Reset() {
	g.saveSnapshot()
	for _, p := range g.players {
		p.OnCourt = false
		p.SecondsPlayed = 0
		p.Points = 0
		p.FouledOut = false
		p.Injured = false
		p.ConsecutiveSecondsOnCourt = 0
		p.ConsecutiveSecondsOnBench = 0
		p.LastSubInTime = nil
		p.LastSubOutTime = nil
	}
	g.state = GameState{Period: 1}
	g.events = nil
	g.notes = []string{""}
	g.scoreUs = 0
	g.scoreThem = 0
	g.undo = nil
}

// Finish pauses the clock, assembles an immutable record of the finished
// game and resets the engine. Persisting the record is the caller's concern
// and never rolls back engine state.
func (g *Game) Finish(name string) *Record {
	g.saveSnapshot()
	g.state.Running = false

	if name == "" {
		name = "Untitled game"
	}

	rec := &Record{
		ID:              uuid.NewString(),
		Date:            time.Now(),
		Name:            name,
		TeamSize:        g.teamSize,
		DurationSeconds: g.state.ClockSeconds,
		ScoreUs:         g.scoreUs,
		ScoreThem:       g.scoreThem,
		Players:         clonePlayers(g.players),
		Events:          cloneEvents(g.events),
		Notes:           g.compiledNotes(),
	}

	g.Reset()

	return rec
}

func (g *Game) compiledNotes() string {
	kept := make([]string, 0, len(g.notes))
	for _, n := range g.notes {
		if strings.TrimSpace(n) != "" {
			kept = append(kept, n)
		}
	}
	compiled := strings.Join(kept, "\n")
	return fmt.Sprintf("%s\n\nFinal score: %d - %d", compiled, g.scoreUs, g.scoreThem)
}

// AddPlayer appends a new player to the roster mid-game.
func (g *Game) AddPlayer(name string, number int) (*Player, error) {
	if name == "" {
		return nil, ErrPlayerNotFound
	}
	g.saveSnapshot()
	p := &Player{
		ID:     uuid.NewString(),
		Name:   name,
		Number: number,
	}
	g.players = append(g.players, p)
	return p.clone(), nil
}

// UpdatePlayer renames or renumbers a player, keeping all accumulated stats.
func (g *Game) UpdatePlayer(id, name string, number int) error {
	p := g.find(id)
	if p == nil {
		return ErrPlayerNotFound
	}
	if name == "" {
		return nil
	}
	g.saveSnapshot()
	p.Name = name
	p.Number = number
	return nil
}

// RemovePlayer drops a player from the roster entirely.
func (g *Game) RemovePlayer(id string) error {
	for i, p := range g.players {
		if p.ID == id {
			g.saveSnapshot()
			g.players = append(g.players[:i], g.players[i+1:]...)
			return nil
		}
	}
	return ErrPlayerNotFound
}

// LoadRoster replaces the whole roster and resets the game. Like Reset, this
// is an undo boundary.
func (g *Game) LoadRoster(roster []RosterEntry) {
	g.saveSnapshot()
	players := make([]*Player, 0, len(roster))
	for _, entry := range roster {
		players = append(players, &Player{
			ID:     uuid.NewString(),
			Name:   entry.Name,
			Number: entry.Number,
		})
	}
	g.players = players
	g.Reset()
}

// UpdateNote edits a note line in place. Note typing is not snapshotted.
func (g *Game) UpdateNote(index int, text string) {
	if index < 0 || index >= len(g.notes) {
		return
	}
	g.notes[index] = text
}

// InsertNote adds an empty note line after index.
func (g *Game) InsertNote(index int) {
	if index < 0 || index >= len(g.notes) {
		return
	}
	g.notes = append(g.notes[:index+1], append([]string{""}, g.notes[index+1:]...)...)
}

// RemoveNote deletes a note line, keeping at least one.
func (g *Game) RemoveNote(index int) {
	if index < 0 || index >= len(g.notes) {
		return
	}
	if len(g.notes) == 1 {
		g.notes[0] = ""
		return
	}
	g.notes = append(g.notes[:index], g.notes[index+1:]...)
}
