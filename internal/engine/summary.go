package engine

// PlayerSummary decorates a player copy with the display-only cooldown
// annotations derived from the game clock.
type PlayerSummary struct {
	*Player
	Fresh       bool `json:"fresh"`
	CoolingDown bool `json:"cooling_down"`
}

// Summary is a point-in-time view of the aggregate for display. Everything
// in it is deep-copied; holding one never aliases live state.
type Summary struct {
	State       GameState        `json:"state"`
	Clock       string           `json:"clock"`
	TeamSize    int              `json:"team_size"`
	ScoreUs     int              `json:"score_us"`
	ScoreThem   int              `json:"score_them"`
	Court       []*PlayerSummary `json:"court"`
	Bench       []*PlayerSummary `json:"bench"`
	Unavailable []*PlayerSummary `json:"unavailable"`
	Events      []*Event         `json:"events"`
	Notes       []string         `json:"notes"`
	UndoDepth   int              `json:"undo_depth"`
}

// Summary assembles the current display view: court in roster order, bench
// in fairness order, unavailable players separate.
func (g *Game) Summary() *Summary {
	players := clonePlayers(g.players)
	now := g.state.ClockSeconds

	annotate := func(group []*Player) []*PlayerSummary {
		out := make([]*PlayerSummary, len(group))
		for i, p := range group {
			out[i] = &PlayerSummary{
				Player:      p,
				Fresh:       p.Fresh(now),
				CoolingDown: p.CoolingDown(now),
			}
		}
		return out
	}

	return &Summary{
		State:       g.state,
		Clock:       FormatClock(now),
		TeamSize:    g.teamSize,
		ScoreUs:     g.scoreUs,
		ScoreThem:   g.scoreThem,
		Court:       annotate(Court(players)),
		Bench:       annotate(BenchOrder(players, now)),
		Unavailable: annotate(Unavailable(players)),
		Events:      cloneEvents(g.events),
		Notes:       g.Notes(),
		UndoDepth:   len(g.undo),
	}
}
