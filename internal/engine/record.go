package engine

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Record is the immutable result of a finished game, as handed to the
// history store. Events keep the live log's newest-first order.
type Record struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	Name            string    `json:"name"`
	TeamSize        int       `json:"team_size"`
	DurationSeconds int       `json:"duration_seconds"`
	ScoreUs         int       `json:"score_us"`
	ScoreThem       int       `json:"score_them"`
	Players         []*Player `json:"players"`
	Events          []*Event  `json:"events"`
	Notes           string    `json:"notes"`
}

// Report renders the record as a plain-text block: header, score, duration,
// notes, players by descending time played, then the event log oldest first
// (reports read top-down as history, the inverse of the live log).
func (r *Record) Report() string {
	var sb strings.Builder

	sb.WriteString("COURTSIDE GAME REPORT\n")
	sb.WriteString("=====================================\n")
	fmt.Fprintf(&sb, "Date: %s\n", r.Date.Format("2006-01-02 15:04"))
	fmt.Fprintf(&sb, "Game: %s\n", r.Name)
	fmt.Fprintf(&sb, "Score: us %d - them %d\n", r.ScoreUs, r.ScoreThem)
	fmt.Fprintf(&sb, "Total time: %s\n\n", FormatClock(r.DurationSeconds))

	if r.Notes != "" {
		fmt.Fprintf(&sb, "NOTES:\n%s\n\n", r.Notes)
	}

	sb.WriteString("PLAYER STATS:\n")
	sb.WriteString("----------------------------\n")
	sorted := clonePlayers(r.Players)
	slices.SortStableFunc(sorted, func(a, b *Player) int {
		return b.SecondsPlayed - a.SecondsPlayed
	})
	for _, p := range sorted {
		var flags string
		if p.FouledOut {
			flags += " (FOULED OUT)"
		}
		if p.Injured {
			flags += " (INJURED)"
		}
		fmt.Fprintf(&sb, "#%-3d %-20s %dm %ds | %d pts%s\n",
			p.Number, p.Name, p.SecondsPlayed/60, p.SecondsPlayed%60, p.Points, flags)
	}

	sb.WriteString("\n\nGAME LOG:\n")
	sb.WriteString("----------------------------\n")
	for i := len(r.Events) - 1; i >= 0; i-- {
		e := r.Events[i]
		fmt.Fprintf(&sb, "[Period %d | %s] %s\n", e.Period, e.Timestamp, e.Description)
	}

	return sb.String()
}

// PlayerMinutes returns "Name: Nm" stat lines for the summarizer collaborator.
func (r *Record) PlayerMinutes() []string {
	lines := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		lines = append(lines, fmt.Sprintf("%s: %d min", p.Name, p.SecondsPlayed/60))
	}
	return lines
}

// InjuredNames returns the names of players that finished the game injured.
func (r *Record) InjuredNames() []string {
	names := make([]string, 0)
	for _, p := range r.Players {
		if p.Injured {
			names = append(names, p.Name)
		}
	}
	return names
}
