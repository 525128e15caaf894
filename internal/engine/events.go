package engine

import (
	"fmt"

	"github.com/google/uuid"
)

type EventType string

const (
	EventSubstitution EventType = "SUBSTITUTION"
	EventStart        EventType = "START"
	EventPause        EventType = "PAUSE"
	EventPeriodEnd    EventType = "PERIOD_END"
	EventFoulOut      EventType = "FOUL_OUT"
	EventInjury       EventType = "INJURY"
	EventRecovery     EventType = "RECOVERY"
	EventScore        EventType = "SCORE"
)

// Event is an immutable log entry stamped with the game clock and period at
// the moment it was recorded. The live log keeps newest entries first.
type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	Description string    `json:"description"`
	Timestamp   string    `json:"timestamp"`
	Period      int       `json:"period"`
}

func (e *Event) clone() *Event {
	c := *e
	return &c
}

func cloneEvents(events []*Event) []*Event {
	copies := make([]*Event, len(events))
	for i, e := range events {
		copies[i] = e.clone()
	}
	return copies
}

// record prepends a new event stamped with the current clock and period.
func (g *Game) record(eventType EventType, description string) {
	event := &Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		Description: description,
		Timestamp:   FormatClock(g.state.ClockSeconds),
		Period:      g.state.Period,
	}
	g.events = append([]*Event{event}, g.events...)
}

// FormatClock renders elapsed seconds as "M:SS".
func FormatClock(totalSeconds int) string {
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}
