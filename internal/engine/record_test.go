package engine

import (
	"strings"
	"testing"
	"time"

	"CourtsideApi/internal/assert"
)

func testRecord() *Record {
	return &Record{
		ID:              "rec1",
		Date:            time.Date(2025, 11, 2, 14, 30, 0, 0, time.UTC),
		Name:            "vs Hornets",
		TeamSize:        4,
		DurationSeconds: 1325,
		ScoreUs:         18,
		ScoreThem:       12,
		Players: []*Player{
			{ID: "p1", Name: "Player 1", Number: 4, SecondsPlayed: 310, Points: 6},
			{ID: "p2", Name: "Player 2", Number: 5, SecondsPlayed: 580, Points: 8, FouledOut: true},
			{ID: "p3", Name: "Player 3", Number: 6, SecondsPlayed: 435, Points: 0, Injured: true},
		},
		Events: []*Event{
			{ID: "e2", Type: EventPause, Description: "Game clock paused", Timestamp: "5:25", Period: 2},
			{ID: "e1", Type: EventStart, Description: "Game clock started", Timestamp: "0:00", Period: 1},
		},
		Notes: "strong first period\n\nFinal score: 18 - 12",
	}
}

func TestReportLayout(t *testing.T) {
	report := testRecord().Report()

	assert.StringContains(t, report, "COURTSIDE GAME REPORT")
	assert.StringContains(t, report, "Date: 2025-11-02 14:30")
	assert.StringContains(t, report, "Game: vs Hornets")
	assert.StringContains(t, report, "Score: us 18 - them 12")
	assert.StringContains(t, report, "Total time: 22:05")
	assert.StringContains(t, report, "strong first period")
	assert.StringContains(t, report, "(FOULED OUT)")
	assert.StringContains(t, report, "(INJURED)")

	// players render by descending time played
	p2 := strings.Index(report, "Player 2")
	p3 := strings.Index(report, "Player 3")
	p1 := strings.Index(report, "Player 1")
	if !(p2 < p3 && p3 < p1) {
		t.Errorf("players out of order: p2=%d p3=%d p1=%d", p2, p3, p1)
	}

	// the log reads chronologically, inverse of the live ordering
	started := strings.Index(report, "Game clock started")
	paused := strings.Index(report, "Game clock paused")
	if !(started < paused) {
		t.Errorf("log out of order: started=%d paused=%d", started, paused)
	}
	assert.StringContains(t, report, "[Period 1 | 0:00] Game clock started")
}

func TestReportDeterministic(t *testing.T) {
	assert.Equal(t, testRecord().Report(), testRecord().Report())
}

func TestReportOmitsEmptyNotes(t *testing.T) {
	rec := testRecord()
	rec.Notes = ""
	report := rec.Report()

	if strings.Contains(report, "NOTES:") {
		t.Error("expected notes section to be omitted")
	}
}

func TestPlayerMinutes(t *testing.T) {
	lines := testRecord().PlayerMinutes()
	assert.StringSliceEqual(t, lines, []string{
		"Player 1: 5 min",
		"Player 2: 9 min",
		"Player 3: 7 min",
	})
}

func TestInjuredNames(t *testing.T) {
	assert.StringSliceEqual(t, testRecord().InjuredNames(), []string{"Player 3"})
}
