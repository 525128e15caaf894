package engine

import (
	"testing"

	"CourtsideApi/internal/assert"
)

func intPtr(v int) *int { return &v }

func TestBenchOrder(t *testing.T) {
	now := 1000
	players := []*Player{
		{ID: "p1", SecondsPlayed: 100},
		{ID: "p2", SecondsPlayed: 50, LastSubOutTime: intPtr(now - 10)},
		{ID: "p3", SecondsPlayed: 30},
	}

	got := BenchOrder(players, now)

	// p2 sinks below the non-cooling players despite the least playing time
	want := []string{"p3", "p1", "p2"}
	ids := make([]string, len(got))
	for i, p := range got {
		ids[i] = p.ID
	}
	assert.StringSliceEqual(t, ids, want)
}

func TestBenchOrderPartitions(t *testing.T) {
	now := 500
	players := []*Player{
		{ID: "a", SecondsPlayed: 90, LastSubOutTime: intPtr(now - 5)},
		{ID: "b", SecondsPlayed: 10, LastSubOutTime: intPtr(now - 80)},
		{ID: "c", SecondsPlayed: 200},
		{ID: "d", SecondsPlayed: 40},
	}

	got := BenchOrder(players, now)

	ids := make([]string, len(got))
	for i, p := range got {
		ids[i] = p.ID
	}
	// ready players by ascending time, then cooling players by ascending time
	assert.StringSliceEqual(t, ids, []string{"d", "c", "b", "a"})
}

func TestBenchOrderExcludes(t *testing.T) {
	players := []*Player{
		{ID: "court", OnCourt: true},
		{ID: "fouled", FouledOut: true},
		{ID: "injured", Injured: true},
		{ID: "ready"},
	}

	got := BenchOrder(players, 0)
	assert.Equal(t, len(got), 1)
	assert.Equal(t, got[0].ID, "ready")

	unavailable := Unavailable(players)
	assert.Equal(t, len(unavailable), 2)
}

func TestCooldownBoundary(t *testing.T) {
	tests := []struct {
		name    string
		subOut  *int
		clock   int
		cooling bool
	}{
		{name: "Never Subbed Out", subOut: nil, clock: 100, cooling: false},
		{name: "Just Subbed Out", subOut: intPtr(100), clock: 100, cooling: true},
		{name: "Inside Window", subOut: intPtr(100), clock: 189, cooling: true},
		{name: "At Threshold", subOut: intPtr(100), clock: 190, cooling: false},
		{name: "Past Threshold", subOut: intPtr(100), clock: 300, cooling: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Player{LastSubOutTime: tt.subOut}
			assert.Equal(t, p.CoolingDown(tt.clock), tt.cooling)
		})
	}
}

func TestFreshAnnotation(t *testing.T) {
	p := &Player{OnCourt: true, LastSubInTime: intPtr(100)}
	assert.Equal(t, p.Fresh(150), true)
	assert.Equal(t, p.Fresh(195), false)

	// fresh is an on-court annotation only
	benched := &Player{OnCourt: false, LastSubInTime: intPtr(100)}
	assert.Equal(t, benched.Fresh(150), false)
}

func TestSummaryGroups(t *testing.T) {
	g := testGame(5)
	assert.NilError(t, g.Swap("p1", ""))
	assert.NilError(t, g.MarkFouledOut("p2"))

	s := g.Summary()

	assert.Equal(t, len(s.Court), 1)
	assert.Equal(t, s.Court[0].Name, "Player 1")
	assert.Equal(t, s.Court[0].Fresh, true)
	assert.Equal(t, len(s.Bench), 3)
	assert.Equal(t, len(s.Unavailable), 1)
	assert.Equal(t, s.Unavailable[0].Name, "Player 2")
	assert.Equal(t, s.UndoDepth, 2)
	assert.Equal(t, s.Clock, "0:00")

	// summaries never alias live state
	s.Court[0].SecondsPlayed = 999
	assert.Equal(t, g.find("p1").SecondsPlayed, 0)
}
