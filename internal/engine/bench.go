package engine

import (
	"cmp"
	"slices"
)

// BenchOrder returns the eligible off-court players in display order: players
// still cooling down from a recent sub-out sink to the bottom regardless of
// playing time, and within each partition the least-played player surfaces
// first. This ordering is the fairness heuristic driving substitution
// decisions.
func BenchOrder(players []*Player, clockSeconds int) []*Player {
	bench := make([]*Player, 0, len(players))
	for _, p := range players {
		if !p.OnCourt && p.Eligible() {
			bench = append(bench, p)
		}
	}

	slices.SortStableFunc(bench, func(a, b *Player) int {
		aCooling := a.CoolingDown(clockSeconds)
		bCooling := b.CoolingDown(clockSeconds)
		if aCooling != bCooling {
			if aCooling {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.SecondsPlayed, b.SecondsPlayed)
	})

	return bench
}

// Court returns the on-court players in roster order.
func Court(players []*Player) []*Player {
	court := make([]*Player, 0, len(players))
	for _, p := range players {
		if p.OnCourt {
			court = append(court, p)
		}
	}
	return court
}

// Unavailable returns fouled-out and injured players, unordered beyond roster
// order. They are excluded from bench ordering entirely.
func Unavailable(players []*Player) []*Player {
	out := make([]*Player, 0, len(players))
	for _, p := range players {
		if !p.Eligible() {
			out = append(out, p)
		}
	}
	return out
}
