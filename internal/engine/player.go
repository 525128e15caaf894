package engine

// CooldownThreshold is the window in game-clock seconds during which a player
// is considered cooling down after subbing out, or fresh after subbing in.
const CooldownThreshold = 90

type Player struct {
	ID                        string `json:"id"`
	Name                      string `json:"name"`
	Number                    int    `json:"number"`
	OnCourt                   bool   `json:"on_court"`
	SecondsPlayed             int    `json:"seconds_played"`
	Points                    int    `json:"points"`
	FouledOut                 bool   `json:"fouled_out"`
	Injured                   bool   `json:"injured"`
	ConsecutiveSecondsOnCourt int    `json:"consecutive_seconds_on_court"`
	ConsecutiveSecondsOnBench int    `json:"consecutive_seconds_on_bench"`
	LastSubInTime             *int   `json:"last_sub_in_time,omitempty"`
	LastSubOutTime            *int   `json:"last_sub_out_time,omitempty"`
}

// Eligible reports whether a player may enter or leave the court.
func (p *Player) Eligible() bool {
	return !p.FouledOut && !p.Injured
}

// CoolingDown reports whether the player subbed out within CooldownThreshold
// of the given game clock. A player that never subbed out is not cooling down.
func (p *Player) CoolingDown(clockSeconds int) bool {
	return p.LastSubOutTime != nil && clockSeconds-*p.LastSubOutTime < CooldownThreshold
}

// Fresh reports whether an on-court player entered within CooldownThreshold
// of the given game clock. Display annotation only.
func (p *Player) Fresh(clockSeconds int) bool {
	return p.OnCourt && p.LastSubInTime != nil && clockSeconds-*p.LastSubInTime < CooldownThreshold
}

func (p *Player) clone() *Player {
	c := *p
	if p.LastSubInTime != nil {
		t := *p.LastSubInTime
		c.LastSubInTime = &t
	}
	if p.LastSubOutTime != nil {
		t := *p.LastSubOutTime
		c.LastSubOutTime = &t
	}
	return &c
}

func clonePlayers(players []*Player) []*Player {
	copies := make([]*Player, len(players))
	for i, p := range players {
		copies[i] = p.clone()
	}
	return copies
}
