package ai

import (
	"sort"

	"github.com/yonti32-ux/roguelike-sub002/internal/combat"
)

var statusThreat = map[string]float64{
	combat.StatusEmpowered: 10,
	combat.StatusWarCry:    8,
	combat.StatusMarked:    -5,
	combat.StatusCursed:    -3,
	combat.StatusStunned:   -15,
}

// ThreatAssessor scores how dangerous a unit is. Scores are cached per arena handle
// until Reset, which the AI calls at the start of every turn.
type ThreatAssessor struct {
	cache map[combat.Handle]float64
}

func NewThreatAssessor() *ThreatAssessor {
	return &ThreatAssessor{cache: map[combat.Handle]float64{}}
}

func (t *ThreatAssessor) Reset() {
	clear(t.cache)
}

func (t *ThreatAssessor) CalculateThreat(u *combat.Unit) float64 {
	if v, ok := t.cache[u.Handle]; ok {
		return v
	}
	v := clampf(float64(u.AttackPower())*0.5, 0, 40) +
		u.HPRatio()*30 +
		clampf(u.Entity.SkillPower*5, 0, 20) +
		float64(len(u.Skills))*2
	for _, st := range u.Statuses {
		v += statusThreat[st.Name]
	}
	if u.Stunned() && !u.HasStatus(combat.StatusStunned) {
		v += statusThreat[combat.StatusStunned]
	}
	t.cache[u.Handle] = v
	return v
}

// RankTargetsByThreat returns units sorted by threat, highest first. Ties keep input order.
func (t *ThreatAssessor) RankTargetsByThreat(units []*combat.Unit) []*combat.Unit {
	out := append([]*combat.Unit(nil), units...)
	sort.SliceStable(out, func(i, j int) bool {
		return t.CalculateThreat(out[i]) > t.CalculateThreat(out[j])
	})
	return out
}

// Highest returns the most threatening unit, first one on ties.
func (t *ThreatAssessor) Highest(units []*combat.Unit) *combat.Unit {
	var best *combat.Unit
	bestV := 0.0
	for _, u := range units {
		if v := t.CalculateThreat(u); best == nil || v > bestV {
			best, bestV = u, v
		}
	}
	return best
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
