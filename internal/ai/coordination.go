package ai

import "github.com/yonti32-ux/roguelike-sub002/internal/combat"

// Coordinator tracks which enemy each unit is attacking so allies can focus fire.
// A unit holds at most one assignment.
type Coordinator struct {
	Threat *ThreatAssessor

	FocusMinFocusers int
	FocusLowHP       float64
	ProtectHP        float64

	assigned map[combat.Handle]*combat.Unit
	focusers map[combat.Handle]int
}

func NewCoordinator(threat *ThreatAssessor, minFocusers int, lowHP, protectHP float64) *Coordinator {
	return &Coordinator{
		Threat:           threat,
		FocusMinFocusers: minFocusers,
		FocusLowHP:       lowHP,
		ProtectHP:        protectHP,
		assigned:         map[combat.Handle]*combat.Unit{},
		focusers:         map[combat.Handle]int{},
	}
}

// Reset clears every assignment. Called when a battle starts.
func (c *Coordinator) Reset() {
	clear(c.assigned)
	clear(c.focusers)
}

// UpdateTargetAssignment moves u's assignment to target. A nil target only
// releases the old one.
func (c *Coordinator) UpdateTargetAssignment(u, target *combat.Unit) {
	if old, ok := c.assigned[u.Handle]; ok {
		if target != nil && old.Handle == target.Handle {
			return
		}
		c.focusers[old.Handle]--
		if c.focusers[old.Handle] <= 0 {
			delete(c.focusers, old.Handle)
		}
		delete(c.assigned, u.Handle)
	}
	if target == nil {
		return
	}
	c.assigned[u.Handle] = target
	c.focusers[target.Handle]++
}

// Release drops any assignment held by u and any focus on u. Used when u dies.
func (c *Coordinator) Release(u *combat.Unit) {
	c.UpdateTargetAssignment(u, nil)
	for h, t := range c.assigned {
		if t.Handle == u.Handle {
			delete(c.assigned, h)
		}
	}
	delete(c.focusers, u.Handle)
}

func (c *Coordinator) Target(u *combat.Unit) *combat.Unit { return c.assigned[u.Handle] }

func (c *Coordinator) Focusers(target *combat.Unit) int { return c.focusers[target.Handle] }

func (c *Coordinator) ShouldFocusFire(target *combat.Unit, minFocusers int) bool {
	return c.focusers[target.Handle] >= minFocusers
}

// GetFocusTarget picks the enemy the team should converge on: an already focused
// target first, then a wounded one, then simply the most threatening.
func (c *Coordinator) GetFocusTarget(enemies []*combat.Unit) *combat.Unit {
	var living, focused, wounded []*combat.Unit
	for _, e := range enemies {
		if !e.Alive() {
			continue
		}
		living = append(living, e)
		if c.ShouldFocusFire(e, c.FocusMinFocusers) {
			focused = append(focused, e)
		}
		if e.HPRatio() < c.FocusLowHP {
			wounded = append(wounded, e)
		}
	}
	if len(focused) > 0 {
		return c.Threat.Highest(focused)
	}
	if len(wounded) > 0 {
		return c.Threat.Highest(wounded)
	}
	return c.Threat.Highest(living)
}

// ShouldProtectAlly reports an ally worth guarding: badly hurt, or a fragile
// profile with an enemy close by.
func (c *Coordinator) ShouldProtectAlly(ally *combat.Unit, profile Profile, nearbyEnemies []*combat.Unit) bool {
	if ally.HPRatio() < c.ProtectHP {
		return true
	}
	return (profile == Caster || profile == Support) && len(nearbyEnemies) > 0
}
