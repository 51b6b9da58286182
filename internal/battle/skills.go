package battle

import (
	"fmt"

	"github.com/yonti32-ux/roguelike-sub002/internal/combat"
)

func (s *Session) UseSkill(u *combat.Unit, sk *combat.Skill) bool {
	return s.useSkill(u, sk, nil)
}

func (s *Session) UseSkillOn(u *combat.Unit, sk *combat.Skill, target *combat.Unit) bool {
	return s.useSkill(u, sk, target)
}

// skillTargets resolves who a cast touches, or nil when the cast is invalid.
func (s *Session) skillTargets(u *combat.Unit, sk *combat.Skill, target *combat.Unit) []*combat.Unit {
	switch sk.TargetMode {
	case combat.TargetSelf:
		return []*combat.Unit{u}
	case combat.TargetAlly:
		if target == nil {
			target = u
		}
		if !target.Alive() || target.Side != u.Side || !sk.InRange(u.Pos, target.Pos) {
			return nil
		}
		return []*combat.Unit{target}
	case combat.TargetAllies:
		var out []*combat.Unit
		for _, a := range s.Living(u.Side) {
			if sk.InRange(u.Pos, a.Pos) {
				out = append(out, a)
			}
		}
		return out
	case combat.TargetAround:
		reach := max(1, sk.Range, sk.AoERadius)
		var out []*combat.Unit
		for _, e := range s.Living(opposite(u.Side)) {
			if combat.Chebyshev(u.Pos, e.Pos) <= reach {
				out = append(out, e)
			}
		}
		return out
	}

	if target == nil || !target.Alive() || target.Side == u.Side || !sk.InRange(u.Pos, target.Pos) {
		return nil
	}
	if sk.TargetMode != combat.TargetEnemyAoE || sk.AoERadius <= 0 {
		return []*combat.Unit{target}
	}
	out := []*combat.Unit{target}
	for _, e := range s.Living(target.Side) {
		if e != target && combat.Manhattan(e.Pos, target.Pos) <= sk.AoERadius {
			out = append(out, e)
		}
	}
	return out
}

// power is the skill's strength multiplier for u.
func power(u *combat.Unit, sk *combat.Skill) float64 {
	p := sk.BasePower
	if sk.UsesSkillPower {
		p *= max(1, u.Entity.SkillPower)
	}
	return p
}

// useSkill validates, pays for and resolves one cast. Failed validation spends nothing.
func (s *Session) useSkill(u *combat.Unit, sk *combat.Skill, target *combat.Unit) bool {
	if sk == nil || !u.Alive() || !u.HasSkill(sk.ID) || !u.Ready(sk) {
		return false
	}
	targets := s.skillTargets(u, sk, target)
	if len(targets) == 0 {
		return false
	}

	u.Entity.Mana -= sk.ManaCost
	u.Entity.Stamina -= sk.StaminaCost
	u.SetCooldown(sk.ID, sk.Cooldown)

	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.Name)
	}
	s.emit(combat.Event{Turn: s.round, Type: "Cast", Payload: map[string]any{
		"caster": u.Name, "skill": sk.ID, "targets": names,
	}})
	s.logLine(fmt.Sprintf("%s uses %s.", u.Name, sk.Name))

	switch sk.Kind {
	case combat.KindHeal:
		amount := max(1, int(power(u, sk)*s.Tuning.Combat.HealPowerMultiplier))
		for _, t := range targets {
			if healed := t.Heal(amount); healed > 0 {
				s.logLine(fmt.Sprintf("%s recovers %d HP.", t.Name, healed))
			}
		}
	case combat.KindAttack, combat.KindDebuff, combat.KindControl:
		if sk.BasePower > 0 {
			base := power(u, sk) * float64(u.AttackPower())
			dealt := 0
			for _, t := range targets {
				if !u.Alive() {
					break
				}
				dealt += s.strike(u, t, base, sk.DamageType, max(1, sk.Range), sk.ID).Damage
			}
			if sk.ID == "life_drain" && dealt > 0 {
				if healed := u.Heal(int(float64(dealt) * s.Tuning.Combat.LifeDrainFraction)); healed > 0 {
					s.logLine(fmt.Sprintf("%s drains %d HP.", u.Name, healed))
				}
			}
		}
	}

	for _, ap := range sk.Applies {
		if ap.Self {
			if u.Alive() {
				s.AddStatus(u, ap.Status)
			}
			continue
		}
		for _, t := range targets {
			if t.Alive() {
				s.AddStatus(t, ap.Status)
			}
		}
	}
	return true
}
