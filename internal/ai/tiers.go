package ai

import (
	"go.uber.org/zap"

	"github.com/yonti32-ux/roguelike-sub002/internal/combat"
	"github.com/yonti32-ux/roguelike-sub002/internal/util"
)

// plan holds the knobs one profile turns on the shared priority ladder.
// A zero chance skips its tier.
type plan struct {
	healChance float64
	buffChance float64

	defendBelow float64
	rageBelow   float64

	controlMin int

	offenseChance float64
	bestBias      float64

	move func(b *BattleAI, u *combat.Unit) bool
}

// tree builds the shared priority ladder for one plan: support, defence, control,
// offence, basic attack, movement. The first tier that acts ends the turn.
func (p plan) tree() BTNode {
	return &Selector{Children: []BTNode{
		&Sequence{Children: []BTNode{
			&CondNode{Fn: func(*Blackboard) bool { return p.healChance > 0 || p.buffChance > 0 }},
			&ActionNode{Act: ActSupport, Fn: func(bb *Blackboard) bool {
				return bb.B.trySupport(bb.U, p.healChance, p.buffChance)
			}},
		}},
		&ActionNode{Act: ActDefend, Fn: func(bb *Blackboard) bool {
			return bb.B.tryDefensive(bb.U, bb.HPRatio, p.defendBelow, p.rageBelow)
		}},
		&Sequence{Children: []BTNode{
			&CondNode{Fn: func(*Blackboard) bool { return p.controlMin > 0 }},
			&ActionNode{Act: ActControl, Fn: func(bb *Blackboard) bool {
				return bb.B.tryControl(bb.U, p.controlMin)
			}},
		}},
		&ActionNode{Act: ActSkill, Fn: func(bb *Blackboard) bool {
			return bb.B.tryOffensive(bb.S, bb.U, bb.HPRatio, p.offenseChance, p.bestBias)
		}},
		&ActionNode{Act: ActAttack, Fn: func(bb *Blackboard) bool {
			return bb.B.tryBasicAttack(bb.S, bb.U)
		}},
		&Sequence{Children: []BTNode{
			&CondNode{Fn: func(*Blackboard) bool { return p.move != nil }},
			&ActionNode{Act: ActMove, Fn: func(bb *Blackboard) bool {
				return p.move(bb.B, bb.U)
			}},
		}},
	}}
}

func (b *BattleAI) runPlan(s Strategy, u *combat.Unit, hpRatio float64, p plan) Action {
	bb := &Blackboard{B: b, U: u, S: s, HPRatio: hpRatio, Done: ActNone}
	p.tree().Tick(bb)
	return bb.Done
}

// appliedStatus names the status a skill leaves behind, or its id.
func appliedStatus(sk *combat.Skill) string {
	if len(sk.Applies) > 0 {
		return sk.Applies[0].Status.Name
	}
	return sk.ID
}

func (b *BattleAI) readySkills(u *combat.Unit, kinds ...combat.SkillKind) []*combat.Skill {
	var out []*combat.Skill
	for _, sk := range u.Skills {
		if !u.Ready(sk) {
			continue
		}
		for _, k := range kinds {
			if sk.Kind == k {
				out = append(out, sk)
				break
			}
		}
	}
	return out
}

func (b *BattleAI) use(u *combat.Unit, sk *combat.Skill, target *combat.Unit) bool {
	var ok bool
	if target == nil {
		ok = b.Scene.UseSkill(u, sk)
	} else {
		ok = b.Scene.UseSkillOn(u, sk, target)
	}
	if ok {
		name := ""
		if target != nil {
			name = target.Name
		}
		b.Log.Debug("skill used", zap.String("unit", u.Name), zap.String("skill", sk.ID), zap.String("target", name))
	}
	return ok
}

// trySupport heals the most injured ally in reach, then buffs an ally missing the buff.
func (b *BattleAI) trySupport(u *combat.Unit, healChance, buffChance float64) bool {
	if healChance > 0 {
		for _, sk := range b.readySkills(u, combat.KindHeal) {
			if b.tryHeal(u, sk, healChance) {
				return true
			}
		}
	}
	if buffChance > 0 && len(b.enemiesOf(u)) > 0 {
		for _, sk := range b.readySkills(u, combat.KindBuff) {
			if b.tryBuff(u, sk, buffChance) {
				return true
			}
		}
	}
	return false
}

func (b *BattleAI) tryHeal(u *combat.Unit, sk *combat.Skill, chance float64) bool {
	team := append([]*combat.Unit{u}, b.alliesOf(u)...)
	var pick *combat.Unit
	for _, a := range team {
		if a.HPRatio() >= b.Tuning.HealThreshold {
			continue
		}
		if sk.TargetMode == combat.TargetSelf && a != u {
			continue
		}
		if !sk.InRange(u.Pos, a.Pos) {
			continue
		}
		if pick == nil || a.HPRatio() < pick.HPRatio() {
			pick = a
		}
	}
	if pick == nil || !util.Chance(b.Rng, chance) {
		return false
	}
	if sk.TargetMode == combat.TargetAlly {
		return b.use(u, sk, pick)
	}
	return b.use(u, sk, nil)
}

func (b *BattleAI) tryBuff(u *combat.Unit, sk *combat.Skill, chance float64) bool {
	status := appliedStatus(sk)
	var pick *combat.Unit
	switch sk.TargetMode {
	case combat.TargetSelf:
		if !u.HasStatus(status) {
			pick = u
		}
	default:
		team := append([]*combat.Unit{u}, b.alliesOf(u)...)
		for _, a := range team {
			if a.HasStatus(status) || !sk.InRange(u.Pos, a.Pos) {
				continue
			}
			if pick == nil || a.AttackPower() > pick.AttackPower() {
				pick = a
			}
		}
	}
	if pick == nil || !util.Chance(b.Rng, chance) {
		return false
	}
	if sk.TargetMode == combat.TargetAlly {
		return b.use(u, sk, pick)
	}
	return b.use(u, sk, nil)
}

// tryDefensive raises a self-buff once hp falls under below. Rage skills wait for rageBelow.
func (b *BattleAI) tryDefensive(u *combat.Unit, hpRatio, below, rageBelow float64) bool {
	if hpRatio >= below {
		return false
	}
	var cands []*combat.Skill
	for _, sk := range b.readySkills(u, combat.KindDefense) {
		if sk.ID == "berserker_rage" && hpRatio >= rageBelow {
			continue
		}
		if u.HasStatus(appliedStatus(sk)) {
			continue
		}
		cands = append(cands, sk)
	}
	if len(cands) == 0 {
		return false
	}
	enemies := b.inRangeOf(u, b.enemiesOf(u), 1)
	best := b.Skills.GetBestSkill(u, cands, hpRatio, enemies, b.alliesOf(u))
	if best == nil || !util.Chance(b.Rng, b.Tuning.DefensiveChance) {
		return false
	}
	return b.use(u, best, nil)
}

// tryControl fires crowd control once enough enemies crowd u.
func (b *BattleAI) tryControl(u *combat.Unit, minAdjacent int) bool {
	adj := adjacent(u, b.enemiesOf(u))
	if len(adj) == 0 {
		return false
	}
	for _, sk := range b.readySkills(u, combat.KindControl) {
		need := minAdjacent
		if sk.ID == "fear_scream" {
			need = max(need, b.Tuning.FearMinAdjacent)
		}
		if len(adj) < need {
			continue
		}
		if sk.TargetMode == combat.TargetEnemy {
			var pick *combat.Unit
			for _, e := range b.Threat.RankTargetsByThreat(adj) {
				if !e.Stunned() && sk.InRange(u.Pos, e.Pos) {
					pick = e
					break
				}
			}
			if pick == nil || !util.Chance(b.Rng, b.Tuning.DebuffChance) {
				continue
			}
			if b.use(u, sk, pick) {
				return true
			}
			continue
		}
		if !util.Chance(b.Rng, b.Tuning.FearChance) {
			continue
		}
		if b.use(u, sk, nil) {
			return true
		}
	}
	return false
}

func skillTargets(u *combat.Unit, sk *combat.Skill, enemies []*combat.Unit) []*combat.Unit {
	var out []*combat.Unit
	for _, e := range enemies {
		if sk.InRange(u.Pos, e.Pos) {
			out = append(out, e)
		}
	}
	return out
}

// tryOffensive tries debuffs first, then the remaining offensive skills in random order.
// With bestBias the prioritizer's pick jumps the queue.
func (b *BattleAI) tryOffensive(s Strategy, u *combat.Unit, hpRatio, chance, bestBias float64) bool {
	if chance <= 0 {
		return false
	}
	enemies := b.enemiesOf(u)
	if len(enemies) == 0 {
		return false
	}

	for _, sk := range b.readySkills(u, combat.KindDebuff) {
		if !sk.TargetMode.Enemy() {
			continue
		}
		status := appliedStatus(sk)
		var fresh []*combat.Unit
		for _, e := range skillTargets(u, sk, enemies) {
			if !e.HasStatus(status) {
				fresh = append(fresh, e)
			}
		}
		t := s.ChooseTarget(b, u, fresh)
		if t == nil || !util.Chance(b.Rng, b.Tuning.DebuffChance) {
			continue
		}
		if b.use(u, sk, t) {
			b.Coord.UpdateTargetAssignment(u, t)
			return true
		}
	}

	var rest []*combat.Skill
	for _, sk := range b.readySkills(u, combat.KindAttack) {
		if sk.TargetMode.Enemy() {
			rest = append(rest, sk)
		}
	}
	b.Rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	if len(rest) > 1 && util.Chance(b.Rng, bestBias) {
		reach := maxSkillRange(rest)
		inReach := b.inRangeOf(u, enemies, max(reach, 2))
		if best := b.Skills.GetBestSkill(u, rest, hpRatio, inReach, b.alliesOf(u)); best != nil {
			for i, sk := range rest {
				if sk == best {
					rest[0], rest[i] = rest[i], rest[0]
					break
				}
			}
		}
	}

	for _, sk := range rest {
		targets := skillTargets(u, sk, enemies)
		if len(targets) == 0 {
			continue
		}
		var t *combat.Unit
		if sk.TargetMode == combat.TargetEnemyAoE && sk.AoERadius > 0 {
			if c, ok := b.Pos.FindOptimalAoEPosition(u, enemies, sk.AoERadius); ok {
				t = nearestTo(c.Pos(), targets)
			}
		}
		if t == nil {
			t = s.ChooseTarget(b, u, targets)
		}
		if t == nil {
			continue
		}
		p := chance
		if sk.ID == "life_drain" && hpRatio < 0.5 {
			p += b.Tuning.LifeDrainBoost
		}
		if (sk.ID == "poison_strike" || sk.ID == "disease_strike") && !t.HasStatus(combat.StatusPoisoned) {
			p += b.Tuning.PoisonBoost
		}
		if !util.Chance(b.Rng, p) {
			continue
		}
		if sk.TargetMode == combat.TargetAround {
			if b.use(u, sk, nil) {
				b.Coord.UpdateTargetAssignment(u, t)
				return true
			}
			continue
		}
		if b.use(u, sk, t) {
			b.Coord.UpdateTargetAssignment(u, t)
			return true
		}
	}
	return false
}

func (b *BattleAI) tryBasicAttack(s Strategy, u *combat.Unit) bool {
	wr := b.Scene.WeaponRange(u)
	targets := b.inRangeOf(u, b.enemiesOf(u), wr)
	t := s.ChooseTarget(b, u, targets)
	if t == nil {
		return false
	}
	return b.basicAttack(u, t)
}

func maxSkillRange(skills []*combat.Skill) int {
	r := 0
	for _, sk := range skills {
		r = max(r, sk.Range)
	}
	return r
}

func nearestTo(p combat.Pos, units []*combat.Unit) *combat.Unit {
	var best *combat.Unit
	bestD := 0
	for _, t := range units {
		if d := combat.Manhattan(p, t.Pos); best == nil || d < bestD {
			best, bestD = t, d
		}
	}
	return best
}
