package ai

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yonti32-ux/roguelike-sub002/internal/combat"
	"github.com/yonti32-ux/roguelike-sub002/internal/config"
	"github.com/yonti32-ux/roguelike-sub002/internal/util"
)

// Action is the terminal action a turn ended on.
type Action int

const (
	ActNone Action = iota
	ActSupport
	ActDefend
	ActControl
	ActSkill
	ActAttack
	ActMove
)

var actionNames = [...]string{"none", "support", "defend", "control", "skill", "attack", "move"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "none"
	}
	return actionNames[a]
}

type Options struct {
	Tuning *config.TuningConfig
	Rng    util.Source
	Logger *zap.Logger

	// Profiles maps archetype id to profile name.
	Profiles map[string]string
	// Skills feeds declared bonus rules to the prioritizer.
	Skills []*combat.Skill
}

// BattleAI runs enemy and ally turns against a Scene. It owns the per-battle
// threat cache and coordination state.
type BattleAI struct {
	Scene  Scene
	Rng    util.Source
	Tuning config.AITuning
	Combat config.CombatTuning
	Log    *zap.Logger

	Threat *ThreatAssessor
	Coord  *Coordinator
	Pos    *Positioner
	Skills *SkillPrioritizer

	profiles   map[string]Profile
	strategies [profileCount]Strategy
}

func NewBattleAI(scene Scene, opt Options) (*BattleAI, error) {
	tc := opt.Tuning
	if tc == nil {
		tc = config.DefaultTuning()
	}
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	rng := opt.Rng
	if rng == nil {
		rng = util.New(1)
	}
	sp, err := NewSkillPrioritizer(opt.Skills, log)
	if err != nil {
		return nil, err
	}
	threat := NewThreatAssessor()
	b := &BattleAI{
		Scene:    scene,
		Rng:      rng,
		Tuning:   tc.AI,
		Combat:   tc.Combat,
		Log:      log,
		Threat:   threat,
		Coord:    NewCoordinator(threat, tc.AI.FocusMinFocusers, tc.AI.FocusLowHP, tc.AI.ProtectHP),
		Pos:      &Positioner{Scene: scene, Rng: rng},
		Skills:   sp,
		profiles: map[string]Profile{},
	}
	for arch, name := range opt.Profiles {
		p, ok := ParseProfile(name)
		if !ok {
			log.Warn("unknown ai profile, using brute", zap.String("archetype", arch), zap.String("profile", name))
		}
		b.profiles[arch] = p
	}
	b.strategies = newStrategies()
	return b, nil
}

// ProfileOf resolves a unit's profile from its archetype; unknown archetypes are brutes.
func (b *BattleAI) ProfileOf(u *combat.Unit) Profile {
	if p, ok := b.profiles[u.Entity.Archetype]; ok {
		return p
	}
	return Brute
}

func (b *BattleAI) Strategy(p Profile) Strategy {
	if p < 0 || p >= profileCount {
		p = Brute
	}
	return b.strategies[p]
}

// ExecuteAITurn plays one full turn for u and always ends it, even if a strategy
// panics.
func (b *BattleAI) ExecuteAITurn(u *combat.Unit) (act Action) {
	defer func() {
		if r := recover(); r != nil {
			b.Log.Error("ai turn aborted", zap.String("unit", u.Name), zap.Any("panic", r))
			b.Scene.Log(fmt.Sprintf("%s hesitates.", u.Name))
			act = ActNone
		}
		b.Scene.EndTurn(u)
	}()

	b.Threat.Reset()

	if u.HasStatus(combat.StatusRegenerating) {
		amount := max(1, int(float64(u.MaxHP())*b.Combat.RegenHealFraction))
		if healed := u.Heal(amount); healed > 0 {
			b.Scene.Log(fmt.Sprintf("%s regenerates %d HP.", u.Name, healed))
		}
	}

	if b.Scene.IsStunned(u) {
		b.Scene.Log(fmt.Sprintf("%s is stunned and cannot act.", u.Name))
		return ActNone
	}

	hpRatio := u.HPRatio()
	p := b.ProfileOf(u)
	act = b.Strategy(p).ExecuteTurn(b, u, hpRatio)
	b.Log.Debug("ai turn",
		zap.String("unit", u.Name),
		zap.Stringer("profile", p),
		zap.Stringer("action", act),
		zap.Float64("hp_ratio", hpRatio))
	return act
}

func (b *BattleAI) enemiesOf(u *combat.Unit) []*combat.Unit {
	if u.Side == combat.SideAlly {
		return b.Scene.Living(combat.SideEnemy)
	}
	return b.Scene.Living(combat.SideAlly)
}

// alliesOf returns u's living teammates, u excluded.
func (b *BattleAI) alliesOf(u *combat.Unit) []*combat.Unit {
	var out []*combat.Unit
	for _, a := range b.Scene.Living(u.Side) {
		if a != u {
			out = append(out, a)
		}
	}
	return out
}

// InRange uses Chebyshev reach for melee weapons and Manhattan reach for ranged ones.
func InRange(from, to combat.Pos, weaponRange int) bool {
	if weaponRange <= 1 {
		return combat.Chebyshev(from, to) <= 1
	}
	return combat.Manhattan(from, to) <= weaponRange
}

func (b *BattleAI) inRangeOf(u *combat.Unit, units []*combat.Unit, weaponRange int) []*combat.Unit {
	var out []*combat.Unit
	for _, t := range units {
		if InRange(u.Pos, t.Pos, weaponRange) {
			out = append(out, t)
		}
	}
	return out
}

func adjacent(u *combat.Unit, units []*combat.Unit) []*combat.Unit {
	var out []*combat.Unit
	for _, t := range units {
		if combat.Chebyshev(u.Pos, t.Pos) == 1 {
			out = append(out, t)
		}
	}
	return out
}

func nearest(u *combat.Unit, units []*combat.Unit) *combat.Unit {
	var best *combat.Unit
	bestD := 0
	for _, t := range units {
		if d := combat.Manhattan(u.Pos, t.Pos); best == nil || d < bestD {
			best, bestD = t, d
		}
	}
	return best
}

// StepTowards moves u one cell toward goal. It follows the planner's first step when
// a path exists and otherwise tries the longer axis, the shorter axis, then the diagonal.
func (b *BattleAI) StepTowards(u *combat.Unit, goal combat.Pos) bool {
	if u.MovePoints <= 0 || u.Pos == goal {
		return false
	}
	path, err := b.Scene.FindPath(u, goal, u.MovePoints+b.Tuning.PathBudget)
	if err == nil && len(path) > 0 {
		d := path[0].Sub(u.Pos)
		if b.Scene.TryMoveUnit(u, d.X, d.Y) {
			return true
		}
	} else if err != nil {
		b.Log.Debug("path planner failed, stepping greedily", zap.String("unit", u.Name), zap.Error(err))
	}
	return b.greedyStep(u, goal)
}

func (b *BattleAI) greedyStep(u *combat.Unit, goal combat.Pos) bool {
	s := combat.Sign(u.Pos, goal)
	dx, dy := abs(goal.X-u.Pos.X), abs(goal.Y-u.Pos.Y)
	steps := []combat.Pos{{X: s.X}, {Y: s.Y}}
	if dy > dx {
		steps[0], steps[1] = steps[1], steps[0]
	}
	steps = append(steps, s)
	for _, st := range steps {
		if st == (combat.Pos{}) {
			continue
		}
		if b.Scene.TryMoveUnit(u, st.X, st.Y) {
			return true
		}
	}
	return false
}

// MoveTowardsTarget spends movement stepping toward target until adjacent, blocked,
// or out of points.
func (b *BattleAI) MoveTowardsTarget(u, target *combat.Unit) bool {
	moved := false
	for u.Alive() && u.MovePoints > 0 && combat.Chebyshev(u.Pos, target.Pos) > 1 {
		if !b.StepTowards(u, target.Pos) {
			break
		}
		moved = true
	}
	return moved
}

// MoveTo walks u toward a cell until it arrives, is blocked, or runs out of points.
func (b *BattleAI) MoveTo(u *combat.Unit, goal combat.Pos) bool {
	moved := false
	for u.Alive() && u.MovePoints > 0 && u.Pos != goal {
		if !b.StepTowards(u, goal) {
			break
		}
		moved = true
	}
	return moved
}

// MoveWithin closes distance until target is within Manhattan reach.
func (b *BattleAI) MoveWithin(u, target *combat.Unit, reach int) bool {
	moved := false
	for u.Alive() && u.MovePoints > 0 && combat.Manhattan(u.Pos, target.Pos) > reach {
		if !b.StepTowards(u, target.Pos) {
			break
		}
		moved = true
	}
	return moved
}

// StepAway takes one step that increases distance from threat, preferring the
// neighbour farthest from it.
func (b *BattleAI) StepAway(u *combat.Unit, threat combat.Pos) bool {
	if u.MovePoints <= 0 {
		return false
	}
	cur := combat.Manhattan(u.Pos, threat)
	type option struct {
		d    combat.Pos
		dist int
	}
	var opts []option
	for _, d := range combat.Neighbors8 {
		c := u.Pos.Add(d)
		if nd := combat.Manhattan(c, threat); nd > cur && combat.Chebyshev(c, threat) > 1 {
			opts = append(opts, option{d, nd})
		}
	}
	for len(opts) > 0 {
		bi := 0
		for i, o := range opts {
			if o.dist > opts[bi].dist {
				bi = i
			}
		}
		if b.Scene.TryMoveUnit(u, opts[bi].d.X, opts[bi].d.Y) {
			return true
		}
		opts = append(opts[:bi], opts[bi+1:]...)
	}
	return false
}

// basicAttack swings the weapon at target, applying ranged falloff first.
func (b *BattleAI) basicAttack(u, target *combat.Unit) bool {
	wr := b.Scene.WeaponRange(u)
	if !InRange(u.Pos, target.Pos, wr) {
		return false
	}
	base := combat.RangedFalloff(float64(u.AttackPower()), combat.Manhattan(u.Pos, target.Pos), wr, b.Combat.RangedFalloff)
	dmg := b.Scene.ApplyDamage(u, target, base, combat.DamagePhysical)
	b.Coord.UpdateTargetAssignment(u, target)
	b.Log.Debug("basic attack", zap.String("unit", u.Name), zap.String("target", target.Name), zap.Int("damage", dmg))
	return true
}
