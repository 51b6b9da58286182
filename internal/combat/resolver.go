package combat

import (
	"math"

	"github.com/yonti32-ux/roguelike-sub002/internal/config"
	"github.com/yonti32-ux/roguelike-sub002/internal/util"
)

// Board is the slice of battle state the damage pipeline reads.
type Board interface {
	// UnitAt returns the living unit standing on p, or nil.
	UnitAt(p Pos) *Unit
	CoverAt(p Pos) bool
}

// Hit is the outcome of one pass through the pipeline.
type Hit struct {
	Damage    int
	Dodged    bool
	Crit      bool
	Flanked   bool
	Cover     bool
	Resist    float64
	Killed    bool
	Reflected int
}

type Resolver struct {
	Tuning config.CombatTuning
	Rng    util.Source
	Board  Board
	Emit   func(ev Event)
	Turn   func() int

	OnKill func(attacker, target *Unit)
}

func NewResolver(t config.CombatTuning, rng util.Source, b Board, turn func() int, emit func(Event)) *Resolver {
	return &Resolver{Tuning: t, Rng: rng, Board: b, Turn: turn, Emit: emit}
}

func (r *Resolver) emit(typ string, payload map[string]any) {
	if r.Emit == nil {
		return
	}
	turn := 0
	if r.Turn != nil {
		turn = r.Turn()
	}
	r.Emit(Event{Turn: turn, Type: typ, Payload: payload})
}

// RollCrit draws one Bernoulli(BaseCritChance) sample.
func (r *Resolver) RollCrit() bool {
	return util.Chance(r.Rng, r.Tuning.BaseCritChance)
}

// RangedFalloff scales base down with distance beyond the first tile.
// It only applies to ranged weapons and never drops below 1.
func (r *Resolver) RangedFalloff(base float64, dist, weaponRange int) float64 {
	return RangedFalloff(base, dist, weaponRange, r.Tuning.RangedFalloff)
}

func RangedFalloff(base float64, dist, weaponRange int, perTile float64) float64 {
	if weaponRange <= 1 || dist <= 1 {
		return base
	}
	f := 1 - perTile*float64(dist-1)/float64(weaponRange-1)
	return math.Max(1, math.Floor(base*f))
}

// IsFlankingFrom reports whether an attacker standing on p flanks target: it is adjacent
// (8-way) and no living ally of target holds the cell on the far side.
func IsFlankingFrom(p Pos, target *Unit, b Board) bool {
	if Chebyshev(p, target.Pos) != 1 {
		return false
	}
	if b == nil {
		return true
	}
	guard := b.UnitAt(Opposite(p, target.Pos))
	return guard == nil || !guard.Alive() || guard.Side != target.Side
}

func IsFlanking(attacker, target *Unit, b Board) bool {
	return IsFlankingFrom(attacker.Pos, target, b)
}

func HasCover(target *Unit, b Board) bool {
	return b != nil && b.CoverAt(target.Pos)
}

// Resolve runs one attack through the damage pipeline and applies the result.
// A dodge returns zero damage; every other outcome deals at least 1.
func (r *Resolver) Resolve(attacker, target *Unit, base float64, crit bool, dt DamageType, weaponRange int) Hit {
	t := r.Tuning
	hit := Hit{Resist: 1}

	if d := target.Entity.Dodge; d > 0 && util.Chance(r.Rng, d) {
		hit.Dodged = true
		r.emit("Dodge", map[string]any{"attacker": attacker.Name, "target": target.Name})
		return hit
	}

	dmg := base * attacker.OutgoingMult() * target.IncomingMult()

	hit.Resist = target.Resistance(dt)
	dmg *= hit.Resist

	if weaponRange <= 1 {
		if IsFlanking(attacker, target, r.Board) {
			hit.Flanked = true
			dmg *= t.FlankingBonus
		}
	} else if HasCover(target, r.Board) {
		hit.Cover = true
		dmg *= t.CoverReduction
	}

	if crit {
		hit.Crit = true
		dmg *= t.CritMultiplier
	}

	hit.Damage = max(1, int(dmg)-target.Entity.Defense)

	wasAlive := target.Alive()
	target.Damage(hit.Damage)
	hit.Killed = wasAlive && !target.Alive()

	if target.HasStatus(StatusCounter) && target.Side != attacker.Side {
		hit.Reflected = max(1, int(t.CounterReflect*float64(hit.Damage)))
		attacker.Damage(hit.Reflected)
		target.RemoveStatus(StatusCounter)
	}

	r.emit("Hit", map[string]any{
		"attacker": attacker.Name, "target": target.Name, "damage": hit.Damage,
		"type": string(dt), "hp": target.HP(),
	})
	if hit.Flanked {
		r.emit("Flank", map[string]any{"attacker": attacker.Name, "target": target.Name})
	}
	if hit.Cover {
		r.emit("Cover", map[string]any{"attacker": attacker.Name, "target": target.Name})
	}
	if hit.Resist != 1 {
		r.emit("Resist", map[string]any{"target": target.Name, "type": string(dt), "mult": hit.Resist})
	}
	if hit.Crit {
		r.emit("Crit", map[string]any{"attacker": attacker.Name, "target": target.Name})
	}
	if hit.Reflected > 0 {
		r.emit("Counter", map[string]any{"attacker": target.Name, "target": attacker.Name, "damage": hit.Reflected})
		if !attacker.Alive() {
			r.emit("Kill", map[string]any{"attacker": target.Name, "target": attacker.Name})
			if r.OnKill != nil {
				r.OnKill(target, attacker)
			}
		}
	}
	if hit.Killed {
		r.emit("Kill", map[string]any{"attacker": attacker.Name, "target": target.Name})
		if r.OnKill != nil {
			r.OnKill(attacker, target)
		}
	}
	return hit
}
