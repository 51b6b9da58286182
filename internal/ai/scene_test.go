package ai

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/yonti32-ux/roguelike-sub002/internal/combat"
	"github.com/yonti32-ux/roguelike-sub002/internal/config"
	"github.com/yonti32-ux/roguelike-sub002/internal/util"
)

// fakeScene is an open grid with no combat pipeline: damage is taken at face value.
type fakeScene struct {
	w, h  int
	units []*combat.Unit
	walls map[combat.Pos]bool
	cover map[combat.Pos]bool
	logs  []string
	ended int
	casts []string
	aimed []string

	pathErr     error
	panicLiving bool
}

var _ Scene = (*fakeScene)(nil)

func newFakeScene(w, h int, units ...*combat.Unit) *fakeScene {
	return &fakeScene{w: w, h: h, units: units, walls: map[combat.Pos]bool{}, cover: map[combat.Pos]bool{}}
}

func (s *fakeScene) UnitAt(p combat.Pos) *combat.Unit {
	for _, u := range s.units {
		if u.Alive() && u.Pos == p {
			return u
		}
	}
	return nil
}

func (s *fakeScene) CoverAt(p combat.Pos) bool { return s.cover[p] }

func (s *fakeScene) Log(msg string) { s.logs = append(s.logs, msg) }

func (s *fakeScene) EndTurn(*combat.Unit) { s.ended++ }

func (s *fakeScene) Width() int  { return s.w }
func (s *fakeScene) Height() int { return s.h }

func (s *fakeScene) WeaponRange(u *combat.Unit) int {
	return max(1, u.WeaponRange)
}

func (s *fakeScene) CellBlocked(p combat.Pos) bool {
	return p.X < 0 || p.Y < 0 || p.X >= s.w || p.Y >= s.h || s.walls[p]
}

func (s *fakeScene) TryMoveUnit(u *combat.Unit, dx, dy int) bool {
	if u.MovePoints <= 0 {
		return false
	}
	next := u.Pos.Add(combat.Pos{X: dx, Y: dy})
	if s.CellBlocked(next) || s.UnitAt(next) != nil {
		return false
	}
	u.Pos = next
	u.MovePoints--
	return true
}

func (s *fakeScene) IsStunned(u *combat.Unit) bool { return u.Stunned() }

func (s *fakeScene) AddStatus(u *combat.Unit, st combat.StatusEffect) { u.AddStatus(st) }

func (s *fakeScene) UseSkill(u *combat.Unit, sk *combat.Skill) bool {
	return s.UseSkillOn(u, sk, nil)
}

// UseSkillOn records the cast and its target ("" when untargeted) and applies
// the skill's statuses so repeat decisions see them.
func (s *fakeScene) UseSkillOn(u *combat.Unit, sk *combat.Skill, target *combat.Unit) bool {
	s.casts = append(s.casts, sk.ID)
	name := ""
	if target != nil {
		name = target.Name
	}
	s.aimed = append(s.aimed, name)
	u.SetCooldown(sk.ID, sk.Cooldown)
	for _, ap := range sk.Applies {
		switch {
		case ap.Self:
			u.AddStatus(ap.Status)
		case target != nil:
			target.AddStatus(ap.Status)
		}
	}
	return true
}

func (s *fakeScene) ApplyDamage(_, target *combat.Unit, base float64, _ combat.DamageType) int {
	return target.Damage(int(base))
}

func (s *fakeScene) IsFlanking(attacker, target *combat.Unit) bool {
	return combat.IsFlanking(attacker, target, s)
}

func (s *fakeScene) HasCover(_, target *combat.Unit) bool { return combat.HasCover(target, s) }

// FindPath hands back a single greedy step.
func (s *fakeScene) FindPath(u *combat.Unit, goal combat.Pos, _ int) ([]combat.Pos, error) {
	if s.pathErr != nil {
		return nil, s.pathErr
	}
	return []combat.Pos{u.Pos.Add(combat.Sign(u.Pos, goal))}, nil
}

func (s *fakeScene) Living(side combat.Side) []*combat.Unit {
	if s.panicLiving {
		panic("living exploded")
	}
	var out []*combat.Unit
	for _, u := range s.units {
		if u.Alive() && u.Side == side {
			out = append(out, u)
		}
	}
	return out
}

func newUnit(h int, arch string, side combat.Side, pos combat.Pos, atk int) *combat.Unit {
	u := combat.NewUnit(combat.Handle(h), arch+string(rune('0'+h)), side, pos, &combat.Entity{
		Archetype: arch, HP: 100, MaxHP: 100, Attack: atk,
	})
	u.MaxMovePoints = 3
	u.MovePoints = 3
	return u
}

// scriptedRng replays rolls, then keeps returning fallback. Shuffle keeps order
// unless reverse is set.
type scriptedRng struct {
	rolls    []float64
	fallback float64
	reverse  bool
	draws    int
	shuffles int
}

func (r *scriptedRng) Float64() float64 {
	r.draws++
	if len(r.rolls) == 0 {
		return r.fallback
	}
	v := r.rolls[0]
	r.rolls = r.rolls[1:]
	return v
}

func (r *scriptedRng) Intn(int) int { return 0 }

func (r *scriptedRng) Shuffle(n int, swap func(i, j int)) {
	r.shuffles++
	if r.reverse {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}
}

func newTestAI(t *testing.T, s Scene, profiles map[string]string) *BattleAI {
	t.Helper()
	return newScriptedAI(t, s, profiles, util.New(7))
}

func newScriptedAI(t *testing.T, s Scene, profiles map[string]string, rng util.Source) *BattleAI {
	t.Helper()
	b, err := NewBattleAI(s, Options{
		Tuning:   config.DefaultTuning(),
		Rng:      rng,
		Logger:   zaptest.NewLogger(t),
		Profiles: profiles,
	})
	if err != nil {
		t.Fatalf("NewBattleAI() error = %v", err)
	}
	return b
}
