package battle

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yonti32-ux/roguelike-sub002/internal/ai"
	"github.com/yonti32-ux/roguelike-sub002/internal/combat"
	"github.com/yonti32-ux/roguelike-sub002/internal/config"
	"github.com/yonti32-ux/roguelike-sub002/internal/util"
)

var (
	ErrNoPath  = errors.New("no path")
	ErrBlocked = errors.New("cell blocked")
)

// Session is one battle: the grid, the unit arena and the pipeline that resolves
// every attack. It implements ai.Scene.
type Session struct {
	ID     uuid.UUID
	Grid   *combat.Grid
	Units  []*combat.Unit // arena; Units[h].Handle == h
	Tuning *config.TuningConfig
	Rng    util.Source
	Logger *zap.Logger

	Resolver  *combat.Resolver
	Reactions *combat.ReactionResolver
	AI        *ai.BattleAI

	round  int
	record bool
	events []combat.Event

	damageByUnit  map[string]int
	damageBySkill map[string]int
	kills         map[string]int
	reactions     int
	turnsEnded    int
}

var _ ai.Scene = (*Session)(nil)

// NewSession builds an empty battle on g. A nil tuning means defaults, a nil logger is a no-op.
func NewSession(g *combat.Grid, tc *config.TuningConfig, rng util.Source, log *zap.Logger) *Session {
	if tc == nil {
		tc = config.DefaultTuning()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if rng == nil {
		rng = util.New(1)
	}
	s := &Session{
		ID:            uuid.New(),
		Grid:          g,
		Tuning:        tc,
		Rng:           rng,
		damageByUnit:  map[string]int{},
		damageBySkill: map[string]int{},
		kills:         map[string]int{},
	}
	s.Logger = log.With(zap.String("battle", s.ID.String()))
	s.Resolver = combat.NewResolver(tc.Combat, rng, s, s.Round, s.emit)
	s.Resolver.OnKill = s.onKill
	s.Reactions = combat.NewReactionResolver(s.Resolver)
	s.Reactions.OnReaction = func(kind string, reactor, mover *combat.Unit, hit combat.Hit) {
		s.reactions++
		s.credit(reactor, kind, hit.Damage)
		s.credit(mover, combat.StatusCounter, hit.Reflected)
		s.logLine(fmt.Sprintf("%s strikes %s as it withdraws for %d.", reactor.Name, mover.Name, hit.Damage))
	}
	return s
}

// Record keeps every emitted event for the result.
func (s *Session) Record(on bool) { s.record = on }

func (s *Session) Round() int { return s.round }

// TurnsEnded counts EndTurn calls so far.
func (s *Session) TurnsEnded() int { return s.turnsEnded }

// Events returns the recorded event log.
func (s *Session) Events() []combat.Event { return s.events }

func (s *Session) emit(ev combat.Event) {
	if s.record {
		s.events = append(s.events, ev)
	}
}

func (s *Session) logLine(text string) {
	s.emit(combat.Event{Turn: s.round, Type: "LogLine", Payload: map[string]any{"text": text}})
	s.Logger.Debug(text, zap.Int("round", s.round))
}

// Spawn places a new unit on the grid and gives it the next arena handle.
func (s *Session) Spawn(name string, side combat.Side, pos combat.Pos, ent *combat.Entity) (*combat.Unit, error) {
	if s.Grid.Blocked(pos) {
		return nil, fmt.Errorf("spawn %s at %v: %w", name, pos, ErrBlocked)
	}
	if o := s.UnitAt(pos); o != nil {
		return nil, fmt.Errorf("spawn %s at %v: occupied by %s: %w", name, pos, o.Name, ErrBlocked)
	}
	u := combat.NewUnit(combat.Handle(len(s.Units)), name, side, pos, ent)
	s.Units = append(s.Units, u)
	s.emit(combat.Event{Turn: s.round, Type: "Spawn", Payload: map[string]any{
		"id": name, "side": side.String(), "x": pos.X, "y": pos.Y, "hp": ent.HP, "max_hp": ent.MaxHP,
	}})
	return u, nil
}

// AttachAI wires a BattleAI playing on this session.
func (s *Session) AttachAI(opt ai.Options) error {
	if opt.Tuning == nil {
		opt.Tuning = s.Tuning
	}
	if opt.Rng == nil {
		opt.Rng = s.Rng
	}
	if opt.Logger == nil {
		opt.Logger = s.Logger
	}
	b, err := ai.NewBattleAI(s, opt)
	if err != nil {
		return fmt.Errorf("attach ai: %w", err)
	}
	s.AI = b
	return nil
}

func (s *Session) onKill(attacker, target *combat.Unit) {
	s.kills[attacker.Name]++
	if s.AI != nil {
		s.AI.Coord.Release(target)
	}
	s.logLine(fmt.Sprintf("%s is slain by %s.", target.Name, attacker.Name))
	s.Logger.Info("unit killed", zap.String("unit", target.Name), zap.String("by", attacker.Name), zap.Int("round", s.round))
}

func (s *Session) credit(u *combat.Unit, source string, dmg int) {
	if dmg <= 0 {
		return
	}
	s.damageByUnit[u.Name] += dmg
	s.damageBySkill[source] += dmg
}

// ---- ai.Scene ----

func (s *Session) Log(msg string) { s.logLine(msg) }

func (s *Session) Width() int  { return s.Grid.W }
func (s *Session) Height() int { return s.Grid.H }

func (s *Session) CellBlocked(p combat.Pos) bool { return s.Grid.Blocked(p) }
func (s *Session) CoverAt(p combat.Pos) bool     { return s.Grid.CoverAt(p) }

// UnitAt returns the living unit on p, or nil.
func (s *Session) UnitAt(p combat.Pos) *combat.Unit {
	for _, u := range s.Units {
		if u.Alive() && u.Pos == p {
			return u
		}
	}
	return nil
}

// Living lists the side's living units in arena order.
func (s *Session) Living(side combat.Side) []*combat.Unit {
	var out []*combat.Unit
	for _, u := range s.Units {
		if u.Alive() && u.Side == side {
			out = append(out, u)
		}
	}
	return out
}

func (s *Session) IsStunned(u *combat.Unit) bool { return u.Stunned() }

func (s *Session) AddStatus(u *combat.Unit, st combat.StatusEffect) {
	u.AddStatus(st)
	s.emit(combat.Event{Turn: s.round, Type: "ApplyStatus", Payload: map[string]any{
		"target": u.Name, "status": st.Name, "dur": st.Duration,
	}})
}

func (s *Session) WeaponRange(u *combat.Unit) int { return max(1, u.WeaponRange) }

func (s *Session) IsFlanking(attacker, target *combat.Unit) bool {
	return combat.IsFlanking(attacker, target, s)
}

func (s *Session) HasCover(_, target *combat.Unit) bool { return combat.HasCover(target, s) }

// TryMoveUnit steps u by one cell in any of the eight directions. It costs one
// movement point and gives adjacent enemies their attack of opportunity.
func (s *Session) TryMoveUnit(u *combat.Unit, dx, dy int) bool {
	if !u.Alive() || u.MovePoints <= 0 {
		return false
	}
	if (dx == 0 && dy == 0) || dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return false
	}
	from := u.Pos
	to := from.Add(combat.Pos{X: dx, Y: dy})
	if s.Grid.Blocked(to) || s.UnitAt(to) != nil {
		return false
	}
	u.Pos = to
	u.MovePoints--
	s.emit(combat.Event{Turn: s.round, Type: "Move", Payload: map[string]any{
		"id": u.Name, "from": []int{from.X, from.Y}, "to": []int{to.X, to.Y},
	}})
	s.Reactions.OnMove(u, from, to, s.Living(opposite(u.Side)))
	return true
}

// ApplyDamage rolls a crit and runs base through the pipeline at the attacker's weapon range.
func (s *Session) ApplyDamage(attacker, target *combat.Unit, base float64, dt combat.DamageType) int {
	hit := s.strike(attacker, target, base, dt, s.WeaponRange(attacker), "attack")
	return hit.Damage
}

func (s *Session) strike(attacker, target *combat.Unit, base float64, dt combat.DamageType, reach int, source string) combat.Hit {
	hit := s.Resolver.Resolve(attacker, target, base, s.Resolver.RollCrit(), dt, reach)
	s.credit(attacker, source, hit.Damage)
	s.credit(target, combat.StatusCounter, hit.Reflected)
	if hit.Dodged {
		s.logLine(fmt.Sprintf("%s dodges %s.", target.Name, attacker.Name))
	} else {
		s.logLine(fmt.Sprintf("%s hits %s for %d (HP %d).", attacker.Name, target.Name, hit.Damage, target.HP()))
	}
	return hit
}

// EndTurn runs the unit's end-of-turn bookkeeping: per-turn status damage and expiry.
func (s *Session) EndTurn(u *combat.Unit) {
	s.turnsEnded++
	if u.Alive() {
		dealt, expired := u.TickStatuses()
		if dealt > 0 {
			s.damageBySkill["status"] += dealt
			s.logLine(fmt.Sprintf("%s suffers %d from lingering effects.", u.Name, dealt))
			if !u.Alive() {
				if s.AI != nil {
					s.AI.Coord.Release(u)
				}
				s.emit(combat.Event{Turn: s.round, Type: "Kill", Payload: map[string]any{"target": u.Name}})
			}
		}
		for _, name := range expired {
			s.emit(combat.Event{Turn: s.round, Type: "ExpireStatus", Payload: map[string]any{"target": u.Name, "status": name}})
		}
	}
	s.emit(combat.Event{Turn: s.round, Type: "EndTurn", Payload: map[string]any{"id": u.Name}})
}

func opposite(side combat.Side) combat.Side {
	if side == combat.SideAlly {
		return combat.SideEnemy
	}
	return combat.SideAlly
}
