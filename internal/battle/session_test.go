package battle

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/yonti32-ux/roguelike-sub002/internal/ai"
	"github.com/yonti32-ux/roguelike-sub002/internal/combat"
	"github.com/yonti32-ux/roguelike-sub002/internal/config"
	"github.com/yonti32-ux/roguelike-sub002/internal/util"
)

// newTestSession builds a battle without crits so damage is exact.
func newTestSession(t *testing.T, rows ...string) *Session {
	t.Helper()
	tc := config.DefaultTuning()
	tc.Combat.BaseCritChance = 0
	g := combat.ParseGrid(len(rows[0]), len(rows), rows)
	s := NewSession(g, tc, util.New(3), zaptest.NewLogger(t))
	s.Record(true)
	return s
}

func spawn(t *testing.T, s *Session, name string, side combat.Side, x, y, atk int) *combat.Unit {
	t.Helper()
	u, err := s.Spawn(name, side, combat.Pos{X: x, Y: y}, &combat.Entity{
		ID: name, HP: 100, MaxHP: 100, Attack: atk, Mana: 20, MaxMana: 20,
	})
	if err != nil {
		t.Fatalf("Spawn(%s) error = %v", name, err)
	}
	u.MaxMovePoints = 3
	u.MovePoints = 3
	return u
}

func countEvents(s *Session, typ string) int {
	n := 0
	for _, ev := range s.Events() {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func TestSpawnRejectsBlockedCells(t *testing.T) {
	s := newTestSession(t, ".#.", "...")
	spawn(t, s, "a", combat.SideAlly, 0, 0, 5)
	if _, err := s.Spawn("b", combat.SideAlly, combat.Pos{X: 1, Y: 0}, &combat.Entity{HP: 1, MaxHP: 1}); !errors.Is(err, ErrBlocked) {
		t.Errorf("Spawn() on a wall error = %v, want ErrBlocked", err)
	}
	if _, err := s.Spawn("c", combat.SideEnemy, combat.Pos{X: 0, Y: 0}, &combat.Entity{HP: 1, MaxHP: 1}); !errors.Is(err, ErrBlocked) {
		t.Errorf("Spawn() on an occupied cell error = %v, want ErrBlocked", err)
	}
	if got := s.Units[0].Handle; got != 0 {
		t.Errorf("first handle = %d, want 0", got)
	}
}

func TestLogRecordsLogLine(t *testing.T) {
	s := newTestSession(t, "...")
	var scene ai.Scene = s
	scene.Log("the orc roars.")

	var got []string
	for _, ev := range s.Events() {
		if ev.Type == "LogLine" {
			got = append(got, ev.Payload["text"].(string))
		}
	}
	if len(got) != 1 || got[0] != "the orc roars." {
		t.Errorf("LogLine texts = %v, want [the orc roars.]", got)
	}
	if s.Logger == nil {
		t.Error("Logger is nil")
	}
}

func TestFindPath(t *testing.T) {
	s := newTestSession(t,
		"..#..",
		"..#..",
		".....",
	)
	u := spawn(t, s, "walker", combat.SideAlly, 0, 0, 5)

	path, err := s.FindPath(u, combat.Pos{X: 4, Y: 0}, 10)
	if err != nil {
		t.Fatalf("FindPath() error = %v", err)
	}
	if len(path) != 4 || path[len(path)-1] != (combat.Pos{X: 4, Y: 0}) {
		t.Errorf("FindPath() = %v, want 4 steps ending at {4 0}", path)
	}
	if path[0] == u.Pos {
		t.Error("FindPath() included the start cell")
	}

	if _, err := s.FindPath(u, combat.Pos{X: 4, Y: 0}, 3); !errors.Is(err, ErrNoPath) {
		t.Errorf("FindPath() over budget error = %v, want ErrNoPath", err)
	}
	if _, err := s.FindPath(u, combat.Pos{X: 2, Y: 0}, 10); !errors.Is(err, ErrBlocked) {
		t.Errorf("FindPath() to a wall error = %v, want ErrBlocked", err)
	}

	s.Grid.Set(combat.Pos{X: 2, Y: 2}, combat.Wall)
	if _, err := s.FindPath(u, combat.Pos{X: 4, Y: 0}, 10); !errors.Is(err, ErrNoPath) {
		t.Errorf("FindPath() across a sealed wall error = %v, want ErrNoPath", err)
	}
}

func TestFindPathToOccupiedGoal(t *testing.T) {
	s := newTestSession(t, ".....")
	u := spawn(t, s, "hunter", combat.SideAlly, 0, 0, 5)
	prey := spawn(t, s, "prey", combat.SideEnemy, 4, 0, 5)
	spawn(t, s, "wall", combat.SideEnemy, 2, 0, 5)

	if _, err := s.FindPath(u, prey.Pos, 10); !errors.Is(err, ErrNoPath) {
		t.Errorf("FindPath() through a unit error = %v, want ErrNoPath", err)
	}
	s.Units[2].Entity.HP = 0
	path, err := s.FindPath(u, prey.Pos, 10)
	if err != nil || len(path) != 4 {
		t.Errorf("FindPath() = %v, %v; want 4 steps once the blocker is dead", path, err)
	}
}

func TestTryMoveUnit(t *testing.T) {
	s := newTestSession(t,
		"...",
		".#.",
		"...",
	)
	u := spawn(t, s, "scout", combat.SideAlly, 0, 0, 5)
	spawn(t, s, "friend", combat.SideAlly, 2, 0, 5)

	tests := []struct {
		name   string
		dx, dy int
		want   bool
	}{
		{"into wall", 1, 1, false},
		{"too far", 2, 0, false},
		{"no move", 0, 0, false},
		{"step right", 1, 0, true},
		{"into friend", 1, 0, false},
		{"out of bounds", 0, -1, false},
	}
	for _, tt := range tests {
		if got := s.TryMoveUnit(u, tt.dx, tt.dy); got != tt.want {
			t.Errorf("%s: TryMoveUnit() = %v, want %v", tt.name, got, tt.want)
		}
	}
	if u.Pos != (combat.Pos{X: 1, Y: 0}) || u.MovePoints != 2 {
		t.Errorf("unit at %v with %d MP, want {1 0} with 2", u.Pos, u.MovePoints)
	}

	u.MovePoints = 0
	if s.TryMoveUnit(u, -1, 0) {
		t.Error("TryMoveUnit() moved without movement points")
	}
}

func TestMoveProvokesAttackOfOpportunity(t *testing.T) {
	s := newTestSession(t,
		"...",
		"...",
		"...",
	)
	reactor := spawn(t, s, "orc", combat.SideEnemy, 1, 0, 12)
	reactor.Reactions[combat.ReactionAoO] = true
	s.StartTurn(reactor)
	mover := spawn(t, s, "knight", combat.SideAlly, 1, 1, 5)

	if !s.TryMoveUnit(mover, 0, 1) {
		t.Fatal("TryMoveUnit() = false")
	}
	if mover.HP() != 91 {
		t.Errorf("mover hp = %d, want 91", mover.HP())
	}
	if reactor.ReactionPoints != 0 {
		t.Errorf("ReactionPoints = %d, want 0", reactor.ReactionPoints)
	}
	if got := countEvents(s, "Reaction"); got != 1 {
		t.Errorf("%d Reaction events, want 1", got)
	}
	res := s.result(WinnerDraw, 1)
	if res.Reactions != 1 || res.DamageBySkill[combat.ReactionAoO] != 9 {
		t.Errorf("result reactions %d damage %v", res.Reactions, res.DamageBySkill)
	}
}

func TestEndTurnTicksStatuses(t *testing.T) {
	s := newTestSession(t, "...")
	u := spawn(t, s, "victim", combat.SideAlly, 0, 0, 5)
	u.Entity.HP = 4
	s.AddStatus(u, combat.StatusEffect{Name: combat.StatusPoisoned, Duration: 3, DamagePerTurn: 5})
	s.AddStatus(u, combat.StatusEffect{Name: combat.StatusStunned, Duration: 1, Stun: true})

	s.EndTurn(u)
	if u.Alive() {
		t.Errorf("hp = %d, want the poison to kill", u.HP())
	}
	if got := countEvents(s, "Kill"); got != 1 {
		t.Errorf("%d Kill events, want 1", got)
	}
	if got := countEvents(s, "ExpireStatus"); got != 1 {
		t.Errorf("%d ExpireStatus events, want 1", got)
	}
	if s.TurnsEnded() != 1 {
		t.Errorf("TurnsEnded() = %d, want 1", s.TurnsEnded())
	}
}

func TestStartTurn(t *testing.T) {
	s := newTestSession(t, "...")
	u := spawn(t, s, "u", combat.SideAlly, 0, 0, 5)
	u.MovePoints = 0
	u.SetCooldown("heal", 2)
	s.StartTurn(u)
	if u.MovePoints != u.MaxMovePoints || u.CooldownLeft("heal") != 1 {
		t.Errorf("after StartTurn MP %d cooldown %d, want %d and 1", u.MovePoints, u.CooldownLeft("heal"), u.MaxMovePoints)
	}
	if u.ReactionPoints != 0 {
		t.Errorf("ReactionPoints = %d without any reaction", u.ReactionPoints)
	}
}

func TestWinner(t *testing.T) {
	s := newTestSession(t, "...")
	a := spawn(t, s, "a", combat.SideAlly, 0, 0, 5)
	e := spawn(t, s, "e", combat.SideEnemy, 2, 0, 5)
	if got := s.Winner(); got != "" {
		t.Errorf("Winner() = %q while both sides stand", got)
	}
	e.Entity.HP = 0
	if got := s.Winner(); got != WinnerAlly {
		t.Errorf("Winner() = %q, want ally", got)
	}
	a.Entity.HP = 0
	if got := s.Winner(); got != WinnerDraw {
		t.Errorf("Winner() = %q, want draw", got)
	}
}
