package ai

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/yonti32-ux/roguelike-sub002/internal/combat"
)

func TestEvaluateSkillValue(t *testing.T) {
	slam := &combat.Skill{ID: "heavy_slam", BasePower: 1.5, Cooldown: 2, TargetMode: combat.TargetEnemy, Range: 1}
	rage := &combat.Skill{ID: "berserker_rage", Cooldown: 5, TargetMode: combat.TargetSelf}
	mark := &combat.Skill{ID: "mark_target", TargetMode: combat.TargetEnemy, Range: 3}
	allyMark := &combat.Skill{ID: "mark_target", TargetMode: combat.TargetAllies, Range: 3}
	fireball := &combat.Skill{ID: "fireball", BasePower: 2, TargetMode: combat.TargetEnemyAoE, AoERadius: 1, Range: 4}
	custom := &combat.Skill{ID: "rally", TargetMode: combat.TargetAllies,
		Bonuses: []combat.BonusRule{{When: "Allies >= 2", Add: 7}}}

	sp, err := NewSkillPrioritizer([]*combat.Skill{custom}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewSkillPrioritizer() error = %v", err)
	}

	u := newUnit(0, "orc", combat.SideEnemy, combat.Pos{}, 10)
	u.Skills = []*combat.Skill{slam, rage, mark, fireball, custom}
	foe := newUnit(1, "knight", combat.SideAlly, combat.Pos{X: 1}, 10)
	foe2 := newUnit(2, "knight", combat.SideAlly, combat.Pos{X: 2}, 10)
	pal := newUnit(3, "orc", combat.SideEnemy, combat.Pos{Y: 1}, 10)

	tests := []struct {
		name    string
		sk      *combat.Skill
		hp      float64
		enemies []*combat.Unit
		allies  []*combat.Unit
		want    float64
	}{
		{"no targets", slam, 1, nil, nil, 15},
		{"enemy in range", slam, 1, []*combat.Unit{foe}, nil, 30},
		{"self buff healthy", rage, 1, nil, nil, -5},
		{"self buff desperate", rage, 0.2, nil, nil, 60},
		{"mark with slam owner", mark, 1, []*combat.Unit{foe}, nil, 30},
		{"debuff bonus needs an enemy mode", allyMark, 1, []*combat.Unit{foe}, nil, 5},
		{"aoe per target", fireball, 1, []*combat.Unit{foe, foe2}, nil, 55},
		{"declared bonus", custom, 1, nil, []*combat.Unit{pal, pal}, 7},
	}
	for _, tt := range tests {
		if got := sp.EvaluateSkillValue(u, tt.sk, tt.hp, tt.enemies, tt.allies); got != tt.want {
			t.Errorf("%s: EvaluateSkillValue() = %v, want %v", tt.name, got, tt.want)
		}
	}

	u.SetCooldown(slam.ID, 2)
	if got := sp.EvaluateSkillValue(u, slam, 1, []*combat.Unit{foe}, nil); got != -100 {
		t.Errorf("EvaluateSkillValue() on cooldown = %v, want -100", got)
	}
}

func TestGetBestSkill(t *testing.T) {
	sp, err := NewSkillPrioritizer(nil, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewSkillPrioritizer() error = %v", err)
	}
	weak := &combat.Skill{ID: "jab", BasePower: 1, TargetMode: combat.TargetEnemy}
	strong := &combat.Skill{ID: "smash", BasePower: 3, TargetMode: combat.TargetEnemy}
	u := newUnit(0, "orc", combat.SideEnemy, combat.Pos{}, 10)
	u.Skills = []*combat.Skill{weak, strong}

	if got := sp.GetBestSkill(u, u.Skills, 1, nil, nil); got != strong {
		t.Errorf("GetBestSkill() = %v, want smash", got)
	}
	u.SetCooldown("jab", 1)
	u.SetCooldown("smash", 1)
	if got := sp.GetBestSkill(u, u.Skills, 1, nil, nil); got != nil {
		t.Errorf("GetBestSkill() = %v, want nil when nothing is ready", got.ID)
	}
}

func TestNewSkillPrioritizerRejectsBadRule(t *testing.T) {
	bad := &combat.Skill{ID: "oops", Bonuses: []combat.BonusRule{{When: "HPRatio <", Add: 1}}}
	if _, err := NewSkillPrioritizer([]*combat.Skill{bad}, nil); err == nil {
		t.Error("NewSkillPrioritizer() accepted a malformed rule")
	}
	nonBool := &combat.Skill{ID: "oops", Bonuses: []combat.BonusRule{{When: "HPRatio + 1", Add: 1}}}
	if _, err := NewSkillPrioritizer([]*combat.Skill{nonBool}, nil); err == nil {
		t.Error("NewSkillPrioritizer() accepted a non-boolean rule")
	}
}
