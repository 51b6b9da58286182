package combat

import (
	"testing"

	"github.com/yonti32-ux/roguelike-sub002/internal/config"
)

func TestNewSkillBookDefaults(t *testing.T) {
	sb := NewSkillBook(&config.SkillsConfig{Skills: []config.Skill{
		{ID: "heavy_slam", BasePower: 1.5, Range: 1},
		{ID: "heal", BasePower: 2, Range: 3},
		{ID: "shield_wall", Applies: []config.AppliedState{{ID: "shield_wall", Duration: 2, IncomingMult: 0.6}}},
		{ID: "fireball", Kind: "Attack", TargetMode: "enemy_aoe", AoERadius: 1, Range: 4, RangeMetric: "chebyshev"},
		{ID: "fear_scream"},
	}})

	tests := []struct {
		id     string
		kind   SkillKind
		mode   TargetMode
		metric RangeMetric
		dt     DamageType
	}{
		{"heavy_slam", KindAttack, TargetEnemy, MetricManhattan, DamagePhysical},
		{"heal", KindHeal, TargetAlly, MetricManhattan, DamagePhysical},
		{"shield_wall", KindDefense, TargetSelf, MetricManhattan, DamagePhysical},
		{"fireball", KindAttack, TargetEnemyAoE, MetricChebyshev, DamageFire},
		{"fear_scream", KindControl, TargetAround, MetricManhattan, DamagePhysical},
	}
	for _, tt := range tests {
		sk := sb.Get(tt.id)
		if sk == nil {
			t.Fatalf("Get(%q) = nil", tt.id)
		}
		if sk.Kind != tt.kind || sk.TargetMode != tt.mode || sk.Metric != tt.metric || sk.DamageType != tt.dt {
			t.Errorf("%s = kind %s mode %s metric %s type %s, want %s %s %s %s",
				tt.id, sk.Kind, sk.TargetMode, sk.Metric, sk.DamageType, tt.kind, tt.mode, tt.metric, tt.dt)
		}
	}

	if got := len(sb.Get("shield_wall").Applies); got != 1 {
		t.Errorf("shield_wall applies %d statuses, want 1", got)
	}
	all := sb.All()
	if len(all) != 5 || all[0].ID != "heavy_slam" || all[4].ID != "fear_scream" {
		t.Errorf("All() order wrong: %v", all)
	}
	got := sb.Instantiate([]string{"heal", "missing", "heavy_slam"})
	if len(got) != 2 || got[0].ID != "heal" || got[1].ID != "heavy_slam" {
		t.Errorf("Instantiate() = %v, want [heal heavy_slam]", got)
	}
}

func TestSkillInRange(t *testing.T) {
	diag := &Skill{Range: 1, Metric: MetricChebyshev}
	cross := &Skill{Range: 1, Metric: MetricManhattan}
	if !diag.InRange(Pos{0, 0}, Pos{1, 1}) {
		t.Error("chebyshev reach 1 should cover the diagonal")
	}
	if cross.InRange(Pos{0, 0}, Pos{1, 1}) {
		t.Error("manhattan reach 1 should not cover the diagonal")
	}
}
