package battle

import (
	"testing"

	"github.com/yonti32-ux/roguelike-sub002/internal/combat"
)

func TestUseSkillHeal(t *testing.T) {
	s := newTestSession(t, ".....")
	heal := &combat.Skill{ID: "heal", Name: "Heal", Kind: combat.KindHeal, TargetMode: combat.TargetAlly,
		BasePower: 2, Range: 3, Metric: combat.MetricManhattan, Cooldown: 2, ManaCost: 5}
	priest := spawn(t, s, "priest", combat.SideAlly, 0, 0, 5)
	priest.Skills = []*combat.Skill{heal}
	hurt := spawn(t, s, "hurt", combat.SideAlly, 2, 0, 5)
	hurt.Entity.HP = 50
	foe := spawn(t, s, "foe", combat.SideEnemy, 4, 0, 5)

	if s.UseSkillOn(priest, heal, foe) {
		t.Fatal("UseSkillOn() healed an enemy")
	}
	if priest.OnCooldown("heal") || priest.Entity.Mana != 20 {
		t.Fatal("a rejected cast spent resources")
	}
	if !s.UseSkillOn(priest, heal, hurt) {
		t.Fatal("UseSkillOn() = false")
	}
	if hurt.HP() != 58 {
		t.Errorf("hp = %d, want 58", hurt.HP())
	}
	if priest.CooldownLeft("heal") != 2 || priest.Entity.Mana != 15 {
		t.Errorf("cooldown %d mana %d, want 2 and 15", priest.CooldownLeft("heal"), priest.Entity.Mana)
	}
	if s.UseSkillOn(priest, heal, hurt) {
		t.Error("UseSkillOn() ignored the cooldown")
	}
}

func TestUseSkillAoESplash(t *testing.T) {
	s := newTestSession(t,
		".....",
		".....",
		".....",
	)
	fireball := &combat.Skill{ID: "fireball", Name: "Fireball", Kind: combat.KindAttack, TargetMode: combat.TargetEnemyAoE,
		BasePower: 1.5, Range: 4, Metric: combat.MetricManhattan, AoERadius: 1, DamageType: combat.DamageFire}
	mage := spawn(t, s, "mage", combat.SideAlly, 0, 0, 10)
	mage.Skills = []*combat.Skill{fireball}
	e1 := spawn(t, s, "e1", combat.SideEnemy, 3, 0, 5)
	e2 := spawn(t, s, "e2", combat.SideEnemy, 3, 1, 5)
	e3 := spawn(t, s, "e3", combat.SideEnemy, 4, 2, 5)

	if !s.UseSkillOn(mage, fireball, e1) {
		t.Fatal("UseSkillOn() = false")
	}
	if e1.HP() != 85 || e2.HP() != 85 {
		t.Errorf("splash hp = %d, %d, want 85 each", e1.HP(), e2.HP())
	}
	if e3.HP() != 100 {
		t.Errorf("e3 outside the radius took damage: hp %d", e3.HP())
	}
	if got := s.result(WinnerDraw, 1).DamageBySkill["fireball"]; got != 30 {
		t.Errorf("fireball damage = %d, want 30", got)
	}
}

func TestUseSkillAppliesStatuses(t *testing.T) {
	s := newTestSession(t, "....")
	stun := &combat.Skill{ID: "stun_strike", Name: "Stun Strike", Kind: combat.KindControl, TargetMode: combat.TargetEnemy,
		BasePower: 1, Range: 1, Metric: combat.MetricChebyshev,
		Applies: []combat.AppliedState{{Status: combat.StatusEffect{Name: combat.StatusStunned, Duration: 1, Stun: true}}}}
	stance := &combat.Skill{ID: "counter_stance", Name: "Counter Stance", Kind: combat.KindDefense, TargetMode: combat.TargetSelf,
		Applies: []combat.AppliedState{{Status: combat.StatusEffect{Name: combat.StatusCounter, Duration: 2}, Self: true}}}
	u := spawn(t, s, "monk", combat.SideAlly, 0, 0, 10)
	u.Skills = []*combat.Skill{stun, stance}
	foe := spawn(t, s, "foe", combat.SideEnemy, 1, 0, 5)
	spawn(t, s, "guard", combat.SideEnemy, 2, 0, 5)

	if !s.UseSkillOn(u, stun, foe) {
		t.Fatal("UseSkillOn(stun_strike) = false")
	}
	if !foe.Stunned() || foe.HP() != 90 {
		t.Errorf("foe stunned %v hp %d, want stunned at 90", foe.Stunned(), foe.HP())
	}
	if !s.UseSkill(u, stance) {
		t.Fatal("UseSkill(counter_stance) = false")
	}
	if !u.HasStatus(combat.StatusCounter) {
		t.Error("counter_stance did not land on the caster")
	}
	if s.UseSkill(u, &combat.Skill{ID: "unknown", TargetMode: combat.TargetSelf}) {
		t.Error("UseSkill() cast a skill the unit does not own")
	}
}

func TestUseSkillLifeDrain(t *testing.T) {
	s := newTestSession(t, "....")
	drain := &combat.Skill{ID: "life_drain", Name: "Life Drain", Kind: combat.KindAttack, TargetMode: combat.TargetEnemy,
		BasePower: 1, Range: 3, Metric: combat.MetricManhattan, DamageType: combat.DamageMagic}
	u := spawn(t, s, "lich", combat.SideEnemy, 0, 0, 10)
	u.Skills = []*combat.Skill{drain}
	u.Entity.HP = 50
	foe := spawn(t, s, "foe", combat.SideAlly, 2, 0, 5)

	if !s.UseSkillOn(u, drain, foe) {
		t.Fatal("UseSkillOn() = false")
	}
	if foe.HP() != 90 || u.HP() != 55 {
		t.Errorf("foe hp %d caster hp %d, want 90 and 55", foe.HP(), u.HP())
	}
}

func TestUseSkillAround(t *testing.T) {
	s := newTestSession(t,
		"....",
		"....",
		"....",
	)
	cleave := &combat.Skill{ID: "cleave", Name: "Cleave", Kind: combat.KindAttack, TargetMode: combat.TargetAround,
		BasePower: 1, Range: 1, Metric: combat.MetricChebyshev}
	u := spawn(t, s, "orc", combat.SideEnemy, 1, 1, 10)
	u.Skills = []*combat.Skill{cleave}
	a := spawn(t, s, "a", combat.SideAlly, 0, 0, 5)
	b := spawn(t, s, "b", combat.SideAlly, 2, 2, 5)
	far := spawn(t, s, "far", combat.SideAlly, 3, 2, 5)

	if !s.UseSkill(u, cleave) {
		t.Fatal("UseSkill() = false")
	}
	if a.HP() >= 100 || b.HP() >= 100 || far.HP() != 100 {
		t.Errorf("hp a=%d b=%d far=%d", a.HP(), b.HP(), far.HP())
	}
}
