package ai

import "github.com/yonti32-ux/roguelike-sub002/internal/combat"

// Scene is the battle the AI plays in. The AI never mutates units directly except
// through these calls and the unit's own movement budget.
type Scene interface {
	combat.Board

	Log(msg string)
	EndTurn(u *combat.Unit)

	TryMoveUnit(u *combat.Unit, dx, dy int) bool
	IsStunned(u *combat.Unit) bool
	AddStatus(u *combat.Unit, st combat.StatusEffect)

	// UseSkill fires a skill that needs no picked target (self, allies, around).
	UseSkill(u *combat.Unit, sk *combat.Skill) bool
	UseSkillOn(u *combat.Unit, sk *combat.Skill, target *combat.Unit) bool

	WeaponRange(u *combat.Unit) int
	ApplyDamage(attacker, target *combat.Unit, base float64, dt combat.DamageType) int
	IsFlanking(attacker, target *combat.Unit) bool
	HasCover(attacker, target *combat.Unit) bool

	// FindPath returns the cells from the unit's position (exclusive) to goal,
	// searching at most maxSteps steps.
	FindPath(u *combat.Unit, goal combat.Pos, maxSteps int) ([]combat.Pos, error)
	CellBlocked(p combat.Pos) bool

	Living(side combat.Side) []*combat.Unit
	Width() int
	Height() int
}
