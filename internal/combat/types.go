package combat

type Event struct {
	Turn    int            `json:"turn"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

type Side int

const (
	SideAlly Side = iota
	SideEnemy
)

func (s Side) String() string {
	if s == SideAlly {
		return "ally"
	}
	return "enemy"
}

// Handle is a unit's stable index in the battle arena.
type Handle int

type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamageFire     DamageType = "fire"
	DamageIce      DamageType = "ice"
	DamagePoison   DamageType = "poison"
	DamageMagic    DamageType = "magic"
)

// ReactionAoO is the attack-of-opportunity reaction capability.
const ReactionAoO = "attack_of_opportunity"

// Well-known status names the AI and resolver look at.
const (
	StatusEmpowered    = "empowered"
	StatusWarCry       = "war_cry"
	StatusMarked       = "marked"
	StatusCursed       = "cursed"
	StatusStunned      = "stunned"
	StatusPoisoned     = "poisoned"
	StatusRegenerating = "regenerating"
	StatusCounter      = "counter_stance"
)

// Entity carries the combatant stats a battle reads and mutates.
type Entity struct {
	ID         string
	Archetype  string
	HP         int
	MaxHP      int
	Attack     int
	Defense    int
	Dodge      float64
	SkillPower float64
	Mana       int
	MaxMana    int
	Stamina    int
	MaxStamina int

	// Resist holds damage multipliers per type; missing entries mean 1.0.
	Resist map[DamageType]float64
}

type StatusEffect struct {
	Name          string
	Duration      int
	OutgoingMult  float64
	IncomingMult  float64
	Stun          bool
	DamagePerTurn int
	Stacks        int
}

func (s StatusEffect) outgoing() float64 {
	if s.OutgoingMult == 0 {
		return 1
	}
	return s.OutgoingMult
}

func (s StatusEffect) incoming() float64 {
	if s.IncomingMult == 0 {
		return 1
	}
	return s.IncomingMult
}

// Unit is a combatant inside one battle session.
type Unit struct {
	Handle Handle
	Name   string
	Side   Side
	Pos    Pos
	Entity *Entity

	Statuses  []StatusEffect
	Cooldowns map[string]int
	Skills    []*Skill

	MovePoints    int
	MaxMovePoints int
	WeaponRange   int

	Reactions      map[string]bool
	ReactionPoints int
}

func NewUnit(h Handle, name string, side Side, pos Pos, ent *Entity) *Unit {
	if ent.Resist == nil {
		ent.Resist = map[DamageType]float64{}
	}
	return &Unit{
		Handle: h, Name: name, Side: side, Pos: pos, Entity: ent,
		Cooldowns:   map[string]int{},
		Reactions:   map[string]bool{},
		WeaponRange: 1,
	}
}

func (u *Unit) Alive() bool      { return u.Entity.HP > 0 }
func (u *Unit) HP() int          { return u.Entity.HP }
func (u *Unit) MaxHP() int       { return u.Entity.MaxHP }
func (u *Unit) AttackPower() int { return u.Entity.Attack }

// HPRatio is hp/max_hp, or 1.0 when max_hp is not positive.
func (u *Unit) HPRatio() float64 {
	if u.Entity.MaxHP <= 0 {
		return 1.0
	}
	return float64(u.Entity.HP) / float64(u.Entity.MaxHP)
}

// Damage lowers hp, never below zero, and returns the hp actually removed.
func (u *Unit) Damage(n int) int {
	if n <= 0 {
		return 0
	}
	if n > u.Entity.HP {
		n = u.Entity.HP
	}
	u.Entity.HP -= n
	return n
}

// Heal raises hp up to max_hp and returns the hp actually restored.
func (u *Unit) Heal(n int) int {
	if n <= 0 || !u.Alive() {
		return 0
	}
	if u.Entity.HP+n > u.Entity.MaxHP {
		n = u.Entity.MaxHP - u.Entity.HP
	}
	u.Entity.HP += n
	return n
}

func (u *Unit) Status(name string) *StatusEffect {
	for i := range u.Statuses {
		if u.Statuses[i].Name == name {
			return &u.Statuses[i]
		}
	}
	return nil
}

func (u *Unit) HasStatus(name string) bool { return u.Status(name) != nil }

// AddStatus applies st; re-applying a name refreshes its duration and adds a stack.
func (u *Unit) AddStatus(st StatusEffect) {
	if st.Stacks <= 0 {
		st.Stacks = 1
	}
	if cur := u.Status(st.Name); cur != nil {
		if st.Duration > cur.Duration {
			cur.Duration = st.Duration
		}
		cur.Stacks += st.Stacks
		return
	}
	u.Statuses = append(u.Statuses, st)
}

func (u *Unit) RemoveStatus(name string) bool {
	for i := range u.Statuses {
		if u.Statuses[i].Name == name {
			u.Statuses = append(u.Statuses[:i], u.Statuses[i+1:]...)
			return true
		}
	}
	return false
}

// TickStatuses runs one owner turn: per-turn damage, duration countdown, expiry.
// It returns the damage dealt and the names that expired.
func (u *Unit) TickStatuses() (int, []string) {
	dealt := 0
	var expired []string
	dst := u.Statuses[:0]
	for _, st := range u.Statuses {
		if st.DamagePerTurn > 0 && u.Alive() {
			dealt += u.Damage(st.DamagePerTurn * max(st.Stacks, 1))
		}
		st.Duration--
		if st.Duration > 0 {
			dst = append(dst, st)
		} else {
			expired = append(expired, st.Name)
		}
	}
	u.Statuses = dst
	return dealt, expired
}

func (u *Unit) OutgoingMult() float64 {
	m := 1.0
	for _, st := range u.Statuses {
		m *= st.outgoing()
	}
	return m
}

func (u *Unit) IncomingMult() float64 {
	m := 1.0
	for _, st := range u.Statuses {
		m *= st.incoming()
	}
	return m
}

func (u *Unit) Stunned() bool {
	for _, st := range u.Statuses {
		if st.Stun || st.Name == StatusStunned {
			return true
		}
	}
	return false
}

// Resistance returns the damage multiplier for dt, 1.0 when unset.
func (u *Unit) Resistance(dt DamageType) float64 {
	if v, ok := u.Entity.Resist[dt]; ok {
		return v
	}
	return 1.0
}

func (u *Unit) Skill(id string) *Skill {
	for _, sk := range u.Skills {
		if sk.ID == id {
			return sk
		}
	}
	return nil
}

func (u *Unit) HasSkill(id string) bool { return u.Skill(id) != nil }

func (u *Unit) CooldownLeft(id string) int { return u.Cooldowns[id] }

func (u *Unit) OnCooldown(id string) bool { return u.Cooldowns[id] > 0 }

func (u *Unit) SetCooldown(id string, turns int) {
	if turns <= 0 {
		delete(u.Cooldowns, id)
		return
	}
	u.Cooldowns[id] = turns
}

func (u *Unit) TickCooldowns() {
	for id, left := range u.Cooldowns {
		if left <= 1 {
			delete(u.Cooldowns, id)
			continue
		}
		u.Cooldowns[id] = left - 1
	}
}

// CanAfford reports whether the entity has the mana and stamina sk costs.
func (u *Unit) CanAfford(sk *Skill) bool {
	return u.Entity.Mana >= sk.ManaCost && u.Entity.Stamina >= sk.StaminaCost
}

// Ready reports a skill that is owned, off cooldown and affordable.
func (u *Unit) Ready(sk *Skill) bool {
	return sk != nil && !u.OnCooldown(sk.ID) && u.CanAfford(sk)
}

func (u *Unit) HasAnyReaction() bool {
	for _, ok := range u.Reactions {
		if ok {
			return true
		}
	}
	return false
}

func (u *Unit) CanReact(kind string) bool {
	return u.Reactions[kind] && u.ReactionPoints > 0
}

// Refill restores movement points for a new turn.
func (u *Unit) Refill() {
	u.MovePoints = u.MaxMovePoints
}
