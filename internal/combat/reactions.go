package combat

// ReactionResolver fires free attacks triggered by enemy movement.
type ReactionResolver struct {
	Resolver *Resolver
	Emit     func(ev Event)
	Turn     func() int

	OnReaction func(kind string, reactor, mover *Unit, hit Hit)
}

func NewReactionResolver(r *Resolver) *ReactionResolver {
	return &ReactionResolver{Resolver: r, Emit: r.Emit, Turn: r.Turn}
}

// GrantReactionPoints gives a unit its single reaction point for the turn.
func GrantReactionPoints(u *Unit) {
	if u.HasAnyReaction() {
		u.ReactionPoints = 1
	}
}

// OnMove checks every reactor against a step from -> to and resolves an attack of
// opportunity for each one the mover disengaged from. It returns the number fired.
func (rr *ReactionResolver) OnMove(mover *Unit, from, to Pos, reactors []*Unit) int {
	fired := 0
	for _, re := range reactors {
		if !mover.Alive() {
			break
		}
		if re == mover || !re.Alive() || re.Side == mover.Side {
			continue
		}
		if Chebyshev(re.Pos, from) != 1 || Chebyshev(re.Pos, to) <= 1 {
			continue
		}
		if !re.CanReact(ReactionAoO) || re.Stunned() {
			continue
		}
		re.ReactionPoints--

		base := rr.Resolver.Tuning.ReactionMultiplier * float64(re.AttackPower())
		hit := rr.Resolver.Resolve(re, mover, base, rr.Resolver.RollCrit(), DamagePhysical, 1)
		fired++

		if rr.Emit != nil {
			turn := 0
			if rr.Turn != nil {
				turn = rr.Turn()
			}
			rr.Emit(Event{Turn: turn, Type: "Reaction", Payload: map[string]any{
				"kind": ReactionAoO, "reactor": re.Name, "mover": mover.Name,
				"damage": hit.Damage, "dodged": hit.Dodged,
			}})
		}
		if rr.OnReaction != nil {
			rr.OnReaction(ReactionAoO, re, mover, hit)
		}
	}
	return fired
}
