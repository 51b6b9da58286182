package combat

import "github.com/yonti32-ux/roguelike-sub002/internal/config"

// scriptedRng replays fixed Float64 draws, then returns 0.99 so unscripted rolls fail.
type scriptedRng struct {
	floats []float64
	draws  int
}

func (r *scriptedRng) Float64() float64 {
	r.draws++
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRng) Intn(int) int                { return 0 }
func (r *scriptedRng) Shuffle(int, func(int, int)) {}

type testBoard struct {
	units []*Unit
	cover map[Pos]bool
}

func (b *testBoard) UnitAt(p Pos) *Unit {
	for _, u := range b.units {
		if u.Alive() && u.Pos == p {
			return u
		}
	}
	return nil
}

func (b *testBoard) CoverAt(p Pos) bool { return b.cover[p] }

func newTestUnit(h int, side Side, pos Pos, atk, def int) *Unit {
	return NewUnit(Handle(h), "u"+string(rune('a'+h)), side, pos, &Entity{
		HP: 100, MaxHP: 100, Attack: atk, Defense: def,
	})
}

func newTestResolver(rng *scriptedRng, b *testBoard) (*Resolver, *[]Event) {
	var events []Event
	r := NewResolver(config.DefaultTuning().Combat, rng, b, func() int { return 1 }, func(ev Event) {
		events = append(events, ev)
	})
	return r, &events
}
