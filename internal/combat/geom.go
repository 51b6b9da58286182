package combat

// Pos is a grid cell.
type Pos struct{ X, Y int }

func (a Pos) Add(b Pos) Pos { return Pos{a.X + b.X, a.Y + b.Y} }
func (a Pos) Sub(b Pos) Pos { return Pos{a.X - b.X, a.Y - b.Y} }

func Chebyshev(a, b Pos) int {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func Manhattan(a, b Pos) int { return abs(a.X-b.X) + abs(a.Y-b.Y) }

// Opposite returns the cell on the far side of target as seen from attacker.
func Opposite(attacker, target Pos) Pos {
	return target.Add(target.Sub(attacker))
}

// Orthogonal neighbour offsets: right, left, down, up.
var Orthogonal = [4]Pos{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Neighbors8 lists the eight surrounding offsets, orthogonals first.
var Neighbors8 = [8]Pos{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Sign returns the per-axis direction from a to b.
func Sign(a, b Pos) Pos { return Pos{sign(b.X - a.X), sign(b.Y - a.Y)} }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
