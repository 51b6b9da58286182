package combat

// Terrain classifies one grid cell.
type Terrain byte

const (
	Open  Terrain = iota
	Wall          // impassable
	Cover         // passable, shields against ranged attacks
)

type Grid struct {
	W, H  int
	Cells []Terrain // row-major: Cells[y*W + x]
}

func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, Cells: make([]Terrain, w*h)}
}

// ParseGrid builds a grid from rows of '.', '#' (wall) and '^' (cover).
// Missing rows or columns stay open.
func ParseGrid(w, h int, rows []string) *Grid {
	g := NewGrid(w, h)
	for y, row := range rows {
		if y >= h {
			break
		}
		for x, ch := range row {
			if x >= w {
				break
			}
			switch ch {
			case '#':
				g.Cells[y*w+x] = Wall
			case '^':
				g.Cells[y*w+x] = Cover
			}
		}
	}
	return g
}

func (g *Grid) InBounds(p Pos) bool {
	return p.X >= 0 && p.X < g.W && p.Y >= 0 && p.Y < g.H
}

// At returns the terrain at p. Out-of-bounds cells read as Wall.
func (g *Grid) At(p Pos) Terrain {
	if !g.InBounds(p) {
		return Wall
	}
	return g.Cells[p.Y*g.W+p.X]
}

func (g *Grid) Set(p Pos, t Terrain) {
	if g.InBounds(p) {
		g.Cells[p.Y*g.W+p.X] = t
	}
}

func (g *Grid) Blocked(p Pos) bool { return g.At(p) == Wall }
func (g *Grid) CoverAt(p Pos) bool { return g.At(p) == Cover }
