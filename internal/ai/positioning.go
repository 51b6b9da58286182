package ai

import (
	"github.com/yonti32-ux/roguelike-sub002/internal/combat"
	"github.com/yonti32-ux/roguelike-sub002/internal/util"
)

// PositionCandidate is a scored cell considered during one search.
type PositionCandidate struct {
	X, Y  int
	Score float64
}

func (c PositionCandidate) Pos() combat.Pos { return combat.Pos{X: c.X, Y: c.Y} }

// Positioner runs the grid searches behind flanking, area and range placement.
type Positioner struct {
	Scene Scene
	Rng   util.Source
}

func (p *Positioner) inBounds(c combat.Pos) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < p.Scene.Width() && c.Y < p.Scene.Height()
}

// open reports a cell u could stand on: in bounds, not a wall, and empty or u's own.
func (p *Positioner) open(c combat.Pos, u *combat.Unit) bool {
	if !p.inBounds(c) || p.Scene.CellBlocked(c) {
		return false
	}
	o := p.Scene.UnitAt(c)
	return o == nil || o == u
}

// FindFlankingPosition tries the four cells orthogonally adjacent to target and
// returns the first one u could flank from within maxRange of where it stands.
// With shuffle set the order is randomized.
func (p *Positioner) FindFlankingPosition(u, target *combat.Unit, maxRange int, shuffle bool) (combat.Pos, bool) {
	dirs := combat.Orthogonal
	if shuffle && p.Rng != nil {
		p.Rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })
	}
	for _, d := range dirs {
		c := target.Pos.Add(d)
		if !combat.IsFlankingFrom(c, target, p.Scene) {
			continue
		}
		if !p.open(c, u) {
			continue
		}
		if combat.Chebyshev(u.Pos, c) > maxRange {
			continue
		}
		return c, true
	}
	return combat.Pos{}, false
}

// FindOptimalAoEPosition scans a window around the targets' centroid and returns the
// cell whose radius covers the most targets. The first best cell wins.
func (p *Positioner) FindOptimalAoEPosition(u *combat.Unit, targets []*combat.Unit, radius int) (PositionCandidate, bool) {
	if len(targets) == 0 {
		return PositionCandidate{}, false
	}
	center := centroid(targets)
	var best PositionCandidate
	found := false
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			c := center.Add(combat.Pos{X: dx, Y: dy})
			if !p.inBounds(c) || p.Scene.CellBlocked(c) {
				continue
			}
			n := 0
			for _, t := range targets {
				if combat.Manhattan(c, t.Pos) <= radius {
					n++
				}
			}
			if n > 0 && (!found || float64(n) > best.Score) {
				best = PositionCandidate{X: c.X, Y: c.Y, Score: float64(n)}
				found = true
			}
		}
	}
	return best, found
}

// FindOptimalRangePosition picks the neighbouring cell that brings u closest to
// preferred Manhattan distance from target without leaving weapon range.
// It returns false when u is already at the preferred distance.
func (p *Positioner) FindOptimalRangePosition(u, target *combat.Unit, preferred, weaponRange int) (combat.Pos, bool) {
	if combat.Manhattan(u.Pos, target.Pos) == preferred {
		return combat.Pos{}, false
	}
	var best combat.Pos
	bestDiff := -1
	for _, d := range combat.Neighbors8 {
		c := u.Pos.Add(d)
		if !p.open(c, u) {
			continue
		}
		nd := combat.Manhattan(c, target.Pos)
		if nd > weaponRange {
			continue
		}
		diff := abs(nd - preferred)
		if bestDiff < 0 || diff < bestDiff {
			best, bestDiff = c, diff
		}
	}
	return best, bestDiff >= 0
}

// FindFormationPosition looks around the allies' centroid for the cell whose distances
// to every ally are closest to spacing.
func (p *Positioner) FindFormationPosition(u *combat.Unit, allies []*combat.Unit, spacing int) (combat.Pos, bool) {
	var others []*combat.Unit
	for _, a := range allies {
		if a != u && a.Alive() {
			others = append(others, a)
		}
	}
	if len(others) == 0 {
		return combat.Pos{}, false
	}
	center := centroid(others)
	var best combat.Pos
	bestScore := -1
	for dy := -spacing; dy <= spacing; dy++ {
		for dx := -spacing; dx <= spacing; dx++ {
			c := center.Add(combat.Pos{X: dx, Y: dy})
			if !p.open(c, u) {
				continue
			}
			score := 0
			for _, a := range others {
				score += abs(combat.Manhattan(c, a.Pos) - spacing)
			}
			if bestScore < 0 || score < bestScore {
				best, bestScore = c, score
			}
		}
	}
	return best, bestScore >= 0
}

func centroid(units []*combat.Unit) combat.Pos {
	var sx, sy int
	for _, u := range units {
		sx += u.Pos.X
		sy += u.Pos.Y
	}
	return combat.Pos{X: sx / len(units), Y: sy / len(units)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
