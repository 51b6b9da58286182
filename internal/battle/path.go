package battle

import (
	"fmt"

	"github.com/yonti32-ux/roguelike-sub002/internal/combat"
)

// FindPath runs an 8-way breadth-first search from u to goal, at most maxSteps long.
// The goal cell may be occupied so a unit can path to the enemy it chases.
// The returned path excludes u's own cell.
func (s *Session) FindPath(u *combat.Unit, goal combat.Pos, maxSteps int) ([]combat.Pos, error) {
	if s.Grid.Blocked(goal) {
		return nil, fmt.Errorf("path to %v: %w", goal, ErrBlocked)
	}
	start := u.Pos
	if start == goal {
		return nil, nil
	}
	prev := map[combat.Pos]combat.Pos{start: start}
	depth := map[combat.Pos]int{start: 0}
	queue := []combat.Pos{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if depth[cur] >= maxSteps {
			continue
		}
		for _, d := range combat.Neighbors8 {
			next := cur.Add(d)
			if _, seen := prev[next]; seen {
				continue
			}
			if s.Grid.Blocked(next) {
				continue
			}
			if next != goal {
				if o := s.UnitAt(next); o != nil && o != u {
					continue
				}
			}
			prev[next] = cur
			depth[next] = depth[cur] + 1
			if next == goal {
				return walkBack(prev, start, goal), nil
			}
			queue = append(queue, next)
		}
	}
	return nil, fmt.Errorf("path %v -> %v within %d steps: %w", start, goal, maxSteps, ErrNoPath)
}

func walkBack(prev map[combat.Pos]combat.Pos, start, goal combat.Pos) []combat.Pos {
	var rev []combat.Pos
	for p := goal; p != start; p = prev[p] {
		rev = append(rev, p)
	}
	out := make([]combat.Pos, len(rev))
	for i, p := range rev {
		out[len(rev)-1-i] = p
	}
	return out
}
