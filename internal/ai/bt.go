package ai

import "github.com/yonti32-ux/roguelike-sub002/internal/combat"

type BTStatus int

const (
	BTSuccess BTStatus = iota
	BTFailure
)

type BTNode interface{ Tick(*Blackboard) BTStatus }

// Blackboard is the state one turn's tree reads and writes.
type Blackboard struct {
	B       *BattleAI
	U       *combat.Unit
	S       Strategy
	HPRatio float64

	// Done is the action the tree settled on.
	Done Action
}

type Selector struct{ Children []BTNode }

func (s *Selector) Tick(bb *Blackboard) BTStatus {
	for _, ch := range s.Children {
		if ch.Tick(bb) == BTSuccess {
			return BTSuccess
		}
	}
	return BTFailure
}

type Sequence struct{ Children []BTNode }

func (s *Sequence) Tick(bb *Blackboard) BTStatus {
	for _, ch := range s.Children {
		if ch.Tick(bb) != BTSuccess {
			return BTFailure
		}
	}
	return BTSuccess
}

type Condition func(*Blackboard) bool
type CondNode struct{ Fn Condition }

func (c *CondNode) Tick(bb *Blackboard) BTStatus {
	if c.Fn(bb) {
		return BTSuccess
	}
	return BTFailure
}

// ActionNode runs Fn and, on success, records Act as the turn's action.
type ActionNode struct {
	Act Action
	Fn  func(*Blackboard) bool
}

func (a *ActionNode) Tick(bb *Blackboard) BTStatus {
	if a.Fn(bb) {
		bb.Done = a.Act
		return BTSuccess
	}
	return BTFailure
}
