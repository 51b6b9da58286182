package battle

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/yonti32-ux/roguelike-sub002/internal/combat"
)

type UnitSummary struct {
	Name  string `json:"name"`
	Side  string `json:"side"`
	HP    int    `json:"hp"`
	MaxHP int    `json:"max_hp"`
}

type Result struct {
	ID            string         `json:"id"`
	Winner        string         `json:"winner"`
	Rounds        int            `json:"rounds"`
	DamageByUnit  map[string]int `json:"damage_by_unit"`
	DamageBySkill map[string]int `json:"damage_by_skill"`
	Kills         map[string]int `json:"kills,omitempty"`
	Reactions     int            `json:"reactions"`
	Survivors     []UnitSummary  `json:"survivors"`
	Events        []combat.Event `json:"events,omitempty"`
}

const (
	WinnerAlly  = "ally"
	WinnerEnemy = "enemy"
	WinnerDraw  = "draw"
)

// StartTurn readies u: cooldowns tick, movement refills and reactions recharge.
func (s *Session) StartTurn(u *combat.Unit) {
	u.TickCooldowns()
	u.Refill()
	combat.GrantReactionPoints(u)
	s.emit(combat.Event{Turn: s.round, Type: "StartTurn", Payload: map[string]any{
		"id": u.Name, "hp": u.HP(), "mp": u.MovePoints,
	}})
}

// Winner reports the side left standing, a draw if nobody is, or "" while both fight.
func (s *Session) Winner() string {
	allies, enemies := len(s.Living(combat.SideAlly)), len(s.Living(combat.SideEnemy))
	switch {
	case allies == 0 && enemies == 0:
		return WinnerDraw
	case enemies == 0:
		return WinnerAlly
	case allies == 0:
		return WinnerEnemy
	}
	return ""
}

// Run plays rounds in arena order until one side is wiped out or maxRounds pass.
// A battle still running after maxRounds is a draw.
func (s *Session) Run(maxRounds int) (Result, error) {
	if s.AI == nil {
		return Result{}, errors.New("battle has no ai attached")
	}
	if maxRounds <= 0 {
		return Result{}, fmt.Errorf("max rounds %d must be positive", maxRounds)
	}
	s.AI.Coord.Reset()
	s.Logger.Info("battle start", zap.Int("units", len(s.Units)), zap.Int("max_rounds", maxRounds))

	winner := s.Winner()
	rounds := 0
	for r := 1; r <= maxRounds && winner == ""; r++ {
		s.round, rounds = r, r
		for _, u := range s.Units {
			if !u.Alive() {
				continue
			}
			s.StartTurn(u)
			s.AI.ExecuteAITurn(u)
			if winner = s.Winner(); winner != "" {
				break
			}
		}
		s.Logger.Debug("round done",
			zap.Int("round", r),
			zap.Int("allies", len(s.Living(combat.SideAlly))),
			zap.Int("enemies", len(s.Living(combat.SideEnemy))))
	}
	if winner == "" {
		winner = WinnerDraw
	}
	res := s.result(winner, rounds)
	s.Logger.Info("battle over", zap.String("winner", winner), zap.Int("rounds", rounds), zap.Int("reactions", s.reactions))
	return res, nil
}

func (s *Session) result(winner string, rounds int) Result {
	res := Result{
		ID:            s.ID.String(),
		Winner:        winner,
		Rounds:        rounds,
		DamageByUnit:  s.damageByUnit,
		DamageBySkill: s.damageBySkill,
		Kills:         s.kills,
		Reactions:     s.reactions,
		Events:        s.events,
	}
	for _, u := range s.Units {
		if u.Alive() {
			res.Survivors = append(res.Survivors, UnitSummary{Name: u.Name, Side: u.Side.String(), HP: u.HP(), MaxHP: u.MaxHP()})
		}
	}
	return res
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
