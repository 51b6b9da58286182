package config

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

var (
	ErrUnknownSkill     = errors.New("unknown skill")
	ErrUnknownArchetype = errors.New("unknown archetype")
)

// Check cross-validates the loaded files and reports every problem at once.
func Check(sc *SkillsConfig, ac *ArchetypesConfig, bc *ScenarioConfig) error {
	var err error
	skills := map[string]bool{}
	if sc != nil {
		for _, s := range sc.Skills {
			id := strings.TrimSpace(s.ID)
			if id == "" {
				err = multierr.Append(err, errors.New("skill entry missing id"))
				continue
			}
			if skills[id] {
				err = multierr.Append(err, fmt.Errorf("duplicate skill id %q", id))
			}
			skills[id] = true
			if s.AoERadius < 0 || s.Range < 0 || s.CD < 0 {
				err = multierr.Append(err, fmt.Errorf("skill %q: negative range, radius or cooldown", id))
			}
		}
	}
	archetypes := map[string]bool{}
	if ac != nil {
		for _, a := range ac.Archetypes {
			if archetypes[a.ID] {
				err = multierr.Append(err, fmt.Errorf("duplicate archetype id %q", a.ID))
			}
			archetypes[a.ID] = true
			for _, id := range a.Skills {
				if !skills[id] {
					err = multierr.Append(err, fmt.Errorf("archetype %q: %w %q", a.ID, ErrUnknownSkill, id))
				}
			}
			if a.MaxHP <= 0 {
				err = multierr.Append(err, fmt.Errorf("archetype %q: max_hp must be positive", a.ID))
			}
		}
	}
	if bc != nil {
		err = multierr.Append(err, checkScenario(bc, archetypes))
	}
	return err
}

func checkScenario(bc *ScenarioConfig, archetypes map[string]bool) error {
	var err error
	if bc.Width <= 0 || bc.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("scenario %q: grid size %dx%d", bc.ID, bc.Width, bc.Height))
	}
	if len(bc.Terrain) > 0 && len(bc.Terrain) != bc.Height {
		err = multierr.Append(err, fmt.Errorf("scenario %q: %d terrain rows, want %d", bc.ID, len(bc.Terrain), bc.Height))
	}
	for i, row := range bc.Terrain {
		if len(row) != bc.Width {
			err = multierr.Append(err, fmt.Errorf("scenario %q: terrain row %d has width %d, want %d", bc.ID, i, len(row), bc.Width))
		}
	}
	seen := map[[2]int]string{}
	for _, u := range bc.Units {
		if !archetypes[u.Archetype] {
			err = multierr.Append(err, fmt.Errorf("unit %q: %w %q", u.Name, ErrUnknownArchetype, u.Archetype))
		}
		if u.Side != "ally" && u.Side != "enemy" {
			err = multierr.Append(err, fmt.Errorf("unit %q: side %q is not ally or enemy", u.Name, u.Side))
		}
		if u.X < 0 || u.Y < 0 || u.X >= bc.Width || u.Y >= bc.Height {
			err = multierr.Append(err, fmt.Errorf("unit %q: position (%d,%d) outside grid", u.Name, u.X, u.Y))
		}
		key := [2]int{u.X, u.Y}
		if other, ok := seen[key]; ok {
			err = multierr.Append(err, fmt.Errorf("unit %q: shares cell with %q", u.Name, other))
		}
		seen[key] = u.Name
	}
	return err
}
