package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadTuning overlays path on the defaults. A missing file yields the defaults.
func LoadTuning(path string) (*TuningConfig, error) {
	tc := DefaultTuning()
	if err := loadYAML(path, tc); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	tc.Validate()
	return tc, nil
}

func LoadAll(dir string) (*TuningConfig, *SkillsConfig, *ArchetypesConfig, *ScenarioConfig, error) {
	var sc SkillsConfig
	var ac ArchetypesConfig
	var bc ScenarioConfig
	tc, err := LoadTuning(filepath.Join(dir, "tuning.yaml"))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := loadYAML(filepath.Join(dir, "skills.yaml"), &sc); err != nil {
		return nil, nil, nil, nil, err
	}
	if err := loadYAML(filepath.Join(dir, "archetypes.yaml"), &ac); err != nil {
		return nil, nil, nil, nil, err
	}
	if err := loadYAML(filepath.Join(dir, "scenario.yaml"), &bc); err != nil {
		return nil, nil, nil, nil, err
	}
	if err := Check(&sc, &ac, &bc); err != nil {
		return nil, nil, nil, nil, err
	}
	return tc, &sc, &ac, &bc, nil
}
