package config

type ScenarioConfig struct {
	ID      string         `yaml:"id"`
	Note    string         `yaml:"note"`
	Width   int            `yaml:"width"`
	Height  int            `yaml:"height"`
	Terrain []string       `yaml:"terrain"`
	Units   []ScenarioUnit `yaml:"units"`
}

// ScenarioUnit places one archetype on the grid. Side is "ally" or "enemy".
type ScenarioUnit struct {
	Name      string `yaml:"name"`
	Archetype string `yaml:"archetype"`
	Side      string `yaml:"side"`
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
}
