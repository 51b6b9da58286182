package ai

import "strings"

// Profile is a closed set of behaviour archetypes.
type Profile int

const (
	Brute Profile = iota
	Skirmisher
	Caster
	Support
	Tactician
	Berserker
	Defender
	Controller
	Assassin
	Commander

	profileCount
)

var profileNames = [profileCount]string{
	"brute", "skirmisher", "caster", "support", "tactician",
	"berserker", "defender", "controller", "assassin", "commander",
}

func (p Profile) String() string {
	if p < 0 || p >= profileCount {
		return "brute"
	}
	return profileNames[p]
}

// ParseProfile maps a profile name to its value; unknown names yield Brute and false.
func ParseProfile(s string) (Profile, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range profileNames {
		if n == s {
			return Profile(i), true
		}
	}
	return Brute, false
}

// Ranged reports the profiles that keep their distance.
func (p Profile) Ranged() bool {
	return p == Caster || p == Support || p == Controller
}
