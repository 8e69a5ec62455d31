// ABOUTME: Tier naming themes for display and export
// ABOUTME: Fixed theme sets plus a deterministic procedural generator

package setlist

import "fmt"

// Theme selects how tiers are titled in output
type Theme string

const (
	ThemeNone       Theme = "none"       // "Tier 1", "Tier 2", ...
	ThemeVenues     Theme = "venues"     // Classic venue progression
	ThemeCareer     Theme = "career"     // 2005-era career set names
	ThemeCareer2    Theme = "career2"    // Sequel career set names
	ThemeProcedural Theme = "procedural" // Generated adjective-noun pairs
)

var venueNames = []string{
	"Local Gig",
	"Small Club",
	"Battle of the Bands",
	"Tour Bus",
	"Arena Show",
	"Stadium Rock",
	"Legends Set",
	"Encore Nights",
	"World Tour",
	"Finale",
	"Hall of Fame",
}

var careerNames = []string{
	"Opening Licks",
	"Axe-Grinders",
	"Thrash and Burn",
	"Return of the Shred",
	"Relentless Riffs",
	"Furious Fretwork",
	"Face-Melters",
}

var career2Names = []string{
	"Opening Licks",
	"Amp-Warmers",
	"String Snappers",
	"Thrash and Burn",
	"Return of the Shred",
	"Relentless Riffs",
	"Furious Fretwork",
	"Face-Melters",
}

var proceduralAdjs = []string{
	"Backroom", "Basement", "Neon", "Touring", "Midnight",
	"Electric", "Thunder", "Retro", "Steel", "Crimson",
	"Golden", "Wild", "Loud", "Feral", "Wired",
}

var proceduralNouns = []string{
	"Licks", "Amp Warmers", "Riff Run", "Shred Set", "Encore",
	"Stage Lights", "Roadshow", "Soundcheck", "Headliners",
	"Pit Crew", "Afterparty", "Finale",
}

var themeSets = map[Theme][]string{
	ThemeVenues:  venueNames,
	ThemeCareer:  careerNames,
	ThemeCareer2: career2Names,
}

// TierName returns the display name for tier index i under a theme.
// Indexes past a fixed theme's list fall back to numbered names.
func TierName(i int, theme Theme) string {
	if names, ok := themeSets[theme]; ok {
		if i < len(names) {
			return names[i]
		}

		return fmt.Sprintf("Tier %d", i+1)
	}

	if theme == ThemeProcedural {
		adj := proceduralAdjs[i%len(proceduralAdjs)]
		noun := proceduralNouns[i%len(proceduralNouns)]

		return fmt.Sprintf("%s %s", adj, noun)
	}

	return fmt.Sprintf("Tier %d", i+1)
}
