// ABOUTME: Genre family classification via keyword matching
// ABOUTME: Maps free-text genre tags to a closed set of canonical families

// Package genre normalizes free-text genre tags into a closed set of
// canonical families used by the genre-aware allocator to diversify tiers.
package genre

import "strings"

// Other is the catch-all family for tags that match nothing
const Other = "Other"

// Families is the canonical family enumeration. Declaration order matters:
// when two family keys of equal length both match an input, the first
// declared family wins, so more specific entries sit before their parents.
var Families = []string{
	"Progressive Metal",
	"Progressive Rock",
	"Alternative Rock",
	"Classic Rock",
	"Southern Rock",
	"Surf Rock",
	"Indie Rock",
	"Pop Punk",
	"Punk Rock",
	"Pop Rock",
	"Hard Rock",
	"Thrash Metal",
	"Death Metal",
	"Black Metal",
	"Power Metal",
	"Heavy Metal",
	"Metalcore",
	"Hardcore",
	"Grunge",
	"Punk",
	"Metal",
	"Rock",
	"Pop",
	"Dubstep",
	"Techno",
	"Trance",
	"Electronic",
	"Dance",
	"Hip Hop",
	"Rap",
	"R&B",
	"Funk",
	"Soul",
	"Disco",
	"Blues",
	"Jazz",
	"Country",
	"Folk",
	"Classical",
	"Soundtrack",
	Other,
}

// family is a pre-normalized catalog entry
type family struct {
	name    string // Canonical display name
	key     string // Normalized key ("pop rock")
	compact string // Key with spaces removed ("poprock"), catches compound tags
}

var catalog = buildCatalog()

func buildCatalog() []family {
	entries := make([]family, 0, len(Families))
	for _, name := range Families {
		key := normalize(name)
		entries = append(entries, family{
			name:    name,
			key:     key,
			compact: strings.ReplaceAll(key, " ", ""),
		})
	}

	return entries
}

// normalize lowercases the input and collapses every run of non-alphanumeric
// characters into a single space, trimming the ends. "Pop/Rock!" -> "pop rock".
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false

	for _, r := range strings.ToLower(s) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingSpace = b.Len() > 0

			continue
		}

		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}

	return b.String()
}

// Classify maps a free-text genre tag to its canonical family.
// Exact normalized matches win outright; otherwise the longest matching
// family key wins (substring check with and without spaces). Unmatched or
// empty tags map to Other. Always returns a valid family, never fails.
func Classify(raw string) string {
	n := normalize(raw)
	if n == "" {
		return Other
	}

	// Exact match against canonical names (including Other itself)
	for _, f := range catalog {
		if n == f.key {
			return f.name
		}
	}

	compact := strings.ReplaceAll(n, " ", "")

	best := ""
	bestLen := 0

	for _, f := range catalog {
		if f.name == Other {
			continue
		}

		if strings.Contains(n, f.key) || strings.Contains(compact, f.compact) {
			// Strictly-greater keeps declaration order as the tie-break
			if len(f.key) > bestLen {
				best = f.name
				bestLen = len(f.key)
			}
		}
	}

	if best == "" {
		return Other
	}

	return best
}
