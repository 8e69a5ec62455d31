// ABOUTME: Tests for the genre family classifier
// ABOUTME: Covers canonical identity, substring matching and the Other fallback

package genre

import "testing"

// Every canonical family must classify to itself
func TestClassifyCanonicalIdentity(t *testing.T) {
	for _, fam := range Families {
		if got := Classify(fam); got != fam {
			t.Errorf("Classify(%q) = %q, want identity", fam, got)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", Other},
		{"whitespace only", "   ", Other},
		{"punctuation only", "???", Other},
		{"unknown genre", "Polka", Other},
		{"exact lowercased", "metalcore", "Metalcore"},
		{"exact with punctuation", "Pop/Rock", "Pop Rock"},
		{"longest match wins", "Melodic Death Metal", "Death Metal"},
		{"specific beats parent", "Progressive Rock Opera", "Progressive Rock"},
		{"parent when alone", "Thrash", Other},
		{"substring match", "Post-Hardcore", "Hardcore"},
		{"compact compound", "PopRock", "Pop Rock"},
		{"compact single", "Synthpop", "Pop"},
		{"noise around match", "Rock & Roll", "Rock"},
		{"hip hop separators", "Hip-Hop / Trap", "Hip Hop"},
		{"r and b", "R&B", "R&B"},
		{"classic rock", "Classic Rock (70s)", "Classic Rock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.in); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Equal-length matches resolve by declaration order, so repeated calls
// always agree
func TestClassifyDeterministic(t *testing.T) {
	inputs := []string{"rock metal", "pop punk rock", "surf classic rock"}

	for _, in := range inputs {
		first := Classify(in)
		for i := 0; i < 10; i++ {
			if got := Classify(in); got != first {
				t.Fatalf("Classify(%q) unstable: %q then %q", in, first, got)
			}
		}
	}
}
