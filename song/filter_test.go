// ABOUTME: Tests for pre-allocation library filtering
// ABOUTME: Covers difficulty floor, meme exclusion and artist queries

package song

import "testing"

func testLibrary() []Song {
	return []Song{
		{ID: 1, Name: "Easy One", Artist: "The Openers", Genre: "Rock", DiffGuitar: 1},
		{ID: 2, Name: "Mid One", Artist: "Riffraff", Genre: "Metal", DiffGuitar: 5},
		{ID: 3, Name: "Joke Track", Artist: "Riffraff", Genre: "Meme", DiffGuitar: 5},
		{ID: 4, Name: "Official", Artist: "Big Band", Charter: "Harmonix", Genre: "Rock", DiffGuitar: 4},
		{ID: 5, Name: "Hard One", Artist: "Shredders", Genre: "Thrash Metal", DiffGuitar: 9},
	}
}

func ids(songs []Song) []int {
	out := make([]int, len(songs))
	for i, s := range songs {
		out[i] = s.ID
	}

	return out
}

func TestFilterEligible(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"no filter keeps all", Filter{}, []int{1, 2, 3, 4, 5}},
		{"min difficulty", Filter{MinDifficulty: 5}, []int{2, 3, 5}},
		{"exclude memes", Filter{ExcludeMemes: true}, []int{1, 2, 4, 5}},
		{"artist query", Filter{ArtistQuery: "riffraff"}, []int{2, 3}},
		{"artist query partial", Filter{ArtistQuery: "band"}, []int{4}},
		{"lower official drops borderline", Filter{MinDifficulty: 4, LowerOfficial: true}, []int{2, 3, 5}},
		{"combined", Filter{MinDifficulty: 5, ExcludeMemes: true}, []int{2, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.filter.Eligible(testLibrary()))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestMemeGenreExclusion(t *testing.T) {
	tests := []struct {
		genre    string
		excluded bool
	}{
		{"Meme", true},
		{"memes", true},
		{"Heavy Memes", true},
		{"Meme Mashup", true},
		{"Nu-Disco Meme", true},
		{"Drum & Bass Meme", true},
		{"  heavy memes  ", true},
		{"Memecore", false},
		{"Rock", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.genre, func(t *testing.T) {
			lib := []Song{{ID: 1, Genre: tt.genre, DiffGuitar: 5}}
			got := Filter{ExcludeMemes: true}.Eligible(lib)

			if excluded := len(got) == 0; excluded != tt.excluded {
				t.Errorf("genre %q excluded = %v, want %v", tt.genre, excluded, tt.excluded)
			}
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	lib := testLibrary()
	got := Filter{}.Eligible(lib)

	for i := 1; i < len(got); i++ {
		if got[i].ID < got[i-1].ID {
			t.Fatalf("order not preserved: %v", ids(got))
		}
	}
}
