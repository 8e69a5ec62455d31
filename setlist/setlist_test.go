// ABOUTME: Tests for .setlist export, import and tier naming
// ABOUTME: Exercises validation, roundtrips and malformed files

package setlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"careergen/song"
)

func md5For(b byte) string {
	return strings.Repeat(string([]byte{b}), 32)
}

func TestExportRoundtrip(t *testing.T) {
	songs := []song.Song{
		{ID: 1, Name: "First", ChartMD5: md5For('A')},
		{ID: 2, Name: "Second", ChartMD5: md5For('B')},
		{ID: 3, Name: "Third", ChartMD5: md5For('C')},
	}

	path := filepath.Join(t.TempDir(), "career.setlist")
	if err := Export(songs, path); err != nil {
		t.Fatal(err)
	}

	md5s, err := ReadMD5s(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(md5s) != 3 {
		t.Fatalf("got %d hashes, want 3", len(md5s))
	}
	for i, want := range []string{md5For('A'), md5For('B'), md5For('C')} {
		if md5s[i] != want {
			t.Errorf("hash %d = %q, want %q", i, md5s[i], want)
		}
	}
}

func TestExportTiersFlattensInOrder(t *testing.T) {
	tiers := [][]song.Song{
		{{Name: "A", ChartMD5: md5For('A')}},
		{{Name: "B", ChartMD5: md5For('B')}, {Name: "C", ChartMD5: md5For('C')}},
	}

	path := filepath.Join(t.TempDir(), "tiers.setlist")
	if err := ExportTiers(tiers, path); err != nil {
		t.Fatal(err)
	}

	md5s, err := ReadMD5s(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(md5s) != 3 || md5s[0] != md5For('A') || md5s[2] != md5For('C') {
		t.Errorf("flattened order wrong: %v", md5s)
	}
}

func TestExportMissingMD5LeavesNoFile(t *testing.T) {
	songs := []song.Song{
		{Name: "Good", ChartMD5: md5For('A')},
		{Name: "Broken Song"},
	}

	path := filepath.Join(t.TempDir(), "bad.setlist")
	err := Export(songs, path)
	if err == nil {
		t.Fatal("expected error for missing chart MD5")
	}
	if !strings.Contains(err.Error(), "Broken Song") {
		t.Errorf("error should name the offending song: %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("partial file left on disk after failed export")
	}
}

func TestExportEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.setlist")
	if err := Export(nil, path); err != nil {
		t.Fatal(err)
	}

	md5s, err := ReadMD5s(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(md5s) != 0 {
		t.Errorf("expected no hashes, got %v", md5s)
	}
}

func TestReadMD5sMalformed(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, data []byte) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, data, 0o644); err != nil {
			t.Fatal(err)
		}

		return p
	}

	tests := []struct {
		name string
		path string
	}{
		{"bad magic", write("magic", []byte{0xDE, 0xAD, 0xBE, 0xEF, 1, 0, 0, 0})},
		{"truncated count", write("count", []byte{0xEA, 0xEC, 0x33, 0x01, 1})},
		{"truncated entry", write("entry", []byte{0xEA, 0xEC, 0x33, 0x01, 1, 0, 0, 0, 0x20, 'A'})},
		{"bad entry prefix", write("prefix", append(
			[]byte{0xEA, 0xEC, 0x33, 0x01, 1, 0, 0, 0, 0x99},
			append([]byte(md5For('A')), 0x64, 0x00)...))},
		{"empty file", write("empty", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadMD5s(tt.path); err == nil {
				t.Error("expected error for malformed file")
			}
		})
	}
}

func TestTierName(t *testing.T) {
	tests := []struct {
		name  string
		i     int
		theme Theme
		want  string
	}{
		{"default numbered", 0, ThemeNone, "Tier 1"},
		{"unknown theme numbered", 4, Theme("bogus"), "Tier 5"},
		{"venue first", 0, ThemeVenues, "Local Gig"},
		{"venue last", 10, ThemeVenues, "Hall of Fame"},
		{"venue overflow", 11, ThemeVenues, "Tier 12"},
		{"career first", 0, ThemeCareer, "Opening Licks"},
		{"career2 second", 1, ThemeCareer2, "Amp-Warmers"},
		{"procedural", 0, ThemeProcedural, "Backroom Licks"},
		{"procedural wraps", 15, ThemeProcedural, "Backroom Shred Set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TierName(tt.i, tt.theme); got != tt.want {
				t.Errorf("TierName(%d, %q) = %q, want %q", tt.i, tt.theme, got, tt.want)
			}
		})
	}
}
