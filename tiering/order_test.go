// ABOUTME: Tests for final tier ordering
// ABOUTME: Checks ascending order, empty-tier placement and index tie-breaks

package tiering

import (
	"testing"

	"careergen/song"
)

func tierOf(scores ...float64) []song.Song {
	tier := make([]song.Song, len(scores))
	for i, s := range scores {
		tier[i] = song.Song{ID: i + 1, Score: s}
	}

	return tier
}

func TestSortTiersAscending(t *testing.T) {
	tiers := [][]song.Song{
		tierOf(80, 90),
		tierOf(10, 20),
		tierOf(40, 60),
	}

	sorted := SortTiers(tiers)

	if sorted[0][0].Score != 10 || sorted[1][0].Score != 40 || sorted[2][0].Score != 80 {
		t.Errorf("tiers not in ascending score order: %v", sorted)
	}
}

func TestSortTiersEmptyLast(t *testing.T) {
	tiers := [][]song.Song{
		{},
		tierOf(50),
		{},
		tierOf(5),
	}

	sorted := SortTiers(tiers)

	if len(sorted) != 4 {
		t.Fatalf("expected 4 tiers, got %d", len(sorted))
	}
	if len(sorted[0]) == 0 || len(sorted[1]) == 0 {
		t.Error("non-empty tiers should sort before empty ones")
	}
	if len(sorted[2]) != 0 || len(sorted[3]) != 0 {
		t.Error("empty tiers should sort last")
	}
	if sorted[0][0].Score != 5 {
		t.Errorf("easiest tier first, got score %.0f", sorted[0][0].Score)
	}
}

func TestSortTiersMeanBreaksMinTie(t *testing.T) {
	tiers := [][]song.Song{
		tierOf(10, 90), // min 10, mean 50
		tierOf(10, 30), // min 10, mean 20
	}

	sorted := SortTiers(tiers)

	if sorted[0][1].Score != 30 {
		t.Error("tier with lower mean should come first on equal min")
	}
}

func TestSortTiersIndexBreaksFullTie(t *testing.T) {
	a := tierOf(25, 75)
	b := tierOf(25, 75)

	sorted := SortTiers([][]song.Song{a, b})

	// Identical keys keep allocation order
	if &sorted[0][0] != &a[0] {
		t.Error("allocation order not preserved on full key tie")
	}
}
