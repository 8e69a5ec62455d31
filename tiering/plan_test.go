// ABOUTME: Tests for the family plan builder
// ABOUTME: Checks plan length, diversity floor and majority suppression

package tiering

import (
	"math/rand/v2"
	"testing"
)

func planRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed>>1))
}

func countSlots(plan []string) map[string]int {
	slots := make(map[string]int)
	for _, fam := range plan {
		slots[fam]++
	}

	return slots
}

func TestFamilyPlanLength(t *testing.T) {
	tests := []struct {
		name   string
		counts map[string]int
		nTiers int
	}{
		{"single family", map[string]int{"Rock": 50}, 7},
		{"two families", map[string]int{"Rock": 30, "Jazz": 10}, 5},
		{"many small families", map[string]int{"A": 1, "B": 1, "C": 1, "D": 1, "E": 1}, 9},
		{"more tiers than songs", map[string]int{"Rock": 2}, 10},
		{"one tier", map[string]int{"Rock": 5, "Pop": 5}, 1},
		{"zero count ignored", map[string]int{"Rock": 10, "Ska": 0}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := buildFamilyPlan(tt.counts, tt.nTiers, planRand(1))
			if len(plan) != tt.nTiers {
				t.Errorf("plan length %d, want %d", len(plan), tt.nTiers)
			}
			for _, fam := range plan {
				if tt.counts[fam] == 0 {
					t.Errorf("plan assigned slot to absent family %q", fam)
				}
			}
		})
	}
}

func TestFamilyPlanEmpty(t *testing.T) {
	if plan := buildFamilyPlan(map[string]int{}, 5, planRand(1)); len(plan) != 0 {
		t.Errorf("expected empty plan for empty counts, got %v", plan)
	}
}

// 40 Metal against 20 Pop over six tiers: the diversity floor guarantees
// Pop at least ceil(6/3) = 2 slots, which caps Metal at 4 despite its
// majority.
func TestFamilyPlanMajoritySuppression(t *testing.T) {
	counts := map[string]int{"Metal": 40, "Pop": 20}

	for seed := uint64(1); seed <= 20; seed++ {
		plan := buildFamilyPlan(counts, 6, planRand(seed))
		slots := countSlots(plan)

		if slots["Pop"] < 2 {
			t.Errorf("seed %d: Pop got %d slots, want >= 2", seed, slots["Pop"])
		}
		if slots["Metal"] > 4 {
			t.Errorf("seed %d: Metal got %d slots, want <= 4", seed, slots["Metal"])
		}
	}
}

func TestFamilyPlanDiversityFloor(t *testing.T) {
	// One overwhelming family with two tiny ones: rounding alone would
	// hand every slot to A
	counts := map[string]int{"A": 98, "B": 1, "C": 1}

	for seed := uint64(1); seed <= 20; seed++ {
		plan := buildFamilyPlan(counts, 6, planRand(seed))
		slots := countSlots(plan)

		distinct := 0
		for _, n := range slots {
			if n > 0 {
				distinct++
			}
		}
		if distinct < 2 {
			t.Errorf("seed %d: only %d families represented, want >= 2", seed, distinct)
		}
		if slots["A"] > 4 {
			t.Errorf("seed %d: majority family A got %d slots, want <= 4", seed, slots["A"])
		}
	}
}

func TestFamilyPlanDeterminism(t *testing.T) {
	counts := map[string]int{"Rock": 12, "Jazz": 7, "Folk": 3, "Soul": 3}

	a := buildFamilyPlan(counts, 8, planRand(99))
	b := buildFamilyPlan(counts, 8, planRand(99))

	if len(a) != len(b) {
		t.Fatalf("plan lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("slot %d differs: %q vs %q", i, a[i], b[i])
		}
	}
}
