// ABOUTME: Family plan builder for genre-aware tiering
// ABOUTME: Apportions tier slots to genre families with diversity and majority rules

package tiering

import (
	"math"
	"math/rand/v2"
	"slices"
	"sort"
)

// buildFamilyPlan assigns one genre family to each of nTiers slots.
// Quotas come from largest-remainder apportionment over family populations,
// then two corrections: a diversity floor so small families still appear,
// and suppression of a family holding a majority of all songs. The finished
// plan is shuffled so slot order does not correlate with family size.
func buildFamilyPlan(counts map[string]int, nTiers int, rnd *rand.Rand) []string {
	names := make([]string, 0, len(counts))
	total := 0
	for name, c := range counts {
		if c > 0 {
			names = append(names, name)
			total += c
		}
	}

	if len(names) == 0 || total == 0 || nTiers < 1 {
		return []string{}
	}

	// Fixed base order, then a shuffle so residual ties break randomly but
	// reproducibly for a given seed
	sort.Strings(names)
	rnd.Shuffle(len(names), func(a, b int) {
		names[a], names[b] = names[b], names[a]
	})

	quotas := make(map[string]int, len(names))
	remainders := make(map[string]float64, len(names))

	assigned := 0
	for _, name := range names {
		ideal := float64(counts[name]) / float64(total) * float64(nTiers)
		base := int(math.Floor(ideal))
		quotas[name] = base
		remainders[name] = ideal - float64(base)
		assigned += base
	}

	// Leftover slots go to the largest fractional remainders, population
	// breaking ties; equal populations fall back to the shuffled order
	byRemainder := slices.Clone(names)
	slices.SortStableFunc(byRemainder, func(a, b string) int {
		if c := compareFloat(remainders[b], remainders[a]); c != 0 {
			return c
		}

		return counts[b] - counts[a]
	})
	for i := 0; i < nTiers-assigned && i < len(byRemainder); i++ {
		quotas[byRemainder[i]]++
	}

	applyDiversityFloor(names, counts, quotas, nTiers)
	applyMajoritySuppression(names, counts, quotas, total, nTiers)

	plan := expandPlan(names, counts, quotas, nTiers)
	rnd.Shuffle(len(plan), func(a, b int) {
		plan[a], plan[b] = plan[b], plan[a]
	})

	return plan
}

// applyDiversityFloor transfers slots until at least ceil(nTiers/3) distinct
// families hold a slot, capped at the number of families present. Donors are
// the largest-quota families with quota > 1; receivers are the
// largest-population families still at zero.
func applyDiversityFloor(names []string, counts, quotas map[string]int, nTiers int) {
	target := (nTiers + 2) / 3
	if target > len(names) {
		target = len(names)
	}

	for {
		represented := 0
		for _, name := range names {
			if quotas[name] > 0 {
				represented++
			}
		}
		if represented >= target {
			return
		}

		donor, receiver := "", ""
		for _, name := range names {
			if quotas[name] > 1 && (donor == "" || quotas[name] > quotas[donor]) {
				donor = name
			}
			if quotas[name] == 0 && (receiver == "" || counts[name] > counts[receiver]) {
				receiver = name
			}
		}
		if donor == "" || receiver == "" {
			return
		}

		quotas[donor]--
		quotas[receiver]++
	}
}

// applyMajoritySuppression caps a family holding more than half of all songs
// so minority families collectively keep min(nTiers, ceil(nTiers/3)) slots.
// Slots move one at a time to the minority family with the fewest, larger
// populations winning ties, and stop before the majority family goes empty.
func applyMajoritySuppression(names []string, counts, quotas map[string]int, total, nTiers int) {
	majority := ""
	for _, name := range names {
		if counts[name]*2 > total {
			majority = name
			break
		}
	}
	if majority == "" {
		return
	}

	target := (nTiers + 2) / 3
	if target > nTiers {
		target = nTiers
	}

	for {
		minoritySlots := 0
		for _, name := range names {
			if name != majority {
				minoritySlots += quotas[name]
			}
		}
		if minoritySlots >= target || quotas[majority] <= 1 {
			return
		}

		receiver := ""
		for _, name := range names {
			if name == majority {
				continue
			}
			if receiver == "" ||
				quotas[name] < quotas[receiver] ||
				(quotas[name] == quotas[receiver] && counts[name] > counts[receiver]) {
				receiver = name
			}
		}
		if receiver == "" {
			return
		}

		quotas[majority]--
		quotas[receiver]++
	}
}

// expandPlan flattens quotas to a slot list of exactly nTiers entries,
// padding with the largest-population family when rounding left it short
func expandPlan(names []string, counts, quotas map[string]int, nTiers int) []string {
	plan := make([]string, 0, nTiers)
	for _, name := range names {
		for i := 0; i < quotas[name]; i++ {
			plan = append(plan, name)
		}
	}

	if len(plan) < nTiers {
		biggest := names[0]
		for _, name := range names[1:] {
			if counts[name] > counts[biggest] {
				biggest = name
			}
		}
		for len(plan) < nTiers {
			plan = append(plan, biggest)
		}
	}

	return plan[:nTiers]
}
