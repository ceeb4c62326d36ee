package rule

import (
	"cmp"
	"slices"

	"sand-ca/internal/core"
)

// Order returns the rules in the sequence they should be tried this tick.
//
// Prioritised rules are sorted ascending with equal priorities shuffled among
// themselves. Each unprioritised rule is then inserted at a uniformly random
// position of the growing list. The input slice is not modified.
func Order[T comparable](rules []*Rule[T], rng *core.RNG) []*Rule[T] {
	ordered := make([]*Rule[T], 0, len(rules))
	var floating []*Rule[T]
	for _, r := range rules {
		if r.Priority == nil {
			floating = append(floating, r)
			continue
		}
		ordered = append(ordered, r)
	}

	slices.SortStableFunc(ordered, func(a, b *Rule[T]) int {
		return cmp.Compare(*a.Priority, *b.Priority)
	})
	for start := 0; start < len(ordered); {
		end := start + 1
		for end < len(ordered) && *ordered[end].Priority == *ordered[start].Priority {
			end++
		}
		group := ordered[start:end]
		rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })
		start = end
	}

	for _, r := range floating {
		ordered = slices.Insert(ordered, rng.IntN(len(ordered)+1), r)
	}
	return ordered
}
