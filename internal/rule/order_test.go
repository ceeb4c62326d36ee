package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sand-ca/internal/core"
	"sand-ca/internal/particle"
)

func identity(name string) *Rule[particle.Kind] {
	p := pattern([]occ{sand})
	return Must(p, Output[particle.Kind]{Grid: p, Probability: 1}).WithName(name)
}

func TestOrderSortsByPriority(t *testing.T) {
	rules := []*Rule[particle.Kind]{
		identity("c").WithPriority(2),
		identity("a").WithPriority(0),
		identity("b").WithPriority(1),
	}
	for seed := int64(0); seed < 20; seed++ {
		got := Order(rules, core.NewRNG(seed))
		require.Len(t, got, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].Name, got[1].Name, got[2].Name})
	}
	assert.Equal(t, "c", rules[0].Name, "input slice must not be reordered")
}

func TestOrderShufflesEqualPriorities(t *testing.T) {
	rules := []*Rule[particle.Kind]{
		identity("x").WithPriority(1),
		identity("y").WithPriority(1),
		identity("first").WithPriority(0),
	}
	firstX := 0
	const runs = 2000
	rng := core.NewRNG(11)
	for i := 0; i < runs; i++ {
		got := Order(rules, rng)
		require.Equal(t, "first", got[0].Name)
		if got[1].Name == "x" {
			firstX++
		}
	}
	assert.InDelta(t, 0.5, float64(firstX)/runs, 0.05)
}

func TestOrderInterleavesUnprioritised(t *testing.T) {
	rules := []*Rule[particle.Kind]{
		identity("p0").WithPriority(0),
		identity("p1").WithPriority(1),
		identity("free"),
	}
	positions := make([]int, 3)
	const runs = 3000
	rng := core.NewRNG(3)
	for i := 0; i < runs; i++ {
		got := Order(rules, rng)
		require.Len(t, got, 3)
		var prio []string
		for pos, r := range got {
			if r.Name == "free" {
				positions[pos]++
				continue
			}
			prio = append(prio, r.Name)
		}
		assert.Equal(t, []string{"p0", "p1"}, prio)
	}
	for pos, n := range positions {
		assert.InDelta(t, 1.0/3, float64(n)/runs, 0.05, "position %d", pos)
	}
}

func TestOrderEmpty(t *testing.T) {
	assert.Empty(t, Order[particle.Kind](nil, core.NewRNG(1)))
}
