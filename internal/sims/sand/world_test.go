package sand

import (
	"image"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"sand-ca/internal/core"
	"sand-ca/internal/particle"
	"sand-ca/internal/rule"
)

func kind(k particle.Kind) *particle.Kind { return &k }

func newWorld(t *testing.T, w, h int, opts ...Option) *World {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = w, h
	world, err := New(cfg, opts...)
	require.NoError(t, err)
	return world
}

func occupantAt(t *testing.T, w *World, x, y int) (particle.Kind, bool) {
	t.Helper()
	k, ok, err := w.Occupant(x, y)
	require.NoError(t, err)
	return k, ok
}

func TestSandFallsOneRowPerTick(t *testing.T) {
	w := newWorld(t, 3, 5)
	for x := 0; x < 3; x++ {
		require.NoError(t, w.Place(x, 4, kind(particle.Stone)))
	}
	require.NoError(t, w.Place(1, 0, kind(particle.Sand)))

	for y := 1; y <= 3; y++ {
		w.Step()
		k, ok := occupantAt(t, w, 1, y)
		require.True(t, ok, "tick %d: expected sand at (1,%d)", w.Tick(), y)
		assert.Equal(t, particle.Sand, k)
		_, ok = occupantAt(t, w, 1, y-1)
		assert.False(t, ok, "tick %d: cell above should be empty", w.Tick())
		assert.Equal(t, 1, w.LastFired())
	}

	w.Step()
	assert.Equal(t, 0, w.LastFired())
	assert.True(t, w.Settled(), "active set should drain once the grain rests, got %v", w.ActiveCells().Cells())
	k, ok := occupantAt(t, w, 1, 3)
	require.True(t, ok)
	assert.Equal(t, particle.Sand, k)
	assert.Equal(t, map[particle.Kind]int{particle.Sand: 1, particle.Stone: 3}, w.Counts())
}

func TestSandSlidesOffObstacle(t *testing.T) {
	w := newWorld(t, 3, 3)
	require.NoError(t, w.Place(1, 2, kind(particle.Stone)))
	require.NoError(t, w.Place(1, 1, kind(particle.Sand)))

	w.Step()
	k, ok := occupantAt(t, w, 0, 2)
	require.True(t, ok, "grain should slide down-left first in row-major order")
	assert.Equal(t, particle.Sand, k)
	_, ok = occupantAt(t, w, 1, 1)
	assert.False(t, ok)
	assert.Equal(t, 2, w.Stats().Existing)
}

func TestPlaceActivatesNeighbourhood(t *testing.T) {
	w := newWorld(t, 5, 5, WithRules(nil))
	require.NoError(t, w.Place(2, 2, kind(particle.Stone)))
	var want []image.Point
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			want = append(want, image.Pt(x, y))
		}
	}
	assert.Equal(t, want, w.ActiveCells().Cells())

	corner := newWorld(t, 5, 5, WithRules(nil))
	require.NoError(t, corner.Place(0, 0, kind(particle.Stone)))
	assert.Equal(t, []image.Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, corner.ActiveCells().Cells())

	corner.Step()
	assert.True(t, corner.Settled())
	k, ok := occupantAt(t, corner, 0, 0)
	require.True(t, ok)
	assert.Equal(t, particle.Stone, k)
}

func TestPlaceAndOccupantBounds(t *testing.T) {
	w := newWorld(t, 4, 3)
	assert.ErrorIs(t, w.Place(4, 0, kind(particle.Sand)), core.ErrOutOfBounds)
	assert.ErrorIs(t, w.Place(0, 3, nil), core.ErrOutOfBounds)
	_, _, err := w.Occupant(-1, 0)
	assert.ErrorIs(t, err, core.ErrOutOfBounds)

	require.NoError(t, w.Place(3, 2, kind(particle.Water)))
	k, ok := occupantAt(t, w, 3, 2)
	require.True(t, ok)
	assert.Equal(t, particle.Water, k)
	assert.Equal(t, DisplayWater, w.Cells()[2*4+3])

	require.NoError(t, w.Place(3, 2, nil))
	_, ok = occupantAt(t, w, 3, 2)
	assert.False(t, ok)
	assert.Equal(t, DisplayEmpty, w.Cells()[2*4+3])
}

func TestRetainUnsettled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 3, 3
	cfg.RetainUnsettled = true
	w, err := New(cfg, WithRules(nil))
	require.NoError(t, err)
	require.NoError(t, w.Place(1, 0, kind(particle.Sand)))
	require.NoError(t, w.Place(0, 2, kind(particle.Stone)))

	w.Step()
	assert.Equal(t, []image.Point{{1, 0}}, w.ActiveCells().Cells())

	require.True(t, w.SetBoolParameter("retain_unsettled", false))
	w.Step()
	assert.True(t, w.Settled())
}

func TestDefaultRulesConserveParticles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 24, 16
	cfg.RetainUnsettled = true
	w, err := New(cfg)
	require.NoError(t, err)

	src := rand.New(rand.NewPCG(5, 9))
	for i := 0; i < 150; i++ {
		k := particle.Kinds()[src.IntN(3)]
		require.NoError(t, w.Place(src.IntN(cfg.Width), src.IntN(cfg.Height), kind(k)))
	}
	want := w.Counts()
	for i := 0; i < 300; i++ {
		w.Step()
		require.Equal(t, want, w.Counts(), "tick %d", w.Tick())
	}
}

func TestSameSeedReproducesRun(t *testing.T) {
	run := func() []uint8 {
		w := newWorld(t, 16, 12)
		for x := 2; x < 14; x++ {
			require.NoError(t, w.Place(x, 0, kind(particle.Water)))
			require.NoError(t, w.Place(x, 1, kind(particle.Sand)))
		}
		for i := 0; i < 60; i++ {
			w.Step()
		}
		return append([]uint8(nil), w.Cells()...)
	}
	assert.Equal(t, run(), run())
}

func TestEqualPriorityRulesTieUniformly(t *testing.T) {
	one := func(out particle.Kind) *rule.Rule[particle.Kind] {
		in := core.MustGrid([][]rule.Occupancy[particle.Kind]{{rule.OccupiedBy(particle.Sand)}})
		o := core.MustGrid([][]rule.Occupancy[particle.Kind]{{rule.OccupiedBy(out)}})
		return rule.Must(in, rule.Output[particle.Kind]{Grid: o, Probability: 1}).WithPriority(0)
	}
	rules := []*rule.Rule[particle.Kind]{one(particle.Water), one(particle.Stone)}

	const worlds = 600
	waters := 0
	for seed := int64(1); seed <= worlds; seed++ {
		cfg := DefaultConfig()
		cfg.Width, cfg.Height, cfg.Seed = 1, 1, seed
		w, err := New(cfg, WithRules(rules))
		require.NoError(t, err)
		require.NoError(t, w.Place(0, 0, kind(particle.Sand)))
		w.Step()
		if k, _ := occupantAt(t, w, 0, 0); k == particle.Water {
			waters++
		}
	}
	assert.InDelta(t, 0.5, float64(waters)/worlds, 0.08)
}

func TestWeightedOutputsFollowProbabilities(t *testing.T) {
	in := core.MustGrid([][]rule.Occupancy[particle.Kind]{{rule.OccupiedBy(particle.Sand)}})
	toWater := core.MustGrid([][]rule.Occupancy[particle.Kind]{{rule.OccupiedBy(particle.Water)}})
	toStone := core.MustGrid([][]rule.Occupancy[particle.Kind]{{rule.OccupiedBy(particle.Stone)}})
	r := rule.Must(in,
		rule.Output[particle.Kind]{Grid: toWater, Probability: core.NewPercentage(0.3)},
		rule.Output[particle.Kind]{Grid: toStone, Probability: core.NewPercentage(0.7)},
	)

	w := newWorld(t, 50, 40, WithRules([]*rule.Rule[particle.Kind]{r}))
	for y := 0; y < 40; y++ {
		for x := 0; x < 50; x++ {
			require.NoError(t, w.Place(x, y, kind(particle.Sand)))
		}
	}
	w.Step()
	counts := w.Counts()
	require.Zero(t, counts[particle.Sand])

	total := float64(50 * 40)
	obs := []float64{float64(counts[particle.Water]), float64(counts[particle.Stone])}
	exp := []float64{0.3 * total, 0.7 * total}
	p := distuv.ChiSquared{K: 1}.Survival(stat.ChiSquare(obs, exp))
	assert.Greater(t, p, 0.001, "observed %v, expected %v", obs, exp)
}

func TestResetClearsWorld(t *testing.T) {
	w := newWorld(t, 4, 4)
	require.NoError(t, w.Place(1, 1, kind(particle.Sand)))
	w.Step()
	w.Reset(0)
	assert.Equal(t, Stats{}, w.Stats())
	assert.True(t, w.Settled())
	assert.Zero(t, w.Tick())
	for _, c := range w.Cells() {
		assert.Equal(t, DisplayEmpty, c)
	}
}

func TestRulesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rules:
  - name: water-fall
    input: [[water], [.]]
    outputs:
      - {probability: 1, grid: [[.], [water]]}
  - name: broken
    input: [[water]]
    outputs: []
`), 0o644))

	cfg := DefaultConfig()
	cfg.RulesPath = path
	w, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, w.Rules().Len())

	cfg.RulesPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestNewRejectsEmptyWorld(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, core.ErrEmptyGrid)
}

func TestSimRegistration(t *testing.T) {
	factory, ok := core.Sims()["sand"]
	require.True(t, ok)
	sim := factory(map[string]string{"w": "12", "h": "9"})
	assert.Equal(t, "sand", sim.Name())
	assert.Equal(t, core.Dimensions{Width: 12, Height: 9}, sim.Size())
	assert.Len(t, sim.Cells(), 12*9)
	assert.Contains(t, core.SimNames(), "sand")
}
