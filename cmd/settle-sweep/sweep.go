package main

import (
	"fmt"
	"log/slog"
	"maps"
	"time"

	"sand-ca/internal/core"
	"sand-ca/internal/particle"
	"sand-ca/internal/sims/sand"
	"sand-ca/internal/telemetry"
)

type scenario struct {
	seed       int64
	world      sand.Config
	particles  int
	waterShare float64
	maxTicks   int
	every      int
}

type sweepResult struct {
	Seed      int64   `csv:"seed"`
	Ticks     uint64  `csv:"ticks"`
	Settled   bool    `csv:"settled"`
	Sand      int     `csv:"sand"`
	Water     int     `csv:"water"`
	Stone     int     `csv:"stone"`
	Conserved bool    `csv:"conserved"`
	Fired     int     `csv:"fired_total"`
	ElapsedMS float64 `csv:"elapsed_ms"`
}

func (r sweepResult) String() string {
	return fmt.Sprintf("seed=%d ticks=%d settled=%t sand=%d water=%d stone=%d conserved=%t fired=%d",
		r.Seed, r.Ticks, r.Settled, r.Sand, r.Water, r.Stone, r.Conserved, r.Fired)
}

// runScenario drops particles into the top half of an empty world and steps
// it until the active set drains or the tick budget runs out.
func runScenario(sc scenario, ticks *telemetry.CSVWriter[telemetry.TickRecord], logger *slog.Logger) (sweepResult, error) {
	cfg := sc.world
	cfg.Seed = sc.seed
	world, err := sand.New(cfg, sand.WithLogger(logger))
	if err != nil {
		return sweepResult{}, fmt.Errorf("seed %d: %w", sc.seed, err)
	}

	rng := core.NewRNG(sc.seed)
	top := max(cfg.Height/2, 1)
	for i := 0; i < sc.particles; i++ {
		kind := particle.Sand
		if rng.Float64() < sc.waterShare {
			kind = particle.Water
		}
		if err := world.Place(rng.IntN(cfg.Width), rng.IntN(top), &kind); err != nil {
			return sweepResult{}, fmt.Errorf("seed %d: %w", sc.seed, err)
		}
	}
	before := world.Counts()

	rec := telemetry.NewRecorder(ticks, sc.seed, sc.every)
	start := time.Now()
	fired := 0
	for int(world.Tick()) < sc.maxTicks && !world.Settled() {
		world.Step()
		fired += world.LastFired()
		if err := rec.Observe(world); err != nil {
			return sweepResult{}, fmt.Errorf("seed %d: %w", sc.seed, err)
		}
	}

	after := world.Counts()
	return sweepResult{
		Seed:      sc.seed,
		Ticks:     world.Tick(),
		Settled:   world.Settled(),
		Sand:      after[particle.Sand],
		Water:     after[particle.Water],
		Stone:     after[particle.Stone],
		Conserved: maps.Equal(before, after),
		Fired:     fired,
		ElapsedMS: float64(time.Since(start).Microseconds()) / 1000,
	}, nil
}
