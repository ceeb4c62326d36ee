package main

import (
	"flag"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"sand-ca/internal/config"
	"sand-ca/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (embedded defaults when empty)")
	seeds := flag.Int("seeds", 0, "number of seeds to run (config sweep.seeds when 0)")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	maxTicks := flag.Int("max-ticks", 0, "tick budget per seed (config sweep.max_ticks when 0)")
	width := flag.Int("w", 0, "world width (config world.width when 0)")
	height := flag.Int("h", 0, "world height (config world.height when 0)")
	particles := flag.Int("particles", 0, "particles dropped per seed (config sweep.particles when 0)")
	waterShare := flag.Float64("water", 0.3, "fraction of dropped particles that are water")
	out := flag.String("out", "", "CSV file for per-seed results")
	ticksOut := flag.String("ticks-out", "", "CSV file for per-tick telemetry")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}
	override(&cfg.Sweep.Seeds, *seeds)
	override(&cfg.Sweep.MaxTicks, *maxTicks)
	override(&cfg.Sweep.Particles, *particles)
	override(&cfg.World.Width, *width)
	override(&cfg.World.Height, *height)
	if *ticksOut != "" {
		cfg.Telemetry.Path = *ticksOut
	}

	results, err := telemetry.CreateCSV[sweepResult](*out)
	if err != nil {
		logger.Error("opening results", "error", err)
		os.Exit(1)
	}
	defer results.Close()
	ticks, err := telemetry.CreateCSV[telemetry.TickRecord](cfg.Telemetry.Path)
	if err != nil {
		logger.Error("opening tick telemetry", "error", err)
		os.Exit(1)
	}
	defer ticks.Close()

	base := scenario{
		world:      cfg.SandConfig(),
		particles:  cfg.Sweep.Particles,
		waterShare: *waterShare,
		maxTicks:   cfg.Sweep.MaxTicks,
		every:      cfg.Telemetry.Every,
	}
	n := max(*workers, 1)
	logger.Info("sweep starting", "seeds", cfg.Sweep.Seeds, "workers", n, "max_ticks", base.maxTicks,
		"w", base.world.Width, "h", base.world.Height, "particles", base.particles)

	jobs := make(chan scenario)
	found := make(chan sweepResult)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				res, err := runScenario(sc, ticks, logger)
				if err != nil {
					logger.Error("scenario failed", "seed", sc.seed, "error", err)
					continue
				}
				found <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(found)
	}()

	go func() {
		for s := 0; s < cfg.Sweep.Seeds; s++ {
			sc := base
			sc.seed = cfg.World.Seed + int64(s)
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []sweepResult
	for res := range found {
		all = append(all, res)
		if !res.Conserved {
			logger.Warn("particle count changed", "result", res.String())
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Seed < all[j].Seed })

	if err := results.Write(all...); err != nil {
		logger.Error("writing results", "error", err)
		os.Exit(1)
	}

	settled := 0
	var slowest sweepResult
	for _, res := range all {
		if res.Settled {
			settled++
		}
		if res.Ticks > slowest.Ticks {
			slowest = res
		}
	}
	logger.Info("sweep finished",
		"runs", len(all),
		"settled", settled,
		"slowest", slowest.String(),
		"elapsed", time.Since(start).Round(time.Millisecond).String())
}

func override(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}
