//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"strconv"

	"sand-ca/internal/app"
	"sand-ca/internal/config"
	"sand-ca/internal/core"
	_ "sand-ca/internal/sims/sand"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flags := app.NewConfig()
	flags.Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}
	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	factory, ok := core.Sims()[flags.Sim]
	if !ok {
		logger.Error("unknown sim", "sim", flags.Sim, "available", core.SimNames())
		os.Exit(1)
	}

	opts := map[string]string{
		"w":          strconv.Itoa(cfg.World.Width),
		"h":          strconv.Itoa(cfg.World.Height),
		"resolution": strconv.Itoa(cfg.World.Resolution),
		"seed":       strconv.FormatInt(cfg.World.Seed, 10),
		"rules":      cfg.World.Rules,
	}
	if cfg.World.RetainUnsettled {
		opts["retain_unsettled"] = "true"
	}
	for k, v := range flags.SimOptions() {
		opts[k] = v
	}
	sim := factory(opts)

	scale := cfg.World.Resolution
	if flags.Scale > 0 {
		scale = flags.Scale
	}
	tps := cfg.Sim.TPS
	if flags.TPS > 0 {
		tps = flags.TPS
	}
	seed := cfg.World.Seed
	if flags.Seed != 0 {
		seed = flags.Seed
	}
	sim.Reset(seed)

	game := app.New(sim, app.Options{
		Scale:    scale,
		TPS:      tps,
		Seed:     seed,
		HUDWidth: flags.HUDWidth,
		Logger:   logger,
	})
	size := sim.Size()

	ebiten.SetWindowTitle("sand-ca: " + sim.Name())
	ebiten.SetWindowSize(size.Width*scale+flags.HUDWidth, size.Height*scale)
	logger.Info("starting", "sim", sim.Name(), "size", size.String(), "tps", tps, "seed", seed)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game loop", "error", err)
		os.Exit(1)
	}
}
