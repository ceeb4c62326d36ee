// Package sand implements a falling-sand world driven by pattern-rewrite
// rules. Only cells near recent changes are evaluated each tick.
package sand

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	"sand-ca/internal/core"
	"sand-ca/internal/particle"
	"sand-ca/internal/rule"
)

// Cell is the content of one grid position; nil means empty.
type Cell = *particle.Particle

// World is a grid of cells plus the rules and active-cell bookkeeping that
// advance it.
type World struct {
	cfg Config

	grid     *core.Grid[Cell]
	active   *ActiveCells
	registry *rule.Registry[particle.Kind]
	display  []uint8

	rng    *core.RNG
	logger *slog.Logger

	tick      uint64
	lastFired int
	spawned   int
}

// Option customises a World at construction.
type Option func(*World)

// WithLogger routes world diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithRules replaces the rule set loaded from the config.
func WithRules(rules []*rule.Rule[particle.Kind]) Option {
	return func(w *World) {
		w.registry = rule.NewRegistry[particle.Kind](w.logger)
		w.registry.AddAll(rules)
	}
}

// New builds an empty world. Rules come from cfg.RulesPath when set and from
// the built-in table otherwise.
func New(cfg Config, opts ...Option) (*World, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("sand: %dx%d: %w", cfg.Width, cfg.Height, core.ErrEmptyGrid)
	}
	if cfg.Resolution <= 0 {
		cfg.Resolution = 1
	}
	grid, err := core.NewFilledGrid[Cell](cfg.Width, cfg.Height, nil)
	if err != nil {
		return nil, err
	}
	w := &World{
		cfg:     cfg,
		grid:    grid,
		active:  NewActiveCells(),
		display: make([]uint8, cfg.Width*cfg.Height),
		rng:     core.NewRNG(cfg.Seed),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.registry == nil {
		w.registry = rule.NewRegistry[particle.Kind](w.logger)
		if err := w.loadRules(); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *World) loadRules() error {
	if w.cfg.RulesPath == "" {
		w.registry.AddAll(rule.DefaultRules())
		return nil
	}
	f, err := os.Open(w.cfg.RulesPath)
	if err != nil {
		return fmt.Errorf("open rules: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read rules %s: %w", w.cfg.RulesPath, err)
	}
	n, err := rule.LoadYAML(w.registry, data)
	if n == 0 && err != nil {
		return fmt.Errorf("load rules %s: %w", w.cfg.RulesPath, err)
	}
	w.logger.Info("rules loaded", "path", w.cfg.RulesPath, "count", n)
	return nil
}

// NewWithConfig is New for callers that cannot handle errors, such as the
// sim registry. It falls back to the default configuration on failure.
func NewWithConfig(cfg Config) *World {
	w, err := New(cfg)
	if err != nil {
		slog.Default().Error("sand world config rejected, using defaults", "error", err)
		w, _ = New(DefaultConfig())
	}
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sand" }

// Size reports the grid dimensions.
func (w *World) Size() core.Dimensions { return w.grid.Dimensions() }

// Resolution is the on-screen size of a cell in pixels.
func (w *World) Resolution() int { return w.cfg.Resolution }

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display }

// Grid exposes the live grid. Callers must not mutate it.
func (w *World) Grid() *core.Grid[Cell] { return w.grid }

// ActiveCells exposes the active-cell tracker.
func (w *World) ActiveCells() *ActiveCells { return w.active }

// ActivePoints lists the cells to be evaluated on the next step.
func (w *World) ActivePoints() []image.Point { return w.active.Cells() }

// Rules exposes the world's rule registry.
func (w *World) Rules() *rule.Registry[particle.Kind] { return w.registry }

// Tick is the number of completed steps.
func (w *World) Tick() uint64 { return w.tick }

// LastFired is the number of rule applications in the last step.
func (w *World) LastFired() int { return w.lastFired }

// Settled reports whether no cell is queued for evaluation.
func (w *World) Settled() bool { return w.active.Len() == 0 }

// Reset empties the world and reseeds its RNG. A zero seed reuses the
// configured one.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.rng = core.NewRNG(seed)
	w.grid.Fill(nil)
	w.active.Clear()
	w.tick, w.lastFired, w.spawned = 0, 0, 0
	w.rebuildDisplay()
}

// Occupant reports the kind in cell (x, y); ok is false for an empty cell.
func (w *World) Occupant(x, y int) (kind particle.Kind, ok bool, err error) {
	c, err := w.grid.Get(x, y)
	if err != nil {
		return 0, false, err
	}
	if c == nil {
		return 0, false, nil
	}
	return c.Kind, true, nil
}

// Place writes a fresh particle of kind k, or clears the cell when k is nil,
// and wakes the surrounding 3×3 block for the next step.
func (w *World) Place(x, y int, k *particle.Kind) error {
	var c Cell
	if k != nil {
		c = particle.New(*k)
	}
	if err := w.grid.Set(x, y, c); err != nil {
		return err
	}
	if k != nil {
		w.spawned++
	}
	for _, p := range w.neighbourhood(image.Pt(x, y)) {
		w.active.MarkActive(p)
	}
	w.display[w.grid.Index(x, y)] = encodeCell(c)
	return nil
}

// Stats counts spawned and existing particles.
func (w *World) Stats() Stats {
	s := Stats{Spawned: w.spawned}
	for _, c := range w.grid.Cells() {
		if c != nil {
			s.Existing++
		}
	}
	return s
}

// Counts tallies particles per kind.
func (w *World) Counts() map[particle.Kind]int {
	counts := make(map[particle.Kind]int, len(particle.Kinds()))
	for _, c := range w.grid.Cells() {
		if c != nil {
			counts[c.Kind]++
		}
	}
	return counts
}

// Step advances the world by one tick using the registered rules.
func (w *World) Step() {
	w.StepWith(w.registry.Rules())
}

// StepWith advances the world by one tick using rules. Every active cell is
// tried against the rules in a freshly randomised priority order and the
// first rule that matches around it is applied. Matching reads the grid as
// it was at the start of the tick; writes go to a copy that replaces the
// grid afterwards.
func (w *World) StepWith(rules []*rule.Rule[particle.Kind]) {
	ordered := rule.Order(rules, w.rng)
	snapshot := w.grid
	next := snapshot.Clone()
	fired := 0
	visited := w.active.Cells()

	for _, p := range visited {
		if w.active.IsAffected(p) {
			continue
		}
		applied := false
		for _, r := range ordered {
			if w.apply(r, p, snapshot, next) {
				applied = true
				fired++
				break
			}
		}
		if !applied && w.cfg.RetainUnsettled && unsettled(snapshot, p) {
			w.active.MarkNext(p)
		}
	}

	w.grid = next
	w.active.Update()
	w.tick++
	w.lastFired = fired
	w.rebuildDisplay()
	w.logger.Debug("sand tick", "tick", w.tick, "visited", len(visited), "fired", fired, "active", w.active.Len())
}

// apply tries r with its window centred on p. It reports whether r fired.
func (w *World) apply(r *rule.Rule[particle.Kind], p image.Point, snapshot, next *core.Grid[Cell]) bool {
	dims := r.Dimensions()
	size := snapshot.Dimensions()
	x0, y0 := satSub(p.X, dims.Width/2), satSub(p.Y, dims.Height/2)
	if x0+dims.Width > size.Width || y0+dims.Height > size.Height {
		return false
	}
	for dy := 0; dy < dims.Height; dy++ {
		for dx := 0; dx < dims.Width; dx++ {
			if w.active.IsAffected(image.Pt(x0+dx, y0+dy)) {
				return false
			}
		}
	}

	window, err := snapshot.Subgrid(x0, y0, dims.Width, dims.Height)
	if err != nil {
		return false
	}
	if !r.Matches(occupancyOf(window)) {
		return false
	}

	out := r.Sample(w.rng.Source())
	before := window.Cells()
	for i, o := range out.Grid.Cells() {
		tx, ty := x0+i%dims.Width, y0+i/dims.Width
		var c Cell
		switch {
		case o.IsWildcard():
			c = before[i]
		case o.IsVacant():
			c = nil
		default:
			k, _ := o.Value()
			c = particle.New(k)
		}
		_ = next.Set(tx, ty, c)
		w.active.MarkAffected(image.Pt(tx, ty))
		w.active.MarkNext(image.Pt(tx, ty))
	}

	for _, q := range w.neighbourhood(p) {
		w.active.MarkNext(q)
		if below := q.Add(image.Pt(0, 1)); snapshot.InBounds(below.X, below.Y) {
			w.active.MarkNext(below)
		}
	}
	return true
}

// neighbourhood returns the in-bounds cells of the 3×3 block centred on p.
func (w *World) neighbourhood(p image.Point) []image.Point {
	pts := make([]image.Point, 0, 9)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			q := p.Add(image.Pt(dx, dy))
			if w.grid.InBounds(q.X, q.Y) {
				pts = append(pts, q)
			}
		}
	}
	return pts
}

func occupancyOf(window *core.Grid[Cell]) *core.Grid[rule.Occupancy[particle.Kind]] {
	dims := window.Dimensions()
	g, _ := core.NewFilledGrid(dims.Width, dims.Height, rule.Vacant[particle.Kind]())
	occ := g.Cells()
	for i, c := range window.Cells() {
		if c != nil {
			occ[i] = rule.OccupiedBy(c.Kind)
		}
	}
	return g
}

// unsettled reports whether p holds a particle with an empty cell below it.
func unsettled(g *core.Grid[Cell], p image.Point) bool {
	c, err := g.Get(p.X, p.Y)
	if err != nil || c == nil {
		return false
	}
	below, err := g.Get(p.X, p.Y+1)
	return err == nil && below == nil
}

func satSub(a, b int) int {
	if a < b {
		return 0
	}
	return a - b
}

func init() {
	core.Register("sand", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
