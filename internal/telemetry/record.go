package telemetry

import (
	"sand-ca/internal/particle"
	"sand-ca/internal/sims/sand"
)

// TickRecord is one row of per-tick telemetry.
type TickRecord struct {
	Run      int64  `csv:"run"`
	Tick     uint64 `csv:"tick"`
	Active   int    `csv:"active"`
	Fired    int    `csv:"fired"`
	Sand     int    `csv:"sand"`
	Water    int    `csv:"water"`
	Stone    int    `csv:"stone"`
	Existing int    `csv:"existing"`
	Spawned  int    `csv:"spawned"`
}

// Capture samples the current state of w.
func Capture(run int64, w *sand.World) TickRecord {
	counts := w.Counts()
	stats := w.Stats()
	return TickRecord{
		Run:      run,
		Tick:     w.Tick(),
		Active:   w.ActiveCells().Len(),
		Fired:    w.LastFired(),
		Sand:     counts[particle.Sand],
		Water:    counts[particle.Water],
		Stone:    counts[particle.Stone],
		Existing: stats.Existing,
		Spawned:  stats.Spawned,
	}
}

// Recorder writes a TickRecord every Every ticks.
type Recorder struct {
	Run   int64
	Every int
	out   *CSVWriter[TickRecord]
}

// NewRecorder returns a recorder over out. A nil out disables recording.
func NewRecorder(out *CSVWriter[TickRecord], run int64, every int) *Recorder {
	if every <= 0 {
		every = 1
	}
	return &Recorder{Run: run, Every: every, out: out}
}

// Observe records w if its tick falls on the sampling interval.
func (r *Recorder) Observe(w *sand.World) error {
	if r == nil || r.out == nil || w.Tick()%uint64(r.Every) != 0 {
		return nil
	}
	return r.out.Write(Capture(r.Run, w))
}
