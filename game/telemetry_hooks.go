package game

import (
	"log/slog"

	"github.com/pthm-cable/fluid/telemetry"
)

// defaultSnapshotDir receives manual snapshots when no -snapshot-dir is set.
const defaultSnapshotDir = "snapshots"

// flushTelemetry closes the stats window when it is due, then records and
// reacts to any bookmarks it triggers.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	window := g.collector.Flush(g.tick, g.sim.Diagnostics())
	perf := g.perfCollector.Stats()
	g.history.Add(window)
	g.recordWindow(window, perf)

	for _, bm := range g.bookmarkDetector.Check(window) {
		g.recordBookmark(bm)
	}
}

func (g *Game) recordWindow(window telemetry.WindowStats, perf telemetry.PerfStats) {
	if g.statsCallback != nil {
		g.statsCallback(window)
	}
	if g.logStats {
		window.LogStats()
		perf.LogStats()
	}
	if err := g.outputManager.WriteTelemetry(window); err != nil {
		slog.Error("telemetry write failed", "error", err)
	}
	if err := g.outputManager.WritePerf(perf, window.WindowEndTick); err != nil {
		slog.Error("perf write failed", "error", err)
	}
}

func (g *Game) recordBookmark(bm telemetry.Bookmark) {
	if g.logStats {
		bm.LogBookmark()
	}
	if err := g.outputManager.WriteBookmark(bm); err != nil {
		slog.Error("bookmark write failed", "error", err)
	}
	if g.snapshotDir != "" {
		g.saveSnapshot(&bm)
	}
}

// saveSnapshot writes the solver state and a rendered frame to disk.
// Bookmark snapshots go to the configured directory; manual ones fall back
// to defaultSnapshotDir.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	dir := g.snapshotDir
	if dir == "" {
		dir = defaultSnapshotDir
	}

	path, err := telemetry.SaveSnapshot(telemetry.NewSnapshot(g.sim, bookmark), g.sim.Image(), dir)
	if err != nil {
		slog.Error("snapshot failed", "dir", dir, "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}
