package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkEnergyBurst     BookmarkType = "energy_burst"
	BookmarkSettled         BookmarkType = "settled"
	BookmarkDivergenceSpike BookmarkType = "divergence_spike"
)

// Detection thresholds.
const (
	burstMultiplier      = 4.0
	burstMinEnergy       = 1.0
	settledFraction      = 0.01
	spikeMultiplier      = 3.0
	spikeMinDivergence   = 0.01
	minHistoryForAverage = 3
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int64        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector flags windows where the flow changes character:
// an energy burst, the flow coming to rest after one, and divergence well
// above its recent level.
type BookmarkDetector struct {
	recent []WindowStats // oldest first, at most size entries
	size   int

	// Highest EnergyMax since the flow last settled.
	energyPeak float64
}

// NewBookmarkDetector compares each window against the previous size
// windows.
func NewBookmarkDetector(size int) *BookmarkDetector {
	size = max(size, minHistoryForAverage)
	return &BookmarkDetector{recent: make([]WindowStats, 0, size), size: size}
}

// Check compares stats with the recent windows and returns any bookmarks,
// then adds stats to the history.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var out []Bookmark
	if b, ok := bd.energyBurst(stats); ok {
		out = append(out, b)
	}
	settled, ok := bd.settled(stats)
	if ok {
		out = append(out, settled)
	}
	if b, ok := bd.divergenceSpike(stats); ok {
		out = append(out, b)
	}

	bd.remember(stats)
	// The settling window's own peak belongs to the decay just reported.
	if !ok {
		bd.energyPeak = max(bd.energyPeak, stats.EnergyMax)
	}
	return out
}

func (bd *BookmarkDetector) remember(stats WindowStats) {
	if len(bd.recent) == bd.size {
		copy(bd.recent, bd.recent[1:])
		bd.recent = bd.recent[:bd.size-1]
	}
	bd.recent = append(bd.recent, stats)
}

// mean averages field over the recent windows. ok is false until enough
// windows have been seen.
func (bd *BookmarkDetector) mean(field func(WindowStats) float64) (m float64, ok bool) {
	if len(bd.recent) < minHistoryForAverage {
		return 0, false
	}
	for _, w := range bd.recent {
		m += field(w)
	}
	return m / float64(len(bd.recent)), true
}

func (bd *BookmarkDetector) energyBurst(stats WindowStats) (Bookmark, bool) {
	if stats.EnergyMax < burstMinEnergy {
		return Bookmark{}, false
	}
	avg, ok := bd.mean(func(w WindowStats) float64 { return w.EnergyMean })
	if !ok || stats.EnergyMax <= avg*burstMultiplier {
		return Bookmark{}, false
	}

	desc := fmt.Sprintf("Peak energy %.2f from rest", stats.EnergyMax)
	if avg > 0 {
		desc = fmt.Sprintf("Peak energy %.2f is %.1fx average (%.2f)", stats.EnergyMax, stats.EnergyMax/avg, avg)
	}
	return Bookmark{Type: BookmarkEnergyBurst, Tick: stats.WindowEndTick, Description: desc}, true
}

func (bd *BookmarkDetector) settled(stats WindowStats) (Bookmark, bool) {
	peak := bd.energyPeak
	if peak < burstMinEnergy || stats.EnergyEnd >= peak*settledFraction {
		return Bookmark{}, false
	}
	bd.energyPeak = 0
	return Bookmark{
		Type:        BookmarkSettled,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Energy decayed from peak %.2f to %.4f", peak, stats.EnergyEnd),
	}, true
}

func (bd *BookmarkDetector) divergenceSpike(stats WindowStats) (Bookmark, bool) {
	if stats.DivergenceMax < spikeMinDivergence {
		return Bookmark{}, false
	}
	avg, ok := bd.mean(func(w WindowStats) float64 { return w.DivergenceMean })
	if !ok || avg == 0 || stats.DivergenceMax <= avg*spikeMultiplier {
		return Bookmark{}, false
	}
	return Bookmark{
		Type: BookmarkDivergenceSpike,
		Tick: stats.WindowEndTick,
		Description: fmt.Sprintf("Residual divergence %.4f is %.1fx average (%.4f)",
			stats.DivergenceMax, stats.DivergenceMax/avg, avg),
	}, true
}
