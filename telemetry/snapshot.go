package telemetry

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/fluid/fluid"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot is a diagnostic dump of the fields at one step, for offline
// inspection next to its rendered frame.
type Snapshot struct {
	Version int `json:"version"`

	Diffusion float32 `json:"diffusion"`
	Viscosity float32 `json:"viscosity"`
	DT        float32 `json:"dt"`

	Tick    int64   `json:"tick"`
	SimTime float64 `json:"sim_time"`

	State fluid.State `json:"state"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`

	// Image is the file name of the rendered PNG written alongside the JSON.
	Image string `json:"image,omitempty"`
}

// NewSnapshot captures sim at its current step.
func NewSnapshot(sim *fluid.Simulation, bookmark *Bookmark) *Snapshot {
	return &Snapshot{
		Version:   SnapshotVersion,
		Diffusion: sim.Diffusion(),
		Viscosity: sim.Viscosity(),
		DT:        sim.Timestep(),
		Tick:      sim.Steps(),
		SimTime:   float64(sim.Steps()) * float64(sim.Timestep()),
		State:     sim.State(),
		Bookmark:  bookmark,
	}
}

func snapshotName(snapshot *Snapshot) string {
	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	return name
}

// SaveSnapshot writes a snapshot to disk, plus img as a PNG when non-nil.
// Returns the filepath of the JSON file.
func SaveSnapshot(snapshot *Snapshot, img image.Image, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := snapshotName(snapshot)

	if img != nil {
		snapshot.Image = name + ".png"
		if err := writePNG(filepath.Join(dir, snapshot.Image), img); err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, name+".json")

	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot image: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot image: %w", err)
	}
	return f.Close()
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
