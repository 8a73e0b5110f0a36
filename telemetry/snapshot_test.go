package telemetry

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/fluid/fluid"
)

func newSnapshotSim(t *testing.T) *fluid.Simulation {
	t.Helper()
	sim, err := fluid.New(24, 16, 0.0001, 0.0001, 0.016)
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.CreateExplosion(12, 8, 20, 255, 0, 0); err != nil {
		t.Fatal(err)
	}
	sim.Step()
	sim.Step()
	return sim
}

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	sim := newSnapshotSim(t)

	snapshot := NewSnapshot(sim, nil)
	path, err := SaveSnapshot(snapshot, sim.Image(), tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "snapshot_2.json"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.Tick != 2 || loaded.DT != sim.Timestep() || loaded.Viscosity != sim.Viscosity() {
		t.Errorf("loaded header = %+v", loaded)
	}
	if loaded.Image != "snapshot_2.png" {
		t.Errorf("image = %q", loaded.Image)
	}

	want := sim.State()
	for y := 0; y < 16; y++ {
		for x := 0; x < 24; x++ {
			idx := x + y*24
			if loaded.State.Density[fluid.Red][idx] != want.Density[fluid.Red][idx] {
				t.Fatalf("density at (%d,%d) = %v, want %v", x, y,
					loaded.State.Density[fluid.Red][idx], want.Density[fluid.Red][idx])
			}
			if loaded.State.VX[idx] != want.VX[idx] {
				t.Fatalf("vx at (%d,%d) = %v, want %v", x, y, loaded.State.VX[idx], want.VX[idx])
			}
		}
	}

	f, err := os.Open(filepath.Join(tmpDir, loaded.Image))
	if err != nil {
		t.Fatalf("open png: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 16 {
		t.Errorf("png bounds = %v", b)
	}
}

func TestSnapshotBookmarkName(t *testing.T) {
	tmpDir := t.TempDir()
	sim := newSnapshotSim(t)

	snapshot := NewSnapshot(sim, &Bookmark{Type: BookmarkEnergyBurst, Tick: 2})
	path, err := SaveSnapshot(snapshot, nil, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "snapshot_2_energy_burst.json"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkEnergyBurst {
		t.Errorf("bookmark = %+v", loaded.Bookmark)
	}
	if loaded.Image != "" {
		t.Errorf("image = %q, want none", loaded.Image)
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version error")
	}
}
