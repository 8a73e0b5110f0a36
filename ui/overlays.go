package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID names a layer drawn over the fluid.
type OverlayID string

const (
	OverlayVelocity OverlayID = "velocity"
	OverlaySmooth   OverlayID = "smooth"
	OverlayStats    OverlayID = "stats"
	OverlayPerf     OverlayID = "perf"
)

// OverlayGroup is the heading an overlay is listed under.
type OverlayGroup uint8

const (
	GroupField OverlayGroup = iota
	GroupDebug
)

func (g OverlayGroup) String() string {
	switch g {
	case GroupField:
		return "Field"
	case GroupDebug:
		return "Debug"
	default:
		return "Other"
	}
}

// Overlay describes one toggleable layer.
type Overlay struct {
	ID    OverlayID
	Label string
	Help  string
	Key   int32 // raylib key code, 0 = unbound
	Group OverlayGroup
}

// KeyLabel returns the printable name of the bound key, or "" when unbound.
func (o Overlay) KeyLabel() string {
	if o.Key >= rl.KeyA && o.Key <= rl.KeyZ {
		return string(rune(o.Key))
	}
	return ""
}

var defaultOverlays = []Overlay{
	{OverlayVelocity, "Velocity Field", "Velocity vectors on a coarse lattice", rl.KeyV, GroupField},
	{OverlaySmooth, "Smooth Shading", "Bilinear magnification of the density texture", rl.KeyB, GroupField},
	{OverlayStats, "Field Stats", "Mass, energy and divergence of the current field", rl.KeyI, GroupDebug},
	{OverlayPerf, "Solver Timing", "Average time per solver phase", rl.KeyP, GroupDebug},
}

type overlaySlot struct {
	Overlay
	on bool
}

// OverlayRegistry tracks which overlays are on, in registration order.
type OverlayRegistry struct {
	slots []overlaySlot
	index map[OverlayID]int
}

// NewOverlayRegistry creates a registry holding the built-in overlays, all off.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{index: make(map[OverlayID]int)}
	for _, o := range defaultOverlays {
		r.Register(o)
	}
	return r
}

// Register adds o. Registering a known ID replaces its description and
// keeps its on/off state.
func (r *OverlayRegistry) Register(o Overlay) {
	if i, ok := r.index[o.ID]; ok {
		r.slots[i].Overlay = o
		return
	}
	r.index[o.ID] = len(r.slots)
	r.slots = append(r.slots, overlaySlot{Overlay: o})
}

func (r *OverlayRegistry) slot(id OverlayID) *overlaySlot {
	i, ok := r.index[id]
	if !ok {
		return nil
	}
	return &r.slots[i]
}

// Toggle flips id and returns its new state. Unknown IDs stay off.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	s := r.slot(id)
	if s == nil {
		return false
	}
	s.on = !s.on
	return s.on
}

// Set turns id on or off.
func (r *OverlayRegistry) Set(id OverlayID, on bool) {
	if s := r.slot(id); s != nil {
		s.on = on
	}
}

// On reports whether id is drawn.
func (r *OverlayRegistry) On(id OverlayID) bool {
	s := r.slot(id)
	return s != nil && s.on
}

// Overlays returns every registered overlay.
func (r *OverlayRegistry) Overlays() []Overlay {
	out := make([]Overlay, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.Overlay
	}
	return out
}

// Group returns the overlays listed under g.
func (r *OverlayRegistry) Group(g OverlayGroup) []Overlay {
	var out []Overlay
	for _, s := range r.slots {
		if s.Group == g {
			out = append(out, s.Overlay)
		}
	}
	return out
}

// Groups returns the groups that hold at least one overlay, lowest first.
func (r *OverlayRegistry) Groups() []OverlayGroup {
	var used [256]bool
	for _, s := range r.slots {
		used[s.Group] = true
	}
	var out []OverlayGroup
	for g, ok := range used {
		if ok {
			out = append(out, OverlayGroup(g))
		}
	}
	return out
}

// ToggleKey flips the overlay bound to key. ok is false when no overlay
// uses the key.
func (r *OverlayRegistry) ToggleKey(key int32) (id OverlayID, on, ok bool) {
	if key == 0 {
		return "", false, false
	}
	for _, s := range r.slots {
		if s.Key == key {
			return s.ID, r.Toggle(s.ID), true
		}
	}
	return "", false, false
}

// Active returns the IDs of the overlays that are on.
func (r *OverlayRegistry) Active() []OverlayID {
	var out []OverlayID
	for _, s := range r.slots {
		if s.on {
			out = append(out, s.ID)
		}
	}
	return out
}
