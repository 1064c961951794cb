package component

import "github.com/jakecoffman/cp"

type ArenaKind string

const (
	ArenaRect   ArenaKind = "rect"
	ArenaCircle ArenaKind = "circle"
)

// Arena is the encounter's play area. Rect arenas clamp to Bounds inset by
// Padding. Circle arenas shrink toward MinRadius while Shrinking is set and
// never grow back.
type Arena struct {
	Kind    ArenaKind
	Bounds  cp.BB
	Padding float64

	Center          cp.Vector
	Radius          float64
	MinRadius       float64
	ShrinkRate      float64
	Shrinking       bool
	DamagePerSecond float64
	PushStrength    float64
}

// NewArena builds the starting arena from its config.
func NewArena(cfg ArenaConfig) Arena {
	a := Arena{
		Kind:            cfg.Kind,
		Padding:         cfg.Padding,
		Center:          cfg.Center,
		Radius:          cfg.Radius,
		MinRadius:       cfg.MinRadius,
		ShrinkRate:      cfg.ShrinkRate,
		DamagePerSecond: cfg.DamagePerSecond,
		PushStrength:    cfg.PushStrength,
	}
	hw, hh := cfg.Width/2, cfg.Height/2
	a.Bounds = cp.BB{L: cfg.Center.X - hw, B: cfg.Center.Y - hh, R: cfg.Center.X + hw, T: cfg.Center.Y + hh}
	if a.Kind == "" {
		a.Kind = ArenaRect
	}
	if a.MinRadius > a.Radius {
		a.MinRadius = a.Radius
	}
	return a
}

// Contains reports whether p lies inside the playable area.
func (a *Arena) Contains(p cp.Vector) bool {
	switch a.Kind {
	case ArenaCircle:
		return p.DistanceSq(a.Center) <= a.Radius*a.Radius
	default:
		return p.X >= a.Bounds.L+a.Padding && p.X <= a.Bounds.R-a.Padding &&
			p.Y >= a.Bounds.B+a.Padding && p.Y <= a.Bounds.T-a.Padding
	}
}
