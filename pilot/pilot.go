// Package pilot steers a stand-in player through an encounter so headless
// runs and the viewer can exercise every mechanic without a human.
package pilot

import (
	"github.com/jakecoffman/cp"
)

// Pilot turns an observation into a desired direction. The host scales the
// result by the player's speed; any length above 1 is clamped.
type Pilot interface {
	Steer(obs Observation) cp.Vector
}

// Hold never moves.
type Hold struct{}

func (Hold) Steer(Observation) cp.Vector { return cp.Vector{} }

// Kite keeps its distance from the boss, sidesteps dangers and drifts back
// toward the arena center when it strays too far out.
type Kite struct {
	Standoff float64
	Margin   float64
	// Leash is the fraction of the arena radius the pilot may wander.
	Leash float64
}

// NewKite returns a kiting pilot with the defaults used by kite.tengo.
func NewKite() *Kite {
	return &Kite{Standoff: 450, Margin: 60, Leash: 0.6}
}

func (k *Kite) Steer(obs Observation) cp.Vector {
	var v cp.Vector

	away := obs.Player.Sub(obs.Boss)
	if d := away.Length(); d > 0 && d < k.Standoff {
		v = v.Add(away.Mult(1 / d))
	}

	for _, h := range obs.Dangers {
		off := obs.Player.Sub(h.Position)
		d := off.Length()
		reach := h.Radius + k.Margin
		if d <= 0 || d >= reach {
			continue
		}
		w := 2 * (reach - d) / reach
		v = v.Add(off.Mult(w / d))
	}

	home := obs.Arena.Center.Sub(obs.Player)
	if obs.Arena.Outside && home.LengthSq() > 0 {
		return home.Normalize()
	}
	if d := home.Length(); d > 0 && d > obs.Arena.Radius*k.Leash {
		v = v.Add(home.Mult(1 / d))
	}
	return clampUnit(v)
}

func clampUnit(v cp.Vector) cp.Vector {
	if v.LengthSq() > 1 {
		return v.Normalize()
	}
	return v
}
