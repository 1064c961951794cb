package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs/component"
)

type ArenaSystem struct{}

func NewArenaSystem() *ArenaSystem { return &ArenaSystem{} }

func (s *ArenaSystem) Update(f *Frame) {
	enc := f.Enc
	if enc.Terminal() {
		return
	}
	p, dmg := ApplyBoundaryEffects(enc, f.Dt, f.Player)
	f.Player = constrainRect(&enc.Arena, p)
	f.hurt(dmg, 0, component.HazardArena, f.Player)
}

// Constrain clamps p into the arena: the padded rectangle, and for circular
// arenas the current radius as well.
func Constrain(a *component.Arena, p cp.Vector) cp.Vector {
	if a == nil {
		return p
	}
	p = constrainRect(a, p)
	if a.Kind != component.ArenaCircle {
		return p
	}
	if d := p.Distance(a.Center); d > a.Radius && d > 0 {
		p = a.Center.Add(p.Sub(a.Center).Mult(a.Radius / d))
	}
	return p
}

func constrainRect(a *component.Arena, p cp.Vector) cp.Vector {
	bb := a.Bounds
	if bb.R <= bb.L || bb.T <= bb.B {
		return p
	}
	minX, maxX := bb.L+a.Padding, bb.R-a.Padding
	minY, maxY := bb.B+a.Padding, bb.T-a.Padding
	if minX > maxX {
		minX, maxX = (bb.L+bb.R)/2, (bb.L+bb.R)/2
	}
	if minY > maxY {
		minY, maxY = (bb.B+bb.T)/2, (bb.B+bb.T)/2
	}
	return cp.Vector{X: cp.Clamp(p.X, minX, maxX), Y: cp.Clamp(p.Y, minY, maxY)}
}

// ApplyBoundaryEffects shrinks a circular arena and punishes a player
// outside it: DamagePerSecond while outside, and an inward push of
// PushStrength times the penetration depth per second that never overshoots
// the edge. It returns the adjusted position and the damage dealt. Rect
// arenas have no boundary effects.
func ApplyBoundaryEffects(enc *component.Encounter, dt float64, player cp.Vector) (cp.Vector, float64) {
	if enc == nil || enc.Arena.Kind != component.ArenaCircle {
		return player, 0
	}
	a := &enc.Arena
	if a.Shrinking && dt > 0 {
		a.Radius = math.Max(a.MinRadius, a.Radius-a.ShrinkRate*dt)
	}
	depth := player.Distance(a.Center) - a.Radius
	if depth <= 0 {
		return player, 0
	}
	inward := common.Direction(player, a.Center, cp.Vector{})
	push := math.Min(depth, a.PushStrength*depth*dt)
	return player.Add(inward.Mult(push)), a.DamagePerSecond * dt
}
