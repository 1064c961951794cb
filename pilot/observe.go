package pilot

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

// Danger is one circle the player should keep out of.
type Danger struct {
	Kind     component.HazardKind
	Position cp.Vector
	Radius   float64
}

// ArenaView is the part of the arena a pilot needs. Rect arenas report the
// inscribed circle as Radius.
type ArenaView struct {
	Center cp.Vector
	Radius float64
	Bounds cp.BB

	// Outside is set when the player stands beyond the walkable floor.
	Outside bool
}

// Observation is a read-only snapshot of an encounter from the player's side.
type Observation struct {
	Time    float64
	Phase   int
	Mode    string
	Player  cp.Vector
	Boss    cp.Vector
	Dangers []Danger
	Arena   ArenaView

	// SafeTiles counts safe floor cells while a tile grid is up.
	SafeTiles int
}

// sweepSamples is how many circles approximate one beam or wall.
const sweepSamples = 6

// Observe snapshots enc. Armed areas, projectiles, wells, minions, clones,
// worm segments, sweeps, walls and lava tiles all become dangers.
func Observe(enc *component.Encounter) Observation {
	obs := Observation{
		Time:   enc.Now,
		Phase:  enc.Phase,
		Mode:   component.ModeName(enc.Mode),
		Player: enc.Player,
		Boss:   enc.BossPosition(),
		Arena:  arenaView(&enc.Arena),
	}
	obs.Arena.Outside = !enc.Arena.Contains(enc.Player)
	add := func(kind component.HazardKind, p cp.Vector, r float64) {
		obs.Dangers = append(obs.Dangers, Danger{Kind: kind, Position: p, Radius: r})
	}

	h := &enc.Hazards
	h.Areas.Each(func(_ ecs.Entity, a *component.AreaHazard) {
		add(a.Kind, a.Position, a.Radius)
	})
	h.Projectiles.Each(func(_ ecs.Entity, p *component.Projectile) {
		add(p.Kind, p.Position, p.Radius)
	})
	h.Wells.Each(func(_ ecs.Entity, w *component.Well) {
		add(w.Kind, w.Position, math.Max(w.BurstRadius, w.Radius/3))
	})
	h.Minions.Each(func(_ ecs.Entity, m *component.Minion) {
		add(m.Kind, m.Position, m.Radius)
	})
	h.Clones.Each(func(_ ecs.Entity, c *component.Clone) {
		for _, s := range c.Body.Segments {
			add(c.Kind, s, c.Body.Radius)
		}
	})
	h.Sweeps.Each(func(_ ecs.Entity, s *component.Sweep) {
		a, b := s.Segment()
		for i := 0; i <= sweepSamples; i++ {
			add(s.Kind, a.Lerp(b, float64(i)/sweepSamples), s.HalfWidth)
		}
	})
	h.Walls.Each(func(_ ecs.Entity, w *component.Wall) {
		along := cp.Vector{X: 0, Y: 1}
		if w.Velocity.LengthSq() > 0 {
			along = w.Velocity.Normalize().Perp()
		}
		for i := 0; i <= sweepSamples; i++ {
			s := -w.HalfLength + 2*w.HalfLength*float64(i)/sweepSamples
			if math.Abs(s-w.GapOffset) <= w.GapHalf {
				continue
			}
			add(w.Kind, w.Center.Add(along.Mult(s)), w.HalfThickness)
		}
	})
	if enc.Worm != nil {
		for _, s := range enc.Worm.Segments {
			add(component.HazardKind("worm"), s, enc.Worm.Radius)
		}
	}
	if g := enc.Grid; g != nil {
		obs.SafeTiles = g.Count(component.TileSafe)
		for i, c := range g.Cells {
			if c == component.TileLava || c == component.TileWarning {
				add(component.HazardLava, g.CellCenter(i), g.CellSize/2)
			}
		}
	}
	return obs
}

func arenaView(a *component.Arena) ArenaView {
	v := ArenaView{Center: a.Center, Radius: a.Radius, Bounds: a.Bounds}
	if a.Kind == component.ArenaRect || v.Radius <= 0 {
		w := (a.Bounds.R - a.Bounds.L) / 2
		h := (a.Bounds.T - a.Bounds.B) / 2
		v.Radius = math.Max(math.Min(w, h)-a.Padding, 0)
	}
	return v
}
