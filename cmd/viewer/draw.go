package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"golang.org/x/image/colornames"
)

// camera maps arena space onto the screen, fitting the arena bounds.
type camera struct {
	origin cp.Vector
	scale  float64
}

func newCamera(enc *component.Encounter) camera {
	b := enc.Arena.Bounds
	w, h := b.R-b.L, b.T-b.B
	scale := 1.0
	if w > 0 && h > 0 {
		scale = min(screenW/w, screenH/h)
	}
	return camera{origin: cp.Vector{X: b.L, Y: b.B}, scale: scale}
}

func (c camera) pt(p cp.Vector) (float32, float32) {
	q := p.Sub(c.origin).Mult(c.scale)
	return float32(q.X), float32(q.Y)
}

func (c camera) scaled(r float64) float32 {
	return float32(r * c.scale)
}

func (c camera) circle(dst *ebiten.Image, p cp.Vector, r float64, clr color.Color) {
	x, y := c.pt(p)
	vector.FillCircle(dst, x, y, c.scaled(r), clr, true)
}

func (c camera) ring(dst *ebiten.Image, p cp.Vector, r float64, clr color.Color) {
	x, y := c.pt(p)
	vector.StrokeCircle(dst, x, y, c.scaled(r), 2, clr, true)
}

func (c camera) line(dst *ebiten.Image, a, b cp.Vector, width float64, clr color.Color) {
	x0, y0 := c.pt(a)
	x1, y1 := c.pt(b)
	vector.StrokeLine(dst, x0, y0, x1, y1, max(c.scaled(width), 1), clr, true)
}

func faded(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}

func (c camera) draw(screen *ebiten.Image, v *viewer) {
	enc := v.enc
	screen.Fill(colornames.Black)
	c.drawArena(screen, &enc.Arena)
	if enc.Grid != nil {
		c.drawGrid(screen, enc.Grid)
	}

	h := &enc.Hazards
	h.Areas.Each(func(_ ecs.Entity, a *component.AreaHazard) {
		if a.Armed() {
			c.circle(screen, a.Position, a.Radius, faded(colornames.Orangered, 140))
		} else {
			c.ring(screen, a.Position, a.Radius, colornames.Orange)
		}
	})
	h.Wells.Each(func(_ ecs.Entity, w *component.Well) {
		c.ring(screen, w.Position, w.Radius, colornames.Mediumpurple)
		c.circle(screen, w.Position, w.BurstRadius, faded(colornames.Purple, 120))
	})
	h.Sweeps.Each(func(_ ecs.Entity, s *component.Sweep) {
		a, b := s.Segment()
		clr := colornames.Red
		if s.Elapsed < s.Warning {
			clr = faded(colornames.Pink, 120)
		}
		c.line(screen, a, b, 2*s.HalfWidth, clr)
	})
	h.Walls.Each(func(_ ecs.Entity, w *component.Wall) {
		c.drawWall(screen, w)
	})
	h.Pylons.Each(func(_ ecs.Entity, p *component.Pylon) {
		clr := colornames.Cyan
		if p.Destroyed {
			clr = colornames.Dimgray
		}
		c.circle(screen, p.Position, p.Radius, clr)
	})
	h.Turrets.Each(func(_ ecs.Entity, t *component.Turret) {
		c.circle(screen, t.Position, t.Radius, colornames.Olive)
	})
	h.Minions.Each(func(_ ecs.Entity, m *component.Minion) {
		c.circle(screen, m.Position, m.Radius, colornames.Yellowgreen)
	})
	h.Clones.Each(func(_ ecs.Entity, cl *component.Clone) {
		for _, s := range cl.Body.Segments {
			c.circle(screen, s, cl.Body.Radius, faded(colornames.Seagreen, 160))
		}
	})
	h.Projectiles.Each(func(_ ecs.Entity, p *component.Projectile) {
		c.circle(screen, p.Position, p.Radius, colornames.Gold)
	})

	bossColor := v.color
	if enc.Invulnerable {
		bossColor = colornames.White
	}
	if enc.Worm != nil {
		for i := len(enc.Worm.Segments) - 1; i >= 0; i-- {
			c.circle(screen, enc.Worm.Segments[i], enc.Worm.Radius, bossColor)
		}
	} else {
		c.circle(screen, enc.Boss.Position, enc.Boss.Radius, bossColor)
	}

	c.circle(screen, v.player, enc.Config.PlayerRadius, colornames.Crimson)
	if enc.Wind.Active {
		c.line(screen, v.player, v.player.Add(enc.Wind.Force()), 2, colornames.Lightblue)
	}
}

func (c camera) drawArena(screen *ebiten.Image, a *component.Arena) {
	b := a.Bounds
	x, y := c.pt(cp.Vector{X: b.L + a.Padding, Y: b.B + a.Padding})
	vector.StrokeRect(screen, x, y, c.scaled(b.R-b.L-2*a.Padding), c.scaled(b.T-b.B-2*a.Padding), 2, colornames.Slategray, false)
	if a.Kind == component.ArenaCircle {
		c.ring(screen, a.Center, a.Radius, colornames.Violet)
	}
}

func (c camera) drawGrid(screen *ebiten.Image, g *component.TileGrid) {
	for i, s := range g.Cells {
		var clr color.RGBA
		switch s {
		case component.TileWarning:
			clr = faded(colornames.Orange, 70)
		case component.TileLava:
			clr = faded(colornames.Orangered, 150)
		case component.TileSafe:
			clr = faded(colornames.Limegreen, 70)
		default:
			continue
		}
		x, y := c.pt(g.CellCenter(i).Sub(cp.Vector{X: g.CellSize / 2, Y: g.CellSize / 2}))
		vector.FillRect(screen, x, y, c.scaled(g.CellSize), c.scaled(g.CellSize), clr, false)
	}
}

func (c camera) drawWall(screen *ebiten.Image, w *component.Wall) {
	along := cp.Vector{X: 0, Y: 1}
	if w.Velocity.LengthSq() > 0 {
		along = w.Velocity.Normalize().Perp()
	}
	at := func(s float64) cp.Vector { return w.Center.Add(along.Mult(s)) }
	width := 2 * w.HalfThickness
	if lo := w.GapOffset - w.GapHalf; lo > -w.HalfLength {
		c.line(screen, at(-w.HalfLength), at(lo), width, colornames.Tomato)
	}
	if hi := w.GapOffset + w.GapHalf; hi < w.HalfLength {
		c.line(screen, at(hi), at(w.HalfLength), width, colornames.Tomato)
	}
}
