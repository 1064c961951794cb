package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs/component"
)

// moveBoss moves the boss body according to its current mode, then keeps it
// inside the arena.
func moveBoss(f *Frame) {
	enc := f.Enc
	b := &enc.Boss
	step := b.Speed * f.Dt

	switch m := enc.Mode.(type) {
	case component.Anchored:
		b.Position = b.Position.LerpConst(enc.Arena.Center, step)
	case component.Melee:
		// Close inside touching range so contact lands.
		b.Position = approach(b.Position, f.Player, (b.Radius+enc.Config.PlayerRadius)/2, step)
	case component.Ranged:
		b.Position = approach(b.Position, f.Player, enc.Config.RangedDistance, step)
	case component.Chase:
		if enc.Worm != nil {
			SteerChain(enc.Worm, f.Player, f.Dt)
		} else {
			steerBody(b, f.Player, enc.Config.TurnRate, f.Dt)
		}
	case component.Orbit:
		radius := m.Radius
		if enc.Arena.Kind == component.ArenaCircle {
			radius = enc.Arena.Radius
		}
		if radius > 0 {
			m.Angle = common.WrapAngle(m.Angle + step/radius)
		}
		enc.Mode = m
		target := m.Center.Add(cp.ForAngle(m.Angle).Mult(radius))
		if enc.Worm != nil {
			SteerChain(enc.Worm, target, f.Dt)
		} else {
			b.Position = b.Position.LerpConst(target, step)
		}
	case component.Lunge:
		if f.Now >= m.Until {
			setMode(enc, m.Resume, f.Now)
			break
		}
		dash := m.Direction.Mult(m.Speed * f.Dt)
		if enc.Worm != nil {
			enc.Worm.Heading = m.Direction.ToAngle()
			enc.Worm.Segments[0] = enc.Worm.Segments[0].Add(dash)
		} else {
			b.Position = b.Position.Add(dash)
		}
	}

	if enc.Worm != nil {
		enc.Worm.Segments[0] = Constrain(&enc.Arena, enc.Worm.Segments[0])
		FollowChain(enc.Worm, f.Dt)
		b.Position = enc.Worm.Head()
		b.Heading = enc.Worm.Heading
		return
	}
	b.Position = Constrain(&enc.Arena, b.Position)
}

// approach moves p toward the point standoff away from target on the line
// between them.
func approach(p, target cp.Vector, standoff, step float64) cp.Vector {
	away := common.Direction(target, p, cp.Vector{X: 1})
	return p.LerpConst(target.Add(away.Mult(standoff)), step)
}

func steerBody(b *component.Body, target cp.Vector, turnRate, dt float64) {
	if b.Position.DistanceSq(target) > 0 {
		b.Heading = common.TurnToward(b.Heading, common.Bearing(b.Position, target), turnRate*dt)
	}
	b.Position = b.Position.Add(cp.ForAngle(b.Heading).Mult(b.Speed * dt))
}
