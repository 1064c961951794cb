package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

func spit(enc *component.Encounter, m component.MechanicConfig, now float64) {
	fireFan(enc, 0, enc.BossPosition(), enc.Player, m, now)
}

// spawnTurretLine spaces m.Count turrets evenly along the top edge of the
// arena, m.Distance in from the wall.
func spawnTurretLine(enc *component.Encounter, m component.MechanicConfig, now float64) {
	n := max(m.Count, 1)
	bb := enc.Arena.Bounds
	width := bb.R - bb.L
	for i := 0; i < n; i++ {
		if capReached(enc.Hazards.Count(), enc.Config.Caps.MaxHazards) {
			return
		}
		at := cp.Vector{X: bb.L + width*(float64(i)+0.5)/float64(n), Y: bb.T - m.Distance}
		id := enc.Hazards.NewID()
		enc.Hazards.Turrets.Set(id, component.Turret{
			Lifecycle: lifecycle(enc, component.HazardTurret, now),
			Position:  at,
			Radius:    m.Radius,
			Health:    m.Health,
			MaxHealth: m.Health,
		})
		announce(enc, id, component.HazardTurret, at, now)
	}
}

// sweepWall sends a full-width wall across the arena from the top or the
// bottom, with a gap of m.Distance at a random offset.
func sweepWall(enc *component.Encounter, m component.MechanicConfig, now float64) {
	if capReached(enc.Hazards.Count(), enc.Config.Caps.MaxHazards) {
		return
	}
	bb := enc.Arena.Bounds
	halfLength := (bb.R - bb.L) / 2
	gapHalf := math.Min(m.Distance/2, halfLength)
	gapOffset := (enc.Rand.Float64()*2 - 1) * (halfLength - gapHalf)

	center := cp.Vector{X: (bb.L + bb.R) / 2, Y: bb.B}
	velocity := cp.Vector{Y: m.Speed}
	if enc.Rand.Intn(2) == 1 {
		center.Y = bb.T
		velocity.Y = -m.Speed
	}
	lifetime := m.Lifetime
	if lifetime <= 0 && m.Speed > 0 {
		lifetime = (bb.T - bb.B) / m.Speed
	}

	id := enc.Hazards.NewID()
	enc.Hazards.Walls.Set(id, component.Wall{
		Lifecycle:      lifecycle(enc, component.HazardWall, now),
		Center:         center,
		Velocity:       velocity,
		HalfLength:     halfLength,
		HalfThickness:  m.Radius,
		GapOffset:      gapOffset,
		GapHalf:        gapHalf,
		Damage:         m.Damage,
		DamageInterval: m.DamageInterval,
		MaxLifetime:    lifetime,
	})
	announce(enc, id, component.HazardWall, center, now)
}

func fireTurrets(enc *component.Encounter, m component.MechanicConfig, now float64) {
	type shooter struct {
		id ecs.Entity
		at cp.Vector
	}
	var shooters []shooter
	enc.Hazards.Turrets.Each(func(id ecs.Entity, t *component.Turret) {
		shooters = append(shooters, shooter{id: id, at: t.Position})
	})
	for _, s := range shooters {
		fireFan(enc, s.id, s.at, enc.Player, m, now)
	}
}

// spawnClones releases short-lived sub-worms from the arena corners.
func spawnClones(enc *component.Encounter, m component.MechanicConfig, now float64) {
	bb := enc.Arena.Bounds
	pad := enc.Arena.Padding
	corners := []cp.Vector{
		{X: bb.L + pad, Y: bb.B + pad},
		{X: bb.R - pad, Y: bb.T - pad},
		{X: bb.R - pad, Y: bb.B + pad},
		{X: bb.L + pad, Y: bb.T - pad},
	}
	chain := enc.Config.Chain
	chain.Segments = max(chain.Segments/2, 2)

	for i := 0; i < max(m.Count, 1); i++ {
		if capReached(enc.Hazards.Clones.Len(), enc.Config.Caps.MaxClones) {
			return
		}
		at := corners[i%len(corners)]
		heading := common.Bearing(at, enc.Player)
		id := enc.Hazards.NewID()
		enc.Hazards.Clones.Set(id, component.Clone{
			Lifecycle:     lifecycle(enc, component.HazardClone, now),
			Body:          component.NewChain(at, heading, chain, m.Speed, enc.Config.TurnRate),
			MaxLifetime:   m.Lifetime,
			Health:        m.Health,
			ContactDamage: m.Damage,
		})
		announce(enc, id, component.HazardClone, at, now)
	}
}

// constrictRing closes a shrinking circle around the player's position and
// sends the wyrm circling its edge.
func constrictRing(enc *component.Encounter, m component.MechanicConfig, now float64) {
	center := Constrain(&enc.Arena, enc.Player)
	a := &enc.Arena
	a.Kind = component.ArenaCircle
	a.Center = center
	a.Radius = m.Distance
	a.MinRadius = math.Min(m.Radius, m.Distance)
	a.ShrinkRate = m.Speed
	a.DamagePerSecond = m.Damage
	a.PushStrength = m.Strength
	a.Shrinking = true

	angle := common.Bearing(center, enc.BossPosition())
	setMode(enc, component.Orbit{Center: center, Radius: m.Distance, Angle: angle}, now)
}

// lunge dashes the head straight at the player for m.Active seconds, then
// resumes the previous mode.
func lunge(enc *component.Encounter, m component.MechanicConfig, now float64) {
	if _, busy := enc.Mode.(component.Lunge); busy {
		return
	}
	dir := common.Direction(enc.BossPosition(), enc.Player, cp.ForAngle(enc.Boss.Heading))
	setMode(enc, component.Lunge{Direction: dir, Speed: m.Speed, Until: now + m.Active, Resume: enc.Mode}, now)
}
