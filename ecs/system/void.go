package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

func spawnVoidZones(enc *component.Encounter, m component.MechanicConfig, now float64) {
	for i := 0; i < max(m.Count, 1); i++ {
		if _, ok := spawnArea(enc, component.HazardVoidZone, randomPoint(enc, enc.Player, m.Distance), m, now); !ok {
			return
		}
	}
}

// spawnPylonRing raises the invulnerability gate: the boss takes no damage
// until every pylon of the ring is destroyed.
func spawnPylonRing(enc *component.Encounter, m component.MechanicConfig, now float64) {
	n := m.Count
	if n < 1 {
		return
	}
	placed := 0
	for i := 0; i < n; i++ {
		if capReached(enc.Hazards.Count(), enc.Config.Caps.MaxHazards) {
			break
		}
		at := common.RingPoint(enc.Arena.Center, m.Distance, i, n, -math.Pi/2)
		id := enc.Hazards.NewID()
		enc.Hazards.Pylons.Set(id, component.Pylon{
			Lifecycle: lifecycle(enc, component.HazardPylon, now),
			Position:  at,
			Radius:    m.Radius,
			Health:    m.Health,
			MaxHealth: m.Health,
		})
		announce(enc, id, component.HazardPylon, at, now)
		placed++
	}
	if placed == 0 {
		return
	}
	enc.GateTotal = placed
	enc.GateDestroyed = 0
	if !enc.Invulnerable {
		enc.Invulnerable = true
		enc.Emit(component.Event{Type: component.EventInvulnerabilityChanged, Time: now, Flag: true, Phase: enc.Phase})
	}
}

// firePylonVolley has every standing pylon shoot at the player.
func firePylonVolley(enc *component.Encounter, m component.MechanicConfig, now float64) {
	type shooter struct {
		id ecs.Entity
		at cp.Vector
	}
	var shooters []shooter
	enc.Hazards.Pylons.Each(func(id ecs.Entity, p *component.Pylon) {
		if !p.Destroyed {
			shooters = append(shooters, shooter{id: id, at: p.Position})
		}
	})
	for _, s := range shooters {
		fireFan(enc, s.id, s.at, enc.Player, m, now)
	}
}

// spawnRiftPair places m.Count rifts rotating about the arena center.
func spawnRiftPair(enc *component.Encounter, m component.MechanicConfig, now float64) {
	n := max(m.Count, 1)
	for i := 0; i < n; i++ {
		_, ok := spawnSweep(enc, component.HazardRift, component.Sweep{
			Origin:          enc.Arena.Center,
			Angle:           2 * math.Pi * float64(i) / float64(n),
			AngularVelocity: m.Speed,
			Length:          m.Distance,
			HalfWidth:       m.Radius,
			Damage:          m.Damage,
			DamageInterval:  m.DamageInterval,
			Warning:         m.Warning,
			MaxLifetime:     m.Lifetime,
		}, now)
		if !ok {
			return
		}
	}
}

func spawnGravityWell(enc *component.Encounter, m component.MechanicConfig, now float64) {
	at := randomPoint(enc, enc.Arena.Center, m.Distance)
	spawnWell(enc, component.HazardWell, at, component.MechanicConfig{
		Radius:   m.Radius,
		Strength: m.Strength,
		Lifetime: m.Lifetime,
	}, now)
}

// shrinkArena turns the arena into a circle that closes in on its center.
func shrinkArena(enc *component.Encounter, m component.MechanicConfig, _ float64) {
	a := &enc.Arena
	a.Kind = component.ArenaCircle
	a.Center = enc.Config.Arena.Center
	a.Radius = m.Distance
	a.MinRadius = math.Min(m.Radius, m.Distance)
	a.ShrinkRate = m.Speed
	a.DamagePerSecond = m.Damage
	a.PushStrength = m.Strength
	a.Shrinking = true
}
