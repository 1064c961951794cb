package system

import (
	"math"

	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

// spawnMinions places m.Count minions on a ring around the boss.
func spawnMinions(enc *component.Encounter, m component.MechanicConfig, now float64) {
	n := max(m.Count, 1)
	offset := enc.Rand.Float64() * 2 * math.Pi
	center := enc.BossPosition()
	for i := 0; i < n; i++ {
		at := Constrain(&enc.Arena, common.RingPoint(center, m.Distance, i, n, offset))
		if _, ok := spawnMinion(enc, at, m, now); !ok {
			return
		}
	}
}

func switchMode(enc *component.Encounter, _ component.MechanicConfig, now float64) {
	switch enc.Mode.(type) {
	case component.Melee:
		setMode(enc, component.Ranged{}, now)
	case component.Ranged:
		setMode(enc, component.Melee{}, now)
	case component.Anchored, component.Chase, component.Orbit, component.Lunge, nil:
	}
}

func fireVolley(enc *component.Encounter, m component.MechanicConfig, now float64) {
	fireFan(enc, 0, enc.BossPosition(), enc.Player, m, now)
}

// spawnPuddles drops ground hazards scattered around the player.
func spawnPuddles(enc *component.Encounter, m component.MechanicConfig, now float64) {
	for i := 0; i < max(m.Count, 1); i++ {
		if _, ok := spawnArea(enc, component.HazardPuddle, randomPoint(enc, enc.Player, m.Distance), m, now); !ok {
			return
		}
	}
}

// spawnBeamRing attaches m.Count evenly spaced rotating beams to the boss.
func spawnBeamRing(enc *component.Encounter, m component.MechanicConfig, now float64) {
	n := max(m.Count, 1)
	for i := 0; i < n; i++ {
		_, ok := spawnSweep(enc, component.HazardBeam, component.Sweep{
			Anchored:        true,
			Origin:          enc.BossPosition(),
			Angle:           2 * math.Pi * float64(i) / float64(n),
			AngularVelocity: m.Speed,
			Inner:           enc.Boss.Radius,
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

func reverseBeams(enc *component.Encounter, _ component.MechanicConfig, _ float64) {
	enc.Hazards.Sweeps.Each(func(_ ecs.Entity, s *component.Sweep) {
		if s.Kind == component.HazardBeam {
			s.AngularVelocity = -s.AngularVelocity
		}
	})
}
