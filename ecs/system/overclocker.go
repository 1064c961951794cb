package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs/component"
)

func startWind(enc *component.Encounter, m component.MechanicConfig, _ float64) {
	enc.Wind = component.Wind{
		Active:   true,
		Angle:    enc.Rand.Float64() * 2 * math.Pi,
		Strength: m.Strength,
	}
}

// shiftWind turns the wind by up to m.Spread radians either way.
func shiftWind(enc *component.Encounter, m component.MechanicConfig, _ float64) {
	if !enc.Wind.Active {
		return
	}
	enc.Wind.Angle += (enc.Rand.Float64()*2 - 1) * m.Spread
	if m.Strength > 0 {
		enc.Wind.Strength = m.Strength
	}
}

func spawnHeatVents(enc *component.Encounter, m component.MechanicConfig, now float64) {
	for i := 0; i < max(m.Count, 1); i++ {
		if _, ok := spawnArea(enc, component.HazardHeatVent, randomPoint(enc, enc.Arena.Center, m.Distance), m, now); !ok {
			return
		}
	}
}

// buildTileGrid lays the lava puzzle over the arena and starts its first
// cycle.
func buildTileGrid(enc *component.Encounter, m component.MechanicConfig, now float64) {
	a := &enc.Arena
	inner := cp.BB{L: a.Bounds.L + a.Padding, B: a.Bounds.B + a.Padding, R: a.Bounds.R - a.Padding, T: a.Bounds.T - a.Padding}
	g := component.NewTileGrid(inner, m.Rows, m.Cols, m.Count)
	g.Warning = m.Warning
	g.Damage = m.Damage
	g.DamageInterval = m.DamageInterval
	enc.Grid = g
	cycleTileGrid(enc, m, now)
}

// cycleTileGrid starts a new cycle: SafeCount random cells become safe and
// every other cell warns before turning to lava.
func cycleTileGrid(enc *component.Encounter, _ component.MechanicConfig, now float64) {
	g := enc.Grid
	if g == nil {
		return
	}
	for i := range g.Cells {
		g.Cells[i] = component.TileWarning
	}
	for _, i := range enc.Rand.Perm(len(g.Cells))[:g.SafeCount] {
		g.Cells[i] = component.TileSafe
	}
	g.CycleStart = now
	g.Cycles++
}

func startChase(enc *component.Encounter, _ component.MechanicConfig, now float64) {
	setMode(enc, component.Chase{}, now)
}

func dropTrail(enc *component.Encounter, m component.MechanicConfig, now float64) {
	spawnArea(enc, component.HazardTrail, enc.BossPosition(), m, now)
}

// vacuumPulse opens a pull field on the boss that bursts when it closes.
func vacuumPulse(enc *component.Encounter, m component.MechanicConfig, now float64) {
	spawnWell(enc, component.HazardVacuum, enc.BossPosition(), m, now)
}
