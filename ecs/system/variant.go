package system

import "github.com/milk9111/bossrush/ecs/component"

// action carries out one mechanic or phase-entry setup.
type action func(enc *component.Encounter, m component.MechanicConfig, now float64)

var actions = map[component.MechanicID]action{
	component.MechanicMinionSpawn: spawnMinions,

	component.MechanicModeSwitch:  switchMode,
	component.MechanicVolley:      fireVolley,
	component.MechanicPuddleSpawn: spawnPuddles,
	component.MechanicBeamRing:    spawnBeamRing,
	component.MechanicBeamReverse: reverseBeams,

	component.MechanicVoidZone:    spawnVoidZones,
	component.MechanicPylonRing:   spawnPylonRing,
	component.MechanicPylonVolley: firePylonVolley,
	component.MechanicRiftPair:    spawnRiftPair,
	component.MechanicGravityWell: spawnGravityWell,
	component.MechanicShrinkArena: shrinkArena,

	component.MechanicWindField:   startWind,
	component.MechanicWindShift:   shiftWind,
	component.MechanicHeatVent:    spawnHeatVents,
	component.MechanicTileGrid:    buildTileGrid,
	component.MechanicGridCycle:   cycleTileGrid,
	component.MechanicChase:       startChase,
	component.MechanicTrailDrop:   dropTrail,
	component.MechanicVacuumPulse: vacuumPulse,

	component.MechanicSpit:          spit,
	component.MechanicTurretLine:    spawnTurretLine,
	component.MechanicWallSweep:     sweepWall,
	component.MechanicTurretFire:    fireTurrets,
	component.MechanicCloneSpawn:    spawnClones,
	component.MechanicConstrictRing: constrictRing,
	component.MechanicLunge:         lunge,
}

func runAction(enc *component.Encounter, m component.MechanicConfig, now float64) {
	if a, ok := actions[m.ID]; ok {
		a(enc, m, now)
	}
}

// entryMode is the mode a boss takes on entering any phase. Phase setup
// actions may override it.
func entryMode(kind component.BossKind) component.Mode {
	switch kind {
	case component.KindCyberboss:
		return component.Melee{}
	case component.KindTrojanWyrm:
		return component.Chase{}
	default:
		return component.Anchored{}
	}
}
