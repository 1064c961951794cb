package prefabs

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs/component"
)

// Shared fallbacks. Every boss starts from these before its own table.
const (
	defaultPlayerRadius    = 18
	defaultContactCooldown = 1.0
	defaultInterval        = 5.0
	defaultPadding         = 40
)

var defaultCaps = component.Caps{MaxHazards: 48, MaxProjectiles: 96, MaxMinions: 12, MaxClones: 4}

// Defaults returns the built-in table for kind. Each call returns a fresh
// copy.
func Defaults(kind component.BossKind) (component.BossConfig, error) {
	switch kind {
	case component.KindCyberboss:
		return cyberbossDefaults(), nil
	case component.KindVoidHarbinger:
		return voidHarbingerDefaults(), nil
	case component.KindOverclocker:
		return overclockerDefaults(), nil
	case component.KindTrojanWyrm:
		return trojanWyrmDefaults(), nil
	}
	return component.BossConfig{}, fmt.Errorf("%w: %q", ErrUnknownBoss, kind)
}

func rectArena(cx, cy, w, h float64) component.ArenaConfig {
	return component.ArenaConfig{
		Kind:    component.ArenaRect,
		Center:  cp.Vector{X: cx, Y: cy},
		Width:   w,
		Height:  h,
		Padding: defaultPadding,
	}
}

func cyberbossDefaults() component.BossConfig {
	volley := component.MechanicConfig{ID: component.MechanicVolley, Interval: 1.5, Mode: "ranged", Count: 5, Spread: 0.6, Speed: 420, Radius: 10, Damage: 8, Lifetime: 3}
	puddles := component.MechanicConfig{
		ID: component.MechanicPuddleSpawn, Interval: 4, Count: 3, Distance: 220, Radius: 70,
		Damage: 6, Burst: 15, Warning: 1, Active: 3.5, Lifetime: 5, DamageInterval: 0.5,
	}
	minions := component.MechanicConfig{ID: component.MechanicMinionSpawn, Interval: 8, Count: 2, Distance: 120}
	modeSwitch := component.MechanicConfig{ID: component.MechanicModeSwitch, Interval: 6}

	return component.BossConfig{
		Kind:            component.KindCyberboss,
		Name:            "Cyberboss",
		Seed:            1,
		BaseHealth:      12000,
		Thresholds:      []float64{0.75, 0.5, 0.25},
		BodyRadius:      60,
		MoveSpeed:       140,
		TurnRate:        3,
		RangedDistance:  420,
		ContactDamage:   20,
		ContactCooldown: defaultContactCooldown,
		PlayerRadius:    defaultPlayerRadius,
		FleeAfter:       300,
		Caps:            defaultCaps,
		Arena:           rectArena(960, 540, 1920, 1080),
		Minion:          component.MinionConfig{Health: 150, Speed: 120, Radius: 16, ContactDamage: 8},
		Phases: []component.PhaseConfig{
			{Mechanics: []component.MechanicConfig{minions}},
			{Mechanics: []component.MechanicConfig{modeSwitch, volley, withInterval(minions, 10)}},
			{Mechanics: []component.MechanicConfig{modeSwitch, volley, puddles}},
			{
				OnEnter: []component.MechanicConfig{{
					ID: component.MechanicBeamRing, Count: 4, Speed: 0.6, Distance: 700, Radius: 14,
					Damage: 12, DamageInterval: 0.5, Warning: 1.5,
				}},
				Mechanics: []component.MechanicConfig{
					{ID: component.MechanicBeamReverse, Interval: 7},
					withInterval(puddles, 5),
				},
			},
		},
	}
}

func voidHarbingerDefaults() component.BossConfig {
	zones := component.MechanicConfig{
		ID: component.MechanicVoidZone, Interval: 3, Count: 2, Distance: 300, Radius: 90,
		Damage: 10, Burst: 20, Warning: 1, Active: 2.5, Lifetime: 4, DamageInterval: 0.5,
	}
	minions := component.MechanicConfig{ID: component.MechanicMinionSpawn, Interval: 9, Count: 3, Distance: 200}

	arena := rectArena(1600, 1600, 3200, 3200)
	arena.Radius = 1500
	arena.MinRadius = 150
	arena.ShrinkRate = 30
	arena.DamagePerSecond = 25
	arena.PushStrength = 2

	return component.BossConfig{
		Kind:            component.KindVoidHarbinger,
		Name:            "Void Harbinger",
		Seed:            2,
		BaseHealth:      15000,
		Thresholds:      []float64{0.7, 0.4, 0.2},
		BodyRadius:      70,
		MoveSpeed:       80,
		TurnRate:        2,
		RangedDistance:  600,
		ContactDamage:   25,
		ContactCooldown: defaultContactCooldown,
		PlayerRadius:    defaultPlayerRadius,
		FleeAfter:       360,
		Caps:            defaultCaps,
		Arena:           arena,
		Minion:          component.MinionConfig{Health: 200, Speed: 110, Radius: 18, ContactDamage: 10},
		Phases: []component.PhaseConfig{
			{Mechanics: []component.MechanicConfig{zones, minions}},
			{
				OnEnter: []component.MechanicConfig{{ID: component.MechanicPylonRing, Count: 4, Distance: 900, Radius: 40, Health: 1500}},
				Mechanics: []component.MechanicConfig{
					{ID: component.MechanicPylonVolley, Interval: 2.5, Count: 1, Speed: 380, Radius: 12, Damage: 10, Lifetime: 5},
					withInterval(zones, 4),
				},
			},
			{
				OnEnter: []component.MechanicConfig{{
					ID: component.MechanicRiftPair, Count: 2, Speed: 0.5, Distance: 1400, Radius: 30,
					Damage: 15, DamageInterval: 0.75, Warning: 2,
				}},
				Mechanics: []component.MechanicConfig{
					{ID: component.MechanicGravityWell, Interval: 9, Distance: 800, Radius: 500, Strength: 160, Lifetime: 5},
					withInterval(zones, 4),
				},
			},
			{
				OnEnter: []component.MechanicConfig{{
					ID: component.MechanicShrinkArena, Distance: 1500, Radius: 150, Speed: 30, Damage: 25, Strength: 2,
				}},
				Mechanics: []component.MechanicConfig{zones, withInterval(minions, 12)},
			},
		},
	}
}

func overclockerDefaults() component.BossConfig {
	vents := component.MechanicConfig{
		ID: component.MechanicHeatVent, Interval: 4, Count: 2, Distance: 700, Radius: 80,
		Damage: 8, Burst: 18, Warning: 1.2, Active: 2.3, Lifetime: 4, DamageInterval: 0.5,
	}

	return component.BossConfig{
		Kind:            component.KindOverclocker,
		Name:            "Overclocker",
		Seed:            3,
		BaseHealth:      14000,
		Thresholds:      []float64{0.75, 0.5, 0.25},
		BodyRadius:      65,
		MoveSpeed:       160,
		TurnRate:        1.8,
		RangedDistance:  400,
		ContactDamage:   22,
		ContactCooldown: defaultContactCooldown,
		PlayerRadius:    defaultPlayerRadius,
		FleeAfter:       300,
		Caps:            defaultCaps,
		Arena:           rectArena(960, 540, 1920, 1080),
		Minion:          component.MinionConfig{Health: 150, Speed: 120, Radius: 16, ContactDamage: 8},
		Phases: []component.PhaseConfig{
			{
				OnEnter: []component.MechanicConfig{{ID: component.MechanicWindField, Strength: 90}},
				Mechanics: []component.MechanicConfig{
					{ID: component.MechanicWindShift, Interval: 5, Spread: 1.2, Strength: 90},
					vents,
				},
			},
			{
				OnEnter: []component.MechanicConfig{{
					ID: component.MechanicTileGrid, Rows: 4, Cols: 6, Count: 5, Warning: 2, Damage: 15, DamageInterval: 0.5,
				}},
				Mechanics: []component.MechanicConfig{{ID: component.MechanicGridCycle, Interval: 6}},
			},
			{
				OnEnter: []component.MechanicConfig{{ID: component.MechanicChase}},
				Mechanics: []component.MechanicConfig{{
					ID: component.MechanicTrailDrop, Interval: 0.5, Radius: 40, Damage: 6, Warning: 0.3, Lifetime: 4, DamageInterval: 0.5,
				}},
			},
			{
				Mechanics: []component.MechanicConfig{
					{ID: component.MechanicVacuumPulse, Interval: 8, Radius: 600, Strength: 140, Lifetime: 3, Burst: 35, Distance: 180},
					withInterval(vents, 5),
				},
			},
		},
	}
}

func trojanWyrmDefaults() component.BossConfig {
	spit := component.MechanicConfig{ID: component.MechanicSpit, Interval: 2.5, Count: 3, Spread: 0.4, Speed: 380, Radius: 10, Damage: 8, Lifetime: 3}

	return component.BossConfig{
		Kind:            component.KindTrojanWyrm,
		Name:            "Trojan Wyrm",
		Seed:            4,
		BaseHealth:      16000,
		Thresholds:      []float64{0.75, 0.5, 0.25},
		BodyRadius:      40,
		MoveSpeed:       220,
		TurnRate:        2.2,
		RangedDistance:  400,
		ContactDamage:   18,
		ContactCooldown: defaultContactCooldown,
		PlayerRadius:    defaultPlayerRadius,
		FleeAfter:       360,
		Caps:            defaultCaps,
		Arena:           rectArena(1200, 800, 2400, 1600),
		Minion:          component.MinionConfig{Health: 150, Speed: 120, Radius: 16, ContactDamage: 8},
		Chain:           component.ChainConfig{Segments: 12, Spacing: 36, FollowRate: 400, Radius: 28},
		Phases: []component.PhaseConfig{
			{Mechanics: []component.MechanicConfig{spit}},
			{
				OnEnter: []component.MechanicConfig{{ID: component.MechanicTurretLine, Count: 4, Distance: 80, Radius: 30, Health: 900}},
				Mechanics: []component.MechanicConfig{
					{ID: component.MechanicWallSweep, Interval: 7, Speed: 260, Radius: 20, Distance: 260, Damage: 20, DamageInterval: 1},
					{ID: component.MechanicTurretFire, Interval: 3, Count: 1, Speed: 360, Radius: 10, Damage: 8, Lifetime: 4.5},
				},
			},
			{
				Mechanics: []component.MechanicConfig{
					{ID: component.MechanicCloneSpawn, Interval: 10, Count: 2, Speed: 200, Lifetime: 8, Health: 400, Damage: 12},
					withInterval(spit, 3),
				},
			},
			{
				OnEnter: []component.MechanicConfig{{
					ID: component.MechanicConstrictRing, Distance: 700, Radius: 220, Speed: 12, Damage: 20, Strength: 2,
				}},
				Mechanics: []component.MechanicConfig{{ID: component.MechanicLunge, Interval: 6, Speed: 700, Active: 0.8}},
			},
		},
	}
}

func withInterval(m component.MechanicConfig, interval float64) component.MechanicConfig {
	m.Interval = interval
	return m
}
