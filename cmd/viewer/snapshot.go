package main

import (
	"sync"

	"github.com/milk9111/bossrush/ecs/component"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

type point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type snapshot struct {
	Boss         component.BossKind `yaml:"boss"`
	Seed         int64              `yaml:"seed"`
	Time         float64            `yaml:"time"`
	Phase        int                `yaml:"phase"`
	Mode         string             `yaml:"mode"`
	Health       float64            `yaml:"health"`
	Invulnerable bool               `yaml:"invulnerable"`
	Gate         [2]int             `yaml:"gate,flow"`
	Player       point              `yaml:"player"`
	PlayerHealth float64            `yaml:"player_health"`
	BossAt       point              `yaml:"boss_position"`
	Hazards      map[string]int     `yaml:"hazards"`
}

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// copySnapshot puts a yaml summary of the encounter on the clipboard.
func copySnapshot(v *viewer) error {
	clipboardOnce.Do(func() { clipboardErr = clipboard.Init() })
	if clipboardErr != nil {
		return clipboardErr
	}

	enc := v.enc
	h := &enc.Hazards
	pos := enc.BossPosition()
	snap := snapshot{
		Boss:         enc.Config.Kind,
		Seed:         enc.Config.Seed,
		Time:         v.now,
		Phase:        enc.Phase,
		Mode:         component.ModeName(enc.Mode),
		Health:       enc.Health,
		Invulnerable: enc.Invulnerable,
		Gate:         [2]int{enc.GateDestroyed, enc.GateTotal},
		Player:       point{X: v.player.X, Y: v.player.Y},
		PlayerHealth: v.hp,
		BossAt:       point{X: pos.X, Y: pos.Y},
		Hazards: map[string]int{
			"areas":       h.Areas.Len(),
			"projectiles": h.Projectiles.Len(),
			"pylons":      h.Pylons.Len(),
			"minions":     h.Minions.Len(),
			"sweeps":      h.Sweeps.Len(),
			"wells":       h.Wells.Len(),
			"walls":       h.Walls.Len(),
			"turrets":     h.Turrets.Len(),
			"clones":      h.Clones.Len(),
		},
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}
