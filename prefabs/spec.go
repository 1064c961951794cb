package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// BossSpec is the on-disk form of a boss table. Every field is optional;
// Resolve fills the gaps from Defaults.
type BossSpec struct {
	Kind            string      `yaml:"kind"`
	Name            *string     `yaml:"name,omitempty"`
	Seed            *int64      `yaml:"seed,omitempty"`
	Color           *YAMLColor  `yaml:"color,omitempty"`
	BaseHealth      *float64    `yaml:"base_health,omitempty"`
	Thresholds      []float64   `yaml:"thresholds,omitempty"`
	BodyRadius      *float64    `yaml:"body_radius,omitempty"`
	MoveSpeed       *float64    `yaml:"move_speed,omitempty"`
	TurnRate        *float64    `yaml:"turn_rate,omitempty"`
	RangedDistance  *float64    `yaml:"ranged_distance,omitempty"`
	ContactDamage   *float64    `yaml:"contact_damage,omitempty"`
	ContactCooldown *float64    `yaml:"contact_cooldown,omitempty"`
	PlayerRadius    *float64    `yaml:"player_radius,omitempty"`
	FleeAfter       *float64    `yaml:"flee_after,omitempty"`
	Caps            *CapsSpec   `yaml:"caps,omitempty"`
	Arena           *ArenaSpec  `yaml:"arena,omitempty"`
	Minion          *MinionSpec `yaml:"minion,omitempty"`
	Chain           *ChainSpec  `yaml:"chain,omitempty"`
	Phases          []PhaseSpec `yaml:"phases,omitempty"`
}

type CapsSpec struct {
	MaxHazards     *int `yaml:"max_hazards,omitempty"`
	MaxProjectiles *int `yaml:"max_projectiles,omitempty"`
	MaxMinions     *int `yaml:"max_minions,omitempty"`
	MaxClones      *int `yaml:"max_clones,omitempty"`
}

type ArenaSpec struct {
	Kind            *string    `yaml:"kind,omitempty"`
	Center          *PointSpec `yaml:"center,omitempty"`
	Width           *float64   `yaml:"width,omitempty"`
	Height          *float64   `yaml:"height,omitempty"`
	Padding         *float64   `yaml:"padding,omitempty"`
	Radius          *float64   `yaml:"radius,omitempty"`
	MinRadius       *float64   `yaml:"min_radius,omitempty"`
	ShrinkRate      *float64   `yaml:"shrink_rate,omitempty"`
	DamagePerSecond *float64   `yaml:"damage_per_second,omitempty"`
	PushStrength    *float64   `yaml:"push_strength,omitempty"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type MinionSpec struct {
	Health        *float64 `yaml:"health,omitempty"`
	Speed         *float64 `yaml:"speed,omitempty"`
	Radius        *float64 `yaml:"radius,omitempty"`
	ContactDamage *float64 `yaml:"contact_damage,omitempty"`
}

type ChainSpec struct {
	Segments   *int     `yaml:"segments,omitempty"`
	Spacing    *float64 `yaml:"spacing,omitempty"`
	FollowRate *float64 `yaml:"follow_rate,omitempty"`
	Radius     *float64 `yaml:"radius,omitempty"`
}

// PhaseSpec overrides one phase. Mechanics are matched to the defaults by
// id; unmatched ids are added, and Disabled drops a default mechanic.
type PhaseSpec struct {
	OnEnter   []MechanicSpec `yaml:"on_enter,omitempty"`
	Mechanics []MechanicSpec `yaml:"mechanics,omitempty"`
}

type MechanicSpec struct {
	ID             string   `yaml:"id"`
	Disabled       bool     `yaml:"disabled,omitempty"`
	Interval       *float64 `yaml:"interval,omitempty"`
	Mode           *string  `yaml:"mode,omitempty"`
	Count          *int     `yaml:"count,omitempty"`
	Damage         *float64 `yaml:"damage,omitempty"`
	Radius         *float64 `yaml:"radius,omitempty"`
	Speed          *float64 `yaml:"speed,omitempty"`
	Warning        *float64 `yaml:"warning,omitempty"`
	Active         *float64 `yaml:"active,omitempty"`
	Lifetime       *float64 `yaml:"lifetime,omitempty"`
	DamageInterval *float64 `yaml:"damage_interval,omitempty"`
	Burst          *float64 `yaml:"burst,omitempty"`
	Strength       *float64 `yaml:"strength,omitempty"`
	Spread         *float64 `yaml:"spread,omitempty"`
	Distance       *float64 `yaml:"distance,omitempty"`
	Health         *float64 `yaml:"health,omitempty"`
	Rows           *int     `yaml:"rows,omitempty"`
	Cols           *int     `yaml:"cols,omitempty"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return nil, nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}
