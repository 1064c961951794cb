package component

import "github.com/jakecoffman/cp"

// MaxPhases is the highest phase number any boss can reach.
const MaxPhases = 4

type BossKind string

const (
	KindCyberboss     BossKind = "cyberboss"
	KindVoidHarbinger BossKind = "void_harbinger"
	KindOverclocker   BossKind = "overclocker"
	KindTrojanWyrm    BossKind = "trojan_wyrm"
)

// BossKinds lists every supported boss in a stable order.
var BossKinds = []BossKind{KindCyberboss, KindVoidHarbinger, KindOverclocker, KindTrojanWyrm}

// BossConfig is the fully resolved tuning table for one boss. Every field
// holds a concrete value; fallbacks are applied by prefabs.Resolve.
type BossConfig struct {
	Kind            BossKind
	Name            string
	Seed            int64
	BaseHealth      float64
	Thresholds      []float64
	BodyRadius      float64
	MoveSpeed       float64
	TurnRate        float64
	RangedDistance  float64
	ContactDamage   float64
	ContactCooldown float64
	PlayerRadius    float64
	FleeAfter       float64
	Caps            Caps
	Arena           ArenaConfig
	Minion          MinionConfig
	Chain           ChainConfig
	Phases          []PhaseConfig
}

// Caps bound per-kind hazard counts; spawns over a cap are dropped.
type Caps struct {
	MaxHazards     int
	MaxProjectiles int
	MaxMinions     int
	MaxClones      int
}

type ArenaConfig struct {
	Kind            ArenaKind
	Center          cp.Vector
	Width           float64
	Height          float64
	Padding         float64
	Radius          float64
	MinRadius       float64
	ShrinkRate      float64
	DamagePerSecond float64
	PushStrength    float64
}

type MinionConfig struct {
	Health        float64
	Speed         float64
	Radius        float64
	ContactDamage float64
}

// ChainConfig tunes segmented bodies (the wyrm and its clones).
type ChainConfig struct {
	Segments   int
	Spacing    float64
	FollowRate float64
	Radius     float64
}

// PhaseConfig holds the one-time setup actions and the periodic mechanics of
// a phase. Both share the MechanicConfig shape; Interval is ignored for
// setup actions.
type PhaseConfig struct {
	OnEnter   []MechanicConfig
	Mechanics []MechanicConfig
}

type MechanicConfig struct {
	ID             MechanicID
	Interval       float64
	Mode           string
	Count          int
	Damage         float64
	Radius         float64
	Speed          float64
	Warning        float64
	Active         float64
	Lifetime       float64
	DamageInterval float64
	Burst          float64
	Strength       float64
	Spread         float64
	Distance       float64
	Health         float64
	Rows           int
	Cols           int
}

// PhaseCount returns the number of phases implied by the thresholds.
func (c *BossConfig) PhaseCount() int {
	if c == nil {
		return 1
	}
	n := len(c.Thresholds) + 1
	if n > MaxPhases {
		n = MaxPhases
	}
	return n
}

// Phase returns the config of phase n (1-based), or nil.
func (c *BossConfig) Phase(n int) *PhaseConfig {
	if c == nil || n < 1 || n > len(c.Phases) {
		return nil
	}
	return &c.Phases[n-1]
}

// Mechanic looks up a periodic mechanic of phase n by id.
func (c *BossConfig) Mechanic(n int, id MechanicID) (MechanicConfig, bool) {
	p := c.Phase(n)
	if p == nil {
		return MechanicConfig{}, false
	}
	for _, m := range p.Mechanics {
		if m.ID == id {
			return m, true
		}
	}
	return MechanicConfig{}, false
}
