package component

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
)

// Body is the boss's own collider.
type Body struct {
	Position cp.Vector
	Velocity cp.Vector
	Heading  float64
	Radius   float64
	Speed    float64
}

// Wind pushes the player along Angle while Active.
type Wind struct {
	Active   bool
	Angle    float64
	Strength float64
}

// Force returns the wind's displacement per second.
func (w Wind) Force() cp.Vector {
	if !w.Active {
		return cp.Vector{}
	}
	return cp.ForAngle(w.Angle).Mult(w.Strength)
}

// ContactCooldown is the single timer shared by every direct-touch source.
type ContactCooldown struct {
	Interval float64
	Last     float64
	HasHit   bool
}

// Ready reports whether contact damage may be applied at now.
func (c *ContactCooldown) Ready(now float64) bool {
	return !c.HasHit || now-c.Last >= c.Interval
}

// Encounter is the complete state of one running boss fight. It is owned by
// the caller and handed to the systems each tick.
type Encounter struct {
	Config *BossConfig

	Phase        int
	Mode         Mode
	Health       float64
	MaxHealth    float64
	Invulnerable bool
	PhaseEntered [MaxPhases + 1]bool

	// Gate bookkeeping for pylon phases.
	GateTotal     int
	GateDestroyed int

	StartTime float64
	Now       float64
	// Player is the last player position seen by Update.
	Player cp.Vector

	Timers  MechanicTable
	Hazards Hazards
	Arena   Arena
	Boss    Body
	Worm    *Chain
	Grid    *TileGrid
	Wind    Wind
	Contact ContactCooldown

	Defeated bool
	Fled     bool

	Events ecs.EventQueue[Event]
	Rand   *rand.Rand
}

// HealthFraction returns Health/MaxHealth clamped to [0,1].
func (e *Encounter) HealthFraction() float64 {
	if e.MaxHealth <= 0 {
		return 0
	}
	return cp.Clamp(e.Health/e.MaxHealth, 0, 1)
}

// Terminal reports whether the encounter has ended.
func (e *Encounter) Terminal() bool {
	return e.Defeated || e.Fled
}

// Emit queues ev for the host.
func (e *Encounter) Emit(ev Event) {
	e.Events.Push(ev)
}

// BossPosition returns the boss's collider center, which is the worm head
// for segmented bosses.
func (e *Encounter) BossPosition() cp.Vector {
	if e.Worm != nil {
		return e.Worm.Head()
	}
	return e.Boss.Position
}
