package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
)

type HazardKind string

const (
	HazardPuddle     HazardKind = "puddle"
	HazardVoidZone   HazardKind = "void_zone"
	HazardHeatVent   HazardKind = "heat_vent"
	HazardTrail      HazardKind = "trail"
	HazardProjectile HazardKind = "projectile"
	HazardPylon      HazardKind = "pylon"
	HazardMinion     HazardKind = "minion"
	HazardBeam       HazardKind = "beam"
	HazardRift       HazardKind = "rift"
	HazardWell       HazardKind = "gravity_well"
	HazardVacuum     HazardKind = "vacuum"
	HazardWall       HazardKind = "wall"
	HazardTurret     HazardKind = "turret"
	HazardClone      HazardKind = "clone"

	// Environmental damage sources without a hazard record.
	HazardLava  HazardKind = "lava"
	HazardArena HazardKind = "arena"
)

// Lifecycle is shared by every hazard record.
type Lifecycle struct {
	Kind      HazardKind
	SpawnTime float64
	Phase     int
	// PhaseBound hazards are force-expired when their phase ends.
	PhaseBound bool
}

// Life gives generic code access to the embedded lifecycle.
func (l *Lifecycle) Life() *Lifecycle { return l }

// AreaHazard is a stationary timed zone: warning, then periodic damage,
// then an optional final burst just before removal.
type AreaHazard struct {
	Lifecycle
	Position       cp.Vector
	Radius         float64
	Damage         float64
	Burst          float64
	Warning        float64
	MaxLifetime    float64
	DamageInterval float64
	PopWindow      float64

	Elapsed            float64
	LastDamage         float64
	HasDamaged         bool
	HasDealtFinalBurst bool
}

// Armed reports whether the warning window is over.
func (h *AreaHazard) Armed() bool {
	return h.Elapsed >= h.Warning
}

// Expired reports whether the hazard has reached its maximum lifetime.
func (h *AreaHazard) Expired(now float64) bool {
	return h.Elapsed >= h.MaxLifetime || now >= h.SpawnTime+h.MaxLifetime
}

// InPopWindow reports whether the hazard is inside its trailing burst window.
func (h *AreaHazard) InPopWindow() bool {
	return h.Burst > 0 && h.Elapsed >= h.MaxLifetime-h.PopWindow
}

type Projectile struct {
	Lifecycle
	Source   ecs.Entity
	Position cp.Vector
	Velocity cp.Vector
	Radius   float64
	Lifetime float64
	Damage   float64
}

// Pylon is a destructible gate objective.
type Pylon struct {
	Lifecycle
	Position  cp.Vector
	Radius    float64
	Health    float64
	MaxHealth float64
	Destroyed bool
}

// ApplyDamage reduces health and reports whether this call destroyed the
// pylon. Damage to a destroyed pylon is ignored.
func (p *Pylon) ApplyDamage(amount float64) bool {
	if p.Destroyed || amount <= 0 {
		return false
	}
	p.Health -= amount
	if p.Health > 0 {
		return false
	}
	p.Health = 0
	p.Destroyed = true
	return true
}

type Minion struct {
	Lifecycle
	Position      cp.Vector
	Radius        float64
	Speed         float64
	Health        float64
	ContactDamage float64
}

// Sweep is a rotating damaging segment from Inner to Inner+Length along
// Angle, measured from Origin. Anchored sweeps follow the boss body.
type Sweep struct {
	Lifecycle
	Anchored        bool
	Origin          cp.Vector
	Angle           float64
	AngularVelocity float64
	Inner           float64
	Length          float64
	HalfWidth       float64
	Damage          float64
	DamageInterval  float64
	Warning         float64
	MaxLifetime     float64 // 0 keeps the sweep until phase exit

	Elapsed    float64
	LastDamage float64
	HasDamaged bool
}

// Segment returns the damaging segment's endpoints.
func (s *Sweep) Segment() (cp.Vector, cp.Vector) {
	dir := cp.ForAngle(s.Angle)
	return s.Origin.Add(dir.Mult(s.Inner)), s.Origin.Add(dir.Mult(s.Inner + s.Length))
}

// Well pulls the player toward its center and may burst when it expires.
type Well struct {
	Lifecycle
	Position    cp.Vector
	Radius      float64
	Strength    float64
	MaxLifetime float64
	Burst       float64
	BurstRadius float64

	Elapsed float64
}

// Wall is a bar moving along Velocity with a gap the player can pass
// through. The bar runs perpendicular to its motion.
type Wall struct {
	Lifecycle
	Center         cp.Vector
	Velocity       cp.Vector
	HalfLength     float64
	HalfThickness  float64
	GapOffset      float64
	GapHalf        float64
	Damage         float64
	DamageInterval float64
	MaxLifetime    float64

	Elapsed    float64
	LastDamage float64
	HasDamaged bool
}

// Hits reports whether a circle at p with radius r touches the solid part
// of the wall.
func (w *Wall) Hits(p cp.Vector, r float64) bool {
	motion := w.Velocity
	if motion.LengthSq() == 0 {
		motion = cp.Vector{X: 0, Y: 1}
	}
	motion = motion.Normalize()
	along := motion.Perp()
	d := p.Sub(w.Center)
	if abs(d.Dot(motion)) > w.HalfThickness+r {
		return false
	}
	s := d.Dot(along)
	if abs(s) > w.HalfLength+r {
		return false
	}
	return abs(s-w.GapOffset) > w.GapHalf-r
}

type Turret struct {
	Lifecycle
	Position  cp.Vector
	Radius    float64
	Health    float64
	MaxHealth float64
}

// Clone is a short-lived sub-worm sharing the chain-follow body.
type Clone struct {
	Lifecycle
	Body          Chain
	MaxLifetime   float64
	Health        float64
	ContactDamage float64

	Elapsed float64
}

// Hazards is the registry of every live hazard of an encounter. Ids come
// from one allocator, so an id is unique across kinds.
type Hazards struct {
	ids ecs.Entities

	Areas       ecs.SparseSet[AreaHazard]
	Projectiles ecs.SparseSet[Projectile]
	Pylons      ecs.SparseSet[Pylon]
	Minions     ecs.SparseSet[Minion]
	Sweeps      ecs.SparseSet[Sweep]
	Wells       ecs.SparseSet[Well]
	Walls       ecs.SparseSet[Wall]
	Turrets     ecs.SparseSet[Turret]
	Clones      ecs.SparseSet[Clone]
}

// NewID allocates a hazard id.
func (h *Hazards) NewID() ecs.Entity {
	return h.ids.Create()
}

// Release frees an id once its record is gone from every store.
func (h *Hazards) Release(e ecs.Entity) {
	h.ids.Destroy(e)
}

// Alive reports whether e is a live hazard id.
func (h *Hazards) Alive(e ecs.Entity) bool {
	return h.ids.IsAlive(e)
}

// Count returns the number of live timed hazards that count against
// Caps.MaxHazards. Projectiles, minions and clones have their own caps, and
// destroyed pylons no longer count.
func (h *Hazards) Count() int {
	n := h.Areas.Len() + h.Sweeps.Len() + h.Wells.Len() + h.Walls.Len() + h.Turrets.Len()
	h.Pylons.Each(func(_ ecs.Entity, p *Pylon) {
		if !p.Destroyed {
			n++
		}
	})
	return n
}

// Reset drops every hazard and invalidates all ids.
func (h *Hazards) Reset() {
	h.Areas.Clear()
	h.Projectiles.Clear()
	h.Pylons.Clear()
	h.Minions.Clear()
	h.Sweeps.Clear()
	h.Wells.Clear()
	h.Walls.Clear()
	h.Turrets.Clear()
	h.Clones.Clear()
	h.ids.Reset()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
