package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

type HazardSystem struct{}

func NewHazardSystem() *HazardSystem { return &HazardSystem{} }

func (s *HazardSystem) Update(f *Frame) {
	enc := f.Enc
	if enc.Terminal() {
		return
	}

	moveBoss(f)
	f.Player = f.Player.Add(enc.Wind.Force().Mult(f.Dt))

	var gone []expired
	gone = s.updateWells(f, gone)
	gone = s.updateAreas(f, gone)
	gone = s.updateSweeps(f, gone)
	gone = s.updateWalls(f, gone)
	gone = s.updateProjectiles(f, gone)
	gone = s.updateClones(f, gone)
	s.updateMinions(f)
	s.updateGrid(f)
	s.applyContact(f)

	retire(enc, gone, f.Now)
}

func retire(enc *component.Encounter, gone []expired, now float64) {
	for _, g := range gone {
		enc.Hazards.Release(g.id)
		enc.Emit(component.Event{Type: component.EventHazardExpired, Time: now, Hazard: g.id, Kind: g.kind, Phase: enc.Phase})
	}
}

// tickReady reports whether a hazard may damage again at now.
func tickReady(hasDamaged bool, last, interval, now float64) bool {
	return !hasDamaged || now-last >= interval
}

func (s *HazardSystem) updateAreas(f *Frame, gone []expired) []expired {
	pr := f.Enc.Config.PlayerRadius
	f.Enc.Hazards.Areas.Retain(func(id ecs.Entity, h *component.AreaHazard) bool {
		h.Elapsed = cp.Clamp(f.Now-h.SpawnTime, 0, h.MaxLifetime)
		done := h.Expired(f.Now)
		if h.Armed() && common.Overlaps(h.Position, h.Radius, f.Player, pr) {
			// The burst ignores the tick cooldown and gets a last chance on
			// the removal tick.
			switch {
			case h.InPopWindow() && !h.HasDealtFinalBurst:
				h.HasDealtFinalBurst = true
				h.LastDamage = f.Now
				h.HasDamaged = true
				f.hurt(h.Burst, id, h.Kind, h.Position)
			case !done && tickReady(h.HasDamaged, h.LastDamage, h.DamageInterval, f.Now):
				h.LastDamage = f.Now
				h.HasDamaged = true
				f.hurt(h.Damage, id, h.Kind, h.Position)
			}
		}
		if done {
			gone = append(gone, expired{id: id, kind: h.Kind})
			return false
		}
		return true
	})
	return gone
}

func (s *HazardSystem) updateSweeps(f *Frame, gone []expired) []expired {
	enc := f.Enc
	pr := enc.Config.PlayerRadius
	boss := enc.BossPosition()
	enc.Hazards.Sweeps.Retain(func(id ecs.Entity, h *component.Sweep) bool {
		if h.Anchored {
			h.Origin = boss
		}
		h.Angle = common.WrapAngle(h.Angle + h.AngularVelocity*f.Dt)
		h.Elapsed = math.Max(0, f.Now-h.SpawnTime)
		if h.MaxLifetime > 0 && f.Now >= h.SpawnTime+h.MaxLifetime {
			gone = append(gone, expired{id: id, kind: h.Kind})
			return false
		}
		if h.Elapsed < h.Warning || !tickReady(h.HasDamaged, h.LastDamage, h.DamageInterval, f.Now) {
			return true
		}
		a, b := h.Segment()
		if common.SegmentDistance(f.Player, a, b) > h.HalfWidth+pr {
			return true
		}
		h.LastDamage = f.Now
		h.HasDamaged = true
		f.hurt(h.Damage, id, h.Kind, f.Player)
		return true
	})
	return gone
}

func (s *HazardSystem) updateWalls(f *Frame, gone []expired) []expired {
	pr := f.Enc.Config.PlayerRadius
	f.Enc.Hazards.Walls.Retain(func(id ecs.Entity, h *component.Wall) bool {
		h.Center = h.Center.Add(h.Velocity.Mult(f.Dt))
		h.Elapsed = math.Max(0, f.Now-h.SpawnTime)
		if f.Now >= h.SpawnTime+h.MaxLifetime {
			gone = append(gone, expired{id: id, kind: h.Kind})
			return false
		}
		if !h.Hits(f.Player, pr) || !tickReady(h.HasDamaged, h.LastDamage, h.DamageInterval, f.Now) {
			return true
		}
		h.LastDamage = f.Now
		h.HasDamaged = true
		f.hurt(h.Damage, id, h.Kind, f.Player)
		return true
	})
	return gone
}

// updateWells pulls the player into every live well, then pops the wells
// that have run their course.
func (s *HazardSystem) updateWells(f *Frame, gone []expired) []expired {
	pr := f.Enc.Config.PlayerRadius
	f.Enc.Hazards.Wells.Retain(func(id ecs.Entity, h *component.Well) bool {
		h.Elapsed = cp.Clamp(f.Now-h.SpawnTime, 0, h.MaxLifetime)
		if f.Now >= h.SpawnTime+h.MaxLifetime {
			if h.Burst > 0 && common.Overlaps(h.Position, h.BurstRadius, f.Player, pr) {
				f.hurt(h.Burst, id, h.Kind, h.Position)
			}
			gone = append(gone, expired{id: id, kind: h.Kind})
			return false
		}
		if d := f.Player.Distance(h.Position); d > 0 && d <= h.Radius+pr {
			f.Player = f.Player.LerpConst(h.Position, math.Min(d, h.Strength*f.Dt))
		}
		return true
	})
	return gone
}

func (s *HazardSystem) updateProjectiles(f *Frame, gone []expired) []expired {
	pr := f.Enc.Config.PlayerRadius
	f.Enc.Hazards.Projectiles.Retain(func(id ecs.Entity, h *component.Projectile) bool {
		h.Position = h.Position.Add(h.Velocity.Mult(f.Dt))
		h.Lifetime -= f.Dt
		if common.Overlaps(h.Position, h.Radius, f.Player, pr) {
			f.hurt(h.Damage, id, h.Kind, h.Position)
			gone = append(gone, expired{id: id, kind: h.Kind})
			return false
		}
		if h.Lifetime <= 0 {
			gone = append(gone, expired{id: id, kind: h.Kind})
			return false
		}
		return true
	})
	return gone
}

func (s *HazardSystem) updateClones(f *Frame, gone []expired) []expired {
	f.Enc.Hazards.Clones.Retain(func(id ecs.Entity, h *component.Clone) bool {
		h.Elapsed = math.Max(0, f.Now-h.SpawnTime)
		if f.Now >= h.SpawnTime+h.MaxLifetime {
			gone = append(gone, expired{id: id, kind: h.Kind})
			return false
		}
		SteerChain(&h.Body, f.Player, f.Dt)
		FollowChain(&h.Body, f.Dt)
		return true
	})
	return gone
}

func (s *HazardSystem) updateMinions(f *Frame) {
	enc := f.Enc
	enc.Hazards.Minions.Each(func(_ ecs.Entity, m *component.Minion) {
		m.Position = Constrain(&enc.Arena, m.Position.LerpConst(f.Player, m.Speed*f.Dt))
	})
}

// updateGrid flips warning tiles to lava once the cycle's warning window
// ends and burns a player standing on lava.
func (s *HazardSystem) updateGrid(f *Frame) {
	g := f.Enc.Grid
	if g == nil {
		return
	}
	if f.Now >= g.CycleStart+g.Warning {
		for i, c := range g.Cells {
			if c == component.TileWarning {
				g.Cells[i] = component.TileLava
			}
		}
	}
	i, ok := g.CellAt(f.Player)
	if !ok || g.Cells[i] != component.TileLava {
		return
	}
	if !tickReady(g.HasDamaged, g.LastDamage, g.DamageInterval, f.Now) {
		return
	}
	g.LastDamage = f.Now
	g.HasDamaged = true
	f.hurt(g.Damage, 0, component.HazardLava, g.CellCenter(i))
}

// applyContact handles every direct-touch source under one shared cooldown.
// When several sources overlap in the same tick the strongest one lands.
func (s *HazardSystem) applyContact(f *Frame) {
	enc := f.Enc
	if !enc.Contact.Ready(f.Now) {
		return
	}
	pr := enc.Config.PlayerRadius

	var (
		best   float64
		source ecs.Entity
		kind   component.HazardKind
		hit    bool
	)
	consider := func(amount float64, id ecs.Entity, k component.HazardKind) {
		if !hit || amount > best {
			best, source, kind, hit = amount, id, k, true
		}
	}

	if enc.Worm != nil {
		if enc.Worm.Touches(f.Player, pr) {
			consider(enc.Config.ContactDamage, 0, "")
		}
	} else if common.Overlaps(enc.Boss.Position, enc.Boss.Radius, f.Player, pr) {
		consider(enc.Config.ContactDamage, 0, "")
	}
	enc.Hazards.Minions.Each(func(id ecs.Entity, m *component.Minion) {
		if common.Overlaps(m.Position, m.Radius, f.Player, pr) {
			consider(m.ContactDamage, id, m.Kind)
		}
	})
	enc.Hazards.Clones.Each(func(id ecs.Entity, c *component.Clone) {
		if c.Body.Touches(f.Player, pr) {
			consider(c.ContactDamage, id, c.Kind)
		}
	})

	if !hit || best <= 0 {
		return
	}
	enc.Contact.Last = f.Now
	enc.Contact.HasHit = true
	f.Damage += best
	enc.Emit(component.Event{Type: component.EventContactDamage, Time: f.Now, Hazard: source, Kind: kind, Amount: best, Position: f.Player})
}

// DamageHazard applies damage to a destructible hazard: a pylon, minion,
// turret or clone. It reports whether the hit destroyed it. Destroying the
// last pylon of a gate lifts invulnerability in the same call.
func DamageHazard(enc *component.Encounter, id ecs.Entity, amount, now float64) bool {
	if enc == nil || enc.Terminal() || amount <= 0 {
		return false
	}
	hz := &enc.Hazards
	if p, ok := hz.Pylons.Get(id); ok {
		if !p.ApplyDamage(amount) {
			return false
		}
		enc.GateDestroyed++
		enc.Emit(component.Event{Type: component.EventPylonDestroyed, Time: now, Hazard: id, Kind: p.Kind, Phase: enc.Phase, Position: p.Position})
		if enc.Invulnerable && enc.GateDestroyed >= enc.GateTotal {
			enc.Invulnerable = false
			enc.Emit(component.Event{Type: component.EventInvulnerabilityChanged, Time: now, Flag: false, Phase: enc.Phase})
		}
		return true
	}

	destroyed := false
	var kind component.HazardKind
	if m, ok := hz.Minions.Get(id); ok {
		m.Health -= amount
		destroyed, kind = m.Health <= 0, m.Kind
		if destroyed {
			hz.Minions.Remove(id)
		}
	} else if t, ok := hz.Turrets.Get(id); ok {
		t.Health -= amount
		destroyed, kind = t.Health <= 0, t.Kind
		if destroyed {
			hz.Turrets.Remove(id)
		}
	} else if c, ok := hz.Clones.Get(id); ok {
		c.Health -= amount
		destroyed, kind = c.Health <= 0, c.Kind
		if destroyed {
			hz.Clones.Remove(id)
		}
	}
	if destroyed {
		retire(enc, []expired{{id: id, kind: kind}}, now)
	}
	return destroyed
}

func capReached(n, limit int) bool {
	return limit > 0 && n >= limit
}

func lifecycle(enc *component.Encounter, kind component.HazardKind, now float64) component.Lifecycle {
	return component.Lifecycle{Kind: kind, SpawnTime: now, Phase: enc.Phase, PhaseBound: kind != component.HazardMinion}
}

func announce(enc *component.Encounter, id ecs.Entity, kind component.HazardKind, at cp.Vector, now float64) {
	enc.Emit(component.Event{Type: component.EventHazardSpawned, Time: now, Hazard: id, Kind: kind, Phase: enc.Phase, Position: at})
}

// popWindow is the tail of a hazard's life after its warning and active
// windows; a burst hazard pops once inside it.
func popWindow(m component.MechanicConfig) float64 {
	if m.Active <= 0 {
		return 0
	}
	return math.Max(0, m.Lifetime-m.Warning-m.Active)
}

func spawnArea(enc *component.Encounter, kind component.HazardKind, at cp.Vector, m component.MechanicConfig, now float64) (ecs.Entity, bool) {
	if capReached(enc.Hazards.Count(), enc.Config.Caps.MaxHazards) {
		return 0, false
	}
	id := enc.Hazards.NewID()
	enc.Hazards.Areas.Set(id, component.AreaHazard{
		Lifecycle:      lifecycle(enc, kind, now),
		Position:       at,
		Radius:         m.Radius,
		Damage:         m.Damage,
		Burst:          m.Burst,
		Warning:        m.Warning,
		MaxLifetime:    m.Lifetime,
		DamageInterval: m.DamageInterval,
		PopWindow:      popWindow(m),
	})
	announce(enc, id, kind, at, now)
	return id, true
}

func spawnProjectile(enc *component.Encounter, source ecs.Entity, from cp.Vector, angle float64, m component.MechanicConfig, now float64) (ecs.Entity, bool) {
	if capReached(enc.Hazards.Projectiles.Len(), enc.Config.Caps.MaxProjectiles) {
		return 0, false
	}
	id := enc.Hazards.NewID()
	enc.Hazards.Projectiles.Set(id, component.Projectile{
		Lifecycle: lifecycle(enc, component.HazardProjectile, now),
		Source:    source,
		Position:  from,
		Velocity:  cp.ForAngle(angle).Mult(m.Speed),
		Radius:    m.Radius,
		Lifetime:  m.Lifetime,
		Damage:    m.Damage,
	})
	announce(enc, id, component.HazardProjectile, from, now)
	return id, true
}

// fireFan shoots m.Count projectiles spread evenly across m.Spread radians,
// centered on the bearing from -> target.
func fireFan(enc *component.Encounter, source ecs.Entity, from, target cp.Vector, m component.MechanicConfig, now float64) {
	n := m.Count
	if n < 1 {
		n = 1
	}
	aim := common.Bearing(from, target)
	for i := 0; i < n; i++ {
		offset := 0.0
		if n > 1 {
			offset = -m.Spread/2 + m.Spread*float64(i)/float64(n-1)
		}
		if _, ok := spawnProjectile(enc, source, from, aim+offset, m, now); !ok {
			return
		}
	}
}

func spawnMinion(enc *component.Encounter, at cp.Vector, m component.MechanicConfig, now float64) (ecs.Entity, bool) {
	if capReached(enc.Hazards.Minions.Len(), enc.Config.Caps.MaxMinions) {
		return 0, false
	}
	stats := enc.Config.Minion
	health := stats.Health
	if m.Health > 0 {
		health = m.Health
	}
	damage := stats.ContactDamage
	if m.Damage > 0 {
		damage = m.Damage
	}
	id := enc.Hazards.NewID()
	enc.Hazards.Minions.Set(id, component.Minion{
		Lifecycle:     lifecycle(enc, component.HazardMinion, now),
		Position:      at,
		Radius:        stats.Radius,
		Speed:         stats.Speed,
		Health:        health,
		ContactDamage: damage,
	})
	announce(enc, id, component.HazardMinion, at, now)
	return id, true
}

func spawnSweep(enc *component.Encounter, kind component.HazardKind, sw component.Sweep, now float64) (ecs.Entity, bool) {
	if capReached(enc.Hazards.Count(), enc.Config.Caps.MaxHazards) {
		return 0, false
	}
	sw.Lifecycle = lifecycle(enc, kind, now)
	id := enc.Hazards.NewID()
	enc.Hazards.Sweeps.Set(id, sw)
	announce(enc, id, kind, sw.Origin, now)
	return id, true
}

func spawnWell(enc *component.Encounter, kind component.HazardKind, at cp.Vector, m component.MechanicConfig, now float64) (ecs.Entity, bool) {
	if capReached(enc.Hazards.Count(), enc.Config.Caps.MaxHazards) {
		return 0, false
	}
	id := enc.Hazards.NewID()
	enc.Hazards.Wells.Set(id, component.Well{
		Lifecycle:   lifecycle(enc, kind, now),
		Position:    at,
		Radius:      m.Radius,
		Strength:    m.Strength,
		MaxLifetime: m.Lifetime,
		Burst:       m.Burst,
		BurstRadius: m.Distance,
	})
	announce(enc, id, kind, at, now)
	return id, true
}

// randomPoint returns a point inside the arena, at most spread away from
// around.
func randomPoint(enc *component.Encounter, around cp.Vector, spread float64) cp.Vector {
	a := enc.Rand.Float64() * 2 * math.Pi
	r := spread * math.Sqrt(enc.Rand.Float64())
	return Constrain(&enc.Arena, around.Add(cp.ForAngle(a).Mult(r)))
}
