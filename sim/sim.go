// Package sim hosts an encounter headlessly: a constant-DPS tower model, a
// player with health and speed, and a pilot steering the player.
package sim

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/system"
	"github.com/milk9111/bossrush/pilot"
)

type Outcome string

const (
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
	OutcomeFled    Outcome = "fled"
	OutcomeTimeout Outcome = "timeout"
)

var ErrNoBoss = errors.New("sim: nil boss config")

// Config describes one run. Zero values take the defaults below.
type Config struct {
	Boss  *component.BossConfig
	Pilot pilot.Pilot

	TowerDPS     float64
	PlayerHealth float64
	PlayerSpeed  float64
	Tick         float64
	Limit        float64
	// Record keeps every event in Summary.Events.
	Record bool
}

const (
	defaultTowerDPS     = 120
	defaultPlayerHealth = 500
	defaultPlayerSpeed  = 260
	defaultTick         = 1.0 / 60
	defaultLimit        = 600
)

func (c *Config) withDefaults() {
	if c.TowerDPS <= 0 {
		c.TowerDPS = defaultTowerDPS
	}
	if c.PlayerHealth <= 0 {
		c.PlayerHealth = defaultPlayerHealth
	}
	if c.PlayerSpeed <= 0 {
		c.PlayerSpeed = defaultPlayerSpeed
	}
	if c.Tick <= 0 {
		c.Tick = defaultTick
	}
	if c.Limit <= 0 {
		c.Limit = defaultLimit
	}
	if c.Pilot == nil {
		c.Pilot = pilot.NewKite()
	}
}

// Summary is the result of one run.
type Summary struct {
	Boss         component.BossKind          `json:"boss"`
	Seed         int64                       `json:"seed"`
	Outcome      Outcome                     `json:"outcome"`
	Duration     float64                     `json:"duration"`
	Phase        int                         `json:"phase"`
	BossHealth   float64                     `json:"boss_health"`
	PlayerHealth float64                     `json:"player_health"`
	DamageTaken  float64                     `json:"damage_taken"`
	DamageDealt  float64                     `json:"damage_dealt"`
	GateTime     float64                     `json:"gate_time"`
	Counts       map[component.EventType]int `json:"counts"`
	Events       []component.Event           `json:"events,omitempty"`
}

// Runner steps one encounter.
type Runner struct {
	cfg Config

	Enc          *component.Encounter
	Player       cp.Vector
	PlayerHealth float64
	Now          float64

	summary Summary
}

// NewRunner starts an encounter at time zero. The player spawns a quarter
// of the arena below the boss.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Boss == nil {
		return nil, ErrNoBoss
	}
	cfg.withDefaults()

	enc, err := system.NewEncounter(cfg.Boss, 0)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:          cfg,
		Enc:          enc,
		Player:       spawnPoint(cfg.Boss),
		PlayerHealth: cfg.PlayerHealth,
		summary: Summary{
			Boss:   cfg.Boss.Kind,
			Seed:   cfg.Boss.Seed,
			Counts: map[component.EventType]int{},
		},
	}
	r.record(enc.Events.Drain())
	return r, nil
}

func spawnPoint(cfg *component.BossConfig) cp.Vector {
	return cfg.Arena.Center.Add(cp.Vector{X: 0, Y: cfg.Arena.Height / 4})
}

// Done reports whether the run has an outcome.
func (r *Runner) Done() bool {
	return r.summary.Outcome != ""
}

// Step advances one tick: pilot, encounter, towers, then the outcome check.
func (r *Runner) Step() {
	if r.Done() {
		return
	}
	dt := r.cfg.Tick
	r.Now += dt
	r.Enc.Player = r.Player

	dir := r.cfg.Pilot.Steer(pilot.Observe(r.Enc))
	r.Player = r.Player.Add(dir.Mult(r.cfg.PlayerSpeed * dt))

	res := system.Update(r.Enc, system.Input{DeltaTime: dt, CurrentTime: r.Now, Player: r.Player})
	r.Player = res.Player
	r.PlayerHealth -= res.Damage
	r.summary.DamageTaken += res.Damage
	r.record(res.Events)

	if r.Enc.Invulnerable {
		r.summary.GateTime += dt
	}
	r.fireTowers(dt)
	r.record(r.Enc.Events.Drain())

	switch {
	case r.Enc.Defeated:
		r.summary.Outcome = OutcomeVictory
	case r.Enc.Fled:
		r.summary.Outcome = OutcomeFled
	case r.PlayerHealth <= 0:
		r.summary.Outcome = OutcomeDefeat
	case r.Now >= r.cfg.Limit:
		r.summary.Outcome = OutcomeTimeout
	}
}

// fireTowers spends one tick of tower damage. While the boss is gated every
// tower focuses the first standing pylon.
func (r *Runner) fireTowers(dt float64) {
	amount := r.cfg.TowerDPS * dt
	if r.Enc.Invulnerable {
		if id, ok := firstPylon(r.Enc); ok {
			system.DamageHazard(r.Enc, id, amount, r.Now)
		}
		return
	}
	r.summary.DamageDealt += system.DamageBoss(r.Enc, amount, r.Now)
}

func firstPylon(enc *component.Encounter) (ecs.Entity, bool) {
	for _, id := range enc.Hazards.Pylons.Entities() {
		if p, ok := enc.Hazards.Pylons.Get(id); ok && !p.Destroyed {
			return id, true
		}
	}
	return 0, false
}

func (r *Runner) record(events []component.Event) {
	for _, ev := range events {
		r.summary.Counts[ev.Type]++
	}
	if r.cfg.Record {
		r.summary.Events = append(r.summary.Events, events...)
	}
}

// Run steps until the run has an outcome and returns its summary.
func (r *Runner) Run() Summary {
	for !r.Done() {
		r.Step()
	}
	return r.Summary()
}

// Summary returns the run's current summary.
func (r *Runner) Summary() Summary {
	s := r.summary
	s.Duration = r.Now
	s.Phase = r.Enc.Phase
	s.BossHealth = r.Enc.Health
	s.PlayerHealth = math.Max(r.PlayerHealth, 0)
	return s
}
