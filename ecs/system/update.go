package system

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

// Input is what the host supplies every tick.
type Input struct {
	DeltaTime   float64
	CurrentTime float64
	Player      cp.Vector
}

// Result is what one tick produced. Damage is the total dealt to the player;
// the host owns player health and applies it.
type Result struct {
	Events []component.Event
	Player cp.Vector
	Damage float64
}

// Frame is the per-tick working set shared by the stage systems.
type Frame struct {
	Enc    *component.Encounter
	Dt     float64
	Now    float64
	Player cp.Vector
	Damage float64
}

var ErrNoConfig = errors.New("system: nil boss config")

var stages = ecs.NewScheduler[*Frame](
	NewPhaseSystem(),
	NewMechanicSystem(),
	NewHazardSystem(),
	NewArenaSystem(),
)

// Update advances enc by one tick. Stages always run in the order phase,
// mechanics, hazards, arena. Once the encounter has ended Update only
// drains pending events.
func Update(enc *component.Encounter, in Input) Result {
	if enc == nil {
		return Result{Player: in.Player}
	}
	if enc.Terminal() {
		return Result{Events: enc.Events.Drain(), Player: in.Player}
	}

	dt := in.DeltaTime
	if dt < 0 {
		dt = 0
	}
	enc.Now = in.CurrentTime
	enc.Player = in.Player

	f := &Frame{Enc: enc, Dt: dt, Now: in.CurrentTime, Player: in.Player}
	stages.Update(f)

	enc.Player = f.Player
	return Result{Events: enc.Events.Drain(), Player: f.Player, Damage: f.Damage}
}

// NewEncounter starts an encounter at now in phase 1.
func NewEncounter(cfg *component.BossConfig, now float64) (*component.Encounter, error) {
	if cfg == nil {
		return nil, ErrNoConfig
	}
	if len(cfg.Phases) < cfg.PhaseCount() {
		return nil, fmt.Errorf("system: %s has %d phase tables for %d phases", cfg.Kind, len(cfg.Phases), cfg.PhaseCount())
	}
	enc := &component.Encounter{}
	start(enc, cfg, now)
	return enc, nil
}

// Reset returns enc to its starting state at now. It is the only way the
// phase number goes back down. Hazard ids handed out before the reset stay
// dead.
func Reset(enc *component.Encounter, now float64) {
	if enc == nil || enc.Config == nil {
		return
	}
	cfg := enc.Config
	hazards := enc.Hazards
	hazards.Reset()
	*enc = component.Encounter{Hazards: hazards}
	start(enc, cfg, now)
}

// Flee ends the encounter without a kill.
func Flee(enc *component.Encounter, now float64) {
	if enc == nil || enc.Terminal() {
		return
	}
	enc.Fled = true
	enc.Emit(component.Event{Type: component.EventBossFled, Time: now, Phase: enc.Phase, Position: enc.BossPosition()})
}

// DamageBoss applies tower damage and returns the amount that landed. An
// invulnerable or finished boss takes nothing.
func DamageBoss(enc *component.Encounter, amount, now float64) float64 {
	if enc == nil || enc.Terminal() || enc.Invulnerable || amount <= 0 {
		return 0
	}
	applied := amount
	if applied > enc.Health {
		applied = enc.Health
	}
	enc.Health -= applied
	if enc.Health <= 0 {
		enc.Health = 0
		enc.Defeated = true
		enc.Emit(component.Event{Type: component.EventBossDefeated, Time: now, Phase: enc.Phase, Position: enc.BossPosition()})
	}
	return applied
}

func start(enc *component.Encounter, cfg *component.BossConfig, now float64) {
	enc.Config = cfg
	enc.Health = cfg.BaseHealth
	enc.MaxHealth = cfg.BaseHealth
	enc.StartTime = now
	enc.Now = now
	enc.Rand = rand.New(rand.NewSource(cfg.Seed))
	enc.Arena = component.NewArena(cfg.Arena)
	enc.Contact = component.ContactCooldown{Interval: cfg.ContactCooldown}
	enc.Boss = component.Body{
		Position: cfg.Arena.Center,
		Heading:  -math.Pi / 2,
		Radius:   cfg.BodyRadius,
		Speed:    cfg.MoveSpeed,
	}
	enc.Player = cfg.Arena.Center
	if cfg.Kind == component.KindTrojanWyrm {
		worm := component.NewChain(cfg.Arena.Center, enc.Boss.Heading, cfg.Chain, cfg.MoveSpeed, cfg.TurnRate)
		enc.Worm = &worm
	}
	enterPhase(enc, 1, now)
}

func (f *Frame) hurt(amount float64, source ecs.Entity, kind component.HazardKind, at cp.Vector) {
	if amount <= 0 {
		return
	}
	f.Damage += amount
	f.Enc.Emit(component.Event{
		Type:     component.EventPlayerDamaged,
		Time:     f.Now,
		Hazard:   source,
		Kind:     kind,
		Amount:   amount,
		Position: at,
	})
}
