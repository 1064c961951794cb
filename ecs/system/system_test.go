package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs/component"
)

// testConfig is a quiet boss: no mechanics, no movement and no contact
// damage, so each test adds exactly what it exercises.
func testConfig(kind component.BossKind) *component.BossConfig {
	return &component.BossConfig{
		Kind:            kind,
		Name:            "test",
		Seed:            7,
		BaseHealth:      1000,
		Thresholds:      []float64{0.75, 0.5, 0.25},
		BodyRadius:      10,
		ContactCooldown: 1,
		PlayerRadius:    10,
		Caps:            component.Caps{MaxHazards: 16, MaxProjectiles: 16, MaxMinions: 4, MaxClones: 2},
		Arena: component.ArenaConfig{
			Kind:   component.ArenaRect,
			Center: cp.Vector{X: 500, Y: 500},
			Width:  1000,
			Height: 1000,
		},
		Chain:  component.ChainConfig{Segments: 6, Spacing: 20, FollowRate: 1000, Radius: 10},
		Phases: make([]component.PhaseConfig, component.MaxPhases),
	}
}

func newTestEncounter(t *testing.T, cfg *component.BossConfig, now float64) *component.Encounter {
	t.Helper()
	enc, err := NewEncounter(cfg, now)
	if err != nil {
		t.Fatalf("NewEncounter: %v", err)
	}
	enc.Events.Drain()
	return enc
}

func eventsOf(events []component.Event, typ component.EventType) []component.Event {
	var out []component.Event
	for _, ev := range events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

// at returns the encounter time of tick i with a fixed step.
func at(start float64, i int, step float64) float64 {
	return start + float64(i)*step
}

func TestNewEncounterRejectsMissingPhases(t *testing.T) {
	cfg := testConfig(component.KindCyberboss)
	cfg.Phases = cfg.Phases[:2]
	if _, err := NewEncounter(cfg, 0); err == nil {
		t.Fatal("expected error for missing phase tables")
	}
	if _, err := NewEncounter(nil, 0); err != ErrNoConfig {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
}

func TestNewEncounterStartsInPhaseOne(t *testing.T) {
	enc, err := NewEncounter(testConfig(component.KindCyberboss), 3)
	if err != nil {
		t.Fatalf("NewEncounter: %v", err)
	}
	events := enc.Events.Drain()
	changes := eventsOf(events, component.EventPhaseChanged)
	if len(changes) != 1 || changes[0].Phase != 1 || changes[0].Time != 3 {
		t.Fatalf("expected one phase_changed(1) at 3, got %+v", changes)
	}
	if enc.Health != 1000 || enc.HealthFraction() != 1 {
		t.Fatalf("expected full health, got %v", enc.Health)
	}
	if component.ModeName(enc.Mode) != "melee" {
		t.Fatalf("expected melee entry mode, got %q", component.ModeName(enc.Mode))
	}
}

func TestDamageBoss(t *testing.T) {
	enc := newTestEncounter(t, testConfig(component.KindCyberboss), 0)

	if got := DamageBoss(enc, -5, 1); got != 0 {
		t.Fatalf("negative damage applied %v", got)
	}
	if got := DamageBoss(enc, 400, 1); got != 400 {
		t.Fatalf("expected 400 applied, got %v", got)
	}
	enc.Invulnerable = true
	if got := DamageBoss(enc, 100, 2); got != 0 {
		t.Fatalf("invulnerable boss took %v", got)
	}
	enc.Invulnerable = false
	if got := DamageBoss(enc, 5000, 3); got != 600 {
		t.Fatalf("expected overkill clamped to 600, got %v", got)
	}
	if !enc.Defeated || enc.Health != 0 {
		t.Fatalf("expected defeat at zero health, got %+v", enc.Health)
	}
	if got := DamageBoss(enc, 10, 4); got != 0 {
		t.Fatalf("defeated boss took %v", got)
	}
	if n := len(eventsOf(enc.Events.Drain(), component.EventBossDefeated)); n != 1 {
		t.Fatalf("expected one boss_defeated, got %d", n)
	}
}

func TestUpdateAfterDefeatOnlyDrains(t *testing.T) {
	enc := newTestEncounter(t, testConfig(component.KindCyberboss), 0)
	DamageBoss(enc, 1000, 1)

	res := Update(enc, Input{DeltaTime: 0.1, CurrentTime: 1.1, Player: cp.Vector{X: 100, Y: 100}})
	if len(eventsOf(res.Events, component.EventBossDefeated)) != 1 {
		t.Fatalf("expected the pending defeat event, got %+v", res.Events)
	}
	if enc.Phase != 1 {
		t.Fatalf("phase moved after defeat: %d", enc.Phase)
	}
	res = Update(enc, Input{DeltaTime: 0.1, CurrentTime: 1.2, Player: cp.Vector{X: 100, Y: 100}})
	if len(res.Events) != 0 {
		t.Fatalf("expected no further events, got %+v", res.Events)
	}
}

func TestFleeAfter(t *testing.T) {
	cfg := testConfig(component.KindOverclocker)
	cfg.FleeAfter = 5
	enc := newTestEncounter(t, cfg, 0)

	var fled []component.Event
	for i := 1; i <= 30; i++ {
		res := Update(enc, Input{DeltaTime: 0.25, CurrentTime: at(0, i, 0.25), Player: cp.Vector{X: 100, Y: 100}})
		fled = append(fled, eventsOf(res.Events, component.EventBossFled)...)
	}
	if len(fled) != 1 || fled[0].Time != 5 {
		t.Fatalf("expected one boss_fled at 5, got %+v", fled)
	}
	if !enc.Fled || !enc.Terminal() {
		t.Fatal("expected terminal fled encounter")
	}
	if got := DamageBoss(enc, 10, 8); got != 0 {
		t.Fatalf("fled boss took %v", got)
	}
}

func TestReset(t *testing.T) {
	cfg := testConfig(component.KindCyberboss)
	cfg.Phases[1].Mechanics = []component.MechanicConfig{{ID: component.MechanicPuddleSpawn, Interval: 1, Count: 1, Radius: 20, Lifetime: 10}}
	enc := newTestEncounter(t, cfg, 0)

	id, _ := spawnArea(enc, component.HazardPuddle, cp.Vector{X: 100, Y: 100}, component.MechanicConfig{Radius: 10, Lifetime: 50}, 0)
	CheckTransition(enc, 0.3, 1)
	DamageBoss(enc, 800, 1)
	if enc.Phase != 3 {
		t.Fatalf("expected phase 3 before reset, got %d", enc.Phase)
	}

	Reset(enc, 20)
	events := enc.Events.Drain()
	if enc.Phase != 1 || enc.Health != 1000 || enc.StartTime != 20 {
		t.Fatalf("reset did not restore start state: phase %d health %v start %v", enc.Phase, enc.Health, enc.StartTime)
	}
	if enc.Hazards.Count() != 0 || enc.Hazards.Alive(id) {
		t.Fatal("expected hazards cleared and old ids dead after reset")
	}
	changes := eventsOf(events, component.EventPhaseChanged)
	if len(changes) != 1 || changes[0].Phase != 1 {
		t.Fatalf("expected phase_changed(1) after reset, got %+v", changes)
	}
	if fresh := enc.Hazards.NewID(); fresh == id {
		t.Fatalf("reset reissued stale id %v", id)
	}
}

func TestNegativeDeltaIsClamped(t *testing.T) {
	cfg := testConfig(component.KindTrojanWyrm)
	cfg.MoveSpeed = 100
	cfg.TurnRate = 1
	enc := newTestEncounter(t, cfg, 0)
	head := enc.Worm.Head()

	Update(enc, Input{DeltaTime: -1, CurrentTime: 0, Player: cp.Vector{X: 100, Y: 100}})
	if enc.Worm.Head() != head {
		t.Fatalf("negative dt moved the worm from %v to %v", head, enc.Worm.Head())
	}
}
