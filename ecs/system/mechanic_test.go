package system

import (
	"testing"

	"github.com/milk9111/bossrush/ecs/component"
)

func requestIDs(reqs []component.SpawnRequest) []component.MechanicID {
	out := make([]component.MechanicID, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.Mechanic)
	}
	return out
}

// Timers with intervals 5 and 8 both come due at t=40.
func TestTickMechanicsSameTick(t *testing.T) {
	tests := []struct {
		name  string
		order []component.MechanicID
	}{
		{"volley first", []component.MechanicID{component.MechanicVolley, component.MechanicPuddleSpawn}},
		{"puddle first", []component.MechanicID{component.MechanicPuddleSpawn, component.MechanicVolley}},
	}
	intervals := map[component.MechanicID]float64{
		component.MechanicVolley:      5,
		component.MechanicPuddleSpawn: 8,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var table component.MechanicTable
			for _, id := range tt.order {
				table.Add(id, intervals[id], 40-intervals[id])
			}
			if got := TickMechanics(&table, 39.9); len(got) != 0 {
				t.Fatalf("fired early: %v", requestIDs(got))
			}

			got := requestIDs(TickMechanics(&table, 40))
			if len(got) != 2 || got[0] != tt.order[0] || got[1] != tt.order[1] {
				t.Fatalf("expected %v, got %v", tt.order, got)
			}
			for _, id := range tt.order {
				timer, _ := table.Get(id)
				if timer.LastFire != 40 {
					t.Fatalf("%s not re-armed at 40: %v", id, timer.LastFire)
				}
			}
			if got := TickMechanics(&table, 44.9); len(got) != 0 {
				t.Fatalf("fired again before interval: %v", requestIDs(got))
			}
			if got := requestIDs(TickMechanics(&table, 45)); len(got) != 1 || got[0] != component.MechanicVolley {
				t.Fatalf("expected only volley at 45, got %v", got)
			}
		})
	}
}

func TestTickMechanicsNoCatchUp(t *testing.T) {
	var table component.MechanicTable
	table.Add(component.MechanicSpit, 1, 0)

	if got := TickMechanics(&table, 100); len(got) != 1 {
		t.Fatalf("expected one firing after a long pause, got %d", len(got))
	}
	if got := TickMechanics(&table, 100.5); len(got) != 0 {
		t.Fatalf("expected no burst after a pause, got %d", len(got))
	}
	if got := TickMechanics(&table, 101); len(got) != 1 {
		t.Fatalf("expected next firing at 101, got %d", len(got))
	}
}

func TestTickMechanicsSkipsDisabled(t *testing.T) {
	var table component.MechanicTable
	table.Add(component.MechanicVolley, 1, 0)
	table.SetEnabled(component.MechanicVolley, false, 0)

	if got := TickMechanics(&table, 10); len(got) != 0 {
		t.Fatalf("disabled timer fired: %v", requestIDs(got))
	}
	table.SetEnabled(component.MechanicVolley, true, 10)
	if got := TickMechanics(&table, 10.5); len(got) != 0 {
		t.Fatal("re-enabled timer should be re-armed from the enable time")
	}
	if got := TickMechanics(&table, 11); len(got) != 1 {
		t.Fatal("re-enabled timer did not fire")
	}
}

func TestModeGatedMechanics(t *testing.T) {
	cfg := testConfig(component.KindCyberboss)
	cfg.Phases[0].Mechanics = []component.MechanicConfig{
		{ID: component.MechanicVolley, Interval: 1, Mode: "ranged", Count: 1, Speed: 100, Radius: 5, Lifetime: 1},
		{ID: component.MechanicModeSwitch, Interval: 10},
	}
	enc := newTestEncounter(t, cfg, 0)

	volley, _ := enc.Timers.Get(component.MechanicVolley)
	if volley.Enabled {
		t.Fatal("ranged volley enabled in melee mode")
	}

	var events []component.Event
	for i := 1; i <= 60; i++ {
		res := Update(enc, Input{DeltaTime: 0.25, CurrentTime: at(0, i, 0.25), Player: farPlayer})
		events = append(events, res.Events...)
	}

	modes := eventsOf(events, component.EventModeChanged)
	if len(modes) == 0 || modes[0].Mode != "ranged" || modes[0].Time != 10 {
		t.Fatalf("expected switch to ranged at 10, got %+v", modes)
	}
	for _, ev := range eventsOf(events, component.EventHazardSpawned) {
		if ev.Kind != component.HazardProjectile {
			continue
		}
		if ev.Time < 11 || ev.Time > 20 {
			t.Fatalf("volley fired outside ranged mode at %v", ev.Time)
		}
	}
	if n := len(eventsOf(events, component.EventHazardSpawned)); n == 0 {
		t.Fatal("volley never fired in ranged mode")
	}
}
