package system

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs/component"
)

func gridEncounter(t *testing.T) *component.Encounter {
	t.Helper()
	enc := newTestEncounter(t, testConfig(component.KindOverclocker), 0)
	runAction(enc, component.MechanicConfig{
		ID: component.MechanicTileGrid, Rows: 4, Cols: 6, Count: 5, Warning: 2, Damage: 15, DamageInterval: 0.5,
	}, 0)
	if enc.Grid == nil {
		t.Fatal("tile grid not built")
	}
	return enc
}

func cellOf(g *component.TileGrid, state component.TileState) (int, bool) {
	for i, c := range g.Cells {
		if c == state {
			return i, true
		}
	}
	return 0, false
}

func TestTileGridCycles(t *testing.T) {
	enc := gridEncounter(t)
	g := enc.Grid
	safe, _ := cellOf(g, component.TileSafe)
	player := g.CellCenter(safe)

	now := 0.0
	for cycle := 1; cycle <= 6; cycle++ {
		if g.Cycles != cycle {
			t.Fatalf("expected cycle %d, got %d", cycle, g.Cycles)
		}
		if n := g.Count(component.TileSafe); n != 5 {
			t.Fatalf("cycle %d: %d safe tiles, want 5", cycle, n)
		}
		start := append([]component.TileState(nil), g.Cells...)

		// Nothing changes inside the warning window.
		for ; now+0.25 < g.CycleStart+g.Warning; now += 0.25 {
			Update(enc, Input{DeltaTime: 0.25, CurrentTime: now + 0.25, Player: player})
			for i := range start {
				if g.Cells[i] != start[i] {
					t.Fatalf("cycle %d: cell %d changed at %v inside the warning window", cycle, i, now+0.25)
				}
			}
		}
		// Warning cells burn once the window closes, safe cells stay safe.
		for ; now < g.CycleStart+6; now += 0.25 {
			Update(enc, Input{DeltaTime: 0.25, CurrentTime: now + 0.25, Player: player})
		}
		if g.Count(component.TileLava) != 19 || g.Count(component.TileSafe) != 5 || g.Count(component.TileWarning) != 0 {
			t.Fatalf("cycle %d: unexpected board lava=%d safe=%d warning=%d", cycle,
				g.Count(component.TileLava), g.Count(component.TileSafe), g.Count(component.TileWarning))
		}
		for i := range start {
			if start[i] == component.TileSafe && g.Cells[i] != component.TileSafe {
				t.Fatalf("cycle %d: safe cell %d burned", cycle, i)
			}
		}

		runAction(enc, component.MechanicConfig{ID: component.MechanicGridCycle}, now)
		if g.CycleStart != now || g.Count(component.TileLava) != 0 {
			t.Fatalf("cycle boundary at %v did not reset the board", now)
		}
		safe, _ = cellOf(g, component.TileSafe)
		player = g.CellCenter(safe)
	}
}

func TestLavaDamageSpacing(t *testing.T) {
	enc := gridEncounter(t)
	hot, ok := cellOf(enc.Grid, component.TileWarning)
	if !ok {
		t.Fatal("no warning cell")
	}
	player := enc.Grid.CellCenter(hot)

	rng := rand.New(rand.NewSource(3))
	var times []float64
	now := 0.0
	for now < 10 {
		dt := 0.01 + rng.Float64()*0.2
		now += dt
		res := Update(enc, Input{DeltaTime: dt, CurrentTime: now, Player: player})
		for _, ev := range eventsOf(res.Events, component.EventPlayerDamaged) {
			if ev.Kind == component.HazardLava {
				times = append(times, ev.Time)
			}
		}
	}

	if len(times) < 10 {
		t.Fatalf("expected steady lava damage, got %v", times)
	}
	if times[0] < 2 {
		t.Fatalf("lava burned during the warning window at %v", times[0])
	}
	for i := 1; i < len(times); i++ {
		if gap := times[i] - times[i-1]; gap < 0.5 {
			t.Fatalf("lava hits %v apart at %v", gap, times[i])
		}
	}
}

func TestWallSweepGap(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		hit    bool
	}{
		{"inside the gap", 0, false},
		{"beside the gap", 180, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := newTestEncounter(t, testConfig(component.KindTrojanWyrm), 0)
			runAction(enc, component.MechanicConfig{
				ID: component.MechanicWallSweep, Speed: 260, Radius: 20, Distance: 260, Damage: 20, DamageInterval: 1,
			}, 0)
			ids := enc.Hazards.Walls.Entities()
			if len(ids) != 1 {
				t.Fatalf("expected one wall, got %d", len(ids))
			}
			id := ids[0]
			w, _ := enc.Hazards.Walls.Get(id)
			along := w.Velocity.Normalize().Perp()
			side := tt.offset
			if w.GapOffset > 0 {
				side = -side
			}

			const dt = 0.05
			var hits int
			for i := 1; i <= 100; i++ {
				// Ride along with the bar so the player meets it every tick.
				next := w.Center.Add(w.Velocity.Mult(dt))
				player := next.Add(along.Mult(w.GapOffset + side))
				res := Update(enc, Input{DeltaTime: dt, CurrentTime: at(0, i, dt), Player: player})
				for _, ev := range eventsOf(res.Events, component.EventPlayerDamaged) {
					if ev.Hazard == id {
						hits++
					}
				}
				if !enc.Hazards.Walls.Has(id) {
					break
				}
			}
			if (hits > 0) != tt.hit {
				t.Fatalf("expected hit=%v, got %d hits", tt.hit, hits)
			}
		})
	}
}

func TestWallSweepExpires(t *testing.T) {
	enc := newTestEncounter(t, testConfig(component.KindTrojanWyrm), 0)
	runAction(enc, component.MechanicConfig{ID: component.MechanicWallSweep, Speed: 250, Radius: 20, Distance: 200, Damage: 5, DamageInterval: 1}, 0)
	for i := 1; i <= 16; i++ {
		Update(enc, Input{DeltaTime: 0.25, CurrentTime: at(0, i, 0.25), Player: farPlayer})
	}
	if n := enc.Hazards.Walls.Len(); n != 0 {
		t.Fatalf("wall still crossing after the arena height, %d left", n)
	}
}

func TestLungeResumes(t *testing.T) {
	enc := newTestEncounter(t, testConfig(component.KindTrojanWyrm), 0)
	enc.Player = farPlayer
	startHead := enc.Worm.Head()

	runAction(enc, component.MechanicConfig{ID: component.MechanicLunge, Speed: 700, Active: 0.8}, 0)
	l, ok := enc.Mode.(component.Lunge)
	if !ok || l.Until != 0.8 {
		t.Fatalf("expected a lunge until 0.8, got %#v", enc.Mode)
	}
	if _, ok := l.Resume.(component.Chase); !ok {
		t.Fatalf("expected to resume chase, got %#v", l.Resume)
	}
	runAction(enc, component.MechanicConfig{ID: component.MechanicLunge, Speed: 700, Active: 5}, 0)
	if again := enc.Mode.(component.Lunge); again.Until != 0.8 {
		t.Fatal("a second lunge replaced the running one")
	}
	events := enc.Events.Drain()

	resumedAt := -1.0
	for i := 1; i <= 30; i++ {
		now := at(0, i, 0.05)
		res := Update(enc, Input{DeltaTime: 0.05, CurrentTime: now, Player: farPlayer})
		events = append(events, res.Events...)
		if _, lunging := enc.Mode.(component.Lunge); !lunging && resumedAt < 0 {
			resumedAt = now
		}
	}
	if resumedAt < 0.8-1e-9 || resumedAt > 0.85+1e-9 {
		t.Fatalf("expected to resume at 0.8, resumed at %v", resumedAt)
	}
	if _, ok := enc.Mode.(component.Chase); !ok {
		t.Fatalf("expected chase after the lunge, got %#v", enc.Mode)
	}
	modes := eventsOf(events, component.EventModeChanged)
	if len(modes) != 2 || modes[0].Mode != "lunge" || modes[1].Mode != "chase" {
		t.Fatalf("unexpected mode changes %+v", modes)
	}
	if enc.Worm.Head().Distance(farPlayer) >= startHead.Distance(farPlayer) {
		t.Fatal("lunge did not close on the player")
	}
}

func TestConstrictRing(t *testing.T) {
	enc := newTestEncounter(t, testConfig(component.KindTrojanWyrm), 0)
	center := cp.Vector{X: 300, Y: 700}
	enc.Player = center
	runAction(enc, component.MechanicConfig{
		ID: component.MechanicConstrictRing, Distance: 700, Radius: 220, Speed: 12, Damage: 20, Strength: 2,
	}, 0)

	a := &enc.Arena
	if a.Kind != component.ArenaCircle || a.Center != center || a.Radius != 700 || a.MinRadius != 220 || !a.Shrinking {
		t.Fatalf("unexpected arena %+v", *a)
	}
	if _, ok := enc.Mode.(component.Orbit); !ok {
		t.Fatalf("expected the wyrm to orbit, got %#v", enc.Mode)
	}

	prev := a.Radius
	for i := 1; i <= 100; i++ {
		Update(enc, Input{DeltaTime: 0.5, CurrentTime: at(0, i, 0.5), Player: center})
		if a.Radius > prev {
			t.Fatalf("ring grew from %v to %v", prev, a.Radius)
		}
		prev = a.Radius
	}
	if a.Radius != 220 {
		t.Fatalf("expected the ring to stop at 220, got %v", a.Radius)
	}
	if !a.Contains(center) {
		t.Fatal("ring closed away from the player")
	}
}

func TestBeamReverse(t *testing.T) {
	enc := newTestEncounter(t, testConfig(component.KindCyberboss), 0)
	runAction(enc, component.MechanicConfig{
		ID: component.MechanicBeamRing, Count: 4, Speed: 0.6, Distance: 700, Radius: 14, Damage: 12, DamageInterval: 0.5, Warning: 1.5,
	}, 0)
	rift, _ := spawnSweep(enc, component.HazardRift, component.Sweep{AngularVelocity: 0.5, Length: 100}, 0)
	if n := enc.Hazards.Sweeps.Len(); n != 5 {
		t.Fatalf("expected 4 beams and a rift, got %d sweeps", n)
	}

	runAction(enc, component.MechanicConfig{ID: component.MechanicBeamReverse}, 0)
	before := map[uint64]float64{}
	for _, id := range enc.Hazards.Sweeps.Entities() {
		s, _ := enc.Hazards.Sweeps.Get(id)
		want := -0.6
		if id == rift {
			want = 0.5
		}
		if s.AngularVelocity != want {
			t.Fatalf("%s: angular velocity %v, want %v", s.Kind, s.AngularVelocity, want)
		}
		before[uint64(id)] = s.Angle
	}

	Update(enc, Input{DeltaTime: 0.1, CurrentTime: 0.1, Player: farPlayer})
	for _, id := range enc.Hazards.Sweeps.Entities() {
		s, _ := enc.Hazards.Sweeps.Get(id)
		step := common.WrapAngle(s.Angle - before[uint64(id)])
		if math.Abs(step-s.AngularVelocity*0.1) > 1e-9 {
			t.Fatalf("%s turned %v, want %v", s.Kind, step, s.AngularVelocity*0.1)
		}
	}
}

func TestClonesExpire(t *testing.T) {
	enc := newTestEncounter(t, testConfig(component.KindTrojanWyrm), 0)
	runAction(enc, component.MechanicConfig{
		ID: component.MechanicCloneSpawn, Count: 3, Speed: 200, Lifetime: 8, Health: 400, Damage: 12,
	}, 0)
	if n := enc.Hazards.Clones.Len(); n != 2 {
		t.Fatalf("expected the clone cap of 2, got %d", n)
	}
	enc.Events.Drain()

	var events []component.Event
	for i := 1; i <= 40; i++ {
		now := at(0, i, 0.25)
		res := Update(enc, Input{DeltaTime: 0.25, CurrentTime: now, Player: farPlayer})
		events = append(events, res.Events...)
		if now < 8 && enc.Hazards.Clones.Len() != 2 {
			t.Fatalf("clone gone early at %v", now)
		}
	}
	if enc.Hazards.Clones.Len() != 0 {
		t.Fatal("clones outlived their lifetime")
	}
	expired := 0
	for _, ev := range eventsOf(events, component.EventHazardExpired) {
		if ev.Kind == component.HazardClone {
			if ev.Time != 8 {
				t.Fatalf("clone expired at %v, want 8", ev.Time)
			}
			expired++
		}
	}
	if expired != 2 {
		t.Fatalf("expected 2 clone expiries, got %d", expired)
	}
}

func TestWindPushesPlayer(t *testing.T) {
	enc := newTestEncounter(t, testConfig(component.KindOverclocker), 0)
	runAction(enc, component.MechanicConfig{ID: component.MechanicWindField, Strength: 90}, 0)
	if !enc.Wind.Active || enc.Wind.Strength != 90 {
		t.Fatalf("wind not started: %+v", enc.Wind)
	}

	start := cp.Vector{X: 500, Y: 500}
	res := Update(enc, Input{DeltaTime: 1, CurrentTime: 1, Player: start})
	if got := res.Player.Sub(start); got.Distance(enc.Wind.Force()) > 1e-9 {
		t.Fatalf("expected a push of %v, got %v", enc.Wind.Force(), got)
	}

	for i := 0; i < 20; i++ {
		before := enc.Wind.Angle
		runAction(enc, component.MechanicConfig{ID: component.MechanicWindShift, Spread: 0.5}, 1)
		if d := math.Abs(enc.Wind.Angle - before); d > 0.5 {
			t.Fatalf("wind turned %v, limit 0.5", d)
		}
	}
	if enc.Wind.Strength != 90 {
		t.Fatal("shift without strength changed the wind speed")
	}
}

func TestSwitchMode(t *testing.T) {
	tests := []struct {
		kind component.BossKind
		want []string
	}{
		{component.KindCyberboss, []string{"ranged", "melee", "ranged"}},
		{component.KindOverclocker, []string{"anchored", "anchored", "anchored"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			enc := newTestEncounter(t, testConfig(tt.kind), 0)
			for i, want := range tt.want {
				runAction(enc, component.MechanicConfig{ID: component.MechanicModeSwitch}, float64(i))
				if got := component.ModeName(enc.Mode); got != want {
					t.Fatalf("switch %d: mode %q, want %q", i, got, want)
				}
			}
		})
	}
}

func TestVacuumPulseOnBoss(t *testing.T) {
	enc := newTestEncounter(t, testConfig(component.KindOverclocker), 0)
	runAction(enc, component.MechanicConfig{ID: component.MechanicVacuumPulse, Radius: 600, Strength: 140, Lifetime: 3, Burst: 35, Distance: 180}, 0)
	ids := enc.Hazards.Wells.Entities()
	if len(ids) != 1 {
		t.Fatalf("expected one vacuum, got %d", len(ids))
	}
	w, _ := enc.Hazards.Wells.Get(ids[0])
	if w.Kind != component.HazardVacuum || w.Position != enc.BossPosition() || w.BurstRadius != 180 {
		t.Fatalf("unexpected vacuum %+v", *w)
	}
}
