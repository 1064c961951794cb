package component

type MechanicID string

const (
	MechanicMinionSpawn MechanicID = "minion_spawn"

	MechanicModeSwitch  MechanicID = "mode_switch"
	MechanicVolley      MechanicID = "volley"
	MechanicPuddleSpawn MechanicID = "puddle_spawn"
	MechanicBeamRing    MechanicID = "beam_ring"
	MechanicBeamReverse MechanicID = "beam_reverse"

	MechanicVoidZone    MechanicID = "void_zone"
	MechanicPylonRing   MechanicID = "pylon_ring"
	MechanicPylonVolley MechanicID = "pylon_volley"
	MechanicRiftPair    MechanicID = "rift_pair"
	MechanicGravityWell MechanicID = "gravity_well"
	MechanicShrinkArena MechanicID = "shrink_arena"

	MechanicWindField   MechanicID = "wind_field"
	MechanicWindShift   MechanicID = "wind_shift"
	MechanicHeatVent    MechanicID = "heat_vent"
	MechanicTileGrid    MechanicID = "tile_grid"
	MechanicGridCycle   MechanicID = "grid_cycle"
	MechanicChase       MechanicID = "chase"
	MechanicTrailDrop   MechanicID = "trail_drop"
	MechanicVacuumPulse MechanicID = "vacuum_pulse"

	MechanicSpit          MechanicID = "spit"
	MechanicTurretLine    MechanicID = "turret_line"
	MechanicWallSweep     MechanicID = "wall_sweep"
	MechanicTurretFire    MechanicID = "turret_fire"
	MechanicCloneSpawn    MechanicID = "clone_spawn"
	MechanicConstrictRing MechanicID = "constrict_ring"
	MechanicLunge         MechanicID = "lunge"
)

var knownMechanics = map[MechanicID]bool{
	MechanicMinionSpawn: true, MechanicModeSwitch: true, MechanicVolley: true,
	MechanicPuddleSpawn: true, MechanicBeamRing: true, MechanicBeamReverse: true,
	MechanicVoidZone: true, MechanicPylonRing: true, MechanicPylonVolley: true,
	MechanicRiftPair: true, MechanicGravityWell: true, MechanicShrinkArena: true,
	MechanicWindField: true, MechanicWindShift: true, MechanicHeatVent: true,
	MechanicTileGrid: true, MechanicGridCycle: true, MechanicChase: true,
	MechanicTrailDrop: true, MechanicVacuumPulse: true, MechanicSpit: true,
	MechanicTurretLine: true, MechanicWallSweep: true, MechanicTurretFire: true,
	MechanicCloneSpawn: true, MechanicConstrictRing: true, MechanicLunge: true,
}

// Known reports whether id names a mechanic the engine can run.
func (id MechanicID) Known() bool {
	return knownMechanics[id]
}

// MechanicTimer is the cooldown bookkeeping of one mechanic. It fires when
// now-LastFire >= Interval.
type MechanicTimer struct {
	ID       MechanicID
	Interval float64
	LastFire float64
	Enabled  bool
}

// MechanicTable maps mechanic ids to timers while keeping insertion order,
// which is the firing order within a tick.
type MechanicTable struct {
	timers []MechanicTimer
	index  map[MechanicID]int
}

// SpawnRequest is emitted by the scheduler when a timer fires.
type SpawnRequest struct {
	Mechanic MechanicID
	Time     float64
}

// Add registers or replaces a timer, armed at now.
func (t *MechanicTable) Add(id MechanicID, interval, now float64) {
	if t.index == nil {
		t.index = map[MechanicID]int{}
	}
	timer := MechanicTimer{ID: id, Interval: interval, LastFire: now, Enabled: true}
	if i, ok := t.index[id]; ok {
		t.timers[i] = timer
		return
	}
	t.index[id] = len(t.timers)
	t.timers = append(t.timers, timer)
}

// Get returns the timer for id.
func (t *MechanicTable) Get(id MechanicID) (*MechanicTimer, bool) {
	i, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return &t.timers[i], true
}

// Arm restarts id's cooldown from now.
func (t *MechanicTable) Arm(id MechanicID, now float64) {
	if timer, ok := t.Get(id); ok {
		timer.LastFire = now
	}
}

// SetEnabled toggles id; enabling re-arms it from now.
func (t *MechanicTable) SetEnabled(id MechanicID, enabled bool, now float64) {
	timer, ok := t.Get(id)
	if !ok || timer.Enabled == enabled {
		return
	}
	timer.Enabled = enabled
	if enabled {
		t.Arm(id, now)
	}
}

// Clear drops every timer.
func (t *MechanicTable) Clear() {
	t.timers = t.timers[:0]
	t.index = nil
}

// Len returns the number of registered timers.
func (t *MechanicTable) Len() int {
	return len(t.timers)
}

// Timers exposes the table in firing order. Callers may mutate entries but
// not the slice.
func (t *MechanicTable) Timers() []MechanicTimer {
	return t.timers
}
