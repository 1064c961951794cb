package system

import "github.com/milk9111/bossrush/ecs/component"

type MechanicSystem struct{}

func NewMechanicSystem() *MechanicSystem { return &MechanicSystem{} }

func (s *MechanicSystem) Update(f *Frame) {
	enc := f.Enc
	if enc.Terminal() {
		return
	}
	for _, req := range TickMechanics(&enc.Timers, f.Now) {
		m, ok := enc.Config.Mechanic(enc.Phase, req.Mechanic)
		if !ok {
			continue
		}
		runAction(enc, m, req.Time)
	}
}

// TickMechanics fires every enabled timer that is due and re-arms it at now.
// Timers are not advanced by their interval, so a long pause yields one
// firing rather than a burst. Requests come back in table order.
func TickMechanics(table *component.MechanicTable, now float64) []component.SpawnRequest {
	if table == nil {
		return nil
	}
	var out []component.SpawnRequest
	timers := table.Timers()
	for i := range timers {
		t := &timers[i]
		if !t.Enabled || now-t.LastFire < t.Interval {
			continue
		}
		t.LastFire = now
		out = append(out, component.SpawnRequest{Mechanic: t.ID, Time: now})
	}
	return out
}

// syncModeGates enables mode-restricted mechanics of the current phase only
// while the boss is in their mode.
func syncModeGates(enc *component.Encounter, now float64) {
	pc := enc.Config.Phase(enc.Phase)
	if pc == nil {
		return
	}
	name := component.ModeName(enc.Mode)
	for _, m := range pc.Mechanics {
		if m.Mode == "" {
			continue
		}
		enc.Timers.SetEnabled(m.ID, m.Mode == name, now)
	}
}

func setMode(enc *component.Encounter, m component.Mode, now float64) {
	prev := component.ModeName(enc.Mode)
	enc.Mode = m
	if next := component.ModeName(m); next != prev {
		enc.Emit(component.Event{Type: component.EventModeChanged, Time: now, Mode: next, Phase: enc.Phase, Position: enc.BossPosition()})
	}
	syncModeGates(enc, now)
}
