package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

type PhaseSystem struct{}

func NewPhaseSystem() *PhaseSystem { return &PhaseSystem{} }

func (s *PhaseSystem) Update(f *Frame) {
	enc := f.Enc
	if enc.Terminal() {
		return
	}
	if flee := enc.Config.FleeAfter; flee > 0 && f.Now-enc.StartTime >= flee {
		Flee(enc, f.Now)
		return
	}
	CheckTransition(enc, enc.HealthFraction(), f.Now)
}

// TargetPhase maps a health fraction onto a phase number: one plus the
// number of descending thresholds the fraction has fallen below.
func TargetPhase(thresholds []float64, fraction float64) int {
	fraction = cp.Clamp(fraction, 0, 1)
	phase := 1
	for _, t := range thresholds {
		if fraction < t {
			phase++
		}
	}
	if phase > component.MaxPhases {
		phase = component.MaxPhases
	}
	return phase
}

// CheckTransition moves enc forward to the phase implied by fraction. Phases
// are entered one at a time and stepping stops at a phase that raises an
// invulnerability gate. It returns the current phase and whether it changed.
// Re-checking the same fraction is a no-op.
func CheckTransition(enc *component.Encounter, fraction, now float64) (int, bool) {
	if enc == nil || enc.Config == nil || enc.Terminal() {
		return 0, false
	}
	target := TargetPhase(enc.Config.Thresholds, fraction)
	if last := enc.Config.PhaseCount(); target > last {
		target = last
	}
	changed := false
	for enc.Phase < target && !enc.Invulnerable {
		enterPhase(enc, enc.Phase+1, now)
		changed = true
	}
	return enc.Phase, changed
}

func enterPhase(enc *component.Encounter, phase int, now float64) {
	if enc.Phase > 0 {
		exitPhase(enc, now)
	}
	enc.Phase = phase

	enc.Timers.Clear()
	pc := enc.Config.Phase(phase)
	if pc != nil {
		for _, m := range pc.Mechanics {
			enc.Timers.Add(m.ID, m.Interval, now)
		}
	}
	enc.Emit(component.Event{Type: component.EventPhaseChanged, Time: now, Phase: phase, Position: enc.BossPosition()})
	setMode(enc, entryMode(enc.Config.Kind), now)

	if pc != nil && !enc.PhaseEntered[phase] {
		enc.PhaseEntered[phase] = true
		for _, m := range pc.OnEnter {
			runAction(enc, m, now)
		}
	}
}

// exitPhase force-expires everything bound to the phase being left. Minions
// are creatures rather than phase effects and carry over.
func exitPhase(enc *component.Encounter, now float64) {
	hz := &enc.Hazards
	var gone []expired
	gone = dropBound(&hz.Areas, enc.Phase, gone)
	gone = dropBound(&hz.Projectiles, enc.Phase, gone)
	gone = dropBound(&hz.Pylons, enc.Phase, gone)
	gone = dropBound(&hz.Sweeps, enc.Phase, gone)
	gone = dropBound(&hz.Wells, enc.Phase, gone)
	gone = dropBound(&hz.Walls, enc.Phase, gone)
	gone = dropBound(&hz.Turrets, enc.Phase, gone)
	gone = dropBound(&hz.Clones, enc.Phase, gone)
	for _, g := range gone {
		hz.Release(g.id)
		enc.Emit(component.Event{Type: component.EventHazardExpired, Time: now, Hazard: g.id, Kind: g.kind, Phase: enc.Phase})
	}

	if enc.Invulnerable {
		enc.Invulnerable = false
		enc.Emit(component.Event{Type: component.EventInvulnerabilityChanged, Time: now, Flag: false, Phase: enc.Phase})
	}
	enc.GateTotal, enc.GateDestroyed = 0, 0
	enc.Grid = nil
	enc.Wind = component.Wind{}
}

type expired struct {
	id   ecs.Entity
	kind component.HazardKind
}

type lifecycled[T any] interface {
	*T
	Life() *component.Lifecycle
}

// dropBound removes the phase-bound records of phase from set, appending
// them to out in store order.
func dropBound[T any, P lifecycled[T]](set *ecs.SparseSet[T], phase int, out []expired) []expired {
	var kinds []component.HazardKind
	dropped := set.Retain(func(_ ecs.Entity, v *T) bool {
		l := P(v).Life()
		if l.PhaseBound && l.Phase == phase {
			kinds = append(kinds, l.Kind)
			return false
		}
		return true
	})
	for i, e := range dropped {
		out = append(out, expired{id: e, kind: kinds[i]})
	}
	return out
}
