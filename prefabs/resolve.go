package prefabs

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs/component"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownBoss     = errors.New("prefabs: unknown boss")
	ErrUnknownMechanic = errors.New("prefabs: unknown mechanic")
	ErrInvalidInterval = errors.New("prefabs: mechanic interval must be positive")
)

var modeNames = map[string]bool{
	"":         true,
	"anchored": true,
	"melee":    true,
	"ranged":   true,
	"chase":    true,
	"orbit":    true,
	"lunge":    true,
}

// ParseKind maps a boss name onto its kind.
func ParseKind(s string) (component.BossKind, error) {
	for _, k := range component.BossKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBoss, s)
}

// LoadBossSpec reads bosses/<kind>.yaml, preferring an on-disk copy under
// prefabs/ over the embedded one.
func LoadBossSpec(kind component.BossKind) (*BossSpec, error) {
	spec, err := LoadSpec[BossSpec](bossFile(kind))
	if err != nil {
		return nil, err
	}
	if spec.Kind == "" {
		spec.Kind = string(kind)
	}
	return &spec, nil
}

// LoadBoss loads and resolves the table for kind.
func LoadBoss(kind component.BossKind) (*component.BossConfig, error) {
	spec, err := LoadBossSpec(kind)
	if err != nil {
		return nil, err
	}
	return Resolve(spec)
}

// LoadBossFile loads and resolves a boss table from an arbitrary path.
func LoadBossFile(path string) (*component.BossConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	var spec BossSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", path, err)
	}
	return Resolve(&spec)
}

// LoadAll resolves every boss in BossKinds order.
func LoadAll() ([]*component.BossConfig, error) {
	out := make([]*component.BossConfig, 0, len(component.BossKinds))
	for _, k := range component.BossKinds {
		cfg, err := LoadBoss(k)
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, nil
}

func bossFile(kind component.BossKind) string {
	return "bosses/" + string(kind) + ".yaml"
}

// Resolve merges spec over Defaults(spec.Kind). It fails only on
// structural problems: an unknown boss or mechanic, or an explicit
// non-positive interval. Any other missing or out-of-range value keeps the
// default and is logged.
func Resolve(spec *BossSpec) (*component.BossConfig, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: nil spec", ErrUnknownBoss)
	}
	kind, err := ParseKind(spec.Kind)
	if err != nil {
		return nil, err
	}
	cfg, err := Defaults(kind)
	if err != nil {
		return nil, err
	}
	r := resolver{kind: kind}

	if spec.Name != nil && *spec.Name != "" {
		cfg.Name = *spec.Name
	}
	if spec.Seed != nil {
		cfg.Seed = *spec.Seed
	}
	r.positive(&cfg.BaseHealth, spec.BaseHealth, "base_health")
	if spec.Thresholds != nil {
		if validThresholds(spec.Thresholds) {
			cfg.Thresholds = append([]float64(nil), spec.Thresholds...)
		} else {
			log.Printf("prefabs: %s: thresholds %v must descend within (0,1) and number at most %d, using %v",
				kind, spec.Thresholds, component.MaxPhases-1, cfg.Thresholds)
		}
	}
	r.positive(&cfg.BodyRadius, spec.BodyRadius, "body_radius")
	r.nonNegative(&cfg.MoveSpeed, spec.MoveSpeed, "move_speed")
	r.nonNegative(&cfg.TurnRate, spec.TurnRate, "turn_rate")
	r.nonNegative(&cfg.RangedDistance, spec.RangedDistance, "ranged_distance")
	r.nonNegative(&cfg.ContactDamage, spec.ContactDamage, "contact_damage")
	r.nonNegative(&cfg.ContactCooldown, spec.ContactCooldown, "contact_cooldown")
	r.positive(&cfg.PlayerRadius, spec.PlayerRadius, "player_radius")
	r.nonNegative(&cfg.FleeAfter, spec.FleeAfter, "flee_after")

	if c := spec.Caps; c != nil {
		r.positiveInt(&cfg.Caps.MaxHazards, c.MaxHazards, "caps.max_hazards")
		r.positiveInt(&cfg.Caps.MaxProjectiles, c.MaxProjectiles, "caps.max_projectiles")
		r.positiveInt(&cfg.Caps.MaxMinions, c.MaxMinions, "caps.max_minions")
		r.positiveInt(&cfg.Caps.MaxClones, c.MaxClones, "caps.max_clones")
	}
	if a := spec.Arena; a != nil {
		r.arena(&cfg.Arena, a)
	}
	if m := spec.Minion; m != nil {
		r.positive(&cfg.Minion.Health, m.Health, "minion.health")
		r.nonNegative(&cfg.Minion.Speed, m.Speed, "minion.speed")
		r.positive(&cfg.Minion.Radius, m.Radius, "minion.radius")
		r.nonNegative(&cfg.Minion.ContactDamage, m.ContactDamage, "minion.contact_damage")
	}
	if c := spec.Chain; c != nil {
		r.positiveInt(&cfg.Chain.Segments, c.Segments, "chain.segments")
		r.positive(&cfg.Chain.Spacing, c.Spacing, "chain.spacing")
		r.positive(&cfg.Chain.FollowRate, c.FollowRate, "chain.follow_rate")
		r.positive(&cfg.Chain.Radius, c.Radius, "chain.radius")
	}

	for i, ps := range spec.Phases {
		if i >= len(cfg.Phases) {
			log.Printf("prefabs: %s: ignoring phase %d, boss has %d phases", kind, i+1, len(cfg.Phases))
			continue
		}
		phase := &cfg.Phases[i]
		if phase.OnEnter, err = r.mechanics(i+1, phase.OnEnter, ps.OnEnter, false); err != nil {
			return nil, err
		}
		if phase.Mechanics, err = r.mechanics(i+1, phase.Mechanics, ps.Mechanics, true); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func validThresholds(ts []float64) bool {
	if len(ts) > component.MaxPhases-1 {
		return false
	}
	prev := 1.0
	for _, t := range ts {
		if !(t > 0 && t < prev) {
			return false
		}
		prev = t
	}
	return true
}

type resolver struct {
	kind component.BossKind
}

func (r resolver) fallback(field string, got, kept any) {
	log.Printf("prefabs: %s: %s=%v out of range, using %v", r.kind, field, got, kept)
}

func (r resolver) positive(dst *float64, v *float64, field string) {
	if v == nil {
		return
	}
	if !(*v > 0) {
		r.fallback(field, *v, *dst)
		return
	}
	*dst = *v
}

func (r resolver) nonNegative(dst *float64, v *float64, field string) {
	if v == nil {
		return
	}
	if !(*v >= 0) {
		r.fallback(field, *v, *dst)
		return
	}
	*dst = *v
}

func (r resolver) positiveInt(dst *int, v *int, field string) {
	if v == nil {
		return
	}
	if *v <= 0 {
		r.fallback(field, *v, *dst)
		return
	}
	*dst = *v
}

func (r resolver) arena(dst *component.ArenaConfig, a *ArenaSpec) {
	if a.Kind != nil {
		switch k := component.ArenaKind(*a.Kind); k {
		case component.ArenaRect, component.ArenaCircle:
			dst.Kind = k
		default:
			r.fallback("arena.kind", *a.Kind, dst.Kind)
		}
	}
	if a.Center != nil {
		dst.Center = cp.Vector{X: a.Center.X, Y: a.Center.Y}
	}
	r.positive(&dst.Width, a.Width, "arena.width")
	r.positive(&dst.Height, a.Height, "arena.height")
	r.nonNegative(&dst.Padding, a.Padding, "arena.padding")
	r.nonNegative(&dst.Radius, a.Radius, "arena.radius")
	r.nonNegative(&dst.MinRadius, a.MinRadius, "arena.min_radius")
	r.nonNegative(&dst.ShrinkRate, a.ShrinkRate, "arena.shrink_rate")
	r.nonNegative(&dst.DamagePerSecond, a.DamagePerSecond, "arena.damage_per_second")
	r.nonNegative(&dst.PushStrength, a.PushStrength, "arena.push_strength")
	if 2*dst.Padding >= dst.Width || 2*dst.Padding >= dst.Height {
		log.Printf("prefabs: %s: arena.padding %v leaves no room, using %v", r.kind, dst.Padding, 0)
		dst.Padding = 0
	}
	if dst.MinRadius > dst.Radius {
		r.fallback("arena.min_radius", dst.MinRadius, dst.Radius)
		dst.MinRadius = dst.Radius
	}
}

// mechanics merges specs into base by id. periodic lists need a positive
// interval on every entry.
func (r resolver) mechanics(phase int, base []component.MechanicConfig, specs []MechanicSpec, periodic bool) ([]component.MechanicConfig, error) {
	out := append([]component.MechanicConfig(nil), base...)
	for _, ms := range specs {
		id := component.MechanicID(ms.ID)
		if !id.Known() {
			return nil, fmt.Errorf("%w: %s phase %d: %q", ErrUnknownMechanic, r.kind, phase, ms.ID)
		}
		if periodic && ms.Interval != nil && !(*ms.Interval > 0) {
			return nil, fmt.Errorf("%w: %s phase %d %s: %v", ErrInvalidInterval, r.kind, phase, id, *ms.Interval)
		}

		idx := -1
		for i := range out {
			if out[i].ID == id {
				idx = i
				break
			}
		}
		if ms.Disabled {
			if idx >= 0 {
				out = append(out[:idx], out[idx+1:]...)
			}
			continue
		}

		m := component.MechanicConfig{ID: id}
		if idx >= 0 {
			m = out[idx]
		}
		r.mechanic(phase, &m, ms)
		if periodic && !(m.Interval > 0) {
			log.Printf("prefabs: %s: phase %d %s has no interval, using %v", r.kind, phase, id, defaultInterval)
			m.Interval = defaultInterval
		}
		if idx >= 0 {
			out[idx] = m
		} else {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r resolver) mechanic(phase int, m *component.MechanicConfig, ms MechanicSpec) {
	field := func(name string) string { return fmt.Sprintf("phase %d %s.%s", phase, m.ID, name) }

	if ms.Interval != nil {
		m.Interval = *ms.Interval
	}
	if ms.Mode != nil {
		if modeNames[*ms.Mode] {
			m.Mode = *ms.Mode
		} else {
			r.fallback(field("mode"), *ms.Mode, m.Mode)
		}
	}
	r.positiveInt(&m.Count, ms.Count, field("count"))
	r.positiveInt(&m.Rows, ms.Rows, field("rows"))
	r.positiveInt(&m.Cols, ms.Cols, field("cols"))
	r.nonNegative(&m.Damage, ms.Damage, field("damage"))
	r.nonNegative(&m.Radius, ms.Radius, field("radius"))
	r.nonNegative(&m.Warning, ms.Warning, field("warning"))
	r.nonNegative(&m.Active, ms.Active, field("active"))
	r.nonNegative(&m.Lifetime, ms.Lifetime, field("lifetime"))
	r.nonNegative(&m.DamageInterval, ms.DamageInterval, field("damage_interval"))
	r.nonNegative(&m.Burst, ms.Burst, field("burst"))
	r.nonNegative(&m.Strength, ms.Strength, field("strength"))
	r.nonNegative(&m.Spread, ms.Spread, field("spread"))
	r.nonNegative(&m.Distance, ms.Distance, field("distance"))
	r.nonNegative(&m.Health, ms.Health, field("health"))
	// Speed is signed: negative rotates beams and rifts clockwise.
	if ms.Speed != nil {
		m.Speed = *ms.Speed
	}
	if m.Lifetime > 0 && m.Warning > m.Lifetime {
		r.fallback(field("warning"), m.Warning, m.Lifetime)
		m.Warning = m.Lifetime
	}
}

// SpecFrom converts a resolved table back into its yaml form with every
// field set.
func SpecFrom(cfg *component.BossConfig) BossSpec {
	spec := BossSpec{
		Kind:            string(cfg.Kind),
		Name:            ptr(cfg.Name),
		Seed:            ptr(cfg.Seed),
		BaseHealth:      ptr(cfg.BaseHealth),
		Thresholds:      append([]float64(nil), cfg.Thresholds...),
		BodyRadius:      ptr(cfg.BodyRadius),
		MoveSpeed:       ptr(cfg.MoveSpeed),
		TurnRate:        ptr(cfg.TurnRate),
		RangedDistance:  ptr(cfg.RangedDistance),
		ContactDamage:   ptr(cfg.ContactDamage),
		ContactCooldown: ptr(cfg.ContactCooldown),
		PlayerRadius:    ptr(cfg.PlayerRadius),
		FleeAfter:       ptr(cfg.FleeAfter),
		Caps: &CapsSpec{
			MaxHazards:     ptr(cfg.Caps.MaxHazards),
			MaxProjectiles: ptr(cfg.Caps.MaxProjectiles),
			MaxMinions:     ptr(cfg.Caps.MaxMinions),
			MaxClones:      ptr(cfg.Caps.MaxClones),
		},
		Arena: &ArenaSpec{
			Kind:            ptr(string(cfg.Arena.Kind)),
			Center:          &PointSpec{X: cfg.Arena.Center.X, Y: cfg.Arena.Center.Y},
			Width:           ptr(cfg.Arena.Width),
			Height:          ptr(cfg.Arena.Height),
			Padding:         ptr(cfg.Arena.Padding),
			Radius:          ptr(cfg.Arena.Radius),
			MinRadius:       ptr(cfg.Arena.MinRadius),
			ShrinkRate:      ptr(cfg.Arena.ShrinkRate),
			DamagePerSecond: ptr(cfg.Arena.DamagePerSecond),
			PushStrength:    ptr(cfg.Arena.PushStrength),
		},
		Minion: &MinionSpec{
			Health:        ptr(cfg.Minion.Health),
			Speed:         ptr(cfg.Minion.Speed),
			Radius:        ptr(cfg.Minion.Radius),
			ContactDamage: ptr(cfg.Minion.ContactDamage),
		},
	}
	if cfg.Chain.Segments > 0 {
		spec.Chain = &ChainSpec{
			Segments:   ptr(cfg.Chain.Segments),
			Spacing:    ptr(cfg.Chain.Spacing),
			FollowRate: ptr(cfg.Chain.FollowRate),
			Radius:     ptr(cfg.Chain.Radius),
		}
	}
	for _, p := range cfg.Phases {
		var ps PhaseSpec
		for _, m := range p.OnEnter {
			ps.OnEnter = append(ps.OnEnter, mechanicSpec(m, false))
		}
		for _, m := range p.Mechanics {
			ps.Mechanics = append(ps.Mechanics, mechanicSpec(m, true))
		}
		spec.Phases = append(spec.Phases, ps)
	}
	return spec
}

// mechanicSpec keeps only the fields a mechanic actually sets, so exported
// tables stay readable.
func mechanicSpec(m component.MechanicConfig, periodic bool) MechanicSpec {
	ms := MechanicSpec{ID: string(m.ID)}
	if periodic {
		ms.Interval = ptr(m.Interval)
	}
	if m.Mode != "" {
		ms.Mode = ptr(m.Mode)
	}
	ms.Count = nonZero(m.Count)
	ms.Rows = nonZero(m.Rows)
	ms.Cols = nonZero(m.Cols)
	ms.Damage = nonZero(m.Damage)
	ms.Radius = nonZero(m.Radius)
	ms.Speed = nonZero(m.Speed)
	ms.Warning = nonZero(m.Warning)
	ms.Active = nonZero(m.Active)
	ms.Lifetime = nonZero(m.Lifetime)
	ms.DamageInterval = nonZero(m.DamageInterval)
	ms.Burst = nonZero(m.Burst)
	ms.Strength = nonZero(m.Strength)
	ms.Spread = nonZero(m.Spread)
	ms.Distance = nonZero(m.Distance)
	ms.Health = nonZero(m.Health)
	return ms
}

// Export writes every table as a yaml document stream, sorted by kind.
func Export(w io.Writer, cfgs []*component.BossConfig) error {
	sorted := append([]*component.BossConfig(nil), cfgs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Kind < sorted[j].Kind })

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, cfg := range sorted {
		if err := enc.Encode(SpecFrom(cfg)); err != nil {
			return fmt.Errorf("prefabs: export %s: %w", cfg.Kind, err)
		}
	}
	return enc.Close()
}

func ptr[T any](v T) *T {
	return &v
}

func nonZero[T int | float64](v T) *T {
	if v == 0 {
		return nil
	}
	return &v
}
