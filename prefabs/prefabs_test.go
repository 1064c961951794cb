package prefabs

import (
	"bytes"
	"errors"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/milk9111/bossrush/ecs/component"
	"gopkg.in/yaml.v3"
)

func TestDefaultsAllKinds(t *testing.T) {
	for _, kind := range component.BossKinds {
		t.Run(string(kind), func(t *testing.T) {
			cfg, err := Defaults(kind)
			if err != nil {
				t.Fatalf("Defaults: %v", err)
			}
			if cfg.Kind != kind || len(cfg.Phases) != component.MaxPhases || cfg.PhaseCount() != component.MaxPhases {
				t.Fatalf("incomplete table: kind=%s phases=%d", cfg.Kind, len(cfg.Phases))
			}
			for i, p := range cfg.Phases {
				for _, m := range p.Mechanics {
					if !m.ID.Known() || m.Interval <= 0 {
						t.Fatalf("phase %d: bad mechanic %+v", i+1, m)
					}
				}
				for _, m := range p.OnEnter {
					if !m.ID.Known() {
						t.Fatalf("phase %d: unknown setup action %q", i+1, m.ID)
					}
				}
			}

			again, _ := Defaults(kind)
			again.Phases[0].Mechanics = nil
			if len(cfg.Phases[0].Mechanics) == 0 {
				t.Fatal("Defaults shares phase tables between calls")
			}
		})
	}
	if _, err := Defaults("nope"); !errors.Is(err, ErrUnknownBoss) {
		t.Fatalf("expected ErrUnknownBoss, got %v", err)
	}
}

func TestResolveFallbacks(t *testing.T) {
	spec := &BossSpec{
		Kind:       "cyberboss",
		Name:       ptr("Cyberboss EX"),
		BaseHealth: ptr(-5.0),
		Thresholds: []float64{0.5, 0.75},
		MoveSpeed:  ptr(200.0),
		Arena:      &ArenaSpec{Padding: ptr(5000.0)},
		Caps:       &CapsSpec{MaxMinions: ptr(0)},
		Phases: []PhaseSpec{
			{},
			{Mechanics: []MechanicSpec{
				{ID: "volley", Count: ptr(9), Mode: ptr("sideways")},
				{ID: "puddle_spawn", Warning: ptr(9.0), Lifetime: ptr(2.0)},
			}},
		},
	}
	cfg, err := Resolve(spec)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	def, _ := Defaults(component.KindCyberboss)

	if cfg.Name != "Cyberboss EX" || cfg.MoveSpeed != 200 {
		t.Fatalf("valid overrides dropped: %q %v", cfg.Name, cfg.MoveSpeed)
	}
	if cfg.BaseHealth != def.BaseHealth {
		t.Fatalf("negative health not rejected: %v", cfg.BaseHealth)
	}
	if !reflect.DeepEqual(cfg.Thresholds, def.Thresholds) {
		t.Fatalf("ascending thresholds accepted: %v", cfg.Thresholds)
	}
	if cfg.Arena.Padding != 0 {
		t.Fatalf("oversized padding kept: %v", cfg.Arena.Padding)
	}
	if cfg.Caps.MaxMinions != def.Caps.MaxMinions {
		t.Fatalf("zero cap accepted: %v", cfg.Caps.MaxMinions)
	}

	volley, ok := cfg.Mechanic(2, component.MechanicVolley)
	if !ok || volley.Count != 9 || volley.Mode != "ranged" || volley.Speed != 420 {
		t.Fatalf("volley merge wrong: %+v", volley)
	}
	puddles, ok := cfg.Mechanic(2, component.MechanicPuddleSpawn)
	if !ok || puddles.Interval != defaultInterval || puddles.Warning != 2 || puddles.Lifetime != 2 {
		t.Fatalf("added mechanic not normalised: %+v", puddles)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		spec *BossSpec
		want error
	}{
		{"nil", nil, ErrUnknownBoss},
		{"unknown boss", &BossSpec{Kind: "dragon"}, ErrUnknownBoss},
		{"unknown mechanic", &BossSpec{Kind: "overclocker", Phases: []PhaseSpec{{Mechanics: []MechanicSpec{{ID: "laser"}}}}}, ErrUnknownMechanic},
		{"zero interval", &BossSpec{Kind: "trojan_wyrm", Phases: []PhaseSpec{{Mechanics: []MechanicSpec{{ID: "spit", Interval: ptr(0.0)}}}}}, ErrInvalidInterval},
		{"negative interval", &BossSpec{Kind: "void_harbinger", Phases: []PhaseSpec{{Mechanics: []MechanicSpec{{ID: "void_zone", Interval: ptr(-1.0)}}}}}, ErrInvalidInterval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(tt.spec); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestResolveDisabled(t *testing.T) {
	cfg, err := Resolve(&BossSpec{
		Kind: "cyberboss",
		Phases: []PhaseSpec{
			{Mechanics: []MechanicSpec{{ID: "minion_spawn", Disabled: true}}},
			{Mechanics: []MechanicSpec{{ID: "volley", Disabled: true}}},
		},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(cfg.Phases[0].Mechanics) != 0 {
		t.Fatalf("phase 1 still has %+v", cfg.Phases[0].Mechanics)
	}
	if _, ok := cfg.Mechanic(2, component.MechanicVolley); ok {
		t.Fatal("disabled volley kept")
	}
	if _, ok := cfg.Mechanic(2, component.MechanicModeSwitch); !ok {
		t.Fatal("disabling volley dropped its neighbour")
	}
}

func TestLoadBossFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wyrm.yaml")
	data := []byte("kind: trojan_wyrm\nseed: 99\nchain:\n  segments: 20\nphases:\n  - mechanics:\n      - id: spit\n        count: 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadBossFile(path)
	if err != nil {
		t.Fatalf("LoadBossFile: %v", err)
	}
	if cfg.Seed != 99 || cfg.Chain.Segments != 20 || cfg.Chain.Spacing != 36 {
		t.Fatalf("unexpected table: seed=%d chain=%+v", cfg.Seed, cfg.Chain)
	}
	if spit, _ := cfg.Mechanic(1, component.MechanicSpit); spit.Count != 5 || spit.Interval != 2.5 {
		t.Fatalf("spit merge wrong: %+v", spit)
	}

	if _, err := LoadBossFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(bad, []byte("kind: [oops"), 0o644)
	if _, err := LoadBossFile(bad); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestExportRoundTrip(t *testing.T) {
	var cfgs []*component.BossConfig
	for _, kind := range component.BossKinds {
		cfg, _ := Defaults(kind)
		cfgs = append(cfgs, &cfg)
	}

	var buf bytes.Buffer
	if err := Export(&buf, cfgs); err != nil {
		t.Fatalf("Export: %v", err)
	}

	dec := yaml.NewDecoder(&buf)
	seen := 0
	for {
		var spec BossSpec
		err := dec.Decode(&spec)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		got, err := Resolve(&spec)
		if err != nil {
			t.Fatalf("Resolve %s: %v", spec.Kind, err)
		}
		want, _ := Defaults(got.Kind)
		if !reflect.DeepEqual(*got, want) {
			t.Fatalf("%s changed across export:\n got %+v\nwant %+v", got.Kind, *got, want)
		}
		seen++
	}
	if seen != len(cfgs) {
		t.Fatalf("exported %d documents, want %d", seen, len(cfgs))
	}
}

func TestLoadAllEmbedded(t *testing.T) {
	cfgs, err := LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(cfgs) != len(component.BossKinds) {
		t.Fatalf("got %d tables", len(cfgs))
	}
	for i, cfg := range cfgs {
		if cfg.Kind != component.BossKinds[i] {
			t.Fatalf("table %d is %s", i, cfg.Kind)
		}
	}

	spec, err := LoadBossSpec(component.KindCyberboss)
	if err != nil {
		t.Fatalf("LoadBossSpec: %v", err)
	}
	if spec.Color == nil || spec.Color.Color == nil {
		t.Fatal("cyberboss color missing")
	}
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{`"#ff8000"`, color.NRGBA{R: 255, G: 128, A: 255}, false},
		{`"10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{`"#fff"`, color.NRGBA{}, true},
		{`"#gg0000"`, color.NRGBA{}, true},
		{`[1, 2]`, color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tt.in), &c)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if c.Color != tt.want {
				t.Fatalf("got %v, want %v", c.Color, tt.want)
			}
			out, err := c.MarshalYAML()
			if err != nil {
				t.Fatal(err)
			}
			var back YAMLColor
			if err := yaml.Unmarshal([]byte(`"`+out.(string)+`"`), &back); err != nil || back.Color != tt.want {
				t.Fatalf("marshal round trip: %v %v", out, err)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Change
		ok   bool
	}{
		{"prefabs/bosses/overclocker.yaml", Change{Path: "prefabs/bosses/overclocker.yaml", Boss: component.KindOverclocker}, true},
		{"prefabs/bosses/dragon.yml", Change{}, false},
		{"prefabs/scripts/kite.tengo", Change{Path: "prefabs/scripts/kite.tengo", Script: "kite"}, true},
		{"prefabs/scripts/notes.txt", Change{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := classify(tt.path)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("classify(%q) = %+v %v", tt.path, got, ok)
			}
		})
	}
}

func TestLoadScript(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"kite", "scripts/kite.tengo"},
		{"kite.tengo", "scripts/kite.tengo"},
		{"prefabs/scripts/orbit.tengo", "scripts/orbit.tengo"},
		{"scripts/orbit", "scripts/orbit.tengo"},
	}
	for _, tt := range tests {
		if got := cleanScriptPath(tt.in); got != tt.want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	for _, name := range []string{"kite", "orbit"} {
		if data, err := LoadScript(name); err != nil || len(data) == 0 {
			t.Fatalf("LoadScript(%s): %v", name, err)
		}
	}
	if _, err := LoadScript("missing"); err == nil {
		t.Fatal("expected error for a missing script")
	}
}
