package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/system"
	"github.com/milk9111/bossrush/pilot"
	"github.com/milk9111/bossrush/prefabs"
	"golang.org/x/image/colornames"
)

const (
	screenW = 1280
	screenH = 720

	tick        = 1.0 / 60
	playerSpeed = 260.0
	logLines    = 8
)

type viewer struct {
	kind   component.BossKind
	script string
	dps    float64
	auto   bool
	paused bool
	color  color.Color

	enc    *component.Encounter
	pilot  pilot.Pilot
	player cp.Vector
	hp     float64
	now    float64

	log     []string
	watcher *prefabs.Watcher

	ui        *ebitenui.UI
	pauseInfo *widget.Text
}

func newViewer(kind component.BossKind, script string, dps float64, auto bool) (*viewer, error) {
	v := &viewer{kind: kind, script: script, dps: dps, auto: auto}
	if err := v.load(); err != nil {
		return nil, err
	}
	v.ui = newPauseUI(v)
	return v, nil
}

// load resolves the boss table and pilot and starts a fresh encounter.
func (v *viewer) load() error {
	cfg, err := prefabs.LoadBoss(v.kind)
	if err != nil {
		return err
	}
	enc, err := system.NewEncounter(cfg, 0)
	if err != nil {
		return err
	}

	var p pilot.Pilot = pilot.NewKite()
	if v.script != "" {
		s, err := pilot.LoadScript(v.script)
		if err != nil {
			return err
		}
		s.Fallback = p
		p = s
	}

	v.color = colornames.Orchid
	if spec, err := prefabs.LoadBossSpec(v.kind); err == nil && spec.Color != nil && spec.Color.Color != nil {
		v.color = spec.Color.Color
	}
	v.enc = enc
	v.pilot = p
	v.now = 0
	v.hp = 500
	v.player = cfg.Arena.Center.Add(cp.Vector{X: 0, Y: cfg.Arena.Height / 4})
	v.log = v.log[:0]
	v.push(enc.Events.Drain())
	return nil
}

func (v *viewer) Update() error {
	v.pollReload()
	v.handleKeys()
	if v.paused {
		v.pauseInfo.Label = v.pauseLabel()
		v.ui.Update()
		return nil
	}
	if v.enc.Terminal() || v.hp <= 0 {
		return nil
	}

	v.now += tick
	v.enc.Player = v.player
	var dir cp.Vector
	if v.auto {
		dir = v.pilot.Steer(pilot.Observe(v.enc))
	} else {
		dir = keyboardDirection()
	}
	v.player = v.player.Add(dir.Mult(playerSpeed * tick))

	res := system.Update(v.enc, system.Input{DeltaTime: tick, CurrentTime: v.now, Player: v.player})
	v.player = res.Player
	v.hp -= res.Damage
	v.push(res.Events)

	v.fireTowers()
	v.push(v.enc.Events.Drain())
	return nil
}

func (v *viewer) fireTowers() {
	amount := v.dps * tick
	if !v.enc.Invulnerable {
		system.DamageBoss(v.enc, amount, v.now)
		return
	}
	for _, id := range v.enc.Hazards.Pylons.Entities() {
		if p, ok := v.enc.Hazards.Pylons.Get(id); ok && !p.Destroyed {
			system.DamageHazard(v.enc, id, amount, v.now)
			return
		}
	}
}

func (v *viewer) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.paused = !v.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		v.auto = !v.auto
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		if err := copySnapshot(v); err != nil {
			log.Printf("viewer: snapshot: %v", err)
		} else {
			v.note("snapshot copied")
		}
	}

	for i, k := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4} {
		if inpututil.IsKeyJustPressed(k) && i < len(component.BossKinds) {
			v.kind = component.BossKinds[i]
			if err := v.load(); err != nil {
				log.Printf("viewer: load %s: %v", v.kind, err)
			}
		}
	}
}

// reset restarts the current encounter in place.
func (v *viewer) reset() {
	system.Reset(v.enc, 0)
	v.now = 0
	v.hp = 500
	v.log = v.log[:0]
	v.push(v.enc.Events.Drain())
}

func keyboardDirection() cp.Vector {
	var d cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		d.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		d.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		d.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		d.Y++
	}
	if d.LengthSq() > 0 {
		d = d.Normalize()
	}
	return d
}

// pollReload rebuilds the encounter when the current boss table or pilot
// script changes on disk.
func (v *viewer) pollReload() {
	if v.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-v.watcher.Events:
			if !ok {
				v.watcher = nil
				return
			}
			if change.Boss != "" && change.Boss != v.kind {
				continue
			}
			if change.Script != "" && change.Script != v.script {
				continue
			}
			if err := v.load(); err != nil {
				log.Printf("viewer: reload %s: %v", change.Path, err)
				continue
			}
			log.Printf("viewer: reloaded %s", change.Path)
			v.note("reloaded " + change.Path)
		case err, ok := <-v.watcher.Errors:
			if ok {
				log.Printf("viewer: watch error: %v", err)
			}
		default:
			return
		}
	}
}

func (v *viewer) push(events []component.Event) {
	for _, ev := range events {
		switch ev.Type {
		case component.EventHazardSpawned, component.EventHazardExpired, component.EventPlayerDamaged:
			continue
		}
		line := fmt.Sprintf("%6.2f %s", ev.Time, ev.Type)
		switch ev.Type {
		case component.EventPhaseChanged:
			line += fmt.Sprintf(" %d", ev.Phase)
		case component.EventModeChanged:
			line += " " + ev.Mode
		case component.EventInvulnerabilityChanged:
			line += fmt.Sprintf(" %v", ev.Flag)
		case component.EventContactDamage:
			line += fmt.Sprintf(" %.0f", ev.Amount)
		}
		v.note(line)
	}
}

func (v *viewer) note(line string) {
	v.log = append(v.log, line)
	if len(v.log) > logLines {
		v.log = v.log[len(v.log)-logLines:]
	}
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func (v *viewer) status() string {
	enc := v.enc
	s := fmt.Sprintf("%s  phase %d  mode %s  hp %.0f/%.0f  player %.0f  t=%.1f",
		enc.Config.Name, enc.Phase, component.ModeName(enc.Mode), enc.Health, enc.MaxHealth, v.hp, v.now)
	if enc.Invulnerable {
		s += fmt.Sprintf("  GATE %d/%d", enc.GateDestroyed, enc.GateTotal)
	}
	if g := enc.Grid; g != nil {
		s += fmt.Sprintf("  tiles safe %d lava %d", g.Count(component.TileSafe), g.Count(component.TileLava))
	}
	switch {
	case enc.Defeated:
		s += "  DEFEATED"
	case enc.Fled:
		s += "  FLED"
	case v.hp <= 0:
		s += "  PLAYER DOWN"
	}
	return s
}

func (v *viewer) Draw(screen *ebiten.Image) {
	newCamera(v.enc).draw(screen, v)
	msg := v.status() + "\n[wasd] move  [p] pilot  [space] pause  [r] reset  [1-4] boss  [c] copy\n"
	for _, l := range v.log {
		msg += "\n" + l
	}
	ebitenutil.DebugPrint(screen, msg)
	if v.paused {
		v.ui.Draw(screen)
	}
}
