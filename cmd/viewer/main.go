package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/prefabs"
)

func main() {
	boss := flag.String("boss", string(component.KindCyberboss), "boss kind")
	script := flag.String("script", "", "pilot script in prefabs/scripts (default: built-in kite)")
	auto := flag.Bool("auto", false, "start with the pilot steering")
	dps := flag.Float64("dps", 150, "tower damage per second")
	watch := flag.Bool("watch", true, "reload boss tables and scripts on change")
	flag.Parse()

	kind, err := prefabs.ParseKind(*boss)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("bossrush viewer")

	v, err := newViewer(kind, *script, *dps, *auto)
	if err != nil {
		log.Fatal(err)
	}
	if *watch {
		if w, err := prefabs.NewWatcher(); err != nil {
			log.Printf("viewer: hot reload disabled: %v", err)
		} else {
			v.watcher = w
			defer w.Close()
		}
	}

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
