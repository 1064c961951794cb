package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/pilot"
	"github.com/milk9111/bossrush/prefabs"
	"github.com/milk9111/bossrush/sim"
)

type options struct {
	boss    string
	config  string
	script  string
	out     string
	seed    int64
	n       int
	workers int
	dps     float64
	health  float64
	limit   float64
	record  bool
}

func main() {
	var opt options
	export := flag.Bool("export", false, "print every resolved boss table as yaml and exit")
	watch := flag.Bool("watch", false, "re-run whenever a boss table or pilot script changes")
	flag.StringVar(&opt.boss, "boss", string(component.KindCyberboss), "boss kind")
	flag.StringVar(&opt.config, "config", "", "boss table yaml (overrides -boss)")
	flag.StringVar(&opt.script, "script", "", "pilot script in prefabs/scripts (default: built-in kite)")
	flag.StringVar(&opt.out, "out", "", "write the JSON result here instead of stdout")
	flag.Int64Var(&opt.seed, "seed", 0, "seed override (0 keeps the table's seed)")
	flag.IntVar(&opt.n, "n", 1, "number of runs")
	flag.IntVar(&opt.workers, "workers", 8, "batch worker count")
	flag.Float64Var(&opt.dps, "dps", 0, "tower damage per second")
	flag.Float64Var(&opt.health, "hp", 0, "player health")
	flag.Float64Var(&opt.limit, "limit", 0, "time limit in seconds")
	flag.BoolVar(&opt.record, "log", true, "include the full event log when n==1")
	flag.Parse()

	if *export {
		cfgs, err := prefabs.LoadAll()
		if err != nil {
			log.Fatal(err)
		}
		if err := prefabs.Export(os.Stdout, cfgs); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := run(opt); err != nil {
		if !*watch {
			log.Fatal(err)
		}
		log.Printf("bosssim: %v", err)
	}
	if !*watch {
		return
	}

	w, err := prefabs.NewWatcher()
	if err != nil {
		log.Fatalf("bosssim: watch: %v", err)
	}
	defer w.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	log.Printf("bosssim: watching %v", prefabs.OverrideDirs())
	for {
		select {
		case change, ok := <-w.Events:
			if !ok {
				return
			}
			if change.Boss != "" && opt.config == "" && string(change.Boss) != opt.boss {
				continue
			}
			if change.Script != "" && change.Script != opt.script {
				continue
			}
			log.Printf("bosssim: %s changed, re-running", change.Path)
			if err := run(opt); err != nil {
				log.Printf("bosssim: %v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("bosssim: watch error: %v", err)
		case <-stop:
			return
		}
	}
}

func loadBoss(opt options) (*component.BossConfig, error) {
	var (
		cfg *component.BossConfig
		err error
	)
	if opt.config != "" {
		cfg, err = prefabs.LoadBossFile(opt.config)
	} else {
		var kind component.BossKind
		if kind, err = prefabs.ParseKind(opt.boss); err != nil {
			return nil, err
		}
		cfg, err = prefabs.LoadBoss(kind)
	}
	if err != nil {
		return nil, err
	}
	if opt.seed != 0 {
		cfg.Seed = opt.seed
	}
	return cfg, nil
}

func newPilot(script string) func() (pilot.Pilot, error) {
	return func() (pilot.Pilot, error) {
		if script == "" {
			return pilot.NewKite(), nil
		}
		s, err := pilot.LoadScript(script)
		if err != nil {
			return nil, err
		}
		s.Fallback = pilot.NewKite()
		return s, nil
	}
}

func run(opt options) error {
	cfg, err := loadBoss(opt)
	if err != nil {
		return err
	}
	base := sim.Config{
		Boss:         cfg,
		TowerDPS:     opt.dps,
		PlayerHealth: opt.health,
		Limit:        opt.limit,
	}

	if opt.n <= 1 {
		p, err := newPilot(opt.script)()
		if err != nil {
			return err
		}
		base.Pilot = p
		base.Record = opt.record
		r, err := sim.NewRunner(base)
		if err != nil {
			return err
		}
		res := r.Run()
		if err := write(opt.out, res); err != nil {
			return err
		}
		log.Printf("bosssim: %s seed=%d %s in %.2fs, phase %d, took %.0f damage",
			res.Boss, res.Seed, res.Outcome, res.Duration, res.Phase, res.DamageTaken)
		return nil
	}

	st, err := sim.RunBatch(base, opt.n, opt.workers, newPilot(opt.script))
	if err != nil {
		return err
	}
	if err := write(opt.out, st); err != nil {
		return err
	}
	log.Printf("bosssim: batch %d %s win rate %.2f, avg %.1fs", st.Runs, st.Boss, st.WinRate, st.AvgDuration)
	return nil
}

func write(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(path, data, 0644)
}
