package sim

import (
	"runtime"
	"sync"

	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/pilot"
)

// Stats aggregates a batch.
type Stats struct {
	Boss        component.BossKind `json:"boss"`
	Runs        int                `json:"runs"`
	Outcomes    map[Outcome]int    `json:"outcomes"`
	WinRate     float64            `json:"win_rate"`
	AvgDuration float64            `json:"avg_duration"`
	AvgTaken    float64            `json:"avg_damage_taken"`
	AvgGateTime float64            `json:"avg_gate_time"`
	Phases      map[int]int        `json:"phases"`
}

// RunBatch runs n copies of base on workers goroutines. Run i uses seed
// base.Boss.Seed+i. newPilot builds a fresh pilot per run; nil uses Kite.
// Each worker owns its encounter, so the engine itself stays
// single-threaded.
func RunBatch(base Config, n, workers int, newPilot func() (pilot.Pilot, error)) (Stats, error) {
	if base.Boss == nil {
		return Stats{}, ErrNoBoss
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	st := Stats{
		Boss:     base.Boss.Kind,
		Outcomes: map[Outcome]int{},
		Phases:   map[int]int{},
	}
	if n <= 0 {
		return st, nil
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
		sumT     float64
		sumTaken float64
		sumGate  float64
	)
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				boss := *base.Boss
				boss.Seed = base.Boss.Seed + int64(i)
				cfg := base
				cfg.Boss = &boss
				cfg.Record = false
				cfg.Pilot = nil
				if newPilot != nil {
					p, err := newPilot()
					if err != nil {
						mu.Lock()
						if firstErr == nil {
							firstErr = err
						}
						mu.Unlock()
						continue
					}
					cfg.Pilot = p
				}

				r, err := NewRunner(cfg)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				res := r.Run()

				mu.Lock()
				st.Runs++
				st.Outcomes[res.Outcome]++
				st.Phases[res.Phase]++
				sumT += res.Duration
				sumTaken += res.DamageTaken
				sumGate += res.GateTime
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return st, firstErr
	}
	if st.Runs > 0 {
		runs := float64(st.Runs)
		st.WinRate = float64(st.Outcomes[OutcomeVictory]) / runs
		st.AvgDuration = sumT / runs
		st.AvgTaken = sumTaken / runs
		st.AvgGateTime = sumGate / runs
	}
	return st, nil
}
