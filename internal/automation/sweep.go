package automation

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/dialmenu/internal/config"
	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/geom"
	"github.com/san-kum/dialmenu/internal/interaction"
	"github.com/san-kum/dialmenu/internal/metrics"
	"go.uber.org/zap"
)

// ParameterSweep releases the same drag under a range of spring settings
// and measures how long the snap takes to settle.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Item      int
	Release   geom.Point
	MaxTicks  int
}

// SweepResult describes one released drag. SettleTicks counts ticks until
// the item stays within settle_epsilon of its slot; RestTicks counts them
// until the whole network is at rest and the snap is removed.
type SweepResult struct {
	ParamValue  float64
	Slot        int
	SettleTicks int
	RestTicks   int
	Settled     bool
	PeakEnergy  float64
	Overshoot   float64
}

var sweepParams = map[string]func(*config.Config, float64){
	"stiffness":      func(c *config.Config, v float64) { c.Spring.Stiffness = v },
	"damping":        func(c *config.Config, v float64) { c.Spring.Damping = v },
	"snap_frequency": func(c *config.Config, v float64) { c.Spring.SnapFrequency = v },
	"snap_damping":   func(c *config.Config, v float64) { c.Spring.SnapDamping = v },
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *zap.Logger) ([]SweepResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	set, ok := sweepParams[sweep.ParamName]
	if !ok {
		return nil, fmt.Errorf("automation: parameter %q is not tunable: %w", sweep.ParamName, dynamo.ErrConfiguration)
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("automation: sweep needs at least one step: %w", dynamo.ErrConfiguration)
	}
	maxTicks := sweep.MaxTicks
	if maxTicks <= 0 {
		maxTicks = 600
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	// each value gets its own menu, so the runs share nothing
	results := make([]SweepResult, sweep.NumSteps)
	errs := make([]error, sweep.NumSteps)

	var wg sync.WaitGroup
	for i := 0; i < sweep.NumSteps; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}

			cfg := *sweep.Base
			cfg.Solver = "spring"
			cfg.Entry.Duration = 0
			cfg.Spring.KeepSnap = false
			paramVal := sweep.ParamMin + float64(idx)*paramStep
			set(&cfg, paramVal)

			r, err := settle(&cfg, sweep.Item, sweep.Release, maxTicks)
			if err != nil {
				errs[idx] = fmt.Errorf("sweep %s=%.4f: %w", sweep.ParamName, paramVal, err)
				return
			}
			r.ParamValue = paramVal
			results[idx] = r
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	for i, r := range results {
		logger.Info("sweep step",
			zap.Int("step", i+1),
			zap.String("param", sweep.ParamName),
			zap.Float64("value", r.ParamValue),
			zap.Int("settle_ticks", r.SettleTicks),
			zap.Int("rest_ticks", r.RestTicks),
			zap.Bool("settled", r.Settled))
	}
	return results, nil
}

func settle(cfg *config.Config, idx int, release geom.Point, maxTicks int) (SweepResult, error) {
	m, err := cfg.NewMenu(nil)
	if err != nil {
		return SweepResult{}, err
	}
	if idx < 0 || idx >= len(m.Items()) {
		return SweepResult{}, fmt.Errorf("automation: no item %d: %w", idx, dynamo.ErrInvalidInput)
	}

	dt := cfg.TickSeconds()
	if err := m.HandlePointer(interaction.Down(idx, m.Items()[idx].Position)); err != nil {
		return SweepResult{}, err
	}
	if err := m.HandlePointer(interaction.Move(release)); err != nil {
		return SweepResult{}, err
	}
	if err := m.Tick(dt); err != nil {
		return SweepResult{}, err
	}
	if err := m.HandlePointer(interaction.Up(release)); err != nil {
		return SweepResult{}, err
	}

	var r SweepResult
	r.Slot = m.Constraints().Drag().Slot
	target := m.Layout().Slots[r.Slot]
	peak := metrics.NewPeakEnergy()
	over := metrics.NewOvershoot(idx, target, cfg.Spring.SettleEpsilon)
	near := metrics.NewSettleTicks(idx, target, cfg.Spring.SettleEpsilon)

	for r.RestTicks < maxTicks {
		if err := m.Tick(dt); err != nil {
			return r, err
		}
		r.RestTicks++
		f := m.Frame()
		peak.Observe(f)
		over.Observe(f)
		near.Observe(f)
		if m.Constraints().Drag() == nil {
			r.Settled = true
			break
		}
	}
	r.SettleTicks = -1
	if v := int(near.Value()); v >= 0 {
		// counted from the first observed tick
		r.SettleTicks = v + 1
	}
	r.PeakEnergy = peak.Value()
	r.Overshoot = over.Value()
	return r, nil
}
