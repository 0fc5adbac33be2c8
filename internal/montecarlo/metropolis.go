// Package montecarlo samples the bond-length distribution of a potential
// energy surface with a Metropolis chain, independently of any dynamics.
package montecarlo

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/san-kum/vibelab/internal/molecule"
	"github.com/san-kum/vibelab/internal/pes"
)

// Config holds the chain parameters.
type Config struct {
	Steps  int     // post-burn-in proposals
	BurnIn int     // discarded equilibration proposals
	Thin   int     // keep every Thin-th post-burn-in state (min 1)
	Delta  float64 // max displacement per proposal, angstrom
	Temp   float64 // K
	R0     float64 // starting bond length, angstrom
	Seed   int64
}

func DefaultConfig() Config {
	return Config{
		Steps:  200000,
		BurnIn: 20000,
		Thin:   10,
		Delta:  0.05,
		Temp:   300,
	}
}

// Result is a completed chain.
type Result struct {
	Samples        []float64 // bond lengths, angstrom
	Proposed       int
	Accepted       int
	AcceptanceRate float64
	Final          float64
}

// Sampler is a Metropolis random-walk sampler of exp(-V(r)/kT). Proposals
// are uniform displacements r' = r + (2u-1)*Delta; downhill moves always
// accept, uphill moves accept with the Boltzmann weight.
type Sampler struct {
	surface *pes.Surface
	cfg     Config
	rng     *rand.Rand
}

func New(surface *pes.Surface, cfg Config) (*Sampler, error) {
	if cfg.Steps <= 0 {
		return nil, fmt.Errorf("montecarlo: steps must be positive, got %d", cfg.Steps)
	}
	if cfg.BurnIn < 0 {
		return nil, fmt.Errorf("montecarlo: burn-in must be non-negative, got %d", cfg.BurnIn)
	}
	if cfg.Delta <= 0 {
		return nil, fmt.Errorf("montecarlo: delta must be positive, got %g", cfg.Delta)
	}
	if cfg.Temp <= 0 {
		return nil, fmt.Errorf("montecarlo: temperature must be positive, got %g", cfg.Temp)
	}
	if cfg.Thin < 1 {
		cfg.Thin = 1
	}
	if cfg.R0 <= 0 {
		lo, hi := surface.Domain()
		cfg.R0 = (lo + hi) / 2
	}
	return &Sampler{
		surface: surface,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(uint64(cfg.Seed))),
	}, nil
}

// Run walks the chain. Acceptance statistics cover post-burn-in proposals
// only. The context is polled periodically so long chains stay cancelable.
func (s *Sampler) Run(ctx context.Context) (*Result, error) {
	kT := molecule.KB * s.cfg.Temp
	r := s.cfg.R0
	e := s.surface.Energy(r)

	total := s.cfg.BurnIn + s.cfg.Steps
	result := &Result{
		Samples: make([]float64, 0, s.cfg.Steps/s.cfg.Thin+1),
	}

	for step := 0; step < total; step++ {
		if step%1024 == 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			default:
			}
		}

		rTrial := r + (2*s.rng.Float64()-1)*s.cfg.Delta
		eTrial := s.surface.Energy(rTrial)
		dE := eTrial - e

		accepted := dE <= 0 || s.rng.Float64() < math.Exp(-dE/kT)
		if accepted {
			r, e = rTrial, eTrial
		}

		if step < s.cfg.BurnIn {
			continue
		}

		result.Proposed++
		if accepted {
			result.Accepted++
		}
		if (step-s.cfg.BurnIn)%s.cfg.Thin == 0 {
			result.Samples = append(result.Samples, r)
		}
	}

	if result.Proposed > 0 {
		result.AcceptanceRate = float64(result.Accepted) / float64(result.Proposed)
	}
	result.Final = r
	return result, nil
}

// TuneDelta grid-searches the proposal width for the acceptance rate
// closest to target (around 0.5 for a random-walk chain), using short
// pilot chains. It returns the winning delta and its measured acceptance.
func TuneDelta(ctx context.Context, surface *pes.Surface, cfg Config, target float64) (float64, float64, error) {
	if target <= 0 || target >= 1 {
		return 0, 0, fmt.Errorf("montecarlo: target acceptance must be in (0,1), got %g", target)
	}

	pilot := cfg
	pilot.Steps = 4000
	pilot.BurnIn = 1000
	pilot.Thin = 1

	bestDelta := cfg.Delta
	bestRate := 0.0
	bestDist := math.Inf(1)

	for i := -4; i <= 4; i++ {
		pilot.Delta = cfg.Delta * math.Pow(2, float64(i))
		sampler, err := New(surface, pilot)
		if err != nil {
			return 0, 0, err
		}
		res, err := sampler.Run(ctx)
		if err != nil {
			return 0, 0, err
		}
		dist := math.Abs(res.AcceptanceRate - target)
		if dist < bestDist {
			bestDist = dist
			bestDelta = pilot.Delta
			bestRate = res.AcceptanceRate
		}
	}

	return bestDelta, bestRate, nil
}
