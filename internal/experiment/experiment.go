// Package experiment assembles surfaces, systems, integrators, and metrics
// into runnable trajectory experiments.
package experiment

import (
	"context"
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/vibelab/internal/dynamo"
	"github.com/san-kum/vibelab/internal/metrics"
	"github.com/san-kum/vibelab/internal/molecule"
	"github.com/san-kum/vibelab/internal/pes"
	"github.com/san-kum/vibelab/internal/physics"
)

// Config names everything an experiment needs; zero R0/V0 mean "start at
// the fitted equilibrium with a thermal velocity draw".
type Config struct {
	Molecule    string
	Method      string
	Dt          float64 // fs
	Duration    float64 // fs
	Temperature float64 // K
	Friction    float64 // 1/fs
	Seed        int64
	Smoothing   float64
	Samples     int
	DataPath    string // optional CSV of bond-length/energy samples
	R0          float64
	V0          float64
}

// Experiment is a fully assembled run: molecule, fitted surface, and the
// bond system, ready to build simulators from.
type Experiment struct {
	cfg     Config
	mol     *molecule.Molecule
	surface *pes.Surface
	bond    *physics.Bond
	re      float64
}

// New resolves the molecule, obtains the energy samples (reference grid or
// external CSV), fits the surface, and locates the equilibrium.
func New(cfg Config) (*Experiment, error) {
	mol, err := molecule.Get(cfg.Molecule)
	if err != nil {
		return nil, err
	}

	var r, energy []float64
	if cfg.DataPath != "" {
		r, energy, err = pes.ReadSamples(cfg.DataPath)
		if err != nil {
			return nil, fmt.Errorf("loading samples: %w", err)
		}
	} else {
		r, energy = mol.Samples(cfg.Samples)
	}

	surface, err := pes.Fit(r, energy, cfg.Smoothing)
	if err != nil {
		return nil, fmt.Errorf("fitting surface: %w", err)
	}

	re, _, err := surface.Equilibrium()
	if err != nil {
		return nil, err
	}

	return &Experiment{
		cfg:     cfg,
		mol:     mol,
		surface: surface,
		bond:    physics.NewBond(surface, mol),
		re:      re,
	}, nil
}

func (e *Experiment) Molecule() *molecule.Molecule { return e.mol }
func (e *Experiment) Surface() *pes.Surface        { return e.surface }
func (e *Experiment) Bond() *physics.Bond          { return e.bond }
func (e *Experiment) Equilibrium() float64         { return e.re }

// InitState builds the starting phase-space point. The thermal velocity
// draw is seeded separately from the integrator noise so the two streams
// do not overlap.
func (e *Experiment) InitState(seed int64) dynamo.State {
	r0 := e.cfg.R0
	if r0 <= 0 {
		r0 = e.re
	}
	v0 := e.cfg.V0
	if v0 == 0 && e.cfg.Temperature > 0 && e.cfg.Method == "bbk" {
		draw := distuv.Normal{
			Mu:    0,
			Sigma: molecule.ThermalSigmaV(e.mol.Mu(), e.cfg.Temperature),
			Src:   rand.NewSource(uint64(seed) ^ 0x9e3779b97f4a7c15),
		}
		v0 = draw.Rand()
	}
	return dynamo.State{r0, v0}
}

// BuildSimulator constructs a simulator with the named integrator and the
// default metric set. Each call returns an independent random stream, so
// ensembles can build one per replica.
func (e *Experiment) BuildSimulator(seed int64) (*dynamo.Simulator, error) {
	integ, err := NewIntegrator(e.cfg.Method, e.cfg.Friction, e.cfg.Temperature, seed)
	if err != nil {
		return nil, err
	}

	sim := dynamo.New(e.bond, integ)
	_, hi := e.surface.Domain()
	sim.AddMetric(metrics.NewTemperature(e.mol.Mu()))
	sim.AddMetric(metrics.NewMeanBond())
	sim.AddMetric(metrics.NewEnergy(e.bond))
	sim.AddMetric(metrics.NewStability(hi))
	return sim, nil
}

// RunConfig is the stepping configuration derived from the experiment.
func (e *Experiment) RunConfig() dynamo.Config {
	return dynamo.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		Seed:          e.cfg.Seed,
		ValidateState: true,
	}
}

// Run executes a single trajectory.
func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	sim, err := e.BuildSimulator(e.cfg.Seed)
	if err != nil {
		return nil, err
	}
	return sim.Run(ctx, e.InitState(e.cfg.Seed), e.RunConfig())
}

// RunEnsemble executes n independent replicas with consecutive seeds.
func (e *Experiment) RunEnsemble(ctx context.Context, n int) ([]*dynamo.Result, error) {
	ens := dynamo.NewEnsemble(func(seed int64) *dynamo.Simulator {
		sim, err := e.BuildSimulator(seed)
		if err != nil {
			// Method was validated by the first BuildSimulator call.
			panic(err)
		}
		return sim
	}, n, e.cfg.Seed)
	return ens.Run(ctx, e.InitState(e.cfg.Seed), e.RunConfig())
}
