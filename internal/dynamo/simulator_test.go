package dynamo

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
)

// spring is a unit-mass harmonic oscillator used as the test system.
type spring struct{ k float64 }

func (s spring) Dof() int { return 1 }

func (s spring) Accel(x State, _ float64) State {
	return State{-s.k * x[0]}
}

func (s spring) Energy(x State) float64 {
	return 0.5*s.k*x[0]*x[0] + 0.5*x[1]*x[1]
}

// euler is a deliberately simple integrator for driving the simulator.
type euler struct{}

func (euler) Step(sys System, x State, t, dt float64) State {
	d := len(x) / 2
	a := sys.Accel(x, t)
	next := x.Clone()
	for i := 0; i < d; i++ {
		next[i] += x[d+i] * dt
		next[d+i] += a[i] * dt
	}
	return next
}

// blowup produces NaN accelerations after a set number of calls.
type blowup struct {
	calls int
	after int
}

func (b *blowup) Dof() int { return 1 }

func (b *blowup) Accel(x State, _ float64) State {
	b.calls++
	if b.calls > b.after {
		return State{math.NaN()}
	}
	return State{-x[0]}
}

type countObserver struct{ steps int }

func (c *countObserver) OnStep(State, float64) { c.steps++ }

type lastMetric struct{ last float64 }

func (m *lastMetric) Name() string               { return "last_position" }
func (m *lastMetric) Observe(x State, _ float64) { m.last = x[0] }
func (m *lastMetric) Value() float64             { return m.last }
func (m *lastMetric) Reset()                     { m.last = 0 }

func TestRunStepCount(t *testing.T) {
	sim := New(spring{k: 1}, euler{})

	res, err := sim.Run(context.Background(), State{1, 0}, Config{Dt: 0.1, Duration: 1.0, ValidateState: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.StepsTaken != 10 {
		t.Errorf("StepsTaken = %d, want 10", res.StepsTaken)
	}
	if len(res.States) != 11 || len(res.Times) != 11 {
		t.Errorf("trajectory length %d/%d, want 11 (initial state plus 10 steps)",
			len(res.States), len(res.Times))
	}
	if res.Times[0] != 0 {
		t.Errorf("Times[0] = %f, want 0", res.Times[0])
	}
}

func TestRunValidation(t *testing.T) {
	sim := New(spring{k: 1}, euler{})
	ctx := context.Background()

	cases := []struct {
		name string
		x0   State
		cfg  Config
		want error
	}{
		{"zero dt", State{1, 0}, Config{Dt: 0, Duration: 1}, ErrParameterBounds},
		{"negative dt", State{1, 0}, Config{Dt: -0.1, Duration: 1}, ErrParameterBounds},
		{"zero duration", State{1, 0}, Config{Dt: 0.1, Duration: 0}, ErrParameterBounds},
		{"short state", State{1}, Config{Dt: 0.1, Duration: 1}, ErrDimensionMismatch},
		{"long state", State{1, 0, 0, 0}, Config{Dt: 0.1, Duration: 1}, ErrDimensionMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sim.Run(ctx, tc.x0, tc.cfg)
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRunStopsOnInvalidState(t *testing.T) {
	sys := &blowup{after: 5}
	sim := New(sys, euler{})

	res, err := sim.Run(context.Background(), State{1, 0}, Config{Dt: 0.1, Duration: 10, ValidateState: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(res.Errors) != 1 {
		t.Fatalf("Errors length %d, want 1", len(res.Errors))
	}
	var simErr SimError
	if !errors.As(res.Errors[0], &simErr) {
		t.Fatalf("error type %T, want SimError", res.Errors[0])
	}
	if res.StepsTaken >= 100 {
		t.Errorf("run did not stop early: %d steps", res.StepsTaken)
	}
	// The partial trajectory is still usable.
	for _, st := range res.States {
		if !st.IsValid() {
			t.Error("invalid state recorded in trajectory")
		}
	}
}

func TestRunMetricsAndObservers(t *testing.T) {
	sim := New(spring{k: 1}, euler{})

	m := &lastMetric{last: 99} // Reset must clear this
	obs := &countObserver{}
	sim.AddMetric(m)
	sim.AddObserver(obs)

	res, err := sim.Run(context.Background(), State{2, 0}, Config{Dt: 0.1, Duration: 1, ValidateState: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if obs.steps != 10 {
		t.Errorf("observer called %d times, want 10", obs.steps)
	}
	val, ok := res.Metrics["last_position"]
	if !ok {
		t.Fatal("metric missing from result")
	}
	if val == 99 {
		t.Error("metric was not reset before the run")
	}
}

func TestRunEnergyDrift(t *testing.T) {
	sim := New(spring{k: 1}, euler{})

	// Forward Euler on a harmonic oscillator gains energy every step, so the
	// drift must come out positive.
	res, err := sim.Run(context.Background(), State{1, 0}, Config{Dt: 0.1, Duration: 10, ValidateState: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.EnergyDrift <= 0 {
		t.Errorf("EnergyDrift = %g, want positive for forward Euler", res.EnergyDrift)
	}
}

func TestRunContextCancel(t *testing.T) {
	sim := New(spring{k: 1}, euler{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Run(ctx, State{1, 0}, Config{Dt: 0.1, Duration: 1000, ValidateState: true})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestRunWithCallbackStops(t *testing.T) {
	sim := New(spring{k: 1}, euler{})

	calls := 0
	err := sim.RunWithCallback(context.Background(), State{1, 0},
		Config{Dt: 0.1, Duration: 100, ValidateState: true},
		func(State, float64) bool {
			calls++
			return calls < 5
		})
	if err != nil {
		t.Fatalf("RunWithCallback: %v", err)
	}
	if calls != 5 {
		t.Errorf("callback called %d times, want 5", calls)
	}
}

func TestEnsembleSeeds(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[int64]bool)
	ens := NewEnsemble(func(seed int64) *Simulator {
		mu.Lock()
		seen[seed] = true
		mu.Unlock()
		return New(spring{k: 1}, euler{})
	}, 4, 100)

	results, err := ens.Run(context.Background(), State{1, 0}, Config{Dt: 0.1, Duration: 1, ValidateState: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	for seed := int64(100); seed < 104; seed++ {
		if !seen[seed] {
			t.Errorf("seed %d never used", seed)
		}
	}
	for i, res := range results {
		if res == nil || res.StepsTaken != 10 {
			t.Errorf("replica %d incomplete", i)
		}
	}
}

func TestStateHelpers(t *testing.T) {
	s := State{1, 2}
	c := s.Clone()
	c[0] = 9
	if s[0] != 1 {
		t.Error("Clone aliases the original")
	}

	if !s.IsValid() {
		t.Error("finite state reported invalid")
	}
	if (State{math.NaN(), 0}).IsValid() {
		t.Error("NaN state reported valid")
	}
	if (State{math.Inf(1), 0}).IsValid() {
		t.Error("Inf state reported valid")
	}

	if got := (State{3, 4}).Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Norm = %f, want 5", got)
	}
}
