package storage

import (
	"math"
	"testing"

	"github.com/san-kum/vibelab/internal/dynamo"
	"github.com/san-kum/vibelab/internal/montecarlo"
)

func testTrajectory() (*dynamo.Result, dynamo.Config) {
	res := &dynamo.Result{
		States:  []dynamo.State{{0.92, 0}, {0.93, 0.01}, {0.94, -0.01}},
		Times:   []float64{0, 0.1, 0.2},
		Metrics: map[string]float64{"temperature": 298.5, "mean_bond": 0.93},
	}
	cfg := dynamo.Config{Dt: 0.1, Duration: 0.2, Seed: 42}
	return res, cfg
}

func TestTrajectoryRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	res, cfg := testTrajectory()
	runID, err := st.SaveTrajectory("hf", "bbk", cfg, 300, 0.05, res)
	if err != nil {
		t.Fatalf("SaveTrajectory: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.Kind != KindDynamics || meta.Molecule != "hf" || meta.Method != "bbk" {
		t.Errorf("metadata %s/%s/%s", meta.Kind, meta.Molecule, meta.Method)
	}
	if meta.Seed != 42 || meta.Temperature != 300 || meta.Friction != 0.05 {
		t.Errorf("metadata seed/T/gamma = %d/%g/%g", meta.Seed, meta.Temperature, meta.Friction)
	}
	if meta.Metrics["temperature"] != 298.5 {
		t.Errorf("metrics not persisted: %v", meta.Metrics)
	}

	times, r, v, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("LoadTrajectory: %v", err)
	}
	if len(times) != 3 || len(r) != 3 || len(v) != 3 {
		t.Fatalf("series lengths %d/%d/%d, want 3", len(times), len(r), len(v))
	}
	if math.Abs(r[1]-0.93) > 1e-7 || math.Abs(v[2]+0.01) > 1e-7 {
		t.Errorf("trajectory values drifted: r[1]=%.6f v[2]=%.6f", r[1], v[2])
	}
}

func TestChainRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	cfg := montecarlo.Config{Steps: 100, Delta: 0.05, Temp: 500, Seed: 7}
	res := &montecarlo.Result{
		Samples:        []float64{0.91, 0.92, 0.915},
		Proposed:       100,
		Accepted:       55,
		AcceptanceRate: 0.55,
	}

	runID, err := st.SaveChain("hcl", cfg, res)
	if err != nil {
		t.Fatalf("SaveChain: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.Kind != KindMonteCarlo || meta.Temperature != 500 || meta.Steps != 100 {
		t.Errorf("metadata %s/%g/%d", meta.Kind, meta.Temperature, meta.Steps)
	}
	if meta.Metrics["acceptance_rate"] != 0.55 {
		t.Errorf("acceptance rate not persisted: %v", meta.Metrics)
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("LoadSamples: %v", err)
	}
	if len(samples) != 3 || math.Abs(samples[2]-0.915) > 1e-7 {
		t.Errorf("samples %v", samples)
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("fresh store lists %d runs", len(runs))
	}

	res, cfg := testTrajectory()
	if _, err := st.SaveTrajectory("hf", "verlet", cfg, 0, 0, res); err != nil {
		t.Fatal(err)
	}
	if _, err := st.SaveChain("hf", montecarlo.Config{Steps: 10, Delta: 0.1, Temp: 300}, &montecarlo.Result{Samples: []float64{0.9}}); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("listed %d runs, want 2", len(runs))
	}

	kinds := map[string]bool{}
	for _, r := range runs {
		kinds[r.Kind] = true
	}
	if !kinds[KindDynamics] || !kinds[KindMonteCarlo] {
		t.Errorf("kinds %v, want both dynamics and montecarlo", kinds)
	}
}

func TestListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/does-not-exist")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("List on missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("listed %d runs from a missing dir", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); err == nil {
		t.Error("expected error for unknown run id")
	}
}
