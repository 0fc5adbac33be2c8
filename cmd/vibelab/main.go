package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/vibelab/internal/analysis"
	"github.com/san-kum/vibelab/internal/config"
	"github.com/san-kum/vibelab/internal/dynamo"
	"github.com/san-kum/vibelab/internal/experiment"
	"github.com/san-kum/vibelab/internal/molecule"
	"github.com/san-kum/vibelab/internal/montecarlo"
	"github.com/san-kum/vibelab/internal/pes"
	"github.com/san-kum/vibelab/internal/storage"
	"github.com/san-kum/vibelab/internal/viz"
)

var (
	dataDir   string
	dt        float64
	duration  float64
	temp      float64
	friction  float64
	r0        float64
	v0        float64
	seed      int64
	method    string
	smoothing float64
	samples   int
	dataFile  string
	ensemble  int
	// Monte Carlo parameters
	mcSteps  int
	mcBurnIn int
	mcThin   int
	mcDelta  float64
	mcTune   bool
	// Sweep parameters
	tempMin    float64
	tempMax    float64
	tempPoints int
	// Misc
	showPlot   bool
	bins       int
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vibelab",
		Short: "diatomic vibration simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", ".vibelab", "data directory")

	fitCmd := &cobra.Command{
		Use:   "fit [molecule]",
		Short: "fit the potential energy surface and report the harmonic parameters",
		Args:  cobra.ExactArgs(1),
		RunE:  fitSurface,
	}
	fitCmd.Flags().StringVar(&dataFile, "data", "", "CSV of bond-length/energy samples (angstrom, eV)")
	fitCmd.Flags().Float64Var(&smoothing, "smoothing", config.DefaultSmoothing, "spline smoothing parameter (0 interpolates)")
	fitCmd.Flags().IntVar(&samples, "samples", 0, "reference grid size (built-in data)")
	fitCmd.Flags().BoolVar(&showPlot, "plot", false, "plot the fitted surface")

	runCmd := &cobra.Command{
		Use:   "run [molecule]",
		Short: "run a Langevin (or NVE) trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrajectory,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (fs)")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (fs)")
	runCmd.Flags().Float64Var(&temp, "temp", config.DefaultTemperature, "bath temperature (K)")
	runCmd.Flags().Float64Var(&friction, "friction", config.DefaultFriction, "Langevin friction (1/fs)")
	runCmd.Flags().Float64Var(&r0, "r0", 0, "initial bond length (angstrom, 0 = equilibrium)")
	runCmd.Flags().Float64Var(&v0, "v0", 0, "initial velocity (angstrom/fs, 0 = thermal draw)")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().StringVar(&method, "method", "bbk", "integrator (bbk, verlet, leapfrog)")
	runCmd.Flags().Float64Var(&smoothing, "smoothing", config.DefaultSmoothing, "spline smoothing parameter")
	runCmd.Flags().StringVar(&dataFile, "data", "", "CSV of bond-length/energy samples")
	runCmd.Flags().IntVar(&ensemble, "ensemble", 1, "number of independent replicas")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	mcCmd := &cobra.Command{
		Use:   "mc [molecule]",
		Short: "sample the bond-length distribution with Metropolis Monte Carlo",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	mcCmd.Flags().IntVar(&mcSteps, "steps", config.DefaultMCSteps, "post-burn-in proposals")
	mcCmd.Flags().IntVar(&mcBurnIn, "burn-in", config.DefaultMCBurnIn, "equilibration proposals")
	mcCmd.Flags().IntVar(&mcThin, "thin", config.DefaultMCThin, "keep every n-th state")
	mcCmd.Flags().Float64Var(&mcDelta, "delta", config.DefaultMCDelta, "max displacement per proposal (angstrom)")
	mcCmd.Flags().Float64Var(&temp, "temp", config.DefaultTemperature, "temperature (K)")
	mcCmd.Flags().Float64Var(&r0, "r0", 0, "starting bond length (angstrom, 0 = domain center)")
	mcCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	mcCmd.Flags().BoolVar(&mcTune, "tune", false, "grid-search delta for ~50% acceptance first")
	mcCmd.Flags().Float64Var(&smoothing, "smoothing", config.DefaultSmoothing, "spline smoothing parameter")
	mcCmd.Flags().StringVar(&dataFile, "data", "", "CSV of bond-length/energy samples")

	sweepCmd := &cobra.Command{
		Use:   "sweep [molecule]",
		Short: "mean bond length across a temperature range",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&tempMin, "t-min", 100, "lowest temperature (K)")
	sweepCmd.Flags().Float64Var(&tempMax, "t-max", 2000, "highest temperature (K)")
	sweepCmd.Flags().IntVar(&tempPoints, "points", 12, "temperatures to sample")
	sweepCmd.Flags().IntVar(&mcSteps, "steps", 50000, "proposals per temperature")
	sweepCmd.Flags().Float64Var(&mcDelta, "delta", config.DefaultMCDelta, "max displacement per proposal")
	sweepCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	histCmd := &cobra.Command{
		Use:   "hist [run_id]",
		Short: "bond-length distribution against the Boltzmann reference",
		Args:  cobra.ExactArgs(1),
		RunE:  histRun,
	}
	histCmd.Flags().IntVar(&bins, "bins", 40, "histogram bins")
	histCmd.Flags().Float64Var(&smoothing, "smoothing", config.DefaultSmoothing, "spline smoothing parameter")
	histCmd.Flags().StringVar(&dataFile, "data", "", "CSV the run's surface was fit from")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "vibrational frequency from the velocity autocorrelation spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Float64Var(&smoothing, "smoothing", config.DefaultSmoothing, "spline smoothing parameter")
	analyzeCmd.Flags().StringVar(&dataFile, "data", "", "CSV the run's surface was fit from")

	compareCmd := &cobra.Command{
		Use:   "compare [molecule]",
		Short: "compare BBK dynamics sampling against Metropolis Monte Carlo",
		Args:  cobra.ExactArgs(1),
		RunE:  compareSamplers,
	}
	compareCmd.Flags().Float64Var(&temp, "temp", config.DefaultTemperature, "temperature (K)")
	compareCmd.Flags().Float64Var(&friction, "friction", config.DefaultFriction, "Langevin friction (1/fs)")
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (fs)")
	compareCmd.Flags().Float64Var(&duration, "time", 20000, "dynamics duration (fs)")
	compareCmd.Flags().IntVar(&mcSteps, "steps", config.DefaultMCSteps, "Monte Carlo proposals")
	compareCmd.Flags().Float64Var(&mcDelta, "delta", config.DefaultMCDelta, "max displacement per proposal")
	compareCmd.Flags().IntVar(&bins, "bins", 40, "histogram bins")
	compareCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [molecule]",
		Short: "list available presets for a molecule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for molecule: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [molecule]",
		Short: "run a trajectory with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (fs)")
	liveCmd.Flags().Float64Var(&temp, "temp", config.DefaultTemperature, "bath temperature (K)")
	liveCmd.Flags().Float64Var(&friction, "friction", config.DefaultFriction, "Langevin friction (1/fs)")
	liveCmd.Flags().Float64Var(&r0, "r0", 0, "initial bond length (angstrom, 0 = equilibrium)")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().StringVar(&method, "method", "bbk", "integrator (bbk, verlet, leapfrog)")

	rootCmd.AddCommand(fitCmd, runCmd, mcCmd, sweepCmd, listCmd, plotCmd, histCmd,
		analyzeCmd, compareCmd, exportCSVCmd, exportJSONCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildSurface fits the surface for a molecule from either an external CSV
// or the built-in reference grid.
func buildSurface(molName string) (*pes.Surface, *molecule.Molecule, error) {
	mol, err := molecule.Get(molName)
	if err != nil {
		return nil, nil, err
	}
	var r, energy []float64
	if dataFile != "" {
		r, energy, err = pes.ReadSamples(dataFile)
		if err != nil {
			return nil, nil, err
		}
	} else {
		r, energy = mol.Samples(samples)
	}
	surface, err := pes.Fit(r, energy, smoothing)
	if err != nil {
		return nil, nil, err
	}
	return surface, mol, nil
}

func fitSurface(cmd *cobra.Command, args []string) error {
	surface, mol, err := buildSurface(args[0])
	if err != nil {
		return err
	}

	re, emin, err := surface.Equilibrium()
	if err != nil {
		return err
	}
	k, err := surface.ForceConstant()
	if err != nil {
		return err
	}
	wavenumber, err := surface.HarmonicWavenumber(mol.Mu())
	if err != nil {
		return err
	}

	fmt.Printf("surface fit: %s (smoothing %.3g)\n\n", mol.Name, smoothing)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "equilibrium bond length\t%.4f angstrom\n", re)
	fmt.Fprintf(w, "minimum energy\t%.4f eV\n", emin)
	fmt.Fprintf(w, "force constant\t%.3f eV/angstrom^2\n", k)
	fmt.Fprintf(w, "reduced mass\t%.5f amu\n", mol.Mu())
	fmt.Fprintf(w, "harmonic frequency\t%.1f cm^-1\n", wavenumber)
	if dataFile == "" {
		fmt.Fprintf(w, "reference re\t%.4f angstrom\n", mol.Re)
		fmt.Fprintf(w, "reference frequency\t%.1f cm^-1\n", mol.HarmonicWavenumber())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if showPlot {
		lo, hi := surface.Domain()
		const points = 120
		data := make([]float64, points)
		for i := range data {
			data[i] = surface.Energy(lo + (hi-lo)*float64(i)/float64(points-1))
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("V(r), %.2f to %.2f angstrom", lo, hi)),
		))
	}

	return nil
}

func runTrajectory(cmd *cobra.Command, args []string) error {
	molName := args[0]

	if preset != "" {
		cfg := config.GetPreset(molName, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(molName))
		}
		dt = cfg.Dt
		duration = cfg.Duration
		method = cfg.Method
		temp = cfg.Temperature
		friction = cfg.Friction
		r0 = cfg.Init.R
		v0 = cfg.Init.V
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		// CLI flags override config values.
		if !cmd.Flags().Changed("dt") {
			dt = cfg.Dt
		}
		if !cmd.Flags().Changed("time") {
			duration = cfg.Duration
		}
		if !cmd.Flags().Changed("method") {
			method = cfg.Method
		}
		if !cmd.Flags().Changed("temp") {
			temp = cfg.Temperature
		}
		if !cmd.Flags().Changed("friction") {
			friction = cfg.Friction
		}
		if !cmd.Flags().Changed("r0") {
			r0 = cfg.Init.R
		}
		if !cmd.Flags().Changed("v0") {
			v0 = cfg.Init.V
		}
		if !cmd.Flags().Changed("smoothing") {
			smoothing = cfg.Smoothing
		}
		if cfg.Data != "" && !cmd.Flags().Changed("data") {
			dataFile = cfg.Data
		}
		if cfg.Seed != 0 && !cmd.Flags().Changed("seed") {
			seed = cfg.Seed
		}
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(experiment.Config{
		Molecule:    molName,
		Method:      method,
		Dt:          dt,
		Duration:    duration,
		Temperature: temp,
		Friction:    friction,
		Seed:        seed,
		Smoothing:   smoothing,
		Samples:     samples,
		DataPath:    dataFile,
		R0:          r0,
		V0:          v0,
	})
	if err != nil {
		return err
	}

	fmt.Printf("running %s %s trajectory (T=%.0f K, gamma=%.3g /fs)...\n", molName, method, temp, friction)
	start := time.Now()

	runCfg := exp.RunConfig()
	var results []storResult
	if ensemble > 1 {
		rs, err := exp.RunEnsemble(context.Background(), ensemble)
		if err != nil {
			return err
		}
		for i, r := range rs {
			cfgCopy := runCfg
			cfgCopy.Seed = seed + int64(i)
			results = append(results, storResult{cfg: cfgCopy, res: r})
		}
	} else {
		r, err := exp.Run(context.Background())
		if err != nil {
			return err
		}
		results = append(results, storResult{cfg: runCfg, res: r})
	}

	elapsed := time.Since(start)
	fmt.Printf("completed in %v\n", elapsed)

	for _, sr := range results {
		runID, err := st.SaveTrajectory(molName, method, sr.cfg, temp, friction, sr.res)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s (%d steps", runID, sr.res.StepsTaken)
		if len(sr.res.Errors) > 0 {
			fmt.Printf(", stopped early: %v", sr.res.Errors[0])
		}
		fmt.Println(")")
	}

	fmt.Println("\nmetrics:")
	for name, val := range results[0].res.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	if method != "bbk" {
		fmt.Printf("  energy_drift: %.2e\n", results[0].res.EnergyDrift)
	}

	return nil
}

type storResult struct {
	cfg dynamo.Config
	res *dynamo.Result
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	surface, mol, err := buildSurface(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	cfg := montecarlo.Config{
		Steps:  mcSteps,
		BurnIn: mcBurnIn,
		Thin:   mcThin,
		Delta:  mcDelta,
		Temp:   temp,
		R0:     r0,
		Seed:   seed,
	}

	if mcTune {
		delta, rate, err := montecarlo.TuneDelta(context.Background(), surface, cfg, 0.5)
		if err != nil {
			return err
		}
		fmt.Printf("tuned delta: %.4f angstrom (pilot acceptance %.1f%%)\n", delta, 100*rate)
		cfg.Delta = delta
	}

	sampler, err := montecarlo.New(surface, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("sampling %s at T=%.0f K (%d proposals)...\n", mol.Name, temp, cfg.Steps)
	start := time.Now()
	result, err := sampler.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.SaveChain(mol.Name, cfg, result)
	if err != nil {
		return err
	}

	re, _, _ := surface.Equilibrium()
	mean, stddev := analysis.Summary(result.Samples)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("kept samples: %d\n", len(result.Samples))
	fmt.Printf("acceptance rate: %.1f%%\n", 100*result.AcceptanceRate)
	fmt.Printf("mean bond length: %.4f angstrom (equilibrium %.4f)\n", mean, re)
	fmt.Printf("std dev: %.4f angstrom\n", stddev)

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	surface, mol, err := buildSurface(args[0])
	if err != nil {
		return err
	}
	if tempPoints < 2 {
		return fmt.Errorf("need at least 2 temperature points, got %d", tempPoints)
	}

	temps := make([]float64, tempPoints)
	for i := range temps {
		temps[i] = tempMin + (tempMax-tempMin)*float64(i)/float64(tempPoints-1)
	}

	cfg := montecarlo.Config{
		Steps:  mcSteps,
		BurnIn: mcSteps / 10,
		Thin:   5,
		Delta:  mcDelta,
		Seed:   seed,
		Temp:   tempMin, // overwritten per point
	}

	fmt.Printf("sweeping %s from %.0f K to %.0f K (%d points)...\n\n", mol.Name, tempMin, tempMax, tempPoints)
	means, err := analysis.Sweep(context.Background(), surface, temps, cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T (K)\tmean r (angstrom)")
	for i := range temps {
		fmt.Fprintf(w, "%.0f\t%.4f\n", temps[i], means[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(means,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption("mean bond length vs temperature"),
	))

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tMOLECULE\tTIME\tTEMP\tDETAIL")

	for _, run := range runs {
		detail := run.Method
		if run.Kind == storage.KindMonteCarlo {
			detail = fmt.Sprintf("%d steps", run.Steps)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0fK\t%s\n",
			run.ID,
			run.Kind,
			run.Molecule,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Temperature,
			detail,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("molecule: %s (%s)\n\n", meta.Molecule, meta.Kind)

	if meta.Kind == storage.KindMonteCarlo {
		samples, err := st.LoadSamples(runID)
		if err != nil {
			return err
		}
		if len(samples) == 0 {
			return fmt.Errorf("no data to plot")
		}
		fmt.Println(asciigraph.Plot(decimate(samples, 400),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("bond length chain trace (angstrom)"),
		))
		return nil
	}

	_, r, v, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(r) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Println(asciigraph.Plot(decimate(r, 400),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("bond length (angstrom)"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(decimate(v, 400),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("velocity (angstrom/fs)"),
	))

	return nil
}

// decimate thins a series for plotting; asciigraph handles a few hundred
// points comfortably.
func decimate(data []float64, max int) []float64 {
	if len(data) <= max {
		return data
	}
	stride := len(data) / max
	out := make([]float64, 0, max)
	for i := 0; i < len(data); i += stride {
		out = append(out, data[i])
	}
	return out
}

func histRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	var series []float64
	if meta.Kind == storage.KindMonteCarlo {
		series, err = st.LoadSamples(runID)
	} else {
		_, series, _, err = st.LoadTrajectory(runID)
	}
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data")
	}

	surface, _, err := buildSurface(meta.Molecule)
	if err != nil {
		return err
	}

	lo, hi := series[0], series[0]
	for _, s := range series {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	pad := (hi - lo) * 0.05
	h, err := analysis.NewHistogram(series, lo-pad, hi+pad, bins)
	if err != nil {
		return err
	}

	fmt.Printf("bond-length distribution: %s (T=%.0f K)\n\n", meta.ID, meta.Temperature)
	if meta.Temperature > 0 {
		ref := analysis.BoltzmannReference(surface, meta.Temperature, h)
		tv := analysis.TotalVariation(h.Density, ref, h.Width)
		fmt.Println(asciigraph.PlotMany([][]float64{h.Density, ref},
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
			asciigraph.Caption("sampled (blue) vs Boltzmann (red)"),
		))
		fmt.Printf("\ntotal variation distance: %.4f\n", tv)
	} else {
		// NVE runs have no bath temperature to reference against.
		fmt.Println(asciigraph.Plot(h.Density,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("sampled bond-length density"),
		))
	}

	mean, stddev := analysis.Summary(series)
	fmt.Printf("mean: %.4f angstrom, std dev: %.4f angstrom\n", mean, stddev)

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	if meta.Kind != storage.KindDynamics {
		return fmt.Errorf("run %s is not a dynamics run", runID)
	}

	_, _, v, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(v) < 16 {
		return fmt.Errorf("trajectory too short for spectral analysis (%d points)", len(v))
	}

	wavenumber, spectrum := analysis.DominantWavenumber(v, meta.Dt)

	fmt.Printf("vibrational analysis: %s\n", meta.ID)
	fmt.Printf("molecule: %s, method: %s, T=%.0f K\n\n", meta.Molecule, meta.Method, meta.Temperature)

	plotData := spectrum[:len(spectrum)/4]
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(14),
		asciigraph.Width(80),
		asciigraph.Caption("VACF power spectrum"),
	))

	fmt.Printf("\ndominant line: %.1f cm^-1\n", wavenumber)

	surface, mol, err := buildSurface(meta.Molecule)
	if err == nil {
		if harm, err := surface.HarmonicWavenumber(mol.Mu()); err == nil {
			fmt.Printf("harmonic frequency of fitted surface: %.1f cm^-1\n", harm)
		}
	}

	return nil
}

func compareSamplers(cmd *cobra.Command, args []string) error {
	molName := args[0]

	exp, err := experiment.New(experiment.Config{
		Molecule:    molName,
		Method:      "bbk",
		Dt:          dt,
		Duration:    duration,
		Temperature: temp,
		Friction:    friction,
		Seed:        seed,
		Smoothing:   smoothing,
	})
	if err != nil {
		return err
	}

	fmt.Printf("comparing BBK dynamics and Metropolis MC for %s at T=%.0f K\n\n", molName, temp)

	dynRes, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	// Discard the first fifth as equilibration.
	skip := len(dynRes.States) / 5
	dynSamples := make([]float64, 0, len(dynRes.States)-skip)
	for _, s := range dynRes.States[skip:] {
		dynSamples = append(dynSamples, s[0])
	}

	sampler, err := montecarlo.New(exp.Surface(), montecarlo.Config{
		Steps:  mcSteps,
		BurnIn: mcSteps / 10,
		Thin:   10,
		Delta:  mcDelta,
		Temp:   temp,
		Seed:   seed + 1,
	})
	if err != nil {
		return err
	}
	mcRes, err := sampler.Run(context.Background())
	if err != nil {
		return err
	}

	lo, hi := exp.Surface().Domain()
	dynHist, err := analysis.NewHistogram(dynSamples, lo, hi, bins)
	if err != nil {
		return err
	}
	mcHist, err := analysis.NewHistogram(mcRes.Samples, lo, hi, bins)
	if err != nil {
		return err
	}
	ref := analysis.BoltzmannReference(exp.Surface(), temp, dynHist)

	dynMean, dynStd := analysis.Summary(dynSamples)
	mcMean, mcStd := analysis.Summary(mcRes.Samples)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "sampler\tsamples\tmean r\tstd dev\tTV vs Boltzmann")
	fmt.Fprintf(w, "bbk\t%d\t%.4f\t%.4f\t%.4f\n",
		len(dynSamples), dynMean, dynStd, analysis.TotalVariation(dynHist.Density, ref, dynHist.Width))
	fmt.Fprintf(w, "metropolis\t%d\t%.4f\t%.4f\t%.4f\n",
		len(mcRes.Samples), mcMean, mcStd, analysis.TotalVariation(mcHist.Density, ref, mcHist.Width))
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.PlotMany([][]float64{dynHist.Density, mcHist.Density, ref},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Green, asciigraph.Red),
		asciigraph.Caption("bbk (blue), metropolis (green), Boltzmann (red)"),
	))

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if meta.Kind == storage.KindMonteCarlo {
		samples, err := st.LoadSamples(runID)
		if err != nil {
			return err
		}
		if err := w.Write([]string{"sample", "r"}); err != nil {
			return err
		}
		for i, r := range samples {
			if err := w.Write([]string{strconv.Itoa(i), strconv.FormatFloat(r, 'f', 8, 64)}); err != nil {
				return err
			}
		}
		return nil
	}

	times, r, v, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if err := w.Write([]string{"time", "r", "v"}); err != nil {
		return err
	}
	for i := range times {
		row := []string{
			strconv.FormatFloat(times[i], 'f', 6, 64),
			strconv.FormatFloat(r[i], 'f', 8, 64),
			strconv.FormatFloat(v[i], 'f', 8, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	exp, err := experiment.New(experiment.Config{
		Molecule:    args[0],
		Method:      method,
		Dt:          dt,
		Duration:    1, // unused by the live view
		Temperature: temp,
		Friction:    friction,
		Seed:        seed,
		Smoothing:   smoothing,
		R0:          r0,
	})
	if err != nil {
		return err
	}

	integ, err := experiment.NewIntegrator(method, friction, temp, seed)
	if err != nil {
		return err
	}

	m := viz.NewModel(exp.Bond(), integ, exp.InitState(seed), dt, method)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
