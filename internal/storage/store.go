package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/vibelab/internal/dynamo"
	"github.com/san-kum/vibelab/internal/montecarlo"
)

// Run kinds.
const (
	KindDynamics   = "dynamics"
	KindMonteCarlo = "montecarlo"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Kind        string             `json:"kind"`
	Molecule    string             `json:"molecule"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Method      string             `json:"method,omitempty"`
	Dt          float64            `json:"dt,omitempty"`
	Duration    float64            `json:"duration,omitempty"`
	Temperature float64            `json:"temperature,omitempty"`
	Friction    float64            `json:"friction,omitempty"`
	Steps       int                `json:"steps,omitempty"`
	Delta       float64            `json:"delta,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// SaveTrajectory persists a dynamics run as metadata.json + trajectory.csv
// (time, r, v) under a fresh run directory and returns the run id.
func (s *Store) SaveTrajectory(mol, method string, cfg dynamo.Config, temp, friction float64, result *dynamo.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", mol, time.Now().UnixNano())

	meta := RunMetadata{
		ID:          runID,
		Kind:        KindDynamics,
		Molecule:    mol,
		Timestamp:   time.Now(),
		Seed:        cfg.Seed,
		Method:      method,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Temperature: temp,
		Friction:    friction,
		Metrics:     result.Metrics,
	}

	rows := make([][]string, 0, len(result.States)+1)
	rows = append(rows, []string{"time", "r", "v"})
	for i, st := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, val := range st {
			row = append(row, strconv.FormatFloat(val, 'f', 8, 64))
		}
		rows = append(rows, row)
	}

	if err := s.writeRun(runID, meta, "trajectory.csv", rows); err != nil {
		return "", err
	}
	return runID, nil
}

// SaveChain persists a Metropolis run as metadata.json + samples.csv.
func (s *Store) SaveChain(mol string, cfg montecarlo.Config, result *montecarlo.Result) (string, error) {
	runID := fmt.Sprintf("%s_mc_%d", mol, time.Now().UnixNano())

	meta := RunMetadata{
		ID:          runID,
		Kind:        KindMonteCarlo,
		Molecule:    mol,
		Timestamp:   time.Now(),
		Seed:        cfg.Seed,
		Temperature: cfg.Temp,
		Steps:       cfg.Steps,
		Delta:       cfg.Delta,
		Metrics: map[string]float64{
			"acceptance_rate": result.AcceptanceRate,
			"samples":         float64(len(result.Samples)),
		},
	}

	rows := make([][]string, 0, len(result.Samples)+1)
	rows = append(rows, []string{"sample", "r"})
	for i, r := range result.Samples {
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.FormatFloat(r, 'f', 8, 64),
		})
	}

	if err := s.writeRun(runID, meta, "samples.csv", rows); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) writeRun(runID string, meta RunMetadata, dataName string, rows [][]string) error {
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	dataFile, err := os.Create(filepath.Join(runDir, dataName))
	if err != nil {
		return err
	}
	defer dataFile.Close()

	w := csv.NewWriter(dataFile)
	defer w.Flush()
	return w.WriteAll(rows)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory reads a dynamics run back as parallel time/bond/velocity
// series.
func (s *Store) LoadTrajectory(runID string) (times, r, v []float64, err error) {
	records, err := s.readCSV(runID, "trajectory.csv")
	if err != nil {
		return nil, nil, nil, err
	}
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 3 {
			continue
		}
		t, err1 := strconv.ParseFloat(rec[0], 64)
		rr, err2 := strconv.ParseFloat(rec[1], 64)
		vv, err3 := strconv.ParseFloat(rec[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		times = append(times, t)
		r = append(r, rr)
		v = append(v, vv)
	}
	return times, r, v, nil
}

// LoadSamples reads a Metropolis run back as a bond-length series.
func (s *Store) LoadSamples(runID string) ([]float64, error) {
	records, err := s.readCSV(runID, "samples.csv")
	if err != nil {
		return nil, err
	}
	samples := make([]float64, 0, len(records))
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 2 {
			continue
		}
		r, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			continue
		}
		samples = append(samples, r)
	}
	return samples, nil
}

func (s *Store) readCSV(runID, name string) ([][]string, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
