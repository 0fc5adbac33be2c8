package storage

import (
	"encoding/json"
	"os"
)

// ExportData is the flat JSON export of a run, suitable for notebooks and
// downstream plotting.
type ExportData struct {
	ID          string             `json:"id"`
	Kind        string             `json:"kind"`
	Molecule    string             `json:"molecule"`
	Method      string             `json:"method,omitempty"`
	Dt          float64            `json:"dt,omitempty"`
	Duration    float64            `json:"duration,omitempty"`
	Temperature float64            `json:"temperature,omitempty"`
	Times       []float64          `json:"times,omitempty"`
	Bond        []float64          `json:"bond"`
	Velocity    []float64          `json:"velocity,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run to stdout as indented JSON. Dynamics runs carry
// the full time/bond/velocity series; Metropolis runs carry the samples.
func (s *Store) ExportJSON(runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		ID:          meta.ID,
		Kind:        meta.Kind,
		Molecule:    meta.Molecule,
		Method:      meta.Method,
		Dt:          meta.Dt,
		Duration:    meta.Duration,
		Temperature: meta.Temperature,
		Metrics:     meta.Metrics,
	}

	switch meta.Kind {
	case KindMonteCarlo:
		samples, err := s.LoadSamples(runID)
		if err != nil {
			return err
		}
		data.Bond = samples
	default:
		times, r, v, err := s.LoadTrajectory(runID)
		if err != nil {
			return err
		}
		data.Times = times
		data.Bond = r
		data.Velocity = v
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
