package analysis

import (
	"context"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/vibelab/internal/montecarlo"
	"github.com/san-kum/vibelab/internal/pes"
)

// Sweep measures the mean bond length at each temperature with a Metropolis
// chain per point. On an anharmonic surface the mean drifts away from the
// equilibrium bond length as T rises (thermal expansion); on a harmonic
// surface it stays put.
func Sweep(ctx context.Context, surface *pes.Surface, temps []float64, cfg montecarlo.Config) ([]float64, error) {
	means := make([]float64, len(temps))
	for i, temp := range temps {
		chainCfg := cfg
		chainCfg.Temp = temp
		chainCfg.Seed = cfg.Seed + int64(i)

		sampler, err := montecarlo.New(surface, chainCfg)
		if err != nil {
			return nil, err
		}
		res, err := sampler.Run(ctx)
		if err != nil {
			return nil, err
		}
		means[i] = stat.Mean(res.Samples, nil)
	}
	return means, nil
}
