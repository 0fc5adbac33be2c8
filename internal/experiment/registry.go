package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/vibelab/internal/dynamo"
	"github.com/san-kum/vibelab/internal/integrators"
)

var methods = map[string]func(friction, temp float64, seed int64) dynamo.Integrator{
	"bbk": func(friction, temp float64, seed int64) dynamo.Integrator {
		return integrators.NewBBK(friction, temp, seed)
	},
	"verlet": func(_, _ float64, _ int64) dynamo.Integrator {
		return integrators.NewVerlet()
	},
	"leapfrog": func(_, _ float64, _ int64) dynamo.Integrator {
		return integrators.NewLeapfrog()
	},
}

// NewIntegrator builds the named time-stepping scheme. Friction and
// temperature only apply to the stochastic schemes.
func NewIntegrator(method string, friction, temp float64, seed int64) (dynamo.Integrator, error) {
	build, ok := methods[method]
	if !ok {
		return nil, fmt.Errorf("unknown method: %s (available: %v)", method, Methods())
	}
	return build(friction, temp, seed), nil
}

// Methods lists the registered integration schemes, sorted.
func Methods() []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
