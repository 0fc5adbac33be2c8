package integrators

import "github.com/san-kum/vibelab/internal/dynamo"

// Verlet is the velocity Verlet scheme for microcanonical (NVE) runs.
type Verlet struct {
	scratch dynamo.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) ensureScratch(n int) {
	if len(v.scratch) != n {
		v.scratch = make(dynamo.State, n)
	}
}

func (v *Verlet) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	d := n / 2
	v.ensureScratch(n)

	a := sys.Accel(x, t)
	dt2 := dt * dt

	result := make(dynamo.State, n)
	for i := 0; i < d; i++ {
		result[i] = x[i] + x[d+i]*dt + 0.5*a[i]*dt2
	}

	for i := 0; i < d; i++ {
		v.scratch[i] = result[i]
		v.scratch[d+i] = x[d+i]
	}
	aNew := sys.Accel(v.scratch, t+dt)

	halfDt := 0.5 * dt
	for i := 0; i < d; i++ {
		result[d+i] = x[d+i] + (a[i]+aNew[i])*halfDt
	}

	return result
}

// Leapfrog is the kick-drift-kick variant; identical trajectories to Verlet
// on smooth potentials but cheaper scratch handling.
type Leapfrog struct {
	scratch dynamo.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	d := n / 2

	if len(l.scratch) != n {
		l.scratch = make(dynamo.State, n)
	}

	a := sys.Accel(x, t)
	halfDt := dt * 0.5

	result := make(dynamo.State, n)
	for i := 0; i < d; i++ {
		l.scratch[d+i] = x[d+i] + a[i]*halfDt
	}
	for i := 0; i < d; i++ {
		result[i] = x[i] + l.scratch[d+i]*dt
		l.scratch[i] = result[i]
	}

	aNew := sys.Accel(l.scratch, t+dt)
	for i := 0; i < d; i++ {
		result[d+i] = l.scratch[d+i] + aNew[i]*halfDt
	}

	return result
}
