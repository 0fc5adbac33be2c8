package pes

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Spline is a natural cubic smoothing spline in the Reinsch formulation.
// With Alpha == 0 it interpolates the samples exactly; larger Alpha trades
// fidelity for curvature. Second derivatives vanish at the end knots, and
// evaluation outside the knot range extrapolates linearly with the boundary
// slope.
type Spline struct {
	knots  []float64
	fitted []float64 // smoothed values at the knots
	m2     []float64 // second derivatives at the knots (natural: ends zero)
	alpha  float64
}

// FitSpline fits a smoothing spline to samples (x, y) with smoothing
// parameter alpha >= 0. The samples are sorted by x internally; x values
// must be distinct and everything must be finite.
func FitSpline(x, y []float64, alpha float64) (*Spline, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("pes: sample length mismatch (%d x, %d y)", len(x), len(y))
	}
	n := len(x)
	if n < 4 {
		return nil, fmt.Errorf("pes: need at least 4 samples, got %d", n)
	}
	if alpha < 0 {
		return nil, fmt.Errorf("pes: smoothing parameter must be non-negative, got %g", alpha)
	}

	type pt struct{ x, y float64 }
	pts := make([]pt, n)
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return nil, fmt.Errorf("pes: non-finite sample at index %d", i)
		}
		pts[i] = pt{x[i], y[i]}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].x < pts[j].x })

	t := make([]float64, n)
	v := make([]float64, n)
	for i, p := range pts {
		t[i] = p.x
		v[i] = p.y
	}
	for i := 1; i < n; i++ {
		if t[i] == t[i-1] {
			return nil, fmt.Errorf("pes: duplicate sample abscissa %g", t[i])
		}
	}

	h := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = t[i+1] - t[i]
	}

	// Q is the n x (n-2) second-difference matrix, R the (n-2) x (n-2)
	// tridiagonal Gram matrix of the natural spline basis. The smoother
	// solves (R + alpha Q'Q) g = Q'v, then pulls the fitted values back
	// as f = v - alpha Q g.
	m := n - 2
	q := mat.NewDense(n, m, nil)
	for c := 0; c < m; c++ {
		j := c + 1
		q.Set(j-1, c, 1/h[j-1])
		q.Set(j, c, -1/h[j-1]-1/h[j])
		q.Set(j+1, c, 1/h[j])
	}

	sys := mat.NewSymDense(m, nil)
	for c := 0; c < m; c++ {
		j := c + 1
		sys.SetSym(c, c, (h[j-1]+h[j])/3)
		if c+1 < m {
			sys.SetSym(c, c+1, h[j]/6)
		}
	}
	if alpha > 0 {
		var qtq mat.Dense
		qtq.Mul(q.T(), q)
		for c := 0; c < m; c++ {
			for d := c; d < m; d++ {
				sys.SetSym(c, d, sys.At(c, d)+alpha*qtq.At(c, d))
			}
		}
	}

	rhs := mat.NewVecDense(m, nil)
	rhs.MulVec(q.T(), mat.NewVecDense(n, v))

	var chol mat.Cholesky
	if ok := chol.Factorize(sys); !ok {
		return nil, fmt.Errorf("pes: smoothing system is not positive definite")
	}
	g := mat.NewVecDense(m, nil)
	if err := chol.SolveVecTo(g, rhs); err != nil {
		return nil, fmt.Errorf("pes: solving smoothing system: %w", err)
	}

	fitted := make([]float64, n)
	copy(fitted, v)
	if alpha > 0 {
		adj := mat.NewVecDense(n, nil)
		adj.MulVec(q, g)
		for i := range fitted {
			fitted[i] -= alpha * adj.AtVec(i)
		}
	}

	m2 := make([]float64, n)
	for c := 0; c < m; c++ {
		m2[c+1] = g.AtVec(c)
	}

	return &Spline{knots: t, fitted: fitted, m2: m2, alpha: alpha}, nil
}

// Domain returns the knot range [lo, hi].
func (s *Spline) Domain() (lo, hi float64) {
	return s.knots[0], s.knots[len(s.knots)-1]
}

// Alpha returns the smoothing parameter the spline was fit with.
func (s *Spline) Alpha() float64 { return s.alpha }

// Knots returns the knot positions and fitted values at the knots.
func (s *Spline) Knots() (x, y []float64) {
	x = make([]float64, len(s.knots))
	y = make([]float64, len(s.fitted))
	copy(x, s.knots)
	copy(y, s.fitted)
	return x, y
}

// segment finds the interval index i with knots[i] <= x < knots[i+1],
// clamped to the first and last interval.
func (s *Spline) segment(x float64) int {
	i := sort.SearchFloat64s(s.knots, x) - 1
	if i < 0 {
		i = 0
	}
	if i > len(s.knots)-2 {
		i = len(s.knots) - 2
	}
	return i
}

// At evaluates the spline at x. Outside the knot range the spline continues
// linearly with the boundary slope.
func (s *Spline) At(x float64) float64 {
	n := len(s.knots)
	if x <= s.knots[0] {
		return s.fitted[0] + s.Deriv(s.knots[0])*(x-s.knots[0])
	}
	if x >= s.knots[n-1] {
		return s.fitted[n-1] + s.Deriv(s.knots[n-1])*(x-s.knots[n-1])
	}
	i := s.segment(x)
	h := s.knots[i+1] - s.knots[i]
	a := (s.knots[i+1] - x) / h
	b := (x - s.knots[i]) / h
	return a*s.fitted[i] + b*s.fitted[i+1] +
		((a*a*a-a)*s.m2[i]+(b*b*b-b)*s.m2[i+1])*h*h/6
}

// Deriv evaluates the first derivative at x, constant outside the knots.
func (s *Spline) Deriv(x float64) float64 {
	n := len(s.knots)
	if x < s.knots[0] {
		x = s.knots[0]
	}
	if x > s.knots[n-1] {
		x = s.knots[n-1]
	}
	i := s.segment(x)
	h := s.knots[i+1] - s.knots[i]
	a := (s.knots[i+1] - x) / h
	b := (x - s.knots[i]) / h
	return (s.fitted[i+1]-s.fitted[i])/h +
		(-(3*a*a-1)*s.m2[i]+(3*b*b-1)*s.m2[i+1])*h/6
}

// Deriv2 evaluates the second derivative at x, zero outside the knots.
func (s *Spline) Deriv2(x float64) float64 {
	n := len(s.knots)
	if x < s.knots[0] || x > s.knots[n-1] {
		return 0
	}
	i := s.segment(x)
	h := s.knots[i+1] - s.knots[i]
	a := (s.knots[i+1] - x) / h
	b := (x - s.knots[i]) / h
	return a*s.m2[i] + b*s.m2[i+1]
}
