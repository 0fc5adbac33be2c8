package integrators

import (
	"testing"

	"github.com/san-kum/vibelab/internal/dynamo"
)

func BenchmarkVerletStep(b *testing.B) {
	sys := testOscillator()
	integ := NewVerlet()
	x := dynamo.State{1.05, 0.01}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(sys, x, 0, 0.01)
	}
}

func BenchmarkBBKStep(b *testing.B) {
	sys := testOscillator()
	integ := NewBBK(0.1, 300, 1)
	x := dynamo.State{1.05, 0.01}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(sys, x, 0, 0.01)
	}
}

func BenchmarkLeapfrogStep(b *testing.B) {
	sys := testOscillator()
	integ := NewLeapfrog()
	x := dynamo.State{1.05, 0.01}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(sys, x, 0, 0.01)
	}
}
