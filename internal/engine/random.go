package engine

import "math/rand/v2"

// Source is the random source behind the predictors' noise terms.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// SourceFactory hands out a fresh Source per call. Sources are never shared
// between goroutines.
type SourceFactory func() Source

// NewSource returns a deterministic source for seed. Not safe for concurrent use.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// EntropySources seeds every source from the runtime generator.
func EntropySources() SourceFactory {
	return func() Source {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

// SeededSources returns the same deterministic sequence for every call, so a
// given request always yields the same prediction regardless of call order.
func SeededSources(seed uint64) SourceFactory {
	return func() Source {
		return NewSource(seed)
	}
}

// SourcesFor picks SeededSources for a non-zero seed and EntropySources otherwise.
func SourcesFor(seed uint64) SourceFactory {
	if seed == 0 {
		return EntropySources()
	}
	return SeededSources(seed)
}

// uniformInt draws an integer from the closed range [-spread, spread].
func uniformInt(rng Source, spread int) int {
	return rng.IntN(2*spread+1) - spread
}

// uniformFloat draws a real from [-spread, spread).
func uniformFloat(rng Source, spread float64) float64 {
	return rng.Float64()*2*spread - spread
}
