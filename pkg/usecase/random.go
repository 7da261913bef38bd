package usecase

import (
	"math/rand/v2"
	"sync"

	"github.com/secmon-lab/denguescope/pkg/domain/model"
)

// globalSource draws from the process-wide generator, which is safe for concurrent use
type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}

// NewRandomSource returns an unseeded source: predictions differ on every render
func NewRandomSource() model.RandomSource {
	return globalSource{}
}

// lockedSource serialises draws from a single seeded generator
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// NewSeededSource returns a reproducible source. The same seed yields the same sequence of renders.
func NewSeededSource(seed uint64) model.RandomSource {
	return &lockedSource{rng: rand.New(rand.NewPCG(seed, seed))}
}
