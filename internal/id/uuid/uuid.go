// Package uuid generates the identifiers attached to engines, observers and
// their telemetry events.
package uuid

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator creates time-ordered UUIDv7 identifiers.
type Generator struct{}

// NewUUIDGenerator creates a new Generator.
func NewUUIDGenerator() *Generator {
	return &Generator{}
}

// NewRawID returns a UUIDv7. When the v7 source fails it falls back to a
// random v4 and only errors if that fails too.
func (Generator) NewRawID() (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err == nil {
		return id, nil
	}
	id, v4err := uuid.NewRandom()
	if v4err != nil {
		return uuid.Nil, fmt.Errorf("generate uuid7: %w; uuid4 fallback: %w", err, v4err)
	}
	return id, nil
}

// Sequence yields deterministic identifiers: byte 0 holds the seed and the
// last eight bytes a counter starting at 1. Replays use it so exported
// labels are stable between runs.
type Sequence struct {
	seed byte

	mu sync.Mutex
	n  uint64
}

// NewSequence creates a Sequence for seed.
func NewSequence(seed byte) *Sequence {
	return &Sequence{seed: seed}
}

// NewRawID returns the next identifier in the sequence.
func (s *Sequence) NewRawID() (uuid.UUID, error) {
	s.mu.Lock()
	s.n++
	n := s.n
	s.mu.Unlock()

	var id uuid.UUID
	id[0] = s.seed
	binary.BigEndian.PutUint64(id[8:], n)
	return id, nil
}
