package pebblesfakes

import (
	"errors"
	"sync"
)

// ErrSequenceExhausted is returned once a SequenceSource runs out of values.
var ErrSequenceExhausted = errors.New("random sequence exhausted")

// SequenceSource replays a fixed list of draws. Err, when set, is returned
// instead of the next value.
type SequenceSource struct {
	mu     sync.Mutex
	Values []uint32
	Err    error
	Calls  int
}

// NewSequenceSource builds a SequenceSource with the given draws.
func NewSequenceSource(values ...uint32) *SequenceSource {
	return &SequenceSource{Values: values}
}

// Uint32 returns the next configured value.
func (s *SequenceSource) Uint32() (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return 0, s.Err
	}
	if len(s.Values) == 0 {
		return 0, ErrSequenceExhausted
	}
	value := s.Values[0]
	s.Values = s.Values[1:]
	return value, nil
}
