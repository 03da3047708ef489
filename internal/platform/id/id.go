package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}

// Sequence hands out a fixed list of ids, then repeats the last one.
type Sequence struct {
	IDs  []string
	next int
}

func (s *Sequence) New() string {
	if len(s.IDs) == 0 {
		return ""
	}
	if s.next >= len(s.IDs) {
		return s.IDs[len(s.IDs)-1]
	}
	out := s.IDs[s.next]
	s.next++
	return out
}
