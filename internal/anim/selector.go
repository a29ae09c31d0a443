package anim

import (
	"math/rand"

	"github.com/tejaspatelll/warpdrive/internal/effects"
)

// Selector deals showcase objects in shuffled cycles so every object shows
// once before any repeats, and the first object of a new cycle never
// duplicates the last of the previous one.
type Selector struct {
	rng   *rand.Rand
	order []effects.Kind
	i     int
}

func NewSelector(rng *rand.Rand) *Selector {
	s := &Selector{rng: rng, order: make([]effects.Kind, effects.KindCount)}
	for k := range s.order {
		s.order[k] = effects.Kind(k)
	}
	s.shuffle(effects.Kind(-1))
	return s
}

func (s *Selector) Next() effects.Kind {
	if s.i == len(s.order) {
		s.shuffle(s.order[len(s.order)-1])
	}
	k := s.order[s.i]
	s.i++
	return k
}

func (s *Selector) shuffle(avoidFirst effects.Kind) {
	s.rng.Shuffle(len(s.order), func(a, b int) {
		s.order[a], s.order[b] = s.order[b], s.order[a]
	})
	if s.order[0] == avoidFirst && len(s.order) > 1 {
		j := 1 + s.rng.Intn(len(s.order)-1)
		s.order[0], s.order[j] = s.order[j], s.order[0]
	}
	s.i = 0
}
