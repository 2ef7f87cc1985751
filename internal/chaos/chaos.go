// Package chaos provides fault injection for byte sources.
//
// The wrappers in this package exercise the paths of stream consumers that
// deal with partial reads, reads that make no progress, and transient errors.
// They are intended to be combined with New, which picks one of them at
// random on each read.
package chaos

import (
	"math"
	"math/rand"

	"github.com/stealthrocket/bufstream/pkg/bufstream"
)

const (
	maxChance = 1024 * 1024 * 1024
)

type Rule struct {
	chance int64 // [0;maxChance]
	source bufstream.Source
}

// Chance is a constructor for values of type Rule, mapping a source to a
// probability of it being picked when reading.
func Chance(chance float64, source bufstream.Source) Rule {
	if chance < 0 || chance > 1 {
		panic("invalid chance of chaos source rule is not in the range [0;1]")
	}
	return Rule{
		chance: int64(math.Round(chance * maxChance)),
		source: source,
	}
}

// New constructs a new chaos source. The given random source is used for all
// random number generation. The base source is the fallback when the
// probability drawn for a read did not match any of the rules. The sources
// set on rules are expected to be wrappers of the base source created by
// functions of this package.
//
// Only reads are distributed across the rules; Available and Close always go
// to the base source.
func New(prng rand.Source, base bufstream.Source, rules ...Rule) bufstream.Source {
	s := &source{
		prng:    prng,
		base:    base,
		chances: make([]int64, len(rules)),
		sources: make([]bufstream.Source, len(rules)),
	}
	cumulativeChance := int64(0)
	for i, rule := range rules {
		cumulativeChance += rule.chance
		s.chances[i] = cumulativeChance
		s.sources[i] = rule.source
		if cumulativeChance < 0 || cumulativeChance > maxChance {
			panic("cumulative chance of chaos source rules is greater than 1")
		}
	}
	return s
}

type source struct {
	prng    rand.Source
	base    bufstream.Source
	chances []int64
	sources []bufstream.Source
}

func (s *source) source() bufstream.Source {
	probability := s.prng.Int63() & (maxChance - 1)
	for i, chance := range s.chances {
		if chance > probability {
			return s.sources[i]
		}
	}
	return s.base
}

func (s *source) Read(b []byte) (int, error) {
	return s.source().Read(b)
}

func (s *source) Available() (int, error) {
	return s.base.Available()
}

func (s *source) Close() error {
	return s.base.Close()
}
