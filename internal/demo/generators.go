// Package demo holds the small lazy-sequence and text-filtering helpers
// shown on the Tools tab.
package demo

import (
	"iter"
	"math/rand/v2"
)

// Notes are the solfège syllables the note generator draws from.
var Notes = []string{"do", "re", "mi", "fa", "sol", "la", "si"}

// DefaultNoteCount is the sequence length used when none is given.
const DefaultNoteCount = 1_000_000

// NoteGenerator yields random notes.
type NoteGenerator struct {
	rng *rand.Rand
}

// NewNoteGenerator returns a generator seeded from the runtime source.
func NewNoteGenerator() *NoteGenerator {
	return &NoteGenerator{}
}

// NewSeededNoteGenerator returns a generator with a reproducible sequence.
func NewSeededNoteGenerator(seed uint64) *NoteGenerator {
	return &NoteGenerator{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (g *NoteGenerator) pick() string {
	if g.rng == nil {
		return Notes[rand.IntN(len(Notes))]
	}
	return Notes[g.rng.IntN(len(Notes))]
}

// Generate lazily yields count random notes. A non-positive count yields
// nothing.
func (g *NoteGenerator) Generate(count int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for range count {
			if !yield(g.pick()) {
				return
			}
		}
	}
}

// MultiplesOfThree yields every multiple of three starting from the smallest
// one not below start. The sequence is infinite; bound it with Take or a
// break.
func MultiplesOfThree(start int) iter.Seq[int] {
	return func(yield func(int) bool) {
		n := start
		if r := n % 3; r != 0 {
			if r < 0 {
				r += 3
			}
			n += 3 - r
		}
		for ; ; n += 3 {
			if !yield(n) {
				return
			}
		}
	}
}

// Take collects at most n values from seq.
func Take[T any](seq iter.Seq[T], n int) []T {
	out := make([]T, 0, max(n, 0))
	if n <= 0 {
		return out
	}
	for v := range seq {
		out = append(out, v)
		if len(out) == n {
			break
		}
	}
	return out
}
