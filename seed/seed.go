// Package seed derives reproducible random seeds from labelled paths.
//
// A Seed is forked by label into child seeds; the derivation is a pure
// function of the parent state and the label, so the same path always yields
// the same seed across runs and there is no global random state.
package seed

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math/rand/v2"

	"golang.org/x/text/unicode/norm"
)

// Seed is the state at one node of the derivation tree.
type Seed uint64

// delim separates the parent state from the label in every hash.
const delim uint64 = 0xe16013eafc14eeed

// Label kinds, so that Fork("1") and ForkN(1) never collide.
const (
	kindString byte = 's'
	kindIndex  byte = 'n'
)

// New returns the root seed for a phrase. The phrase is NFC normalized, so
// canonically equivalent spellings give the same seed.
func New(phrase string) Seed {
	return Seed(0).Fork(norm.NFC.String(phrase))
}

// Fork derives the child seed for label.
func (s Seed) Fork(label string) Seed {
	return s.derive(kindString, []byte(label))
}

// ForkN derives the child seed for an index, for sequences of siblings.
func (s Seed) ForkN(n uint64) Seed {
	return s.derive(kindIndex, binary.LittleEndian.AppendUint64(nil, n))
}

// Rand returns a random source determined by s alone.
func (s Seed) Rand() *rand.Rand {
	h := s.hasher()
	lo := h.Sum64()
	_, _ = h.Write([]byte{0})
	hi := h.Sum64()
	return rand.New(rand.NewPCG(lo, hi))
}

func (s Seed) derive(kind byte, label []byte) Seed {
	h := s.hasher()
	_, _ = h.Write([]byte{kind})
	_, _ = h.Write(binary.LittleEndian.AppendUint64(nil, uint64(len(label))))
	_, _ = h.Write(label)
	return Seed(h.Sum64())
}

func (s Seed) hasher() hash.Hash64 {
	h := fnv.New64a()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(s))
	binary.LittleEndian.PutUint64(buf[8:], delim)
	_, _ = h.Write(buf[:])
	return h
}
