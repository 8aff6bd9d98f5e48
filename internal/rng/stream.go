// Package rng provides deterministic, independently seeded random streams.
// Every stream is a pure function of (run seed, namespace, turn, label), so
// unrelated subsystems never perturb each other's draws and recreating a
// stream with the same inputs replays the same sequence.
package rng

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// SeedFromString returns a 64-bit seed from an arbitrary string using SHA256.
func SeedFromString(s string) uint64 {
	h := sha256.Sum256([]byte(s))
	return binary.LittleEndian.Uint64(h[:8])
}

// derive returns a deterministic child seed from a base seed and a label
// using HMAC-SHA256. Labels are stable strings such as "events" or "turn:3".
func derive(base uint64, label string) uint64 {
	key := make([]byte, 8)
	binary.LittleEndian.PutUint64(key, base)
	m := hmac.New(sha256.New, key)
	_, _ = m.Write([]byte(label))
	sum := m.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}

// splitMix64 is the PRNG behind every stream. Small state, good dispersion,
// and trivially reproducible from a single uint64 seed.
type splitMix64 struct{ state uint64 }

func (s *splitMix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Stream is an unbounded lazy sequence of pseudo-random values.
type Stream struct {
	base uint64
	sm   splitMix64
}

// New derives a stream from the run seed text, a subsystem namespace, the
// turn index, and a free-form label. Same four inputs, same sequence.
func New(seed, namespace string, turn int, label string) *Stream {
	root := SeedFromString(seed)
	root = derive(root, namespace)
	root = derive(root, fmt.Sprintf("turn:%d", turn))
	root = derive(root, label)
	return &Stream{base: root, sm: splitMix64{state: root}}
}

// Uint64 returns the next raw 64-bit value.
func (s *Stream) Uint64() uint64 { return s.sm.next() }

// Intn mirrors math/rand.Intn but is deterministic per stream.
// Returns 0 for n <= 0.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.sm.next() % uint64(n))
}

// Float64 returns a float in [0,1).
func (s *Stream) Float64() float64 {
	return float64(s.sm.next()>>11) / (1 << 53)
}

// Child creates a stable sub-stream derived from this stream's base seed.
// Drawing from a child never advances the parent.
func (s *Stream) Child(label string) *Stream {
	seed := derive(s.base, label)
	return &Stream{base: seed, sm: splitMix64{state: seed}}
}
