// Package generator provides the randomness used by the game: shuffling,
// coin flips and synthesized letter strings.
package generator

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/typedojo/internal/model"
)

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
	dash      = "-"
)

// Generator produces randomized game choices.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded from crypto/rand, falling back to the clock.
func New() *Generator {
	return NewSeeded(newSeed())
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// Intn returns a uniform int in [0, n).
func (g *Generator) Intn(n int) int {
	return g.rnd.Intn(n)
}

// IntRange returns a uniform int in [lo, hi]. Bounds are swapped when reversed.
func (g *Generator) IntRange(lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + g.rnd.Intn(hi-lo+1)
}

// Chance reports true with probability p.
func (g *Generator) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return g.rnd.Float64() < p
}

// CoinFlip reports true with probability 0.5.
func (g *Generator) CoinFlip() bool {
	return g.rnd.Intn(2) == 1
}

// Shuffle returns a uniformly permuted copy of items (Fisher-Yates).
func Shuffle[T any](g *Generator, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := g.rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Pick returns a uniformly chosen element of items. items must not be empty.
func Pick[T any](g *Generator, items []T) T {
	return items[g.rnd.Intn(len(items))]
}

// LetterPool builds the character pool for synthesized words. Lowercase
// letters are used when the mix would otherwise contain no letters at all.
func LetterPool(mix model.WordMix, exclude string) []rune {
	var b strings.Builder
	if mix.IncludeLowercase || !mix.IncludeUppercase {
		b.WriteString(lowercase)
	}
	if mix.IncludeUppercase {
		b.WriteString(uppercase)
	}
	if mix.IncludeNumbers {
		b.WriteString(digits)
	}
	if mix.IncludeDash {
		b.WriteString(dash)
	}
	pool := make([]rune, 0, b.Len())
	for _, r := range b.String() {
		if isExcluded(r, exclude) {
			continue
		}
		pool = append(pool, r)
	}
	if len(pool) == 0 {
		return []rune(lowercase)
	}
	return pool
}

// RandomLetters synthesizes a string whose length is uniform in
// [minLen, maxLen], drawing every character independently from pool.
func (g *Generator) RandomLetters(minLen, maxLen int, pool []rune) string {
	if minLen < 1 {
		minLen = 1
	}
	if maxLen < 1 {
		maxLen = 1
	}
	if len(pool) == 0 {
		pool = []rune(lowercase)
	}
	n := g.IntRange(minLen, maxLen)
	out := make([]rune, n)
	for i := range out {
		out[i] = pool[g.rnd.Intn(len(pool))]
	}
	return string(out)
}

// ContainsExcluded reports whether word contains any excluded letter,
// ignoring case.
func ContainsExcluded(word, exclude string) bool {
	if exclude == "" {
		return false
	}
	for _, r := range word {
		if isExcluded(r, exclude) {
			return true
		}
	}
	return false
}

func isExcluded(r rune, exclude string) bool {
	if exclude == "" {
		return false
	}
	lower := unicode.ToLower(r)
	for _, ex := range exclude {
		if unicode.ToLower(ex) == lower {
			return true
		}
	}
	return false
}
