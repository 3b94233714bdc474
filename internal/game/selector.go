package game

import (
	"github.com/verte-zerg/typedojo/internal/generator"
	"github.com/verte-zerg/typedojo/internal/model"
)

// Pick is the outcome of one selection.
type Pick struct {
	Word model.Word
	// Synthesized is set when the word was generated from random letters.
	Synthesized bool
	// Fallback is set when no word matched the filter and the pick ignored it.
	Fallback bool
}

type filterKey struct {
	exclude string
	minLen  int
	maxLen  int
}

// Selector chooses the next word to type. Dictionary picks walk a shuffled
// order with a wrapping cursor; a filter change reshuffles and rewinds it.
type Selector struct {
	gen    *generator.Generator
	words  []model.Word
	cursor int

	key      filterKey
	hasKey   bool
	filtered []model.Word
}

// NewSelector shuffles words once and returns a selector over them.
func NewSelector(words []model.Word, gen *generator.Generator) *Selector {
	s := &Selector{gen: gen}
	s.Reset(words)
	return s
}

// Reset replaces the word list with a fresh shuffle and rewinds the cursor.
func (s *Selector) Reset(words []model.Word) {
	s.words = generator.Shuffle(s.gen, words)
	s.cursor = 0
	s.hasKey = false
	s.filtered = nil
}

// Words returns the loaded word list in its current order.
func (s *Selector) Words() []model.Word {
	return s.words
}

// Next returns the next word for settings.
func (s *Selector) Next(settings model.Settings) Pick {
	if settings.JoinRandomLetters {
		if !settings.MixJoinRandomLetters || !s.gen.Chance(settings.MixWordChance) {
			return s.randomLetters(settings)
		}
	}
	return s.dictionary(settings)
}

func (s *Selector) dictionary(settings model.Settings) Pick {
	if len(s.words) == 0 {
		return s.randomLetters(settings)
	}
	key := filterKey{
		exclude: settings.ExcludeLetters,
		minLen:  settings.MinWordLength,
		maxLen:  settings.MaxWordLength,
	}
	if !s.hasKey || key != s.key {
		if s.hasKey {
			s.words = generator.Shuffle(s.gen, s.words)
		}
		s.key = key
		s.hasKey = true
		s.filtered = FilterWords(s.words, key.exclude, key.minLen, key.maxLen)
		s.cursor = 0
	}

	candidates := s.filtered
	fallback := false
	if len(candidates) == 0 {
		candidates = s.words
		fallback = true
	}
	if s.cursor >= len(candidates) {
		s.cursor = 0
	}
	word := candidates[s.cursor]
	s.cursor++
	return Pick{Word: word, Fallback: fallback}
}

func (s *Selector) randomLetters(settings model.Settings) Pick {
	pool := generator.LetterPool(settings.WordMix, settings.ExcludeLetters)
	text := s.gen.RandomLetters(settings.MinWordLength, settings.MaxWordLength, pool)
	return Pick{Word: model.Word{Text: text}, Synthesized: true}
}

// FilterWords keeps words without excluded letters whose length is within
// [minLen, maxLen].
func FilterWords(words []model.Word, exclude string, minLen, maxLen int) []model.Word {
	out := make([]model.Word, 0, len(words))
	for _, w := range words {
		n := len([]rune(w.Text))
		if n < minLen || n > maxLen {
			continue
		}
		if generator.ContainsExcluded(w.Text, exclude) {
			continue
		}
		out = append(out, w)
	}
	return out
}
