// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Word is a dictionary entry. Text is the key used for statistics.
type Word struct {
	Text     string    `json:"word"`
	Synonyms []string  `json:"synonyms,omitempty"`
	Antonyms []string  `json:"antonyms,omitempty"`
	Meanings []Meaning `json:"meanings,omitempty"`
}

// Meaning is an opaque (part of speech, definition, synonyms, examples) tuple.
// It is encoded as a four element JSON array.
type Meaning struct {
	PartOfSpeech string
	Definition   string
	Synonyms     []string
	Examples     []string
}

// MarshalJSON encodes the meaning as a tuple.
func (m Meaning) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{m.PartOfSpeech, m.Definition, nonNil(m.Synonyms), nonNil(m.Examples)})
}

// UnmarshalJSON decodes a tuple-encoded meaning.
func (m *Meaning) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode meaning: %w", err)
	}
	if len(raw) != 4 {
		return fmt.Errorf("failed to decode meaning: expected 4 elements, got %d", len(raw))
	}
	var out Meaning
	targets := []any{&out.PartOfSpeech, &out.Definition, &out.Synonyms, &out.Examples}
	for i, target := range targets {
		if err := json.Unmarshal(raw[i], target); err != nil {
			return fmt.Errorf("failed to decode meaning element %d: %w", i, err)
		}
	}
	*m = out
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// WordStats holds per-word counters.
type WordStats struct {
	Starred        bool
	Seen           int
	CorrectlyTyped int
	WronglyTyped   int
	LastSeen       time.Time
}

// Journal holds user notes attached to a saved word.
type Journal struct {
	Description string
	Tags        []string
}

// SavedWordStats is the persisted record for one word.
type SavedWordStats struct {
	Word      Word
	Stats     WordStats
	Journal   Journal
	CreatedAt time.Time
}

// NewSavedWordStats returns an empty record for word created at now.
func NewSavedWordStats(word Word, now time.Time) SavedWordStats {
	return SavedWordStats{
		Word:      word,
		Journal:   Journal{Tags: []string{}},
		CreatedAt: now,
	}
}

// Accuracy returns the share of typed attempts that were correct.
func (s WordStats) Accuracy() float64 {
	total := s.CorrectlyTyped + s.WronglyTyped
	if total == 0 {
		return 1.0
	}
	return float64(s.CorrectlyTyped) / float64(total)
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	StarredOnly bool
	Top         int
	Query       string
}
