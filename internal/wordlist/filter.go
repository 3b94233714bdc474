package wordlist

import (
	"strings"

	"github.com/verte-zerg/typedojo/internal/model"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns a language-specific filter for word lists.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(lang) {
	case "en":
		return filterEnglishASCII
	default:
		return func(string) bool { return true }
	}
}

func filterEnglishASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}

// Normalize trims word texts, drops blanks and words rejected by keep, and
// keeps the first record for each text.
func Normalize(words []model.Word, keep FilterFunc) []model.Word {
	seen := make(map[string]struct{}, len(words))
	out := make([]model.Word, 0, len(words))
	for _, w := range words {
		w.Text = strings.TrimSpace(w.Text)
		if w.Text == "" {
			continue
		}
		if keep != nil && !keep(w.Text) {
			continue
		}
		if _, dup := seen[w.Text]; dup {
			continue
		}
		seen[w.Text] = struct{}{}
		out = append(out, w)
	}
	return out
}
