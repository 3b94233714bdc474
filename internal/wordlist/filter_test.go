package wordlist

import (
	"testing"

	"github.com/verte-zerg/typedojo/internal/model"
)

func TestFilterEnglishASCII(t *testing.T) {
	filter := FilterForLang("en")
	if !filter("hello") {
		t.Fatalf("expected hello to pass english filter")
	}
	for _, word := range []string{"résumé", "naïve", "don’t", "co-op"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
	if !FilterForLang("")("co-op") {
		t.Fatalf("expected unknown language to keep everything")
	}
}

func TestNormalize(t *testing.T) {
	in := []model.Word{
		{Text: " cat "},
		{Text: ""},
		{Text: "cat", Synonyms: []string{"feline"}},
		{Text: "Dog"},
		{Text: "owl"},
	}
	got := Normalize(in, FilterForLang("en"))
	if len(got) != 2 || got[0].Text != "cat" || got[1].Text != "owl" {
		t.Fatalf("unexpected words: %+v", got)
	}
	if len(got[0].Synonyms) != 0 {
		t.Fatalf("expected the first record to win, got %+v", got[0])
	}
	if all := Normalize(in, nil); len(all) != 3 {
		t.Fatalf("expected 3 words without a filter, got %+v", all)
	}
}
