package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/typedojo/internal/model"
)

func TestApplyPlayFlagsOnlyChanged(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--speed", "3.5", "--no-save", "--display", "full-word"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	settings := model.DefaultSettings()
	settings.ExcludeLetters = "qz"
	settings.MinWordLength = 4
	applyPlayFlags(cmd, &settings)

	if settings.Speed != 3.5 || settings.SaveStats || settings.DisplayMode != model.DisplayFullWord {
		t.Fatalf("expected flag overrides, got %+v", settings)
	}
	if settings.ExcludeLetters != "qz" || settings.MinWordLength != 4 {
		t.Fatalf("unchanged flags must keep file values, got %+v", settings)
	}
}

func TestLoadWordsMissingDefault(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	words, err := loadWords(cmd, filepath.Join(t.TempDir(), "words.json"))
	if err != nil || words != nil {
		t.Fatalf("expected no words and no error, got %v %v", words, err)
	}
}

func TestLoadWordsExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.txt")
	if err := os.WriteFile(path, []byte("cat\ndog\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--words", path}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	words, err := loadWords(cmd, filepath.Join(dir, "missing.json"))
	if err != nil || len(words) != 2 {
		t.Fatalf("expected 2 words, got %v %v", words, err)
	}

	cmd = newRootCmd()
	if err := cmd.ParseFlags([]string{"--words", filepath.Join(dir, "nope.txt")}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := loadWords(cmd, path); err == nil {
		t.Fatalf("expected an error for a missing explicit list")
	}
}
