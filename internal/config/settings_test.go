package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/verte-zerg/typedojo/internal/model"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	p := NewProvider(filepath.Join(t.TempDir(), "settings.toml"), nil)
	settings, err := p.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(settings, model.DefaultSettings()) {
		t.Fatalf("expected defaults, got %+v", settings)
	}
}

func TestLoadMergesPartialTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	writeFile(t, path, `
speed = 3.5
exclude-letters = "qz"

[letter-style]
direction = "flow"
`)
	settings := NewProvider(path, nil).Load()
	if settings.Speed != 3.5 || settings.ExcludeLetters != "qz" {
		t.Fatalf("expected overrides, got %+v", settings)
	}
	if settings.LetterStyle.Direction != model.DirectionFlow {
		t.Fatalf("expected nested override, got %q", settings.LetterStyle.Direction)
	}
	defaults := model.DefaultSettings()
	if settings.SameLetterDelayPercent != defaults.SameLetterDelayPercent || !settings.LetterStyle.RandomColor {
		t.Fatalf("expected untouched fields to keep defaults, got %+v", settings)
	}
}

func TestLoadMergesPartialYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeFile(t, path, "frantic-mode: true\nfrantic:\n  timer: true\n")
	settings := NewProvider(path, nil).Load()
	if !settings.FranticMode || !settings.Frantic.Timer || settings.Frantic.WordLength {
		t.Fatalf("unexpected frantic settings: %+v", settings)
	}
	if settings.Speed != model.DefaultSettings().Speed {
		t.Fatalf("expected default speed, got %v", settings.Speed)
	}
}

func TestLoadCorruptFallsBackToDefaults(t *testing.T) {
	cases := map[string]string{
		"syntax":  "speed = = 3",
		"type":    `speed = "fast"`,
		"range":   "speed = -1",
		"lengths": "min-word-length = 10\nmax-word-length = 5",
		"mode":    `display-mode = "sideways"`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.toml")
			writeFile(t, path, body)
			p := NewProvider(path, nil)
			if _, err := p.Read(); !errors.Is(err, ErrConfig) {
				t.Fatalf("expected config error, got %v", err)
			}
			if got := p.Load(); !reflect.DeepEqual(got, model.DefaultSettings()) {
				t.Fatalf("expected defaults, got %+v", got)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"settings.toml", "settings.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			p := NewProvider(path, nil)
			want := model.DefaultSettings()
			want.Speed = 2.205
			want.ExcludeLetters = "xyz"
			want.DisplayMode = model.DisplayFullWord
			want.Frantic.WordLength = true
			if err := p.Save(want); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := p.Read()
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
			}
		})
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	p := NewProvider(filepath.Join(t.TempDir(), "settings.toml"), nil)
	settings := model.DefaultSettings()
	settings.MixWordChance = 2
	if err := p.Save(settings); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestResolvePathsEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("TYPEDOJO_DB", "/tmp/custom.db")
	paths, err := ResolvePaths()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if paths.DBFile != "/tmp/custom.db" {
		t.Fatalf("expected env override, got %q", paths.DBFile)
	}
	if paths.SettingsFile != filepath.Join("/cfg", "typedojo", "settings.toml") {
		t.Fatalf("expected XDG default, got %q", paths.SettingsFile)
	}
}
