package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/typedojo/internal/model"
)

// ErrConfig marks malformed persisted settings.
var ErrConfig = errors.New("config error")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Provider loads and saves settings from a TOML or YAML file, chosen by the
// file extension.
type Provider struct {
	path   string
	logger *slog.Logger
}

// NewProvider returns a provider for path.
func NewProvider(path string, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{path: path, logger: logger}
}

// Path returns the settings file path.
func (p *Provider) Path() string {
	return p.path
}

// Load returns the persisted settings merged over defaults. Malformed files
// fall back to defaults entirely.
func (p *Provider) Load() model.Settings {
	settings, err := p.Read()
	if err != nil {
		p.logger.Warn("using default settings", "path", p.path, "err", err)
		return model.DefaultSettings()
	}
	return settings
}

// Read decodes the settings file over defaults. A missing file yields the
// defaults without error.
func (p *Provider) Read() (model.Settings, error) {
	settings := model.DefaultSettings()
	if p.path == "" {
		return settings, fmt.Errorf("%w: settings path is empty", ErrConfig)
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("%w: failed to read settings: %w", ErrConfig, err)
	}

	if isYAML(p.path) {
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return model.DefaultSettings(), fmt.Errorf("%w: failed to decode settings: %w", ErrConfig, err)
		}
	} else {
		md, err := toml.Decode(string(data), &settings)
		if err != nil {
			return model.DefaultSettings(), fmt.Errorf("%w: failed to decode settings: %w", ErrConfig, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, key := range undecoded {
				keys[i] = key.String()
			}
			p.logger.Warn("ignoring unknown settings", "path", p.path, "keys", strings.Join(keys, ", "))
		}
	}

	if err := Validate(settings); err != nil {
		return model.DefaultSettings(), err
	}
	return settings, nil
}

// Save validates settings and writes them atomically.
func (p *Provider) Save(settings model.Settings) error {
	if err := Validate(settings); err != nil {
		return err
	}
	var buf bytes.Buffer
	if isYAML(p.path) {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(settings); err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
	} else {
		if err := toml.NewEncoder(&buf).Encode(settings); err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
	}
	return writeFileAtomic(p.path, buf.Bytes())
}

// Validate checks settings ranges.
func Validate(settings model.Settings) error {
	if err := validate.Struct(settings); err != nil {
		return fmt.Errorf("%w: invalid settings: %w", ErrConfig, err)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "settings-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp settings: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close settings: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
