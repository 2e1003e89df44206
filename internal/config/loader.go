package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceEmbedded and SourceBuiltin name config sources that are not files.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// validator is implemented by every config type.
type validator interface {
	Validate() error
}

// LoadOption customizes a config load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	onSkip func(path string, err error)
}

// WithSkipHandler registers fn to hear about search-path files that exist
// but were skipped because they could not be read, parsed or validated.
func WithSkipHandler(fn func(path string, err error)) LoadOption {
	return func(o *loadOptions) {
		o.onSkip = fn
	}
}

// LoadRacer loads the racer configuration and reports where it came from.
// Search order: customPath -> ~/.arcade/configs/racer.yaml -> ./configs/racer.yaml -> embedded default
func LoadRacer(customPath string, opts ...LoadOption) (RacerConfig, string, error) {
	return load("racer", customPath, DefaultRacerConfig, opts)
}

// LoadVault loads the vault configuration and reports where it came from.
// Search order: customPath -> ~/.arcade/configs/vault.yaml -> ./configs/vault.yaml -> embedded default
func LoadVault(customPath string, opts ...LoadOption) (VaultConfig, string, error) {
	return load("vault", customPath, DefaultVaultConfig, opts)
}

// load decodes the first usable file over the built-in defaults, so partial
// files only override what they mention. Only an explicit customPath may fail.
func load[T validator](name, customPath string, builtin func() T, opts []LoadOption) (T, string, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	if customPath != "" {
		cfg, err := decode(builtin(), customPath)
		if err != nil {
			return cfg, customPath, err
		}
		return cfg, customPath, nil
	}

	candidates := []string{filepath.Join("configs", name+".yaml")}
	if userPath := userConfigPath(name + ".yaml"); userPath != "" {
		candidates = append([]string{userPath}, candidates...)
	}
	for _, path := range candidates {
		cfg, err := decode(builtin(), path)
		if err == nil {
			return cfg, path, nil
		}
		if o.onSkip != nil && !errors.Is(err, fs.ErrNotExist) {
			o.onSkip(path, err)
		}
	}

	cfg := builtin()
	if err := yaml.Unmarshal(GetDefaultYAML(name), &cfg); err != nil || cfg.Validate() != nil {
		return builtin(), SourceBuiltin, nil
	}
	return cfg, SourceEmbedded, nil
}

func decode[T validator](base T, path string) (T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return base, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	if err := base.Validate(); err != nil {
		return base, fmt.Errorf("config: %s: %w", path, err)
	}
	return base, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
