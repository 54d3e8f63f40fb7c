// Package config loads fqnmap settings from a TOML file.
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/mangolang/mango-ir/internal/fqn"
)

// FileName is the config file looked up in the scanned root.
const FileName = ".fqnmap.toml"

const (
	FormatTOON = "toon"
	FormatYAML = "yaml"
)

const defaultMaxFileSize = 1_000_000 // 1 MB

// Config holds scan settings. Zero-valued fields in a file keep their defaults.
type Config struct {
	Languages   []string  `toml:"languages"`
	MaxFileSize int       `toml:"max_file_size"`
	MaxSymbols  int       `toml:"max_symbols"`
	Format      string    `toml:"format"`
	Exclude     []string  `toml:"exclude"`
	Roots       []fqn.Fqn `toml:"roots"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MaxFileSize: defaultMaxFileSize,
		Format:      FormatTOON,
	}
}

// Load reads the config file at path on top of Default. Unknown keys are an
// error so typos do not go unnoticed.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config")
	}
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, errors.Wrapf(err, "%s:%d:%d", path, row, col)
		}
		return Config{}, errors.Wrapf(err, "decoding %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// Discover loads FileName from root if present, otherwise returns Default.
// The returned path is empty when no file was found.
func Discover(root string) (Config, string, error) {
	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), "", nil
		}
		return Config{}, "", errors.Wrap(err, "checking config")
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	switch c.Format {
	case FormatTOON, FormatYAML:
	default:
		return errors.Errorf("unsupported format %q", c.Format)
	}
	if c.MaxFileSize <= 0 {
		return errors.Errorf("max_file_size must be positive, got %d", c.MaxFileSize)
	}
	if c.MaxSymbols < 0 {
		return errors.Errorf("max_symbols must not be negative, got %d", c.MaxSymbols)
	}
	return nil
}

// Encode renders c as TOML.
func Encode(c Config) ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "encoding config")
	}
	return data, nil
}
