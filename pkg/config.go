package versync

import (
	"errors"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// Target is one file kept in sync with the canonical version.
type Target struct {
	// File is the path to the target file.
	File string `toml:"file"`
	// Key is the dot-separated path to the version field inside the file.
	Key string `toml:"key"`
	// Format of the file; inferred from the extension when absent. After a
	// successful config load it is always resolved to a concrete format.
	Format Format `toml:"format"`
}

// GitConfig holds tag-related settings.
type GitConfig struct {
	// TagPrefix is prepended to the version to form the tag name.
	TagPrefix string `toml:"tag_prefix"`
}

// Config is the parsed version manifest (version.toml by default). It is the
// single source of truth for the run and is not modified after loading.
type Config struct {
	// Version is the authoritative version string, treated as opaque.
	Version string `toml:"version"`
	// Targets lists the files to keep in sync, in declaration order.
	Targets []Target  `toml:"targets"`
	Git     GitConfig `toml:"git"`
}

// LoadConfig reads and parses the version manifest at path.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses and validates a version manifest. Targets declared with
// no explicit format have it resolved from their file extension here, so
// resolution failures surface before any target is processed.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Version == "" {
		return errors.New("version must not be empty")
	}
	if len(c.Targets) == 0 {
		return errors.New("at least one [[targets]] entry is required")
	}
	for i := range c.Targets {
		t := &c.Targets[i]
		if t.File == "" {
			return fmt.Errorf("targets[%d]: file must not be empty", i)
		}
		if !validKey(t.Key) {
			return fmt.Errorf("targets[%d] (%s): key %q must have at least one non-empty segment", i, t.File, t.Key)
		}
		if t.Format == FormatAuto {
			format, ok := FormatFromPath(t.File)
			if !ok {
				return fmt.Errorf("targets[%d]: %w: %s", i, ErrUnknownFormat, t.File)
			}
			t.Format = format
		}
	}
	return nil
}

// TagName returns the git tag for the current version: prefix + version.
// Ref-name legality is left to git itself.
func (c *Config) TagName() string {
	return c.Git.TagPrefix + c.Version
}
