package cli

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/treelink/pkg/cache"
	"github.com/matzehuels/treelink/pkg/errors"
)

// Config mirrors the optional treelink.toml file. Zero values mean "not set".
//
//	method    = "serial"
//	tree      = "data/tree.csv"
//	linkage   = "data/links.csv"
//	output    = "out"
//	formats   = ["json", "svg"]
//	max_steps = 1000000
//
//	[cache]
//	enabled = true
//	dir     = "/tmp/treelink"
//	scope   = "curriculum-2024"
type Config struct {
	Method   string      `toml:"method"`
	Tree     string      `toml:"tree"`
	Linkage  string      `toml:"linkage"`
	Output   string      `toml:"output"`
	Formats  []string    `toml:"formats"`
	MaxSteps int         `toml:"max_steps"`
	Cache    CacheConfig `toml:"cache"`
}

// CacheConfig is the [cache] table.
type CacheConfig struct {
	Enabled *bool  `toml:"enabled"`
	Dir     string `toml:"dir"`
	Scope   string `toml:"scope"` // key prefix for projects sharing one dir
}

// loadConfig reads path, or ./treelink.toml when path is empty. A missing
// default file yields an empty config; a missing explicit file is an error.
// Unknown keys are rejected so typos do not pass silently.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	var cfg Config
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return &cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.MaxSteps < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "config file %s: max_steps must not be negative", path)
	}
	return &cfg, nil
}

func (c *Config) cacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}

func (c *Config) cacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return cacheDir()
}

func (c *Config) keyer() cache.Keyer {
	if c.Cache.Scope == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, c.Cache.Scope+":")
}
