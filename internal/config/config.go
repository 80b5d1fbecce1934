// Package config handles CLI defaults for the wordvec tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults the CLI applies when flags are not given.
type Config struct {
	Charset  string `yaml:"charset,omitempty"`   // Character set of word tokens (default UTF-8)
	MaxWords int    `yaml:"max_words,omitempty"` // Word-count cap on loads, 0 = unlimited
	Format   string `yaml:"format,omitempty"`    // Default file layout name
}

const (
	// LocalConfigFile is the per-directory config file name.
	LocalConfigFile = ".wordvec.yml"
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "wordvec"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yml"
)

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/wordvec/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// Load reads the configuration, preferring .wordvec.yml in the current
// directory over the global file, then applies WORDVEC_* environment
// overrides. A missing file is not an error; defaults are returned.
func Load() (*Config, error) {
	cfg := &Config{Charset: "UTF-8", Format: "word2vec-binary"}

	path := LocalConfigFile
	if _, err := os.Stat(path); err != nil {
		path = GlobalConfigPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if cfg.MaxWords < 0 {
		return nil, fmt.Errorf("max_words must be >= 0, got %d", cfg.MaxWords)
	}
	return cfg, nil
}

// applyEnv overrides fields from WORDVEC_CHARSET and WORDVEC_MAX_WORDS.
func (c *Config) applyEnv() error {
	if v := os.Getenv("WORDVEC_CHARSET"); v != "" {
		c.Charset = v
	}
	if v := os.Getenv("WORDVEC_MAX_WORDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WORDVEC_MAX_WORDS: %q is not an integer", v)
		}
		c.MaxWords = n
	}
	return nil
}
