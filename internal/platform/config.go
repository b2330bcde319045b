package platform

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML configuration consumed by the CLI.
// Staleness values are Go duration strings ("5m", "90s").
type FileConfig struct {
	Store             string `yaml:"store"`
	Adapter           string `yaml:"adapter"`
	NoSeed            bool   `yaml:"no_seed"`
	TaskStaleness     string `yaml:"task_staleness"`
	BookmarkStaleness string `yaml:"bookmark_staleness"`
}

// LoadConfig reads a YAML config file. A missing file yields the zero
// config with no error; a malformed one is an error.
func LoadConfig(path string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Options converts the file config into factory options, skipping
// anything left unset.
func (c FileConfig) Options() ([]Option, error) {
	var opts []Option

	if c.Adapter != "" {
		opts = append(opts, WithAdapter(c.Adapter))
	}
	if c.NoSeed {
		opts = append(opts, WithNoSeed(true))
	}
	if c.TaskStaleness != "" {
		ttl, err := time.ParseDuration(c.TaskStaleness)
		if err != nil {
			return nil, fmt.Errorf("invalid task_staleness: %w", err)
		}
		opts = append(opts, WithTaskStaleness(ttl))
	}
	if c.BookmarkStaleness != "" {
		ttl, err := time.ParseDuration(c.BookmarkStaleness)
		if err != nil {
			return nil, fmt.Errorf("invalid bookmark_staleness: %w", err)
		}
		opts = append(opts, WithBookmarkStaleness(ttl))
	}
	return opts, nil
}
