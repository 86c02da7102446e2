// Package config loads the stacklog command's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/zoobzio/stacklog"
	"github.com/zoobzio/stacklog/internal/logging"
)

// Config is the file format read by `stacklog run --config`.
//
//	unit: ms
//	logging:
//	  level: info
//	  format: json
//	conditions:
//	  - exit_code: 77
//	    suffix: SKIPPED
type Config struct {
	Logging    logging.Config `yaml:"logging"`
	Unit       string         `yaml:"unit"`
	Conditions []Condition    `yaml:"conditions"`
}

// Condition maps a child exit code to a custom suffix.
type Condition struct {
	ExitCode int    `yaml:"exit_code"`
	Suffix   string `yaml:"suffix"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{Unit: string(stacklog.UnitAuto)}
}

// Load reads path. A missing path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	if c.Unit != "" {
		if _, err := stacklog.ParseUnit(c.Unit); err != nil {
			errs = append(errs, fmt.Errorf("unit: %w", err))
		}
	}
	for i, cond := range c.Conditions {
		if cond.ExitCode <= 0 {
			errs = append(errs, fmt.Errorf("conditions[%d]: exit_code must be > 0", i))
		}
		if cond.Suffix == "" {
			errs = append(errs, fmt.Errorf("conditions[%d]: suffix is required", i))
		}
	}
	return errors.Join(errs...)
}

// Compile turns the configured exit codes into stacklog conditions,
// keeping file order so later entries take precedence.
func (c *Config) Compile() []stacklog.Condition {
	conds := make([]stacklog.Condition, 0, len(c.Conditions))
	for _, cond := range c.Conditions {
		conds = append(conds, cond.compile())
	}
	return conds
}

func (c Condition) compile() stacklog.Condition {
	code := c.ExitCode
	return stacklog.Condition{
		Match: stacklog.MatchValue(func(_ reflect.Type, err error) bool {
			var exitErr *exec.ExitError
			return errors.As(err, &exitErr) && exitErr.ExitCode() == code
		}),
		Handle: stacklog.Suffix(c.Suffix),
	}
}

// ResolveUnit returns the configured unit, UnitAuto when unset.
func (c *Config) ResolveUnit() (stacklog.Unit, error) {
	if c.Unit == "" {
		return stacklog.UnitAuto, nil
	}
	return stacklog.ParseUnit(c.Unit)
}
