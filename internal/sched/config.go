package sched

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	yaml "github.com/goccy/go-yaml"
)

// Policy names a scheduling algorithm.
type Policy string

const (
	PolicyFCFS       Policy = "fcfs"
	PolicyRoundRobin Policy = "rr"
	PolicyPriorityRR Policy = "priority_rr"
)

// ParsePolicy accepts the policy names used in config files and on the command line.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "fcfs":
		return PolicyFCFS, nil
	case "rr", "round_robin":
		return PolicyRoundRobin, nil
	case "priority_rr", "prr":
		return PolicyPriorityRR, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Config mirrors config.yml. Environment variables override the file.
type Config struct {
	Policy            string `yaml:"policy" env:"SCHEDSIM_POLICY"`                           // fcfs (by default)
	Quantum           int64  `yaml:"quantum" env:"SCHEDSIM_QUANTUM"`                         // 10 (by default)
	CollapseLastSlice bool   `yaml:"collapse_last_slice" env:"SCHEDSIM_COLLAPSE_LAST_SLICE"` // true (by default)
	Trace             bool   `yaml:"trace" env:"SCHEDSIM_TRACE"`                             // true (by default)
	CSVPath           string `yaml:"csv_path" env:"SCHEDSIM_CSV_PATH"`
	MetricsPath       string `yaml:"metrics_path" env:"SCHEDSIM_METRICS_PATH"`
	LogLevel          string `yaml:"log_level" env:"SCHEDSIM_LOG_LEVEL"`
	LogFormat         string `yaml:"log_format" env:"SCHEDSIM_LOG_FORMAT"`
}

// DefaultConfig is used for anything the file and environment leave unset.
func DefaultConfig() Config {
	return Config{
		Policy:            string(PolicyFCFS),
		Quantum:           10,
		CollapseLastSlice: true,
		Trace:             true,
		LogLevel:          "info",
		LogFormat:         "console",
	}
}

// Load is Read followed by Validate.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Read reads YAML and overrides defaults, then applies environment
// overrides. An empty path or a missing file means defaults only.
// The result is not validated, callers may layer more overrides first.
func Read(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config from environment: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the scheduler cannot run with.
func (c Config) Validate() error {
	if _, err := ParsePolicy(c.Policy); err != nil {
		return err
	}
	if c.Quantum <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantum, c.Quantum)
	}
	return nil
}
