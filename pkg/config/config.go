package config

import (
	"fmt"
	"os"
	"strings"

	log "github.com/cloud-bulldozer/shbench/pkg/logging"
	"gopkg.in/yaml.v3"
)

// Test describes one variant: the measured run script and an optional
// warmup script executed before it each round.
type Test struct {
	Run    string `yaml:"run"`
	Warmup string `yaml:"warmup,omitempty"`
}

// Config describes a full benchmark run.
type Config struct {
	Tests       []Test `yaml:"tests"`
	RandomOrder bool   `yaml:"random_order,omitempty"`
	IgnoreFirst bool   `yaml:"ignore_first,omitempty"`
	Iterations  int    `yaml:"iterations,omitempty"`
	Mem         bool   `yaml:"mem,omitempty"`
}

// Variants A-D in order; the first test is the baseline.
const maxTests = 4

func validConfig(cfg Config) (bool, error) {
	if len(cfg.Tests) < 1 {
		return false, fmt.Errorf("at least one test is required")
	}
	if len(cfg.Tests) > maxTests {
		return false, fmt.Errorf("at most %d tests (variants A-D) are supported", maxTests)
	}
	for i, t := range cfg.Tests {
		if strings.TrimSpace(t.Run) == "" {
			return false, fmt.Errorf("test %d: run script must not be empty", i+1)
		}
	}
	if cfg.Iterations < 0 {
		return false, fmt.Errorf("iterations must be >= 0")
	}
	return true, nil
}

// ParseConf will read in the benchmark configuration file which
// describes the variants to run
// Returns Config struct
func ParseConf(fn string) (Config, error) {
	log.Infof("📒 Reading %s file. ", fn)
	var cfg Config
	buf, err := os.ReadFile(fn)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("in file %q: %v", fn, err)
	}
	ok, err := validConfig(cfg)
	if !ok {
		return cfg, err
	}
	return cfg, nil
}

// Show Display the benchmark config
func Show(cfg Config) {
	log.Infof("🗒️  Running %d variants (random order %t, ignore first %t, iterations %d, mem %t) ",
		len(cfg.Tests), cfg.RandomOrder, cfg.IgnoreFirst, cfg.Iterations, cfg.Mem)
}
