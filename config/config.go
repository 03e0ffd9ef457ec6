// Package config loads the benchmark configuration: which domains to run,
// per-domain instance limits, planner locations and the invocation timeout.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/weiihann/planbench/harness"
	"github.com/weiihann/planbench/workload"
)

// Environment variables that override file values.
const (
	EnvTimeoutSeconds = "PLANBENCH_TIMEOUT_SECONDS"
	EnvOutputDir      = "PLANBENCH_OUTPUT_DIR"
	EnvJava           = "PLANBENCH_JAVA"
	EnvMaven          = "PLANBENCH_MAVEN"
)

// Domain names a benchmark domain directory.
type Domain struct {
	Name string `yaml:"name" toml:"name"`
	Path string `yaml:"path" toml:"path"`
}

// HSP configures the state-space planner.
type HSP struct {
	ProjectDir string   `yaml:"project_dir" toml:"project_dir"`
	Java       string   `yaml:"java" toml:"java"`
	Jar        string   `yaml:"jar" toml:"jar"`
	MainClass  string   `yaml:"main_class" toml:"main_class"`
	BuildTool  string   `yaml:"build_tool" toml:"build_tool"`
	BuildArgs  []string `yaml:"build_args" toml:"build_args"`
}

// SAT configures the SAT planner.
type SAT struct {
	ProjectDir string   `yaml:"project_dir" toml:"project_dir"`
	Maven      string   `yaml:"maven" toml:"maven"`
	MainClass  string   `yaml:"main_class" toml:"main_class"`
	BuildArgs  []string `yaml:"build_args" toml:"build_args"`
}

// Planners groups both planner configurations.
type Planners struct {
	HSP HSP `yaml:"hsp" toml:"hsp"`
	SAT SAT `yaml:"sat" toml:"sat"`
}

// Config is the full benchmark configuration.
type Config struct {
	Domains        []Domain       `yaml:"domains" toml:"domains"`
	Limits         map[string]int `yaml:"limits" toml:"limits"`
	TimeoutSeconds int            `yaml:"timeout_seconds" toml:"timeout_seconds"`
	OutputDir      string         `yaml:"output_dir" toml:"output_dir"`
	Planners       Planners       `yaml:"planners" toml:"planners"`
}

// Default returns the built-in benchmark set.
func Default() Config {
	return Config{
		Domains: []Domain{
			{Name: "blocksworld", Path: "test/resources/benchmarks/pddl/ipc2000/blocks/strips-typed"},
			{Name: "depot", Path: "test/resources/benchmarks/pddl/ipc2002/depots/strips-automatic"},
			{Name: "gripper", Path: "test/resources/benchmarks/pddl/ipc1998/gripper/adl"},
			{Name: "logistics", Path: "test/resources/benchmarks/pddl/ipc1998/logistics/strips-round2"},
		},
		Limits: map[string]int{
			"blocksworld": 10,
			"gripper":     4,
			"depot":       2,
			"logistics":   2,
		},
		TimeoutSeconds: int(harness.DefaultTimeout / time.Second),
		OutputDir:      "figures",
		Planners:       defaultPlanners(),
	}
}

func defaultPlanners() Planners {
	return Planners{
		HSP: HSP{
			ProjectDir: "hsp",
			Java:       "java",
			Jar:        "build/libs/pddl4j-4.0.0.jar",
			MainClass:  "fr.uga.pddl4j.planners.statespace.HSP",
			BuildTool:  "gradlew",
			BuildArgs:  []string{"build"},
		},
		SAT: SAT{
			ProjectDir: "sat",
			Maven:      "mvn",
			MainClass:  "fr.uga.pddl4j.examples.satplanner.SATP",
			BuildArgs:  []string{"compile"},
		},
	}
}

// Load reads a YAML or TOML config file, chosen by extension, fills unset
// fields from Default and validates the result.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config YAML: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config TOML: %w", err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// applyDefaults fills zero values. Domains are left alone when a file sets
// them, so a file can narrow the benchmark set. Default limits fill in for
// every domain the file gives no limit.
func (c *Config) applyDefaults() {
	def := Default()

	if len(c.Domains) == 0 {
		c.Domains = def.Domains
	}
	if c.Limits == nil {
		c.Limits = make(map[string]int, len(def.Limits))
	}
	for name, n := range def.Limits {
		if _, ok := c.Limits[name]; !ok {
			c.Limits[name] = n
		}
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = def.TimeoutSeconds
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}

	h, dh := &c.Planners.HSP, def.Planners.HSP
	if h.ProjectDir == "" {
		h.ProjectDir = dh.ProjectDir
	}
	if h.Java == "" {
		h.Java = dh.Java
	}
	if h.Jar == "" {
		h.Jar = dh.Jar
	}
	if h.MainClass == "" {
		h.MainClass = dh.MainClass
	}
	if h.BuildTool == "" {
		h.BuildTool = dh.BuildTool
	}
	if len(h.BuildArgs) == 0 {
		h.BuildArgs = dh.BuildArgs
	}

	s, ds := &c.Planners.SAT, def.Planners.SAT
	if s.ProjectDir == "" {
		s.ProjectDir = ds.ProjectDir
	}
	if s.Maven == "" {
		s.Maven = ds.Maven
	}
	if s.MainClass == "" {
		s.MainClass = ds.MainClass
	}
	if len(s.BuildArgs) == 0 {
		s.BuildArgs = ds.BuildArgs
	}
}

// Validate checks the configuration for values the benchmark cannot run
// with.
func (c Config) Validate() error {
	if len(c.Domains) == 0 {
		return errors.New("no domains configured")
	}

	seen := make(map[string]bool, len(c.Domains))
	for i, d := range c.Domains {
		if d.Name == "" {
			return fmt.Errorf("domain[%d]: name is required", i)
		}
		if strings.ContainsAny(d.Name, `/\`) {
			return fmt.Errorf("domain %q: name must not contain path separators", d.Name)
		}
		if d.Path == "" {
			return fmt.Errorf("domain %q: path is required", d.Name)
		}
		if seen[d.Name] {
			return fmt.Errorf("domain %q: listed twice", d.Name)
		}

		seen[d.Name] = true
	}

	for name, n := range c.Limits {
		if n <= 0 {
			return fmt.Errorf("limit for %q must be positive, got %d", name, n)
		}
	}

	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}

	return nil
}

// ApplyEnv loads envFile when it exists and then applies PLANBENCH_*
// overrides from the process environment. An empty envFile skips the file.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("loading %s: %w", envFile, err)
			}
		}
	}

	if v := os.Getenv(EnvTimeoutSeconds); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q", EnvTimeoutSeconds, v)
		}

		c.TimeoutSeconds = secs
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvJava); v != "" {
		c.Planners.HSP.Java = v
	}
	if v := os.Getenv(EnvMaven); v != "" {
		c.Planners.SAT.Maven = v
	}

	return nil
}

// Timeout returns the per-invocation bound.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SelectDomains narrows the configured domains to names, keeping the
// configured order. An empty names list keeps every domain.
func (c Config) SelectDomains(names []string) ([]workload.Domain, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var out []workload.Domain
	for _, d := range c.Domains {
		if len(want) > 0 && !want[d.Name] {
			continue
		}

		delete(want, d.Name)
		out = append(out, workload.Domain{Name: d.Name, Path: filepath.Clean(d.Path)})
	}

	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for _, n := range names {
			if want[n] {
				unknown = append(unknown, n)
			}
		}

		return nil, fmt.Errorf("unknown domains: %s", strings.Join(unknown, ", "))
	}

	return out, nil
}

// WorkloadLimits returns the per-domain instance limits.
func (c Config) WorkloadLimits() workload.Limits {
	return workload.Limits(c.Limits)
}

// HSPConfig converts the HSP section for the harness.
func (c Config) HSPConfig() harness.HSPConfig {
	h := c.Planners.HSP

	return harness.HSPConfig{
		ProjectDir: h.ProjectDir,
		Java:       h.Java,
		Jar:        h.Jar,
		MainClass:  h.MainClass,
		BuildTool:  h.BuildTool,
		BuildArgs:  h.BuildArgs,
	}
}

// SATConfig converts the SAT section for the harness.
func (c Config) SATConfig() harness.SATConfig {
	s := c.Planners.SAT

	return harness.SATConfig{
		ProjectDir: s.ProjectDir,
		Maven:      s.Maven,
		MainClass:  s.MainClass,
		BuildArgs:  s.BuildArgs,
	}
}
