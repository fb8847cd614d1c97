// Package config implements the ambient Config type shared by the
// compiler, harness, executor, and CLI: a yaml-tagged document loaded
// with strict unknown-field rejection, following the teacher's
// Config/LoadFile split (the rest of config.Config's protocol/network
// concerns don't apply to this domain and were dropped, see DESIGN.md).
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the default config file name. No zkvmc command
// loads a config file or takes a --config flag.
const DefaultConfigPath = "zkvm.yml"

// Config is the top-level configuration document.
type Config struct {
	Compiler CompilerConfig `yaml:"Compiler"`
	Harness  HarnessConfig  `yaml:"Harness"`
	Executor ExecutorConfig `yaml:"Executor"`
	Logger   Logger         `yaml:"Logger"`
}

// CompilerConfig configures the instruction decomposer and file
// emitter (C4/C5).
type CompilerConfig struct {
	OutputDir        string `yaml:"OutputDir"`
	SoftBudget       int    `yaml:"SoftBudget"`
	HardBudget       int    `yaml:"HardBudget"`
	OversizeBytes    int    `yaml:"OversizeBytes"`
	IdentifierPrefix string `yaml:"IdentifierPrefix"`
}

// HarnessConfig configures the validation harness (C6).
type HarnessConfig struct {
	SolverPath    string `yaml:"SolverPath"`
	SolverArgs    []string `yaml:"SolverArgs"`
	Workers       int    `yaml:"Workers"`
	TimeoutSecs   int    `yaml:"TimeoutSecs"`
	MetricsAddr   string `yaml:"MetricsAddr"`
}

// ExecutorConfig configures the VM interpreter (C8) and loader (C9).
type ExecutorConfig struct {
	MemoryWords int    `yaml:"MemoryWords"`
	StepBudget  uint64 `yaml:"StepBudget"`
	CryptoMode  string `yaml:"CryptoMode"` // "stub" or "real"
	TraceOut    string `yaml:"TraceOut"`
}

// Default returns a Config with every ambient concern given a
// reasonable out-of-the-box value.
func Default() Config {
	return Config{
		Compiler: CompilerConfig{
			OutputDir:     "./out",
			SoftBudget:    700,
			HardBudget:    800,
			OversizeBytes: 1000,
		},
		Harness: HarnessConfig{
			SolverPath:  "minisat",
			Workers:     4,
			TimeoutSecs: 30,
		},
		Executor: ExecutorConfig{
			MemoryWords: 4096,
			CryptoMode:  "stub",
		},
		Logger: Logger{
			LogEncoding: "console",
			LogLevel:    "info",
		},
	}
}

// Load reads and strictly decodes a yaml config document at path,
// starting from Default() so unset fields keep sane values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to unmarshal %s: %w", path, err)
	}
	if err := cfg.Logger.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Compiler.OutputDir != "" && !filepath.IsAbs(cfg.Compiler.OutputDir) {
		abs, err := filepath.Abs(cfg.Compiler.OutputDir)
		if err == nil {
			cfg.Compiler.OutputDir = abs
		}
	}
	return cfg, nil
}
