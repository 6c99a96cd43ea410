package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/procwatch-dev/procwatch/internal/risk"
)

// FileName is the default config file name at the project root.
const FileName = "procwatch.yaml"

// Config represents the top-level procwatch.yaml configuration.
type Config struct {
	Data      DataConfig      `yaml:"data"`
	BI        BIConfig        `yaml:"bi"`
	Matching  MatchingConfig  `yaml:"matching"`
	Generator GeneratorConfig `yaml:"generator"`
	Scrape    ScrapeConfig    `yaml:"scrape"`
	Risk      risk.Weights    `yaml:"risk"`
}

// DataConfig locates the data directory and registry file.
type DataConfig struct {
	Dir          string `yaml:"dir" env:"PROCWATCH_DATA_DIR"`
	RegistryFile string `yaml:"registry_file" env:"PROCWATCH_REGISTRY_FILE"`
}

// BIConfig locates the export directory for downstream dashboards.
type BIConfig struct {
	Dir string `yaml:"dir" env:"PROCWATCH_BI_DIR"`
}

// MatchingConfig controls the provider matching cascade and amount scaling.
type MatchingConfig struct {
	StrictThreshold  int   `yaml:"strict_threshold"`
	LenientThreshold int   `yaml:"lenient_threshold"`
	MillionUnit      int64 `yaml:"million_unit"`
}

// GeneratorConfig controls synthetic batch generation.
type GeneratorConfig struct {
	Records         int     `yaml:"records"`
	MessProbability float64 `yaml:"mess_probability"`
	Seed            uint64  `yaml:"seed" env:"PROCWATCH_GENERATOR_SEED"`
	StartSeq        int     `yaml:"start_seq"`
}

// ScrapeConfig controls registry ingestion.
type ScrapeConfig struct {
	URL            string `yaml:"url" env:"PROCWATCH_SCRAPE_URL"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Load reads a procwatch.yaml file from disk, then applies environment
// overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:          "data",
			RegistryFile: "data/contracts.json",
		},
		BI: BIConfig{
			Dir: "bi",
		},
		Matching: MatchingConfig{
			StrictThreshold:  80,
			LenientThreshold: 60,
			MillionUnit:      1_000_000,
		},
		Generator: GeneratorConfig{
			Records:         1000,
			MessProbability: 0.05,
			StartSeq:        10000,
		},
		Scrape: ScrapeConfig{
			URL:            "https://www.melbourne.vic.gov.au/current-contracts-and-future-tenders",
			TimeoutSeconds: 30,
		},
		Risk: risk.DefaultWeights(),
	}
}
