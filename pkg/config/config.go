// Package config handles loading and managing Dealscope configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dealscope/dealscope/pkg/insight"
)

// Config is the top-level configuration for Dealscope.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Export  ExportConfig  `yaml:"export"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// ServerConfig controls the service daemon.
type ServerConfig struct {
	Port        string `yaml:"port"`
	DatabaseURL string `yaml:"database_url"`
	RedisURL    string `yaml:"redis_url"`
	APIKey      string `yaml:"api_key"`
	CacheTTL    int    `yaml:"cache_ttl"` // seconds
}

// ExportConfig controls report archival.
type ExportConfig struct {
	Backend   string `yaml:"backend"` // local, s3, gcs
	LocalDir  string `yaml:"local_dir"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// ScoringConfig overrides engine thresholds. Zero values mean "keep the
// default".
type ScoringConfig struct {
	HotContactMaxDays        int     `yaml:"hot_contact_max_days"`
	ColdContactMinDays       int     `yaml:"cold_contact_min_days"`
	HighValueAmount          float64 `yaml:"high_value_amount"`
	BlockedDealMinDays       int     `yaml:"blocked_deal_min_days"`
	SLAResponseDays          int     `yaml:"sla_response_days"`
	ColdContactActionMinDays int     `yaml:"cold_contact_action_min_days"`
	StagnantDealMinDays      int     `yaml:"stagnant_deal_min_days"`
	StalledDealMinDays       int     `yaml:"stalled_deal_min_days"`
	MaxActions               int     `yaml:"max_actions"`
	AlertPreviewCap          int     `yaml:"alert_preview_cap"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			DatabaseURL: "postgres://localhost:5432/dealscope?sslmode=disable",
			CacheTTL:    60,
		},
		Export: ExportConfig{
			Backend:  "local",
			LocalDir: "/tmp/dealscope-reports",
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Thresholds applies the scoring overrides onto the default engine tuning.
func (c *Config) Thresholds() insight.Thresholds {
	t := insight.DefaultThresholds()
	s := c.Scoring

	if s.HotContactMaxDays > 0 {
		t.HotContactMaxDays = s.HotContactMaxDays
	}
	if s.ColdContactMinDays > 0 {
		t.ColdContactMinDays = s.ColdContactMinDays
	}
	if s.HighValueAmount > 0 {
		t.HighValueAmount = s.HighValueAmount
	}
	if s.BlockedDealMinDays > 0 {
		t.BlockedDealMinDays = s.BlockedDealMinDays
	}
	if s.SLAResponseDays > 0 {
		t.SLAResponseDays = s.SLAResponseDays
	}
	if s.ColdContactActionMinDays > 0 {
		t.ColdContactActionMinDays = s.ColdContactActionMinDays
	}
	if s.StagnantDealMinDays > 0 {
		t.StagnantDealMinDays = s.StagnantDealMinDays
	}
	if s.StalledDealMinDays > 0 {
		t.StalledDealMinDays = s.StalledDealMinDays
	}
	if s.MaxActions > 0 {
		t.MaxActions = s.MaxActions
	}
	if s.AlertPreviewCap > 0 {
		t.AlertPreviewCap = s.AlertPreviewCap
	}

	return t
}

// FindConfigFile looks for .dealscope/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".dealscope", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
