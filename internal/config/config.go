package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Resolver struct {
		// Hosts that never count as a company's own domain: social platforms,
		// URL shorteners, press-distribution sites, parked-domain sellers.
		LowSignalHosts []string `yaml:"low_signal_hosts"`
		// TLDs tried by the guess fallback, in order.
		GuessTLDs []string `yaml:"guess_tlds"`
	} `yaml:"resolver"`

	Hiring struct {
		TechKeywords  []string `yaml:"tech_keywords"`
		CareersTokens []string `yaml:"careers_tokens"`
		RecentDays    int      `yaml:"recent_days"`
		TierAMin      int      `yaml:"tier_a_min"`
	} `yaml:"hiring"`

	Limits struct {
		MaxCompanies          int     `yaml:"max_companies"`
		Workers               int     `yaml:"workers"`
		RequestTimeoutSeconds int     `yaml:"request_timeout_seconds"`
		RunTimeoutSeconds     int     `yaml:"run_timeout_seconds"`
		HostRPS               float64 `yaml:"host_rps"`
		HostBurst             int     `yaml:"host_burst"`
	} `yaml:"limits"`

	Cache struct {
		TTLDays              int `yaml:"ttl_days"`
		PruneIntervalMinutes int `yaml:"prune_interval_minutes"`
	} `yaml:"cache"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
