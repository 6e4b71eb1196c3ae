// config.go - Operational configuration for the admission daemon.
//
// Protocol constants live in validator.Config; this file only covers how the
// daemon runs: addresses, key material location, logging and rate limits.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the daemon configuration.
type Config struct {
	// Server settings
	ListenAddr string `json:"listen_addr"`

	// Verification service. When VerifierURL is empty the daemon verifies
	// in-process with the gnark backend.
	VerifierURL            string `json:"verifier_url"`
	VerifierTimeoutSeconds int    `json:"verifier_timeout_seconds"`

	// Verification key material (exported per transaction type)
	KeyDir string `json:"key_dir"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// Rate limiting of the admission endpoint
	RateLimitBurst     int `json:"rate_limit_burst"`
	RateLimitPerSecond int `json:"rate_limit_per_second"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:             ":8587",
		VerifierURL:            "",
		VerifierTimeoutSeconds: 30,
		KeyDir:                 "keys",
		LogLevel:               "info",
		LogFile:                "",
		RateLimitBurst:         100,
		RateLimitPerSecond:     50,
	}
}

// LoadConfig loads configuration from file or creates the default.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer file.Close()

		var config Config
		if err := json.NewDecoder(file).Decode(&config); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
		return &config, nil
	}

	config := DefaultConfig()
	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save default config: %w", err)
	}
	return config, nil
}

// SaveConfig saves configuration to file.
func SaveConfig(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must be set")
	}
	if c.VerifierTimeoutSeconds <= 0 {
		return fmt.Errorf("verifier_timeout_seconds must be positive")
	}
	if c.VerifierURL == "" && c.KeyDir == "" {
		return fmt.Errorf("key_dir must be set when verifying in-process")
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate_limit_burst must be positive")
	}
	if c.RateLimitPerSecond <= 0 {
		return fmt.Errorf("rate_limit_per_second must be positive")
	}
	return nil
}
