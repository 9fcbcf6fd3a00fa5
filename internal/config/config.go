package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Config represents the ablens configuration.
type Config struct {
	Provider           string        `json:"provider"`
	Model              string        `json:"model"`
	Format             string        `json:"format"`
	MaxFilesPerVariant int           `json:"maxFilesPerVariant"`
	MaxTotalFiles      int           `json:"maxTotalFiles"`
	FetchConcurrency   int           `json:"fetchConcurrency"`
	CriteriaFile       string        `json:"criteriaFile,omitempty"`
	Cache              CacheConfig   `json:"cache"`
	Privacy            PrivacyConfig `json:"privacy"`
}

// CacheConfig controls response caching behavior.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// PrivacyConfig controls secret redaction of code variants.
type PrivacyConfig struct {
	RedactSecrets bool `json:"redactSecrets"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:           "anthropic",
		Model:              "claude-sonnet-4-20250514",
		Format:             "text",
		MaxFilesPerVariant: 10,
		MaxTotalFiles:      30,
		FetchConcurrency:   4,
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for ablens.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ablens"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "ablens"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "ablens"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "ablens"), nil
	default:
		return filepath.Join(home, ".config", "ablens"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil
// error if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags; only non-zero values
// should be set.
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.MaxFilesPerVariant > 0 {
		dst.MaxFilesPerVariant = src.MaxFilesPerVariant
	}
	if src.MaxTotalFiles > 0 {
		dst.MaxTotalFiles = src.MaxTotalFiles
	}
	if src.FetchConcurrency > 0 {
		dst.FetchConcurrency = src.FetchConcurrency
	}
	if src.CriteriaFile != "" {
		dst.CriteriaFile = src.CriteriaFile
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
	// JSON's zero bool can't be told apart from unset in a plain merge, so
	// file bools can only widen, not disable.
	dst.Cache.Enabled = src.Cache.Enabled || dst.Cache.Enabled
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("ABLENS_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("ABLENS_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("ABLENS_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("ABLENS_MAX_FILES_PER_VARIANT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxFilesPerVariant = n
		}
	}
	if v := os.Getenv("ABLENS_MAX_TOTAL_FILES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxTotalFiles = n
		}
	}
	if v := os.Getenv("ABLENS_FETCH_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FetchConcurrency = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["provider"]; ok && v != "" {
		cfg.Provider = v
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["criteriaFile"]; ok && v != "" {
		cfg.CriteriaFile = v
	}
	if v, ok := overrides["maxFilesPerVariant"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxFilesPerVariant = n
		}
	}
	if v, ok := overrides["maxTotalFiles"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxTotalFiles = n
		}
	}
	if v, ok := overrides["fetchConcurrency"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FetchConcurrency = n
		}
	}
	if v, ok := overrides["noCache"]; ok && v == "true" {
		cfg.Cache.Enabled = false
	}
	if v, ok := overrides["noRedact"]; ok && v == "true" {
		cfg.Privacy.RedactSecrets = false
	}
}

// SetField sets a single config field by key name. Returns an error if the
// key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "format":
		cfg.Format = value
	case "criteriaFile":
		cfg.CriteriaFile = value
	case "maxFilesPerVariant":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxFilesPerVariant must be an integer: %w", err)
		}
		cfg.MaxFilesPerVariant = n
	case "maxTotalFiles":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxTotalFiles must be an integer: %w", err)
		}
		cfg.MaxTotalFiles = n
	case "fetchConcurrency":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("fetchConcurrency must be an integer: %w", err)
		}
		cfg.FetchConcurrency = n
	case "cache.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cache.enabled must be a boolean: %w", err)
		}
		cfg.Cache.Enabled = b
	case "cache.ttlSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("cache.ttlSeconds must be an integer: %w", err)
		}
		cfg.Cache.TTLSeconds = n
	case "privacy.redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("privacy.redactSecrets must be a boolean: %w", err)
		}
		cfg.Privacy.RedactSecrets = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
