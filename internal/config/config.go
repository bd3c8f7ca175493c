// Package config provides configuration management for go-slip39.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Version    int              `yaml:"version"`
	Home       string           `yaml:"home"`
	Sharing    SharingConfig    `yaml:"sharing"`
	Encryption EncryptionConfig `yaml:"encryption"`
	Derivation DerivationConfig `yaml:"derivation"`
	Security   SecurityConfig   `yaml:"security"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`

	// Warnings is a slot for non-fatal configuration problems. Nothing
	// appends to it: ApplyEnvironment skips an invalid override without
	// recording it, and the CLI does not read it.
	Warnings []string `yaml:"-"`
}

// SharingConfig defines the default group/member template used by the
// generate command when the caller doesn't specify one explicitly.
type SharingConfig struct {
	IterationExponent     int             `yaml:"iteration_exponent"`
	DefaultGroupThreshold int             `yaml:"default_group_threshold"`
	DefaultGroups         []GroupTemplate `yaml:"default_groups"`
}

// GroupTemplate is one group's (threshold, count) pair within a
// SharingConfig.
type GroupTemplate struct {
	MemberThreshold int `yaml:"member_threshold"`
	MemberCount     int `yaml:"member_count"`
}

// EncryptionConfig defines settings for encrypting exported backup
// bundles at rest.
type EncryptionConfig struct {
	Method        string `yaml:"method"`
	IdentityFile  string `yaml:"identity_file"`
	KeyDerivation string `yaml:"key_derivation"`
}

// DerivationConfig defines settings for the BIP-32 derivation demo
// layered on top of a recovered master secret.
type DerivationConfig struct {
	DefaultPath string            `yaml:"default_path"`
	Paths       map[string]string `yaml:"paths"`
}

// SecurityConfig defines process-memory hygiene settings.
type SecurityConfig struct {
	MemoryLock bool `yaml:"memory_lock"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// GetHome returns the go-slip39 home directory path.
func (c *Config) GetHome() string {
	return c.Home
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path.
func (c *Config) GetLoggingFile() string {
	return c.Logging.File
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}

// GetSecurity returns the security configuration.
func (c *Config) GetSecurity() SecurityConfig {
	return c.Security
}

// GetIterationExponent returns the default Feistel iteration exponent.
func (c *Config) GetIterationExponent() int {
	return c.Sharing.IterationExponent
}

// DefaultHome returns the default go-slip39 home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".slip39"
	}
	return filepath.Join(home, ".slip39")
}
