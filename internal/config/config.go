// Package config provides Viper-based configuration loading for the hoard tools.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings for the hoard ledger.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// RollServerConfig holds roll service gRPC settings.
type RollServerConfig struct {
	// GRPCHost is the bind/connect address for the roll service.
	GRPCHost string `mapstructure:"grpc_host"`
	// GRPCPort is the TCP port for the roll service.
	GRPCPort int `mapstructure:"grpc_port"`
	// Record stores every generated result in the hoard ledger.
	Record bool `mapstructure:"record"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the "host:port" gRPC address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (r RollServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.GRPCHost, r.GRPCPort)
}

// DiceConfig selects the randomness source.
type DiceConfig struct {
	// Source is "crypto" or "seeded".
	Source string `mapstructure:"source"`
	// Seed is the PCG seed used when Source is "seeded". Must be non-zero then.
	Seed uint64 `mapstructure:"seed"`
}

// ContentConfig locates reference data files.
type ContentConfig struct {
	// MonstersFile is the YAML monster reference table.
	MonstersFile string `mapstructure:"monsters_file"`
}

// Config is the top-level application configuration.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	RollServer RollServerConfig `mapstructure:"rollserver"`
	Dice       DiceConfig       `mapstructure:"dice"`
	Content    ContentConfig    `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	for _, err := range []error{
		validateDatabase(c.Database),
		validateLogging(c.Logging),
		validateRollServer(c.RollServer),
		validateDice(c.Dice),
		validateContent(c.Content),
	} {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateRollServer(r RollServerConfig) error {
	var errs []string
	if r.GRPCHost == "" {
		errs = append(errs, "rollserver.grpc_host must not be empty")
	}
	if r.GRPCPort < 1 || r.GRPCPort > 65535 {
		errs = append(errs, fmt.Sprintf("rollserver.grpc_port must be 1-65535, got %d", r.GRPCPort))
	}
	if r.ShutdownTimeout < 0 {
		errs = append(errs, "rollserver.shutdown_timeout must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDice(d DiceConfig) error {
	switch d.Source {
	case "crypto":
		return nil
	case "seeded":
		if d.Seed == 0 {
			return fmt.Errorf("dice.seed must be non-zero when dice.source is seeded")
		}
		return nil
	}
	return fmt.Errorf("dice.source must be one of [crypto, seeded], got %q", d.Source)
}

func validateContent(c ContentConfig) error {
	if c.MonstersFile == "" {
		return fmt.Errorf("content.monsters_file must not be empty")
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with HOARD_ prefix
	v.SetEnvPrefix("HOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "hoard")
	v.SetDefault("database.password", "hoard")
	v.SetDefault("database.name", "hoard")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("rollserver.grpc_host", "127.0.0.1")
	v.SetDefault("rollserver.grpc_port", 50061)
	v.SetDefault("rollserver.record", false)
	v.SetDefault("rollserver.shutdown_timeout", "10s")

	v.SetDefault("dice.source", "crypto")
	v.SetDefault("dice.seed", 0)

	v.SetDefault("content.monsters_file", "content/monsters.yaml")
}
