package server

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// ConfigFile is the name of the node configuration, relative to the home
// directory.
const ConfigFile = "config/vaultd.toml"

// Config holds the node settings that are not part of the chain state.
type Config struct {
	// Bind is the address the abci server listens on.
	Bind string `toml:"bind"`
	// Debug returns full error information in abci responses.
	Debug bool `toml:"debug"`
	// MetricsAddr is where prometheus metrics are served. Empty disables
	// the endpoint.
	MetricsAddr string `toml:"metrics_addr"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string `toml:"log_level"`
	// DBDir is the directory of the state database, relative to the home
	// directory.
	DBDir string `toml:"db_dir"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() Config {
	return Config{
		Bind:        "tcp://localhost:26658",
		MetricsAddr: "localhost:26660",
		LogLevel:    "info",
		DBDir:       "data",
	}
}

// LoadConfig reads the configuration file of the home directory. Missing
// files and fields fall back to DefaultConfig.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(home, ConfigFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(errors.ErrInvalidInput, "cannot decode %s: %s", path, err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration file into the home directory.
func SaveConfig(home string, cfg Config) error {
	path := filepath.Join(home, ConfigFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "cannot create config dir")
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return errors.Wrap(err, "cannot open config file")
	}
	defer f.Close()
	return errors.Wrap(toml.NewEncoder(f).Encode(cfg), "cannot encode config")
}

// DBPath returns the absolute location of the state database.
func (c Config) DBPath(home string) string {
	if filepath.IsAbs(c.DBDir) {
		return c.DBDir
	}
	return filepath.Join(home, c.DBDir)
}

// FilterLogger applies the configured log level.
func (c Config) FilterLogger(logger log.Logger) (log.Logger, error) {
	if c.LogLevel == "" {
		return logger, nil
	}
	opt, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}
