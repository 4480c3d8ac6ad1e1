package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvCurrency = "STOCKS_CURRENCY"
	EnvVerbose  = "STOCKS_VERBOSE"

	DefaultCurrency = "USD"
)

// Config is the resolved configuration of a command.
type Config struct {
	Currency string
	Verbose  bool
}

// LoadConfig loads the optional env file and resolves the configuration from
// the global flags and the environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", *envFile, err)
	}
	return newConfig(*currencyFlag, *Verbose, os.Getenv)
}

// newConfig resolves the configuration: flags win over the environment, which
// wins over the defaults.
func newConfig(currency string, verbose bool, getenv func(string) string) (Config, error) {
	c := Config{Currency: currency, Verbose: verbose}
	if c.Currency == "" {
		c.Currency = getenv(EnvCurrency)
	}
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	if v := getenv(EnvVerbose); v != "" && !verbose {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s=%q: %w", EnvVerbose, v, err)
		}
		c.Verbose = b
	}
	return c, nil
}

// NewLogger creates the application logger. It logs at info level, or debug
// level when verbose.
func NewLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
