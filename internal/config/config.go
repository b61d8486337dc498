// Package config resolves the runtime settings shared by the tensorrand commands
// from flags, TENSORRAND_* environment variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/born-ml/tensorrand/internal/parallel"
)

// Keys double as flag names. Environment variables use the upper-cased key with
// dashes replaced by underscores and the TENSORRAND_ prefix.
const (
	ConfigFileKey = "config-file"
	SeedKey       = "seed"
	WorkersKey    = "workers"
	MinChunkKey   = "min-chunk"
	LogLevelKey   = "log-level"

	envPrefix = "tensorrand"
)

var (
	errNegativeWorkers = errors.New("workers can't be negative")
	errMinChunk        = errors.New("min-chunk must be positive")
)

// Config holds the settings every command needs.
type Config struct {
	Seed     uint64
	Workers  int // 0 selects one worker per CPU.
	MinChunk int
	LogLevel zapcore.Level
}

// AddFlags registers the shared flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(ConfigFileKey, "", "Specifies a config file (json, yaml or toml)")
	fs.Uint64(SeedKey, 0, "Seed of the random generator")
	fs.Int(WorkersKey, 0, "Number of worker goroutines. 0 uses one per CPU")
	fs.Int(MinChunkKey, parallel.DefaultConfig().MinChunkSize, "Minimum number of items per worker")
	fs.String(LogLevelKey, "info", "The log level. Should be one of {debug, info, warn, error}")
}

// BuildViper returns a viper instance bound to fs, the environment and, when
// --config-file is set, the named file. Flags win over the environment, which wins
// over the file.
func BuildViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if v.IsSet(ConfigFileKey) && v.GetString(ConfigFileKey) != "" {
		v.SetConfigFile(os.ExpandEnv(v.GetString(ConfigFileKey)))
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Load reads and validates a Config from v.
func Load(v *viper.Viper) (Config, error) {
	c := Config{
		Seed:     v.GetUint64(SeedKey),
		Workers:  v.GetInt(WorkersKey),
		MinChunk: v.GetInt(MinChunkKey),
	}
	if c.Workers < 0 {
		return Config{}, fmt.Errorf("%w: %d", errNegativeWorkers, c.Workers)
	}
	if c.MinChunk < 1 {
		return Config{}, fmt.Errorf("%w: %d", errMinChunk, c.MinChunk)
	}

	level, err := zapcore.ParseLevel(v.GetString(LogLevelKey))
	if err != nil {
		return Config{}, fmt.Errorf("couldn't parse %s: %w", LogLevelKey, err)
	}
	c.LogLevel = level
	return c, nil
}

// Parallel converts the worker settings to a parallel.Config.
func (c Config) Parallel() parallel.Config {
	cfg := parallel.DefaultConfig()
	if c.Workers > 0 {
		cfg = parallel.Workers(c.Workers)
	}
	cfg.MinChunkSize = c.MinChunk
	return cfg
}
