// Package config loads solver settings from flags, environment variables and
// an optional YAML file through viper.
//
// Precedence follows viper: explicitly set flags, then SOLVERS_* environment
// variables, then the config file, then defaults. Values are decoded
// strictly: a string or fractional number where an integer is expected is an
// error, not a silent conversion.
package config

import (
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/born-ml/solvers/internal/adam"
	"github.com/born-ml/solvers/internal/parallel"
)

// EnvPrefix is prepended to environment variable names, e.g. SOLVERS_ADAM_ALPHA.
const EnvPrefix = "SOLVERS"

// Viper keys.
const (
	KeyMaxIter       = "adam.max_iter"
	KeyNIterNoChange = "adam.n_iter_no_change"
	KeyTol           = "adam.tol"
	KeyAlpha         = "adam.alpha"
	KeyBeta1         = "adam.beta_1"
	KeyBeta2         = "adam.beta_2"
	KeyEps           = "adam.eps"

	KeyWorkers  = "batch.workers"
	KeyParallel = "batch.parallel"

	KeyLogLevel  = "log.level"
	KeyLogFormat = "log.format"
)

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	cfg := adam.DefaultConfig()
	v.SetDefault(KeyMaxIter, cfg.MaxIter)
	v.SetDefault(KeyNIterNoChange, cfg.NIterNoChange)
	v.SetDefault(KeyTol, cfg.Tol)
	v.SetDefault(KeyAlpha, cfg.Alpha)
	v.SetDefault(KeyBeta1, cfg.Beta1)
	v.SetDefault(KeyBeta2, cfg.Beta2)
	v.SetDefault(KeyEps, cfg.Eps)

	workers := parallel.DefaultConfig()
	v.SetDefault(KeyWorkers, workers.NumWorkers)
	v.SetDefault(KeyParallel, workers.Enabled)

	v.SetDefault(KeyLogLevel, logrus.InfoLevel.String())
	v.SetDefault(KeyLogFormat, "text")
}

// BindFlags adds the hyperparameter flags to fs and binds them to their keys.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	cfg := adam.DefaultConfig()
	fs.Int("max-iter", cfg.MaxIter, "maximum number of iterations")
	fs.Int("n-iter-no-change", cfg.NIterNoChange, "iterations without improvement before stopping (0 disables)")
	fs.Float64("tol", cfg.Tol, "minimum objective decrease that counts as improvement")
	fs.Float64("alpha", cfg.Alpha, "step size")
	fs.Float64("beta-1", cfg.Beta1, "first moment decay rate")
	fs.Float64("beta-2", cfg.Beta2, "second moment decay rate")
	fs.Float64("eps", cfg.Eps, "denominator offset for numerical stability")

	return bind(v, fs, map[string]string{
		KeyMaxIter:       "max-iter",
		KeyNIterNoChange: "n-iter-no-change",
		KeyTol:           "tol",
		KeyAlpha:         "alpha",
		KeyBeta1:         "beta-1",
		KeyBeta2:         "beta-2",
		KeyEps:           "eps",
	})
}

// BindWorkerFlags adds the worker pool flags to fs and binds them.
func BindWorkerFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	workers := parallel.DefaultConfig()
	fs.Int("workers", workers.NumWorkers, "number of runs executed concurrently")
	fs.Bool("parallel", workers.Enabled, "run problems concurrently")
	return bind(v, fs, map[string]string{
		KeyWorkers:  "workers",
		KeyParallel: "parallel",
	})
}

// BindLoggingFlags adds the logging flags to fs and binds them.
func BindLoggingFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String("log-level", logrus.InfoLevel.String(), "log level (trace, debug, info, warn, error)")
	fs.String("log-format", "text", "log format (text or json)")
	return bind(v, fs, map[string]string{
		KeyLogLevel:  "log-level",
		KeyLogFormat: "log-format",
	})
}

func bind(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for key, flag := range keys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return errors.Wrapf(err, "binding flag --%s", flag)
		}
	}
	return nil
}

// ReadFile merges the YAML file at path into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errors.Wrapf(err, "config file %s not found", path)
		}
		return errors.Wrapf(err, "reading config file %s", path)
	}
	return nil
}

// Load decodes and validates the Adam hyperparameters.
//
// Values of the wrong kind yield an *adam.InvalidTypeError naming the
// parameter; out-of-range values fail adam.Config.Validate.
func Load(v *viper.Viper) (adam.Config, error) {
	var (
		cfg adam.Config
		err error
	)
	if cfg.MaxIter, err = intValue(v, KeyMaxIter); err != nil {
		return adam.Config{}, err
	}
	if cfg.NIterNoChange, err = intValue(v, KeyNIterNoChange); err != nil {
		return adam.Config{}, err
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{KeyTol, &cfg.Tol},
		{KeyAlpha, &cfg.Alpha},
		{KeyBeta1, &cfg.Beta1},
		{KeyBeta2, &cfg.Beta2},
		{KeyEps, &cfg.Eps},
	}
	for _, f := range floats {
		if *f.dst, err = floatValue(v, f.key); err != nil {
			return adam.Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return adam.Config{}, err
	}
	return cfg, nil
}

// LoadWorkers decodes the worker pool settings.
func LoadWorkers(v *viper.Viper) (parallel.Config, error) {
	n, err := intValue(v, KeyWorkers)
	if err != nil {
		return parallel.Config{}, err
	}
	if n < 1 {
		return parallel.Config{}, errors.WithStack(&adam.InvalidArgumentError{
			Name:    paramName(KeyWorkers),
			Value:   n,
			Message: "workers must be positive",
		})
	}
	return parallel.Config{
		Enabled:    v.GetBool(KeyParallel),
		NumWorkers: n,
	}, nil
}

// ConfigureLogger applies the configured level and format to logger.
func ConfigureLogger(v *viper.Viper, logger *logrus.Logger) error {
	level, err := logrus.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return errors.WithStack(err)
	}
	logger.SetLevel(level)

	switch format := v.GetString(KeyLogFormat); format {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.Errorf("unknown log format %q", format)
	}
	return nil
}

// paramName maps "adam.max_iter" to "max_iter".
func paramName(key string) string {
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		return key[i+1:]
	}
	return key
}

func intValue(v *viper.Viper, key string) (int, error) {
	name := paramName(key)
	switch t := v.Get(key).(type) {
	case int:
		return t, nil
	case int64:
		if t > math.MaxInt || t < math.MinInt {
			break
		}
		return int(t), nil
	case int32:
		return int(t), nil
	case uint64:
		if t > math.MaxInt {
			break
		}
		return int(t), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, adam.NewInvalidType(name, t, err, name+" must be an integer")
		}
		return i, nil
	}
	return 0, adam.NewInvalidType(name, v.Get(key), nil, name+" must be an integer")
}

func floatValue(v *viper.Viper, key string) (float64, error) {
	name := paramName(key)
	switch t := v.Get(key).(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, adam.NewInvalidType(name, t, err, name+" must be a real number")
		}
		return f, nil
	}
	return 0, adam.NewInvalidType(name, v.Get(key), nil, name+" must be a real number")
}
