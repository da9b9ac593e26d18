package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/cookiejar/pkg/db"
	"github.com/dmitrymomot/cookiejar/pkg/logger"
	"github.com/dmitrymomot/cookiejar/pkg/redis"
)

// Backends lists the accepted values of Config.Backend.
var Backends = []string{"memory", "file", "sqlite", "postgres", "redis"}

var (
	ErrReadConfig     = errors.New("config: failed to read config file")
	ErrParseConfig    = errors.New("config: failed to parse config")
	ErrUnknownBackend = errors.New("config: unknown backend")
)

// Config is the cookiejar CLI configuration.
type Config struct {
	Backend   string `env:"COOKIEJAR_BACKEND" envDefault:"file" yaml:"backend"`
	File      string `env:"COOKIEJAR_FILE" envDefault:"cookies.txt" yaml:"file"`
	Host      string `env:"COOKIEJAR_HOST" yaml:"host"`
	Namespace string `env:"COOKIEJAR_NAMESPACE" envDefault:"default" yaml:"namespace"`
	RedisKey  string `env:"COOKIEJAR_REDIS_KEY" envDefault:"cookiejar" yaml:"redis_key"`
	Addr      string `env:"COOKIEJAR_ADDR" envDefault:":8080" yaml:"addr"`

	Log      logger.Config   `yaml:"log"`
	SQLite   db.SQLiteConfig `yaml:"sqlite"`
	Postgres db.Config       `yaml:"postgres"`
	Redis    redis.Config    `yaml:"redis"`
}

// Load builds a Config from envDefault tags, then the YAML file at path,
// then environ in os.Environ form. Later layers override earlier ones.
// An empty path or a missing file skips the YAML layer.
func Load(fsys afero.Fs, path string, environ []string) (Config, error) {
	var cfg Config

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		return Config{}, errors.Join(ErrParseConfig, err)
	}

	if path != "" {
		data, err := afero.ReadFile(fsys, path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Join(ErrReadConfig, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, errors.Join(ErrParseConfig, fmt.Errorf("%s: %w", path, err))
			}
		}
	}

	// No defaults here: unset variables keep the values from the file.
	opts := env.Options{
		Environment:         env.ToMap(environ),
		DefaultValueTagName: "-",
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Join(ErrParseConfig, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the fields Load cannot type-check.
func (c Config) Validate() error {
	if !slices.Contains(Backends, c.Backend) {
		return errors.Join(ErrUnknownBackend, fmt.Errorf("%q, want one of %s", c.Backend, strings.Join(Backends, ", ")))
	}
	return nil
}
