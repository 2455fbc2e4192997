package config

import (
	"errors"
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"time"
	_ "time/tzdata"
)

var (
	ErrConfigNotLoaded = errors.New("config not loaded")
)

type Environment string

const (
	Production  Environment = "prod"
	Development Environment = "dev"
)

func (e *Environment) SetValue(s string) error {
	*e = Environment(s)
	if *e != Production && *e != Development {
		return configNotLoadedErr(`only "prod" and "dev" environments are allowed`)
	}
	return nil
}

type Config struct {
	App struct {
		Env Environment `yaml:"env" env:"ENV" env-required:""`
	} `yaml:"app" env-prefix:"APP_" env-required:""`

	Server struct {
		Host string `yaml:"host" env:"HOST" env-default:"localhost"`
		Port int    `yaml:"port" env:"PORT" env-default:"8080"`
	} `yaml:"server" env-prefix:"SERVER_"`

	DB struct {
		DSN string `yaml:"dsn" env:"DB_DSN" env-required:""`
	} `yaml:"db" env-prefix:"DB_" env-required:""`

	JWT struct {
		AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"2h"`
		RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL" env-default:"24h"`
		Secret          string        `yaml:"secret" env:"SECRET" env-required:""`
	} `yaml:"jwt" env-prefix:"JWT_" env-required:""`

	Wellness struct {
		Timezone    string        `yaml:"timezone" env:"TIMEZONE" env-default:"UTC"`
		HistoryDays int           `yaml:"history_days" env:"HISTORY_DAYS" env-default:"30"`
		ReadTimeout time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT" env-default:"5s"`
	} `yaml:"wellness" env-prefix:"WELLNESS_"`

	Kafka struct {
		// Score events are only published when at least one broker is set.
		Brokers []string `yaml:"brokers" env:"BROKERS" env-separator:","`
		Topic   string   `yaml:"topic" env:"TOPIC" env-default:"wellness.scores"`
	} `yaml:"kafka" env-prefix:"KAFKA_"`
}

// Location resolves the timezone used to split calendar days.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Wellness.Timezone)
	if err != nil {
		return nil, configNotLoadedErr("invalid wellness timezone %q: %w", c.Wellness.Timezone, err)
	}
	return loc, nil
}

func Load(filePath string) (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadConfig(filePath, cfg); err != nil {
		return nil, configNotLoadedErr("config not loaded: %w", err)
	}

	if cfg.Wellness.HistoryDays < 7 {
		return nil, configNotLoadedErr("wellness history_days must be at least 7, got %d", cfg.Wellness.HistoryDays)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func MustLoad(filePath string) *Config {
	cfg, err := Load(filePath)
	if err != nil {
		panic(err)
	}
	return cfg
}

func configNotLoadedErr(format string, args ...any) error {
	return errors.Join(fmt.Errorf(format, args...), ErrConfigNotLoaded)
}
