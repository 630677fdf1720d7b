package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/gridskirmish-backend/internal/entity"
	"github.com/rocketscienceinc/gridskirmish-backend/internal/match"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Pprof      bool   `yaml:"pprof" env:"PPROF" env-default:"false"`
	Redis      Redis  `yaml:"redis"`
	Match      Match  `yaml:"match"`
}

type Redis struct {
	Enabled    bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host       string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port       string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	JournalTTL time.Duration `yaml:"journal-ttl" env:"REDIS_JOURNAL_TTL" env-default:"1h"`
}

type Match struct {
	StrictPlacement bool   `yaml:"strict-placement" env:"MATCH_STRICT_PLACEMENT" env-default:"false"`
	PlacementLock   bool   `yaml:"placement-lock" env:"MATCH_PLACEMENT_LOCK" env-default:"false"`
	FirstTurn       string `yaml:"first-turn" env:"MATCH_FIRST_TURN" env-default:"A"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the file at path, applies env overrides and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Match.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Match) validate() error {
	if that.FirstTurn != entity.PlayerA && that.FirstTurn != entity.PlayerB {
		return fmt.Errorf("match.first-turn must be %q or %q, got %q", entity.PlayerA, entity.PlayerB, that.FirstTurn)
	}

	return nil
}

// EngineOptions - engine settings every new match is created with.
func (that *Match) EngineOptions() []match.Option {
	opts := []match.Option{match.WithFirstTurn(that.FirstTurn)}

	if that.StrictPlacement {
		opts = append(opts, match.WithStrictPlacement())
	}

	if that.PlacementLock {
		opts = append(opts, match.WithPlacementLock())
	}

	return opts
}
