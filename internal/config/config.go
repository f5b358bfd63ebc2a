package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-ai/internal/search"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis    Redis  `yaml:"redis"`
	Engine   Engine `yaml:"engine"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Engine struct {
	Algorithm   string        `yaml:"algorithm" env:"ENGINE_ALGORITHM" env-default:"minimax"`
	Strategy    string        `yaml:"strategy" env:"ENGINE_STRATEGY" env-default:"weighted"`
	WinScore    int           `yaml:"win-score" env-default:"1000"`
	ThreatBonus int           `yaml:"threat-bonus" env-default:"15"`
	MaxDepth    int           `yaml:"max-depth" env-default:"0"`
	NodeTarget  int64         `yaml:"node-target" env-default:"200000"`
	NodeBudget  int64         `yaml:"node-budget" env-default:"0"`
	MoveTimeout time.Duration `yaml:"move-timeout" env:"ENGINE_MOVE_TIMEOUT" env-default:"5s"`

	// Negative because cleanenv cannot tell an explicit false from an unset field.
	DisableMoveOrdering bool `yaml:"disable-move-ordering"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// SearchOptions - converts the engine section into search engine options.
func (that *Engine) SearchOptions() ([]search.Option, error) {
	strategy, err := tictactoe.ParseStrategy(that.Strategy)
	if err != nil {
		return nil, fmt.Errorf("invalid engine strategy: %w", err)
	}

	evaluator := tictactoe.NewEvaluator(
		tictactoe.WithStrategy(strategy),
		tictactoe.WithWinScore(that.WinScore),
		tictactoe.WithThreatBonus(that.ThreatBonus),
	)

	return []search.Option{
		search.WithEvaluator(evaluator),
		search.WithMoveOrdering(!that.DisableMoveOrdering),
		search.WithNodeBudget(that.NodeBudget),
	}, nil
}

func (that *Engine) SearchAlgorithm() (search.Algorithm, error) {
	algorithm, err := search.ParseAlgorithm(that.Algorithm)
	if err != nil {
		return "", fmt.Errorf("invalid engine algorithm: %w", err)
	}
	return algorithm, nil
}

func (that *Engine) DepthPolicy() search.DepthPolicy {
	return search.DepthPolicy{
		MaxDepth:   that.MaxDepth,
		NodeTarget: that.NodeTarget,
	}
}
