package config

import (
	"github.com/caarlos0/env/v11"
)

// Config is loaded from the environment at startup. Sensitivity remains
// adjustable at runtime; the value here is only the starting point.
type Config struct {
	Sensitivity int    `env:"BLOCKFALL_SENSITIVITY" envDefault:"50"`
	Strategy    string `env:"BLOCKFALL_STRATEGY" envDefault:"accumulator"`
	LogLevel    string `env:"BLOCKFALL_LOG_LEVEL" envDefault:"info"`
	Mute        bool   `env:"BLOCKFALL_MUTE" envDefault:"false"`
}

// Load parses the environment. Out-of-range sensitivity values are clamped
// into 1..100 rather than rejected.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	if c.Sensitivity < 1 {
		c.Sensitivity = 1
	} else if c.Sensitivity > 100 {
		c.Sensitivity = 100
	}
	return c, nil
}
