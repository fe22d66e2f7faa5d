package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is read from RB_* environment variables.
type Config struct {
	APIBaseURL           string        `env:"RB_API_BASE_URL" envDefault:"http://127.0.0.1:8080"`
	Language             string        `env:"RB_LANGUAGE" envDefault:"en"`
	IPLookupURL          string        `env:"RB_IP_LOOKUP_URL" envDefault:"https://api.ipify.org?format=json"`
	ReturnListenAddr     string        `env:"RB_RETURN_LISTEN" envDefault:"127.0.0.1:1456"`
	ReturnBaseURL        string        `env:"RB_RETURN_BASE_URL"`
	RequestTimeout       time.Duration `env:"RB_REQUEST_TIMEOUT" envDefault:"30s"`
	PollInterval         time.Duration `env:"RB_POLL_INTERVAL" envDefault:"5s"`
	PollBudget           time.Duration `env:"RB_POLL_BUDGET" envDefault:"120s"`
	NotFoundGrace        time.Duration `env:"RB_NOT_FOUND_GRACE" envDefault:"45s"`
	RegistrationDelay    time.Duration `env:"RB_REGISTRATION_DELAY" envDefault:"4s"`
	ThreeDSReturnTimeout time.Duration `env:"RB_3DS_RETURN_TIMEOUT" envDefault:"15m"`
	ArrivalHour          int           `env:"RB_ARRIVAL_HOUR" envDefault:"15"`
	LogLevel             string        `env:"RB_LOG_LEVEL" envDefault:"warn"`
	LogFormat            string        `env:"RB_LOG_FORMAT" envDefault:"text"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("parse RB_API_BASE_URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("RB_API_BASE_URL must use http or https")
	}
	if strings.TrimSpace(c.Language) == "" {
		return errors.New("RB_LANGUAGE is empty")
	}
	if c.PollInterval <= 0 || c.PollBudget <= 0 {
		return errors.New("poll interval and budget must be positive")
	}
	if c.NotFoundGrace > c.PollBudget {
		return errors.New("RB_NOT_FOUND_GRACE cannot exceed RB_POLL_BUDGET")
	}
	if c.ArrivalHour < 0 || c.ArrivalHour > 23 {
		return fmt.Errorf("RB_ARRIVAL_HOUR %d out of range", c.ArrivalHour)
	}
	return nil
}
