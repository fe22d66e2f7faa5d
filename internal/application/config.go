package application

import "time"

type Config struct {
	Language string
	// ReturnBaseURL prefixes the 3DS return path sent with each booking.
	ReturnBaseURL     string
	PollInterval      time.Duration
	PollBudget        time.Duration
	NotFoundGrace     time.Duration
	RegistrationDelay time.Duration
	ArrivalHour       int
}

func DefaultConfig() Config {
	return Config{
		Language:          "en",
		PollInterval:      5 * time.Second,
		PollBudget:        120 * time.Second,
		NotFoundGrace:     45 * time.Second,
		RegistrationDelay: 4 * time.Second,
		ArrivalHour:       15,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.Language == "" {
		c.Language = defaults.Language
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaults.PollInterval
	}
	if c.PollBudget <= 0 {
		c.PollBudget = defaults.PollBudget
	}
	if c.NotFoundGrace <= 0 {
		c.NotFoundGrace = defaults.NotFoundGrace
	}
	if c.RegistrationDelay < 0 {
		c.RegistrationDelay = defaults.RegistrationDelay
	}
	if c.ArrivalHour < 0 || c.ArrivalHour > 23 {
		c.ArrivalHour = defaults.ArrivalHour
	}
	return c
}
