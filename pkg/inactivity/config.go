package inactivity

import "time"

// Default thresholds applied when no configuration is provided.
const (
	DefaultTimeout      = 24 * time.Hour
	DefaultWarningLead  = 5 * time.Minute
	DefaultPollInterval = time.Minute
)

// Config holds inactivity monitor configuration
type Config struct {
	// Timeout is the allowed inactivity duration before automatic logout.
	Timeout time.Duration `env:"INACTIVITY_TIMEOUT" envDefault:"24h"`

	// WarningLead is how long before the timeout the warning must fire.
	WarningLead time.Duration `env:"INACTIVITY_WARNING_LEAD" envDefault:"5m"`

	// PollInterval is how often the monitor re-evaluates elapsed time.
	PollInterval time.Duration `env:"INACTIVITY_POLL_INTERVAL" envDefault:"1m"`
}

// DefaultConfig returns default monitor configuration
func DefaultConfig() Config {
	return Config{
		Timeout:      DefaultTimeout,
		WarningLead:  DefaultWarningLead,
		PollInterval: DefaultPollInterval,
	}
}

// Validate checks that the configured durations form a usable monitor.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.WarningLead < 0 || c.WarningLead >= c.Timeout {
		return ErrInvalidWarningLead
	}
	if c.PollInterval <= 0 {
		return ErrInvalidPollInterval
	}
	return nil
}

// NewFromConfig creates a new Monitor from the provided Config.
func NewFromConfig(cfg Config, opts ...Option) (*Monitor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configOpts := []Option{WithConfig(cfg)}
	configOpts = append(configOpts, opts...)

	return New(configOpts...), nil
}
