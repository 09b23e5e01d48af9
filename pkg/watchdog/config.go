package watchdog

import (
	"time"

	"github.com/dmitrymomot/sessionguard/pkg/inactivity"
)

// Defaults applied when no configuration is provided.
const (
	DefaultSyncInterval = 30 * time.Second
	DefaultEventBuffer  = 16

	// DefaultCookieName is the session cookie read by CookieResolver.
	DefaultCookieName = "sid"
)

// Config holds watchdog configuration. The monitor thresholds apply to every
// watched session.
type Config struct {
	// Timeout is the allowed inactivity duration before automatic logout.
	Timeout time.Duration `env:"WATCHDOG_TIMEOUT" envDefault:"24h"`

	// WarningLead is how long before the timeout the warning fires.
	WarningLead time.Duration `env:"WATCHDOG_WARNING_LEAD" envDefault:"5m"`

	// PollInterval is how often each session re-evaluates elapsed time.
	PollInterval time.Duration `env:"WATCHDOG_POLL_INTERVAL" envDefault:"1m"`

	// SyncInterval is how often activity recorded on other instances is
	// pulled from the shared store into local monitors.
	SyncInterval time.Duration `env:"WATCHDOG_SYNC_INTERVAL" envDefault:"30s"`

	// EventBuffer is the per-subscriber event channel capacity.
	EventBuffer int `env:"WATCHDOG_EVENT_BUFFER" envDefault:"16"`
}

// DefaultConfig returns default watchdog configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:      inactivity.DefaultTimeout,
		WarningLead:  inactivity.DefaultWarningLead,
		PollInterval: inactivity.DefaultPollInterval,
		SyncInterval: DefaultSyncInterval,
		EventBuffer:  DefaultEventBuffer,
	}
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if err := c.monitorConfig().Validate(); err != nil {
		return err
	}
	if c.SyncInterval <= 0 {
		return ErrInvalidSyncInterval
	}
	return nil
}

func (c Config) monitorConfig() inactivity.Config {
	return inactivity.Config{
		Timeout:      c.Timeout,
		WarningLead:  c.WarningLead,
		PollInterval: c.PollInterval,
	}
}
