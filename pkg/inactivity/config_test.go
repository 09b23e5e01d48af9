package inactivity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/pkg/inactivity"
)

func TestDefaultConfig(t *testing.T) {
	cfg := inactivity.DefaultConfig()

	assert.Equal(t, 24*time.Hour, cfg.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.WarningLead)
	assert.Equal(t, time.Minute, cfg.PollInterval)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	t.Run("zero timeout", func(t *testing.T) {
		cfg := inactivity.DefaultConfig()
		cfg.Timeout = 0
		assert.ErrorIs(t, cfg.Validate(), inactivity.ErrInvalidTimeout)
	})

	t.Run("negative warning lead", func(t *testing.T) {
		cfg := inactivity.DefaultConfig()
		cfg.WarningLead = -time.Minute
		assert.ErrorIs(t, cfg.Validate(), inactivity.ErrInvalidWarningLead)
	})

	t.Run("warning lead not shorter than timeout", func(t *testing.T) {
		cfg := inactivity.DefaultConfig()
		cfg.Timeout = 5 * time.Minute
		cfg.WarningLead = 5 * time.Minute
		assert.ErrorIs(t, cfg.Validate(), inactivity.ErrInvalidWarningLead)
	})

	t.Run("zero poll interval", func(t *testing.T) {
		cfg := inactivity.DefaultConfig()
		cfg.PollInterval = 0
		assert.ErrorIs(t, cfg.Validate(), inactivity.ErrInvalidPollInterval)
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Run("applies configured thresholds", func(t *testing.T) {
		clock := newFakeClock()
		cfg := inactivity.Config{
			Timeout:      30 * time.Minute,
			WarningLead:  2 * time.Minute,
			PollInterval: time.Second,
		}

		m, err := inactivity.NewFromConfig(cfg, inactivity.WithClock(clock.Now))
		require.NoError(t, err)

		assert.Equal(t, 30*time.Minute, m.TimeRemaining())

		clock.Advance(28 * time.Minute)
		assert.True(t, m.ShouldShowWarning())
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		cfg := inactivity.Config{Timeout: -1}
		_, err := inactivity.NewFromConfig(cfg)
		assert.ErrorIs(t, err, inactivity.ErrInvalidTimeout)
	})
}

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"zero", 0, "0m"},
		{"negative", -time.Minute, "0m"},
		{"under a minute", 30 * time.Second, "0m"},
		{"minutes only", 5 * time.Minute, "5m"},
		{"hours and minutes", 90 * time.Minute, "1h 30m"},
		{"round hours", 24 * time.Hour, "24h 0m"},
		{"long remainder", 23*time.Hour + 55*time.Minute, "23h 55m"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inactivity.FormatRemaining(tc.in))
		})
	}
}
