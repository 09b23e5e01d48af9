// Package config provides a type-safe, generic and cached way to load
// application configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11` to
// deliver a small API that:
//
//   - Loads the default `.env` file from the current working directory once.
//   - Parses the environment into any Go struct using field tags.
//   - Caches each successfully loaded configuration type so it is only parsed
//     once for the lifetime of the process.
//   - Exposes MustLoad for configuration the process cannot start without.
//
// # Architecture
//
// Internally the package keeps a process-wide map of parsed struct copies
// keyed by their fully-qualified type name. Each key holds a `sync.Once`
// guaranteeing the parsing work is executed at most once per configuration
// type even when accessed from multiple goroutines concurrently.
//
// # Usage
//
// Create a struct describing your configuration and annotate its fields with
// `env` tags:
//
//	type MonitorConfig struct {
//	    Timeout      time.Duration `env:"INACTIVITY_TIMEOUT" envDefault:"24h"`
//	    WarningLead  time.Duration `env:"INACTIVITY_WARNING_LEAD" envDefault:"5m"`
//	    PollInterval time.Duration `env:"INACTIVITY_POLL_INTERVAL" envDefault:"1m"`
//	}
//
// Then populate the struct:
//
//	import "github.com/dmitrymomot/sessionguard/pkg/config"
//
//	func main() {
//	    var cfg MonitorConfig
//	    if err := config.Load(&cfg); err != nil {
//	        log.Fatalf("parsing env: %v", err)
//	    }
//	}
//
// Subsequent calls to `config.Load(&cfg)` are served from the in-memory cache
// without re-parsing.
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with `errors.Is`:
//
//   - `ErrParsingConfig`   – failed to parse env vars into struct.
//   - `ErrConfigNotLoaded` – requested config type failed its first load.
//   - `ErrNilPointer`      – nil pointer passed to `Load`/`MustLoad`.
package config
