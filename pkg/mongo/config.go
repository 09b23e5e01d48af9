package mongo

import "time"

// Config describes the MongoDB connection. Fields are populated from
// environment variables via github.com/caarlos0/env.
type Config struct {
	// ConnectionURL in the format "mongodb://localhost:27017".
	ConnectionURL string `env:"MONGODB_URL,required"`

	// ConnectTimeout bounds each connection attempt.
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`

	// MaxPoolSize is the maximum number of connections in the pool.
	MaxPoolSize uint64 `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`

	// MinPoolSize is the minimum number of connections kept in the pool.
	MinPoolSize uint64 `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`

	// MaxConnIdleTime is how long a pooled connection may remain idle.
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"`

	// RetryWrites enables automatic retry of write operations.
	RetryWrites bool `env:"MONGODB_RETRY_WRITES" envDefault:"true"`

	// RetryReads enables automatic retry of read operations.
	RetryReads bool `env:"MONGODB_RETRY_READS" envDefault:"true"`

	// RetryAttempts is the number of connection attempts before giving up.
	RetryAttempts int `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`

	// RetryInterval is the pause between connection attempts.
	RetryInterval time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}
