// Package pg provides utilities for working with PostgreSQL through the
// pgx/v5 driver: connection pooling with retries, goose schema migrations,
// health checks, and common error helpers.
//
// Inside sessionguard it backs sessionlog.PostgresStorage, which persists
// the session lifecycle audit trail; the package itself is generic and
// carries no domain logic.
//
// # Building Blocks
//
//   - Config: a declarative struct populated from environment variables via
//     github.com/caarlos0/env. It controls pool limits, health-check cadence
//     and migration paths.
//   - Connect: opens a *pgxpool.Pool from Config, retrying until the
//     database becomes available.
//   - Migrate: runs goose migrations against the same pool so the schema is
//     current before the service takes traffic.
//
// # Usage
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    panic(err)
//	}
//
//	ctx := context.Background()
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    panic(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    panic(err)
//	}
//
//	health := pg.Healthcheck(pool)
//	if err := health(ctx); err != nil {
//	    // database is not healthy
//	}
//
// # Error Handling
//
// Helpers such as IsNotFoundError and IsDuplicateKeyError classify errors
// returned by pgx and *pgconn.PgError so business logic does not inspect
// SQLSTATE codes directly.
package pg
