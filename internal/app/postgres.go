package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/go-task-store/internal/config"
	"github.com/adanyl0v/go-task-store/internal/services"
)

var globalPostgresPool *pgxpool.Pool

func mustConnectPostgres() {
	cfg := config.Global()
	pgCfg := cfg.Postgres
	connURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pgCfg.Username, pgCfg.Password, pgCfg.Host,
		pgCfg.Port, pgCfg.Database, pgCfg.SSLMode)

	poolCfg, err := pgxpool.ParseConfig(connURL)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to parse postgres config")
		panic(err)
	}
	poolCfg.MaxConns = pgCfg.MaxConns
	poolCfg.ConnConfig.ConnectTimeout = pgCfg.ConnectTimeout
	poolCfg.ConnConfig.Tracer = newQueryTracer(globalLogger, cfg.Store.SlowQueryThreshold)

	globalPostgresPool, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pgCfg.PingTimeout)
	defer cancel()

	err = globalPostgresPool.Ping(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping postgres")
		panic(err)
	}
	globalLogger.Info().
		Str("host", pgCfg.Host).
		Int("port", pgCfg.Port).
		Msg("connected to postgres")

	err = services.EnsurePostgresSchema(ctx, globalPostgresPool)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ensure postgres schema")
		panic(err)
	}

	globalTaskService = services.NewTaskService(globalLogger, globalPostgresPool)
}

func disconnectPostgres() {
	globalPostgresPool.Close()
	globalLogger.Info().Msg("disconnected from postgres")
}
