package app

import (
	"context"
	"database/sql"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/adanyl0v/go-task-store/internal/config"
	"github.com/adanyl0v/go-task-store/internal/services"
)

var globalMySQLDB *sql.DB

func mustConnectMySQL() {
	cfg := config.Global().MySQL

	driverCfg := mysql.NewConfig()
	driverCfg.User = cfg.Username
	driverCfg.Passwd = cfg.Password
	driverCfg.Net = "tcp"
	driverCfg.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	driverCfg.DBName = cfg.Database
	driverCfg.ParseTime = true
	driverCfg.Loc = time.UTC
	// Report matched rather than changed rows, so an update that
	// leaves every column as is still counts as a hit.
	driverCfg.ClientFoundRows = true

	var err error
	globalMySQLDB, err = sql.Open("mysql", driverCfg.FormatDSN())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to open mysql")
		panic(err)
	}
	globalMySQLDB.SetMaxOpenConns(cfg.MaxConns)
	globalMySQLDB.SetMaxIdleConns(cfg.MaxConns)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = globalMySQLDB.PingContext(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping mysql")
		panic(err)
	}
	globalLogger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("connected to mysql")

	err = services.EnsureMySQLSchema(ctx, globalMySQLDB)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ensure mysql schema")
		panic(err)
	}

	globalTaskService = services.NewMySQLTaskService(globalLogger, globalMySQLDB)
}

func disconnectMySQL() {
	err := globalMySQLDB.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close mysql")
		return
	}
	globalLogger.Info().Msg("disconnected from mysql")
}
