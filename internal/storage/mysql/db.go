package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
)

// Open connects with dsn and pings the server. Driver errors are returned
// wrapped, without retries.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	cfg, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	// the repository scans DATE/TIMESTAMP columns into time.Time
	cfg.ParseTime = true

	log.Info().
		Str("addr", cfg.Addr).
		Str("database", cfg.DBName).
		Str("user", cfg.User).
		Bool("password_set", cfg.Passwd != "").
		Msg("connecting to database")

	connector, err := gomysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql connector: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to %s/%s: %w", cfg.Addr, cfg.DBName, err)
	}
	log.Info().Msg("database connection ok")
	return db, nil
}
