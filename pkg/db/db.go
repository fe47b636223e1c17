// Package db opens the Postgres pool that backs calculation history and applies
// schema migrations.
package db

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"loancalc/pkg/config"
)

const applicationName = "loancalc"

// Open connects to DATABASE_URL (or the DB_* settings) and pings before returning.
func Open(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	pcfg, err := poolConfig(runtimeConnString(cfg))
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// poolConfig tags connections with the application name and, behind PgBouncer in
// transaction mode, switches to the simple protocol since prepared statements
// cannot be held across transactions.
func poolConfig(connString string) (*pgxpool.Config, error) {
	pcfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	if _, ok := pcfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		pcfg.ConnConfig.RuntimeParams["application_name"] = applicationName
	}
	if strings.Contains(strings.ToLower(connString), "pgbouncer=true") {
		pcfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
		pcfg.ConnConfig.StatementCacheCapacity = 0
		pcfg.ConnConfig.DescriptionCacheCapacity = 0
	}
	return pcfg, nil
}

// WithTx runs fn in a transaction, committing only when fn returns nil.
// history.Repository uses it to write a calculation and its audit row together.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func runtimeConnString(cfg config.Config) string {
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		return cfg.DatabaseURL
	}
	return dsn(cfg.DB)
}

// migrationConnString prefers DIRECT_URL so migrations bypass any pooler.
func migrationConnString(cfg config.Config) string {
	if strings.TrimSpace(cfg.DirectURL) != "" {
		return cfg.DirectURL
	}
	return runtimeConnString(cfg)
}

// dsn builds a postgres URL from DB_* settings; credentials are escaped.
func dsn(cfg config.DBConfig) string {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": []string{sslmode}}.Encode(),
	}
	return u.String()
}
