package db

import (
	"context"
	"fmt"

	"foodcart/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var Pool *pgxpool.Pool

// ConnString builds a postgres URL from cfg.
func ConnString(cfg config.DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

func Init(cfg config.DBConfig) error {
	poolCfg, err := pgxpool.ParseConfig(ConnString(cfg))
	if err != nil {
		return fmt.Errorf("parse db config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	return initPool(poolCfg)
}

// InitURL connects using a full connection string (used by tests).
func InitURL(connStr string) error {
	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return fmt.Errorf("parse db url: %w", err)
	}
	return initPool(poolCfg)
}

func initPool(poolCfg *pgxpool.Config) error {
	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return err
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return fmt.Errorf("ping: %w", err)
	}
	Pool = pool
	return nil
}

func Close() {
	if Pool != nil {
		Pool.Close()
		Pool = nil
	}
}

// InTx runs fn in a transaction. It commits when fn returns nil and rolls
// back otherwise.
func InTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if Pool == nil {
		return fmt.Errorf("db: pool is not initialized")
	}
	return pgx.BeginFunc(ctx, Pool, fn)
}
