package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jhoicas/Contable-api/pkg/config"
)

const (
	defaultMaxConns = 25
	applicationName = "contable-api"
	pingAttempts    = 5
	pingBackoff     = 500 * time.Millisecond
)

// NewPool crea el pool de PostgreSQL y espera a que la base responda.
// Al arrancar junto al contenedor de la BD el primer ping suele fallar; se reintenta con espera creciente.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pingWithRetry(ctx, pool, pingAttempts, pingBackoff); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// poolConfig traduce DBConfig a la configuración del pool sin abrir conexiones.
func poolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolCfg.MaxConns = defaultMaxConns
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	poolCfg.MinConns = min(2, poolCfg.MaxConns)
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute
	poolCfg.HealthCheckPeriod = time.Minute

	params := poolCfg.ConnConfig.RuntimeParams
	if params["application_name"] == "" {
		params["application_name"] = applicationName
	}
	// fechas de documentos en UTC, igual que el almacén en memoria
	params["timezone"] = "UTC"

	// NUMERIC <-> shopspring/decimal en cada conexión del pool
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return poolCfg, nil
}

func pingWithRetry(ctx context.Context, pool *pgxpool.Pool, attempts int, backoff time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = pool.Ping(ctx); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("ping DB: %w", ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("ping DB tras %d intentos: %w", attempts, err)
}
