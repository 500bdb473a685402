package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type poolPinger interface {
	Ping(ctx context.Context) error
	Close()
}

var (
	newPool  = pgxpool.New
	pingPool = func(ctx context.Context, pool poolPinger) error {
		return pool.Ping(ctx)
	}
	closePool = func(pool poolPinger) {
		pool.Close()
	}
)

// NewPool crea el pool de conexiones contra los contact points del cluster.
// Se usa un timeout corto para evitar que el arranque quede colgado si la DB no responde.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := newPool(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}

	// Validación temprana: asegura que la app no arranca "a medias".
	if err := pingPool(ctx, pool); err != nil {
		closePool(pool)
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// ExecMode traduce el flag "prepared" al modo de ejecución de pgx.
func ExecMode(prepared bool) pgx.QueryExecMode {
	if prepared {
		return pgx.QueryExecModeCacheStatement
	}
	return pgx.QueryExecModeSimpleProtocol
}

// Params arma los argumentos posicionales de una sentencia.
// pgx acepta el QueryExecMode como primer argumento y lo consume antes de bindear.
func Params(prepared bool, params ...any) []any {
	args := make([]any, 0, len(params)+1)
	args = append(args, ExecMode(prepared))
	return append(args, params...)
}
