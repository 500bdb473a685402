package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/Lelo88/inventory-api-golang/internal/config"
	"github.com/Lelo88/inventory-api-golang/internal/db"
	"github.com/Lelo88/inventory-api-golang/internal/docs"
	"github.com/Lelo88/inventory-api-golang/internal/health"
	"github.com/Lelo88/inventory-api-golang/internal/httpx"
	"github.com/Lelo88/inventory-api-golang/internal/items"
	"github.com/Lelo88/inventory-api-golang/internal/logger"
	"github.com/Lelo88/inventory-api-golang/internal/metrics"
	"github.com/Lelo88/inventory-api-golang/internal/web"
)

// appPool es lo que la app usa del pool: health, repositorio y cierre.
type appPool interface {
	Ping(ctx context.Context) error
	Close()
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// appDeps permite reemplazar los bordes del proceso en tests.
type appDeps struct {
	loadConfig     func() (config.Config, error)
	newLogger      func(level string) (*zap.Logger, error)
	newPool        func(ctx context.Context, url string) (appPool, error)
	listenAndServe func(addr string, handler http.Handler) error
}

var (
	loadConfigFn = config.Load
	newLoggerFn  = logger.New
	newPoolFn    = func(ctx context.Context, url string) (appPool, error) {
		pool, err := db.NewPool(ctx, url)
		if err != nil {
			return nil, err
		}
		return pool, nil
	}
	listenAndServeFn = http.ListenAndServe
	fatalf           = log.Fatal
)

func main() {
	err := run(context.Background(), appDeps{
		loadConfig:     loadConfigFn,
		newLogger:      newLoggerFn,
		newPool:        newPoolFn,
		listenAndServe: listenAndServeFn,
	})
	if err != nil {
		fatalf(err)
	}
}

func run(ctx context.Context, deps appDeps) error {
	cfg, err := deps.loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	appLogger, err := deps.newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	// Un único pool para todo el proceso; los handlers lo comparten.
	pool, err := deps.newPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	appLogger.Info("database connected",
		zap.Strings("contact_points", cfg.ContactPoints),
		zap.String("keyspace", cfg.Keyspace),
	)

	addr := ":" + cfg.Port
	appLogger.Info("listening", zap.String("addr", addr))
	if err := deps.listenAndServe(addr, buildRouter(pool, cfg, appLogger)); err != nil {
		return fmt.Errorf("serving http: %w", err)
	}
	return nil
}

func buildRouter(pool appPool, cfg config.Config, appLogger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Sin middleware.Timeout: una DB lenta demora la respuesta, no la corta.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpx.RequestLogger(appLogger))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(httpx.CORS(cfg.AllowedOrigins))

	// Errores de routing se manejan a nivel router.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusNotFound, "not_found", "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	healthHandler := health.New(pool)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", metrics.Handler())

	docs.RegisterRoutes(r)
	web.RegisterRoutes(r)

	itemsHandler := items.NewHandler(items.NewService(items.NewRepository(pool)), appLogger)
	items.RegisterRoutes(r, itemsHandler)

	return r
}
