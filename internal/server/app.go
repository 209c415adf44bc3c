// Package server wires the Bookwise server together: storage, identity,
// the recommendation model, and the HTTP and gRPC endpoints.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/bookwise/internal/dbx"
	"github.com/dmitrijs2005/bookwise/internal/logging"
	"github.com/dmitrijs2005/bookwise/internal/server/auth"
	"github.com/dmitrijs2005/bookwise/internal/server/config"
	gs "github.com/dmitrijs2005/bookwise/internal/server/grpc"
	"github.com/dmitrijs2005/bookwise/internal/server/httpapi"
	"github.com/dmitrijs2005/bookwise/internal/server/llm"
	"github.com/dmitrijs2005/bookwise/internal/server/metrics"
	"github.com/dmitrijs2005/bookwise/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookwise/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	dbWaitBase        = 200 * time.Millisecond
	dbWaitAttempts    = 8
	breakerOpenPeriod = 30 * time.Second
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.Server
	grpc   *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))
	warnInsecureSecret(ctx, c, logger)

	db, rm, err := openStorage(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	model, err := llm.New(c.ModelProvider, c.ModelAPIKey, c.ModelName, llm.WithBaseURL(c.ModelBaseURL))
	if err != nil {
		return nil, fmt.Errorf("model init error: %w", err)
	}
	guarded := llm.NewBreaker(model, llm.BreakerSettings{
		Name:             c.ModelProvider,
		FailureThreshold: c.BreakerThreshold,
		OpenTimeout:      breakerOpenPeriod,
		OnStateChange:    m.BreakerStateChanged,
	})

	tokens := auth.NewTokenService([]byte(c.SecretKey), c.AccessTokenValidityDuration)
	us, err := services.NewUserService(db, rm, auth.NewHasher(c.BcryptCost), tokens)
	if err != nil {
		return nil, fmt.Errorf("user service init error: %w", err)
	}

	recs := services.NewRecommendationService(guarded, c.ModelTimeout, logger, m,
		services.WithResultCache(c.RecommendationCacheTTL, c.RecommendationCacheSize))

	router := httpapi.NewRouter(httpapi.Deps{
		Users:              us,
		Recommendations:    recs,
		SavedBooks:         services.NewSavedBookService(db, rm, services.NewS3Store(c)),
		Guard:              auth.NewGuard(tokens, rm.Users(db), c.DirectoryTimeout),
		Logger:             logger,
		Observer:           m,
		Gatherer:           reg,
		CORSAllowedOrigins: c.CORSAllowedOrigins,
		RateLimitRequests:  c.RateLimitRequests,
		RateLimitWindow:    c.RateLimitWindow,
	})

	return &App{
		config: c,
		logger: logger,
		db:     db,
		http:   httpapi.NewServer(c.EndpointAddrHTTP, router, logger),
		grpc:   gs.NewGRPCServer(c.EndpointAddrGRPC, logger),
	}, nil
}

func warnInsecureSecret(ctx context.Context, c *config.Config, logger logging.Logger) {
	if c.InsecureSecret() {
		logger.Warn(ctx, "tokens are signed with the built-in development secret; set BOOKWISE_SECRET_KEY")
	}
}

// openStorage connects to Postgres and migrates it, or falls back to the
// in-memory stores when no DSN is configured.
func openStorage(ctx context.Context, c *config.Config, logger logging.Logger) (*sql.DB, repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database configured, using in-memory stores")
		return nil, repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := repomanager.OpenPostgres(c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}
	if err := dbx.WaitForDB(ctx, db, dbWaitBase, dbWaitAttempts); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("db unreachable: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	return db, rm, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	run := func(name string, f func(context.Context) error) {
		defer wg.Done()
		if err := f(ctx); err != nil {
			app.logger.Error(ctx, "server stopped", "server", name, "error", err)
			cancelFunc()
		}
	}

	wg.Add(2)
	go run("http", app.http.Run)
	go run("grpc", app.grpc.Run)

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close", "error", err)
		}
	}
	app.logger.Info(ctx, "App stopped")
}
