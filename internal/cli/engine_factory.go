package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/ntmtrace"
	"github.com/aretw0/ntmtrace/internal/adapters"
	"github.com/aretw0/ntmtrace/internal/adapters/file"
	"github.com/aretw0/ntmtrace/internal/adapters/redis"
	"github.com/aretw0/ntmtrace/internal/config"
	"github.com/aretw0/ntmtrace/pkg/adapters/memory"
	"github.com/aretw0/ntmtrace/pkg/domain"
	"github.com/aretw0/ntmtrace/pkg/observability"
	"github.com/aretw0/ntmtrace/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// AppOptions are the flags shared by every command.
type AppOptions struct {
	Dir         string // project directory
	ConfigPath  string // defaults to <Dir>/ntmtrace.toml
	Store       string // overrides store.backend when set
	Parallelism int    // overrides batch.parallelism when > 0
	Debug       bool
}

// App bundles the wired components a command needs.
type App struct {
	Dir      string
	Config   *config.Config
	Logger   *slog.Logger
	Store    ports.ReportStore
	Registry *prometheus.Registry
	Metrics  *observability.Metrics
	Engine   *ntmtrace.Engine

	closers []func() error
}

// NewApp loads configuration and wires logger, store, metrics and engine.
func NewApp(opts AppOptions) (*App, error) {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = filepath.Join(opts.Dir, config.FileName)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Store != "" {
		cfg.Store.Backend = config.StoreBackend(opts.Store)
	}
	if opts.Parallelism > 0 {
		cfg.Batch.Parallelism = opts.Parallelism
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", opts.ConfigPath, err)
	}

	logger, err := createLogger(cfg, opts.Debug)
	if err != nil {
		return nil, err
	}

	app := &App{
		Dir:      opts.Dir,
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}
	app.Metrics = observability.NewMetrics(app.Registry)

	if app.Store, err = app.openStore(); err != nil {
		return nil, err
	}
	app.Engine = createEngine(app, opts.Debug)
	return app, nil
}

// createEngine initializes the facade with the app's logger, store and hooks.
func createEngine(app *App, debug bool) *ntmtrace.Engine {
	hooks := app.Metrics.Hooks()
	if debug {
		hooks = hooks.Merge(createDebugHooks(app.Logger))
	}

	engineOpts := []ntmtrace.Option{
		ntmtrace.WithLogger(app.Logger),
		ntmtrace.WithLifecycleHooks(hooks),
		ntmtrace.WithParallelism(app.Config.Batch.Parallelism),
	}
	if app.Store != nil {
		engineOpts = append(engineOpts, ntmtrace.WithStore(app.Store))
	}
	return ntmtrace.New(engineOpts...)
}

func (a *App) openStore() (ports.ReportStore, error) {
	sc := a.Config.Store
	switch sc.Backend {
	case config.StoreNone:
		return nil, nil
	case config.StoreMemory:
		return memory.NewStore(), nil
	case config.StoreFile:
		dir := sc.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(a.Dir, dir)
		}
		return file.New(dir), nil
	case config.StoreRedis:
		store := redis.New(sc.Redis.Addr, sc.Redis.Password, sc.Redis.DB,
			redis.WithPrefix(sc.Redis.Prefix),
			redis.WithTTL(sc.Redis.TTL),
		)
		a.closers = append(a.closers, store.Close)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", sc.Backend)
	}
}

// RequireStore returns the store or an error naming the config key to set.
func (a *App) RequireStore() (ports.ReportStore, error) {
	if a.Store == nil {
		return nil, fmt.Errorf("no report store configured (set store.backend or --store)")
	}
	return a.Store, nil
}

// LoadMachine loads path, or the configured machine when path is empty.
func (a *App) LoadMachine(path string) (*domain.Machine, error) {
	if path == "" {
		path = a.Config.MachinePath(a.Dir)
	}
	return adapters.NewFileLoader(path).LoadMachine()
}

// Close releases store connections.
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
