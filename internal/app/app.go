// Package app wires the credential cache, API client, session manager and
// task store from configuration.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"tasktracker/internal/api"
	"tasktracker/internal/cache"
	"tasktracker/internal/config"
	"tasktracker/internal/session"
	"tasktracker/internal/tasks"
)

// rateBurst is the limiter burst used when rate_limit is configured.
const rateBurst = 5

// App is one assembled client core.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Client  api.Client
	Cache   cache.Cache
	Session *session.Manager
	Tasks   *tasks.Store

	closers []func() error
}

// Option customizes New.
type Option func(*options)

type options struct {
	cache  cache.Cache
	client api.Client
}

// WithCache uses c instead of the backend selected by the config.
func WithCache(c cache.Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithClient uses c instead of an HTTP client for cfg.ServerURL.
func WithClient(c api.Client) Option {
	return func(o *options) { o.client = c }
}

// New builds an App. The caller must Close it.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{Config: cfg, Logger: logger}

	c := o.cache
	if c == nil {
		var err error
		c, err = a.openCache()
		if err != nil {
			return nil, err
		}
	}
	a.Cache = c

	client := o.client
	if client == nil {
		client = api.NewHTTPClient(cfg.ServerURL,
			api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
			api.WithRateLimit(cfg.RateLimit, rateBurst),
			api.WithLogger(logger),
		)
	}
	a.Client = client

	a.Session = session.NewManager(client, c, logger)
	a.Tasks = tasks.NewStore(client, c, logger)

	logger.Debug("app ready",
		slog.String("server", cfg.ServerURL),
		slog.String("cache", cfg.Cache),
		slog.String("dir", cfg.Dir))
	return a, nil
}

func (a *App) openCache() (cache.Cache, error) {
	switch a.Config.Cache {
	case config.CacheSQLite:
		if err := a.Config.EnsureDir(); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		c, err := cache.OpenSQLite(a.Config.CacheDBPath())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, c.Close)
		return c, nil
	case config.CacheFile, "":
		return cache.NewFileCache(a.Config.CredentialsPath()), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", a.Config.Cache)
	}
}

// Close releases the cache backend.
func (a *App) Close() error {
	var errs []error
	for _, fn := range a.closers {
		errs = append(errs, fn())
	}
	a.closers = nil
	return errors.Join(errs...)
}
