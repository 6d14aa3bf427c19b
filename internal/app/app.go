// ABOUTME: Dependency graph for the movierama client built with fx
// ABOUTME: Provides logger, credential store, API client and page cache with lifecycle hooks

package app

import (
	"context"
	"fmt"

	"github.com/johnys190/movierama/internal/cache"
	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/config"
	"github.com/johnys190/movierama/internal/constants"
	"github.com/johnys190/movierama/internal/credentials"
	"github.com/johnys190/movierama/internal/logger"
	"github.com/johnys190/movierama/internal/notify"
	"github.com/johnys190/movierama/internal/session"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Options tune process-level wiring.
type Options struct {
	// Verbose logs at debug level to stderr instead of the debug log file
	Verbose bool
	// Stderr keeps the configured level but logs to stderr; CLI commands
	// set it since they do not own the terminal screen
	Stderr bool
}

// PageCache caches movie listing pages by request key.
type PageCache = cache.Cache[*client.MoviePage]

// App holds the constructed dependencies.
type App struct {
	Config      *config.Config
	Logger      *zap.Logger
	Client      *client.Client
	Credentials credentials.Store
	Pages       *PageCache

	fx *fx.App
}

// Module provides every shared dependency given a *config.Config and Options.
var Module = fx.Options(
	fx.Provide(
		newLogger,
		newCredentialStore,
		newClient,
		newPageCache,
	),
)

// New builds and starts the graph.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	a := &App{}
	fxApp := fx.New(
		fx.Supply(cfg, opts),
		Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Populate(&a.Config, &a.Logger, &a.Client, &a.Credentials, &a.Pages),
	)
	if err := fxApp.Err(); err != nil {
		return nil, fmt.Errorf("failed to wire application: %w", err)
	}
	if err := fxApp.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start application: %w", err)
	}
	a.fx = fxApp
	return a, nil
}

// Close runs stop hooks: cache janitor, credential store, logger sync.
func (a *App) Close(ctx context.Context) error {
	if a.fx == nil {
		return nil
	}
	return a.fx.Stop(ctx)
}

// NewSession builds a session controller that reports through sink and
// navigates through nav.
func (a *App) NewSession(sink notify.Sink, nav session.Navigator) *session.Controller {
	return session.NewController(session.Deps{
		Users:       a.Client,
		Credentials: a.Credentials,
		Notifier:    sink,
		Navigator:   nav,
		Logger:      a.Logger,
	})
}

// NotifyConfig converts the loaded settings into the toast configuration.
func (a *App) NotifyConfig() notify.Config {
	n := a.Config.Notifications
	return notify.Config{
		Placement: notify.Placement(n.Placement),
		Offset:    n.Offset,
		Duration:  n.Duration,
	}
}

func newLogger(cfg *config.Config, opts Options, lc fx.Lifecycle) (*zap.Logger, error) {
	lcfg := logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Path: cfg.LogPath()}
	if opts.Verbose {
		lcfg.Level = "debug"
	}
	if opts.Verbose || opts.Stderr {
		lcfg.Path = ""
	}

	log, err := logger.New(lcfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			// Sync on a terminal fd reports EINVAL on some platforms
			_ = log.Sync()
			return nil
		},
	})
	return log, nil
}

func newCredentialStore(cfg *config.Config, lc fx.Lifecycle, log *zap.Logger) (credentials.Store, error) {
	switch cfg.CredentialStore {
	case config.StoreRedis:
		store, err := credentials.DialRedis(context.Background(), &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return store.Close() },
		})
		log.Debug("using redis credential store", zap.String("addr", cfg.RedisAddr))
		return store, nil
	default:
		store := credentials.NewFileStore(cfg.ConfigDir)
		log.Debug("using file credential store", zap.String("path", store.Path()))
		return store, nil
	}
}

func newClient(cfg *config.Config, store credentials.Store, log *zap.Logger) *client.Client {
	return client.New(cfg.APIURL, client.Options{
		AuthURL: cfg.AuthURL,
		Timeout: cfg.RequestTimeout,
		Tokens:  credentials.Keyed{Store: store, Key: constants.AccessToken},
		Logger:  log,
	})
}

func newPageCache(cfg *config.Config, lc fx.Lifecycle, log *zap.Logger) *PageCache {
	pages := cache.New[*client.MoviePage](cfg.CacheTTL, log)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pages.Close()
			return nil
		},
	})
	return pages
}
