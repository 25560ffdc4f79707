package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/brightpath/authkit/modules/identity"
	"github.com/brightpath/authkit/pkg/auth"
	authmemory "github.com/brightpath/authkit/pkg/authstore/memory"
	authmongo "github.com/brightpath/authkit/pkg/authstore/mongodb"
	authpg "github.com/brightpath/authkit/pkg/authstore/postgres"
	"github.com/brightpath/authkit/pkg/config"
	"github.com/brightpath/authkit/pkg/httpserver"
	"github.com/brightpath/authkit/pkg/logger"
	"github.com/brightpath/authkit/pkg/mongo"
	"github.com/brightpath/authkit/pkg/oauthstate"
	"github.com/brightpath/authkit/pkg/pg"
	"github.com/brightpath/authkit/pkg/redis"
	"github.com/brightpath/authkit/pkg/sessiontoken"
)

type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"APP_SERVICE_NAME" envDefault:"authkit"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// StoreDriver selects the user store backend: mongo, postgres or memory.
	StoreDriver string `env:"AUTH_STORE_DRIVER" envDefault:"mongo"`

	// StateStore selects the OAuth state backend: redis or memory.
	StateStore string `env:"AUTH_STATE_STORE" envDefault:"redis"`

	SessionSigningKey string        `env:"SESSION_SIGNING_KEY,required"`
	SessionIssuer     string        `env:"SESSION_ISSUER" envDefault:"authkit"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	FailOpenLinking bool `env:"AUTH_FAIL_OPEN_LINKING" envDefault:"true"`
}

func main() {
	ctx := context.Background()

	var appCfg appConfig
	config.MustLoad(&appCfg)

	log := newLogger(appCfg)

	if err := run(ctx, appCfg, log); err != nil {
		log.ErrorContext(ctx, "server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg appConfig, log *slog.Logger) error {
	store, healthchecks, err := newUserStore(ctx, appCfg, log)
	if err != nil {
		return err
	}

	states, stateHealth, err := newStateStore(ctx, appCfg)
	if err != nil {
		return err
	}
	healthchecks = append(healthchecks, stateHealth...)

	authOpts := []auth.Option{
		auth.WithLogger(log.With(logger.Component("auth"))),
		auth.WithEmailClient(auth.NewGitHubEmailClient()),
		auth.WithFailOpenLinking(appCfg.FailOpenLinking),
	}
	svc := auth.New(store, authOpts...)

	tokens, err := sessiontoken.New(appCfg.SessionSigningKey, appCfg.SessionIssuer, appCfg.SessionTTL)
	if err != nil {
		return err
	}

	var identityCfg identity.Config
	config.MustLoad(&identityCfg)

	handler := identity.NewHandler(
		identityCfg,
		svc,
		tokens,
		states,
		newAdapters(log),
		identity.WithHandlerLogger(log.With(logger.Component("identity"))),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/health", httpserver.HealthCheckHandler(log))
	r.Get("/ready", httpserver.HealthCheckHandler(log, healthchecks...))
	r.Mount("/auth", identity.Router(handler))

	var srvCfg httpserver.Config
	config.MustLoad(&srvCfg)

	return httpserver.New(srvCfg, httpserver.WithLogger(log)).Run(ctx, r)
}

func newLogger(appCfg appConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(appCfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := []logger.Option{
		logger.WithLevel(level),
		logger.WithService(appCfg.ServiceName),
	}
	if appCfg.Env == "development" {
		opts = append(opts, logger.WithTextFormatter())
	}
	return logger.New(opts...)
}

func newUserStore(ctx context.Context, appCfg appConfig, log *slog.Logger) (auth.UserStore, []func(context.Context) error, error) {
	switch appCfg.StoreDriver {
	case "postgres":
		var pgCfg pg.Config
		config.MustLoad(&pgCfg)

		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.Migrate(ctx, pool, pgCfg, authpg.Migrations(), "migrations", log); err != nil {
			return nil, nil, err
		}
		return authpg.New(pool), []func(context.Context) error{pg.Healthcheck(pool)}, nil

	case "memory":
		return authmemory.New(), nil, nil

	default: // mongo
		var mongoCfg mongo.Config
		config.MustLoad(&mongoCfg)

		db, err := mongo.NewWithDatabase(ctx, mongoCfg)
		if err != nil {
			return nil, nil, err
		}
		store, err := authmongo.New(ctx, db)
		if err != nil {
			return nil, nil, err
		}
		return store, []func(context.Context) error{mongo.Healthcheck(db.Client())}, nil
	}
}

func newStateStore(ctx context.Context, appCfg appConfig) (oauthstate.Store, []func(context.Context) error, error) {
	if appCfg.StateStore == "memory" {
		return oauthstate.NewMemoryStore(), nil, nil
	}

	var redisCfg redis.Config
	config.MustLoad(&redisCfg)

	client, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return nil, nil, err
	}
	return oauthstate.NewRedisStore(client), []func(context.Context) error{redis.Healthcheck(client)}, nil
}

// newAdapters builds the OAuth provider adapters. A provider with no
// client id configured is left unmounted.
func newAdapters(log *slog.Logger) []auth.ProviderAdapter {
	var adapters []auth.ProviderAdapter

	var githubCfg auth.GitHubOAuthConfig
	config.MustLoad(&githubCfg)
	if githubCfg.ClientID != "" {
		adapters = append(adapters, auth.NewGitHubAdapter(githubCfg))
	} else {
		log.Info("github oauth disabled, no client id configured")
	}

	var googleCfg auth.GoogleOAuthConfig
	config.MustLoad(&googleCfg)
	if googleCfg.ClientID != "" {
		adapters = append(adapters, auth.NewGoogleAdapter(googleCfg))
	} else {
		log.Info("google oauth disabled, no client id configured")
	}

	return adapters
}
