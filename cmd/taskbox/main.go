package main

import (
	"context"
	"log/slog"
	"os"

	"taskbox/config"
	"taskbox/internal/delivery"
	"taskbox/internal/delivery/http"
	"taskbox/internal/delivery/http/middleware"
	"taskbox/internal/delivery/http/router/handler"
	"taskbox/internal/domain/service"
	"taskbox/internal/infra/auth"
	logs "taskbox/internal/infra/log"
	"taskbox/internal/infra/persistence/postgres"
	"taskbox/internal/infra/session"
	"taskbox/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	// The config decides the auth strategy, so it is loaded before the Fx
	// graph is assembled.
	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	fx.New(
		fx.Supply(cfg),
		injectInfra(),
		injectRepo(),
		injectService(cfg),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewTodoRepository,
			postgres.NewTransactionManager,
		),
	)
}

// injectService wires exactly one IdentityProvider implementation. The
// strategy is fixed for the lifetime of the process: the session branch is
// the only one that ever touches Redis, and the token branch the only one
// that needs the signing secret decoded.
func injectService(cfg *config.Config) fx.Option {
	providers := []any{
		auth.NewBcryptHasher,
		service.NewOwnershipGuard,
	}

	if cfg.Auth.Strategy == config.StrategySession {
		providers = append(providers,
			session.NewClient,
			session.NewStore,
			auth.NewSessionProvider,
		)
	} else {
		providers = append(providers,
			auth.NewJWTService,
			auth.NewTokenProvider,
		)
	}

	return fx.Provide(providers...)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewTodoService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestContextMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAccountHandler,
			handler.NewTodoHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
