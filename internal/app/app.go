package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/revisemaster-backend/internal/adapter/postgres"
	tokenrepo "github.com/heartmarshall/revisemaster-backend/internal/adapter/postgres/token"
	topicrepo "github.com/heartmarshall/revisemaster-backend/internal/adapter/postgres/topic"
	userrepo "github.com/heartmarshall/revisemaster-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/revisemaster-backend/internal/auth"
	"github.com/heartmarshall/revisemaster-backend/internal/config"
	authsvc "github.com/heartmarshall/revisemaster-backend/internal/service/auth"
	"github.com/heartmarshall/revisemaster-backend/internal/service/study"
	topicsvc "github.com/heartmarshall/revisemaster-backend/internal/service/topic"
	"github.com/heartmarshall/revisemaster-backend/internal/transport/middleware"
	"github.com/heartmarshall/revisemaster-backend/internal/transport/rest"
	"github.com/heartmarshall/revisemaster-backend/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services, and HTTP handlers, and runs
// the server until the context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	topics := topicrepo.New(pool)
	txManager := postgres.NewTxManager(pool)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authService := authsvc.NewService(logger, users, tokens, txManager, jwtManager, cfg.Auth)
	topicService := topicsvc.NewService(logger, topics, txManager, cfg.Topics)
	studyService := study.NewService(logger, topics)

	router := rest.NewRouter(
		rest.NewAuthHandler(authService, logger),
		rest.NewTopicHandler(topicService, logger),
		rest.NewStudyHandler(studyService, logger),
		rest.NewHealthHandler(pool, BuildVersion()),
	)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		rateLimiter.Limit(cfg.Server.RateLimitPerMin),
		middleware.Auth(authService),
	)(router)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
