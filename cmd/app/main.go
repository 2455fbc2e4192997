package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"github.com/burenotti/go_wellness_backend/internal/adapter/api"
	"github.com/burenotti/go_wellness_backend/internal/adapter/events"
	"github.com/burenotti/go_wellness_backend/internal/adapter/storage"
	"github.com/burenotti/go_wellness_backend/internal/app/authapp"
	"github.com/burenotti/go_wellness_backend/internal/app/messagebus"
	metricservice "github.com/burenotti/go_wellness_backend/internal/app/metric"
	profileapp "github.com/burenotti/go_wellness_backend/internal/app/profile"
	"github.com/burenotti/go_wellness_backend/internal/app/unitofwork"
	wellnessapp "github.com/burenotti/go_wellness_backend/internal/app/wellness"
	"github.com/burenotti/go_wellness_backend/internal/config"
	"github.com/burenotti/go_wellness_backend/internal/domain"
	"github.com/burenotti/go_wellness_backend/internal/domain/auth"
	"github.com/burenotti/go_wellness_backend/internal/domain/wellness"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/leporo/sqlf"
	"golang.org/x/crypto/bcrypt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	logger := initLogger(cfg)

	loc, err := cfg.Location()
	if err != nil {
		panic(err)
	}

	bus := messagebus.New(logger)
	bus.Register(auth.EventCreated, func(event domain.Event) error {
		logger.Info("processed user created event")
		return nil
	})
	bus.Register(wellness.EventScoreCalculated, func(event domain.Event) error {
		e := event.(wellness.ScoreCalculatedEvent)
		logger.Debug("wellness score stored", "user_id", e.UserID, "category", e.Category)
		return nil
	})

	var publisher *events.KafkaPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		bus.Register(wellness.EventScoreCalculated, publisher.HandleScoreCalculated)
	}

	sqlf.SetDialect(sqlf.PostgreSQL)

	sqlDB, err := sql.Open("pgx", cfg.DB.DSN)
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}
	defer sqlDB.Close()
	db := &storage.DB{DB: sqlDB}

	authorizer := &authapp.Authorizer{
		Cost:             bcrypt.DefaultCost,
		Secret:           cfg.JWT.Secret,
		AccessTokenTTL:   cfg.JWT.AccessTokenTTL,
		AuthorizationTTL: cfg.JWT.RefreshTokenTTL,
	}

	authService := authapp.NewService(
		authorizer,
		unitofwork.New[*authapp.AtomicContext](db, authapp.NewAtomicContext, bus, logger),
		logger,
	)
	profileService := profileapp.New(
		logger,
		unitofwork.New[*profileapp.AtomicContext](db, profileapp.NewAtomicContext, bus, logger),
	)
	readingService := metricservice.New(
		logger,
		unitofwork.New[*metricservice.AtomicContext](db, metricservice.NewAtomicContext, bus, logger),
	)
	history := wellnessapp.NewHistory(
		unitofwork.New[*wellnessapp.AtomicContext](db, wellnessapp.NewAtomicContext, bus, logger),
	)

	orchestrator := wellnessapp.New(
		authapp.ContextIdentity{},
		profileService,
		readingService,
		history,
		wellness.NewCalculator(),
		logger,
		wellnessapp.Options{
			Location:    loc,
			HistoryDays: cfg.Wellness.HistoryDays,
			ReadTimeout: cfg.Wellness.ReadTimeout,
		},
	)

	server := api.NewServer(
		api.Addr(cfg.Server.Host, cfg.Server.Port),
		api.Logger(logger),
		api.Authorizer(authorizer),
		api.WithAuthService(authService),
		api.WithProfileService(profileService),
		api.WithReadingService(readingService),
		api.WithWellnessService(orchestrator),
	)

	ctx := context.Background()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error)

	go func() {
		defer close(errCh)
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server was not shutdown gracefully", "error", err)
		}
	case err := <-errCh:
		if err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server closed with unexpected error", "error", err)
			}
		}
	}

	bus.Close()
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close kafka writer", "error", err)
		}
	}
	logger.Info("server shutdown")
}

func initLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	switch cfg.App.Env {
	case config.Development:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			AddSource: true,
			Level:     slog.LevelDebug,
		})
	case config.Production:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			AddSource: false,
			Level:     slog.LevelInfo,
		})
	default:
		panic("invalid env")
	}

	return slog.New(handler)
}
