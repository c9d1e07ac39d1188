package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/minhaalawais/fos-hrdd-software/internal/auth"
	"github.com/minhaalawais/fos-hrdd-software/internal/client"
	"github.com/minhaalawais/fos-hrdd-software/internal/config"
	"github.com/minhaalawais/fos-hrdd-software/internal/db"
	"github.com/minhaalawais/fos-hrdd-software/internal/draft"
	httphandler "github.com/minhaalawais/fos-hrdd-software/internal/http"
	"github.com/minhaalawais/fos-hrdd-software/internal/http/middleware"
	"github.com/minhaalawais/fos-hrdd-software/internal/logger"
	"github.com/minhaalawais/fos-hrdd-software/internal/repository"
	"github.com/minhaalawais/fos-hrdd-software/internal/service"
	"github.com/minhaalawais/fos-hrdd-software/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	var drafts draft.Store = draft.NewMemory()
	if cfg.DB.DSN != "" {
		database, err := db.New(cfg, appLogger)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to connect database")
		}
		drafts = repository.NewDraftRepository(database)
	} else {
		appLogger.Warn().Msg("DB_DSN not set, drafts are kept in memory")
	}

	var sessions session.Store = session.NewMemory()
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		sessions = session.NewRedis(redisClient)
	} else {
		appLogger.Warn().Msg("REDIS_ADDR not set, sessions are kept in memory")
	}

	portal := client.NewPortalClient(cfg)

	issuer := auth.NewIssuer(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL)
	tokenParser := auth.NewParser(cfg.Auth.SessionSecret)

	authService := service.NewAuthService(portal, sessions, issuer, cfg.Auth.SessionTTL)
	dashboardService := service.NewDashboardService(portal, drafts, appLogger)
	routingService := service.NewRoutingService(portal)
	notificationService := service.NewNotificationService(portal, appLogger)

	handler := httphandler.NewHandler(
		authService,
		dashboardService,
		routingService,
		notificationService,
		sessions,
		appLogger,
	)
	authMiddleware := middleware.Auth(tokenParser, sessions)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Str("upstream", cfg.Upstream.BaseURL).Msg("starting grievance dashboard")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
