package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/sourcegraph/conc/pool"

	"github.com/adhub/adhub/backend/config"
	"github.com/adhub/adhub/backend/internal/api"
	"github.com/adhub/adhub/backend/internal/database"
	"github.com/adhub/adhub/backend/internal/logging"
	"github.com/adhub/adhub/backend/internal/middleware"
	"github.com/adhub/adhub/backend/internal/router"
	"github.com/adhub/adhub/backend/internal/server"
	"github.com/adhub/adhub/backend/internal/service"
)

func main() {
	bootLogger := newBootLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger.Error("failed to load config", "error", err)
		_ = bootLogger.Sync()
		os.Exit(1)
	}

	logger := logging.NewJSON(logging.ParseLevel(cfg.LogLevel))
	logging.SetDefault(logger)
	defer logger.Sync()

	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// newBootLogger installs the process logger used until the config is loaded,
// at the level from LOG_LEVEL.
func newBootLogger() *logging.Logger {
	logger := logging.NewJSON(logging.ParseLevel(os.Getenv("LOG_LEVEL")))
	logging.SetDefault(logger)
	return logger
}

func run(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	db, err := database.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB, database.DefaultMigrationsDir); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	// Redis backs sign-in state and rate limits. Without it sign-in state
	// lives in memory and limits are off.
	redisClient, err := database.NewRedisClient(ctx, cfg, logger)
	if err != nil {
		logger.Warn("redis unavailable, continuing without it", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	s3, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "configure object storage")
	}

	profiles := service.NewProfileService(db.DB, s3, logger)
	travel := service.NewTravelService(db.DB, nil, logger)

	verifier, err := service.NewWebhookVerifier(cfg.WebhookSecret)
	if err != nil {
		return errors.Wrap(err, "configure webhook verifier")
	}

	var states service.StateStore = service.NewMemoryStateStore()
	if redisClient != nil {
		states = service.NewRedisStateStore(redisClient)
	}

	provider := service.NewOAuthProvider(service.OAuthProviderConfig{
		ClientID:     cfg.OAuthClientID,
		ClientSecret: cfg.OAuthClientSecret,
		AuthURL:      cfg.OAuthAuthURL,
		TokenURL:     cfg.OAuthTokenURL,
		UserInfoURL:  cfg.OAuthUserInfoURL,
		RedirectURL:  cfg.OAuthRedirectURL,
	})
	issuer := service.NewSessionIssuer(cfg.JWTSecret, cfg.SessionTTL)

	svc := api.Services{
		Auth:      service.NewAuthService(profiles, provider, states, issuer, logger),
		Profiles:  profiles,
		Photos:    service.NewPhotoService(s3, profiles, logger),
		Travel:    travel,
		Directory: service.NewDirectoryService(db.DB, travel, nil, logger),
		Jobs:      service.NewJobService(db.DB, nil, logger),
		Webhooks:  service.NewWebhookService(verifier, profiles, logger),
	}

	var limiters api.Limiters
	if redisClient != nil {
		limiters = api.Limiters{
			JobCreation: middleware.NewJobCreationRateLimiter(redisClient, logger),
			Application: middleware.NewApplicationRateLimiter(redisClient, logger),
			PhotoUpload: middleware.NewPhotoUploadRateLimiter(redisClient, logger),
		}
	}

	handler := router.SetupRouter(logger, cfg.CORSOrigins, svc, api.Options{
		FrontendURL: cfg.FrontendURL,
		Cookie:      api.CookieConfig{Secure: cfg.CookieSecure()},
		Limiters:    limiters,
		DB:          db,
	})
	srv := server.New(cfg.ServerAddr(), handler, logger)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(srv.Run)
	p.Go(func(ctx context.Context) error {
		return server.RunSweeper(ctx, travel, cfg.SweepInterval, logger)
	})
	return p.Wait()
}
