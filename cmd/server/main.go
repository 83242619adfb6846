package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anoa.com/edusphere/internal/bootstrap"
	"anoa.com/edusphere/internal/config"
	"anoa.com/edusphere/internal/jobs"
	searchService "anoa.com/edusphere/internal/modules/search/service"
	"anoa.com/edusphere/internal/server"
	"anoa.com/edusphere/internal/store"
	"anoa.com/edusphere/internal/store/memory"
	"anoa.com/edusphere/pkg/database"
	applogger "anoa.com/edusphere/pkg/logger"
	"anoa.com/edusphere/pkg/payment"
	"anoa.com/edusphere/pkg/storage"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := applogger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if cfg.DefaultJWTSecret {
		logger.Warn("JWT_SECRET not set, tokens are signed with the public development secret; set JWT_SECRET and APP_ENV for any shared deployment",
			zap.String("app_env", cfg.AppEnv))
	}

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	var repos store.Repositories
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		repos = memory.New()
	default:
		db, err := database.Open(cfg.Database)
		if err != nil {
			logger.Fatal("failed to connect database", zap.Error(err))
		}
		defer database.Close(db)

		if err := bootstrap.Migrate(db); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
		repos = store.NewGorm(db)
	}

	ctx := context.Background()
	if err := bootstrap.SeedAdmin(ctx, repos.Users, cfg.SeedAdminEmail); err != nil {
		logger.Fatal("failed to seed admin user", zap.Error(err))
	}

	deps := server.Deps{
		Config:       cfg,
		Repositories: repos,
		Redis:        newRedis(ctx, cfg.RedisURL, logger),
		Processor:    newProcessor(cfg, logger),
		Logger:       logger,
	}
	defer func() {
		if deps.Redis != nil {
			deps.Redis.Close()
		}
	}()

	scheduler := jobs.NewScheduler(5*time.Minute, logger)
	if cfg.MeiliSearchHost != "" {
		deps.Meili = meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))

		reindex := jobs.NewSearchReindex(searchService.NewClassSearch(deps.Meili, repos.Classes, logger), cfg.SearchReindexSchedule, logger)
		if err := scheduler.Register(reindex); err != nil {
			logger.Fatal("failed to register search reindex", zap.Error(err))
		}
		go func() {
			// catch up on anything indexed while the service was down
			_ = scheduler.RunNow(ctx, reindex.Name())
		}()
	} else {
		logger.Warn("MEILISEARCH_HOST not set, class search falls back to the database")
	}

	if cfg.CloudinaryURL != "" {
		imageStorage, err := storage.NewCloudinaryStorage(cfg.CloudinaryURL)
		if err != nil {
			logger.Fatal("failed to initialize cloudinary storage", zap.Error(err))
		}
		deps.ImageStorage = imageStorage
	} else {
		logger.Warn("CLOUDINARY_URL not set, image uploads are rejected")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewServer(deps).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	scheduler.Start()

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server exited with error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	scheduler.Stop(shutdownCtx)
}

func newRedis(ctx context.Context, url string, logger *zap.Logger) *redis.Client {
	if url == "" {
		logger.Warn("REDIS_URL not set, notifications and rate limiting are disabled")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Fatal("invalid REDIS_URL", zap.Error(err))
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect redis", zap.Error(err))
	}
	return client
}

func newProcessor(cfg *config.Config, logger *zap.Logger) payment.Processor {
	switch cfg.PaymentProvider {
	case config.PaymentProviderMidtrans:
		if cfg.MidtransServerKey != "" {
			return payment.NewMidtransProcessor(cfg.MidtransServerKey, cfg.MidtransProduction)
		}
	default:
		if cfg.StripeSecretKey != "" {
			return payment.NewStripeProcessor(cfg.StripeSecretKey)
		}
	}

	logger.Warn("payment provider key not set, checkout intents are unavailable", zap.String("provider", cfg.PaymentProvider))
	return nil
}
