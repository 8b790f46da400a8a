package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bilgisen/resourcehub/internal/api"
	"github.com/bilgisen/resourcehub/internal/cache"
	"github.com/bilgisen/resourcehub/internal/cms"
	"github.com/bilgisen/resourcehub/internal/config"
	"github.com/bilgisen/resourcehub/internal/images"
	"github.com/bilgisen/resourcehub/internal/logger"
	"github.com/bilgisen/resourcehub/internal/middleware"
	"github.com/bilgisen/resourcehub/internal/normalize"
	"github.com/bilgisen/resourcehub/internal/resource"
	"github.com/bilgisen/resourcehub/internal/source"
	"github.com/bilgisen/resourcehub/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	output := "stdout"
	if cfg.LogFile != "" {
		output = cfg.LogFile
	}
	if err := logger.Init(logger.Config{
		Level:   cfg.LogLevel,
		Output:  output,
		Pretty:  cfg.IsDevelopment(),
		Service: "resourcehub",
	}); err != nil {
		panic(err)
	}

	if err := run(cfg); err != nil {
		logger.Fatal().Err(err).Msg("Application error")
	}
}

// run wires the service and blocks until it is shut down. Setup failures are
// returned rather than fatal so deferred cleanup always runs.
func run(cfg *config.Config) error {
	log := logger.Get()
	log.Info().Str("env", cfg.Env).Msg("Starting application...")

	fallback, err := storage.NewFallback(cfg.FallbackPath)
	if err != nil {
		return fmt.Errorf("failed to load fallback resources from %q: %w", cfg.FallbackPath, err)
	}
	log.Info().Int("resources", fallback.Len()).Msg("Loaded fallback resources")

	resolvers := images.Chain{}
	if cfg.R2Enabled() {
		r2, err := images.NewR2Resolver(context.Background(), images.R2Config{
			Endpoint:   cfg.R2Endpoint,
			AccountID:  cfg.R2AccountID,
			AccessKey:  cfg.R2AccessKey,
			SecretKey:  cfg.R2SecretKey,
			Bucket:     cfg.R2Bucket,
			PresignTTL: cfg.R2PresignTTL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize R2 image resolver: %w", err)
		}
		resolvers = append(resolvers, r2)
	}
	resolvers = append(resolvers, images.NewSanityResolver(cfg.SanityProjectID, cfg.SanityDataset))
	normalizer := normalize.NewNormalizer(resolvers)

	var resourceCache cache.Cache
	if cfg.CacheEnabled {
		redisClient, err := cache.NewRedisClient(cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return fmt.Errorf("failed to initialize Redis client: %w", err)
		}
		resourceCache = redisClient
		defer func() {
			log.Info().Msg("Closing Redis client...")
			if err := redisClient.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing Redis client")
			}
		}()
	}

	var chain source.Chain
	if cfg.CMSEnabled() {
		var live source.Source = source.NewCMSSource(cms.NewClient(cms.Config{
			ProjectID:  cfg.SanityProjectID,
			Dataset:    cfg.SanityDataset,
			APIVersion: cfg.SanityAPIVersion,
			Token:      cfg.SanityToken,
			UseCDN:     cfg.SanityUseCDN,
			Timeout:    cfg.CMSTimeout,
		}), normalizer)
		if resourceCache != nil {
			live = source.NewCachedSource(live, resourceCache, cfg.CacheTTL)
		}
		chain = append(chain, live)
	} else {
		log.Warn().Msg("SANITY_PROJECT_ID not set, serving fallback resources only")
	}
	chain = append(chain, source.NewStaticSource(fallback))

	handlers := api.NewHandlers(chain, normalizer, resourceCache, resource.DefaultTaxonomy)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: api.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	api.SetupRoutes(app, handlers, api.RouteConfig{
		AdminAPIKey:   cfg.AdminAPIKey,
		WebhookSecret: cfg.WebhookSecret,
	})

	listenErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-listenErr:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
	return nil
}
