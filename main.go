package main

import (
	"context"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/Conceptual-Machines/songsmith-api/internal/api"
	"github.com/Conceptual-Machines/songsmith-api/internal/api/handlers"
	"github.com/Conceptual-Machines/songsmith-api/internal/composer"
	"github.com/Conceptual-Machines/songsmith-api/internal/config"
	"github.com/Conceptual-Machines/songsmith-api/internal/database"
	"github.com/Conceptual-Machines/songsmith-api/internal/llm"
	"github.com/Conceptual-Machines/songsmith-api/internal/metrics"
	"github.com/Conceptual-Machines/songsmith-api/internal/observability"
	"github.com/Conceptual-Machines/songsmith-api/internal/services"
	"github.com/Conceptual-Machines/songsmith-api/internal/storage"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "songsmith-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0, // 100% sampling for now, adjust based on volume
			EnableLogs:       true,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
					event.Request.QueryString = redactShareToken(event.Request.QueryString)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	observability.InitializeLangfuse(ctx, cfg)

	// History is optional; Connect returns nil without DATABASE_URL
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to run migrations:", err)
	}

	store, storeName := openStore(cfg)

	cwMetrics, err := metrics.NewClient(ctx, cfg.Environment, cfg.MetricsNamespace, cfg.MetricsEnabled)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics disabled: %v", err)
	}
	sentryMetrics := metrics.NewSentryMetrics()

	share := services.NewShareService(cfg.ShareSecret, cfg.ShareLinkTTL)
	compositions := services.NewCompositionService(services.CompositionOptions{
		Composer:      composer.New(),
		Store:         store,
		History:       services.NewHistoryService(db),
		Share:         share,
		CloudWatch:    cwMetrics,
		SentryMetrics: sentryMetrics,
		NoteCeiling:   cfg.NoteCeiling,
		BaseURL:       cfg.PublicBaseURL,
	})

	providers := llm.NewProviderFactory(cfg.OpenAIAPIKey, cfg.GeminiAPIKey)
	interpreter := services.NewInterpretService(providers, cfg.InterpreterModel, cfg.NoteCeiling, cwMetrics, sentryMetrics)

	if cfg.Environment == environmentProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(cfg, api.Dependencies{
		Compositions:  compositions,
		Interpreter:   interpreter,
		Share:         share,
		CloudWatch:    cwMetrics,
		SentryMetrics: sentryMetrics,
		Features: handlers.Features{
			History:     cfg.HistoryEnabled(),
			Storage:     storeName,
			Sharing:     cfg.SharingEnabled(),
			Interpreter: providers.Enabled(),
			Metrics:     cwMetrics.Enabled(),
		},
	}, GetVersion())

	log.Printf("🚀 Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

// openStore picks S3 when a bucket is configured and falls back to memory
func openStore(cfg *config.Config) (storage.Store, string) {
	if cfg.S3Bucket == "" {
		log.Printf("⚠️  S3_BUCKET not set, keeping up to %d compositions in memory", cfg.MemoryStoreEntries)
		return storage.NewMemoryStore(cfg.MemoryStoreEntries, cfg.ShareLinkTTL), "memory"
	}

	store, err := storage.NewS3Store(cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	if err != nil {
		sentry.CaptureException(err)
		log.Printf("⚠️  S3 unavailable, keeping compositions in memory: %v", err)
		return storage.NewMemoryStore(cfg.MemoryStoreEntries, cfg.ShareLinkTTL), "memory"
	}
	log.Printf("✅ Storing compositions in s3://%s/%s", cfg.S3Bucket, cfg.S3Prefix)
	return store, store.Name()
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}

// redactShareToken hides download tokens, which grant access on their own
func redactShareToken(query string) string {
	values, err := url.ParseQuery(query)
	if err != nil || !values.Has("token") {
		return query
	}
	values.Set("token", "[REDACTED]")
	return values.Encode()
}
