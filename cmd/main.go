package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/shenikar/crisisflow/internal/config"
	"github.com/shenikar/crisisflow/internal/extraction"
	"github.com/shenikar/crisisflow/internal/geocoding"
	v1 "github.com/shenikar/crisisflow/internal/handler/http/v1"
	"github.com/shenikar/crisisflow/internal/handler/ws"
	"github.com/shenikar/crisisflow/internal/hub"
	"github.com/shenikar/crisisflow/internal/observability"
	"github.com/shenikar/crisisflow/internal/repository"
	"github.com/shenikar/crisisflow/internal/service"
	"github.com/shenikar/crisisflow/internal/storage"
	"github.com/shenikar/crisisflow/internal/stream"
	"github.com/shenikar/crisisflow/internal/webhook"
	"github.com/shenikar/crisisflow/pkg/logger"
	"github.com/shenikar/crisisflow/pkg/postgres"
	redisclient "github.com/shenikar/crisisflow/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/crisisflow/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title CrisisFlow API
// @version 1.0
// @description Disaster report ingestion, incident clustering and live notifications.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations", log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	// Инициализация репозиториев
	reportRepo := repository.NewReportRepository(dbpool)
	incidentRepo := repository.NewIncidentRepository(dbpool, redisClient)
	resourceRepo := repository.NewResourceRepository(dbpool)
	analyticsRepo := repository.NewAnalyticsRepository(dbpool)
	clusterStore := repository.NewClusterStore(dbpool, repository.DefaultLockTimeout)

	// Извлечение полей из текста
	extractor := newExtractor(cfg, metrics, log)

	// Геокодирование
	nominatim := geocoding.NewNominatimClient(
		cfg.GeocoderURL,
		cfg.GeocoderUserAgent,
		&http.Client{Timeout: cfg.GeocoderTimeout},
		rate.NewLimiter(rate.Every(time.Second), 1),
	)
	resolver := geocoding.NewResolver(
		geocoding.NewCachedGeocoder(nominatim, cfg.GeocoderCacheSize, metrics),
		cfg.GeocoderTimeout,
		metrics,
		log,
	)

	// Хранилище изображений (опционально)
	var images service.ImageStore
	if cfg.MinioEndpoint != "" {
		imageStore, err := storage.NewMinioImageStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		}, log)
		if err != nil {
			log.Fatalf("Failed to initialize image storage: %v", err)
		}
		images = imageStore
		log.WithField("bucket", cfg.MinioBucket).Info("Image storage enabled")
	}

	// Хаб уведомлений
	snapshots := service.NewSnapshotService(reportRepo, incidentRepo, cfg.SnapshotReports)
	notificationHub := hub.New(snapshots, hub.DefaultQueueSize, metrics, log)
	defer notificationHub.Close()

	sinks := []service.EventSink{{Name: "hub", Publisher: notificationHub}}

	// Kafka (опционально)
	if len(cfg.KafkaBrokers) > 0 {
		kafkaWriter := stream.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		defer func() {
			if err := kafkaWriter.Close(); err != nil {
				log.WithError(err).Warn("Failed to close Kafka writer")
			}
		}()
		sinks = append(sinks, service.EventSink{Name: "kafka", Publisher: kafkaWriter})
		log.WithField("topic", cfg.KafkaTopic).Info("Kafka event stream enabled")
	}

	// Инициализация издателя и воркера вебхуков
	var webhookDone <-chan struct{}
	if cfg.WebhookURL != "" {
		webhookQueue := webhook.NewRedisQueue(redisClient)
		sinks = append(sinks, service.EventSink{Name: "webhook", Publisher: webhook.NewPublisher(webhookQueue, clock)})
		webhookDone = webhook.NewWebhookWorker(webhookQueue, log, cfg).Start(ctx)
	}

	publisher := service.NewFanoutPublisher(log, metrics, sinks...)

	// Инициализация сервисов
	engine := service.NewClusteringEngine(cfg.ClusterRadiusMeters, clock)
	reportService := service.NewReportService(service.ReportServiceDeps{
		Reports:   reportRepo,
		Store:     clusterStore,
		Cache:     incidentRepo,
		Engine:    engine,
		Extractor: extractor,
		Geocoder:  resolver,
		Images:    images,
		Publisher: publisher,
		Clock:     clock,
		Metrics:   metrics,
		Logger:    log,
	})
	incidentService := service.NewIncidentService(incidentRepo, reportRepo, cfg.ClusterRadiusMeters, log)
	resourceService := service.NewResourceService(resourceRepo, clock, log)
	analyticsService := service.NewAnalyticsService(analyticsRepo, clock, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(v1.Services{
		Reports:   reportService,
		Incidents: incidentService,
		Resources: resourceService,
		Analytics: analyticsService,
	}, log, cfg)
	wsHandler := ws.NewHandler(notificationHub, log)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(v1.CORSMiddleware(cfg.CORSOrigins), v1.MetricsMiddleware(metrics))

	api := router.Group("/api/v1")
	api.Use(v1.RateLimitMiddleware(v1.NewRateLimiter(cfg.RateLimitPerMinute), log))
	handler.RegisterRoutes(api)
	wsHandler.RegisterRoutes(router)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	// Остановка воркера вебхуков
	cancel()
	if webhookDone != nil {
		select {
		case <-webhookDone:
		case <-shutdownCtx.Done():
			log.Warn("Webhook worker did not stop in time")
		}
	}

	log.Info("Server gracefully stopped")
}

// newExtractor регистрирует LLM-провайдеры, для которых заданы ключи
func newExtractor(cfg *config.Config, metrics *observability.Metrics, log *logrus.Logger) *extraction.Adapter {
	adapter := extraction.NewAdapter(cfg.ExtractionProvider, cfg.ExtractionTimeout, metrics, log)
	httpClient := &http.Client{Timeout: cfg.ExtractionTimeout}

	if cfg.OpenAIAPIKey != "" {
		adapter.Register("openai", extraction.NewLLMClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, httpClient))
	}
	if cfg.GeminiAPIKey != "" {
		adapter.Register("gemini", extraction.NewLLMClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, httpClient))
	}
	return adapter
}
