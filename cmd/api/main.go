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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/waiver-api/internal/config"
	"github.com/yourusername/waiver-api/internal/handler"
	"github.com/yourusername/waiver-api/internal/middleware"
	pgRepo "github.com/yourusername/waiver-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/waiver-api/internal/repository/redis"
	s3Repo "github.com/yourusername/waiver-api/internal/repository/s3"
	"github.com/yourusername/waiver-api/internal/service"
	"github.com/yourusername/waiver-api/internal/service/document"
	"github.com/yourusername/waiver-api/pkg/database"
	"github.com/yourusername/waiver-api/pkg/pdf"
	"github.com/yourusername/waiver-api/pkg/storage"
)

// maxBodyBytes ограничивает тело запроса: data-URL подписи может быть крупным
const maxBodyBytes = 10 << 20 // 10MB

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis с использованием унифицированной конфигурации
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем S3-клиент объектного хранилища
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s3Client, err := storage.NewS3Client(ctx, cfg.Storage)
	if err != nil {
		log.Printf("Failed to initialize S3 client: %v", err)
		os.Exit(1)
	}

	// Инициализируем репозитории
	participantRepo := pgRepo.NewParticipantRepo(db)
	waiverRepo := pgRepo.NewWaiverRepo(db)
	auditRepo := pgRepo.NewAuditTrailRepo(db)
	documentRepo := pgRepo.NewWaiverDocumentRepo(db)
	objectStorage := s3Repo.NewObjectStorage(s3Client)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем генератор PDF (headless Chromium)
	pdfGenerator := pdf.NewGenerator(time.Duration(cfg.PDF.RenderTimeoutSec) * time.Second)

	// Инициализируем сервисы
	participantService := service.NewParticipantService(participantRepo)

	documentService := service.NewDocumentService(
		documentRepo,
		waiverRepo,
		auditRepo,
		objectStorage,
		cacheRepo,
		pdfGenerator,
		service.DocumentConfig{
			TemplatePath: cfg.PDF.TemplatePath,
			Title:        cfg.PDF.DocumentTitle,
			Organization: document.Organization{
				Name:    cfg.PDF.OrgName,
				Tagline: cfg.PDF.OrgTagline,
				Address: cfg.PDF.OrgAddress,
			},
			DefaultLocale:  cfg.PDF.DefaultLocale,
			DefaultVersion: cfg.PDF.ContentVersion,
			SignedURLTTL:   time.Duration(cfg.Storage.SignedURLTTLSec) * time.Second,
			CacheTTL:       time.Duration(cfg.PDF.CacheTTLSec) * time.Second,
		},
	)

	waiverService := service.NewWaiverService(
		participantService,
		waiverRepo,
		auditRepo,
		objectStorage,
		documentService,
		service.WaiverConfig{
			SignaturesBucket: cfg.Storage.SignaturesBucket,
			DocumentsBucket:  cfg.Storage.DocumentsBucket,
			DefaultLocale:    cfg.PDF.DefaultLocale,
			DefaultVersion:   cfg.PDF.ContentVersion,
		},
	)

	// Инициализируем обработчики
	waiverHandler := handler.NewWaiverHandler(waiverService, documentService)
	adminHandler := handler.NewAdminHandler(documentService)
	healthHandler := handler.NewHealthHandler(db)

	// Инициализируем middleware
	adminMiddleware := middleware.NewAdminMiddleware(cfg.Admin)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	isProduction := gin.Mode() == gin.ReleaseMode

	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		// Production: не доверять прокси-заголовкам
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "x-admin-key"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", "X-Waiver-Locale", "X-Waiver-Version"},
		MaxAge:        12 * time.Hour,
	}
	if cfg.CORS.AllowedOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.CORS.AllowedOrigin}
	}
	router.Use(cors.New(corsConfig))

	// Ограничение размера тела запроса
	router.Use(func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		c.Next()
	})

	// Health-чеки
	router.GET("/health", healthHandler.Health)
	router.GET("/health/deep", healthHandler.DeepHealth)

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		waivers := api.Group("/waivers")
		{
			waivers.POST("/submit", rateLimiter.LimitByIP(middleware.SubmitRateLimitConfig()), waiverHandler.Submit)

			waiverWithID := waivers.Group("/:id")
			waiverWithID.Use(middleware.ExtractUUIDParam("id", "waiverID"))
			{
				// PDF отдается только с админ-ключом
				waiverWithID.GET("/pdf", adminMiddleware.RequireAdminKey(), waiverHandler.GetPDF)
			}
		}

		admin := api.Group("/admin")
		admin.Use(rateLimiter.LimitByIP(middleware.AdminRateLimitConfig()))
		admin.Use(adminMiddleware.RequireAdminKey())
		{
			adminWaivers := admin.Group("/waivers/:id")
			adminWaivers.Use(middleware.ExtractUUIDParam("id", "waiverID"))
			{
				adminWaivers.GET("", adminHandler.GetWaiverMetadata)
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// После получения сигнала SIGINT или SIGTERM вызываем cancel() для завершения горутин
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
