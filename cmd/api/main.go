package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/skillbridge/internal/config"
	"alfredoptarigan/skillbridge/internal/handlers"
	"alfredoptarigan/skillbridge/internal/repositories"
	"alfredoptarigan/skillbridge/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService(cfg.Analysis.MinExtractedText)
	searchService := services.NewVideoSearchService(cfg)
	log.Println("✅ Services initialized successfully")

	// Initialize completion client
	completionClient, err := services.NewCompletionClient(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize completion client: %v", err)
	}
	log.Println("✅ Completion client initialized successfully")

	// Initialize analyzer
	analyzerService := services.NewAnalyzerService(
		reportRepo,
		docRepo,
		completionClient,
		pdfParser,
		cfg,
	)
	log.Println("✅ Analyzer service initialized")

	// Initialize worker
	worker := services.NewWorker(
		reportRepo,
		analyzerService,
		cfg.Worker.Concurrency,
	)

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		storageService,
		cfg.Storage.MaxFileSize,
	)
	analyzeHandler := handlers.NewAnalyzeHandler(
		reportRepo,
		docRepo,
		analyzerService,
		worker,
		cfg,
	)
	resultHandler := handlers.NewResultHandler(reportRepo)
	videosHandler := handlers.NewVideosHandler(reportRepo, searchService)
	exportHandler := handlers.NewExportHandler(reportRepo)
	healthHandler := handlers.NewHealthHandler(completionClient, searchService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "SkillBridge API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", healthHandler.HandleHealth)
	api.Get("/health/providers", healthHandler.HandleProviderHealth)

	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/analyze/text", analyzeHandler.HandleAnalyzeText)
	api.Get("/result/:id", resultHandler.HandleGetResult)
	api.Get("/result/:id/videos", videosHandler.HandleGetVideos)
	api.Get("/result/:id/export", exportHandler.HandleExport)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "SkillBridge API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"POST /api/v1/analyze",
				"POST /api/v1/analyze/text",
				"GET /api/v1/result/:id",
				"GET /api/v1/result/:id/videos",
				"GET /api/v1/result/:id/export",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
