package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/interview-evaluator/internal/config"
	"alfredoptarigan/interview-evaluator/internal/handlers"
	"alfredoptarigan/interview-evaluator/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Info("✅ Config loaded successfully")

	if cfg.Server.Env == "development" {
		log.SetLevel(log.LevelDebug)
	}

	// Load classifiers; the server never starts with a missing model
	classifiers, err := services.LoadClassifiers(context.Background(), cfg)
	if err != nil {
		log.Fatalf("❌ Failed to load classifiers: %v", err)
	}

	evaluatorService := services.NewEvaluatorService(classifiers)
	log.Info("✅ Evaluator service initialized")

	storageService := services.NewStorageService(cfg.Transcript.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}
	pdfParser := services.NewPDFParserService()

	// Initialize Handlers
	evaluateHandler := handlers.NewEvaluationHandler(
		evaluatorService,
		cfg.Evaluation.FailureStatus,
	)
	transcriptHandler := handlers.NewTranscriptHandler(
		evaluateHandler,
		storageService,
		pdfParser,
		cfg.Transcript.MaxFileSize,
	)
	log.Info("✅ Handlers initialized")

	app := NewApp(cfg, evaluateHandler, transcriptHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Errorf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Infof("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// NewApp builds the fiber app with middleware and routes.
func NewApp(
	cfg *config.Config,
	evaluateHandler *handlers.EvaluationHandler,
	transcriptHandler *handlers.TranscriptHandler,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Interview Answer Evaluator",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    int(cfg.Transcript.MaxFileSize) + 1<<20,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept",
		ExposeHeaders: handlers.HeaderEvaluationID,
	}))

	app.Get("/", handlers.HandleIndex)
	app.Post("/evaluate", evaluateHandler.HandleEvaluate)

	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/evaluate", evaluateHandler.HandleEvaluate)
	api.Post("/evaluate/transcript", transcriptHandler.HandleEvaluateTranscript)

	return app
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
