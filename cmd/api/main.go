package main

import (
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

	"smartcv/matcher/internal/config"
	"smartcv/matcher/internal/handlers"
	"smartcv/matcher/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Load rule and role tables; both are immutable after this point
	ruleTable, err := services.LoadRuleTable(cfg.Data.RulesPath)
	if err != nil {
		log.Fatalf("❌ Failed to load rule table: %v", err)
	}
	roleCatalog, err := services.LoadRoleCatalog(cfg.Data.RolesPath)
	if err != nil {
		log.Fatalf("❌ Failed to load role catalog: %v", err)
	}
	log.Printf("✅ Loaded %d professions and %d role keywords\n",
		len(ruleTable.Professions()), len(roleCatalog.Entries()))

	// Initialize services
	norm := services.NewNormalizer(cfg.Matcher.FuzzyThreshold)
	extractor := services.NewExtractorService(cfg.Matcher.PDFPageLimit)

	scorer, err := buildScorer(cfg, norm)
	if err != nil {
		log.Fatalf("❌ Failed to initialize scorer: %v", err)
	}
	log.Printf("✅ Scorer initialized (strategy: %s)\n", scorer.Name())

	suggester := services.NewSuggesterService(
		norm,
		ruleTable,
		cfg.Matcher.MaxSuggestions,
		cfg.Matcher.MaxProfessionSuggestions,
		cfg.Matcher.FallbackOnEmpty,
	)
	roleLookup := services.NewRoleLookupService(norm, roleCatalog, cfg.Matcher.MaxRoles)

	analyzer := services.NewAnalyzerService(
		extractor,
		scorer,
		suggester,
		roleLookup,
		cfg.Matcher.MaxTextLength,
	)
	log.Println("✅ Analyzer service initialized")

	// Initialize handlers
	matchHandler := handlers.NewMatchHandler(analyzer, ruleTable, cfg.Matcher.MaxFileSize)
	pageHandler := handlers.NewPageHandler(analyzer, ruleTable, cfg.Matcher.MaxFileSize)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Smart CV Matcher",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Matcher.MaxFileSize),
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
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	app.Get("/", pageHandler.HandleIndex)
	app.Post("/", pageHandler.HandleSubmit)

	api := app.Group("/api/v1")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})
	api.Post("/match", matchHandler.HandleMatch)
	api.Get("/professions", matchHandler.HandleProfessions)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
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

func buildScorer(cfg *config.Config, norm *services.Normalizer) (services.Scorer, error) {
	switch cfg.Matcher.Strategy {
	case "token_set":
		return services.NewTokenSetScorer(norm), nil
	case "tfidf":
		return services.NewTFIDFScorer(norm), nil
	case "embedding":
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("embedding strategy requires GEMINI_API_KEY")
		}
		embedder, err := services.NewGeminiEmbedder(cfg.Gemini.APIKey, cfg.Gemini.EmbedCacheSize)
		if err != nil {
			return nil, err
		}
		return services.NewEmbeddingScorer(norm, embedder), nil
	default:
		return nil, fmt.Errorf("unknown scorer strategy %q", cfg.Matcher.Strategy)
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
