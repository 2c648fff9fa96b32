package main

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jcgamayo/pcbulacan-golang/internal/ai"
	"github.com/jcgamayo/pcbulacan-golang/internal/config"
	"github.com/jcgamayo/pcbulacan-golang/internal/database"
	"github.com/jcgamayo/pcbulacan-golang/internal/email"
	"github.com/jcgamayo/pcbulacan-golang/internal/handlers"
	"github.com/jcgamayo/pcbulacan-golang/internal/notify"
	"github.com/jcgamayo/pcbulacan-golang/internal/routes"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}
	cfg := config.Load()

	// 1. --- Logger ---
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 2. --- Database Connection ---
	db, err := database.OpenDB()
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// 3. --- Redis (optional) ---
	// Used only to dedup low-stock staff alerts; without it the notifier
	// falls back to a query against the notifications table.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable, low-stock dedup falls back to DB", zap.Error(err))
			rdb = nil
		}
		cancel()
	}

	// 4. --- Gemini (optional) ---
	// The FAQ chatbot works without it; unmatched questions just get the
	// canned help reply instead of a generated answer.
	var aiService *ai.AIService
	if cfg.GeminiAPIKey != "" {
		aiService, err = ai.NewAIService(cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn("Failed to initialize Gemini, chat fallback disabled", zap.Error(err))
			aiService = nil
		}
	}

	// --- Application Setup ---
	mailer := email.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername,
		cfg.SMTPPassword, cfg.SMTPFrom, logger)
	notifier := notify.New(db, rdb, logger)

	app := &handlers.Handlers{
		DB:        db,
		Logger:    logger,
		Mailer:    mailer,
		Notifier:  notifier,
		AIService: aiService,
	}

	// --- 5. Background Worker (Cron) ---
	// Rolls scheduled/expired deal statuses and reconciles deal usage
	// counters every 5 minutes.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		logger.Info("Background worker started: deal maintenance every 5 minutes")

		for range ticker.C {
			app.RunDealMaintenance()
		}
	}()

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	logger.Info("Starting PCBulacan API server", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
