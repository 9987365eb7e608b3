package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"boardgame-tracker/handlers"
	"boardgame-tracker/models"
	"boardgame-tracker/services"
	"boardgame-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultFirstTrackedYear = 2023

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	// Victory points and rates render as JSON numbers, as the API clients
	// expect.
	decimal.MarshalJSONWithoutQuotes = true

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // 20MB, spreadsheets included
	})

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOriginsString,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, X-Requested-With",
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Player{},
		&models.Game{},
		&models.GamePlay{},
		&models.PlayResult{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	firstTrackedYear := defaultFirstTrackedYear
	if v := os.Getenv("FIRST_TRACKED_YEAR"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			log.Fatal("FIRST_TRACKED_YEAR must be a year, got: ", v)
		}
		firstTrackedYear = year
	}

	playerService := services.NewPlayerService(db)
	gameService := services.NewGameService(db)
	playService := services.NewPlayService(db)
	rankingService := services.NewRankingService(db, firstTrackedYear, time.Now)
	importService := services.NewImportService(db)

	playService.StartAuditScheduler()

	handlers.SetupPlayerRoutes(app, playerService)
	handlers.SetupGameRoutes(app, gameService)
	handlers.SetupPlayRoutes(app, playService, importService)
	handlers.SetupRankingRoutes(app, rankingService)

	app.Static("/uploads", "./uploads")

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Printf("✅ Victory-point audit scheduler running (daily)")
	log.Printf("✅ Yearly rankings tracked from %d", firstTrackedYear)
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
