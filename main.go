package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"mission-ledger-system/handlers"
	"mission-ledger-system/middleware"
	"mission-ledger-system/services"
	"mission-ledger-system/storage"
	"mission-ledger-system/utils"
	"mission-ledger-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("⚠️  No .env file found, reading environment variables directly")
	}

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(lvl)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // icons only, 10MB is plenty
	})

	// 🔐 GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		logrus.Info("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-User-ID, X-User-Roles, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logrus.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		logrus.Fatal("failed to initialize R2 client: ", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatal("failed to connect to database: ", err)
	}

	store := storage.NewGormStore(db)
	if err := store.AutoMigrate(); err != nil {
		logrus.Fatal("failed to migrate database: ", err)
	}

	rewardService := services.NewRewardService(store)
	badgeService := services.NewBadgeService(store)
	missionService := services.NewMissionService(store, rewardService, badgeService)
	balanceService := services.NewBalanceService(store)
	catalogService := services.NewCatalogService(store)

	dripAmount := os.Getenv("FAUCET_DRIP_AMOUNT")
	if dripAmount == "" {
		dripAmount = "10"
	}
	cooldown := services.DefaultFaucetCooldown
	if hours := os.Getenv("FAUCET_COOLDOWN_HOURS"); hours != "" {
		if h, err := strconv.Atoi(hours); err == nil && h > 0 {
			cooldown = time.Duration(h) * time.Hour
		}
	}
	faucetService := services.NewFaucetService(store, rewardService, badgeService, dripAmount, cooldown)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := catalogService.Seed(seedCtx); err != nil {
		logrus.Fatal("failed to seed catalogs: ", err)
	}
	if err := badgeService.SeedBadgeTypes(seedCtx); err != nil {
		logrus.Fatal("failed to seed badge catalog: ", err)
	}
	cancelSeed()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	walletSyncClient := workers.NewWalletSyncClient(store)
	go workers.PollWallets(ctx, walletSyncClient, 30*time.Second)

	faucetService.StartSnapshotScheduler()

	handlers.SetupMissionRoutes(app, missionService)
	handlers.SetupFaucetRoutes(app, faucetService)
	handlers.SetupLedgerRoutes(app, balanceService, badgeService, store)
	handlers.SetupAdminRoutes(app, catalogService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			logrus.Errorf("Server error: %v", err)
		}
	}()

	logrus.Infof("✅ Mission ledger running on http://localhost:%s", port)
	logrus.Info("✅ Wallet mirror polling running (every 30s)")
	logrus.Info("✅ Faucet snapshot scheduler running (hourly)")
	logrus.Info("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	logrus.Infof("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	logrus.Info("Shutting down server...")
	_ = app.Shutdown()
}
