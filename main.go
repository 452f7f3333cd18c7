package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"university_backend/internals/configs"
	database "university_backend/internals/databases"
	"university_backend/internals/databases/migrations"
	paymentService "university_backend/internals/features/finance/payments/service"
	notificationScheduler "university_backend/internals/features/home/notifications/scheduler"
	helper "university_backend/internals/helpers"
	middlewares "university_backend/internals/middlewares"
	routes "university_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool
	database.ConnectDB()
	database.TunePool()
	readyCtx, readyCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.WaitReady(readyCtx, 5, 2*time.Second); err != nil {
		log.Fatalf("❌ %v", err)
	}
	readyCancel()

	if configs.GetEnvBool("AUTO_MIGRATE", false) {
		if err := migrations.AutoMigrate(database.DB); err != nil {
			log.Fatalf("❌ migrate: %v", err)
		}
	}

	// ✅ MIDTRANS (opsional; tanpa server key endpoint pembayaran → 503)
	var gateway paymentService.Gateway
	if configs.MidtransServerKey != "" {
		gateway = paymentService.NewSnapGateway(configs.MidtransServerKey, configs.MidtransUseProd)
	}

	deps := routes.NewDeps(database.DB, gateway)

	// ⏱ scheduler setelah DB siap
	cleanup := notificationScheduler.NewCleanup(deps.Notifications, configs.NotificationRetentionDays)
	cron, err := notificationScheduler.Start(cleanup, configs.NotificationCleanupCron)
	if err != nil {
		log.Fatalf("❌ cron %q: %v", configs.NotificationCleanupCron, err)
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, deps)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: stop cron, tutup server, tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] Shutting down...")

	<-cron.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.Close()
}
