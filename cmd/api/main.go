package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crm-console/internal/config"
	"crm-console/internal/crmapi"
	"crm-console/internal/handler"
	"crm-console/internal/repository"
	"crm-console/internal/service"
	"crm-console/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// 2. Setup permission mirror (postgres, redis or memory)
	mirror, closeMirror, err := repository.OpenMirror(context.Background(), cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open %s permission mirror: %v", cfg.Mirror.Driver, err)
	}
	defer closeMirror()
	log.Printf("✅ Permission mirror: %s", cfg.Mirror.Driver)

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	crm := crmapi.NewClient(cfg.CRM)

	permissionStore := service.NewPermissionStore(crm, mirror)
	viewService := service.NewViewService(crm, cfg.Views.PageSize)
	recordGateway := service.NewRecordGateway(crm, viewService, wsHub)

	routes := handler.Routes{
		Auth:        handler.NewAuthHandler(permissionStore, viewService),
		Views:       handler.NewViewHandler(viewService),
		Records:     handler.NewRecordHandler(recordGateway),
		Permissions: permissionStore,
		JWTSecret:   []byte(cfg.JWT.Secret),
	}

	// 5. Housekeeping jobs
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Mirror.PruneSchedule, func() {
		cutoff := time.Now().Add(-cfg.Mirror.Retention)
		n, err := mirror.Prune(context.Background(), cutoff)
		if err != nil {
			log.Printf("Warning: permission mirror prune failed: %v", err)
			return
		}
		log.Printf("Pruned %d permission mirrors older than %s", n, cutoff.Format(time.RFC3339))
	}); err != nil {
		log.Fatalf("❌ Invalid MIRROR_PRUNE_SCHEDULE %q: %v", cfg.Mirror.PruneSchedule, err)
	}
	scheduler.AddFunc("@every 10m", func() {
		if n := viewService.Sweep(cfg.Views.IdleTimeout); n > 0 {
			log.Printf("Dropped view state of %d idle sessions", n)
		}
	})
	scheduler.Start()

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "CRM Console Gateway v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "mirror": cfg.Mirror.Driver, "ws_clients": wsHub.Count()})
	})
	routes.Mount(app.Group("/api/v1"))

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHub.Serve))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	<-scheduler.Stop().Done()
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	wsHub.Stop()

	log.Println("Server exited")
}
