package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"tag-manager/core/cache"
	"tag-manager/core/config"
	"tag-manager/core/database"
	"tag-manager/core/loader"
	"tag-manager/core/logger"
	"tag-manager/core/middleware/auth"
	"tag-manager/core/middleware/rayid"
	"tag-manager/core/storage"
	"tag-manager/core/teddycloud"

	"tag-manager/feature/catalog"
	"tag-manager/feature/history"
	"tag-manager/feature/library"
	"tag-manager/feature/tags"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "tag-manager/docs/swagger"
)

// @title Tag Manager API
// @version 1.0
// @description API for reconciling TeddyCloud content, catalog, and tag state.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the tag manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Optional)
		var db *gorm.DB
		if cfg.Database.Enabled {
			if conn, err := database.Connect(cfg.Database); err != nil {
				logg.Warn("Optional database connection failed, link history disabled", zap.Error(err))
			} else {
				db = conn
				logg.Info("Connected to history database")
			}
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Device API, Cache, Scanner
		api := teddycloud.NewClient(cfg.TeddyCloud, logg)
		store := cache.New(cache.DefaultTTLs(cfg.Cache.LibraryTTLSeconds, cfg.Cache.CatalogTTLSeconds))
		scanner := library.NewScanner(api, cfg.Volumes.LibraryPath(), store, logg)

		// 6. Off-site Backup Storage (Optional)
		var backups *catalog.BackupStore
		if cfg.Storage.Enabled {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			backups = catalog.NewBackupStore(client, cfg.Storage.Bucket, logg)
		}

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()

		libraryFeature := library.NewFeature(scanner, api, store, logg)
		historyFeature := history.NewFeature(db, logg)
		catalogManager := catalog.NewManager(cfg.Volumes.ConfigPath(), logg)

		var recorder tags.LinkRecorder
		if historyFeature.IsEnabled() {
			recorder = historyFeature.Service()
		}

		mgr.Register(libraryFeature)
		mgr.Register(catalog.NewFeature(catalogManager, api, store, backups, logg))
		mgr.Register(tags.NewFeature(api, cfg.Volumes.ConfigPath(), cfg.Volumes.ContentPath(), libraryFeature.Service(), recorder, logg))
		mgr.Register(historyFeature)

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation and Health (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/api/status", func(c *fiber.Ctx) error {
			_, cfgErr := os.Stat(cfg.Volumes.ConfigPath())
			return c.JSON(fiber.Map{
				"success":          true,
				"device_reachable": api.CheckConnection(c.Context()),
				"config_readable":  cfgErr == nil,
				"history_enabled":  historyFeature.IsEnabled(),
			})
		})

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features under /api
		if err := mgr.LoadAll(app.Group("/api")); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
