package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"

	"github.com/itzpere/budget-wishlist/app/config"
	"github.com/itzpere/budget-wishlist/app/database"
	"github.com/itzpere/budget-wishlist/app/ledger"
	"github.com/itzpere/budget-wishlist/app/metrics"
	"github.com/itzpere/budget-wishlist/app/routes/auth"
	"github.com/itzpere/budget-wishlist/app/routes/backup"
	"github.com/itzpere/budget-wishlist/app/routes/history"
	"github.com/itzpere/budget-wishlist/app/routes/icons"
	"github.com/itzpere/budget-wishlist/app/routes/items"
	"github.com/itzpere/budget-wishlist/app/routes/settings"
	"github.com/itzpere/budget-wishlist/app/routes/wishlists"
	"github.com/itzpere/budget-wishlist/app/services"
)

// customErrorHandler handles HTTP errors with custom templates
func customErrorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	// API requests get JSON errors
	if len(c.Path()) >= 4 && c.Path()[:4] == "/api" {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	switch code {
	case 404:
		return c.Status(404).Render("404", fiber.Map{
			"Title":       "Page Not Found - Budget Wishlist",
			"CurrentPage": "",
		})
	case 500:
		return c.Status(500).Render("500", fiber.Map{
			"Title":        "Server Error - Budget Wishlist",
			"CurrentPage":  "",
			"ErrorCode":    "500",
			"ErrorTitle":   "Internal Server Error",
			"ErrorMessage": "We're experiencing technical difficulties. Please try again later.",
			"ShowRetry":    true,
		})
	default:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Error - Budget Wishlist",
			"CurrentPage":  "",
			"ErrorCode":    code,
			"ErrorTitle":   "An Error Occurred",
			"ErrorMessage": err.Error(),
		})
	}
}

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel)
	logger.Info("Starting budget-wishlist...")

	// Database handle is created once here and passed to every component
	db, err := database.Open(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db, "migrations", logger); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	led := ledger.New(db, logger)
	iconSvc := services.NewIconService(db, cfg.DataDir, logger)

	// Nightly icon cleanup
	services.StartScheduler(iconSvc, logger)

	// Metrics on a side port
	metrics.Serve(cfg.MetricsPort, logger)

	// Initialize template engine
	engine := html.New("./app/templates", ".html")
	engine.AddFunc("money", func(d decimal.Decimal) string {
		return d.StringFixed(2)
	})

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
	})

	// Middleware
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	// Static files and cached icons
	app.Static("/static", "./static")
	app.Static("/icons", filepath.Join(cfg.DataDir, "icons"))

	// External API gate; browser pages and forms stay open
	apiAuth := auth.APIAuth(db, cfg.APISecret)

	wishlists.SetupWishlistsRoutes(app, db, led)
	items.SetupItemsRoutes(app, led, iconSvc)
	history.SetupHistoryRoutes(app, db, apiAuth)
	settings.SetupSettingsRoutes(app, db)
	backup.SetupBackupRoutes(app, db, apiAuth)
	icons.SetupIconsRoutes(app, iconSvc, apiAuth)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	go func() {
		logger.Infof("Server starting on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	if err := app.Shutdown(); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	if err := db.Close(); err != nil {
		logger.Errorf("Database close failed: %v", err)
	}
}
