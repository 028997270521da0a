package main

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"floorplan/internal/common/config"
	"floorplan/internal/common/logging"
	"floorplan/internal/common/middleware"
	"floorplan/internal/planner/handlers"
	"floorplan/internal/planner/importer"
	"floorplan/internal/planner/repository"
	"floorplan/internal/planner/service"
)

// ============================================================
// Planner Service
// ============================================================

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", "err", err)
	}
	logger := logging.New(os.Stderr, "PLANNER", cfg.LogLevel)

	tol, err := cfg.Tolerances()
	if err != nil {
		logger.Fatal("load tolerances", "err", err)
	}

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("open db", "path", cfg.DBPath, "err", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		logger.Fatal("init db", "err", err)
	}

	importOpts := importer.DefaultOptions()
	importOpts.ScaleMM = cfg.ImportScaleMM
	if cfg.GridSizeMM > 0 {
		importOpts.GridSizeMM = cfg.GridSizeMM
		importOpts.SnapToGrid = true
	}

	h := handlers.New(tol, importOpts, repo, service.NewTemplateCache(repo), logger)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    16 * 1024 * 1024,
		AppName:      "Planner Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("PLANNER"))
	app.Use(middleware.CORS(cfg.Origins()))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", h.Live)
	app.Get("/health/ready", h.Ready)

	// ============================================================
	// Planner Routes
	// ============================================================

	h.Register(app.Group("/api/v1"))

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("starting planner service", "addr", addr, "env", cfg.Environment)

	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", "err", err)
	}
}
