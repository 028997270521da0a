// Package handlers: HTTP-слой планировщика поверх геометрического ядра.
package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"

	"floorplan/internal/planner/importer"
	"floorplan/internal/planner/models"
	"floorplan/internal/planner/service"
)

// TemplateStore: запись шаблонов и проверка готовности хранилища.
type TemplateStore interface {
	SaveTemplate(ctx context.Context, tpl models.Template) (models.Template, error)
	Ping(ctx context.Context) error
}

// Handler держит зависимости всех маршрутов /api/v1.
type Handler struct {
	tol        models.Tolerances
	importOpts importer.Options
	store      TemplateStore
	cache      *service.TemplateCache
	logger     *log.Logger
}

func New(tol models.Tolerances, importOpts importer.Options, store TemplateStore, cache *service.TemplateCache, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	importOpts.Tolerances = tol
	return &Handler{
		tol:        tol,
		importOpts: importOpts,
		store:      store,
		cache:      cache,
		logger:     logger,
	}
}

// Register вешает маршруты на router (обычно группа /api/v1).
func (h *Handler) Register(r fiber.Router) {
	r.Post("/import", h.ImportSVG)
	r.Post("/render", h.RenderSVG)

	r.Post("/walls/geometry", h.WallGeometry)
	r.Post("/walls/groups", h.WallGroups)
	r.Post("/walls/merge", h.MergeWalls)

	r.Post("/openings/snap", h.SnapOpening)
	r.Post("/openings/split", h.SplitWall)
	r.Post("/openings/gap", h.FindGap)
	r.Post("/openings/remove", h.RemoveOpening)

	r.Post("/outline", h.Outline)
	r.Post("/scene3d", h.Scene3D)

	r.Post("/shapes/bounds", h.ShapeBounds)
	r.Post("/shapes/resize", h.ResizeShapes)

	r.Get("/projects/:project/templates", h.ListTemplates)
	r.Post("/projects/:project/templates", h.CreateTemplate)
	r.Post("/projects/:project/templates/:id/place", h.PlaceTemplate)
}

// ============================================================
// Health
// ============================================================

func (h *Handler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

func (h *Handler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Error("readiness check failed", "err", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready"})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

// ============================================================
// Helpers
// ============================================================

func decode(c fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "body required")
	}
	if err := json.Unmarshal(c.Body(), dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON payload")
	}
	return nil
}

func fail(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// badRequest отвечает 400 с текстом ошибки decode.
func badRequest(c fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return fail(c, fe.Code, fe.Message)
	}
	return fail(c, fiber.StatusBadRequest, err.Error())
}
