package handlers

import (
	"github.com/gofiber/fiber/v3"

	"floorplan/internal/planner/importer"
	"floorplan/internal/planner/models"
	"floorplan/internal/planner/render"
)

// ============================================================
// Import Handler
// ============================================================

// ImportSVG принимает SVG в multipart/form-data (поле file) и возвращает план.
func (h *Handler) ImportSVG(c fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		h.logger.Warn("import without file", "err", err)
		return fail(c, fiber.StatusBadRequest, "file required in multipart/form-data")
	}

	f, err := file.Open()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "failed to open file")
	}
	defer f.Close()

	h.logger.Info("import started", "file", file.Filename, "size", file.Size)

	plan, report, err := importer.New(h.importOpts).Import(f)
	if err != nil {
		h.logger.Error("import failed", "file", file.Filename, "err", err)
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	h.logger.Info("import done", "plan", plan.ID, "walls", report.Walls, "openings", report.Openings)
	return c.JSON(fiber.Map{"plan": plan, "report": report})
}

// ============================================================
// Render Handler
// ============================================================

type renderRequest struct {
	Plan            models.Plan       `json:"plan"`
	View            *models.ViewState `json:"view,omitempty"`
	SelectedWallIDs []string          `json:"selectedWallIds,omitempty"`
	Width           int               `json:"width,omitempty"`
	Height          int               `json:"height,omitempty"`
}

// RenderSVG рисует план в SVG.
func (h *Handler) RenderSVG(c fiber.Ctx) error {
	var req renderRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}
	if req.View != nil && req.View.Zoom <= 0 {
		return fail(c, fiber.StatusBadRequest, "view.zoom must be positive")
	}

	r := render.NewRenderer(render.Options{
		Width:           req.Width,
		Height:          req.Height,
		Padding:         render.DefaultPadding,
		View:            req.View,
		SelectedWallIDs: req.SelectedWallIDs,
		Tolerances:      h.tol,
	})
	out, err := r.RenderString(req.Plan)
	if err != nil {
		h.logger.Error("render failed", "plan", req.Plan.ID, "err", err)
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(out)
}
