package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"floorplan/internal/planner/ids"
	"floorplan/internal/planner/models"
	"floorplan/internal/planner/template"
)

// ============================================================
// Templates
// ============================================================

type createTemplateRequest struct {
	Name   string         `json:"name"`
	Shapes []models.Shape `json:"shapes"`
}

type placeTemplateRequest struct {
	Target models.Point `json:"target"`
	PlanID string       `json:"planId"`
}

func (h *Handler) ListTemplates(c fiber.Ctx) error {
	project := c.Params("project")

	list, err := h.cache.Get(c.Context(), project)
	if err != nil {
		h.logger.Error("list templates failed", "project", project, "err", err)
		return fail(c, fiber.StatusInternalServerError, "failed to load templates")
	}
	return c.JSON(fiber.Map{"templates": list})
}

func (h *Handler) CreateTemplate(c fiber.Ctx) error {
	project := c.Params("project")

	var req createTemplateRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fail(c, fiber.StatusBadRequest, "name required")
	}
	if len(req.Shapes) == 0 {
		return fail(c, fiber.StatusBadRequest, "template must contain shapes")
	}

	tpl, err := h.store.SaveTemplate(c.Context(), models.Template{
		ID:        ids.NewTemplateID(),
		ProjectID: project,
		Name:      req.Name,
		Shapes:    req.Shapes,
	})
	if err != nil {
		h.logger.Error("save template failed", "project", project, "err", err)
		return fail(c, fiber.StatusInternalServerError, "failed to save template")
	}
	h.cache.Invalidate(project)

	h.logger.Info("template saved", "project", project, "id", tpl.ID, "shapes", len(tpl.Shapes))
	return c.Status(fiber.StatusCreated).JSON(tpl)
}

// PlaceTemplate копирует фигуры шаблона в точку target плана planId.
func (h *Handler) PlaceTemplate(c fiber.Ctx) error {
	project, id := c.Params("project"), c.Params("id")

	var req placeTemplateRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}
	if req.PlanID == "" {
		return fail(c, fiber.StatusBadRequest, "planId required")
	}

	tpl, ok, err := h.cache.Find(c.Context(), project, id)
	if err != nil {
		h.logger.Error("find template failed", "project", project, "id", id, "err", err)
		return fail(c, fiber.StatusInternalServerError, "failed to load templates")
	}
	if !ok {
		return fail(c, fiber.StatusNotFound, "template not found")
	}

	shapes := template.PlaceTemplateShapes(tpl, req.Target, req.PlanID, ids.ForShape)
	return c.JSON(fiber.Map{"shapes": shapes})
}
