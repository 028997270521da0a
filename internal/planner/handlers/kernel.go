package handlers

import (
	"github.com/gofiber/fiber/v3"

	"floorplan/internal/planner/models"
	"floorplan/internal/planner/openings"
	"floorplan/internal/planner/outline"
	"floorplan/internal/planner/scene3d"
	"floorplan/internal/planner/template"
	"floorplan/internal/planner/walls"
)

// ============================================================
// Walls
// ============================================================

type wallRequest struct {
	Wall models.WallSegment `json:"wall"`
}

type wallsRequest struct {
	Walls []models.WallSegment `json:"walls"`
}

type mergeRequest struct {
	NewWall models.WallSegment   `json:"newWall"`
	Walls   []models.WallSegment `json:"walls"`
}

func (h *Handler) WallGeometry(c fiber.Ctx) error {
	var req wallRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}

	g, ok := walls.ComputeGeometry(req.Wall)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "wall has zero length")
	}
	return c.JSON(g)
}

func (h *Handler) WallGroups(c fiber.Ctx) error {
	var req wallsRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}

	groups := walls.GroupIDs(req.Walls, h.tol.Connect)
	if groups == nil {
		groups = [][]string{}
	}
	return c.JSON(fiber.Map{"groups": groups})
}

// MergeWalls отвечает {"merge": null}, если новую стену не с чем объединять.
func (h *Handler) MergeWalls(c fiber.Ctx) error {
	var req mergeRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}

	res := walls.AutoMergeWalls(req.NewWall, req.Walls, h.tol)
	return c.JSON(fiber.Map{"merge": res})
}

// ============================================================
// Openings
// ============================================================

type openingRequest struct {
	Opening models.Opening       `json:"opening"`
	Walls   []models.WallSegment `json:"walls"`
}

type splitRequest struct {
	Opening models.Opening     `json:"opening"`
	Wall    models.WallSegment `json:"wall"`
}

func (h *Handler) SnapOpening(c fiber.Ctx) error {
	var req openingRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}

	res, ok := openings.SnapOpening(req.Opening, req.Walls, h.tol)
	if !ok {
		return fail(c, fiber.StatusUnprocessableEntity, "no wall within snap distance")
	}
	return c.JSON(res)
}

func (h *Handler) SplitWall(c fiber.Ctx) error {
	var req splitRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}

	pieces := openings.SplitWall(req.Wall, req.Opening, h.tol)
	if pieces == nil {
		pieces = []models.WallSegment{}
	}
	return c.JSON(fiber.Map{"walls": pieces})
}

func (h *Handler) FindGap(c fiber.Ctx) error {
	var req openingRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}

	gap, ok := openings.FindWallGap(req.Opening, req.Walls, h.tol)
	if !ok {
		return c.JSON(fiber.Map{"gap": nil})
	}
	return c.JSON(fiber.Map{"gap": gap})
}

// RemoveOpening считает, какие стены нужно срастить после удаления проема.
func (h *Handler) RemoveOpening(c fiber.Ctx) error {
	var req openingRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}

	return c.JSON(fiber.Map{"merge": openings.MergeAcrossGap(req.Opening, req.Walls, h.tol)})
}

// ============================================================
// Outline & 3D
// ============================================================

type outlineRequest struct {
	Walls           []models.WallSegment `json:"walls"`
	SelectedWallIDs []string             `json:"selectedWallIds"`
}

func (h *Handler) Outline(c fiber.Ctx) error {
	var req outlineRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}

	groups := outline.GroupOutlines(req.Walls, req.SelectedWallIDs, h.tol)
	if groups == nil {
		groups = []outline.GroupOutline{}
	}
	return c.JSON(fiber.Map{"groups": groups})
}

func (h *Handler) Scene3D(c fiber.Ctx) error {
	var plan models.Plan
	if err := decode(c, &plan); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(scene3d.ProjectPlan(plan))
}

// ============================================================
// Shapes
// ============================================================

type shapesRequest struct {
	Shapes []models.Shape `json:"shapes"`
}

type resizeRequest struct {
	Shapes []models.Shape `json:"shapes"`
	ScaleX float64        `json:"scaleX"`
	ScaleY float64        `json:"scaleY"`
	Center *models.Point  `json:"center,omitempty"`
}

type boundsResponse struct {
	Min    models.Point `json:"min"`
	Max    models.Point `json:"max"`
	Center models.Point `json:"center"`
}

func (h *Handler) ShapeBounds(c fiber.Ctx) error {
	var req shapesRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}

	b, ok := template.CalculateBounds(req.Shapes)
	if !ok {
		return c.JSON(fiber.Map{"bounds": nil})
	}
	center := b.Center()
	return c.JSON(fiber.Map{"bounds": boundsResponse{
		Min:    models.Point{X: b.Min[0], Y: b.Min[1]},
		Max:    models.Point{X: b.Max[0], Y: b.Max[1]},
		Center: models.Point{X: center[0], Y: center[1]},
	}})
}

// ResizeShapes масштабирует группу; без center масштаб идет от центра bounds группы.
func (h *Handler) ResizeShapes(c fiber.Ctx) error {
	var req resizeRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}
	if req.ScaleX == 0 || req.ScaleY == 0 {
		return fail(c, fiber.StatusBadRequest, "scaleX and scaleY must be non-zero")
	}

	var center models.Point
	if req.Center != nil {
		center = *req.Center
	} else if ctr, ok := template.Center(req.Shapes); ok {
		center = ctr
	}

	return c.JSON(fiber.Map{"shapes": template.ResizeGroupAboutCenter(req.Shapes, req.ScaleX, req.ScaleY, center)})
}
