// Package scene3d переводит план (x, y в мм) и высоты в 3D-координаты сцены: Y вверх,
// ось Z сцены совпадает с осью Y плана.
package scene3d

import (
	"encoding/json"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"floorplan/internal/planner/models"
	"floorplan/internal/planner/walls"
)

// FloorPlanToThreeJS: единственное правило отображения осей: (x, y, elev) -> (x, elev, y).
func FloorPlanToThreeJS(x, y, elevation float64) v3.Vec {
	return v3.Vec{X: x, Y: elevation, Z: y}
}

// Transform3D: положение, поворот (радианы, Эйлер) и размеры бокса.
type Transform3D struct {
	Position v3.Vec
	Rotation v3.Vec
	Size     v3.Vec
}

type vecJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (t Transform3D) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Position vecJSON `json:"position"`
		Rotation vecJSON `json:"rotation"`
		Size     vecJSON `json:"size"`
	}{
		Position: vecJSON(t.Position),
		Rotation: vecJSON(t.Rotation),
		Size:     vecJSON(t.Size),
	})
}

func yaw(angle float64) v3.Vec {
	return v3.Vec{Y: -angle}
}

// ============================================================
// Walls
// ============================================================

// WallBox: бокс стены: центр на половине высоты, размеры (длина, высота, толщина).
func WallBox(w models.WallSegment) (Transform3D, bool) {
	g, ok := walls.ComputeGeometry(w)
	if !ok {
		return Transform3D{}, false
	}
	return Transform3D{
		Position: FloorPlanToThreeJS(g.Center.X, g.Center.Y, g.CenterElevation()),
		Rotation: yaw(g.Angle),
		Size:     v3.Vec{X: g.Length, Y: g.HeightMM, Z: g.ThicknessMM},
	}, true
}

// WallRelativePlacement размещает объект, заданный относительно стены: сдвиг вдоль стены от
// ее начала, затем по нормали (-dy, dx)/len.
func WallRelativePlacement(rel models.WallRelative, w models.WallSegment) (Transform3D, bool) {
	dir, _, ok := walls.Direction(w)
	if !ok {
		return Transform3D{}, false
	}
	normal := models.Point{X: -dir.Y, Y: dir.X}

	p := w.Start.
		Add(dir.Scale(rel.DistanceFromWallStart)).
		Add(normal.Scale(rel.PerpendicularOffset))

	return Transform3D{
		Position: FloorPlanToThreeJS(p.X, p.Y, rel.ElevationBottom+rel.Height/2),
		Rotation: yaw(math.Atan2(dir.Y, dir.X)),
		Size:     v3.Vec{X: rel.Width, Y: rel.Height, Z: rel.Depth},
	}, true
}

// ============================================================
// Openings
// ============================================================

// OpeningPlacement размещает дверь/окно. Глубина равна толщине стены-хозяина, если она известна.
func OpeningPlacement(o models.Opening, host *models.WallSegment) (Transform3D, bool) {
	length := o.Length()
	if length == 0 {
		return Transform3D{}, false
	}

	height, sill := o.Dimensions()
	depth := models.DefaultWallThicknessMM
	if host != nil {
		depth = host.Thickness()
	}

	mid := o.Midpoint()
	return Transform3D{
		Position: FloorPlanToThreeJS(mid.X, mid.Y, sill+height/2),
		Rotation: yaw(math.Atan2(o.End.Y-o.Start.Y, o.End.X-o.Start.X)),
		Size:     v3.Vec{X: length, Y: height, Z: depth},
	}, true
}

// ============================================================
// Plan
// ============================================================

// Object: спроецированный элемент плана.
type Object struct {
	ID        string      `json:"id"`
	Kind      string      `json:"kind"`
	Transform Transform3D `json:"transform"`
}

// Scene: результат проекции плана.
type Scene struct {
	Walls    []Object `json:"walls"`
	Openings []Object `json:"openings"`
	Objects  []Object `json:"objects"`
}

// ProjectPlan проецирует стены, проемы и объекты с привязкой к стене. Вырожденные элементы и
// объекты, чья стена не найдена, пропускаются.
func ProjectPlan(plan models.Plan) Scene {
	scene := Scene{
		Walls:    make([]Object, 0, len(plan.Walls)),
		Openings: make([]Object, 0, len(plan.Openings)),
		Objects:  []Object{},
	}

	for _, w := range plan.Walls {
		if tr, ok := WallBox(w); ok {
			scene.Walls = append(scene.Walls, Object{ID: w.ID, Kind: models.ShapeTypeWall, Transform: tr})
		}
	}

	for _, o := range plan.Openings {
		var host *models.WallSegment
		if w, ok := plan.WallByID(o.AttachedWallID); ok {
			host = &w
		}
		if tr, ok := OpeningPlacement(o, host); ok {
			scene.Openings = append(scene.Openings, Object{ID: o.ID, Kind: string(o.Kind), Transform: tr})
		}
	}

	for _, s := range plan.Shapes {
		if s.WallRelative == nil {
			continue
		}
		w, ok := plan.WallByID(s.WallRelative.WallID)
		if !ok {
			continue
		}
		if tr, ok := WallRelativePlacement(*s.WallRelative, w); ok {
			scene.Objects = append(scene.Objects, Object{ID: s.ID, Kind: s.Type, Transform: tr})
		}
	}

	return scene
}
