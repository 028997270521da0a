// Package template считает bounds групп фигур, размещает шаблоны в точке и масштабирует группы
// относительно центра.
package template

import (
	"github.com/paulmach/orb"

	"floorplan/internal/planner/models"
)

// IDFunc выдает новый идентификатор для копии фигуры.
type IDFunc func(s models.Shape) string

// CalculateBounds возвращает AABB всех фигур. Вырожденные и нераспознанные геометрии
// пропускаются; false, если учитывать нечего.
func CalculateBounds(shapes []models.Shape) (orb.Bound, bool) {
	var (
		bound orb.Bound
		found bool
	)
	for _, s := range shapes {
		if s.Geometry == nil {
			continue
		}
		b, ok := s.Geometry.Bound()
		if !ok {
			continue
		}
		if !found {
			bound, found = b, true
			continue
		}
		bound = bound.Union(b)
	}
	return bound, found
}

// Center возвращает центр bounds группы.
func Center(shapes []models.Shape) (models.Point, bool) {
	b, ok := CalculateBounds(shapes)
	if !ok {
		return models.Point{}, false
	}
	c := b.Center()
	return models.Point{X: c[0], Y: c[1]}, true
}

// PlaceTemplateShapes копирует фигуры шаблона так, чтобы левый верхний угол их bounds оказался
// в target. Каждая копия получает новый id и planID. Ссылки на стены внутри шаблона
// (wallRelative.wallId и properties.attachedWallId) переводятся на новые id.
func PlaceTemplateShapes(tpl models.Template, target models.Point, planID string, newID IDFunc) []models.Shape {
	bound, ok := CalculateBounds(tpl.Shapes)
	if !ok {
		bound = orb.Bound{Min: orb.Point{target.X, target.Y}}
	}
	dx, dy := target.X-bound.Min[0], target.Y-bound.Min[1]

	remap := make(map[string]string, len(tpl.Shapes))
	out := make([]models.Shape, len(tpl.Shapes))
	for i, s := range tpl.Shapes {
		placed := s.Clone()
		placed.ID = newID(s)
		placed.PlanID = planID
		if placed.Geometry != nil {
			placed.Geometry = placed.Geometry.Translate(dx, dy)
		}
		if s.ID != "" {
			remap[s.ID] = placed.ID
		}
		out[i] = placed
	}

	for i := range out {
		if rel := out[i].WallRelative; rel != nil {
			if id, ok := remap[rel.WallID]; ok {
				rel.WallID = id
			}
		}
		if ref, ok := out[i].Properties[models.PropAttachedWallID].(string); ok {
			if id, ok := remap[ref]; ok {
				out[i].Properties[models.PropAttachedWallID] = id
			}
		}
	}
	return out
}

// ResizeGroupAboutCenter масштабирует все фигуры относительно center. Связность стен и слияние
// здесь не пересчитываются.
func ResizeGroupAboutCenter(shapes []models.Shape, scaleX, scaleY float64, center models.Point) []models.Shape {
	out := make([]models.Shape, len(shapes))
	for i, s := range shapes {
		resized := s.Clone()
		if resized.Geometry != nil {
			resized.Geometry = resized.Geometry.ScaleAbout(center, scaleX, scaleY)
		}
		out[i] = resized
	}
	return out
}
