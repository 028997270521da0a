// Package walls содержит геометрию стен: атрибуты сегмента, группы связности и слияние
// коллинеарных стен.
package walls

import (
	"math"

	"floorplan/internal/planner/models"
)

// ============================================================
// Wall geometry
// ============================================================

// Geometry: вычисленные атрибуты стены.
type Geometry struct {
	Length      float64      `json:"length"`
	Angle       float64      `json:"angle"`
	ThicknessMM float64      `json:"thicknessMM"`
	HeightMM    float64      `json:"heightMM"`
	Center      models.Point `json:"center"`
}

// CenterElevation: высота центра стены для 3D.
func (g Geometry) CenterElevation() float64 {
	return g.HeightMM / 2
}

// ComputeGeometry возвращает атрибуты стены; ok=false для стены нулевой длины.
func ComputeGeometry(w models.WallSegment) (Geometry, bool) {
	dx := w.End.X - w.Start.X
	dy := w.End.Y - w.Start.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return Geometry{}, false
	}

	return Geometry{
		Length:      length,
		Angle:       math.Atan2(dy, dx),
		ThicknessMM: w.Thickness(),
		HeightMM:    w.Height(),
		Center:      w.Start.Mid(w.End),
	}, true
}

// Direction возвращает единичный вектор направления стены и ее длину.
func Direction(w models.WallSegment) (models.Point, float64, bool) {
	dx := w.End.X - w.Start.X
	dy := w.End.Y - w.Start.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return models.Point{}, 0, false
	}
	return models.Point{X: dx / length, Y: dy / length}, length, true
}

// Normal возвращает единичную нормаль (-dy, dx)/len.
func Normal(w models.WallSegment) (models.Point, bool) {
	dir, _, ok := Direction(w)
	if !ok {
		return models.Point{}, false
	}
	return models.Point{X: -dir.Y, Y: dir.X}, true
}

// AngleDegrees возвращает направление отрезка в градусах, приведенное к [0, 180).
func AngleDegrees(a, b models.Point) float64 {
	deg := math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
	deg = math.Mod(deg, 180)
	if deg < 0 {
		deg += 180
	}
	return deg
}

// AnglesMatch сравнивает направления без учета ориентации (угол и угол+180° равны).
func AnglesMatch(a, b, toleranceDeg float64) bool {
	diff := math.Abs(a - b)
	diff = math.Mod(diff, 180)
	if diff > 90 {
		diff = 180 - diff
	}
	return diff <= toleranceDeg
}

// ProjectPoint проецирует точку на стену; t ограничен [0,1].
func ProjectPoint(p models.Point, w models.WallSegment) (proj models.Point, t, dist float64) {
	dx := w.End.X - w.Start.X
	dy := w.End.Y - w.Start.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return w.Start, 0, p.Dist(w.Start)
	}

	t = ((p.X-w.Start.X)*dx + (p.Y-w.Start.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))

	proj = models.Point{X: w.Start.X + t*dx, Y: w.Start.Y + t*dy}
	return proj, t, p.Dist(proj)
}

// PointAt возвращает точку стены по параметру t.
func PointAt(w models.WallSegment, t float64) models.Point {
	return models.Point{
		X: w.Start.X + t*(w.End.X-w.Start.X),
		Y: w.Start.Y + t*(w.End.Y-w.Start.Y),
	}
}
