package walls

import (
	"floorplan/internal/planner/models"
)

// ============================================================
// Merge
// ============================================================

// MergeResult: предложение для редактора: обновить MergedWall и удалить WallIDsToRemove.
type MergeResult struct {
	MergedWall      models.WallSegment `json:"mergedWall"`
	WallIDsToRemove []string           `json:"wallIdsToRemove"`
}

// FindMergeableWalls возвращает стены, которые делят конец с newWall (допуск tol.MergePoint)
// и коллинеарны ей с точностью tol.AngleDegrees. Порядок как во входе.
func FindMergeableWalls(newWall models.WallSegment, all []models.WallSegment, tol models.Tolerances) []models.WallSegment {
	if newWall.Length() == 0 {
		return nil
	}
	angle := AngleDegrees(newWall.Start, newWall.End)

	var out []models.WallSegment
	for _, w := range all {
		if w.ID != "" && w.ID == newWall.ID {
			continue
		}
		if w.Length() == 0 {
			continue
		}
		if !Connected(newWall, w, tol.MergePoint) {
			continue
		}
		if !AnglesMatch(angle, AngleDegrees(w.Start, w.End), tol.AngleDegrees) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// MergeWalls объединяет коллинеарные стены: концами становятся две самые удаленные друг от друга
// точки из всех концов. Остальные свойства берутся у первой стены.
// Для неколлинеарного входа результат геометрически неверен, но функция не падает.
func MergeWalls(list []models.WallSegment) (models.WallSegment, bool) {
	if len(list) == 0 {
		return models.WallSegment{}, false
	}

	points := make([]models.Point, 0, len(list)*2)
	for _, w := range list {
		points = append(points, w.Start, w.End)
	}

	var (
		best    float64
		a, b    models.Point
		hasPair bool
	)
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if d := points[i].Dist(points[j]); d > best {
				best, a, b, hasPair = d, points[i], points[j], true
			}
		}
	}
	if !hasPair {
		return models.WallSegment{}, false
	}

	merged := list[0].Clone()
	merged.Start = a
	merged.End = b
	return merged, true
}

// AutoMergeWalls сливает newWall с подходящими существующими стенами.
// Результат сохраняет id первой существующей (базовой) стены; nil, если сливать нечего.
func AutoMergeWalls(newWall models.WallSegment, existing []models.WallSegment, tol models.Tolerances) *MergeResult {
	mergeable := FindMergeableWalls(newWall, existing, tol)
	if len(mergeable) == 0 {
		return nil
	}

	list := append(append([]models.WallSegment{}, mergeable...), newWall)
	merged, ok := MergeWalls(list)
	if !ok {
		return nil
	}

	var remove []string
	for _, w := range list[1:] {
		if w.ID != "" && w.ID != merged.ID {
			remove = append(remove, w.ID)
		}
	}

	return &MergeResult{MergedWall: merged, WallIDsToRemove: remove}
}
