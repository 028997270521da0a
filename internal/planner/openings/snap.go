// Package openings привязывает двери и окна к стенам: поиск ближайшей стены, проекция,
// разрезание стены вокруг проема и поиск разрыва между стенами.
package openings

import (
	"fmt"
	"math"
	"sort"

	"floorplan/internal/planner/models"
	"floorplan/internal/planner/walls"
)

// ============================================================
// Nearest wall & projection
// ============================================================

// WallHit: результат поиска ближайшей стены.
type WallHit struct {
	Wall     models.WallSegment `json:"wall"`
	T        float64            `json:"t"`
	Distance float64            `json:"distance"`
	Point    models.Point       `json:"point"`
}

// FindNearestWall ищет стену, ближайшую к середине проема, в пределах threshold.
func FindNearestWall(o models.Opening, ws []models.WallSegment, threshold float64) (WallHit, bool) {
	mid := o.Midpoint()

	var (
		best  WallHit
		found bool
	)
	for _, w := range ws {
		if w.Length() == 0 {
			continue
		}
		proj, t, dist := walls.ProjectPoint(mid, w)
		if dist > threshold {
			continue
		}
		if !found || dist < best.Distance {
			best = WallHit{Wall: w, T: t, Distance: dist, Point: proj}
			found = true
		}
	}
	return best, found
}

// ProjectOntoWall центрирует проем в проекции его середины на стену, сохраняя длину проема,
// и выравнивает его по направлению стены.
func ProjectOntoWall(o models.Opening, w models.WallSegment) models.Opening {
	dir, _, ok := walls.Direction(w)
	if !ok {
		return o
	}

	center, _, _ := walls.ProjectPoint(o.Midpoint(), w)
	half := o.Length() / 2

	out := o
	out.Start = center.Sub(dir.Scale(half))
	out.End = center.Add(dir.Scale(half))
	out.AttachedWallID = w.ID
	return out
}

// ============================================================
// Split
// ============================================================

type interval struct {
	from, to float64
}

// SplitWall возвращает 0-2 остатка стены по обе стороны проема: start->openingStart и
// openingEnd->end. Куски короче tol.MinSegment отбрасываются. Результат носит рекомендательный
// характер: стена в модели не меняется.
func SplitWall(w models.WallSegment, o models.Opening, tol models.Tolerances) []models.WallSegment {
	iv, ok := openingInterval(w, o)
	if !ok {
		return nil
	}
	return splitByIntervals(w, []interval{iv}, tol.MinSegment)
}

// CarveOpenings режет каждую стену по привязанным к ней проемам (для отрисовки).
// Стены без проемов возвращаются как есть.
func CarveOpenings(ws []models.WallSegment, ops []models.Opening, tol models.Tolerances) []models.WallSegment {
	byWall := make(map[string][]models.Opening)
	for _, o := range ops {
		if o.AttachedWallID != "" {
			byWall[o.AttachedWallID] = append(byWall[o.AttachedWallID], o)
		}
	}

	out := make([]models.WallSegment, 0, len(ws))
	for _, w := range ws {
		attached := byWall[w.ID]
		if len(attached) == 0 {
			out = append(out, w)
			continue
		}

		var ivs []interval
		for _, o := range attached {
			if _, _, dist := walls.ProjectPoint(o.Midpoint(), w); dist > w.Thickness() {
				continue
			}
			if iv, ok := openingInterval(w, o); ok {
				ivs = append(ivs, iv)
			}
		}
		if len(ivs) == 0 {
			out = append(out, w)
			continue
		}
		out = append(out, splitByIntervals(w, ivs, tol.MinSegment)...)
	}
	return out
}

// openingInterval переводит концы проема в параметры стены [from, to].
func openingInterval(w models.WallSegment, o models.Opening) (interval, bool) {
	if w.Length() == 0 || o.Length() == 0 {
		return interval{}, false
	}
	_, t1, _ := walls.ProjectPoint(o.Start, w)
	_, t2, _ := walls.ProjectPoint(o.End, w)
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 == t2 {
		return interval{}, false
	}
	return interval{from: t1, to: t2}, true
}

func splitByIntervals(w models.WallSegment, ivs []interval, minSegment float64) []models.WallSegment {
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].from < ivs[j].from })

	var (
		out     []models.WallSegment
		cursor  float64
		counter int
	)
	emit := func(from, to float64) {
		if to <= from {
			return
		}
		a, b := walls.PointAt(w, from), walls.PointAt(w, to)
		if a.Dist(b) < minSegment {
			return
		}
		counter++
		piece := w.Clone()
		piece.ID = fmt.Sprintf("%s_%d", w.ID, counter)
		piece.Start, piece.End = a, b
		out = append(out, piece)
	}

	for _, iv := range ivs {
		emit(cursor, iv.from)
		cursor = math.Max(cursor, iv.to)
	}
	emit(cursor, 1)
	return out
}
