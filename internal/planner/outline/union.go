// Package outline строит контуры групп стен: прямоугольник каждой стены и их булево объединение.
package outline

import (
	"fmt"
	"math"
	"sort"

	"github.com/ctessum/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"

	"floorplan/internal/planner/models"
	"floorplan/internal/planner/walls"
)

// SimplifyThreshold: допуск (мм) удаления почти коллинеарных вершин контура.
const SimplifyThreshold = 0.01

// minRingArea: кольца меньшей площади считаются мусором клиппера.
const minRingArea = 1e-6

// clip выполняет объединение. Переменная, чтобы тесты могли подменить клиппер.
var clip = unionPolygons

// ============================================================
// Wall footprint
// ============================================================

// WallPolygon возвращает прямоугольник стены (4 угла, CCW): концы смещены на ±thickness/2
// по нормали. false для стены нулевой длины.
func WallPolygon(w models.WallSegment) (models.Polygon, bool) {
	n, ok := walls.Normal(w)
	if !ok {
		return nil, false
	}
	off := n.Scale(w.Thickness() / 2)

	return models.Polygon{
		w.Start.Sub(off),
		w.End.Sub(off),
		w.End.Add(off),
		w.Start.Add(off),
	}, true
}

// ============================================================
// Union
// ============================================================

// UnionResult: контуры группы. Fallback выставлен, если объединение не удалось и вместо него
// возвращены прямоугольники отдельных стен.
type UnionResult struct {
	Polygons []models.Polygon `json:"polygons"`
	Fallback bool             `json:"fallback"`
}

// UnionWallGroup объединяет прямоугольники всех стен группы. Возвращаются только внешние
// контуры (дыры отбрасываются), ориентированные CCW. Ошибки клиппера не пробрасываются.
func UnionWallGroup(group []models.WallSegment) UnionResult {
	rects := make([]models.Polygon, 0, len(group))
	for _, w := range group {
		if p, ok := WallPolygon(w); ok {
			rects = append(rects, p)
		}
	}
	if len(rects) == 0 {
		return UnionResult{}
	}

	merged, err := clip(rects)
	if err != nil {
		return UnionResult{Polygons: rects, Fallback: true}
	}

	outer := outerRings(merged)
	if len(outer) == 0 {
		return UnionResult{Polygons: rects, Fallback: true}
	}
	return UnionResult{Polygons: outer}
}

func unionPolygons(rects []models.Polygon) (out geom.Polygon, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("polygon union: %v", r)
		}
	}()

	var acc geom.Polygonal = toGeom(rects[0])
	for _, r := range rects[1:] {
		acc = acc.Union(toGeom(r))
	}
	for _, pg := range acc.Polygons() {
		out = append(out, pg...)
	}
	return out, nil
}

func toGeom(p models.Polygon) geom.Polygon {
	path := make(geom.Path, len(p))
	for i, pt := range p {
		path[i] = geom.Point{X: pt.X, Y: pt.Y}
	}
	return geom.Polygon{path}
}

// outerRings отбрасывает вырожденные кольца и кольца, лежащие внутри большего (дыры),
// упрощает оставшиеся и ориентирует их CCW. Порядок по убыванию площади.
func outerRings(pg geom.Polygon) []models.Polygon {
	type ring struct {
		pts  models.Polygon
		area float64
	}

	rings := make([]ring, 0, len(pg))
	for _, path := range pg {
		pts := fromPath(path)
		if len(pts) < 3 {
			continue
		}
		area := math.Abs(pts.SignedArea())
		if area < minRingArea {
			continue
		}
		rings = append(rings, ring{pts: pts, area: area})
	}
	sort.SliceStable(rings, func(i, j int) bool { return rings[i].area > rings[j].area })

	var out []models.Polygon
	for i, r := range rings {
		first := orb.Point{r.pts[0].X, r.pts[0].Y}
		hole := false
		for j := 0; j < i; j++ {
			if planar.RingContains(toRing(rings[j].pts), first) {
				hole = true
				break
			}
		}
		if hole {
			continue
		}
		out = append(out, orient(simplifyRing(r.pts)))
	}
	return out
}

// fromPath переводит путь клиппера в кольцо без повторения первой точки.
func fromPath(path geom.Path) models.Polygon {
	pts := make(models.Polygon, 0, len(path))
	for _, p := range path {
		pts = append(pts, models.Point{X: p.X, Y: p.Y})
	}
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return pts
}

func toRing(p models.Polygon) orb.Ring {
	r := make(orb.Ring, 0, len(p)+1)
	for _, pt := range p {
		r = append(r, orb.Point{pt.X, pt.Y})
	}
	return append(r, r[0])
}

func simplifyRing(p models.Polygon) models.Polygon {
	r := simplify.DouglasPeucker(SimplifyThreshold).Ring(toRing(p))
	if len(r) < 4 {
		return p
	}
	out := make(models.Polygon, 0, len(r)-1)
	for _, pt := range r[:len(r)-1] {
		out = append(out, models.Point{X: pt[0], Y: pt[1]})
	}
	return out
}

func orient(p models.Polygon) models.Polygon {
	if p.SignedArea() >= 0 {
		return p
	}
	out := make(models.Polygon, len(p))
	for i, pt := range p {
		out[len(p)-1-i] = pt
	}
	return out
}

// ============================================================
// Groups
// ============================================================

// GroupOutline: контур одной связной группы стен.
type GroupOutline struct {
	WallIDs    []string         `json:"wallIds"`
	Polygons   []models.Polygon `json:"polygons"`
	IsSelected bool             `json:"isSelected"`
	Fallback   bool             `json:"fallback"`
}

// GroupOutlines группирует стены (допуск tol.Connect) и объединяет каждую группу.
// Группа выделена, если выделена хотя бы одна ее стена.
func GroupOutlines(ws []models.WallSegment, selectedIDs []string, tol models.Tolerances) []GroupOutline {
	selected := make(map[string]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = struct{}{}
	}

	groups := walls.FindGroups(ws, tol.Connect)
	out := make([]GroupOutline, 0, len(groups))
	for _, g := range groups {
		res := UnionWallGroup(g)
		item := GroupOutline{
			WallIDs:  make([]string, len(g)),
			Polygons: res.Polygons,
			Fallback: res.Fallback,
		}
		for i, w := range g {
			item.WallIDs[i] = w.ID
			if _, ok := selected[w.ID]; ok {
				item.IsSelected = true
			}
		}
		out = append(out, item)
	}
	return out
}
