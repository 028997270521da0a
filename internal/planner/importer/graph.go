package importer

import (
	"fmt"
	"math"
	"sort"

	"floorplan/internal/planner/models"
)

// ============================================================
// Wall graph builder
// ============================================================

// Допуски в единицах исходного SVG.
const (
	connectTolerance  = 15.0 // допуск поиска пересечения (T-стыков)
	mergeTolerance    = 8.0  // радиус склейки близких вершин после разрезания
	axisSnapTolerance = 4.0  // отклонение от оси, при котором координата фиксируется
)

// centerline: осевая линия стены в координатах SVG.
type centerline struct {
	id        string
	p1, p2    models.Point
	thickness float64
}

type segmentInfo struct {
	line        centerline
	horizontal  bool
	start, end  float64
	constant    float64
	splitPoints []float64
}

// edge: стена графа, ссылается на индексы вершин.
type edge struct {
	id        string
	v1, v2    int
	thickness float64
}

type graphBuilder struct {
	lines    []centerline
	vertices []models.Point
	edges    []edge
}

func newGraphBuilder() *graphBuilder {
	return &graphBuilder{}
}

// addElement превращает rect/path стены в осевую линию по длинной стороне bounding box.
func (g *graphBuilder) addElement(elem models.SVGElement) error {
	var minX, minY, maxX, maxY float64

	switch geom := elem.Geometry.(type) {
	case models.RectGeometry:
		minX, minY = geom.X, geom.Y
		maxX, maxY = geom.X+geom.Width, geom.Y+geom.Height
	case models.PathGeometry:
		points, err := ParsePath(geom.D)
		if err != nil {
			return fmt.Errorf("wall %s: %w", elem.ID, err)
		}
		if len(points) < 2 {
			return nil
		}
		minX, minY, maxX, maxY = boundsOf(points)
	default:
		return nil
	}

	line, ok := centerlineOf(elem.ID, minX, minY, maxX, maxY)
	if !ok {
		return nil
	}
	g.lines = append(g.lines, line)
	return nil
}

func centerlineOf(id string, minX, minY, maxX, maxY float64) (centerline, bool) {
	width, height := maxX-minX, maxY-minY
	if width <= 0 && height <= 0 {
		return centerline{}, false
	}

	if width >= height {
		midY := minY + height/2
		return centerline{
			id:        id,
			p1:        models.Point{X: minX, Y: midY},
			p2:        models.Point{X: maxX, Y: midY},
			thickness: height,
		}, true
	}

	midX := minX + width/2
	return centerline{
		id:        id,
		p1:        models.Point{X: midX, Y: minY},
		p2:        models.Point{X: midX, Y: maxY},
		thickness: width,
	}, true
}

func boundsOf(points []models.Point) (minX, minY, maxX, maxY float64) {
	minX, maxX = points[0].X, points[0].X
	minY, maxY = points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return
}

// build разрезает стены в T-стыках, склеивает близкие вершины и выравнивает почти
// горизонтальные/вертикальные стены по осям.
func (g *graphBuilder) build() {
	g.vertices = g.vertices[:0]
	g.edges = g.edges[:0]

	for _, seg := range splitSegments(g.lines) {
		g.edges = append(g.edges, edge{
			id:        seg.id,
			v1:        g.findOrCreateVertex(seg.p1),
			v2:        g.findOrCreateVertex(seg.p2),
			thickness: seg.thickness,
		})
	}

	g.mergeCloseVertices()
	g.snapAxisAligned()
}

// findOrCreateVertex ищет вершину ближе 1e-6, иначе создает новую.
func (g *graphBuilder) findOrCreateVertex(p models.Point) int {
	for i, v := range g.vertices {
		if v.Dist(p) < 1e-6 {
			return i
		}
	}
	g.vertices = append(g.vertices, p)
	return len(g.vertices) - 1
}

// ============================================================
// T-junction splitting
// ============================================================

func splitSegments(lines []centerline) []centerline {
	if len(lines) == 0 {
		return nil
	}

	infos := make([]*segmentInfo, 0, len(lines))
	for _, l := range lines {
		horizontal := math.Abs(l.p1.Y-l.p2.Y) <= math.Abs(l.p1.X-l.p2.X)
		start, end, constant := l.p1.X, l.p2.X, l.p1.Y
		if !horizontal {
			start, end, constant = l.p1.Y, l.p2.Y, l.p1.X
		}
		if start > end {
			start, end = end, start
		}

		infos = append(infos, &segmentInfo{
			line:        l,
			horizontal:  horizontal,
			start:       start,
			end:         end,
			constant:    constant,
			splitPoints: []float64{start, end},
		})
	}

	for i := 0; i < len(infos); i++ {
		for j := i + 1; j < len(infos); j++ {
			a, b := infos[i], infos[j]
			if a.horizontal == b.horizontal {
				continue
			}
			if a.horizontal {
				addIntersection(a, b)
			} else {
				addIntersection(b, a)
			}
		}
	}

	var result []centerline
	for _, info := range infos {
		points := append([]float64{}, info.splitPoints...)
		sort.Float64s(points)
		points = uniquePoints(points)
		if len(points) < 2 {
			continue
		}

		parts := len(points) - 1
		for idx := 0; idx < parts; idx++ {
			start, end := points[idx], points[idx+1]

			p1 := models.Point{X: start, Y: info.constant}
			p2 := models.Point{X: end, Y: info.constant}
			if !info.horizontal {
				p1 = models.Point{X: info.constant, Y: start}
				p2 = models.Point{X: info.constant, Y: end}
			}

			id := info.line.id
			if parts > 1 {
				id = fmt.Sprintf("%s_%d", info.line.id, idx+1)
			}
			result = append(result, centerline{id: id, p1: p1, p2: p2, thickness: info.line.thickness})
		}
	}
	return result
}

func addIntersection(h, v *segmentInfo) {
	vx, hy := v.constant, h.constant

	if vx < h.start-connectTolerance || vx > h.end+connectTolerance {
		return
	}
	if hy < v.start-connectTolerance || hy > v.end+connectTolerance {
		return
	}

	h.splitPoints = append(h.splitPoints, clamp(vx, h.start, h.end))
	v.splitPoints = append(v.splitPoints, clamp(hy, v.start, v.end))
}

func uniquePoints(points []float64) []float64 {
	if len(points) == 0 {
		return points
	}
	out := points[:1]
	for _, p := range points[1:] {
		if !almostEqual(p, out[len(out)-1]) {
			out = append(out, p)
		}
	}
	return out
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ============================================================
// Vertex cleanup
// ============================================================

// mergeCloseVertices склеивает вершины в пределах mergeTolerance (первая по порядку становится
// представителем) и удаляет стены, схлопнувшиеся в точку.
func (g *graphBuilder) mergeCloseVertices() {
	rep := make([]int, len(g.vertices))
	for i := range rep {
		rep[i] = -1
	}
	for i := range g.vertices {
		if rep[i] >= 0 {
			continue
		}
		rep[i] = i
		for j := i + 1; j < len(g.vertices); j++ {
			if rep[j] < 0 && g.vertices[i].Dist(g.vertices[j]) <= mergeTolerance {
				rep[j] = i
			}
		}
	}

	kept := g.edges[:0]
	for _, e := range g.edges {
		e.v1, e.v2 = rep[e.v1], rep[e.v2]
		if e.v1 == e.v2 {
			continue
		}
		kept = append(kept, e)
	}
	g.edges = kept
}

// snapAxisAligned фиксирует координаты вершин почти горизонтальных/вертикальных стен.
func (g *graphBuilder) snapAxisAligned() {
	type agg struct {
		sumX, sumY float64
		cntX, cntY int
	}
	aggs := make(map[int]*agg)
	get := func(v int) *agg {
		a := aggs[v]
		if a == nil {
			a = &agg{}
			aggs[v] = a
		}
		return a
	}

	for _, e := range g.edges {
		p1, p2 := g.vertices[e.v1], g.vertices[e.v2]
		switch {
		case math.Abs(p1.Y-p2.Y) <= axisSnapTolerance:
			y := (p1.Y + p2.Y) / 2
			for _, v := range []int{e.v1, e.v2} {
				a := get(v)
				a.sumY += y
				a.cntY++
			}
		case math.Abs(p1.X-p2.X) <= axisSnapTolerance:
			x := (p1.X + p2.X) / 2
			for _, v := range []int{e.v1, e.v2} {
				a := get(v)
				a.sumX += x
				a.cntX++
			}
		}
	}

	for v, a := range aggs {
		if a.cntX > 0 {
			g.vertices[v].X = a.sumX / float64(a.cntX)
		}
		if a.cntY > 0 {
			g.vertices[v].Y = a.sumY / float64(a.cntY)
		}
	}
}
