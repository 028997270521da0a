package walls

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"floorplan/internal/planner/models"
)

// ============================================================
// Endpoint index
// ============================================================

// IndexThreshold: начиная с этого числа стен FindGroups использует R-tree вместо попарного перебора.
const IndexThreshold = 64

// pointExtent: сторона прямоугольника, которым точка хранится в R-tree (rtreego не принимает нулевые размеры).
const pointExtent = 1e-6

type endpointEntry struct {
	rect  rtreego.Rect
	wall  int
	point models.Point
}

func (e *endpointEntry) Bounds() rtreego.Rect {
	return e.rect
}

// EndpointIndex: пространственный индекс концов стен.
type EndpointIndex struct {
	tree *rtreego.Rtree
}

// NewEndpointIndex строит индекс по концам всех стен (индексы стен соответствуют порядку в walls).
func NewEndpointIndex(walls []models.WallSegment) *EndpointIndex {
	tree := rtreego.NewTree(2, 25, 50)
	for i, w := range walls {
		for _, p := range w.Endpoints() {
			rect, err := pointRect(p, pointExtent)
			if err != nil {
				continue
			}
			tree.Insert(&endpointEntry{rect: rect, wall: i, point: p})
		}
	}
	return &EndpointIndex{tree: tree}
}

// Near возвращает отсортированные индексы стен, у которых есть конец в пределах tolerance от p.
func (idx *EndpointIndex) Near(p models.Point, tolerance float64) []int {
	query, err := pointRect(p, tolerance)
	if err != nil {
		return nil
	}

	seen := make(map[int]struct{})
	for _, item := range idx.tree.SearchIntersect(query) {
		e, ok := item.(*endpointEntry)
		if !ok {
			continue
		}
		if e.point.Dist(p) <= tolerance {
			seen[e.wall] = struct{}{}
		}
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func pointRect(p models.Point, half float64) (rtreego.Rect, error) {
	if half < pointExtent {
		half = pointExtent
	}
	return rtreego.NewRect(rtreego.Point{p.X - half, p.Y - half}, []float64{2 * half, 2 * half})
}
