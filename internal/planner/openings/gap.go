package openings

import (
	"math"

	"floorplan/internal/planner/models"
	"floorplan/internal/planner/walls"
)

// ============================================================
// Wall gaps
// ============================================================

// Gap: разрыв между двумя коллинеарными стенами. Start лежит на First, End на Second.
type Gap struct {
	First  models.WallSegment `json:"first"`
	Second models.WallSegment `json:"second"`
	Start  models.Point       `json:"start"`
	End    models.Point       `json:"end"`
}

func (g Gap) Length() float64 { return g.Start.Dist(g.End) }

func (g Gap) Midpoint() models.Point { return g.Start.Mid(g.End) }

// FindWallGap ищет пару коллинеарных стен, разрыв между торцами которых совпадает с проемом:
// длина в пределах tol.GapLength, середина в пределах tol.GapCenter. Побеждает лучшее совпадение.
func FindWallGap(o models.Opening, ws []models.WallSegment, tol models.Tolerances) (Gap, bool) {
	length := o.Length()
	mid := o.Midpoint()

	var (
		best      Gap
		bestScore = math.Inf(1)
		found     bool
	)

	for i := 0; i < len(ws); i++ {
		for j := i + 1; j < len(ws); j++ {
			gap, ok := facingGap(ws[i], ws[j], tol)
			if !ok {
				continue
			}

			lengthDiff := math.Abs(gap.Length() - length)
			centerDist := gap.Midpoint().Dist(mid)
			if lengthDiff > tol.GapLength || centerDist > tol.GapCenter {
				continue
			}

			if score := lengthDiff + centerDist; score < bestScore {
				best, bestScore, found = gap, score, true
			}
		}
	}

	return best, found
}

// facingGap проверяет, что a и b лежат на одной прямой (поперечный сдвиг b не больше половины
// толщины более тонкой стены), не перекрываются, и возвращает разрыв между их ближайшими торцами.
func facingGap(a, b models.WallSegment, tol models.Tolerances) (Gap, bool) {
	dir, lenA, ok := walls.Direction(a)
	if !ok || b.Length() == 0 {
		return Gap{}, false
	}
	if !walls.AnglesMatch(walls.AngleDegrees(a.Start, a.End), walls.AngleDegrees(b.Start, b.End), tol.AngleDegrees) {
		return Gap{}, false
	}

	normal := models.Point{X: -dir.Y, Y: dir.X}
	along := func(p models.Point) float64 {
		d := p.Sub(a.Start)
		return d.X*dir.X + d.Y*dir.Y
	}
	lateral := func(p models.Point) float64 {
		d := p.Sub(a.Start)
		return math.Abs(d.X*normal.X + d.Y*normal.Y)
	}
	maxOffset := math.Min(a.Thickness(), b.Thickness()) / 2
	if lateral(b.Start) > maxOffset || lateral(b.End) > maxOffset {
		return Gap{}, false
	}

	sb1, sb2 := along(b.Start), along(b.End)
	near := b.Start
	switch {
	case math.Min(sb1, sb2) > lenA:
		// b целиком после конца a
		if sb2 < sb1 {
			near = b.End
		}
		return Gap{First: a, Second: b, Start: a.End, End: near}, true
	case math.Max(sb1, sb2) < 0:
		// b целиком перед началом a
		if sb2 > sb1 {
			near = b.End
		}
		return Gap{First: a, Second: b, Start: a.Start, End: near}, true
	}
	return Gap{}, false
}

// ============================================================
// Snap & gap merge
// ============================================================

// SnapResult: предложение по привязке проема.
type SnapResult struct {
	Opening models.Opening `json:"opening"`
	WallID  string         `json:"wallId"`
	Gap     *Gap           `json:"gap,omitempty"`
}

// SnapOpening привязывает проем: сначала в подходящий разрыв между стенами, иначе к ближайшей
// стене в пределах tol.SnapDistance.
func SnapOpening(o models.Opening, ws []models.WallSegment, tol models.Tolerances) (SnapResult, bool) {
	if gap, ok := FindWallGap(o, ws, tol); ok {
		snapped := o
		snapped.Start = gap.Start
		snapped.End = gap.End
		snapped.AttachedWallID = gap.First.ID
		return SnapResult{Opening: snapped, WallID: gap.First.ID, Gap: &gap}, true
	}

	hit, ok := FindNearestWall(o, ws, tol.SnapDistance)
	if !ok {
		return SnapResult{}, false
	}
	return SnapResult{Opening: ProjectOntoWall(o, hit.Wall), WallID: hit.Wall.ID}, true
}

// MergeAcrossGap вызывается при удалении проема: если проем стоит в разрыве между двумя стенами,
// возвращает их слияние. nil, если сливать нечего.
func MergeAcrossGap(o models.Opening, ws []models.WallSegment, tol models.Tolerances) *walls.MergeResult {
	gap, ok := FindWallGap(o, ws, tol)
	if !ok {
		return nil
	}

	merged, ok := walls.MergeWalls([]models.WallSegment{gap.First, gap.Second})
	if !ok {
		return nil
	}
	return &walls.MergeResult{MergedWall: merged, WallIDsToRemove: []string{gap.Second.ID}}
}
