package outline

import (
	"errors"
	"math"
	"testing"

	"github.com/ctessum/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floorplan/internal/planner/models"
)

func wall(id string, x1, y1, x2, y2 float64) models.WallSegment {
	return models.WallSegment{
		ID:          id,
		Start:       models.Point{X: x1, Y: y1},
		End:         models.Point{X: x2, Y: y2},
		ThicknessMM: 150,
	}
}

func containedInAny(polys []models.Polygon, p models.Point) bool {
	for _, pg := range polys {
		if planar.RingContains(toRing(pg), orb.Point{p.X, p.Y}) {
			return true
		}
	}
	return false
}

func TestWallPolygon(t *testing.T) {
	p, ok := WallPolygon(wall("w", 0, 0, 1000, 0))
	require.True(t, ok)
	assert.Equal(t, models.Polygon{
		{X: 0, Y: -75},
		{X: 1000, Y: -75},
		{X: 1000, Y: 75},
		{X: 0, Y: 75},
	}, p)
	assert.Greater(t, p.SignedArea(), 0.0)

	_, ok = WallPolygon(wall("z", 5, 5, 5, 5))
	assert.False(t, ok)
}

func TestWallPolygon_DiagonalIsCCW(t *testing.T) {
	p, ok := WallPolygon(wall("d", 1000, 1000, 0, 0))
	require.True(t, ok)
	assert.InDelta(t, 150*math.Sqrt2*1000, p.SignedArea(), 1e-6)
}

func TestUnionWallGroup_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		walls []models.WallSegment
	}{
		{"L corner", []models.WallSegment{
			wall("A", 0, 0, 1000, 0),
			wall("B", 1000, 0, 1000, 1000),
		}},
		{"T junction", []models.WallSegment{
			wall("A", 0, 0, 2000, 0),
			wall("B", 1000, 0, 1000, 1000),
		}},
		{"cross", []models.WallSegment{
			wall("A", 0, 0, 2000, 0),
			wall("B", 1000, -1000, 1000, 1000),
		}},
		{"closed room", []models.WallSegment{
			wall("A", 0, 0, 3000, 0),
			wall("B", 3000, 0, 3000, 3000),
			wall("C", 3000, 3000, 0, 3000),
			wall("D", 0, 3000, 0, 0),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := UnionWallGroup(tt.walls)
			require.False(t, res.Fallback)
			require.Len(t, res.Polygons, 1)
			assert.Greater(t, res.Polygons[0].SignedArea(), 0.0)

			// любая внутренняя точка стены лежит внутри контура
			for _, w := range tt.walls {
				for _, k := range []float64{0.25, 0.5, 0.75} {
					p := w.Start.Add(w.End.Sub(w.Start).Scale(k))
					assert.True(t, containedInAny(res.Polygons, p), "wall %s at %.2f", w.ID, k)
				}
			}
		})
	}
}

func TestUnionWallGroup_LCornerArea(t *testing.T) {
	res := UnionWallGroup([]models.WallSegment{
		wall("A", 0, 0, 1000, 0),
		wall("B", 1000, 0, 1000, 1000),
	})
	require.Len(t, res.Polygons, 1)
	// 1000x150 + 150x1000 минус перекрытие 75x75
	assert.InDelta(t, 294375, res.Polygons[0].SignedArea(), 1e-3)
}

func TestUnionWallGroup_ClosedRoomDropsHole(t *testing.T) {
	res := UnionWallGroup([]models.WallSegment{
		wall("A", 0, 0, 3000, 0),
		wall("B", 3000, 0, 3000, 3000),
		wall("C", 3000, 3000, 0, 3000),
		wall("D", 0, 3000, 0, 0),
	})
	require.Len(t, res.Polygons, 1)
	// прямоугольники без скоса не закрывают четыре внешних угла 75x75
	assert.InDelta(t, 3150*3150-4*75*75, res.Polygons[0].SignedArea(), 1e-3)
	assert.True(t, containedInAny(res.Polygons, models.Point{X: 1500, Y: 1500}))
	assert.False(t, containedInAny(res.Polygons, models.Point{X: -70, Y: -70}))
	assert.True(t, containedInAny(res.Polygons, models.Point{X: -70, Y: 10}))
}

func TestUnionWallGroup_Degenerate(t *testing.T) {
	assert.Empty(t, UnionWallGroup(nil).Polygons)

	res := UnionWallGroup([]models.WallSegment{wall("z", 1, 1, 1, 1)})
	assert.Empty(t, res.Polygons)
	assert.False(t, res.Fallback)

	res = UnionWallGroup([]models.WallSegment{wall("z", 1, 1, 1, 1), wall("w", 0, 0, 500, 0)})
	require.Len(t, res.Polygons, 1)
	assert.Len(t, res.Polygons[0], 4)
}

func TestUnionWallGroup_FallbackOnClipperFailure(t *testing.T) {
	orig := clip
	t.Cleanup(func() { clip = orig })

	group := []models.WallSegment{
		wall("A", 0, 0, 1000, 0),
		wall("B", 1000, 0, 1000, 1000),
	}

	clip = func([]models.Polygon) (geom.Polygon, error) { return nil, errors.New("boom") }
	res := UnionWallGroup(group)
	assert.True(t, res.Fallback)
	assert.Len(t, res.Polygons, 2)

	clip = func([]models.Polygon) (geom.Polygon, error) { return geom.Polygon{}, nil }
	res = UnionWallGroup(group)
	assert.True(t, res.Fallback)
	assert.Len(t, res.Polygons, 2)
}

func TestUnionPolygons_RecoversPanic(t *testing.T) {
	// один прямоугольник и пустой путь: клиппер не должен уронить процесс
	assert.NotPanics(t, func() {
		_, _ = unionPolygons([]models.Polygon{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, {}})
	})
}

func TestUnionPolygons_FlattensMultiPolygon(t *testing.T) {
	a, _ := WallPolygon(wall("a", 0, 0, 1000, 0))
	b, _ := WallPolygon(wall("b", 5000, 0, 6000, 0))

	pg, err := unionPolygons([]models.Polygon{a, b})
	require.NoError(t, err)
	assert.Len(t, outerRings(pg), 2)
}

func TestGroupOutlines(t *testing.T) {
	ws := []models.WallSegment{
		wall("A", 0, 0, 1000, 0),
		wall("far", 5000, 5000, 6000, 5000),
		wall("B", 1000, 0, 1000, 1000),
	}

	got := GroupOutlines(ws, []string{"B"}, models.DefaultTolerances())
	require.Len(t, got, 2)

	assert.Equal(t, []string{"A", "B"}, got[0].WallIDs)
	assert.True(t, got[0].IsSelected)
	assert.Len(t, got[0].Polygons, 1)

	assert.Equal(t, []string{"far"}, got[1].WallIDs)
	assert.False(t, got[1].IsSelected)
	assert.Len(t, got[1].Polygons, 1)
}
