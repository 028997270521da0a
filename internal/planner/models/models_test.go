package models

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolygonSignedArea(t *testing.T) {
	ccw := Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	assert.Equal(t, 100.0, ccw.SignedArea())

	cw := Polygon{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	assert.Equal(t, -100.0, cw.SignedArea())

	assert.Zero(t, Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}}.SignedArea())
}

func TestWallDefaults(t *testing.T) {
	w := WallSegment{Start: Point{X: 0, Y: 0}, End: Point{X: 3, Y: 4}}
	assert.Equal(t, DefaultWallThicknessMM, w.Thickness())
	assert.Equal(t, DefaultWallHeightMM, w.Height())
	assert.Equal(t, 5.0, w.Length())

	w.ThicknessMM, w.HeightMM = 200, 2700
	assert.Equal(t, 200.0, w.Thickness())
	assert.Equal(t, 2700.0, w.Height())
}

func TestWallClone(t *testing.T) {
	w := WallSegment{ID: "w", Properties: map[string]any{"material": "brick"}}
	cp := w.Clone()
	cp.Properties["material"] = "concrete"
	assert.Equal(t, "brick", w.Properties["material"])
}

func TestOpeningDimensions(t *testing.T) {
	h, sill := Opening{Kind: OpeningDoor}.Dimensions()
	assert.Equal(t, DefaultDoorHeightMM, h)
	assert.Zero(t, sill)

	h, sill = Opening{Kind: OpeningWindow}.Dimensions()
	assert.Equal(t, DefaultWindowHeightMM, h)
	assert.Equal(t, DefaultWindowSillMM, sill)

	custom := 600.0
	h, sill = Opening{Kind: OpeningWindow, HeightMM: 1500, SillMM: &custom}.Dimensions()
	assert.Equal(t, 1500.0, h)
	assert.Equal(t, 600.0, sill)
}

func TestPlanWallByID(t *testing.T) {
	plan := Plan{Walls: []WallSegment{{ID: "a"}, {ID: "b", ThicknessMM: 99}}}

	w, ok := plan.WallByID("b")
	require.True(t, ok)
	assert.Equal(t, 99.0, w.ThicknessMM)

	_, ok = plan.WallByID("c")
	assert.False(t, ok)
}

// ============================================================
// Geometry
// ============================================================

func TestGeometryBounds(t *testing.T) {
	tests := []struct {
		name string
		g    Geometry
		want orb.Bound
		ok   bool
	}{
		{"line", LineGeometry{X1: 10, Y1: 20, X2: 0, Y2: 5}, orb.Bound{Min: orb.Point{0, 5}, Max: orb.Point{10, 20}}, true},
		{"polygon", PolygonGeometry{Points: []Point{{X: 0, Y: 0}, {X: 4, Y: 1}, {X: 2, Y: 3}}}, orb.Bound{Max: orb.Point{4, 3}}, true},
		{"polygon degenerate", PolygonGeometry{Points: []Point{{X: 0, Y: 0}}}, orb.Bound{}, false},
		{"rectangle", RectangleGeometry{X: 1, Y: 2, Width: 3, Height: 4}, orb.Bound{Min: orb.Point{1, 2}, Max: orb.Point{4, 6}}, true},
		{"rectangle empty", RectangleGeometry{X: 1, Y: 2}, orb.Bound{}, false},
		{"circle", CircleGeometry{CX: 0, CY: 0, Radius: 5}, orb.Bound{Min: orb.Point{-5, -5}, Max: orb.Point{5, 5}}, true},
		{"text", TextGeometry{X: 10, Y: 10, Text: "A"}, orb.Bound{Min: orb.Point{10, 10}, Max: orb.Point{10 + DefaultTextWidthMM, 10 + DefaultTextHeightMM}}, true},
		{"unknown", UnknownGeometry{RawKind: "spline"}, orb.Bound{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.g.Bound()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestGeometryTranslateDoesNotShareState(t *testing.T) {
	pg := PolygonGeometry{Points: []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}}
	moved := pg.Translate(10, 0).(PolygonGeometry)
	assert.Equal(t, 10.0, moved.Points[0].X)
	assert.Equal(t, 0.0, pg.Points[0].X)
}

func TestSymbolCornersRotation(t *testing.T) {
	g := SymbolGeometry{X: 0, Y: 0, Width: 200, Height: 100}
	assert.Equal(t, Point{X: 200, Y: 100}, g.Corners()[2])

	g.Rotation = 180
	c := g.Corners()
	assert.InDelta(t, 200, c[0].X, 1e-9)
	assert.InDelta(t, 100, c[0].Y, 1e-9)
}

// ============================================================
// Shape JSON
// ============================================================

func TestShapeJSON(t *testing.T) {
	in := Shape{
		ID:       "s1",
		PlanID:   "p",
		Type:     ShapeTypeObject,
		Geometry: CircleGeometry{CX: 1, CY: 2, Radius: 3},
		WallRelative: &WallRelative{
			WallID:                "w",
			DistanceFromWallStart: 100,
		},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"geometry":{"kind":"circle"`)

	var out Shape
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestShapeJSON_UnknownKindPreserved(t *testing.T) {
	raw := `{"id":"s","type":"object","geometry":{"kind":"spline","coordinates":{"knots":[1,2,3]}}}`

	var s Shape
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	u, ok := s.Geometry.(UnknownGeometry)
	require.True(t, ok)
	assert.Equal(t, GeometryKind("spline"), u.Kind())

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(data))
}

func TestShapeJSON_BadCoordinates(t *testing.T) {
	var s Shape
	err := json.Unmarshal([]byte(`{"id":"s","geometry":{"kind":"line","coordinates":"oops"}}`), &s)
	assert.Error(t, err)
}

func TestShapeClone(t *testing.T) {
	s := Shape{
		ID:           "s",
		Geometry:     PolygonGeometry{Points: []Point{{X: 1}, {X: 2}, {X: 3}}},
		WallRelative: &WallRelative{WallID: "w"},
		Properties:   map[string]any{PropAttachedWallID: "w"},
	}
	cp := s.Clone()
	cp.WallRelative.WallID = "other"
	cp.Properties[PropAttachedWallID] = "other"
	cp.Geometry.(PolygonGeometry).Points[0].X = 100

	assert.Equal(t, "w", s.WallRelative.WallID)
	assert.Equal(t, "w", s.Properties[PropAttachedWallID])
	assert.Equal(t, 1.0, s.Geometry.(PolygonGeometry).Points[0].X)
}

// ============================================================
// Tolerances
// ============================================================

func TestTolerancesValidate(t *testing.T) {
	require.NoError(t, DefaultTolerances().Validate())

	tol := DefaultTolerances()
	tol.GapLength = 0
	assert.ErrorContains(t, tol.Validate(), "gap_length_mm")

	tol = DefaultTolerances()
	tol.AngleDegrees = 90
	assert.ErrorContains(t, tol.Validate(), "angle_degrees")
}
