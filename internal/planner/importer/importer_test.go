package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floorplan/internal/planner/ids"
	"floorplan/internal/planner/models"
)

const planSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="400">
  <rect id="Wall_1" x="0" y="0" width="100" height="15"/>
  <rect id="Door_1" x="100" y="0" width="90" height="15"/>
  <rect id="Wall_2" x="190" y="0" width="110" height="15"/>
  <g id="east">
    <path id="Wall_3" d="M 292.5 0 L 307.5 0 L 307.5 300 L 292.5 300 Z"/>
    <rect id="Window_1" x="292.5" y="100" width="15" height="120"/>
  </g>
  <rect id="Room_1" x="0" y="0" width="300" height="300"/>
  <rect id="Door_far" x="1000" y="1000" width="90" height="15"/>
</svg>`

func wallByID(t *testing.T, plan models.Plan, id string) models.WallSegment {
	t.Helper()
	w, ok := plan.WallByID(id)
	require.True(t, ok, "wall %s not found", id)
	return w
}

func TestImport(t *testing.T) {
	plan, report, err := New(DefaultOptions()).Import(strings.NewReader(planSVG))
	require.NoError(t, err)
	require.NoError(t, ids.Validate(plan.ID, ids.PrefixPlan))

	require.Len(t, plan.Walls, 3)
	w1 := wallByID(t, plan, "Wall_1")
	assert.Equal(t, models.Point{X: 0, Y: 75}, w1.Start)
	assert.Equal(t, models.Point{X: 1000, Y: 75}, w1.End)
	assert.Equal(t, 150.0, w1.ThicknessMM)
	assert.Equal(t, plan.ID, w1.PlanID)

	// стык с Wall_2 отрезает от Wall_3 короткий хвост, который схлопывается при склейке вершин
	w3 := wallByID(t, plan, "Wall_3_2")
	assert.Equal(t, models.Point{X: 3000, Y: 75}, w3.Start)
	assert.Equal(t, models.Point{X: 3000, Y: 3000}, w3.End)

	assert.Equal(t, 3, report.Walls)
	assert.Equal(t, 3, report.Openings)
	assert.Equal(t, []string{"Door_far"}, report.UnattachedOpenings)
}

func TestImport_SnapsDoorIntoGap(t *testing.T) {
	plan, _, err := New(DefaultOptions()).Import(strings.NewReader(planSVG))
	require.NoError(t, err)

	var door, window models.Opening
	for _, o := range plan.Openings {
		switch o.ID {
		case "Door_1":
			door = o
		case "Window_1":
			window = o
		}
	}

	assert.Equal(t, models.OpeningDoor, door.Kind)
	assert.Equal(t, "Wall_1", door.AttachedWallID)
	assert.Equal(t, models.Point{X: 1000, Y: 75}, door.Start)
	assert.Equal(t, models.Point{X: 1900, Y: 75}, door.End)

	assert.Equal(t, models.OpeningWindow, window.Kind)
	assert.Equal(t, "Wall_3_2", window.AttachedWallID)
	assert.InDelta(t, 1200, window.Length(), 1e-9)
}

func TestImport_GridSnap(t *testing.T) {
	opts := DefaultOptions()
	opts.GridSizeMM = 100
	opts.SnapToGrid = true

	plan, _, err := New(opts).Import(strings.NewReader(planSVG))
	require.NoError(t, err)

	w1 := wallByID(t, plan, "Wall_1")
	assert.Equal(t, models.Point{X: 0, Y: 100}, w1.Start)
	assert.Equal(t, models.Point{X: 1000, Y: 100}, w1.End)
}

func TestImport_InvalidSVG(t *testing.T) {
	_, _, err := New(DefaultOptions()).Import(strings.NewReader("<svg><rect"))
	assert.Error(t, err)
}

func TestImport_BadWallPath(t *testing.T) {
	_, _, err := New(DefaultOptions()).Import(strings.NewReader(`<svg><path id="Wall_x" d="   "/></svg>`))
	assert.Error(t, err)
}

func TestParseSVG_Classification(t *testing.T) {
	elements, err := ParseSVG(strings.NewReader(`<svg>
  <rect id="SlidingDoor_1" x="0" y="0" width="10" height="1"/>
  <rect id="Door_2" x="0" y="0" width="10" height="1"/>
  <rect id="Window_3" x="0" y="0" width="10" height="1"/>
  <rect id="Balcony_1" x="0" y="0" width="10" height="1"/>
  <g><g><path id="Wall_9" d="M0 0 H 10"/></g></g>
</svg>`))
	require.NoError(t, err)

	got := make(map[string]models.ElementType)
	for _, e := range elements {
		got[e.ID] = e.Type
	}
	assert.Equal(t, map[string]models.ElementType{
		"SlidingDoor_1": models.ElementSlidingDoor,
		"Door_2":        models.ElementDoor,
		"Window_3":      models.ElementWindow,
		"Wall_9":        models.ElementWall,
	}, got)
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want []models.Point
	}{
		{
			name: "absolute closed",
			d:    "M 0 0 L 10 0 L 10 5 Z",
			want: []models.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}, {X: 0, Y: 0}},
		},
		{
			name: "relative",
			d:    "m 10 10 h 5 v 5 l -5 0 z",
			want: []models.Point{{X: 10, Y: 10}, {X: 15, Y: 10}, {X: 15, Y: 15}, {X: 10, Y: 15}, {X: 10, Y: 10}},
		},
		{
			name: "implicit lineto pairs",
			d:    "M0,0 10,0 10,10",
			want: []models.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
		},
		{
			name: "absolute H and V",
			d:    "M1 1H4V6",
			want: []models.Point{{X: 1, Y: 1}, {X: 4, Y: 1}, {X: 4, Y: 6}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.d)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParsePath("")
	assert.Error(t, err)
	_, err = ParsePath("Z")
	assert.Error(t, err)
}

func TestSplitSegments_TJunction(t *testing.T) {
	got := splitSegments([]centerline{
		{id: "h", p1: models.Point{X: 0, Y: 0}, p2: models.Point{X: 200, Y: 0}, thickness: 10},
		{id: "v", p1: models.Point{X: 100, Y: 0}, p2: models.Point{X: 100, Y: 100}, thickness: 10},
	})

	require.Len(t, got, 3)
	assert.Equal(t, "h_1", got[0].id)
	assert.Equal(t, models.Point{X: 100, Y: 0}, got[0].p2)
	assert.Equal(t, "h_2", got[1].id)
	assert.Equal(t, "v", got[2].id)
}

func TestGraphBuilder_AxisSnap(t *testing.T) {
	g := &graphBuilder{
		vertices: []models.Point{{X: 0, Y: 0}, {X: 100, Y: 3}, {X: 100, Y: 200}},
		edges: []edge{
			{id: "a", v1: 0, v2: 1},
			{id: "b", v1: 1, v2: 2},
		},
	}
	g.snapAxisAligned()

	assert.Equal(t, models.Point{X: 0, Y: 1.5}, g.vertices[0])
	assert.Equal(t, models.Point{X: 100, Y: 1.5}, g.vertices[1])
	assert.Equal(t, models.Point{X: 100, Y: 200}, g.vertices[2])
}

func TestGraphBuilder_MergeCloseVertices(t *testing.T) {
	g := &graphBuilder{
		vertices: []models.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 105, Y: 0}},
		edges: []edge{
			{id: "long", v1: 0, v2: 1},
			{id: "stub", v1: 1, v2: 2},
			{id: "other", v1: 2, v2: 0},
		},
	}
	g.mergeCloseVertices()

	require.Len(t, g.edges, 2)
	assert.Equal(t, "long", g.edges[0].id)
	assert.Equal(t, edge{id: "other", v1: 1, v2: 0}, g.edges[1])
}
