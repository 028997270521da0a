// Package render рисует план в SVG: контуры групп стен и проемы в пиксельных координатах вида.
package render

import (
	"bytes"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"floorplan/internal/planner/coords"
	"floorplan/internal/planner/models"
	"floorplan/internal/planner/openings"
	"floorplan/internal/planner/outline"
)

const (
	DefaultWidth   = 1200
	DefaultHeight  = 800
	DefaultPadding = 40.0
)

const (
	wallStyle         = "fill:#9e9e9e;stroke:#424242;stroke-width:1"
	selectedWallStyle = "fill:#2196f3;stroke:#0d47a1;stroke-width:1"
	fallbackWallStyle = "fill:#bdbdbd;stroke:#e53935;stroke-width:1;stroke-dasharray:4,2"
)

var openingColors = map[models.OpeningKind]string{
	models.OpeningDoor:        "#8d6e63",
	models.OpeningSlidingDoor: "#a1887f",
	models.OpeningWindow:      "#4fc3f7",
}

// ============================================================
// Renderer
// ============================================================

// Options: размер холста и вид. View == nil: вид подбирается по bounds стен.
type Options struct {
	Width           int
	Height          int
	Padding         float64
	View            *models.ViewState
	SelectedWallIDs []string
	Tolerances      models.Tolerances
}

type Renderer struct {
	opts Options
}

func NewRenderer(opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}
	return &Renderer{opts: opts}
}

// Render пишет SVG плана в w.
func (r *Renderer) Render(w io.Writer, plan models.Plan) error {
	carved, selected := r.carve(plan)
	outlines := outline.GroupOutlines(carved, selected, r.opts.Tolerances)
	view := r.view(plan.Walls)

	canvas := svg.New(w)
	canvas.Start(r.opts.Width, r.opts.Height)

	canvas.Gid("walls")
	for _, group := range outlines {
		style := wallStyle
		switch {
		case group.IsSelected:
			style = selectedWallStyle
		case group.Fallback:
			style = fallbackWallStyle
		}
		for _, pg := range group.Polygons {
			xs, ys := toPixels(pg, view)
			canvas.Polygon(xs, ys, style)
		}
	}
	canvas.Gend()

	canvas.Gid("openings")
	for _, o := range plan.Openings {
		if o.Length() == 0 {
			continue
		}
		thickness := models.DefaultWallThicknessMM
		if host, ok := plan.WallByID(o.AttachedWallID); ok {
			thickness = host.Thickness()
		}
		a := coords.WorldToPixel(o.Start, view)
		b := coords.WorldToPixel(o.End, view)
		width := math.Max(1, coords.WorldDistanceToPixel(thickness, view))
		canvas.Line(px(a.X), px(a.Y), px(b.X), px(b.Y),
			fmt.Sprintf("stroke:%s;stroke-width:%d;stroke-linecap:butt", openingColor(o.Kind), px(width)))
	}
	canvas.Gend()

	canvas.End()
	return nil
}

// RenderString: Render в строку.
func (r *Renderer) RenderString(plan models.Plan) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, plan); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// carve режет стены по привязанным проемам и переносит выделение на получившиеся куски.
func (r *Renderer) carve(plan models.Plan) ([]models.WallSegment, []string) {
	selected := make(map[string]struct{}, len(r.opts.SelectedWallIDs))
	for _, id := range r.opts.SelectedWallIDs {
		selected[id] = struct{}{}
	}

	var (
		carved      []models.WallSegment
		selectedIDs []string
	)
	for _, w := range plan.Walls {
		pieces := openings.CarveOpenings([]models.WallSegment{w}, plan.Openings, r.opts.Tolerances)
		carved = append(carved, pieces...)
		if _, ok := selected[w.ID]; ok {
			for _, p := range pieces {
				selectedIDs = append(selectedIDs, p.ID)
			}
		}
	}
	return carved, selectedIDs
}

func (r *Renderer) view(ws []models.WallSegment) models.ViewState {
	if r.opts.View != nil {
		v := *r.opts.View
		v.Zoom = coords.ClampZoom(v.Zoom)
		return v
	}

	minP, maxP, ok := wallBounds(ws)
	if !ok {
		return models.DefaultView()
	}
	return coords.FitView(minP, maxP, float64(r.opts.Width), float64(r.opts.Height), r.opts.Padding)
}

// wallBounds: bounds всех стен с учетом половины толщины.
func wallBounds(ws []models.WallSegment) (models.Point, models.Point, bool) {
	minP := models.Point{X: math.Inf(1), Y: math.Inf(1)}
	maxP := models.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	found := false
	for _, w := range ws {
		half := w.Thickness() / 2
		for _, p := range w.Endpoints() {
			minP.X = math.Min(minP.X, p.X-half)
			minP.Y = math.Min(minP.Y, p.Y-half)
			maxP.X = math.Max(maxP.X, p.X+half)
			maxP.Y = math.Max(maxP.Y, p.Y+half)
			found = true
		}
	}
	return minP, maxP, found
}

func toPixels(pg models.Polygon, view models.ViewState) ([]int, []int) {
	xs := make([]int, len(pg))
	ys := make([]int, len(pg))
	for i, p := range pg {
		q := coords.WorldToPixel(p, view)
		xs[i], ys[i] = px(q.X), px(q.Y)
	}
	return xs, ys
}

func px(v float64) int {
	return int(math.Round(v))
}

func openingColor(kind models.OpeningKind) string {
	if c, ok := openingColors[kind]; ok {
		return c
	}
	return openingColors[models.OpeningDoor]
}
