package models

import (
	"encoding/json"
	"math"

	"github.com/paulmach/orb"
)

// ============================================================
// Shape geometry variants
// ============================================================

type GeometryKind string

const (
	KindLine      GeometryKind = "line"
	KindPolygon   GeometryKind = "polygon"
	KindRectangle GeometryKind = "rectangle"
	KindCircle    GeometryKind = "circle"
	KindSymbol    GeometryKind = "symbol"
	KindText      GeometryKind = "text"
)

// Размер, который занимает текст при расчете bounds (шрифт не измеряем).
const (
	DefaultTextWidthMM  = 200.0
	DefaultTextHeightMM = 50.0
)

// Boundable отдает axis-aligned bounds фигуры; ok=false для вырожденной геометрии.
type Boundable interface {
	Bound() (orb.Bound, bool)
}

// Translatable сдвигает фигуру, возвращая копию.
type Translatable interface {
	Translate(dx, dy float64) Geometry
}

// Scalable масштабирует фигуру относительно центра, возвращая копию.
type Scalable interface {
	ScaleAbout(center Point, sx, sy float64) Geometry
}

// Geometry: координаты фигуры, дискриминированные по Kind.
type Geometry interface {
	Kind() GeometryKind
	Boundable
	Translatable
	Scalable
}

var (
	_ Geometry = LineGeometry{}
	_ Geometry = PolygonGeometry{}
	_ Geometry = RectangleGeometry{}
	_ Geometry = CircleGeometry{}
	_ Geometry = SymbolGeometry{}
	_ Geometry = TextGeometry{}
	_ Geometry = UnknownGeometry{}
)

// ------------------------------------------------------------
// line
// ------------------------------------------------------------

type LineGeometry struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

func (g LineGeometry) Kind() GeometryKind { return KindLine }

func (g LineGeometry) Bound() (orb.Bound, bool) {
	if g.X1 == g.X2 && g.Y1 == g.Y2 {
		return orb.Bound{}, false
	}
	return orb.Point{g.X1, g.Y1}.Bound().Extend(orb.Point{g.X2, g.Y2}), true
}

func (g LineGeometry) Translate(dx, dy float64) Geometry {
	return LineGeometry{X1: g.X1 + dx, Y1: g.Y1 + dy, X2: g.X2 + dx, Y2: g.Y2 + dy}
}

func (g LineGeometry) ScaleAbout(c Point, sx, sy float64) Geometry {
	p1 := scalePoint(Point{X: g.X1, Y: g.Y1}, c, sx, sy)
	p2 := scalePoint(Point{X: g.X2, Y: g.Y2}, c, sx, sy)
	return LineGeometry{X1: p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y}
}

// Start/End: концы линии как точки.
func (g LineGeometry) Start() Point { return Point{X: g.X1, Y: g.Y1} }
func (g LineGeometry) End() Point   { return Point{X: g.X2, Y: g.Y2} }

// ------------------------------------------------------------
// polygon
// ------------------------------------------------------------

type PolygonGeometry struct {
	Points []Point `json:"points"`
}

func (g PolygonGeometry) Kind() GeometryKind { return KindPolygon }

func (g PolygonGeometry) Bound() (orb.Bound, bool) {
	if len(g.Points) < 3 {
		return orb.Bound{}, false
	}
	b := orb.Point{g.Points[0].X, g.Points[0].Y}.Bound()
	for _, p := range g.Points[1:] {
		b = b.Extend(orb.Point{p.X, p.Y})
	}
	return b, true
}

func (g PolygonGeometry) Translate(dx, dy float64) Geometry {
	pts := make([]Point, len(g.Points))
	for i, p := range g.Points {
		pts[i] = Point{X: p.X + dx, Y: p.Y + dy}
	}
	return PolygonGeometry{Points: pts}
}

func (g PolygonGeometry) ScaleAbout(c Point, sx, sy float64) Geometry {
	pts := make([]Point, len(g.Points))
	for i, p := range g.Points {
		pts[i] = scalePoint(p, c, sx, sy)
	}
	return PolygonGeometry{Points: pts}
}

// ------------------------------------------------------------
// rectangle
// ------------------------------------------------------------

type RectangleGeometry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (g RectangleGeometry) Kind() GeometryKind { return KindRectangle }

func (g RectangleGeometry) Bound() (orb.Bound, bool) {
	if g.Width == 0 && g.Height == 0 {
		return orb.Bound{}, false
	}
	return orb.Point{g.X, g.Y}.Bound().Extend(orb.Point{g.X + g.Width, g.Y + g.Height}), true
}

func (g RectangleGeometry) Translate(dx, dy float64) Geometry {
	g.X += dx
	g.Y += dy
	return g
}

func (g RectangleGeometry) ScaleAbout(c Point, sx, sy float64) Geometry {
	x, y, w, h := scaleBox(g.X, g.Y, g.Width, g.Height, c, sx, sy)
	return RectangleGeometry{X: x, Y: y, Width: w, Height: h}
}

// ------------------------------------------------------------
// circle
// ------------------------------------------------------------

type CircleGeometry struct {
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
	Radius float64 `json:"radius"`
}

func (g CircleGeometry) Kind() GeometryKind { return KindCircle }

func (g CircleGeometry) Bound() (orb.Bound, bool) {
	if g.Radius <= 0 {
		return orb.Bound{}, false
	}
	return orb.Bound{
		Min: orb.Point{g.CX - g.Radius, g.CY - g.Radius},
		Max: orb.Point{g.CX + g.Radius, g.CY + g.Radius},
	}, true
}

func (g CircleGeometry) Translate(dx, dy float64) Geometry {
	g.CX += dx
	g.CY += dy
	return g
}

// ScaleAbout масштабирует радиус средним модулем коэффициентов.
func (g CircleGeometry) ScaleAbout(c Point, sx, sy float64) Geometry {
	center := scalePoint(Point{X: g.CX, Y: g.CY}, c, sx, sy)
	return CircleGeometry{
		CX:     center.X,
		CY:     center.Y,
		Radius: g.Radius * (math.Abs(sx) + math.Abs(sy)) / 2,
	}
}

// ------------------------------------------------------------
// symbol
// ------------------------------------------------------------

// SymbolGeometry: символ (мебель, сантехника): левый верхний угол, размер и поворот в градусах
// вокруг собственного центра.
type SymbolGeometry struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation,omitempty"`
}

func (g SymbolGeometry) Kind() GeometryKind { return KindSymbol }

func (g SymbolGeometry) Bound() (orb.Bound, bool) {
	if g.Width == 0 && g.Height == 0 {
		return orb.Bound{}, false
	}
	corners := g.Corners()
	b := orb.Point{corners[0].X, corners[0].Y}.Bound()
	for _, p := range corners[1:] {
		b = b.Extend(orb.Point{p.X, p.Y})
	}
	return b, true
}

// Corners возвращает углы символа с учетом поворота.
func (g SymbolGeometry) Corners() [4]Point {
	cx, cy := g.X+g.Width/2, g.Y+g.Height/2
	corners := [4]Point{
		{X: g.X, Y: g.Y},
		{X: g.X + g.Width, Y: g.Y},
		{X: g.X + g.Width, Y: g.Y + g.Height},
		{X: g.X, Y: g.Y + g.Height},
	}
	if g.Rotation == 0 {
		return corners
	}

	rad := g.Rotation * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	for i, p := range corners {
		dx, dy := p.X-cx, p.Y-cy
		corners[i] = Point{X: cx + dx*cos - dy*sin, Y: cy + dx*sin + dy*cos}
	}
	return corners
}

func (g SymbolGeometry) Translate(dx, dy float64) Geometry {
	g.X += dx
	g.Y += dy
	return g
}

func (g SymbolGeometry) ScaleAbout(c Point, sx, sy float64) Geometry {
	x, y, w, h := scaleBox(g.X, g.Y, g.Width, g.Height, c, sx, sy)
	return SymbolGeometry{X: x, Y: y, Width: w, Height: h, Rotation: g.Rotation}
}

// ------------------------------------------------------------
// text
// ------------------------------------------------------------

type TextGeometry struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Text     string  `json:"text"`
	FontSize float64 `json:"fontSize,omitempty"`
}

func (g TextGeometry) Kind() GeometryKind { return KindText }

func (g TextGeometry) Bound() (orb.Bound, bool) {
	return orb.Bound{
		Min: orb.Point{g.X, g.Y},
		Max: orb.Point{g.X + DefaultTextWidthMM, g.Y + DefaultTextHeightMM},
	}, true
}

func (g TextGeometry) Translate(dx, dy float64) Geometry {
	g.X += dx
	g.Y += dy
	return g
}

// ScaleAbout двигает только якорь, размер шрифта не меняется.
func (g TextGeometry) ScaleAbout(c Point, sx, sy float64) Geometry {
	p := scalePoint(Point{X: g.X, Y: g.Y}, c, sx, sy)
	g.X, g.Y = p.X, p.Y
	return g
}

// ------------------------------------------------------------
// unknown
// ------------------------------------------------------------

// UnknownGeometry хранит нераспознанную кодировку как есть; все операции ее пропускают.
type UnknownGeometry struct {
	RawKind string
	Raw     json.RawMessage
}

func (g UnknownGeometry) Kind() GeometryKind { return GeometryKind(g.RawKind) }

func (g UnknownGeometry) Bound() (orb.Bound, bool) { return orb.Bound{}, false }

func (g UnknownGeometry) Translate(dx, dy float64) Geometry { return g }

func (g UnknownGeometry) ScaleAbout(c Point, sx, sy float64) Geometry { return g }

// ============================================================
// Helpers
// ============================================================

func scalePoint(p, c Point, sx, sy float64) Point {
	return Point{X: c.X + (p.X-c.X)*sx, Y: c.Y + (p.Y-c.Y)*sy}
}

// scaleBox масштабирует прямоугольник и нормализует его при отрицательном масштабе.
func scaleBox(x, y, w, h float64, c Point, sx, sy float64) (float64, float64, float64, float64) {
	p1 := scalePoint(Point{X: x, Y: y}, c, sx, sy)
	p2 := scalePoint(Point{X: x + w, Y: y + h}, c, sx, sy)
	return math.Min(p1.X, p2.X), math.Min(p1.Y, p2.Y), math.Abs(p2.X - p1.X), math.Abs(p2.Y - p1.Y)
}
