package models

import (
	"math"
	"time"
)

// ============================================================
// Geometry primitives
// ============================================================

// Point: точка в миллиметрах (world-space).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }

func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

func (p Point) Scale(k float64) Point { return Point{X: p.X * k, Y: p.Y * k} }

// Dist возвращает евклидово расстояние между точками.
func (p Point) Dist(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Mid возвращает середину отрезка p-o.
func (p Point) Mid(o Point) Point {
	return Point{X: (p.X + o.X) / 2, Y: (p.Y + o.Y) / 2}
}

// Polygon: замкнутое кольцо точек (CCW), последняя точка не дублирует первую.
type Polygon []Point

// SignedArea возвращает ориентированную площадь (положительная для CCW).
func (pg Polygon) SignedArea() float64 {
	n := len(pg)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a, b := pg[i], pg[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// ============================================================
// Walls
// ============================================================

const (
	DefaultWallThicknessMM = 150.0
	DefaultWallHeightMM    = 2400.0
)

// WallSegment: стена как толстый отрезок.
type WallSegment struct {
	ID          string         `json:"id"`
	Start       Point          `json:"start"`
	End         Point          `json:"end"`
	ThicknessMM float64        `json:"thicknessMM"`
	HeightMM    float64        `json:"heightMM"`
	PlanID      string         `json:"planId,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
}

// Thickness возвращает толщину стены с учетом значения по умолчанию.
func (w WallSegment) Thickness() float64 {
	if w.ThicknessMM > 0 {
		return w.ThicknessMM
	}
	return DefaultWallThicknessMM
}

// Height возвращает высоту стены с учетом значения по умолчанию.
func (w WallSegment) Height() float64 {
	if w.HeightMM > 0 {
		return w.HeightMM
	}
	return DefaultWallHeightMM
}

func (w WallSegment) Length() float64 {
	return w.Start.Dist(w.End)
}

// Endpoints возвращает оба конца стены.
func (w WallSegment) Endpoints() [2]Point {
	return [2]Point{w.Start, w.End}
}

// Clone копирует стену вместе с properties.
func (w WallSegment) Clone() WallSegment {
	w.Properties = cloneProperties(w.Properties)
	return w
}

// ============================================================
// Openings
// ============================================================

type OpeningKind string

const (
	OpeningDoor        OpeningKind = "door"
	OpeningWindow      OpeningKind = "window"
	OpeningSlidingDoor OpeningKind = "slidingDoor"
)

const (
	DefaultDoorHeightMM   = 2100.0
	DefaultWindowHeightMM = 1200.0
	DefaultWindowSillMM   = 900.0
)

// Opening: дверь/окно как отрезок, который должен лежать на стене.
type Opening struct {
	ID             string      `json:"id"`
	Start          Point       `json:"start"`
	End            Point       `json:"end"`
	Kind           OpeningKind `json:"kind"`
	AttachedWallID string      `json:"attachedWallId,omitempty"`
	HeightMM       float64     `json:"heightMM,omitempty"`
	SillMM         *float64    `json:"sillMM,omitempty"`
}

func (o Opening) Length() float64 {
	return o.Start.Dist(o.End)
}

func (o Opening) Midpoint() Point {
	return o.Start.Mid(o.End)
}

// Dimensions возвращает высоту проема и высоту подоконника с учетом умолчаний по типу.
func (o Opening) Dimensions() (height, sill float64) {
	switch o.Kind {
	case OpeningWindow:
		height, sill = DefaultWindowHeightMM, DefaultWindowSillMM
	default:
		height, sill = DefaultDoorHeightMM, 0
	}
	if o.HeightMM > 0 {
		height = o.HeightMM
	}
	if o.SillMM != nil {
		sill = *o.SillMM
	}
	return height, sill
}

// ============================================================
// View
// ============================================================

// ViewState задает аффинное отображение pixel <-> world.
type ViewState struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
}

// DefaultView: масштаб 1:10 (1px = 10мм) без сдвига.
func DefaultView() ViewState {
	return ViewState{Zoom: 0.1}
}

// ============================================================
// Plan & templates
// ============================================================

// Plan: единица обмена между импортом, рендером, CLI и HTTP.
type Plan struct {
	ID       string        `json:"id"`
	Walls    []WallSegment `json:"walls"`
	Openings []Opening     `json:"openings"`
	Shapes   []Shape       `json:"shapes,omitempty"`
}

// WallByID ищет стену по идентификатору.
func (p *Plan) WallByID(id string) (WallSegment, bool) {
	for _, w := range p.Walls {
		if w.ID == id {
			return w, true
		}
	}
	return WallSegment{}, false
}

// Template: сохраненная группа фигур.
type Template struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Name      string    `json:"name"`
	Shapes    []Shape   `json:"shapes"`
	CreatedAt time.Time `json:"createdAt"`
}

func cloneProperties(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	cp := make(map[string]any, len(props))
	for k, v := range props {
		cp[k] = v
	}
	return cp
}
