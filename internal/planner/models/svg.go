package models

// ============================================================
// SVG Elements (import input)
// ============================================================

type ElementType string

const (
	ElementWall        ElementType = "wall"
	ElementDoor        ElementType = "door"
	ElementSlidingDoor ElementType = "slidingDoor"
	ElementWindow      ElementType = "window"
)

// SVGElement: распознанный элемент плана до перевода в стены и проемы.
type SVGElement struct {
	ID       string
	Type     ElementType
	Geometry ElementGeometry
}

// ElementGeometry: rect или path из исходного SVG.
type ElementGeometry interface {
	isElementGeometry()
}

type RectGeometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type PathGeometry struct {
	D string
}

func (RectGeometry) isElementGeometry() {}
func (PathGeometry) isElementGeometry() {}
