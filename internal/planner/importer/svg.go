package importer

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"floorplan/internal/planner/models"
)

// ============================================================
// XML Structures
// ============================================================

type svgDocument struct {
	XMLName xml.Name `xml:"svg"`
	svgGroup
}

// svgGroup: содержимое <svg> или <g>: элементы и вложенные группы.
type svgGroup struct {
	ID     string     `xml:"id,attr"`
	Rects  []svgRect  `xml:"rect"`
	Paths  []svgPath  `xml:"path"`
	Groups []svgGroup `xml:"g"`
}

type svgRect struct {
	ID     string  `xml:"id,attr"`
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type svgPath struct {
	ID string `xml:"id,attr"`
	D  string `xml:"d,attr"`
}

// ============================================================
// Parser
// ============================================================

// ParseSVG читает SVG и возвращает элементы, распознанные по префиксу id
// (Wall_, Door_, SlidingDoor_, Window_). Остальные элементы пропускаются.
func ParseSVG(r io.Reader) ([]models.SVGElement, error) {
	var doc svgDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode svg: %w", err)
	}

	var elements []models.SVGElement
	collect(doc.svgGroup, &elements)
	return elements, nil
}

func collect(g svgGroup, out *[]models.SVGElement) {
	for _, rect := range g.Rects {
		elemType := classifyElementByID(rect.ID)
		if elemType == "" {
			continue
		}
		*out = append(*out, models.SVGElement{
			ID:   rect.ID,
			Type: elemType,
			Geometry: models.RectGeometry{
				X:      rect.X,
				Y:      rect.Y,
				Width:  rect.Width,
				Height: rect.Height,
			},
		})
	}

	for _, path := range g.Paths {
		elemType := classifyElementByID(path.ID)
		if elemType == "" {
			continue
		}
		*out = append(*out, models.SVGElement{
			ID:       path.ID,
			Type:     elemType,
			Geometry: models.PathGeometry{D: path.D},
		})
	}

	for _, child := range g.Groups {
		collect(child, out)
	}
}

func classifyElementByID(id string) models.ElementType {
	switch {
	case strings.HasPrefix(id, "Wall_"):
		return models.ElementWall
	case strings.HasPrefix(id, "SlidingDoor_"):
		return models.ElementSlidingDoor
	case strings.HasPrefix(id, "Door_"):
		return models.ElementDoor
	case strings.HasPrefix(id, "Window_"):
		return models.ElementWindow
	}
	return ""
}
