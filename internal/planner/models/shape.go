package models

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// Shapes
// ============================================================

// Семантические типы фигур редактора.
const (
	ShapeTypeWall   = "wall"
	ShapeTypeDoor   = "door"
	ShapeTypeWindow = "window"
	ShapeTypeObject = "object"
)

// PropAttachedWallID: ключ properties, которым проем ссылается на стену.
const PropAttachedWallID = "attachedWallId"

// WallRelative задает 3D-объект относительно стены.
type WallRelative struct {
	WallID                string  `json:"wallId"`
	DistanceFromWallStart float64 `json:"distanceFromWallStart"`
	PerpendicularOffset   float64 `json:"perpendicularOffset"`
	ElevationBottom       float64 `json:"elevationBottom"`
	Width                 float64 `json:"width"`
	Height                float64 `json:"height"`
	Depth                 float64 `json:"depth"`
}

// Shape: фигура редактора. Координаты лежат в Geometry, тип кодировки определяется Geometry.Kind().
type Shape struct {
	ID           string
	PlanID       string
	Type         string
	Geometry     Geometry
	WallRelative *WallRelative
	Properties   map[string]any
}

// Clone возвращает глубокую копию фигуры.
func (s Shape) Clone() Shape {
	if s.Geometry != nil {
		s.Geometry = s.Geometry.Translate(0, 0)
	}
	if s.WallRelative != nil {
		wr := *s.WallRelative
		s.WallRelative = &wr
	}
	s.Properties = cloneProperties(s.Properties)
	return s
}

// ============================================================
// JSON
// ============================================================

type geometryEnvelope struct {
	Kind        GeometryKind    `json:"kind"`
	Coordinates json.RawMessage `json:"coordinates"`
}

type shapeJSON struct {
	ID           string           `json:"id"`
	PlanID       string           `json:"planId,omitempty"`
	Type         string           `json:"type"`
	Geometry     geometryEnvelope `json:"geometry"`
	WallRelative *WallRelative    `json:"wallRelative,omitempty"`
	Properties   map[string]any   `json:"properties,omitempty"`
}

func (s Shape) MarshalJSON() ([]byte, error) {
	out := shapeJSON{
		ID:           s.ID,
		PlanID:       s.PlanID,
		Type:         s.Type,
		WallRelative: s.WallRelative,
		Properties:   s.Properties,
	}

	switch g := s.Geometry.(type) {
	case nil:
		out.Geometry.Coordinates = json.RawMessage("null")
	case UnknownGeometry:
		out.Geometry.Kind = g.Kind()
		out.Geometry.Coordinates = g.Raw
		if len(g.Raw) == 0 {
			out.Geometry.Coordinates = json.RawMessage("null")
		}
	default:
		raw, err := json.Marshal(g)
		if err != nil {
			return nil, fmt.Errorf("marshal %s geometry: %w", g.Kind(), err)
		}
		out.Geometry.Kind = g.Kind()
		out.Geometry.Coordinates = raw
	}

	return json.Marshal(out)
}

func (s *Shape) UnmarshalJSON(data []byte) error {
	var in shapeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	geom, err := decodeGeometry(in.Geometry)
	if err != nil {
		return fmt.Errorf("shape %s: %w", in.ID, err)
	}

	*s = Shape{
		ID:           in.ID,
		PlanID:       in.PlanID,
		Type:         in.Type,
		Geometry:     geom,
		WallRelative: in.WallRelative,
		Properties:   in.Properties,
	}
	return nil
}

func decodeGeometry(env geometryEnvelope) (Geometry, error) {
	var (
		g   Geometry
		err error
	)

	switch env.Kind {
	case KindLine:
		var v LineGeometry
		err = json.Unmarshal(env.Coordinates, &v)
		g = v
	case KindPolygon:
		var v PolygonGeometry
		err = json.Unmarshal(env.Coordinates, &v)
		g = v
	case KindRectangle:
		var v RectangleGeometry
		err = json.Unmarshal(env.Coordinates, &v)
		g = v
	case KindCircle:
		var v CircleGeometry
		err = json.Unmarshal(env.Coordinates, &v)
		g = v
	case KindSymbol:
		var v SymbolGeometry
		err = json.Unmarshal(env.Coordinates, &v)
		g = v
	case KindText:
		var v TextGeometry
		err = json.Unmarshal(env.Coordinates, &v)
		g = v
	default:
		return UnknownGeometry{RawKind: string(env.Kind), Raw: env.Coordinates}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("decode %s geometry: %w", env.Kind, err)
	}
	return g, nil
}
