// Package ids выдает сортируемые идентификаторы с префиксом типа (wall_01h..., tpl_01h...).
package ids

import (
	"fmt"

	"go.jetify.com/typeid/v2"

	"floorplan/internal/planner/models"
)

const (
	PrefixPlan     = "plan"
	PrefixWall     = "wall"
	PrefixOpening  = "open"
	PrefixShape    = "shape"
	PrefixTemplate = "tpl"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewPlanID() string     { return New(PrefixPlan) }
func NewWallID() string     { return New(PrefixWall) }
func NewOpeningID() string  { return New(PrefixOpening) }
func NewTemplateID() string { return New(PrefixTemplate) }

// ForShape выдает id копии фигуры: стены получают префикс wall, проемы open, остальное shape.
func ForShape(s models.Shape) string {
	switch s.Type {
	case models.ShapeTypeWall:
		return NewWallID()
	case models.ShapeTypeDoor, models.ShapeTypeWindow:
		return NewOpeningID()
	default:
		return New(PrefixShape)
	}
}

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
