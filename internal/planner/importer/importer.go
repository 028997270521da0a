// Package importer переводит SVG-чертеж плана в стены и проемы: стены строятся по осевым
// линиям прямоугольников, проемы привязываются к стенам.
package importer

import (
	"fmt"
	"io"

	"floorplan/internal/planner/coords"
	"floorplan/internal/planner/ids"
	"floorplan/internal/planner/models"
	"floorplan/internal/planner/openings"
)

// DefaultScaleMM: миллиметров в одной единице SVG.
const DefaultScaleMM = 10.0

// Options задает перевод координат SVG в миллиметры.
type Options struct {
	ScaleMM    float64
	GridSizeMM float64
	SnapToGrid bool
	Tolerances models.Tolerances
}

func DefaultOptions() Options {
	return Options{
		ScaleMM:    DefaultScaleMM,
		Tolerances: models.DefaultTolerances(),
	}
}

// Report: сводка импорта.
type Report struct {
	Walls              int      `json:"walls"`
	Openings           int      `json:"openings"`
	UnattachedOpenings []string `json:"unattachedOpenings,omitempty"`
}

// Importer конвертирует SVG → Plan.
type Importer struct {
	opts Options
}

func New(opts Options) *Importer {
	if opts.ScaleMM <= 0 {
		opts.ScaleMM = DefaultScaleMM
	}
	return &Importer{opts: opts}
}

// Import разбирает SVG, строит стены и привязывает проемы (сначала в разрыв между стенами,
// иначе к ближайшей стене). Непривязанные проемы остаются в плане без attachedWallId.
func (im *Importer) Import(r io.Reader) (models.Plan, Report, error) {
	elements, err := ParseSVG(r)
	if err != nil {
		return models.Plan{}, Report{}, fmt.Errorf("parse SVG: %w", err)
	}

	builder := newGraphBuilder()
	var openingElems []models.SVGElement
	for _, elem := range elements {
		if elem.Type == models.ElementWall {
			if err := builder.addElement(elem); err != nil {
				return models.Plan{}, Report{}, fmt.Errorf("build walls graph: %w", err)
			}
			continue
		}
		openingElems = append(openingElems, elem)
	}
	builder.build()

	plan := models.Plan{
		ID:       ids.NewPlanID(),
		Walls:    make([]models.WallSegment, 0, len(builder.edges)),
		Openings: make([]models.Opening, 0, len(openingElems)),
	}

	for _, e := range builder.edges {
		w := models.WallSegment{
			ID:          e.id,
			PlanID:      plan.ID,
			Start:       im.toWorld(builder.vertices[e.v1]),
			End:         im.toWorld(builder.vertices[e.v2]),
			ThicknessMM: e.thickness * im.opts.ScaleMM,
		}
		if w.Length() == 0 {
			continue
		}
		plan.Walls = append(plan.Walls, w)
	}

	report := Report{Walls: len(plan.Walls)}
	for _, elem := range openingElems {
		o, ok, err := im.openingFrom(elem)
		if err != nil {
			return models.Plan{}, Report{}, err
		}
		if !ok {
			continue
		}

		if res, ok := openings.SnapOpening(o, plan.Walls, im.opts.Tolerances); ok {
			o = res.Opening
		} else {
			report.UnattachedOpenings = append(report.UnattachedOpenings, o.ID)
		}
		plan.Openings = append(plan.Openings, o)
	}
	report.Openings = len(plan.Openings)

	return plan, report, nil
}

func (im *Importer) toWorld(p models.Point) models.Point {
	world := p.Scale(im.opts.ScaleMM)
	return coords.SnapPointToGrid(world, im.opts.GridSizeMM, im.opts.SnapToGrid)
}

// openingFrom берет осевую линию проема по длинной стороне bounding box.
func (im *Importer) openingFrom(elem models.SVGElement) (models.Opening, bool, error) {
	var minX, minY, maxX, maxY float64
	switch geom := elem.Geometry.(type) {
	case models.RectGeometry:
		minX, minY = geom.X, geom.Y
		maxX, maxY = geom.X+geom.Width, geom.Y+geom.Height
	case models.PathGeometry:
		points, err := ParsePath(geom.D)
		if err != nil {
			return models.Opening{}, false, fmt.Errorf("opening %s: %w", elem.ID, err)
		}
		minX, minY, maxX, maxY = boundsOf(points)
	default:
		return models.Opening{}, false, nil
	}

	line, ok := centerlineOf(elem.ID, minX, minY, maxX, maxY)
	if !ok {
		return models.Opening{}, false, nil
	}

	return models.Opening{
		ID:    elem.ID,
		Start: im.toWorld(line.p1),
		End:   im.toWorld(line.p2),
		Kind:  openingKind(elem.Type),
	}, true, nil
}

func openingKind(t models.ElementType) models.OpeningKind {
	switch t {
	case models.ElementWindow:
		return models.OpeningWindow
	case models.ElementSlidingDoor:
		return models.OpeningSlidingDoor
	default:
		return models.OpeningDoor
	}
}
