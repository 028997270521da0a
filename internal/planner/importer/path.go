package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"floorplan/internal/planner/models"
)

// ============================================================
// Path Parser
// ============================================================

var pathCommand = regexp.MustCompile(`([MmLlHhVvZz])([^MmLlHhVvZz]*)`)

// ParsePath парсит SVG path (команды M, L, H, V, Z и их относительные версии) в список точек.
// Несколько пар координат после M/L трактуются как последовательные отрезки.
func ParsePath(d string) ([]models.Point, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}

	var (
		points     []models.Point
		cur        models.Point
		subpathIdx int
	)

	for _, match := range pathCommand.FindAllStringSubmatch(d, -1) {
		cmd := match[1]
		coords := parseCoords(match[2])

		switch cmd {
		case "M", "L":
			for i := 0; i+1 < len(coords); i += 2 {
				cur = models.Point{X: coords[i], Y: coords[i+1]}
				if cmd == "M" && i == 0 {
					subpathIdx = len(points)
				}
				points = append(points, cur)
			}
		case "m", "l":
			for i := 0; i+1 < len(coords); i += 2 {
				cur = models.Point{X: cur.X + coords[i], Y: cur.Y + coords[i+1]}
				if cmd == "m" && i == 0 {
					subpathIdx = len(points)
				}
				points = append(points, cur)
			}
		case "H", "h", "V", "v":
			for _, v := range coords {
				switch cmd {
				case "H":
					cur.X = v
				case "h":
					cur.X += v
				case "V":
					cur.Y = v
				case "v":
					cur.Y += v
				}
				points = append(points, cur)
			}
		case "Z", "z":
			// замыкаем текущий подпуть
			if subpathIdx < len(points) {
				cur = points[subpathIdx]
				points = append(points, cur)
			}
		}
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("path %q has no points", d)
	}
	return points, nil
}

func parseCoords(s string) []float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	// Разделитель: запятая или пробел
	parts := strings.Fields(strings.ReplaceAll(s, ",", " "))

	coords := make([]float64, 0, len(parts))
	for _, part := range parts {
		if val, err := strconv.ParseFloat(part, 64); err == nil {
			coords = append(coords, val)
		}
	}
	return coords
}
