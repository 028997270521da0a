// Package coords переводит координаты между пикселями экрана и миллиметрами плана.
package coords

import (
	"math"

	"floorplan/internal/planner/models"
)

// ============================================================
// Coordinate Transform
// ============================================================

// Пределы zoom (пикселей на миллиметр).
const (
	MinZoom = 0.01
	MaxZoom = 20.0
)

// PixelToWorld переводит экранную точку в миллиметры. Требует view.Zoom > 0.
func PixelToWorld(px, py float64, view models.ViewState) models.Point {
	return models.Point{
		X: (px - view.PanX) / view.Zoom,
		Y: (py - view.PanY) / view.Zoom,
	}
}

// WorldToPixel: точная обратная операция к PixelToWorld.
func WorldToPixel(p models.Point, view models.ViewState) models.Point {
	return models.Point{
		X: p.X*view.Zoom + view.PanX,
		Y: p.Y*view.Zoom + view.PanY,
	}
}

// PixelDistanceToWorld переводит длину без учета сдвига.
func PixelDistanceToWorld(d float64, view models.ViewState) float64 {
	return d / view.Zoom
}

// WorldDistanceToPixel переводит длину без учета сдвига.
func WorldDistanceToPixel(d float64, view models.ViewState) float64 {
	return d * view.Zoom
}

// SnapToGrid округляет значение до ближайшего кратного шагу сетки.
func SnapToGrid(v, gridSizeMM float64, enabled bool) float64 {
	if !enabled || gridSizeMM <= 0 {
		return v
	}
	return math.Round(v/gridSizeMM) * gridSizeMM
}

// SnapPointToGrid применяет SnapToGrid к обеим осям.
func SnapPointToGrid(p models.Point, gridSizeMM float64, enabled bool) models.Point {
	return models.Point{
		X: SnapToGrid(p.X, gridSizeMM, enabled),
		Y: SnapToGrid(p.Y, gridSizeMM, enabled),
	}
}

// ClampZoom удерживает zoom в [MinZoom, MaxZoom]; нечисловые и неположительные значения дают MinZoom.
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) || z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// ZoomAt масштабирует вид так, что мировая точка под anchor (в пикселях) остается на месте.
func ZoomAt(view models.ViewState, factor float64, anchor models.Point) models.ViewState {
	world := PixelToWorld(anchor.X, anchor.Y, view)
	zoom := ClampZoom(view.Zoom * factor)
	return models.ViewState{
		Zoom: zoom,
		PanX: anchor.X - world.X*zoom,
		PanY: anchor.Y - world.Y*zoom,
	}
}

// FitView подбирает вид, при котором bounds целиком помещаются в окно width x height с отступом padding (px).
func FitView(min, max models.Point, width, height, padding float64) models.ViewState {
	spanX, spanY := max.X-min.X, max.Y-min.Y
	availX, availY := width-2*padding, height-2*padding
	if spanX <= 0 || spanY <= 0 || availX <= 0 || availY <= 0 {
		return models.ViewState{Zoom: 1, PanX: padding - min.X, PanY: padding - min.Y}
	}

	zoom := ClampZoom(math.Min(availX/spanX, availY/spanY))
	return models.ViewState{
		Zoom: zoom,
		PanX: padding - min.X*zoom,
		PanY: padding - min.Y*zoom,
	}
}
