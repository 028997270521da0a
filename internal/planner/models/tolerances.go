package models

import "fmt"

// ============================================================
// Tolerances
// ============================================================

// Tolerances: все допуски ядра в миллиметрах мира (не зависят от zoom).
type Tolerances struct {
	Connect      float64 `toml:"connect_mm" json:"connectMM"`
	MergePoint   float64 `toml:"merge_point_mm" json:"mergePointMM"`
	AngleDegrees float64 `toml:"angle_degrees" json:"angleDegrees"`
	GapLength    float64 `toml:"gap_length_mm" json:"gapLengthMM"`
	GapCenter    float64 `toml:"gap_center_mm" json:"gapCenterMM"`
	MinSegment   float64 `toml:"min_segment_mm" json:"minSegmentMM"`
	SnapDistance float64 `toml:"snap_distance_mm" json:"snapDistanceMM"`
}

func DefaultTolerances() Tolerances {
	return Tolerances{
		Connect:      5,
		MergePoint:   1,
		AngleDegrees: 5,
		GapLength:    20,
		GapCenter:    50,
		MinSegment:   5,
		SnapDistance: 200,
	}
}

// Validate проверяет, что все допуски положительные и угол меньше 90°.
func (t Tolerances) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"connect_mm", t.Connect},
		{"merge_point_mm", t.MergePoint},
		{"angle_degrees", t.AngleDegrees},
		{"gap_length_mm", t.GapLength},
		{"gap_center_mm", t.GapCenter},
		{"min_segment_mm", t.MinSegment},
		{"snap_distance_mm", t.SnapDistance},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return fmt.Errorf("tolerance %s must be positive, got %v", f.name, f.value)
		}
	}
	if t.AngleDegrees >= 90 {
		return fmt.Errorf("tolerance angle_degrees must be below 90, got %v", t.AngleDegrees)
	}
	return nil
}
