package grid

import (
	"math"

	"github.com/dasdy/gridfit/model"
)

// OccupiedCells sums width*height over all placements. Overlaps are counted
// twice: nothing on the grid prevents them, callers pick disjoint anchors.
func OccupiedCells(placements []model.Placement) int {
	total := 0
	for _, p := range placements {
		if p.Size.Width <= 0 || p.Size.Height <= 0 {
			continue
		}

		total += p.Area()
	}

	return total
}

// CalculateUtilization returns the occupied share of the grid in percent.
// An empty screen or a degenerate grid yields 0.
func CalculateUtilization(placements []model.Placement, spec model.GridSpec) float64 {
	total := spec.TotalCells()
	if total == 0 || len(placements) == 0 {
		return 0
	}

	return float64(OccupiedCells(placements)) / float64(total) * 100
}

func Classify(percent float64, band model.Band) model.Classification {
	switch {
	case percent < band.Min:
		return model.UnderUtilized
	case percent > band.Max:
		return model.OverUtilized
	default:
		return model.Optimal
	}
}

func ComputeUtilization(screen model.Subscreen, spec model.GridSpec, band model.Band) model.UtilizationReport {
	percent := CalculateUtilization(screen.Placements, spec)

	return model.UtilizationReport{
		Screen:          screen.ID,
		OccupiedCells:   OccupiedCells(screen.Placements),
		TotalCells:      spec.TotalCells(),
		Percent:         percent,
		Classification:  Classify(percent, band),
		CognitiveLoad:   screen.CognitiveLoad(),
		CognitiveBudget: screen.CognitiveBudget,
	}
}

// IdealCells is the cell count matching the band's ideal, rounded to the
// nearest cell.
func IdealCells(spec model.GridSpec, band model.Band) int {
	return int(math.Round(float64(spec.TotalCells()) * band.Ideal / 100))
}
