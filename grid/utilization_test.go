package grid_test

import (
	"testing"

	"github.com/dasdy/gridfit/grid"
	"github.com/dasdy/gridfit/model"
	"github.com/stretchr/testify/assert"
)

func sized(sizes ...model.Size) []model.Placement {
	result := make([]model.Placement, 0, len(sizes))
	for _, s := range sizes {
		result = append(result, model.Placement{Size: s})
	}

	return result
}

func TestCalculateUtilization(t *testing.T) {
	spec := model.DefaultGrid()

	t.Run("empty screen is zero", func(t *testing.T) {
		assert.InDelta(t, 0.0, grid.CalculateUtilization(nil, spec), 1e-9)
		assert.InDelta(t, 0.0, grid.CalculateUtilization([]model.Placement{}, spec), 1e-9)
	})

	t.Run("degenerate grid is zero", func(t *testing.T) {
		placements := sized(model.Size{Width: 2, Height: 2})

		assert.InDelta(t, 0.0, grid.CalculateUtilization(placements, model.GridSpec{}), 1e-9)
	})

	t.Run("keeps float precision", func(t *testing.T) {
		placements := sized(
			model.Size{Width: 15, Height: 8},
			model.Size{Width: 10, Height: 8},
			model.Size{Width: 8, Height: 5},
			model.Size{Width: 8, Height: 5},
			model.Size{Width: 8, Height: 5},
		)

		assert.Equal(t, 320, grid.OccupiedCells(placements))
		assert.InDelta(t, 320.0/703.0*100, grid.CalculateUtilization(placements, spec), 1e-9)
	})

	t.Run("monotonic in placement area", func(t *testing.T) {
		placements := sized(
			model.Size{Width: 3, Height: 2},
			model.Size{Width: 7, Height: 4},
			model.Size{Width: 1, Height: 1},
		)

		prev := grid.CalculateUtilization(placements, spec)

		for step := range 20 {
			idx := step % len(placements)
			if step%2 == 0 {
				placements[idx].Size.Width++
			} else {
				placements[idx].Size.Height++
			}

			cur := grid.CalculateUtilization(placements, spec)
			assert.GreaterOrEqual(t, cur, prev)

			prev = cur
		}
	})
}

func TestClassify(t *testing.T) {
	band := model.DefaultBand()

	testCases := []struct {
		percent  float64
		expected model.Classification
	}{
		{0, model.UnderUtilized},
		{59.99, model.UnderUtilized},
		{60, model.Optimal},
		{70, model.Optimal},
		{80, model.Optimal},
		{80.01, model.OverUtilized},
		{100, model.OverUtilized},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, grid.Classify(tc.percent, band), "percent %v", tc.percent)
	}

	t.Run("three contiguous intervals", func(t *testing.T) {
		transitions := 0
		prev := grid.Classify(0, band)

		for i := 1; i <= 10000; i++ {
			cur := grid.Classify(float64(i)/100, band)
			if cur != prev {
				transitions++
			}

			prev = cur
		}

		assert.Equal(t, 2, transitions)
	})
}

func TestComputeUtilization(t *testing.T) {
	t.Run("empty screen is under-utilized", func(t *testing.T) {
		screen := model.Subscreen{ID: model.ScreenID{Tab: "squad", Subscreen: "overview"}}

		report := grid.ComputeUtilization(screen, model.DefaultGrid(), model.DefaultBand())

		assert.Equal(t, model.UnderUtilized, report.Classification)
		assert.Equal(t, 703, report.TotalCells)
		assert.Equal(t, "0.0%", report.Display())
	})

	t.Run("reports cognitive load", func(t *testing.T) {
		screen := model.Subscreen{
			ID:              model.ScreenID{Tab: "finances", Subscreen: "summary"},
			CognitiveBudget: 10,
			Placements: []model.Placement{
				{Size: model.Size{Width: 18, Height: 10}, CognitiveLoad: 7},
				{Size: model.Size{Width: 18, Height: 10}, CognitiveLoad: 5},
			},
		}

		report := grid.ComputeUtilization(screen, model.DefaultGrid(), model.DefaultBand())

		assert.Equal(t, 360, report.OccupiedCells)
		assert.Equal(t, "51.2%", report.Display())
		assert.Equal(t, 12, report.CognitiveLoad)
		assert.True(t, report.OverBudget())
	})
}

func TestIdealCells(t *testing.T) {
	assert.Equal(t, 492, grid.IdealCells(model.DefaultGrid(), model.DefaultBand()))
}
