package grid

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dasdy/gridfit/model"
	"github.com/google/uuid"
)

// Limits bounds how far the rebalancer may grow or shrink placements.
type Limits struct {
	MaxWidth     int
	MaxHeight    int
	TargetAspect float64
	// GrowCandidates is how many of the largest components may be grown.
	GrowCandidates int

	MinWidth         int
	MinHeight        int
	ShrinkThreshold  int
	ShrinkWidthStep  int
	ShrinkHeightStep int

	// FillerSizes must be ordered from the largest area to the smallest.
	FillerSizes      []model.Size
	MaxFillers       int
	MinFillerDeficit int
}

func DefaultLimits() Limits {
	return Limits{
		MaxWidth:       18,
		MaxHeight:      10,
		TargetAspect:   1.5,
		GrowCandidates: 2,

		MinWidth:         6,
		MinHeight:        3,
		ShrinkThreshold:  40,
		ShrinkWidthStep:  2,
		ShrinkHeightStep: 1,

		FillerSizes: []model.Size{
			{Width: 6, Height: 4},
			{Width: 6, Height: 3},
			{Width: 4, Height: 3},
		},
		MaxFillers:       3,
		MinFillerDeficit: 12,
	}
}

type Options struct {
	Limits Limits
	// Strict surfaces invalid placements as errors. Otherwise a screen with
	// invalid placements is left alone: the valid ones come back unchanged and
	// the invalid ones are reported in Result.Warnings.
	Strict bool
}

func DefaultOptions() Options {
	return Options{Limits: DefaultLimits()}
}

type Result struct {
	Placements []model.Placement
	Before     model.UtilizationReport
	After      model.UtilizationReport
	// Warnings collects non-fatal problems: invalid placements and
	// ErrGridCapacityExceeded.
	Warnings []error
}

// Changed reports whether rebalancing touched anything.
func (r Result) Changed() bool {
	return r.Before.OccupiedCells != r.After.OccupiedCells || r.Before.Percent != r.After.Percent
}

// Rebalance moves utilization of the placements towards the band's ideal.
// Optimal input comes back as an unchanged copy. The input slice is never
// modified.
//
// Growth picks primary and secondary components before any others, so a small
// primary is grown ahead of a larger widget. Area only orders placements of the
// same rank.
func Rebalance(placements []model.Placement, spec model.GridSpec, band model.Band, opts Options) (Result, error) {
	return RebalanceScreen(model.Subscreen{Placements: placements}, spec, band, opts)
}

func RebalanceScreen(screen model.Subscreen, spec model.GridSpec, band model.Band, opts Options) (Result, error) {
	valid := make([]model.Placement, 0, len(screen.Placements))

	var (
		warnings []error
		invalid  []error
	)

	for _, p := range screen.Placements {
		if err := Validate(p); err != nil {
			invalid = append(invalid, err)

			continue
		}

		valid = append(valid, p)
	}

	if len(invalid) > 0 {
		if opts.Strict {
			return Result{}, fmt.Errorf("could not rebalance %s: %w", screen.ID, errors.Join(invalid...))
		}

		for _, err := range invalid {
			slog.Warn("Skipping rebalance of screen with invalid placement", "screen", screen.ID, "error", err)
		}

		warnings = append(warnings, invalid...)
	}

	current := screen
	current.Placements = valid
	before := ComputeUtilization(current, spec, band)

	if len(invalid) > 0 {
		return Result{
			Placements: slices.Clone(valid),
			Before:     before,
			After:      before,
			Warnings:   warnings,
		}, nil
	}

	var (
		out []model.Placement
		err error
	)

	switch before.Classification {
	case model.UnderUtilized:
		deficit := IdealCells(spec, band) - before.OccupiedCells
		slog.Debug("Screen under-utilized", "screen", screen.ID, "percent", before.Percent, "deficit", deficit)
		out, err = IncreaseUtilization(valid, deficit, spec, opts.Limits)
	case model.OverUtilized:
		excess := before.OccupiedCells - IdealCells(spec, band)
		slog.Debug("Screen over-utilized", "screen", screen.ID, "percent", before.Percent, "excess", excess)
		out, err = DecreaseUtilization(valid, excess, opts.Limits)
	default:
		out = slices.Clone(valid)
	}

	if err != nil {
		slog.Warn("Rebalance stopped early", "screen", screen.ID, "error", err)
		warnings = append(warnings, err)
	}

	current.Placements = out
	after := ComputeUtilization(current, spec, band)

	return Result{
		Placements: out,
		Before:     before,
		After:      after,
		Warnings:   warnings,
	}, nil
}

func kindRank(kind model.ComponentKind) int {
	switch kind {
	case model.KindPrimary:
		return 0
	case model.KindSecondary:
		return 1
	default:
		return 2
	}
}

// growOrder returns placement indices ordered primary, secondary, then by
// area descending. Fillers are never grown.
func growOrder(placements []model.Placement) []int {
	order := make([]int, 0, len(placements))

	for i, p := range placements {
		if p.Kind == model.KindFiller {
			continue
		}

		order = append(order, i)
	}

	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Or(
			cmp.Compare(kindRank(placements[a].Kind), kindRank(placements[b].Kind)),
			-cmp.Compare(placements[a].Area(), placements[b].Area()),
		)
	})

	return order
}

// IncreaseUtilization grows the largest components towards the target aspect
// ratio and then adds up to MaxFillers filler placements. deficitCells is the
// number of cells still missing. The returned error, if any, wraps
// ErrGridCapacityExceeded and the returned placements are still valid.
func IncreaseUtilization(placements []model.Placement, deficitCells int, spec model.GridSpec, limits Limits) ([]model.Placement, error) {
	result := slices.Clone(placements)
	if deficitCells <= 0 {
		return result, nil
	}

	remaining := deficitCells

	order := growOrder(result)
	if len(order) > limits.GrowCandidates {
		order = order[:limits.GrowCandidates]
	}

	for _, idx := range order {
		if remaining <= 0 {
			break
		}

		remaining = grow(&result[idx], remaining, spec, limits)
	}

	added := 0
	for remaining >= limits.MinFillerDeficit && added < limits.MaxFillers {
		filler, ok := nextFiller(result, remaining, spec, limits)
		if !ok {
			break
		}

		result = append(result, filler)
		remaining -= filler.Area()
		added++
	}

	if remaining >= limits.MinFillerDeficit {
		return result, fmt.Errorf("%w: %d cells short after growing and %d fillers", ErrGridCapacityExceeded, remaining, added)
	}

	return result, nil
}

// grow expands p one row or column at a time and returns the remaining deficit.
// Width grows while the ratio is below target, height otherwise.
func grow(p *model.Placement, remaining int, spec model.GridSpec, limits Limits) int {
	maxW := min(limits.MaxWidth, spec.Columns-p.Anchor.Column)
	maxH := min(limits.MaxHeight, spec.Rows-p.Anchor.Row)

	for remaining > 0 {
		w, h := p.Size.Width, p.Size.Height
		ratio := float64(w) / float64(h)

		switch {
		case ratio < limits.TargetAspect && w < maxW:
			p.Size.Width++
			remaining -= h
		case h < maxH:
			p.Size.Height++
			remaining -= w
		case w < maxW:
			p.Size.Width++
			remaining -= h
		default:
			return remaining
		}
	}

	return remaining
}

func nextFiller(placements []model.Placement, remaining int, spec model.GridSpec, limits Limits) (model.Placement, bool) {
	occupied := occupancy(placements, spec)

	for _, size := range limits.FillerSizes {
		if size.Area() > remaining {
			continue
		}

		anchor, ok := findFreeSpot(occupied, spec, size)
		if !ok {
			continue
		}

		return model.Placement{
			ID:     "filler-" + uuid.NewString(),
			Name:   "Filler",
			Kind:   model.KindFiller,
			Size:   size,
			Anchor: anchor,
		}, true
	}

	return model.Placement{}, false
}

func occupancy(placements []model.Placement, spec model.GridSpec) [][]bool {
	cells := make([][]bool, max(spec.Rows, 0))
	for r := range cells {
		cells[r] = make([]bool, max(spec.Columns, 0))
	}

	for _, p := range placements {
		for r := p.Anchor.Row; r < p.Anchor.Row+p.Size.Height && r < spec.Rows; r++ {
			for c := p.Anchor.Column; c < p.Anchor.Column+p.Size.Width && c < spec.Columns; c++ {
				if r >= 0 && c >= 0 {
					cells[r][c] = true
				}
			}
		}
	}

	return cells
}

// findFreeSpot scans row-major for the first anchor where size fits.
func findFreeSpot(cells [][]bool, spec model.GridSpec, size model.Size) (model.Anchor, bool) {
	for r := 0; r+size.Height <= spec.Rows; r++ {
		for c := 0; c+size.Width <= spec.Columns; c++ {
			if fits(cells, r, c, size) {
				return model.Anchor{Column: c, Row: r}, true
			}
		}
	}

	return model.Anchor{}, false
}

func fits(cells [][]bool, row, col int, size model.Size) bool {
	for r := row; r < row+size.Height; r++ {
		for c := col; c < col+size.Width; c++ {
			if cells[r][c] {
				return false
			}
		}
	}

	return true
}

// DecreaseUtilization shrinks components larger than ShrinkThreshold by fixed
// steps, one step per component per pass, until excessCells is covered or
// nothing can shrink any more.
func DecreaseUtilization(placements []model.Placement, excessCells int, limits Limits) ([]model.Placement, error) {
	result := slices.Clone(placements)
	remaining := excessCells

	for remaining > 0 {
		order := make([]int, 0, len(result))

		for i, p := range result {
			if p.Area() > limits.ShrinkThreshold {
				order = append(order, i)
			}
		}

		slices.SortStableFunc(order, func(a, b int) int {
			return -cmp.Compare(result[a].Area(), result[b].Area())
		})

		shrunk := false

		for _, idx := range order {
			if remaining <= 0 {
				break
			}

			p := &result[idx]
			before := p.Area()
			p.Size.Width = shrinkDim(p.Size.Width, limits.ShrinkWidthStep, limits.MinWidth)
			p.Size.Height = shrinkDim(p.Size.Height, limits.ShrinkHeightStep, limits.MinHeight)

			if gained := before - p.Area(); gained > 0 {
				remaining -= gained
				shrunk = true
			}
		}

		if !shrunk {
			break
		}
	}

	if remaining > 0 {
		return result, fmt.Errorf("%w: %d cells over after shrinking to minimum sizes", ErrGridCapacityExceeded, remaining)
	}

	return result, nil
}

// shrinkDim never grows a dimension that already sits below its minimum.
func shrinkDim(value, step, minimum int) int {
	if value <= minimum {
		return value
	}

	return max(value-step, minimum)
}
