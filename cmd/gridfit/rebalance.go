package gridfit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dasdy/gridfit/grid"
	"github.com/dasdy/gridfit/layout"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	outPath string
	strict  bool
)

// rebalanceAll rebalances every screen of l in place and returns the
// per-screen results in catalog order.
func rebalanceAll(l *layout.Layout, opts grid.Options, bar *progressbar.ProgressBar) ([]grid.Result, error) {
	results := make([]grid.Result, 0, len(l.Screens))

	for i := range l.Screens {
		screen := l.Screens[i]

		result, err := grid.RebalanceScreen(screen, l.Grid, l.Band, opts)
		if err != nil {
			return nil, fmt.Errorf("could not rebalance %s: %w", screen.ID, err)
		}

		for _, warning := range result.Warnings {
			level := slog.LevelWarn
			if errors.Is(warning, grid.ErrGridCapacityExceeded) {
				level = slog.LevelInfo
			}

			slog.Log(context.Background(), level, "Rebalance warning", "screen", screen.ID.String(), "warning", warning)
		}

		l.Screens[i].Placements = result.Placements
		results = append(results, result)

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Error("could not update progress bar", "error", err)
			}
		}
	}

	return results, nil
}

func writeResults(w io.Writer, results []grid.Result) {
	changed := 0

	for _, r := range results {
		writeChange(w, r.Before, r.After)

		if r.Changed() {
			changed++
		}
	}

	fmt.Fprintf(w, "%d of %d screens changed\n", changed, len(results))
}

var rebalanceCmd = &cobra.Command{
	Use:   "rebalance",
	Short: "Rebalance every subscreen toward the ideal utilization",
	Long: `Grows under-utilized subscreens (largest components first, then fillers)
and shrinks over-utilized ones. With --out the rebalanced layout is written to a file.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		l, err := loadLayout()
		if err != nil {
			return err
		}

		opts := grid.DefaultOptions()
		opts.Strict = strict

		bar := progressbar.Default(int64(len(l.Screens)), "Rebalancing...")

		results, err := rebalanceAll(l, opts, bar)
		if err != nil {
			return err
		}

		if err := bar.Finish(); err != nil {
			slog.Error("could not finish progress bar", "error", err)
		}

		writeResults(cmd.OutOrStdout(), results)

		if outPath != "" {
			if err := layout.Save(outPath, l); err != nil {
				return err
			}

			slog.Info("Rebalanced layout written", "path", outPath)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(rebalanceCmd)

	rebalanceCmd.Flags().StringVarP(&outPath, "out", "o", "",
		"Write the rebalanced layout to this file (.json or .yaml)")
	rebalanceCmd.Flags().BoolVar(&strict, "strict", false,
		"Fail on invalid placements instead of dropping them")
}
