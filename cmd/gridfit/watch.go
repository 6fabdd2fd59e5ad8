package gridfit

import (
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/dasdy/gridfit/watch"
	"github.com/spf13/cobra"
)

func writeSnapshot(w io.Writer, snapshot watch.Snapshot) {
	fmt.Fprintf(w, "#%d %s\n", snapshot.Generation, snapshot.At.Format("15:04:05"))

	if snapshot.Err != nil {
		fmt.Fprintf(w, "  error: %s\n", snapshot.Err)

		return
	}

	if err := applyOverrides(snapshot.Layout); err != nil {
		fmt.Fprintf(w, "  error: %s\n", err)

		return
	}

	writeReports(w, snapshot.Layout.Reports())

	if snapshot.Skipped > 0 {
		fmt.Fprintf(w, "  %d components skipped\n", snapshot.Skipped)
	}
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print a utilization report every time the layout file changes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if layoutPath == "" {
			return errors.New("watch needs --layout")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		watcher, err := watch.NewWatcher(layoutPath)
		if err != nil {
			return err
		}
		defer watcher.Stop()

		if err := watcher.Start(ctx); err != nil {
			return err
		}

		for snapshot := range watcher.Reports() {
			writeSnapshot(cmd.OutOrStdout(), snapshot)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
