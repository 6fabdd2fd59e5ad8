package gridfit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dasdy/gridfit/db"
	"github.com/dasdy/gridfit/nav"
	"github.com/dasdy/gridfit/watch"
	"github.com/dasdy/gridfit/web"
	"github.com/dasdy/gridfit/web/routes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// reloadOnChange swaps the served layout every time the layout file changes.
func reloadOnChange(ctx context.Context, handler *routes.ServerHandler) (*watch.Watcher, error) {
	watcher, err := watch.NewWatcher(layoutPath)
	if err != nil {
		return nil, err
	}

	if err := watcher.Start(ctx); err != nil {
		return nil, err
	}

	go func() {
		for snapshot := range watcher.Reports() {
			if snapshot.Err != nil {
				continue
			}

			if err := applyOverrides(snapshot.Layout); err != nil {
				slog.Error("Ignoring reloaded layout", "error", err)

				continue
			}

			handler.SetLayout(snapshot.Layout)
			slog.Info("Layout reloaded", "generation", snapshot.Generation, "screens", len(snapshot.Layout.Screens))
		}
	}()

	return watcher, nil
}

// showCmd represents the show command.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Run the dashboard web interface",
	Long: `Serve every subscreen as a grid together with its utilization report.
Visits and favorites are stored in the sqlite file given by --storage.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		slog.Debug("Config", "file", viper.ConfigFileUsed(), "settings", viper.AllSettings())

		l, err := loadLayout()
		if err != nil {
			return err
		}

		storage, err := db.NewStorageFromPath(storagePath)
		if err != nil {
			return fmt.Errorf("could not open %s as sqlite file: %w", storagePath, err)
		}
		defer storage.Close()

		transitions, err := db.NewTransitionCounterFromDB(storage)
		if err != nil {
			return fmt.Errorf("could not create transition counter: %w", err)
		}

		popularity, err := db.NewPopularityCounterFromDB(storage)
		if err != nil {
			return fmt.Errorf("could not create popularity counter: %w", err)
		}

		navigator, err := nav.NewNavigator(storage, nav.DefaultHistoryLimit)
		if err != nil {
			return err
		}

		handler := routes.NewServerHandler(l, storage, transitions, navigator)
		handler.Popularity = popularity

		if dev && layoutPath != "" {
			watcher, err := reloadOnChange(cmd.Context(), handler)
			if err != nil {
				return fmt.Errorf("could not watch layout: %w", err)
			}
			defer watcher.Stop()
		}

		return web.StartServer(port, handler, dev)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVarP(&port, "port", "p", 9000,
		"Port on which server should be watching")

	showCmd.Flags().StringVarP(
		&storagePath,
		"storage",
		"s",
		"./gridfit.sqlite",
		"Path to the sqlite file with visits and favorites")

	showCmd.Flags().BoolVar(&dev,
		"dev",
		false,
		"Enable developer mode: no caching and reload the layout file on change")
}
