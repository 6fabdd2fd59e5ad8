package gridfit

import (
	"fmt"
	"io"

	"github.com/dasdy/gridfit/db"
	"github.com/dasdy/gridfit/nav"
	"github.com/spf13/cobra"
)

func openFavorites() (*nav.Favorites, func(), error) {
	storage, err := db.NewStorageFromPath(storagePath)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open %s as sqlite file: %w", storagePath, err)
	}

	favorites, err := nav.NewFavorites(storage)
	if err != nil {
		storage.Close()

		return nil, nil, err
	}

	return favorites, storage.Close, nil
}

func writeFavorites(w io.Writer, favorites *nav.Favorites) {
	for _, id := range favorites.List() {
		fmt.Fprintln(w, id.String())
	}
}

func setFavorite(want bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := screenArg(args[0])
		if err != nil {
			return err
		}

		favorites, closeStorage, err := openFavorites()
		if err != nil {
			return err
		}
		defer closeStorage()

		if err := favorites.Set(id, want); err != nil {
			return err
		}

		writeFavorites(cmd.OutOrStdout(), favorites)

		return nil
	}
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage favorite subscreens",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite subscreens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		favorites, closeStorage, err := openFavorites()
		if err != nil {
			return err
		}
		defer closeStorage()

		writeFavorites(cmd.OutOrStdout(), favorites)

		return nil
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add tab/subscreen",
	Short: "Mark a subscreen as favorite",
	Args:  cobra.ExactArgs(1),
	RunE:  setFavorite(true),
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove tab/subscreen",
	Short: "Unmark a favorite subscreen",
	Args:  cobra.ExactArgs(1),
	RunE:  setFavorite(false),
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(favoritesListCmd, favoritesAddCmd, favoritesRemoveCmd)

	favoritesCmd.PersistentFlags().StringVarP(
		&storagePath,
		"storage",
		"s",
		"./gridfit.sqlite",
		"Path to the sqlite file with visits and favorites")
}
