package gridfit

import (
	"fmt"
	"os"

	"github.com/dasdy/gridfit/db"
	"github.com/spf13/cobra"
)

var (
	filenames    []string
	mergeOutPath string
)

// mergeCmd represents the merge command.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge several history databases into one",
	Long:  `Given several sqlite files, create a new one with all their visits and the union of their favorites.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		if len(filenames) == 0 {
			return fmt.Errorf("nothing to merge, pass at least one --file")
		}

		if _, err := os.Stat(mergeOutPath); err == nil {
			return fmt.Errorf("output file %s already exists", mergeOutPath)
		}

		inputs := make([]*db.SQLiteStorage, 0, len(filenames))

		defer func() {
			for _, in := range inputs {
				in.Close()
			}
		}()

		for _, fn := range filenames {
			store, err := db.NewStorageFromPath(fn)
			if err != nil {
				return err
			}

			inputs = append(inputs, store)
		}

		output, err := db.NewStorageFromPath(mergeOutPath)
		if err != nil {
			return err
		}
		defer output.Close()

		return db.Merge(inputs, output)
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringSliceVarP(
		&filenames,
		"file",
		"f",
		[]string{},
		"List of filenames to merge data into",
	)

	mergeCmd.Flags().StringVarP(
		&mergeOutPath,
		"out",
		"o",
		"./merged.sqlite",
		"Output path for the merged database")
}
