package gridfit

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dasdy/gridfit/layout"
	"github.com/dasdy/gridfit/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

var (
	layoutPath  string
	storagePath string
	port        int
	dev         bool
	columns     int
	rows        int
	bandMin     float64
	bandIdeal   float64
	bandMax     float64
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gridfit",
	Short: "Measure and rebalance dashboard grid utilization",
	Long: `gridfit checks how much of the dashboard grid each subscreen occupies,
classifies it against the target band and can rebalance placements toward the ideal.
It also serves a small web interface rendering every subscreen.`,
	PersistentPreRun: bindFlags,
	SilenceUsage:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gridfit.toml)")
	rootCmd.PersistentFlags().StringVarP(&layoutPath, "layout", "l", "",
		"Layout file (.json or .yaml); the built-in catalog is used when empty")
	rootCmd.PersistentFlags().IntVar(&columns, "columns", 0, "Override grid columns")
	rootCmd.PersistentFlags().IntVar(&rows, "rows", 0, "Override grid rows")
	rootCmd.PersistentFlags().Float64Var(&bandMin, "band-min", 0, "Override lower edge of the target band, in percent")
	rootCmd.PersistentFlags().Float64Var(&bandIdeal, "band-ideal", 0, "Override ideal utilization, in percent")
	rootCmd.PersistentFlags().Float64Var(&bandMax, "band-max", 0, "Override upper edge of the target band, in percent")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".gridfit" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
		viper.SetConfigName(".gridfit")
	}

	viper.SetEnvPrefix("gridfit")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			slog.Error("Error reading config file", "error", err)
			os.Exit(1)
		}

		slog.Debug("No config file found, using flags and defaults")

		return
	}

	slog.Debug("Using config file", "path", viper.ConfigFileUsed())
}

// set values to the PFlag variables from config, if they are set. Priority is still given to explicitly provided CLI flags.
func bindFlags(cmd *cobra.Command, _ []string) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}

		// Both "band-min" and "bandmin" are accepted in the config file.
		for _, configName := range []string{f.Name, strings.ReplaceAll(f.Name, "-", "")} {
			if !viper.IsSet(configName) {
				continue
			}

			val := viper.Get(configName)

			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				slog.Error("Error setting flag from config", "flag", f.Name, "error", err)
				panic(err)
			}

			slog.Debug("Flag set to config value", "flag", f.Name, "value", val)

			return
		}
	})
}

// applyOverrides replaces grid and band values of l with the non-zero
// command line overrides.
func applyOverrides(l *layout.Layout) error {
	if columns > 0 {
		l.Grid.Columns = columns
	}

	if rows > 0 {
		l.Grid.Rows = rows
	}

	band := l.Band
	if bandMin > 0 {
		band.Min = bandMin
	}

	if bandIdeal > 0 {
		band.Ideal = bandIdeal
	}

	if bandMax > 0 {
		band.Max = bandMax
	}

	if !(band.Min <= band.Ideal && band.Ideal <= band.Max) {
		return fmt.Errorf("invalid band %.1f/%.1f/%.1f: expected min <= ideal <= max", band.Min, band.Ideal, band.Max)
	}

	l.Band = band

	return nil
}

func loadLayout() (*layout.Layout, error) {
	l, err := layout.LoadOrBuiltin(layoutPath)
	if err != nil {
		return nil, fmt.Errorf("could not load layout: %w", err)
	}

	if err := applyOverrides(l); err != nil {
		return nil, err
	}

	if l.Skipped > 0 {
		slog.Warn("Some components were skipped", "count", l.Skipped)
	}

	return l, nil
}

func screenArg(raw string) (model.ScreenID, error) {
	id, err := model.ParseScreenID(raw)
	if err != nil {
		return model.ScreenID{}, fmt.Errorf("expected tab/subscreen: %w", err)
	}

	return id, nil
}
