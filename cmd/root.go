package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/traveler-cli/internal/config"
)

var (
	cfg *config.Config

	flagLogLevel    string
	flagStrictDates bool
)

var rootCmd = &cobra.Command{
	Use:   "traveler-cli",
	Short: "Normalize traveler information feeds",
	Long:  "Flattens WSDOT traveler information JSON into typed records, infers table schemas, and derives point geometry for GeoJSON and PostGIS.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		applyFlagOverrides(cmd, cfg)

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagStrictDates, "strict-dates", false, "fail on date-keyed values that are not /Date(...)/ strings")
}

// applyFlagOverrides copies explicitly set persistent flags over the loaded
// config.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("log-level") {
		c.Log.Level = flagLogLevel
	}
	if flags.Changed("strict-dates") {
		c.Normalize.StrictDates = flagStrictDates
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
