// PlantCare: plant care assistant MCP server
//
// Tracks your plants, listens to the irrigation controller's sensor feed
// and answers care questions through any MCP-capable AI tool.
//
// Usage:
//
//	plantcare serve              # Start MCP server (stdio transport)
//	plantcare ask "how is it?"   # One-shot answer on the terminal
//	plantcare plants             # List registered plants
//	plantcare config init        # Write ~/.plantcare/config.yaml
//	plantcare version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "plantcare",
	Short: "PlantCare - plant care assistant MCP server",
	Long: `PlantCare keeps track of your plants and turns live sensor readings
(temperature, air and soil humidity, water need) into care advice.

Run "plantcare serve" from your AI tool's MCP configuration:

  {
    "mcpServers": {
      "plantcare": {
        "command": "plantcare",
        "args": ["serve"]
      }
    }
  }`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// stdout belongs to the MCP stdio transport; production config logs to stderr.
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.plantcare/config.yaml)")

	askCmd.Flags().Float64Var(&askReading.TemperatureC, "temperature", 0, "Air temperature in °C")
	askCmd.Flags().Float64Var(&askReading.AirHumidityPct, "air-humidity", 0, "Air humidity in %")
	askCmd.Flags().Float64Var(&askReading.SoilHumidityPct, "soil-humidity", 0, "Soil humidity in %")
	askCmd.Flags().Float64Var(&askReading.WaterNeedLiters, "water-need", 0, "Water need in litres")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(plantsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
