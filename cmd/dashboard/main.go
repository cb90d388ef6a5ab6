// Command dashboard runs the linked scatter/bar dashboard, or exports its charts
// to PNG with the export subcommand.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iafilius/InteractiveDashboard/src/config"
	"github.com/iafilius/InteractiveDashboard/src/logging"
)

var (
	configPath  string
	dataPath    string
	logLevel    string
	metricsAddr string
	noWatch     bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive dashboard of linked scatter and bar charts",
		Long: `dashboard shows one dataset as a scatter plot and a bar chart side by side.
Selecting a record in either chart highlights it in both.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		RunE:          runGUI,
		SilenceErrors: true,
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML settings file")
	pf.StringVarP(&dataPath, "data", "d", "", "Dataset file (.csv or .xlsx) with columns id,x,y")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the dataset when the file changes")

	rootCmd.AddCommand(newExportCmd(), newInspectCmd())
	return rootCmd
}

// loadConfig layers command line flags over the settings file and environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Data.Path = dataPath
		cfg.LoadedFrom = append(cfg.LoadedFrom, "flags")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Lookup("metrics-addr") != nil && flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
	if flags.Lookup("no-watch") != nil && noWatch {
		cfg.Data.Watch = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.SetLogLevel(cfg.LogLevel)
	logging.Debugf("config loaded from %v", cfg.LoadedFrom)
	return cfg, nil
}
