package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dataport/internal/cli/config"
	"dataport/internal/importer"
	"dataport/internal/importer/uploader"
	"dataport/pkg/apiclient"
	"dataport/pkg/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "dataport",
	Short: "Import chat data exports into a backend",
	Long:  "Command line client that delivers exported chat data (sessions, topics, messages, relational rows) to an import backend, staging large payloads through object storage",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := cfg.Validate(); err != nil {
			fmt.Printf("Warning: Configuration validation failed: %v\n", err)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	var err error
	cfg, _, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		defaults := config.DefaultConfig
		cfg = &defaults
	}

	rootCmd.PersistentFlags().StringVarP(&cfg.Server.BaseURL, "server", "s", cfg.Server.BaseURL,
		"Import backend base URL")
	rootCmd.PersistentFlags().StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level,
		"Log level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(newDataCmd())
	rootCmd.AddCommand(newPgDataCmd())
	rootCmd.AddCommand(newSettingsCmd())
}

func newLogger() *logger.Logger {
	log := logger.New()
	if level, err := logger.ParseLevel(cfg.Logging.Level); err == nil {
		log.SetLevel(level)
	}
	return log
}

// newImportService wires the orchestrator to its HTTP collaborators.
func newImportService(log *logger.Logger) *importer.Service {
	api := apiclient.New(cfg.Server.BaseURL, log)
	return importer.New(api, api, uploader.New(log), log)
}

// commandContext applies the configured deadline, if any. The core
// itself never enforces one.
func commandContext() (context.Context, context.CancelFunc) {
	if cfg.Server.Timeout > 0 {
		return context.WithTimeout(context.Background(), cfg.Server.Timeout)
	}
	return context.WithCancel(context.Background())
}
