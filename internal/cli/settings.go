package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dataport/internal/settings"
)

var settingsOutPath string

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings <settings-file.json>",
		Short: "Apply imported application settings",
		Args:  cobra.ExactArgs(1),
		RunE:  runSettings,
	}

	cmd.Flags().StringVar(&settingsOutPath, "out", "",
		"Destination settings file (default ~/.dataport/settings.json)")

	return cmd
}

func runSettings(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read settings file: %w", err)
	}
	if !json.Valid(raw) {
		return fmt.Errorf("settings file is not valid JSON")
	}

	out := settingsOutPath
	if out == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		out = filepath.Join(home, ".dataport", "settings.json")
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := settings.New(settings.NewFileSink(out)).Import(ctx, raw); err != nil {
		return err
	}

	fmt.Printf("Settings applied to %s\n", out)
	return nil
}
