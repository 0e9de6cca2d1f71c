package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"dataport/internal/importer"
	"dataport/internal/importer/domain"
)

func newDataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "data <export-file.json>",
		Short: "Import a structured chat data export",
		Long: `Import a structured chat data export file.

The file holds optional messages, sessionGroups, sessions and topics
sequences. Small exports are sent inline, large ones are staged through
object storage first.

Examples:
  dataport data export.json
  dataport --server=https://importer.example.com data export.json`,
		Args: cobra.ExactArgs(1),
		RunE: runData,
	}
}

func runData(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read export file: %w", err)
	}

	var data domain.ImportDataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse export file: %w", err)
	}

	fmt.Printf("Importing %d units from %s\n", data.UnitCount(), args[0])

	svc := newImportService(newLogger())

	ctx, cancel := commandContext()
	defer cancel()

	var failed bool
	err = svc.ImportData(ctx, &data, renderCallbacks(&failed))
	if err != nil {
		return err
	}
	if failed {
		return fmt.Errorf("import failed")
	}
	return nil
}

// renderCallbacks prints stage transitions, upload progress and the
// final outcome to stdout. failed flips when the backend reports an
// error through the callback channel.
func renderCallbacks(failed *bool) importer.Callbacks {
	var uploading bool

	return importer.Callbacks{
		OnStageChange: func(stage domain.Stage) {
			if uploading {
				fmt.Println()
				uploading = false
			}
			fmt.Printf("Stage: %s\n", stage)
		},
		OnFileUploading: func(p domain.UploadProgress) {
			uploading = true
			fmt.Printf("\r  %.1f%%  %.1f KB/s  ~%.0fs left", p.Progress, p.Speed, p.RestTime)
		},
		OnSuccess: func(results json.RawMessage, duration time.Duration) {
			fmt.Printf("Done in %s\n", duration)
			if len(results) > 0 {
				fmt.Printf("Results: %s\n", results)
			}
		},
		OnError: func(f domain.ImportFailure) {
			*failed = true
			fmt.Printf("Error: %s (code=%s status=%d path=%s)\n", f.Message, f.Code, f.HTTPStatus, f.Path)
		},
	}
}
