package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dataport/internal/importer/domain"
)

func newPgDataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pgdata <export-file.json>",
		Short: "Import a relational-table export",
		Long: `Import a relational-table export file.

The file maps table names to row arrays. Routing and reporting work the
same as for structured exports.

Examples:
  dataport pgdata tables.json`,
		Args: cobra.ExactArgs(1),
		RunE: runPgData,
	}
}

func runPgData(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read export file: %w", err)
	}

	var data domain.RelationalImportDataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse export file: %w", err)
	}

	fmt.Printf("Importing %d rows across %d tables from %s\n", data.UnitCount(), len(data), args[0])

	svc := newImportService(newLogger())

	ctx, cancel := commandContext()
	defer cancel()

	var failed bool
	err = svc.ImportPgData(ctx, data, renderCallbacks(&failed))
	if err != nil {
		return err
	}
	if failed {
		return fmt.Errorf("import failed")
	}
	return nil
}
