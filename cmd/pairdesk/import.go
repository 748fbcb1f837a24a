package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/pairdesk/internal/service"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>...",
	Short: "Import backtest exports into the database",
	Long: `Each file holds one backtest: {"symbol", "timeframe", "version", "sheets": {...}, "pricing": {...}}.
A file may also hold an array of such objects. Existing symbol/timeframe/version
combinations are replaced.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := openDeps(ctx)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		for _, path := range args {
			requests, err := readImportFile(path)
			if err != nil {
				return err
			}
			for _, req := range requests {
				record, created, err := d.backtests.Import(ctx, req)
				if err != nil {
					return fmt.Errorf("%s: %s: %w", path, req.Symbol, err)
				}
				action := "updated"
				if created {
					action = "created"
				}
				fmt.Fprintf(out, "%s %s %s %s (%s)\n", action, record.Symbol, record.Timeframe, record.Version, record.ID)
			}
		}
		return nil
	},
}

func readImportFile(path string) ([]service.ImportRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var many []service.ImportRequest
	if err := json.Unmarshal(data, &many); err == nil {
		return many, nil
	}

	var one service.ImportRequest
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return []service.ImportRequest{one}, nil
}
