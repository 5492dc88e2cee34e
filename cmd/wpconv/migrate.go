package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rgonek/wp-tiptap-converter/migrate"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var input, output string
	var workers int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Convert a batch of exported posts and pages",
		Long: `Migrate reads a JSON array of items ({id, kind, title, content, attachments}),
converts them concurrently and writes the outputs as a JSON array.

Examples:
  wpconv migrate --input items.json --output documents.json --rewrites map.json
  wpconv migrate --config wpconv.yaml --input items.json --workers 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context(), cmd.OutOrStdout(), opts, input, output, workers)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Items JSON file")
	cmd.Flags().StringVar(&output, "output", "", "Output JSON file (default: stdout)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent conversions (default: config file value, then 4)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runMigrate(ctx context.Context, stdout io.Writer, opts *rootOptions, input, output string, workers int) error {
	if workers == 0 {
		workers = opts.file.Workers
	}

	table, err := opts.rewriteTable()
	if err != nil {
		return err
	}
	runner, err := migrate.NewRunner(migrate.Config{
		Workers:    workers,
		LinkTarget: opts.file.LinkTarget,
		Rewrites:   table,
	}, opts.log)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	items, err := migrate.ReadItemsFile(input)
	if err != nil {
		return err
	}

	outputs, err := runner.Run(ctx, items)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	warnings := 0
	for _, out := range outputs {
		warnings += len(out.Warnings)
	}
	opts.log.Info("converted items", "items", len(outputs), "warnings", warnings)

	if output == "" {
		return migrate.WriteOutputs(stdout, outputs)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := migrate.WriteOutputs(f, outputs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
