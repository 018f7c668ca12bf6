package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import records from an exported file",
		Long: "Restores history records from a previously exported JSON or CSV file.\n" +
			"Invalid entries are skipped; the rest are saved as new records.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "auto", "Input format (json, csv, auto)")

	return cmd
}

func runImport(cmd *cobra.Command, filePath, format string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.Import.Handle(ctx, filePath, format)
		if err != nil {
			return fmt.Errorf("importing records: %w", err)
		}

		fmt.Printf("Imported %d records", result.Imported)
		if result.Skipped > 0 {
			fmt.Printf(" (%d skipped)", result.Skipped)
		}
		fmt.Println()
		return nil
	})
}
