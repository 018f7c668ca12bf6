package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aldermoor/weatherlog/internal/domain/services"
)

type exportFlags struct {
	format string
	output string
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export history to file",
		Long:  "Exports all saved records to JSON, CSV, markdown or XML format.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, csv, md, xml)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: weather_history.<ext>, \"-\" for stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	ctx := cmd.Context()

	format, err := services.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		artifact, err := d.History.HandleExport(ctx, format)
		if err != nil {
			return fmt.Errorf("exporting history: %w", err)
		}

		if flags.output == "-" {
			_, err := os.Stdout.Write(artifact.Data)
			return err
		}

		path := flags.output
		if path == "" {
			path = artifact.Filename
		}

		if err := os.WriteFile(path, artifact.Data, 0644); err != nil {
			return fmt.Errorf("writing export file: %w", err)
		}

		fmt.Printf("Exported history to %s\n", path)
		return nil
	})
}
